// Copyright 2019 The Gaea Authors. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package log

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// log levels
const (
	LevelDebug = iota
	LevelTrace
	LevelNotice
	LevelWarn
	LevelFatal
)

var levelNames = []string{"debug", "trace", "notice", "warn", "fatal"}

// Logger means the interface of leveled logger
type Logger interface {
	Debug(format string, args ...interface{})
	Trace(format string, args ...interface{})
	Notice(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Fatal(format string, args ...interface{})
	SetLevel(level string)
	Close()
}

// XLogger is the default Logger writing to console or log file
type XLogger struct {
	mu       sync.Mutex
	level    int
	service  string
	out      io.Writer
	closable io.Closer
}

// NewXLogger constructor of XLogger
func NewXLogger(out io.Writer, service string) *XLogger {
	l := &XLogger{
		level:   LevelNotice,
		service: service,
		out:     out,
	}
	if c, ok := out.(io.Closer); ok && out != os.Stdout && out != os.Stderr {
		l.closable = c
	}
	return l
}

// SetLevel set lowest level the logger outputs, unknown level is ignored
func (l *XLogger) SetLevel(level string) {
	for i, name := range levelNames {
		if strings.EqualFold(level, name) {
			l.mu.Lock()
			l.level = i
			l.mu.Unlock()
			return
		}
	}
}

// Close close the backend writer of logger
func (l *XLogger) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closable != nil {
		l.closable.Close()
		l.closable = nil
	}
}

func (l *XLogger) output(level int, format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if level < l.level || l.out == nil {
		return
	}
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(l.out, "%s [%s] [%s] %s\n",
		time.Now().Format("2006/01/02 15:04:05.000"), levelNames[level], l.service, msg)
}

// Debug log debug message
func (l *XLogger) Debug(format string, args ...interface{}) {
	l.output(LevelDebug, format, args...)
}

// Trace log trace message
func (l *XLogger) Trace(format string, args ...interface{}) {
	l.output(LevelTrace, format, args...)
}

// Notice log notice message
func (l *XLogger) Notice(format string, args ...interface{}) {
	l.output(LevelNotice, format, args...)
}

// Warn log warn message
func (l *XLogger) Warn(format string, args ...interface{}) {
	l.output(LevelWarn, format, args...)
}

// Fatal log fatal message, the caller decides whether to quit
func (l *XLogger) Fatal(format string, args ...interface{}) {
	l.output(LevelFatal, format, args...)
}

var logger Logger = NewXLogger(os.Stdout, "mygate")

// Init create the global logger from log config, empty path means console
func Init(path, filename, level, service string) error {
	if service == "" {
		service = "mygate"
	}
	if path == "" {
		l := NewXLogger(os.Stdout, service)
		l.SetLevel(level)
		logger = l
		return nil
	}
	if err := os.MkdirAll(path, 0755); err != nil {
		return err
	}
	if filename == "" {
		filename = service
	}
	if !strings.HasSuffix(filename, ".log") {
		filename = filename + ".log"
	}
	f, err := os.OpenFile(filepath.Join(path, filename), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	l := NewXLogger(f, service)
	l.SetLevel(level)
	logger = l
	return nil
}

// Debug log debug message with global logger
func Debug(format string, args ...interface{}) {
	logger.Debug(format, args...)
}

// Trace log trace message with global logger
func Trace(format string, args ...interface{}) {
	logger.Trace(format, args...)
}

// Notice log notice message with global logger
func Notice(format string, args ...interface{}) {
	logger.Notice(format, args...)
}

// Warn log warn message with global logger
func Warn(format string, args ...interface{}) {
	logger.Warn(format, args...)
}

// Fatal log fatal message with global logger
func Fatal(format string, args ...interface{}) {
	logger.Fatal(format, args...)
}

// Close close the global logger
func Close() {
	logger.Close()
}
