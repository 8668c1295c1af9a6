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

package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ZzzYtl/MyGate/gate/server"
	"github.com/ZzzYtl/MyGate/log"
	"github.com/ZzzYtl/MyGate/models"
)

var configFile = flag.String("config", "etc/mygate.ini", "gate config file")

func main() {
	flag.Parse()

	// init config of gate
	cfg, err := models.ParseGateConfigFromFile(*configFile)
	if err != nil {
		fmt.Printf("parse gate config file error: %v\n", err)
		return
	}

	// init log
	if err = log.Init(cfg.LogPath, cfg.LogFileName, cfg.LogLevel, cfg.Service); err != nil {
		fmt.Printf("init log error: %v\n", err)
		return
	}
	defer log.Close()

	svr, err := server.NewServer(cfg)
	if err != nil {
		log.Fatal("NewServer error, quit. error: %s", err.Error())
		return
	}

	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	go func() {
		sig := <-sc
		log.Notice("got signal %v, quit", sig)
		svr.Close()
	}()

	if err = svr.Run(); err != nil {
		log.Warn("gate server quit, %v", err)
	}
}
