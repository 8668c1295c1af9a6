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

package file

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"time"
)

// Client config client of local file
type Client struct {
	prefix string
}

// New constructor of file client, the root directory is created
// when absent
func New(root string) (*Client, error) {
	prefix, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	if err = os.MkdirAll(prefix, 0755); err != nil {
		return nil, err
	}
	return &Client{prefix: prefix}, nil
}

// Create create path with data, fails if the path already exists
func (c *Client) Create(path string, data []byte) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("node %s already exists", path)
	} else if !os.IsNotExist(err) {
		return err
	}
	return c.Update(path, data)
}

// Update update path with data, the write is atomic so a reader
// never observes a half written node
func (c *Client) Update(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	tmp, err := ioutil.TempFile(filepath.Dir(path), "."+filepath.Base(path)+".")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err = tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}

	if err = os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}

// UpdateWithTTL update path with data, ttl is not supported by the
// file client
func (c *Client) UpdateWithTTL(path string, data []byte, ttl time.Duration) error {
	return c.Update(path, data)
}

// Delete delete path
func (c *Client) Delete(path string) error {
	err := os.Remove(path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Read read path data, a missing node reads back as nil
func (c *Client) Read(path string) ([]byte, error) {
	data, err := ioutil.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

// List list files under path
func (c *Client) List(path string) ([]string, error) {
	infos, err := ioutil.ReadDir(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var files []string
	for _, info := range infos {
		if info.IsDir() {
			continue
		}
		files = append(files, filepath.Join(path, info.Name()))
	}
	return files, nil
}

// Close close file client
func (c *Client) Close() error {
	return nil
}

// BasePrefix return base prefix
func (c *Client) BasePrefix() string {
	return c.prefix
}
