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

package server

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ZzzYtl/MyGate/gate/whitelist"
	"github.com/ZzzYtl/MyGate/log"
	"github.com/ZzzYtl/MyGate/models"
	"github.com/ZzzYtl/MyGate/util/sync2"
	"github.com/howeyc/fsnotify"
)

// Server means gate that serves whitelist admin requests and keeps
// the whitelists in step with the permission store
type Server struct {
	closed sync2.AtomicBool

	cfg   *models.Gate
	store *models.Store

	accountWhitelist *whitelist.Controller
	nodeWhitelist    *whitelist.Controller

	adminServer *AdminServer
	watcher     *fsnotify.Watcher
}

// NewServer create new server
func NewServer(cfg *models.Gate) (*Server, error) {
	var err error
	s := new(Server)

	s.cfg = cfg
	// if error occurs, recycle the resources during creation.
	defer func() {
		if e := recover(); e != nil {
			err = fmt.Errorf("NewServer panic: %v", e)
		}

		if err != nil {
			s.Close()
		}
	}()

	s.closed = sync2.NewAtomicBool(false)

	root := cfg.FileConfigPath
	if cfg.ConfigType == models.ConfigEtcd {
		root = cfg.CoordinatorRoot
	}
	client := models.NewClient(cfg.ConfigType, cfg.CoordinatorAddr, cfg.UserName, cfg.Password, root)
	if client == nil {
		err = fmt.Errorf("create config client error")
		return nil, err
	}
	s.store = models.NewStore(client)

	permissionConfig, err := models.BuildPermissionConfig(s.store, cfg.AccountWhitelistEnable, cfg.NodeWhitelistEnable)
	if err != nil {
		log.Fatal(fmt.Sprintf("load permission config error, quit. error: %s", err.Error()))
		return nil, err
	}

	persistor := whitelist.NewStorePersistor(s.store)
	s.accountWhitelist = whitelist.NewAccountController(permissionConfig, s.store, persistor)
	s.nodeWhitelist = whitelist.NewNodeController(permissionConfig, s.store, persistor)

	// create AdminServer
	adminServer, err := NewAdminServer(s, cfg)
	if err != nil {
		log.Fatal(fmt.Sprintf("NewAdminServer error, quit. error: %s", err.Error()))
		return nil, err
	}
	s.adminServer = adminServer

	if cfg.ConfigType == models.ConfigFile {
		s.watcher, err = fsnotify.NewWatcher()
		if err != nil {
			log.Fatal("new file watcher fail")
			return nil, err
		}
		if err = os.MkdirAll(s.store.PermissionBase(), 0755); err != nil {
			return nil, err
		}
		err = filepath.Walk(s.store.PermissionBase(), func(path string, info os.FileInfo, err error) error {
			//这里判断是否为目录，只需监控目录即可
			//目录下的文件也在监控范围内，不需要我们一个一个加
			if info.IsDir() {
				path, err := filepath.Abs(path)
				if err != nil {
					return err
				}
				err = s.watcher.Watch(path)
				if err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			log.Fatal(fmt.Sprintf("watcher file(%s) error, quit. error: %s", s.store.PermissionBase(), err.Error()))
			return nil, err
		}
	}

	log.Notice("server start succ, config type: %s, admin addr: %s", cfg.ConfigType, cfg.AdminAddr)
	return s, nil
}

// AccountWhitelist return the accounts whitelist controller
func (s *Server) AccountWhitelist() *whitelist.Controller {
	return s.accountWhitelist
}

// NodeWhitelist return the nodes whitelist controller
func (s *Server) NodeWhitelist() *whitelist.Controller {
	return s.nodeWhitelist
}

// Run gate run and serve admin requests in the foreground
func (s *Server) Run() error {
	s.closed.Set(false)
	if s.watcher != nil {
		go s.CheckConfig()
	}
	return s.adminServer.Run()
}

// Close close gate server
func (s *Server) Close() error {
	if s.adminServer != nil {
		s.adminServer.Close()
	}

	s.closed.Set(true)
	if s.watcher != nil {
		s.watcher.Close()
	}

	if s.store != nil {
		s.store.Close()
	}
	return nil
}

// CheckConfig watch the permission store and rebuild the whitelists
// when it changes on disk
func (s *Server) CheckConfig() {
	for {
		select {
		case _, ok := <-s.watcher.Event:
			if !ok {
				return
			}
			s.ReloadWhitelists()
		case err, ok := <-s.watcher.Error:
			if !ok {
				return
			}
			log.Warn("error:", err)
		}
	}
}

// ReloadWhitelists rebuild the enabled whitelists from the permission
// store, memory is kept as is when a rebuild fails
func (s *Server) ReloadWhitelists() error {
	log.Notice("reload whitelist config begin")
	var controllers []*whitelist.Controller
	if s.cfg.AccountWhitelistEnable {
		controllers = append(controllers, s.accountWhitelist)
	}
	if s.cfg.NodeWhitelistEnable {
		controllers = append(controllers, s.nodeWhitelist)
	}

	for _, controller := range controllers {
		if err := controller.Reload(); err != nil {
			log.Warn("reload %s whitelist failed, %v", controller.Category(), err)
			return err
		}
	}
	log.Notice("reload whitelist config end")
	return nil
}
