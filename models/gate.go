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

package models

import (
	"fmt"

	"github.com/go-ini/ini"
)

// Gate means gate structure of gate config
type Gate struct {
	ConfigType string `ini:"config_type"`

	LogPath     string `ini:"log_path"`
	LogLevel    string `ini:"log_level"`
	LogFileName string `ini:"log_filename"`

	Service string `ini:"service_name"`
	Cluster string `ini:"cluster_name"`

	CoordinatorAddr string `ini:"coordinator_addr"`
	CoordinatorRoot string `ini:"coordinator_root"`
	UserName        string `ini:"username"`
	Password        string `ini:"password"`

	FileConfigPath string `ini:"file_config_path"`

	AccountWhitelistEnable bool `ini:"account_whitelist_enable"`
	NodeWhitelistEnable    bool `ini:"node_whitelist_enable"`

	AdminAddr     string `ini:"admin_addr"`
	AdminUser     string `ini:"admin_user"`
	AdminPassword string `ini:"admin_password"`
}

// ParseGateConfigFromFile parser gate config from file
func ParseGateConfigFromFile(cfgFile string) (*Gate, error) {
	cfg, err := ini.Load(cfgFile)
	if err != nil {
		return nil, err
	}

	var gateConfig = &Gate{}
	err = cfg.MapTo(gateConfig)
	if err != nil {
		return nil, err
	}
	return gateConfig, gateConfig.Verify()
}

// Verify verify gate config
func (p *Gate) Verify() error {
	if err := p.verifyConfigType(); err != nil {
		return err
	}
	return p.verifyAdminConfig()
}

func (p *Gate) verifyConfigType() error {
	switch p.ConfigType {
	case ConfigFile:
		if p.FileConfigPath == "" {
			return fmt.Errorf("file_config_path must not be empty")
		}
	case ConfigEtcd:
		if p.CoordinatorAddr == "" {
			return fmt.Errorf("coordinator_addr must not be empty")
		}
	default:
		return fmt.Errorf("unknown config_type: %s", p.ConfigType)
	}
	return nil
}

func (p *Gate) verifyAdminConfig() error {
	if p.AdminAddr == "" {
		return fmt.Errorf("admin_addr must not be empty")
	}
	if p.AdminUser == "" || p.AdminPassword == "" {
		return fmt.Errorf("admin_user and admin_password must not be empty")
	}
	return nil
}

// GateInfo means one running gate registered in the coordinator
type GateInfo struct {
	Token     string `json:"token"`
	StartTime string `json:"start_time"`
	IP        string `json:"ip"`
	AdminPort string `json:"admin_port"`
	Pid       int    `json:"pid"`
	Pwd       string `json:"pwd"`
	Sys       string `json:"sys"`
}

// Encode encode json
func (p *GateInfo) Encode() []byte {
	return JSONEncode(p)
}
