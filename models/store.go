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
	"path/filepath"
	"strings"
	"time"

	"github.com/ZzzYtl/MyGate/log"
	etcdclient "github.com/ZzzYtl/MyGate/models/etcd"
	fileclient "github.com/ZzzYtl/MyGate/models/file"
)

// config type
const (
	ConfigFile = "file"
	ConfigEtcd = "etcd"
)

// permission file name under the permission base
const permissionFileName = "permissions.json"

// Client client interface
type Client interface {
	Create(path string, data []byte) error
	Update(path string, data []byte) error
	UpdateWithTTL(path string, data []byte, ttl time.Duration) error
	Delete(path string) error
	Read(path string) ([]byte, error)
	List(path string) ([]string, error)
	Close() error
	BasePrefix() string
}

// Store means exported client to use
type Store struct {
	client Client
	prefix string
}

// NewClient constructor to create client by case etcd/file
func NewClient(configType, addr, username, password, root string) Client {
	switch configType {
	case ConfigFile:
		c, err := fileclient.New(root)
		if err != nil {
			log.Warn("create fileclient failed, %v", err)
			return nil
		}
		return c
	case ConfigEtcd:
		c, err := etcdclient.New(addr, time.Minute, username, password, root)
		if err != nil {
			log.Warn("create etcdclient to %s failed, %v", addr, err)
			return nil
		}
		return c
	}
	log.Warn("unknown config type %s", configType)
	return nil
}

// NewStore constructor of Store
func NewStore(client Client) *Store {
	return &Store{
		client: client,
		prefix: client.BasePrefix(),
	}
}

// Close close store
func (s *Store) Close() error {
	return s.client.Close()
}

// GateBase return gate register path base
func (s *Store) GateBase() string {
	return filepath.Join(s.prefix, "gate")
}

// GatePath concat gate path
func (s *Store) GatePath(token string) string {
	return filepath.Join(s.prefix, "gate", fmt.Sprintf("gate-%s", token))
}

// CreateGate create gate model
func (s *Store) CreateGate(p *GateInfo) error {
	return s.client.Update(s.GatePath(p.Token), p.Encode())
}

// DeleteGate delete gate path
func (s *Store) DeleteGate(token string) error {
	return s.client.Delete(s.GatePath(token))
}

// ListGate list registered gate instances
func (s *Store) ListGate() (map[string]*GateInfo, error) {
	files, err := s.client.List(s.GateBase())
	if err != nil {
		return nil, err
	}
	gates := make(map[string]*GateInfo)
	for _, path := range files {
		b, err := s.client.Read(path)
		if err != nil {
			return nil, err
		}
		p := &GateInfo{}
		if err := JSONDecode(p, b); err != nil {
			return nil, err
		}
		gates[p.Token] = p
	}
	return gates, nil
}

// PermissionBase return permission path base
func (s *Store) PermissionBase() string {
	return filepath.Join(s.prefix, "permission")
}

// PermissionPath concat permission path
func (s *Store) PermissionPath(name string) string {
	return filepath.Join(s.prefix, "permission", name)
}

// ListPermission list permission nodes
func (s *Store) ListPermission() ([]string, error) {
	files, err := s.client.List(s.PermissionBase())
	if err != nil {
		return nil, err
	}
	for i := 0; i < len(files); i++ {
		tmp := strings.Split(files[i], "/")
		files[i] = tmp[len(tmp)-1]
	}
	return files, nil
}

// LoadPermissionList load permission list value, a missing node
// reads back as an empty list
func (s *Store) LoadPermissionList() (*PermissionList, error) {
	b, err := s.client.Read(s.PermissionPath(permissionFileName))
	if err != nil {
		return nil, err
	}

	p := &PermissionList{}
	if b == nil {
		return p, nil
	}

	if err = JSONDecode(p, b); err != nil {
		return nil, err
	}

	p.Canonicalize()
	if err = p.Verify(); err != nil {
		return nil, err
	}

	return p, nil
}

// UpdatePermissionList update permission path with data
func (s *Store) UpdatePermissionList(p *PermissionList) error {
	return s.client.Update(s.PermissionPath(permissionFileName), p.Encode())
}
