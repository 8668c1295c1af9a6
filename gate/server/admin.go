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
	"net"
	"net/http"
	"os"
	"runtime"
	"time"

	"github.com/ZzzYtl/MyGate/gate/whitelist"
	"github.com/ZzzYtl/MyGate/log"
	"github.com/ZzzYtl/MyGate/models"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	adminGroupPath  = "/api/gate"
	metricGroupPath = "/api/metrics"
)

// AdminServer means admin server of gate
type AdminServer struct {
	gate  *Server
	model *models.GateInfo

	listener      net.Listener
	addr          string
	adminUser     string
	adminPassword string
	engine        *gin.Engine

	configType      string
	coordinatorAddr string
	coordinatorRoot string
	username        string
	password        string

	accountWhitelistEnable bool
	nodeWhitelistEnable    bool
}

// NewAdminServer create new admin server
func NewAdminServer(gate *Server, cfg *models.Gate) (*AdminServer, error) {
	var err error
	s := new(AdminServer)

	// if error occurs, recycle the resources during creation.
	defer func() {
		if e := recover(); e != nil {
			err = fmt.Errorf("NewAdminServer panic: %v", e)
		}

		if err != nil {
			s.Close()
		}
	}()

	s.gate = gate
	s.addr = cfg.AdminAddr
	s.adminUser = cfg.AdminUser
	s.adminPassword = cfg.AdminPassword
	s.configType = cfg.ConfigType
	s.coordinatorAddr = cfg.CoordinatorAddr
	s.coordinatorRoot = cfg.CoordinatorRoot
	s.username = cfg.UserName
	s.password = cfg.Password
	s.accountWhitelistEnable = cfg.AccountWhitelistEnable
	s.nodeWhitelistEnable = cfg.NodeWhitelistEnable

	s.model, err = s.newGateInfo()
	if err != nil {
		return nil, err
	}

	gin.SetMode(gin.ReleaseMode)
	s.engine = gin.New()
	s.registerURL()
	s.registerMetric()

	s.listener, err = net.Listen("tcp", s.addr)
	if err != nil {
		return nil, err
	}

	return s, nil
}

func (s *AdminServer) newGateInfo() (*models.GateInfo, error) {
	host, port, err := net.SplitHostPort(s.addr)
	if err != nil {
		return nil, err
	}

	pwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	return &models.GateInfo{
		Token:     s.addr,
		StartTime: time.Now().Format("2006-01-02 15:04:05"),
		IP:        host,
		AdminPort: port,
		Pid:       os.Getpid(),
		Pwd:       pwd,
		Sys:       runtime.GOOS,
	}, nil
}

func (s *AdminServer) registerURL() {
	adminGroup := s.engine.Group(adminGroupPath, gin.BasicAuth(gin.Accounts{s.adminUser: s.adminPassword}))
	adminGroup.GET("/ping", s.ping)
	adminGroup.GET("/instances", s.listInstances)
	adminGroup.GET("/permission/files", s.listPermissionFiles)
	adminGroup.PUT("/whitelist/reload", s.reloadWhitelists)

	if s.accountWhitelistEnable {
		adminGroup.GET("/whitelist/accounts", s.getAccountWhitelist)
		adminGroup.PUT("/whitelist/accounts", s.addAccountEntries)
		adminGroup.DELETE("/whitelist/accounts", s.removeAccountEntries)
		adminGroup.GET("/whitelist/accounts/check", s.checkAccountEntry)
	}

	if s.nodeWhitelistEnable {
		adminGroup.GET("/whitelist/nodes", s.getNodeWhitelist)
		adminGroup.PUT("/whitelist/nodes", s.addNodeEntries)
		adminGroup.DELETE("/whitelist/nodes", s.removeNodeEntries)
		adminGroup.GET("/whitelist/nodes/check", s.checkNodeEntry)
	}

	adminGroup.Use(gzip.Gzip(gzip.DefaultCompression))
	adminGroup.Use(gin.Recovery())
}

func (s *AdminServer) registerMetric() {
	metricGroup := s.engine.Group(metricGroupPath, gin.BasicAuth(gin.Accounts{s.adminUser: s.adminPassword}))
	metricGroup.GET("metrics", func(ctx *gin.Context) {
		promhttp.Handler().ServeHTTP(ctx.Writer, ctx.Request)
	})
}

// Run run admin server
func (s *AdminServer) Run() error {
	defer s.listener.Close()

	if err := s.registerGate(); err != nil {
		log.Warn("register gate to coordinator failed, %v", err)
	}

	log.Notice("admin server serve on %s", s.addr)
	srv := &http.Server{Handler: s.engine}
	if err := srv.Serve(s.listener); err != nil {
		log.Warn("admin server serve stopped, %v", err)
		return err
	}
	return nil
}

// Close close admin server
func (s *AdminServer) Close() error {
	if err := s.unregisterGate(); err != nil {
		log.Warn("unregister gate from coordinator failed, %v", err)
	}

	if s.listener != nil {
		s.listener.Close()
	}
	return nil
}

func (s *AdminServer) registerGate() error {
	if s.configType == models.ConfigFile {
		return nil
	}
	client := models.NewClient(s.configType, s.coordinatorAddr, s.username, s.password, s.coordinatorRoot)
	if client == nil {
		return fmt.Errorf("create coordinator client error")
	}
	store := models.NewStore(client)
	defer store.Close()
	return store.CreateGate(s.model)
}

func (s *AdminServer) unregisterGate() error {
	if s.configType == models.ConfigFile {
		return nil
	}
	client := models.NewClient(s.configType, s.coordinatorAddr, s.username, s.password, s.coordinatorRoot)
	if client == nil {
		return fmt.Errorf("create coordinator client error")
	}
	store := models.NewStore(client)
	defer store.Close()
	return store.DeleteGate(s.model.Token)
}

type whitelistEntries struct {
	Entries []string `json:"entries"`
}

// mutation results map onto http statuses, persist failures are 500,
// sync failures are 409, input failures are 400
func httpStatus(result whitelist.Result) int {
	switch result {
	case whitelist.Success:
		return http.StatusOK
	case whitelist.ErrorWhitelistPersistFail:
		return http.StatusInternalServerError
	case whitelist.ErrorWhitelistFileSync:
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

func (s *AdminServer) ping(c *gin.Context) {
	c.JSON(http.StatusOK, "OK")
}

func (s *AdminServer) listInstances(c *gin.Context) {
	gates, err := s.gate.store.ListGate()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"instances": gates})
}

func (s *AdminServer) listPermissionFiles(c *gin.Context) {
	files, err := s.gate.store.ListPermission()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"files": files})
}

func (s *AdminServer) reloadWhitelists(c *gin.Context) {
	if err := s.gate.ReloadWhitelists(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, "OK")
}

func (s *AdminServer) getAccountWhitelist(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"accounts-whitelist": s.gate.AccountWhitelist().GetWhitelist()})
}

func (s *AdminServer) addAccountEntries(c *gin.Context) {
	var req whitelistEntries
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	result := s.gate.AccountWhitelist().AddEntries(req.Entries)
	c.JSON(httpStatus(result), gin.H{"result": result.String()})
}

func (s *AdminServer) removeAccountEntries(c *gin.Context) {
	var req whitelistEntries
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	result := s.gate.AccountWhitelist().RemoveEntries(req.Entries)
	c.JSON(httpStatus(result), gin.H{"result": result.String()})
}

func (s *AdminServer) checkAccountEntry(c *gin.Context) {
	entry := c.Query("entry")
	if entry == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing entry"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"entry":       entry,
		"whitelisted": s.gate.AccountWhitelist().Contains(entry),
	})
}

func (s *AdminServer) getNodeWhitelist(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"nodes-whitelist": s.gate.NodeWhitelist().GetWhitelist()})
}

func (s *AdminServer) addNodeEntries(c *gin.Context) {
	var req whitelistEntries
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	result := s.gate.NodeWhitelist().AddEntries(req.Entries)
	c.JSON(httpStatus(result), gin.H{"result": result.String()})
}

func (s *AdminServer) removeNodeEntries(c *gin.Context) {
	var req whitelistEntries
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	result := s.gate.NodeWhitelist().RemoveEntries(req.Entries)
	c.JSON(httpStatus(result), gin.H{"result": result.String()})
}

func (s *AdminServer) checkNodeEntry(c *gin.Context) {
	entry := c.Query("entry")
	if entry == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing entry"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"entry":       entry,
		"whitelisted": s.gate.NodeWhitelist().Contains(entry),
	})
}
