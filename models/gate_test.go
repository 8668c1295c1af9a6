package models

import (
	"io/ioutil"
	"os"
	"path/filepath"

	. "github.com/pingcap/check"
)

var _ = Suite(&testGateSuite{})

type testGateSuite struct{}

func (s *testGateSuite) writeConfig(c *C, content string) string {
	dir, err := ioutil.TempDir("", "gate_config")
	c.Assert(err, IsNil)
	file := filepath.Join(dir, "mygate.ini")
	c.Assert(ioutil.WriteFile(file, []byte(content), 0644), IsNil)
	return file
}

func (s *testGateSuite) TestParseGateConfig(c *C) {
	file := s.writeConfig(c, `
config_type=file
log_path=./logs
log_level=Notice
log_filename=mygate
service_name=mygate_gate
cluster_name=mygate_default_cluster
file_config_path=./etc
account_whitelist_enable=true
node_whitelist_enable=false
admin_addr=0.0.0.0:13307
admin_user=admin
admin_password=admin
`)
	defer os.RemoveAll(filepath.Dir(file))

	cfg, err := ParseGateConfigFromFile(file)
	c.Assert(err, IsNil)
	c.Assert(cfg.ConfigType, Equals, "file")
	c.Assert(cfg.FileConfigPath, Equals, "./etc")
	c.Assert(cfg.AccountWhitelistEnable, Equals, true)
	c.Assert(cfg.NodeWhitelistEnable, Equals, false)
	c.Assert(cfg.AdminAddr, Equals, "0.0.0.0:13307")
	c.Assert(cfg.AdminUser, Equals, "admin")
}

func (s *testGateSuite) TestParseGateConfigUnknownType(c *C) {
	file := s.writeConfig(c, `
config_type=zookeeper
file_config_path=./etc
admin_addr=0.0.0.0:13307
admin_user=admin
admin_password=admin
`)
	defer os.RemoveAll(filepath.Dir(file))

	_, err := ParseGateConfigFromFile(file)
	c.Assert(err, ErrorMatches, "unknown config_type.*")
}

func (s *testGateSuite) TestParseGateConfigMissingFilePath(c *C) {
	file := s.writeConfig(c, `
config_type=file
admin_addr=0.0.0.0:13307
admin_user=admin
admin_password=admin
`)
	defer os.RemoveAll(filepath.Dir(file))

	_, err := ParseGateConfigFromFile(file)
	c.Assert(err, NotNil)
}

func (s *testGateSuite) TestParseGateConfigMissingAdminAddr(c *C) {
	file := s.writeConfig(c, `
config_type=file
file_config_path=./etc
admin_user=admin
admin_password=admin
`)
	defer os.RemoveAll(filepath.Dir(file))

	_, err := ParseGateConfigFromFile(file)
	c.Assert(err, ErrorMatches, "admin_addr must not be empty")
}

func (s *testGateSuite) TestParseGateConfigMissingAdmin(c *C) {
	file := s.writeConfig(c, `
config_type=file
file_config_path=./etc
admin_addr=0.0.0.0:13307
`)
	defer os.RemoveAll(filepath.Dir(file))

	_, err := ParseGateConfigFromFile(file)
	c.Assert(err, ErrorMatches, "admin_user and admin_password.*")
}

func (s *testGateSuite) TestParseGateConfigMissingAdminPassword(c *C) {
	file := s.writeConfig(c, `
config_type=file
file_config_path=./etc
admin_addr=0.0.0.0:13307
admin_user=admin
`)
	defer os.RemoveAll(filepath.Dir(file))

	_, err := ParseGateConfigFromFile(file)
	c.Assert(err, ErrorMatches, "admin_user and admin_password.*")
}

func (s *testGateSuite) TestParseGateConfigEtcd(c *C) {
	file := s.writeConfig(c, `
config_type=etcd
coordinator_addr=http://127.0.0.1:2379
coordinator_root=/mygate
username=root
password=root
admin_addr=0.0.0.0:13307
admin_user=admin
admin_password=admin
`)
	defer os.RemoveAll(filepath.Dir(file))

	cfg, err := ParseGateConfigFromFile(file)
	c.Assert(err, IsNil)
	c.Assert(cfg.ConfigType, Equals, ConfigEtcd)
	c.Assert(cfg.CoordinatorAddr, Equals, "http://127.0.0.1:2379")
	c.Assert(cfg.UserName, Equals, "root")
}
