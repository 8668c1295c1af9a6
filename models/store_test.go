package models

import (
	"io/ioutil"
	"os"
	"path/filepath"

	. "github.com/pingcap/check"
)

var _ = Suite(&testStoreSuite{})

type testStoreSuite struct {
	dir   string
	store *Store
}

func (s *testStoreSuite) SetUpTest(c *C) {
	dir, err := ioutil.TempDir("", "store_test")
	c.Assert(err, IsNil)
	s.dir = dir

	client := NewClient(ConfigFile, "", "", "", dir)
	c.Assert(client, NotNil)
	s.store = NewStore(client)
}

func (s *testStoreSuite) TearDownTest(c *C) {
	s.store.Close()
	os.RemoveAll(s.dir)
}

func (s *testStoreSuite) writePermissionFile(c *C, content string) {
	path := s.store.PermissionPath("permissions.json")
	c.Assert(os.MkdirAll(filepath.Dir(path), 0755), IsNil)
	c.Assert(ioutil.WriteFile(path, []byte(content), 0644), IsNil)
}

func (s *testStoreSuite) TestLoadPermissionListMissing(c *C) {
	p, err := s.store.LoadPermissionList()
	c.Assert(err, IsNil)
	c.Assert(p.AccountsWhitelist, HasLen, 0)
	c.Assert(p.NodesWhitelist, HasLen, 0)
}

func (s *testStoreSuite) TestUpdateThenLoad(c *C) {
	p := &PermissionList{
		AccountsWhitelist: []string{"0xfe3b557e8fb62b89f4916b721be55ceb828dbd73"},
	}
	c.Assert(s.store.UpdatePermissionList(p), IsNil)

	loaded, err := s.store.LoadPermissionList()
	c.Assert(err, IsNil)
	c.Assert(loaded.AccountsWhitelist, DeepEquals, p.AccountsWhitelist)
	c.Assert(loaded.NodesWhitelist, HasLen, 0)
}

func (s *testStoreSuite) TestLoadCanonicalizes(c *C) {
	s.writePermissionFile(c, `{"accounts-whitelist": [" 0xFE3B557E8Fb62b89F4916B721be55cEb828dBd73 "], "nodes-whitelist": []}`)

	loaded, err := s.store.LoadPermissionList()
	c.Assert(err, IsNil)
	c.Assert(loaded.AccountsWhitelist, DeepEquals, []string{"0xfe3b557e8fb62b89f4916b721be55ceb828dbd73"})
}

func (s *testStoreSuite) TestLoadInvalidEntry(c *C) {
	s.writePermissionFile(c, `{"accounts-whitelist": ["0x123"], "nodes-whitelist": []}`)

	_, err := s.store.LoadPermissionList()
	c.Assert(err, NotNil)
}

func (s *testStoreSuite) TestLoadBrokenJSON(c *C) {
	s.writePermissionFile(c, `{"accounts-whitelist": [`)

	_, err := s.store.LoadPermissionList()
	c.Assert(err, NotNil)
}

func (s *testStoreSuite) TestPermissionPath(c *C) {
	c.Assert(s.store.PermissionBase(), Equals, filepath.Join(s.dir, "permission"))
	c.Assert(s.store.PermissionPath("permissions.json"), Equals, filepath.Join(s.dir, "permission", "permissions.json"))
}

func (s *testStoreSuite) TestGateRegister(c *C) {
	info := &GateInfo{
		Token:     "127.0.0.1:13307",
		StartTime: "2019-06-01 12:00:00",
		IP:        "127.0.0.1",
		AdminPort: "13307",
		Pid:       42,
	}
	c.Assert(s.store.CreateGate(info), IsNil)

	gates, err := s.store.ListGate()
	c.Assert(err, IsNil)
	c.Assert(gates, HasLen, 1)
	c.Assert(gates[info.Token].Pid, Equals, 42)

	c.Assert(s.store.DeleteGate(info.Token), IsNil)
	gates, err = s.store.ListGate()
	c.Assert(err, IsNil)
	c.Assert(gates, HasLen, 0)
}
