package file

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) (*Client, string) {
	dir, err := ioutil.TempDir("", "fileclient_test")
	require.NoError(t, err)
	c, err := New(dir)
	require.NoError(t, err)
	return c, dir
}

func TestReadMissing(t *testing.T) {
	c, dir := newTestClient(t)
	defer os.RemoveAll(dir)

	data, err := c.Read(filepath.Join(dir, "nothing"))
	assert.NoError(t, err)
	assert.Nil(t, data)
}

func TestUpdateThenRead(t *testing.T) {
	c, dir := newTestClient(t)
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "sub", "node")
	require.NoError(t, c.Update(path, []byte("hello")))

	data, err := c.Read(path)
	assert.NoError(t, err)
	assert.Equal(t, []byte("hello"), data)
}

func TestUpdateLeavesNoTempFile(t *testing.T) {
	c, dir := newTestClient(t)
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "node")
	require.NoError(t, c.Update(path, []byte("one")))
	require.NoError(t, c.Update(path, []byte("two")))

	infos, err := ioutil.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, infos, 1)

	data, err := c.Read(path)
	assert.NoError(t, err)
	assert.Equal(t, []byte("two"), data)
}

func TestCreateExisting(t *testing.T) {
	c, dir := newTestClient(t)
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "node")
	require.NoError(t, c.Create(path, []byte("one")))
	assert.Error(t, c.Create(path, []byte("two")))
}

func TestDelete(t *testing.T) {
	c, dir := newTestClient(t)
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "node")
	require.NoError(t, c.Update(path, []byte("one")))
	assert.NoError(t, c.Delete(path))
	assert.NoError(t, c.Delete(path))

	data, err := c.Read(path)
	assert.NoError(t, err)
	assert.Nil(t, data)
}

func TestList(t *testing.T) {
	c, dir := newTestClient(t)
	defer os.RemoveAll(dir)

	sub := filepath.Join(dir, "sub")
	require.NoError(t, c.Update(filepath.Join(sub, "a"), []byte("1")))
	require.NoError(t, c.Update(filepath.Join(sub, "b"), []byte("2")))

	files, err := c.List(sub)
	assert.NoError(t, err)
	assert.Len(t, files, 2)

	files, err = c.List(filepath.Join(dir, "nothing"))
	assert.NoError(t, err)
	assert.Nil(t, files)
}

func TestBasePrefix(t *testing.T) {
	c, dir := newTestClient(t)
	defer os.RemoveAll(dir)

	assert.Equal(t, dir, c.BasePrefix())
}
