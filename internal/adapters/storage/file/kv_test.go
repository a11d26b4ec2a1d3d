package file

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMemKV(t *testing.T) (*KV, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	kv, err := NewWithFs(fs, "/data")
	require.NoError(t, err)
	return kv, fs
}

func TestKV_MissingKey(t *testing.T) {
	kv, _ := newMemKV(t)

	v, ok, err := kv.GetItem("pet-manager-pets")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, v)
}

func TestKV_OverwriteInFull(t *testing.T) {
	kv, fs := newMemKV(t)

	require.NoError(t, kv.SetItem("pet-manager-pets", `[{"id":"a1"},{"id":"a2"}]`))
	require.NoError(t, kv.SetItem("pet-manager-pets", `[]`))

	v, ok, err := kv.GetItem("pet-manager-pets")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[]`, v)

	// no quedan temporales
	entries, err := afero.ReadDir(fs, "/data")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "pet-manager-pets.kv", entries[0].Name())
}

func TestKV_Remove(t *testing.T) {
	kv, _ := newMemKV(t)

	require.NoError(t, kv.SetItem("k", "v"))
	require.NoError(t, kv.RemoveItem("k"))
	require.NoError(t, kv.RemoveItem("k"))

	_, ok, err := kv.GetItem("k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestKV_KeyEscaping(t *testing.T) {
	kv, fs := newMemKV(t)

	require.NoError(t, kv.SetItem("../evil", "x"))
	require.NoError(t, kv.SetItem("a.b", "1"))
	require.NoError(t, kv.SetItem("a_b", "2"))

	exists, err := afero.Exists(fs, filepath.Join("/data", "%2E%2E%2Fevil.kv"))
	require.NoError(t, err)
	assert.True(t, exists)

	v1, _, _ := kv.GetItem("a.b")
	v2, _, _ := kv.GetItem("a_b")
	assert.Equal(t, "1", v1)
	assert.Equal(t, "2", v2)

	assert.ErrorIs(t, kv.SetItem("", "x"), ErrKeyRequired)
}

func TestNew_OnDisk(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	kv, err := New(dir)
	require.NoError(t, err)

	require.NoError(t, kv.SetItem("k", "v"))
	v, ok, err := kv.GetItem("k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", v)
}
