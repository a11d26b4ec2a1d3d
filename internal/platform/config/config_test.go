package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Loader{}.Load()
	require.NoError(t, err)

	assert.Equal(t, BackendFile, cfg.Storage.Backend)
	assert.Equal(t, "./data", cfg.Storage.Path)
	assert.Equal(t, "pet-manager-pets", cfg.Storage.Key)
	assert.Equal(t, DefaultMaxBytes, cfg.Storage.MaxBytes)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_FileThenEnvThenFlags(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	file := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`
storage:
  backend: sqlite
  path: /tmp/pets.db
  max_bytes: 1024
log:
  level: debug
`), 0o644))

	t.Setenv("PETMANAGER_STORAGE_KEY", "from-env")
	t.Setenv("LOG_FORMAT", "json")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("storage", "", "")
	fs.String("path", "", "")
	require.NoError(t, fs.Parse([]string{"--path", "/var/pets.db"}))

	cfg, err := Loader{
		File:     file,
		Flags:    fs,
		FlagKeys: map[string]string{"storage.backend": "storage", "storage.path": "path"},
	}.Load()
	require.NoError(t, err)

	assert.Equal(t, BackendSQLite, cfg.Storage.Backend, "unset flag must not override file")
	assert.Equal(t, "/var/pets.db", cfg.Storage.Path)
	assert.Equal(t, "from-env", cfg.Storage.Key)
	assert.Equal(t, 1024, cfg.Storage.MaxBytes)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_AutoDiscoversFileInCwd(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "petmanager.yaml"), []byte("storage:\n  backend: memory\n"), 0o644))

	cfg, err := Loader{}.Load()
	require.NoError(t, err)
	assert.Equal(t, BackendMemory, cfg.Storage.Backend)
}

func TestLoad_InvalidBackend(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("PETMANAGER_STORAGE_BACKEND", "postgres")

	_, err := Loader{}.Load()
	assert.ErrorIs(t, err, ErrInvalidBackend)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Loader{File: filepath.Join(t.TempDir(), "nope.yaml")}.Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Config{Storage: StorageConfig{Backend: BackendMemory}}.Validate())
	assert.Error(t, Config{Storage: StorageConfig{Backend: BackendFile}}.Validate())
	assert.Error(t, Config{Storage: StorageConfig{Backend: BackendFile, Path: "x", MaxBytes: -1}}.Validate())
}
