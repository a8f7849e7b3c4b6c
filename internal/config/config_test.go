package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, 8081, cfg.AdminPort)
	assert.Equal(t, StorageLocal, cfg.StorageMode)
	assert.Equal(t, "http://localhost:8080", cfg.BaseURL)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("STORAGE_MODE", StorageSQLite)
	t.Setenv("BASE_URL", "https://feedback.example.com")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.HTTPPort)
	assert.Equal(t, StorageSQLite, cfg.StorageMode)
	assert.Equal(t, "https://feedback.example.com", cfg.BaseURL)
}

func TestLoadConfigFileEnvWins(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("http_port: 7000\nbase_url: http://file.example\n"), 0o644))
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("BASE_URL", "http://env.example")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 7000, cfg.HTTPPort)
	assert.Equal(t, "http://env.example", cfg.BaseURL)
}

func TestLoadRejectsUnknownStorageMode(t *testing.T) {
	t.Setenv("STORAGE_MODE", "ftp")

	_, err := Load()
	assert.Error(t, err)
}
