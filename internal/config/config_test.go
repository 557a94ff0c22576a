package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORTAL_CONFIG_FILE", "")
	t.Setenv("SLOT_STORAGE_BACKEND", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, StorageCookie, cfg.Storage.Backend)
	assert.Equal(t, "0.0.0.0:8080", cfg.App.Addr())
	assert.Equal(t, 30*time.Second, cfg.App.RequestTimeout())
	assert.Equal(t, 15*time.Second, cfg.API.Timeout())
	assert.Equal(t, 7*24*time.Hour, cfg.Storage.SlotTTL())
	assert.False(t, cfg.Media.Enabled())
}

func TestLoadFileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "portal.yaml")
	content := []byte(`
app:
  port: "9090"
api:
  base_url: https://api.barangay.example
  timeout_seconds: 5
storage:
  backend: redis
media:
  cloud_name: demo
  upload_preset: unsigned
`)
	require.NoError(t, os.WriteFile(path, content, 0o600))

	t.Setenv("PORTAL_CONFIG_FILE", path)
	t.Setenv("APP_PORT", "7070")
	t.Setenv("SLOT_STORAGE_BACKEND", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "7070", cfg.App.Port)
	assert.Equal(t, "https://api.barangay.example", cfg.API.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.API.Timeout())
	assert.Equal(t, StorageRedis, cfg.Storage.Backend)
	assert.True(t, cfg.Media.Enabled())
	assert.Equal(t, "barangayImage", cfg.Media.Folder)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "bad base url", mutate: func(c *Config) { c.API.BaseURL = "localhost" }, wantErr: true},
		{name: "memory backend", mutate: func(c *Config) { c.Storage.Backend = StorageMemory }},
		{name: "unknown backend", mutate: func(c *Config) { c.Storage.Backend = "memcached" }, wantErr: true},
		{name: "postgres without dsn", mutate: func(c *Config) { c.Storage.Backend = StoragePostgres }, wantErr: true},
		{name: "postgres with dsn", mutate: func(c *Config) {
			c.Storage.Backend = StoragePostgres
			c.Postgres.DSN = "postgres://portal@localhost/portal"
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaults()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
