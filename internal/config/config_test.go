package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `{"sync": {"enabled": true}}`)
	SetConfigPath(path)
	t.Cleanup(func() { SetConfigPath("") })

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(filepath.Dir(path), "listsync.db"), cfg.DBPath)
	assert.Equal(t, "memory", cfg.Remote.Mode)
	assert.Equal(t, "LISTSYNC_REMOTE_TOKEN", cfg.Remote.TokenEnv)
	assert.Equal(t, 60, cfg.Sync.IntervalSeconds)
	assert.True(t, cfg.Sync.Enabled)
}

func TestLoadWritesSampleWhenMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")
	SetConfigPath(path)
	t.Cleanup(func() { SetConfigPath("") })

	cfg, err := Load()
	require.NoError(t, err)

	assert.FileExists(t, path)
	assert.Equal(t, "memory", cfg.Remote.Mode)
}

func TestLoadRejectsInvalidMode(t *testing.T) {
	path := writeConfig(t, `{"remote": {"mode": "carrier-pigeon"}}`)
	SetConfigPath(path)
	t.Cleanup(func() { SetConfigPath("") })

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}

func TestLoadRejectsHTTPModeWithoutBaseURL(t *testing.T) {
	path := writeConfig(t, `{"remote": {"mode": "http"}}`)
	SetConfigPath(path)
	t.Cleanup(func() { SetConfigPath("") })

	_, err := Load()
	require.Error(t, err)
}

func TestLoadParsesFullConfig(t *testing.T) {
	path := writeConfig(t, `{
		"db_path": "/tmp/x.db",
		"sync": {"enabled": true, "interval_seconds": 120},
		"remote": {"mode": "http", "base_url": "https://todo.example.com/api", "token_env": "MY_TOKEN"}
	}`)
	SetConfigPath(path)
	t.Cleanup(func() { SetConfigPath("") })

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/x.db", cfg.DBPath)
	assert.Equal(t, 120, cfg.Sync.IntervalSeconds)
	assert.Equal(t, "https://todo.example.com/api", cfg.Remote.BaseURL)
	assert.Equal(t, "MY_TOKEN", cfg.Remote.TokenEnv)
}
