// Package config loads and validates the application configuration from a
// JSON file, falling back to an embedded sample on first run.
package config

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/go-playground/validator/v10"

	_ "embed"
)

var configOnce sync.Once

var globalConfig *Config

var customConfigPath string // set via --config flag

//go:embed config.sample.json
var sampleConfig []byte

const (
	ConfigDirPath  = "listsync"
	ConfigFilePath = "config.json"
	configDirPerm  = 0755
	configFilePerm = 0644
)

// Config is the application configuration.
type Config struct {
	DBPath string       `json:"db_path"`
	Sync   SyncConfig   `json:"sync"`
	Remote RemoteConfig `json:"remote"`
}

// SyncConfig controls the background reconciliation loop.
type SyncConfig struct {
	Enabled         bool `json:"enabled"`
	IntervalSeconds int  `json:"interval_seconds" validate:"min=0"`
}

// RemoteConfig selects and parameterizes the remote client. Mode "memory"
// runs against the in-memory double instead of the network.
type RemoteConfig struct {
	Mode     string `json:"mode" validate:"oneof=http memory"`
	BaseURL  string `json:"base_url,omitempty" validate:"required_if=Mode http,omitempty,url"`
	TokenEnv string `json:"token_env,omitempty"`
}

// SetConfigPath overrides the config location before the first GetConfig call.
func SetConfigPath(path string) {
	customConfigPath = path
}

// ConfigPath returns the effective config file location.
func ConfigPath() (string, error) {
	if customConfigPath != "" {
		return customConfigPath, nil
	}
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine user config dir: %w", err)
	}
	return filepath.Join(configDir, ConfigDirPath, ConfigFilePath), nil
}

// GetConfig returns the process-wide configuration, loading it on first use.
func GetConfig() *Config {
	configOnce.Do(func() {
		cfg, err := Load()
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}
		globalConfig = cfg
	})
	return globalConfig
}

// Load reads, defaults, and validates the config at the effective path,
// writing the embedded sample first when no file exists yet.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := writeSample(path); err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read config %s: %w", path, err)
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("cannot parse config %s: %w", path, err)
	}

	cfg.applyDefaults(filepath.Dir(path))

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) applyDefaults(configDir string) {
	if c.DBPath == "" {
		c.DBPath = filepath.Join(configDir, "listsync.db")
	}
	if c.Remote.Mode == "" {
		c.Remote.Mode = "memory"
	}
	if c.Remote.TokenEnv == "" {
		c.Remote.TokenEnv = "LISTSYNC_REMOTE_TOKEN"
	}
	if c.Sync.IntervalSeconds == 0 {
		c.Sync.IntervalSeconds = 60
	}
}

func writeSample(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), configDirPerm); err != nil {
		return fmt.Errorf("cannot create config dir: %w", err)
	}
	if err := os.WriteFile(path, sampleConfig, configFilePerm); err != nil {
		return fmt.Errorf("cannot write sample config: %w", err)
	}
	return nil
}
