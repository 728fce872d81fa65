// ABOUTME: Sync configuration management: endpoint, credential, cursor.
// ABOUTME: YAML file under XDG config with environment overrides.

package sync

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the persisted local sync configuration. LastSyncedAt is the
// watermark cursor: 0 means never synced. It lives here, outside the record
// store, so it survives restarts independently of the data file.
type Config struct {
	Endpoint     string `yaml:"endpoint"`
	Key          string `yaml:"key"`
	LastSyncedAt int64  `yaml:"last_synced_at"`
}

// IsConfigured reports whether sync can run at all. An unconfigured state
// is expected, not an error.
func (c *Config) IsConfigured() bool {
	return c.Endpoint != "" && c.Key != ""
}

func ConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "lumenote")
}

func ConfigPath() string {
	return filepath.Join(ConfigDir(), "sync.yaml")
}

func ConfigExists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}

func defaultConfig() *Config {
	return &Config{}
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("LUMENOTE_SYNC_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv("LUMENOTE_SYNC_KEY"); v != "" {
		cfg.Key = v
	}
}

// LoadConfig reads the config file, returning defaults when it is missing.
func LoadConfig() (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(expandPath(ConfigPath())) //nolint:gosec // Fixed XDG path
	if err != nil {
		if os.IsNotExist(err) {
			applyEnvOverrides(cfg)
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	applyEnvOverrides(cfg)
	return cfg, nil
}

func SaveConfig(cfg *Config) error {
	if err := os.MkdirAll(ConfigDir(), 0700); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(ConfigPath(), data, 0600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
