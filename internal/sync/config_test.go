// ABOUTME: Tests for sync configuration management
// ABOUTME: Verifies config loading, saving, and environment overrides

package sync

import (
	"os"
	"path/filepath"
	"testing"
)

func withTempConfigHome(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)
	t.Setenv("LUMENOTE_SYNC_ENDPOINT", "")
	t.Setenv("LUMENOTE_SYNC_KEY", "")
	return tmpDir
}

func TestConfigPath(t *testing.T) {
	withTempConfigHome(t)
	path := ConfigPath()
	if path == "" {
		t.Error("ConfigPath returned empty string")
	}
	if !filepath.IsAbs(path) {
		t.Errorf("ConfigPath should return absolute path, got %s", path)
	}
}

func TestConfigDir(t *testing.T) {
	withTempConfigHome(t)
	dir := ConfigDir()
	path := ConfigPath()
	if dir != filepath.Dir(path) {
		t.Errorf("ConfigDir() = %s, want %s", dir, filepath.Dir(path))
	}
}

func TestConfigIsConfigured(t *testing.T) {
	tests := []struct {
		name     string
		cfg      *Config
		expected bool
	}{
		{
			name:     "empty config",
			cfg:      &Config{},
			expected: false,
		},
		{
			name:     "endpoint only",
			cfg:      &Config{Endpoint: "https://sync.example.com"},
			expected: false,
		},
		{
			name:     "key only",
			cfg:      &Config{Key: "s3cret"},
			expected: false,
		},
		{
			name:     "fully configured",
			cfg:      &Config{Endpoint: "https://sync.example.com", Key: "s3cret"},
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.IsConfigured(); got != tt.expected {
				t.Errorf("IsConfigured() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestLoadConfigMissingFileReturnsDefaults(t *testing.T) {
	withTempConfigHome(t)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.IsConfigured() {
		t.Error("expected unconfigured defaults for a missing file")
	}
	if cfg.LastSyncedAt != 0 {
		t.Errorf("expected zero cursor, got %d", cfg.LastSyncedAt)
	}
}

func TestSaveAndLoadConfigRoundTrip(t *testing.T) {
	withTempConfigHome(t)

	saved := &Config{
		Endpoint:     "https://sync.example.com",
		Key:          "s3cret",
		LastSyncedAt: 1234567890,
	}
	if err := SaveConfig(saved); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	if !ConfigExists() {
		t.Error("expected ConfigExists after save")
	}

	loaded, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if loaded.Endpoint != saved.Endpoint || loaded.Key != saved.Key {
		t.Errorf("round trip mismatch: got %+v, want %+v", loaded, saved)
	}
	if loaded.LastSyncedAt != saved.LastSyncedAt {
		t.Errorf("cursor mismatch: got %d, want %d", loaded.LastSyncedAt, saved.LastSyncedAt)
	}
}

func TestSaveConfigFilePermissions(t *testing.T) {
	withTempConfigHome(t)

	if err := SaveConfig(&Config{Endpoint: "https://e", Key: "k"}); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	info, err := os.Stat(ConfigPath())
	if err != nil {
		t.Fatalf("stat config: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("expected 0600 permissions, got %o", perm)
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	withTempConfigHome(t)

	if err := SaveConfig(&Config{Endpoint: "https://file", Key: "filekey"}); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	t.Setenv("LUMENOTE_SYNC_ENDPOINT", "https://env")
	t.Setenv("LUMENOTE_SYNC_KEY", "envkey")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Endpoint != "https://env" {
		t.Errorf("expected env endpoint override, got %s", cfg.Endpoint)
	}
	if cfg.Key != "envkey" {
		t.Errorf("expected env key override, got %s", cfg.Key)
	}
}
