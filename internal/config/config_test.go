package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func setupHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(EnvEndpoint, "")
	return home
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Endpoint != "http://localhost:8080/chat" {
		t.Errorf("Expected default endpoint, got '%s'", cfg.Endpoint)
	}
	if cfg.TimeoutSeconds != 60 {
		t.Errorf("Expected TimeoutSeconds 60, got %d", cfg.TimeoutSeconds)
	}
	if cfg.Markdown.Enabled {
		t.Error("Expected markdown rendering to be disabled by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v", err)
	}
}

func TestTimeout(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Timeout() != 60*time.Second {
		t.Errorf("Timeout() = %v, want 60s", cfg.Timeout())
	}

	cfg.TimeoutSeconds = 0
	if cfg.Timeout() != 0 {
		t.Errorf("Timeout() = %v, want 0", cfg.Timeout())
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"empty endpoint", func(c *Config) { c.Endpoint = " " }, "cannot be empty"},
		{"not http", func(c *Config) { c.Endpoint = "ftp://x/chat" }, "http(s) URL"},
		{"negative timeout", func(c *Config) { c.TimeoutSeconds = -1 }, "negative"},
		{"https ok", func(c *Config) { c.Endpoint = "https://example.com/chat" }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestGetConfigPath(t *testing.T) {
	home := setupHome(t)

	path, err := GetConfigPath()
	if err != nil {
		t.Fatalf("GetConfigPath() returned error: %v", err)
	}
	want := filepath.Join(home, ".chatwidget", "config.json")
	if path != want {
		t.Errorf("GetConfigPath() = %s, want %s", path, want)
	}
}

func TestLoadConfig_FileNotExists(t *testing.T) {
	setupHome(t)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() returned error: %v", err)
	}
	if cfg.Endpoint != DefaultConfig().Endpoint {
		t.Errorf("Expected default endpoint, got %s", cfg.Endpoint)
	}
}

func TestSaveAndLoadConfig(t *testing.T) {
	home := setupHome(t)

	cfg := DefaultConfig()
	cfg.Endpoint = "https://support.example.com/chat"
	cfg.Markdown.Enabled = true
	if err := SaveConfig(cfg); err != nil {
		t.Fatalf("SaveConfig() returned error: %v", err)
	}

	info, err := os.Stat(filepath.Join(home, ".chatwidget", "config.json"))
	if err != nil {
		t.Fatalf("config file not written: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("config file mode = %v, want 0600", info.Mode().Perm())
	}

	loaded, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() returned error: %v", err)
	}
	if loaded.Endpoint != cfg.Endpoint || !loaded.Markdown.Enabled {
		t.Errorf("LoadConfig() = %+v, want %+v", loaded, cfg)
	}
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	home := setupHome(t)

	dir := filepath.Join(home, ".chatwidget")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig()
	if err == nil {
		t.Fatal("Expected parse error")
	}
	if cfg.Endpoint != DefaultConfig().Endpoint {
		t.Errorf("Expected defaults on parse error, got %s", cfg.Endpoint)
	}
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	setupHome(t)
	t.Setenv(EnvEndpoint, "http://10.0.0.5:9000/chat")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() returned error: %v", err)
	}
	if cfg.Endpoint != "http://10.0.0.5:9000/chat" {
		t.Errorf("Endpoint = %s, want env override", cfg.Endpoint)
	}
}

func TestLoadFile_IgnoresEnv(t *testing.T) {
	setupHome(t)
	t.Setenv(EnvEndpoint, "http://10.0.0.5:9000/chat")

	cfg, err := LoadFile()
	if err != nil {
		t.Fatalf("LoadFile() returned error: %v", err)
	}
	if cfg.Endpoint != DefaultConfig().Endpoint {
		t.Errorf("Endpoint = %s, want file/default value", cfg.Endpoint)
	}
}

func TestSetValue(t *testing.T) {
	tests := []struct {
		key     string
		value   string
		check   func(Config) bool
		wantErr bool
	}{
		{"endpoint", "https://x.dev/chat", func(c Config) bool { return c.Endpoint == "https://x.dev/chat" }, false},
		{"timeout_seconds", "5", func(c Config) bool { return c.TimeoutSeconds == 5 }, false},
		{"timeout_seconds", "five", nil, true},
		{"timeout_seconds", "-3", nil, true},
		{"verbose", "true", func(c Config) bool { return c.Verbose }, false},
		{"verbose", "maybe", nil, true},
		{"markdown.enabled", "1", func(c Config) bool { return c.Markdown.Enabled }, false},
		{"tui_theme", "nord", func(c Config) bool { return c.TUITheme == "nord" }, false},
		{"nope", "x", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			cfg := DefaultConfig()
			err := SetValue(&cfg, tt.key, tt.value)
			if tt.wantErr {
				if err == nil {
					t.Error("Expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("SetValue() returned error: %v", err)
			}
			if !tt.check(cfg) {
				t.Errorf("SetValue(%s, %s) not applied: %+v", tt.key, tt.value, cfg)
			}
		})
	}
}

func TestKeysSorted(t *testing.T) {
	keys := Keys()
	for i := 1; i < len(keys); i++ {
		if keys[i-1] > keys[i] {
			t.Fatalf("Keys() not sorted: %v", keys)
		}
	}
}
