package daemon

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	t.Setenv("MACROLOG_HOME", "/tmp/macrolog-test")
	cfg := DefaultConfig()

	if cfg.API.Host != "127.0.0.1" {
		t.Errorf("API.Host = %q, want %q", cfg.API.Host, "127.0.0.1")
	}
	if cfg.API.Port != 7878 {
		t.Errorf("API.Port = %d, want %d", cfg.API.Port, 7878)
	}
	if !cfg.API.Metrics {
		t.Error("API.Metrics should be true by default")
	}
	if cfg.Storage.Dir != "/tmp/macrolog-test" {
		t.Errorf("Storage.Dir = %q, want MACROLOG_HOME", cfg.Storage.Dir)
	}
	if cfg.Storage.Slot != "macrolog-state" {
		t.Errorf("Storage.Slot = %q, want %q", cfg.Storage.Slot, "macrolog-state")
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "console" {
		t.Errorf("Log = %+v, want info/console", cfg.Log)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("MACROLOG_HOME", t.TempDir())
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultConfig()) {
		t.Errorf("LoadConfig() = %+v, want defaults", cfg)
	}
}

func TestLoadConfig_OverlaysFile(t *testing.T) {
	t.Setenv("MACROLOG_HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
[api]
port = 9000
metrics = false

[log]
level = "debug"
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if cfg.API.Port != 9000 || cfg.API.Metrics {
		t.Errorf("API = %+v, want port 9000 and metrics off", cfg.API)
	}
	if cfg.API.Host != "127.0.0.1" {
		t.Errorf("API.Host = %q, default should survive", cfg.API.Host)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "console" {
		t.Errorf("Log = %+v", cfg.Log)
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name, body string
	}{
		{"bad toml", "[api\nport = 1"},
		{"bad port", "[api]\nport = 70000"},
		{"empty slot", "[storage]\nslot = \"\""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".toml")
			os.WriteFile(path, []byte(tt.body), 0o600)
			if _, err := LoadConfig(path); err == nil {
				t.Error("LoadConfig() should fail")
			}
		})
	}
}

func TestConfig_SaveRoundtrip(t *testing.T) {
	t.Setenv("MACROLOG_HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "sub", "config.toml")

	cfg := DefaultConfig()
	cfg.API.Port = 8123
	cfg.API.CORSOrigins = []string{"http://localhost:5173"}
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	got, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if !reflect.DeepEqual(got, cfg) {
		t.Errorf("LoadConfig() = %+v, want %+v", got, cfg)
	}
}

func TestAPIConfig_Addr(t *testing.T) {
	c := APIConfig{Host: "0.0.0.0", Port: 7878}
	if got := c.Addr(); got != "0.0.0.0:7878" {
		t.Errorf("Addr() = %q", got)
	}
}
