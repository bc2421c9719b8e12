// Package daemon wires configuration, storage, the tracker store and the
// HTTP surface into a running process.
package daemon

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Config is the on-disk configuration (~/.macrolog/config.toml).
type Config struct {
	Storage StorageConfig `toml:"storage"`
	API     APIConfig     `toml:"api"`
	Log     LogConfig     `toml:"log"`
}

// StorageConfig locates the durable state slot.
type StorageConfig struct {
	Dir  string `toml:"dir"`  // Directory holding macrolog.db (default $MACROLOG_HOME)
	Slot string `toml:"slot"` // Slot key for the state document
}

// APIConfig controls the local form surface.
type APIConfig struct {
	Host        string   `toml:"host"`
	Port        int      `toml:"port"`
	Metrics     bool     `toml:"metrics"`
	CORSOrigins []string `toml:"cors_origins"`
}

// LogConfig controls the zap logger.
type LogConfig struct {
	Level  string `toml:"level"`  // debug, info, warn, error
	Format string `toml:"format"` // console or json
}

// DefaultConfig returns production defaults.
func DefaultConfig() Config {
	return Config{
		Storage: StorageConfig{
			Dir:  Home(),
			Slot: "macrolog-state",
		},
		API: APIConfig{
			Host:        "127.0.0.1",
			Port:        7878,
			Metrics:     true,
			CORSOrigins: []string{"*"},
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Addr returns host:port for the HTTP listener.
func (c APIConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Home returns the data directory: $MACROLOG_HOME, else ~/.macrolog.
func Home() string {
	if env := os.Getenv("MACROLOG_HOME"); env != "" {
		return env
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".macrolog")
}

// DefaultConfigPath returns the config file inside Home().
func DefaultConfigPath() string {
	return filepath.Join(Home(), "config.toml")
}

// LoadEnv loads a .env file from the working directory if one exists.
// Variables already set in the environment win.
func LoadEnv() error {
	err := godotenv.Load()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}

// LoadConfig decodes path over DefaultConfig. A missing file is not an
// error; an empty path means DefaultConfigPath().
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		path = DefaultConfigPath()
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks fields that would otherwise fail late.
func (c Config) Validate() error {
	if c.API.Port <= 0 || c.API.Port > 65535 {
		return fmt.Errorf("api.port %d out of range", c.API.Port)
	}
	if c.Storage.Dir == "" {
		return errors.New("storage.dir is empty")
	}
	if c.Storage.Slot == "" {
		return errors.New("storage.slot is empty")
	}
	return nil
}

// Save writes cfg as TOML to path, creating the directory.
func (c Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(c)
}
