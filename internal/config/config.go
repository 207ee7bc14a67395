// Package config holds the grocer configuration, loaded from a YAML file in
// the data directory with environment-variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Store drivers.
const (
	DriverJSON   = "json"
	DriverSQLite = "sqlite"
)

// Config holds all grocer configuration.
type Config struct {
	// DataDir is where the list, history, catalog, sessions and config live.
	DataDir string `yaml:"data_dir"`

	Store       StoreConfig       `yaml:"store"`
	Suggestions SuggestionsConfig `yaml:"suggestions"`
	Logging     LoggingConfig     `yaml:"logging"`
}

// StoreConfig selects and configures the persistence driver.
type StoreConfig struct {
	Driver string `yaml:"driver"` // json, sqlite
	// Path is the sqlite database file, relative to DataDir unless absolute.
	// Ignored by the json driver, which uses fixed file names under DataDir.
	Path string `yaml:"path"`
}

// SuggestionsConfig tunes the suggestion engine windows.
type SuggestionsConfig struct {
	// RepurchaseAfterDays: history entries older than this and absent from
	// the list become missing-item suggestions.
	RepurchaseAfterDays int `yaml:"repurchase_after_days"`
	// ExpiryWindowDays: reminders cover items expiring 1..N days from today.
	ExpiryWindowDays int `yaml:"expiry_window_days"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// DefaultConfig returns the default configuration. The defaults reproduce
// the classic assistant behavior: JSON files in ~/.grocer, 7-day repurchase
// threshold, 5-day expiry window.
func DefaultConfig() *Config {
	dataDir := ".grocer"
	if home, err := os.UserHomeDir(); err == nil {
		dataDir = filepath.Join(home, ".grocer")
	}
	return &Config{
		DataDir: dataDir,
		Store: StoreConfig{
			Driver: DriverJSON,
			Path:   "grocer.db",
		},
		Suggestions: SuggestionsConfig{
			RepurchaseAfterDays: 7,
			ExpiryWindowDays:    5,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads configuration from path, falling back to defaults when the
// file does not exist. Environment overrides are applied last.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg.applyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to path as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// applyEnvOverrides lets the environment win over the file.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("GROCER_DATA_DIR"); v != "" {
		c.DataDir = v
	}
	if v := os.Getenv("GROCER_STORE_DRIVER"); v != "" {
		c.Store.Driver = v
	}
	if v := os.Getenv("GROCER_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}

// Validate rejects configurations the rest of the program cannot act on.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data_dir must not be empty")
	}
	switch c.Store.Driver {
	case DriverJSON, DriverSQLite:
	default:
		return fmt.Errorf("unknown store driver %q (want %s or %s)", c.Store.Driver, DriverJSON, DriverSQLite)
	}
	if c.Suggestions.RepurchaseAfterDays < 0 {
		return fmt.Errorf("repurchase_after_days must not be negative")
	}
	if c.Suggestions.ExpiryWindowDays < 1 {
		return fmt.Errorf("expiry_window_days must be at least 1")
	}
	return nil
}

// StorePath resolves the sqlite database path against the data directory.
func (c *Config) StorePath() string {
	if filepath.IsAbs(c.Store.Path) {
		return c.Store.Path
	}
	return filepath.Join(c.DataDir, c.Store.Path)
}
