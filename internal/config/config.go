// Package config loads the bridge daemon's YAML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// Display selects the X server; empty uses $DISPLAY.
	Display    string           `yaml:"display"`
	Logging    LoggingConfig    `yaml:"logging"`
	Reconciler ReconcilerConfig `yaml:"reconciler"`
	IPC        IPCConfig        `yaml:"ipc"`
}

type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level"`
	// Format is "text", "json", or "auto" (text on a terminal,
	// JSON otherwise).
	Format string `yaml:"format"`
	// File receives the log when set; empty logs to stderr.
	File string `yaml:"file"`
}

type ReconcilerConfig struct {
	Enabled         bool `yaml:"enabled"`
	IntervalSeconds int  `yaml:"interval_seconds"`
}

type IPCConfig struct {
	Enabled bool `yaml:"enabled"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "auto",
		},
		Reconciler: ReconcilerConfig{
			Enabled:         true,
			IntervalSeconds: 10,
		},
		IPC: IPCConfig{
			Enabled: true,
		},
	}
}

// DefaultConfigPath returns ~/.config/mirx/config.yaml.
func DefaultConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "mirx", "config.yaml"), nil
}

// Load reads the default config file, if it exists, over the built-in
// defaults. A missing file is not an error.
func Load() (*Config, error) {
	path, err := DefaultConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFile(path)
}

// LoadFile reads the given config file over the built-in defaults.
// A missing file yields the defaults.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// ReconcileInterval returns the reconciler period as a duration,
// falling back to the default for non-positive values.
func (c *Config) ReconcileInterval() time.Duration {
	if c.Reconciler.IntervalSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.Reconciler.IntervalSeconds) * time.Second
}
