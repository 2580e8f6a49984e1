// Package config holds the shared constants of the Voss toolchain and the
// per-user tooling configuration loaded from ~/.voss/config.yaml.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Tooling is the user-level configuration shared by the REPL, the LSP
// server and the package manager.
type Tooling struct {
	// HistorySize caps the number of REPL history entries kept on disk.
	HistorySize int `yaml:"historySize,omitempty"`

	// Color controls ANSI colors in the REPL: "auto" (default), "on", "off".
	Color string `yaml:"color,omitempty"`

	// DefaultRef is the git ref used when a dependency has no version.
	DefaultRef string `yaml:"defaultRef,omitempty"`

	// CacheDir overrides the package cache location.
	CacheDir string `yaml:"cacheDir,omitempty"`
}

// DefaultTooling returns the configuration used when no config file exists.
func DefaultTooling() *Tooling {
	return &Tooling{
		HistorySize: 1000,
		Color:       "auto",
		DefaultRef:  "master",
	}
}

// StateDir returns the per-user state directory (~/.voss), creating nothing.
func StateDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, StateDirName)
}

// LoadTooling reads config.yaml from dir. A missing file yields defaults.
func LoadTooling(dir string) (*Tooling, error) {
	cfg := DefaultTooling()

	data, err := os.ReadFile(filepath.Join(dir, "config.yaml"))
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config.yaml: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config.yaml: %w", err)
	}

	if cfg.HistorySize <= 0 {
		cfg.HistorySize = 1000
	}
	if cfg.Color == "" {
		cfg.Color = "auto"
	}
	if cfg.DefaultRef == "" {
		cfg.DefaultRef = "master"
	}
	return cfg, nil
}

// SaveTooling writes config.yaml into dir, creating the directory if needed.
func SaveTooling(dir string, cfg *Tooling) error {
	if cfg == nil {
		return fmt.Errorf("tooling config is nil")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), data, 0644); err != nil {
		return fmt.Errorf("failed to write config.yaml: %w", err)
	}
	return nil
}
