// Package config handles global sift configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config represents the global sift configuration.
type Config struct {
	// CatalogPath is the path to the SQLite catalog database.
	CatalogPath string `toml:"catalog_path"`

	// IgnoreVisibility disables visibility filtering at join boundaries.
	IgnoreVisibility bool `toml:"ignore_visibility"`

	// Snapshot configures the visibility snapshot used for CLI compilations.
	Snapshot SnapshotConfig `toml:"snapshot"`

	// UI controls optional CLI theming preferences.
	UI UIConfig `toml:"ui"`
}

// SnapshotConfig is the TOML form of a visibility snapshot.
type SnapshotConfig struct {
	// Xmax is the first transaction id not yet visible.
	Xmax uint64 `toml:"xmax"`

	// ActiveXids are transaction ids in flight when the snapshot was taken.
	ActiveXids []uint64 `toml:"active_xids"`
}

// UIConfig represents optional CLI theming preferences.
type UIConfig struct {
	// Accent is an optional accent color for CLI output.
	// Supported values are ANSI color codes ("0" to "255") or hex colors ("#RRGGBB").
	Accent string `toml:"accent"`
}

// CatalogPathOrDefault returns the configured catalog path, falling back to
// ~/.config/sift/catalog.db.
func (c *Config) CatalogPathOrDefault() string {
	if c.CatalogPath != "" {
		return c.CatalogPath
	}
	return filepath.Join(filepath.Dir(DefaultPath()), "catalog.db")
}

// Load loads the configuration from the default location.
// Returns a default config if the file doesn't exist.
func Load() (*Config, error) {
	configPath := DefaultPath()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return &Config{}, nil
	}

	return LoadFrom(configPath)
}

// LoadFrom loads the configuration from a specific path.
func LoadFrom(path string) (*Config, error) {
	var config Config
	if _, err := toml.DecodeFile(path, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return &config, nil
}

// DefaultPath returns the default config file path.
// Checks ~/.config/sift/config.toml first (XDG style),
// then falls back to OS-specific location.
func DefaultPath() string {
	if home, err := os.UserHomeDir(); err == nil {
		xdgPath := filepath.Join(home, ".config", "sift", "config.toml")
		if _, err := os.Stat(xdgPath); err == nil {
			return xdgPath
		}
	}

	if configDir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(configDir, "sift", "config.toml")
	}

	// Last resort fallback
	return filepath.Join(".", "config.toml")
}
