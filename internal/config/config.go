// Package config resolves the tool's settings from a YAML file and
// environment variables. Precedence, lowest to highest: built-in
// defaults, config file, environment, command-line flags (applied by the
// CLI layer).
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Environment variables recognized by Load.
const (
	EnvConfig  = "SHORTLIST_CONFIG"
	EnvDataDir = "SHORTLIST_DATA_DIR"
	EnvFormat  = "SHORTLIST_FORMAT"
)

// Config holds the resolved settings.
type Config struct {
	// DataDir is the directory holding live.db and sandbox.db.
	DataDir string `yaml:"data_dir"`

	// Format is the default output format: "text" or "json".
	Format string `yaml:"format"`
}

// Default returns the built-in settings: data under ~/.shortlist, text
// output.
func Default() Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return Config{
		DataDir: filepath.Join(home, ".shortlist"),
		Format:  "text",
	}
}

// Load resolves the configuration. The config file path comes from
// SHORTLIST_CONFIG, falling back to <default data dir>/config.yaml. A
// missing file is not an error; a malformed one is.
func Load() (Config, error) {
	cfg := Default()

	path := os.Getenv(EnvConfig)
	if path == "" {
		path = filepath.Join(cfg.DataDir, "config.yaml")
	}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// Defaults apply.
	case err != nil:
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if v := os.Getenv(EnvDataDir); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv(EnvFormat); v != "" {
		cfg.Format = v
	}
	return cfg, nil
}

// EnsureDataDir creates the data directory if needed.
func (c Config) EnsureDataDir() error {
	if err := os.MkdirAll(c.DataDir, 0o755); err != nil {
		return fmt.Errorf("create data dir %s: %w", c.DataDir, err)
	}
	return nil
}
