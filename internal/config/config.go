package config

import (
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	qerrors "github.com/quakeditor/quake/internal/errors"
)

// DefaultSaveFlash is how long the save confirmation stays on screen.
const DefaultSaveFlash = time.Second

// Config holds the editor settings.
type Config struct {
	SaveFlash   time.Duration // Pause after a successful save, with the flash visible
	LineNumbers bool          // Draw the line-number gutter
	LogFile     string        // Log destination; empty disables logging unless --debug

	path string
}

// file is the on-disk YAML shape.
type file struct {
	SaveFlash   *string `yaml:"save_flash"`
	LineNumbers *bool   `yaml:"line_numbers"`
	LogFile     string  `yaml:"log_file"`
}

// Default returns the settings used when no config file exists.
func Default() *Config {
	return &Config{
		SaveFlash:   DefaultSaveFlash,
		LineNumbers: true,
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/quake/config.yaml (or the platform
// equivalent).
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "quake", "config.yaml"), nil
}

// Load reads the config at path. An empty path means DefaultPath. A missing
// file is not an error: the defaults are returned.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			// No home directory: nothing to read.
			return Default(), nil
		}
		path = p
	}

	cfg := Default()
	cfg.path = path

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, qerrors.ConfigLoadFailed(path, err)
	}

	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, qerrors.ConfigLoadFailed(path, err)
	}

	if f.SaveFlash != nil {
		d, err := time.ParseDuration(*f.SaveFlash)
		if err != nil {
			return nil, qerrors.ConfigLoadFailed(path, err)
		}
		cfg.SaveFlash = d
	}
	if f.LineNumbers != nil {
		cfg.LineNumbers = *f.LineNumbers
	}
	cfg.LogFile = f.LogFile

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.SaveFlash < 0 {
		return qerrors.ConfigInvalid("save_flash must not be negative")
	}
	return nil
}

// Path returns the file the config was loaded from ("" for defaults).
func (c *Config) Path() string {
	return c.path
}
