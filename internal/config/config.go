// Package config handles the fsm global configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents configuration stored in ~/.config/fsm/config.yml.
// Everything is optional; a missing file behaves like an empty one.
type Config struct {
	// DefaultFormat selects the body format `db init` uses when no
	// --format flag is given: json-pretty, json, or binary.
	DefaultFormat string `yaml:"default_format,omitempty"`
	// OpenCommand overrides the platform opener used by `fsm open`.
	OpenCommand string `yaml:"open_command,omitempty"`
}

const (
	// Dir is the directory name under XDG_CONFIG_HOME.
	Dir = "fsm"
	// File is the config file name.
	File = "config.yml"
)

// Path returns the global config file location. Respects
// XDG_CONFIG_HOME, defaulting to ~/.config/fsm/config.yml. Empty when
// no home directory can be determined.
func Path() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, Dir, File)
}

// Load reads the global configuration. A missing file yields an empty
// config, not an error.
func Load() (*Config, error) {
	return loadFrom(Path())
}

func loadFrom(path string) (*Config, error) {
	if path == "" {
		return &Config{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("reading global config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing global config: %w", err)
	}
	return &cfg, nil
}
