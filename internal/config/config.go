// Package config loads dfa tool configuration from YAML or JSON files and
// the environment.
package config

import (
	"errors"
	"fmt"

	"github.com/comalice/dfax/internal/logging"
)

// Errors for configuration operations.
var (
	// ErrConfigNotFound indicates the configuration file was not found.
	ErrConfigNotFound = errors.New("configuration file not found")

	// ErrUnsupportedFormat indicates the file format is not supported.
	ErrUnsupportedFormat = errors.New("unsupported configuration format")

	// ErrValidationFailed indicates configuration validation failed.
	ErrValidationFailed = errors.New("configuration validation failed")
)

// Storage backends.
const (
	BackendFile   = "file"
	BackendBadger = "badger"
)

// Save file formats for the file backend.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Config is the complete tool configuration.
type Config struct {
	// Name identifies the automaton being edited.
	Name  string         `yaml:"name" json:"name"`
	Store StoreConfig    `yaml:"store" json:"store"`
	Log   logging.Config `yaml:"log" json:"log"`
}

// StoreConfig selects where automata are persisted.
type StoreConfig struct {
	Backend string `yaml:"backend" json:"backend"`
	Dir     string `yaml:"dir" json:"dir"`
	Format  string `yaml:"format" json:"format"`

	// InMemory keeps badger data in memory; only useful for tests.
	InMemory bool `yaml:"in_memory" json:"in_memory"`
}

// Default returns the configuration used when no file is given. The file
// backend in the working directory writes dfa_save_file.json.
func Default() Config {
	return Config{
		Name: "dfa_save_file",
		Store: StoreConfig{
			Backend: BackendFile,
			Dir:     ".",
			Format:  FormatJSON,
		},
		Log: logging.DefaultConfig(),
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("%w: name is required", ErrValidationFailed)
	}
	switch c.Store.Backend {
	case BackendFile:
		if c.Store.Format != FormatJSON && c.Store.Format != FormatYAML {
			return fmt.Errorf("%w: store.format %q must be json or yaml", ErrValidationFailed, c.Store.Format)
		}
		if c.Store.Dir == "" {
			return fmt.Errorf("%w: store.dir is required", ErrValidationFailed)
		}
	case BackendBadger:
		if c.Store.Dir == "" && !c.Store.InMemory {
			return fmt.Errorf("%w: store.dir is required for badger", ErrValidationFailed)
		}
	default:
		return fmt.Errorf("%w: unknown store.backend %q", ErrValidationFailed, c.Store.Backend)
	}
	switch c.Log.Level {
	case "trace", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: unknown log.level %q", ErrValidationFailed, c.Log.Level)
	}
	return nil
}
