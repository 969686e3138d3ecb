package config

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Environment overrides applied by ApplyEnv.
const (
	EnvName     = "DFA_NAME"
	EnvBackend  = "DFA_STORE"
	EnvDir      = "DFA_DIR"
	EnvFormat   = "DFA_FORMAT"
	EnvLogLevel = "DFA_LOG_LEVEL"
)

// Format represents a configuration file format.
type Format string

const (
	FileYAML Format = "yaml"
	FileJSON Format = "json"
)

// LoadFile loads configuration from a file path on top of Default.
func LoadFile(path string) (Config, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return Config{}, fmt.Errorf("failed to access config file: %w", err)
	}
	if info.IsDir() {
		return Config{}, fmt.Errorf("%w: %s is a directory", ErrUnsupportedFormat, path)
	}

	var format Format
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		format = FileYAML
	case ".json":
		format = FileJSON
	default:
		return Config{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}

	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	return Load(f, format)
}

// Load reads configuration from r, expanding ${VAR} and ${VAR:-default}
// references before parsing.
func Load(r io.Reader, format Format) (Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	data = []byte(expandEnv(string(data)))

	cfg := Default()
	switch format {
	case FileYAML:
		err = yaml.Unmarshal(data, &cfg)
	case FileJSON:
		err = json.Unmarshal(data, &cfg)
	default:
		return Config{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return Config{}, fmt.Errorf("failed to parse %s config: %w", format, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from DFA_* environment variables.
func (c *Config) ApplyEnv() {
	if v, ok := os.LookupEnv(EnvName); ok && v != "" {
		c.Name = v
	}
	if v, ok := os.LookupEnv(EnvBackend); ok && v != "" {
		c.Store.Backend = v
	}
	if v, ok := os.LookupEnv(EnvDir); ok && v != "" {
		c.Store.Dir = v
	}
	if v, ok := os.LookupEnv(EnvFormat); ok && v != "" {
		c.Store.Format = v
	}
	if v, ok := os.LookupEnv(EnvLogLevel); ok && v != "" {
		c.Log.Level = v
	}
}

var envPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(:-[^}]*)?\}`)

// expandEnv replaces ${VAR} and ${VAR:-default}. Unset variables without a
// default expand to the empty string.
func expandEnv(input string) string {
	return envPattern.ReplaceAllStringFunc(input, func(match string) string {
		inner := match[2 : len(match)-1]
		name, def, hasDefault := strings.Cut(inner, ":-")
		if value, ok := os.LookupEnv(name); ok && value != "" {
			return value
		}
		if hasDefault {
			return def
		}
		return ""
	})
}
