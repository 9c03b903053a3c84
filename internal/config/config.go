// Package config loads the generator configuration file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// FileName is the default configuration file name.
const FileName = "orm-generator.yaml"

// Environment variables overriding the file.
const (
	EnvLogLevel = "ORMGEN_LOG_LEVEL"
	EnvWorkers  = "ORMGEN_WORKERS"
)

// Defaults.
const (
	DefaultVersion       = "1"
	DefaultRowPackage    = "orm-generator/row"
	DefaultLogLevel      = "info"
	DefaultWatchInterval = 2 * time.Second
)

// Config is the content of orm-generator.yaml.
type Config struct {
	Version string `yaml:"version"`
	// Packages are the package patterns to generate mappers for.
	Packages []string `yaml:"packages,omitempty"`
	// RowPackage is the import path of the row.Reader package.
	RowPackage string `yaml:"row_package,omitempty"`
	// Workers bounds parallel work; zero means GOMAXPROCS.
	Workers  int    `yaml:"workers,omitempty"`
	LogLevel string `yaml:"log_level,omitempty"`
	// WatchInterval is the polling interval of the watch command.
	WatchInterval time.Duration `yaml:"watch_interval,omitempty"`
	// DebugUnformatted writes a sidecar with the raw source when formatting
	// generated code fails.
	DebugUnformatted bool `yaml:"debug_unformatted,omitempty"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	c := &Config{}
	applyDefaults(c)

	return c
}

// LoadFile loads and parses a YAML configuration file from the given path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return Parse(data)
}

// Load reads path when it exists and falls back to Default otherwise.
func Load(path string) (*Config, error) {
	c, err := LoadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}

	return c, err
}

// Parse parses YAML data into a Config.
func Parse(data []byte) (*Config, error) {
	var c Config

	err := yaml.Unmarshal(data, &c)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	applyDefaults(&c)

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return &c, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(c *Config) {
	if c.Version == "" {
		c.Version = DefaultVersion
	}

	if c.RowPackage == "" {
		c.RowPackage = DefaultRowPackage
	}

	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}

	if c.WatchInterval <= 0 {
		c.WatchInterval = DefaultWatchInterval
	}
}

// Validate checks field values.
func (c *Config) Validate() error {
	if c.Version != DefaultVersion {
		return fmt.Errorf("unsupported config version %q", c.Version)
	}

	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}

	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}

	return nil
}

// ApplyEnv overrides fields from environment variables read via lookup
// (os.LookupEnv in production).
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		if _, err := ParseLevel(v); err != nil {
			return fmt.Errorf("%s: %w", EnvLogLevel, err)
		}

		c.LogLevel = v
	}

	if v, ok := lookup(EnvWorkers); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return fmt.Errorf("%s: invalid worker count %q", EnvWorkers, v)
		}

		c.Workers = n
	}

	return nil
}

// Level returns the parsed log level.
func (c *Config) Level() slog.Level {
	l, _ := ParseLevel(c.LogLevel)
	return l
}

// ParseLevel parses debug, info, warn or error, case-insensitively.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level

	if err := l.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q", s)
	}

	return l, nil
}

// Marshal serializes a Config to YAML.
func Marshal(c *Config) ([]byte, error) {
	return yaml.Marshal(c)
}

// WriteFile writes a Config to the given path.
func WriteFile(c *Config, path string) error {
	data, err := Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", path, err)
	}

	return nil
}
