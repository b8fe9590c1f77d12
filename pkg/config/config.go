// Package config loads and validates fltsd server configuration.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Common errors for configuration loading.
var (
	ErrFileNotFound     = errors.New("configuration file not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrInvalidYAML      = errors.New("invalid YAML syntax")
	ErrEmptyFile        = errors.New("configuration file is empty")
)

// Config holds the fltsd server configuration.
type Config struct {
	// Listen is the address the HTTP server binds to.
	Listen string `yaml:"listen"`

	// LogLevel is the minimum log level: debug, info, warn or error.
	LogLevel string `yaml:"logLevel"`

	// LogFormat is the log output format: text or json.
	LogFormat string `yaml:"logFormat"`

	// TemplatesFile is the path to the YAML template manifest. When empty
	// the built-in sample templates are used.
	TemplatesFile string `yaml:"templatesFile"`

	// DocumentDir is where exported documents are written. Empty means the
	// OS temp directory.
	DocumentDir string `yaml:"documentDir"`
}

// Default returns the configuration used when no file is provided.
func Default() *Config {
	return &Config{
		Listen:    ":8130",
		LogLevel:  "info",
		LogFormat: "text",
	}
}

// Load reads a Config from a YAML file. Missing values fall back to the
// defaults from Default. Returns wrapped sentinel errors for common failures.
func Load(path string) (*Config, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		if os.IsPermission(err) {
			return nil, fmt.Errorf("%w: %s", ErrPermissionDenied, path)
		}
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("path is a directory, not a file: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsPermission(err) {
			return nil, fmt.Errorf("%w: %s", ErrPermissionDenied, path)
		}
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyFile, path)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidYAML, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field values and fills empty ones with defaults.
func (c *Config) Validate() error {
	if c.Listen == "" {
		c.Listen = Default().Listen
	}
	switch c.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid logLevel %q: must be debug, info, warn or error", c.LogLevel)
	}
	switch c.LogFormat {
	case "", "text", "json":
	default:
		return fmt.Errorf("invalid logFormat %q: must be text or json", c.LogFormat)
	}
	if c.DocumentDir != "" {
		info, err := os.Stat(c.DocumentDir)
		if err != nil {
			return fmt.Errorf("documentDir %q: %w", c.DocumentDir, err)
		}
		if !info.IsDir() {
			return fmt.Errorf("documentDir %q is not a directory", c.DocumentDir)
		}
	}
	return nil
}
