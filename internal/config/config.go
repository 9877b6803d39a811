// Package config provides configuration management for markguard scans.
package config

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gobwas/glob"
	"gopkg.in/yaml.v3"
)

// DefaultPath is where markguard looks for configuration when the caller
// does not name a file.
const DefaultPath = ".markguard.yaml"

// Config represents the complete markguard configuration loaded from
// .markguard.yaml.
type Config struct {
	Version int `yaml:"version" json:"version"`

	// CustomMessage is prefixed verbatim to every offense message.
	CustomMessage string `yaml:"custom_message,omitempty" json:"custom_message,omitempty"`

	// Include and Exclude are glob patterns selecting which template
	// files a scan visits. Paths are matched slash-separated, relative
	// to the scan root.
	Include []string `yaml:"include,omitempty" json:"include,omitempty"`
	Exclude []string `yaml:"exclude,omitempty" json:"exclude,omitempty"`

	include []glob.Glob
	exclude []glob.Glob
}

// Default returns the configuration used when no config file exists:
// scan every template file, no custom message.
func Default() *Config {
	cfg := &Config{
		Version: 1,
		Include: []string{"**.erb", "**.html", "**.htm"},
	}
	// Defaults always compile.
	_ = Validate(cfg)
	return cfg
}

// Load reads and parses a YAML configuration file, then validates the
// result. A missing file yields the default configuration.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load config %q: %w", path, err)
	}
	return LoadFromBytes(data)
}

// LoadFromBytes parses YAML configuration from bytes and validates the
// result. Unknown fields in the YAML cause a parse error.
func LoadFromBytes(data []byte) (*Config, error) {
	cfg := &Config{}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	if err := decoder.Decode(cfg); err != nil {
		return nil, fmt.Errorf("parse config YAML: %w", err)
	}

	if len(cfg.Include) == 0 {
		cfg.Include = Default().Include
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that the configuration is well-formed and compiles its
// include and exclude patterns.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("validate: config is nil")
	}

	if cfg.Version != 1 {
		return fmt.Errorf("validate: unsupported config version %d (expected 1)", cfg.Version)
	}

	cfg.include = cfg.include[:0]
	for _, pattern := range cfg.Include {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return fmt.Errorf("validate: include pattern %q: %w", pattern, err)
		}
		cfg.include = append(cfg.include, g)
	}

	cfg.exclude = cfg.exclude[:0]
	for _, pattern := range cfg.Exclude {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return fmt.Errorf("validate: exclude pattern %q: %w", pattern, err)
		}
		cfg.exclude = append(cfg.exclude, g)
	}

	return nil
}

// Matches reports whether path is selected by the include patterns and
// not rejected by the exclude patterns. Paths are normalized to forward
// slashes before matching.
func (c *Config) Matches(path string) bool {
	normalized := filepath.ToSlash(path)

	for _, g := range c.exclude {
		if g.Match(normalized) {
			return false
		}
	}
	for _, g := range c.include {
		if g.Match(normalized) {
			return true
		}
	}
	return false
}

// LogConfig logs the loaded configuration at info level for debugging.
func LogConfig(cfg *Config) {
	slog.Info("config loaded",
		"version", cfg.Version,
		"custom_message", cfg.CustomMessage != "",
		"include", len(cfg.Include),
		"exclude", len(cfg.Exclude),
	)
}
