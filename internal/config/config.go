// Package config loads the optional YAML tool configuration. Every field
// has a command-line flag counterpart; flags win over file values.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the tool configuration.
type Config struct {
	// Root is the source tree to scan.
	Root string `yaml:"root"`
	// Manifest is the output manifest path.
	Manifest string `yaml:"manifest"`
	// Package is the path to the package metadata file.
	Package string `yaml:"package"`
	// ExcludedEvents lists event names to drop from the supported set.
	ExcludedEvents []string `yaml:"excludedEvents"`
	// SkipBotEvents controls whether automated-account events are ignored
	// at runtime. Nil means unset.
	SkipBotEvents *bool `yaml:"skipBotEvents"`
}

// LoadFile loads and parses a YAML config file from the given path. A
// missing file yields an empty config.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return &Config{}, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML data into a Config.
func Parse(data []byte) (*Config, error) {
	var cfg Config

	err := yaml.Unmarshal(data, &cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	applyDefaults(&cfg)

	return &cfg, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(cfg *Config) {
	if cfg.Root == "" {
		cfg.Root = "."
	}

	if cfg.Manifest == "" {
		cfg.Manifest = "manifest.json"
	}

	if cfg.Package == "" {
		cfg.Package = "package.json"
	}
}
