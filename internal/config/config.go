// Package config holds shared constants and the sable.yaml project
// configuration controlling the normalize pipeline.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the top-level sable.yaml configuration.
type Config struct {
	Rename  RenameConfig  `yaml:"rename"`
	Printer PrinterConfig `yaml:"printer"`
}

// RenameConfig controls the name-disambiguation pass.
type RenameConfig struct {
	// Policy selects the naming policy: "contextual" (default),
	// "inline" or "boilerplate".
	Policy string `yaml:"policy,omitempty"`

	// Prefix is the id prefix for the inline and boilerplate policies.
	// Required for those policies, ignored for contextual.
	Prefix string `yaml:"prefix,omitempty"`

	// Whitelist restricts renaming to the listed names. Empty means no
	// restriction.
	Whitelist []string `yaml:"whitelist,omitempty"`

	// Invert runs the rename inverter after disambiguation, collapsing
	// suffixed names back to their original spelling where collision-free.
	Invert bool `yaml:"invert,omitempty"`

	// Report is a SQLite file path receiving the rename log. Empty
	// disables reporting.
	Report string `yaml:"report,omitempty"`
}

// PrinterConfig controls the code printer.
type PrinterConfig struct {
	// Width is the target line width (0 = default).
	Width int `yaml:"width,omitempty"`
}

// Default returns the configuration used when no sable.yaml exists.
func Default() *Config {
	return &Config{
		Rename:  RenameConfig{Policy: PolicyContextual},
		Printer: PrinterConfig{Width: DefaultPrinterWidth},
	}
}

// ParseConfig parses and validates sable.yaml content. The path is used
// in error messages only.
func ParseConfig(data []byte, path string) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := cfg.validate(path); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfig reads sable.yaml from dir, falling back to defaults when
// the file does not exist.
func LoadConfig(dir string) (*Config, error) {
	path := filepath.Join(dir, ConfigFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}
	return ParseConfig(data, path)
}

func (c *Config) validate(path string) error {
	switch c.Rename.Policy {
	case "", PolicyContextual, PolicyInline, PolicyBoilerplate:
	default:
		return fmt.Errorf("%s: unknown rename policy %q", path, c.Rename.Policy)
	}
	if c.Rename.Policy == PolicyInline || c.Rename.Policy == PolicyBoilerplate {
		if c.Rename.Prefix == "" {
			return fmt.Errorf("%s: rename policy %q requires a prefix", path, c.Rename.Policy)
		}
	}
	if c.Printer.Width < 0 {
		return fmt.Errorf("%s: printer width must not be negative", path)
	}
	return nil
}
