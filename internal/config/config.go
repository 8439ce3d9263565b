// Package config loads the optional YAML run configuration.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	m "github.com/binshift/cnvmerge/internal/model"
)

// Merge policy names accepted in configuration and flags.
const (
	PolicyExcludedIntervals = "excluded-intervals"
	PolicySpan              = "span"
)

// Defaults applied when neither the config file nor a flag sets a value.
const (
	DefaultMinimumCallSize  = 100000
	DefaultMaximumMergeSpan = 100000
)

// Config holds the tunable parameters of a consolidation run. Flags override
// file values; the zero fields of a missing file fall back to defaults.
type Config struct {
	Model            string `yaml:"model"`
	Policy           string `yaml:"policy"`
	MinimumCallSize  int    `yaml:"minimum_call_size"`
	MaximumMergeSpan int    `yaml:"maximum_merge_span"`
	SampleName       string `yaml:"sample_name"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Model:            string(m.ModelLogistic),
		Policy:           PolicyExcludedIntervals,
		MinimumCallSize:  DefaultMinimumCallSize,
		MaximumMergeSpan: DefaultMaximumMergeSpan,
		SampleName:       "SAMPLE",
	}
}

// Load reads and parses the configuration file at the given path, filling
// unset fields from Default.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file at %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks that the configured names and sizes are usable.
func (c *Config) Validate() error {
	if _, ok := m.ParseScoringModel(c.Model); !ok {
		return fmt.Errorf("unknown scoring model %q", c.Model)
	}

	if c.Policy != PolicyExcludedIntervals && c.Policy != PolicySpan {
		return fmt.Errorf("unknown merge policy %q", c.Policy)
	}

	if c.MinimumCallSize <= 0 {
		return fmt.Errorf("minimum call size must be positive, got %d", c.MinimumCallSize)
	}

	if c.MaximumMergeSpan < 0 {
		return fmt.Errorf("maximum merge span must be non-negative, got %d", c.MaximumMergeSpan)
	}

	return nil
}
