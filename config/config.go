// Package config provides configuration loading and management for sosagraph.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/c360studio/sosagraph/export"
	"github.com/c360studio/sosagraph/identifier"
	"gopkg.in/yaml.v3"
)

// Config represents the complete sosagraph configuration
type Config struct {
	Graph   GraphConfig   `yaml:"graph"`
	Export  ExportConfig  `yaml:"export"`
	Metrics MetricsConfig `yaml:"metrics"`
	Log     LogConfig     `yaml:"log"`
}

// GraphConfig configures identifier minting
type GraphConfig struct {
	// BaseIRI mints IRIs under this namespace instead of blank nodes (empty = blank nodes)
	BaseIRI string `yaml:"base_iri"`
	// BlankPrefix starts every minted blank node label (default: n)
	BlankPrefix string `yaml:"blank_prefix"`
}

// ExportConfig configures serialization
type ExportConfig struct {
	// Format is turtle, ntriples or jsonld (aliases ttl, nt, json-ld accepted)
	Format string `yaml:"format"`
	// Output is the output file (empty = stdout)
	Output string `yaml:"output"`
}

// MetricsConfig configures store metrics
type MetricsConfig struct {
	// Enabled registers Prometheus collectors on the store
	Enabled bool `yaml:"enabled"`
}

// LogConfig configures logging
type LogConfig struct {
	// Level is debug, info, warn or error
	Level string `yaml:"level"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Graph: GraphConfig{
			BaseIRI:     "", // Blank nodes
			BlankPrefix: identifier.DefaultBlankPrefix,
		},
		Export: ExportConfig{
			Format: string(export.FormatTurtle),
			Output: "",
		},
		Metrics: MetricsConfig{
			Enabled: false,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if _, err := export.ParseFormat(c.Export.Format); err != nil {
		return fmt.Errorf("export.format: %w", err)
	}
	if _, err := c.Allocator(); err != nil {
		return fmt.Errorf("graph: %w", err)
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	return nil
}

// Allocator builds the identifier allocator described by the graph section.
func (c *Config) Allocator() (*identifier.Allocator, error) {
	opts := []identifier.Option{identifier.WithBlankPrefix(c.Graph.BlankPrefix)}
	if c.Graph.BaseIRI != "" {
		opts = append(opts, identifier.WithBaseIRI(c.Graph.BaseIRI))
	}
	return identifier.NewAllocator(opts...)
}

// Format returns the parsed export format.
func (c *Config) Format() (export.Format, error) {
	return export.ParseFormat(c.Export.Format)
}

// ParseLevel maps a level name to a slog level.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown level %q", level)
	}
}

// LoadFromFile loads one configuration layer from a YAML file. Keys the file
// leaves out stay zero so that Merge does not override lower layers with
// defaults; apply it on top of DefaultConfig to get a complete config.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := &Config{}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	// Ensure parent directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Merge merges another config into this one (other takes precedence for non-zero values)
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	// Graph
	if other.Graph.BaseIRI != "" {
		c.Graph.BaseIRI = other.Graph.BaseIRI
	}
	if other.Graph.BlankPrefix != "" {
		c.Graph.BlankPrefix = other.Graph.BlankPrefix
	}

	// Export
	if other.Export.Format != "" {
		c.Export.Format = other.Export.Format
	}
	if other.Export.Output != "" {
		c.Export.Output = other.Export.Output
	}

	// Metrics can only be switched on by a later layer
	if other.Metrics.Enabled {
		c.Metrics.Enabled = true
	}

	// Log
	if other.Log.Level != "" {
		c.Log.Level = other.Log.Level
	}
}
