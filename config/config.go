package config

import (
	"fmt"

	"github.com/skillsenselab/apiwire/logger"
	"github.com/skillsenselab/apiwire/validation"
)

// Config is the top-level configuration for an application embedding
// apiwire. Projects extend it by embedding:
//
//	type MyConfig struct {
//	    config.Config `yaml:",inline" mapstructure:",squash"`
//	    Extra string  `yaml:"extra" mapstructure:"extra"`
//	}
type Config struct {
	Name        string         `yaml:"name" mapstructure:"name" validate:"required"`
	Environment string         `yaml:"environment" mapstructure:"environment" validate:"omitempty,oneof=development staging production"`
	Debug       bool           `yaml:"debug" mapstructure:"debug"`
	Logging     logger.Config  `yaml:"logging" mapstructure:"logging"`
	Resolver    ResolverConfig `yaml:"resolver" mapstructure:"resolver"`
	Tracing     TracingConfig  `yaml:"tracing" mapstructure:"tracing"`
}

// ResolverConfig holds resolver behavior knobs.
type ResolverConfig struct {
	// LogResolution enables per-construction debug logging.
	LogResolution bool `yaml:"log_resolution" mapstructure:"log_resolution"`
	// TraceResolution enables the tracing factory wrapper in wiring
	// helpers that honor it.
	TraceResolution bool `yaml:"trace_resolution" mapstructure:"trace_resolution"`
	// TracePrefix is the span name prefix for traced constructions.
	TracePrefix string `yaml:"trace_prefix" mapstructure:"trace_prefix"`
}

// TracingConfig holds OTLP exporter settings.
type TracingConfig struct {
	Enabled    bool    `yaml:"enabled" mapstructure:"enabled"`
	Endpoint   string  `yaml:"endpoint" mapstructure:"endpoint"`
	Insecure   bool    `yaml:"insecure" mapstructure:"insecure"`
	SampleRate float64 `yaml:"sample_rate" mapstructure:"sample_rate" validate:"gte=0,lte=1"`
}

// ApplyDefaults applies default values to the configuration.
func (c *Config) ApplyDefaults() {
	if c.Environment == "" {
		c.Environment = "development"
	}
	if c.Environment == "development" {
		c.Debug = true
	}
	c.Logging.ApplyDefaults()
	if c.Resolver.TracePrefix == "" {
		c.Resolver.TracePrefix = "apiwire"
	}
	if c.Tracing.Endpoint == "" {
		c.Tracing.Endpoint = "localhost:4318"
	}
	if c.Tracing.SampleRate == 0 {
		c.Tracing.SampleRate = 1.0
	}
}

// Validate validates the configuration, combining struct-tag checks
// with the logging section's own validation.
func (c *Config) Validate() error {
	if err := validation.Validate(c); err != nil {
		return err
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("config.logging: %w", err)
	}
	return nil
}
