// Package config holds the configuration document of the standard proxy factory.
//
// A configuration is a JSON or YAML document:
//
//	logging:
//	  level: debug
//	  format: json
//	tracing:
//	  endpoint: localhost:4318
//	  serviceName: billing
//	defaultMode: signature
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/anoideaopen/hotswap/core/delegate"
	"github.com/anoideaopen/hotswap/core/logger"
	"github.com/anoideaopen/hotswap/core/telemetry"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// DefaultServiceName is the service name reported to the collector when none is configured.
const DefaultServiceName = "hotswap"

var ErrCfgBytesEmpty = errors.New("config bytes is empty")

// Config is the configuration of the standard proxy factory.
type Config struct {
	Logging Logging `json:"logging" yaml:"logging"`
	Tracing Tracing `json:"tracing" yaml:"tracing"`
	// DefaultMode, when set, forces the delegation mode of every proxy created by
	// the factory, regardless of the mode the builder selected.
	DefaultMode string `json:"defaultMode,omitempty" yaml:"defaultMode,omitempty"`
}

// Logging configures the shared logger.
type Logging struct {
	Level  string `json:"level,omitempty"  yaml:"level,omitempty"`
	Format string `json:"format,omitempty" yaml:"format,omitempty"`
}

// Tracing configures the trace exporter. Tracing is disabled without an endpoint.
type Tracing struct {
	Endpoint    string `json:"endpoint,omitempty"    yaml:"endpoint,omitempty"`
	CACerts     string `json:"caCerts,omitempty"     yaml:"caCerts,omitempty"`
	ServiceName string `json:"serviceName,omitempty" yaml:"serviceName,omitempty"`
}

// FromBytes parses a JSON or YAML configuration and validates it.
//
// If the provided cfgBytes slice is empty, the function returns an ErrCfgBytesEmpty error.
// Unknown fields are rejected.
func FromBytes(cfgBytes []byte) (*Config, error) {
	if len(bytes.TrimSpace(cfgBytes)) == 0 {
		return nil, ErrCfgBytesEmpty
	}

	cfg := new(Config)
	if IsJSON(cfgBytes) {
		dec := json.NewDecoder(bytes.NewReader(cfgBytes))
		dec.DisallowUnknownFields()
		if err := dec.Decode(cfg); err != nil {
			return nil, fmt.Errorf("parsing json config: %w", err)
		}
	} else {
		dec := yaml.NewDecoder(bytes.NewReader(cfgBytes))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil {
			return nil, fmt.Errorf("parsing yaml config: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// IsJSON checks if the provided bytes are a valid JSON document.
func IsJSON(cfgBytes []byte) bool {
	return json.Valid(cfgBytes)
}

// Validate checks the logging level and format and the default mode.
func (c *Config) Validate() error {
	if c.Logging.Level != "" {
		if _, err := logrus.ParseLevel(c.Logging.Level); err != nil {
			return fmt.Errorf("logging level: %w", err)
		}
	}

	if _, err := logger.Formatter(c.Logging.Format); err != nil {
		return fmt.Errorf("logging format: %w", err)
	}

	if _, _, err := c.Mode(); err != nil {
		return fmt.Errorf("default mode: %w", err)
	}

	return nil
}

// Mode returns the configured default mode. The second result is false when no
// default mode is set.
func (c *Config) Mode() (delegate.Mode, bool, error) {
	if c.DefaultMode == "" {
		return delegate.Direct, false, nil
	}

	mode, err := delegate.ParseMode(c.DefaultMode)
	if err != nil {
		return delegate.Direct, false, err
	}

	return mode, true, nil
}

// CollectorEndpoint returns the trace collector settings, or nil when tracing is disabled.
func (c *Config) CollectorEndpoint() *telemetry.CollectorEndpoint {
	if c.Tracing.Endpoint == "" {
		return nil
	}
	return &telemetry.CollectorEndpoint{
		Endpoint: c.Tracing.Endpoint,
		CACerts:  c.Tracing.CACerts,
	}
}

// ServiceName returns the configured service name or DefaultServiceName.
func (c *Config) ServiceName() string {
	if c.Tracing.ServiceName == "" {
		return DefaultServiceName
	}
	return c.Tracing.ServiceName
}
