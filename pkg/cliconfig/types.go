// Package cliconfig provides configuration types and loading for the mockserver CLI.
package cliconfig

import (
	"errors"
	"fmt"
	"time"

	"github.com/getmockd/mockserver/internal/matching"
)

// CLIConfig represents the complete configuration for the mockserver CLI.
// Configuration values can come from multiple sources with the following precedence:
// 1. Command-line flags (highest priority)
// 2. Environment variables
// 3. Local config file (.mockserverrc.yaml in current directory)
// 4. Global config file (~/.config/mockserver/config.yaml)
// 5. Default values (lowest priority)
type CLIConfig struct {
	// Mock tree
	MockDir string `yaml:"mockDir"`

	// Server settings
	Port         int `yaml:"port"`
	MetricsPort  int `yaml:"metricsPort"`
	ReadTimeout  int `yaml:"readTimeout"`
	WriteTimeout int `yaml:"writeTimeout"`

	// Matching
	Headers    []string `yaml:"headers"`
	HeadersEnv string   `yaml:"-"`

	// Output settings
	Verbose   bool   `yaml:"verbose"`
	Watch     bool   `yaml:"watch"`
	LogLevel  string `yaml:"logLevel"`
	LogFormat string `yaml:"logFormat"`
	LogFile   string `yaml:"logFile,omitempty"`

	// Sources tracks where each value came from (for debugging)
	Sources map[string]string `yaml:"-"`

	// SetFields records the YAML keys present in a loaded file, so an
	// explicit false can override a true from a lower layer.
	SetFields map[string]bool `yaml:"-"`
}

// ConfigSource identifies where a config value originated.
const (
	SourceDefault = "default"
	SourceEnv     = "env"
	SourceGlobal  = "global"
	SourceLocal   = "local"
	SourceFlag    = "flag"
)

// maxTimeout bounds read and write timeouts, in seconds.
const maxTimeout = 3600

// Validate checks the configuration for values the server cannot run with.
func (c *CLIConfig) Validate() error {
	var errs []error
	if c.MockDir == "" {
		errs = append(errs, errors.New("mockDir is required"))
	}
	if c.Port < 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("port %d is out of range (0-65535)", c.Port))
	}
	if c.MetricsPort < 0 || c.MetricsPort > 65535 {
		errs = append(errs, fmt.Errorf("metricsPort %d is out of range (0-65535)", c.MetricsPort))
	}
	if c.MetricsPort != 0 && c.MetricsPort == c.Port {
		errs = append(errs, errors.New("port and metricsPort cannot be the same"))
	}
	if c.ReadTimeout < 0 || c.ReadTimeout > maxTimeout {
		errs = append(errs, fmt.Errorf("readTimeout %d is out of range (0-%d)", c.ReadTimeout, maxTimeout))
	}
	if c.WriteTimeout < 0 || c.WriteTimeout > maxTimeout {
		errs = append(errs, fmt.Errorf("writeTimeout %d is out of range (0-%d)", c.WriteTimeout, maxTimeout))
	}
	return errors.Join(errs...)
}

// WatchedHeaders returns the header watch-list. A non-empty Headers list
// replaces HeadersEnv entirely.
func (c *CLIConfig) WatchedHeaders() []string {
	return matching.PrepareWatchedHeaders(c.Headers, c.HeadersEnv)
}

// ReadTimeoutDuration returns ReadTimeout as a duration.
func (c *CLIConfig) ReadTimeoutDuration() time.Duration {
	return time.Duration(c.ReadTimeout) * time.Second
}

// WriteTimeoutDuration returns WriteTimeout as a duration.
func (c *CLIConfig) WriteTimeoutDuration() time.Duration {
	return time.Duration(c.WriteTimeout) * time.Second
}
