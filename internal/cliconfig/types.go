package cliconfig

import (
	"fmt"
	"strings"

	"github.com/getmockd/mockhttp/pkg/logging"
)

// Config holds the mockhttp command settings.
type Config struct {
	LogLevel       string   `yaml:"logLevel"`
	LogFormat      string   `yaml:"logFormat"`
	Fixtures       []string `yaml:"fixtures,omitempty"`
	PrepareHeaders *bool    `yaml:"prepareHeaders,omitempty"`

	// Sources tracks where each value came from.
	Sources map[string]string `yaml:"-"`
}

// Config sources.
const (
	SourceDefault = "default"
	SourceEnv     = "env"
	SourceLocal   = "local"
	SourceFlag    = "flag"
)

// NewDefault returns a Config with default values.
func NewDefault() *Config {
	return &Config{
		LogLevel:  "warn",
		LogFormat: "text",
		Sources: map[string]string{
			"logLevel":       SourceDefault,
			"logFormat":      SourceDefault,
			"fixtures":       SourceDefault,
			"prepareHeaders": SourceDefault,
		},
	}
}

// Validate checks that the config values are usable.
func (c *Config) Validate() error {
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logLevel %q must be one of debug, info, warn, error", c.LogLevel)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("logFormat %q must be text or json", c.LogFormat)
	}
	return nil
}

// Prepare reports whether default header preparation is enabled.
func (c *Config) Prepare() bool {
	return c.PrepareHeaders != nil && *c.PrepareHeaders
}

// Logging converts the log settings into a logging.Config.
func (c *Config) Logging() logging.Config {
	cfg := logging.DefaultConfig()
	cfg.Level = logging.ParseLevel(c.LogLevel)
	cfg.Format = logging.ParseFormat(c.LogFormat)
	return cfg
}
