package cliconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Environment variable names
const (
	EnvLogLevel       = "MOCKHTTP_LOG_LEVEL"
	EnvLogFormat      = "MOCKHTTP_LOG_FORMAT"
	EnvFixtures       = "MOCKHTTP_FIXTURES"
	EnvPrepareHeaders = "MOCKHTTP_PREPARE_HEADERS"
)

// LoadEnvConfig applies the environment variables that are set.
// MOCKHTTP_FIXTURES is a list of paths or globs separated by the OS path
// list separator. An unparseable MOCKHTTP_PREPARE_HEADERS is reported as a
// *ConfigError.
func LoadEnvConfig(cfg *Config) error {
	if cfg.Sources == nil {
		cfg.Sources = make(map[string]string)
	}

	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
		cfg.Sources["logLevel"] = SourceEnv
	}

	if v := os.Getenv(EnvLogFormat); v != "" {
		cfg.LogFormat = v
		cfg.Sources["logFormat"] = SourceEnv
	}

	if v := os.Getenv(EnvFixtures); v != "" {
		var paths []string
		for _, p := range filepath.SplitList(v) {
			if p = strings.TrimSpace(p); p != "" {
				paths = append(paths, p)
			}
		}
		cfg.Fixtures = paths
		cfg.Sources["fixtures"] = SourceEnv
	}

	if v := os.Getenv(EnvPrepareHeaders); v != "" {
		enabled, err := parseBool(v)
		if err != nil {
			return &ConfigError{Path: EnvPrepareHeaders, Message: err.Error()}
		}
		cfg.PrepareHeaders = &enabled
		cfg.Sources["prepareHeaders"] = SourceEnv
	}
	return nil
}

// parseBool accepts the strconv.ParseBool forms plus yes/no and on/off,
// in any case.
func parseBool(v string) (bool, error) {
	lower := strings.ToLower(strings.TrimSpace(v))
	switch lower {
	case "yes", "on":
		return true, nil
	case "no", "off":
		return false, nil
	}
	b, err := strconv.ParseBool(lower)
	if err != nil {
		return false, fmt.Errorf("invalid boolean %q", v)
	}
	return b, nil
}
