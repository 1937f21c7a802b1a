package cliconfig

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LocalConfigFileName is the name of the local config file.
const LocalConfigFileName = ".mockhttp.yaml"

// FindLocalConfig returns the path of the local config file in dir, or ""
// when there is none.
func FindLocalConfig(dir string) (string, error) {
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", err
		}
		dir = cwd
	}
	path := filepath.Join(dir, LocalConfigFileName)
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}
	return "", nil
}

// LoadConfigFile loads a Config from a YAML file. Relative fixture paths
// are resolved against the file's directory.
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		var typeErr *yaml.TypeError
		if errors.As(err, &typeErr) && len(typeErr.Errors) > 0 {
			return nil, &ConfigError{Path: path, Message: typeErr.Errors[0]}
		}
		return nil, &ConfigError{Path: path, Message: err.Error()}
	}

	dir := filepath.Dir(path)
	for i, p := range cfg.Fixtures {
		if !filepath.IsAbs(p) {
			cfg.Fixtures[i] = filepath.Join(dir, p)
		}
	}
	cfg.Sources = make(map[string]string)
	return &cfg, nil
}

// ConfigError represents a configuration file error. YAML messages carry
// their own line numbers.
type ConfigError struct {
	Path    string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Path + ": " + e.Message
}

// LoadAll merges the defaults, the local config file in dir and the
// environment. Flags are applied by the caller.
func LoadAll(dir string) (*Config, error) {
	cfg := NewDefault()

	localPath, err := FindLocalConfig(dir)
	if err != nil {
		return nil, err
	}
	if localPath != "" {
		localCfg, err := LoadConfigFile(localPath)
		if err != nil {
			return nil, err
		}
		MergeConfig(cfg, localCfg, SourceLocal)
	}

	if err := LoadEnvConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
