package cliconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getmockd/mockhttp/pkg/logging"
)

func writeLocal(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, LocalConfigFileName), []byte(content), 0o600))
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr string
	}{
		{name: "defaults", config: *NewDefault()},
		{name: "mixed case", config: Config{LogLevel: "DEBUG", LogFormat: "JSON"}},
		{name: "bad level", config: Config{LogLevel: "loud", LogFormat: "text"}, wantErr: `logLevel "loud"`},
		{name: "bad format", config: Config{LogLevel: "info", LogFormat: "xml"}, wantErr: `logFormat "xml"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfigLogging(t *testing.T) {
	cfg := Config{LogLevel: "debug", LogFormat: "json"}
	lc := cfg.Logging()
	assert.Equal(t, logging.LevelDebug, lc.Level)
	assert.Equal(t, logging.FormatJSON, lc.Format)
}

func TestLoadAllPrecedence(t *testing.T) {
	dir := t.TempDir()
	writeLocal(t, dir, "logLevel: info\nlogFormat: json\nfixtures:\n  - fixtures/*.yaml\nprepareHeaders: false\n")
	t.Setenv(EnvLogLevel, "error")
	t.Setenv(EnvLogFormat, "")
	t.Setenv(EnvFixtures, "")
	t.Setenv(EnvPrepareHeaders, "")

	cfg, err := LoadAll(dir)
	require.NoError(t, err)

	assert.Equal(t, "error", cfg.LogLevel)
	assert.Equal(t, SourceEnv, cfg.Sources["logLevel"])
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, SourceLocal, cfg.Sources["logFormat"])
	assert.Equal(t, []string{filepath.Join(dir, "fixtures/*.yaml")}, cfg.Fixtures)
	require.NotNil(t, cfg.PrepareHeaders)
	assert.False(t, cfg.Prepare())
	assert.Equal(t, SourceLocal, cfg.Sources["prepareHeaders"])
}

func TestLoadAllWithoutLocalFile(t *testing.T) {
	t.Setenv(EnvLogLevel, "")
	t.Setenv(EnvLogFormat, "")
	t.Setenv(EnvFixtures, "a.yaml"+string(os.PathListSeparator)+" b/*.yaml ")
	t.Setenv(EnvPrepareHeaders, "yes")

	cfg, err := LoadAll(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, SourceDefault, cfg.Sources["logLevel"])
	assert.Equal(t, []string{"a.yaml", "b/*.yaml"}, cfg.Fixtures)
	assert.True(t, cfg.Prepare())
}

func TestLoadEnvPrepareHeaders(t *testing.T) {
	tests := []struct {
		value   string
		want    bool
		wantErr bool
	}{
		{value: "true", want: true},
		{value: "TRUE", want: true},
		{value: "True", want: true},
		{value: "1", want: true},
		{value: "Yes", want: true},
		{value: "on", want: true},
		{value: "false"},
		{value: "FALSE"},
		{value: "0"},
		{value: "no"},
		{value: "Off"},
		{value: "maybe", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv(EnvLogLevel, "")
			t.Setenv(EnvLogFormat, "")
			t.Setenv(EnvFixtures, "")
			t.Setenv(EnvPrepareHeaders, tt.value)

			cfg, err := LoadAll(t.TempDir())
			if tt.wantErr {
				var ce *ConfigError
				require.ErrorAs(t, err, &ce)
				assert.Equal(t, EnvPrepareHeaders, ce.Path)
				assert.Contains(t, ce.Message, tt.value)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, cfg.PrepareHeaders)
			assert.Equal(t, tt.want, cfg.Prepare())
			assert.Equal(t, SourceEnv, cfg.Sources["prepareHeaders"])
		})
	}
}

func TestLoadConfigFileErrors(t *testing.T) {
	dir := t.TempDir()
	writeLocal(t, dir, "logLevel: [debug\n")

	_, err := LoadAll(dir)
	var ce *ConfigError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, filepath.Join(dir, LocalConfigFileName), ce.Path)

	writeLocal(t, dir, "fixtures: 12\n")
	_, err = LoadConfigFile(filepath.Join(dir, LocalConfigFileName))
	require.ErrorAs(t, err, &ce)
	assert.Contains(t, ce.Message, "line 1")
}

func TestMergeConfigSkipsZeroValues(t *testing.T) {
	target := NewDefault()
	MergeConfig(target, &Config{LogFormat: "json"}, SourceFlag)
	MergeConfig(target, nil, SourceFlag)

	assert.Equal(t, "warn", target.LogLevel)
	assert.Equal(t, "json", target.LogFormat)
	assert.Equal(t, SourceFlag, target.Sources["logFormat"])
	assert.Nil(t, target.PrepareHeaders)
}
