package fixture

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"
)

// ErrNoFiles is returned when a glob pattern matches no files.
var ErrNoFiles = errors.New("fixture: no files match")

// envVarPattern matches ${VAR_NAME} or ${VAR_NAME:-default}
var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(?::-([^}]*))?\}`)

// ExpandEnvVars replaces ${VAR} and ${VAR:-default} references. Unset or
// empty variables without a default expand to the empty string.
func ExpandEnvVars(input string) string {
	return envVarPattern.ReplaceAllStringFunc(input, func(match string) string {
		submatch := envVarPattern.FindStringSubmatch(match)
		if val := os.Getenv(submatch[1]); val != "" {
			return val
		}
		return submatch[2]
	})
}

// Parse decodes fixtures from YAML data. source names the data in errors
// and is recorded on each fixture.
func Parse(data []byte, source string) ([]Fixture, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("%s: file is empty", source)
	}

	expanded := []byte(ExpandEnvVars(string(data)))
	if err := validate(expanded, source); err != nil {
		return nil, err
	}

	var content fileContent
	if err := yaml.Unmarshal(expanded, &content); err != nil {
		return nil, fmt.Errorf("%s: parsing YAML: %w", source, err)
	}

	for i := range content.Fixtures {
		f := &content.Fixtures[i]
		f.Source = fmt.Sprintf("%s[%d]", source, i)
		if _, _, err := f.Build(); err != nil {
			return nil, err
		}
	}
	return content.Fixtures, nil
}

// LoadFile reads fixtures from a single file.
func LoadFile(path string) ([]Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("file not found: %s", path)
		}
		return nil, fmt.Errorf("reading fixture file: %w", err)
	}
	return Parse(data, path)
}

// LoadGlob reads fixtures from every file matching a doublestar pattern,
// in lexical path order.
func LoadGlob(pattern string) ([]Fixture, error) {
	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return nil, fmt.Errorf("expanding glob pattern %q: %w", pattern, err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoFiles, pattern)
	}
	sort.Strings(matches)

	var out []Fixture
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", m, err)
		}
		if info.IsDir() {
			continue
		}
		fixtures, err := LoadFile(m)
		if err != nil {
			return nil, err
		}
		out = append(out, fixtures...)
	}
	return out, nil
}

// Load reads fixtures from files and glob patterns, in argument order.
// Relative paths are resolved against baseDir when it is not empty.
func Load(baseDir string, paths ...string) ([]Fixture, error) {
	var out []Fixture
	for _, p := range paths {
		if baseDir != "" && !filepath.IsAbs(p) {
			p = filepath.Join(baseDir, p)
		}

		var (
			fixtures []Fixture
			err      error
		)
		if strings.ContainsAny(p, "*?[{") {
			fixtures, err = LoadGlob(p)
		} else {
			fixtures, err = LoadFile(p)
		}
		if err != nil {
			return nil, err
		}
		out = append(out, fixtures...)
	}
	return out, nil
}
