package matching

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// MatchPath checks if the request path matches the pattern.
// Supports:
//   - Exact match: "/api/users" matches "/api/users"
//   - Wildcard: "/api/users/*" matches "/api/users/123"
//   - Named params: "/api/users/{id}" matches "/api/users/123"
func MatchPath(pattern, path string) bool {
	if pattern == path {
		return true
	}

	if strings.Contains(pattern, "{") && strings.Contains(pattern, "}") {
		if matchNamedParams(pattern, path) {
			return true
		}
	}

	// Trailing wildcard also matches the bare prefix.
	if strings.HasSuffix(pattern, "/*") {
		prefix := strings.TrimSuffix(pattern, "/*")
		if strings.HasPrefix(path, prefix+"/") || path == prefix {
			return true
		}
	}

	if strings.Contains(pattern, "*") {
		return matchWildcard(pattern, path)
	}

	return false
}

// matchNamedParams checks if path matches a pattern with named parameters.
// Example: "/users/{id}" matches "/users/123"
func matchNamedParams(pattern, path string) bool {
	patternParts := strings.Split(strings.Trim(pattern, "/"), "/")
	pathParts := strings.Split(strings.Trim(path, "/"), "/")

	if len(patternParts) != len(pathParts) {
		return false
	}

	for i, patternPart := range patternParts {
		if strings.HasPrefix(patternPart, "{") && strings.HasSuffix(patternPart, "}") {
			continue
		}
		if patternPart != pathParts[i] {
			return false
		}
	}

	return true
}

// matchWildcard performs simple wildcard matching where * matches any
// sequence of characters.
func matchWildcard(pattern, value string) bool {
	parts := strings.Split(pattern, "*")
	if len(parts) == 1 {
		return pattern == value
	}

	pos := 0
	for i, part := range parts {
		if part == "" {
			continue
		}

		if i == 0 {
			if !strings.HasPrefix(value, part) {
				return false
			}
			pos = len(part)
			continue
		}

		if i == len(parts)-1 {
			return strings.HasSuffix(value[pos:], part)
		}

		idx := strings.Index(value[pos:], part)
		if idx == -1 {
			return false
		}
		pos += idx + len(part)
	}

	return true
}

// ValidateGlob reports whether pattern is a well-formed doublestar pattern.
func ValidateGlob(pattern string) error {
	if !doublestar.ValidatePattern(pattern) {
		return fmt.Errorf("invalid glob pattern %q", pattern)
	}
	return nil
}

// MatchGlob checks path against a doublestar pattern. "**" crosses
// separators, "*" does not. The pattern must have passed ValidateGlob.
func MatchGlob(pattern, path string) bool {
	ok, err := doublestar.Match(pattern, path)
	return err == nil && ok
}
