package matching

import (
	"net/http"
	"strings"
)

// MatchMethod checks if the request method matches, ignoring case.
func MatchMethod(expected, actual string) bool {
	return strings.EqualFold(expected, actual)
}

// MatchHeaderPattern checks if a header matches a pattern.
// Header names are case-insensitive. Supports exact values and simple
// prefix (value*), suffix (*value) and contains (*value*) patterns.
// A lone "*" only requires the header to be present.
func MatchHeaderPattern(name, pattern string, headers http.Header) bool {
	values := headers.Values(name)
	if len(values) == 0 {
		return false
	}
	for _, v := range values {
		if matchHeaderValue(pattern, v) {
			return true
		}
	}
	return false
}

func matchHeaderValue(pattern, actual string) bool {
	if !strings.Contains(pattern, "*") {
		return actual == pattern
	}
	if pattern == "*" {
		return true
	}

	switch {
	case strings.HasPrefix(pattern, "*") && strings.HasSuffix(pattern, "*"):
		return strings.Contains(actual, strings.Trim(pattern, "*"))
	case strings.HasSuffix(pattern, "*"):
		return strings.HasPrefix(actual, strings.TrimSuffix(pattern, "*"))
	case strings.HasPrefix(pattern, "*"):
		return strings.HasSuffix(actual, strings.TrimPrefix(pattern, "*"))
	default:
		return matchWildcard(pattern, actual)
	}
}
