// Package parse provides string parsing utilities for CLI commands.
package parse

import (
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/net/http/httpguts"
)

// KeyValue parses a "key:value" or "key=value" string.
// If delimiters are provided, uses the first one found; otherwise defaults to ':'.
// Returns the key, value, and a boolean indicating success.
func KeyValue(s string, delimiters ...rune) (key, value string, ok bool) {
	if len(delimiters) == 0 {
		delimiters = []rune{':'}
	}

	for i, c := range s {
		for _, d := range delimiters {
			if c == d {
				return s[:i], s[i+1:], true
			}
		}
	}
	return "", "", false
}

// Headers parses "Name: value" or "Name=value" strings into an
// http.Header. Repeated names keep every value, in order. Names and values
// must be valid on the wire.
func Headers(headers []string) (http.Header, error) {
	result := make(http.Header)
	for _, h := range headers {
		key, value, ok := KeyValue(h, ':', '=')
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid header %q: expected Name: value", h)
		}
		if !httpguts.ValidHeaderFieldName(key) {
			return nil, fmt.Errorf("invalid header name %q", key)
		}
		if !httpguts.ValidHeaderFieldValue(value) {
			return nil, fmt.Errorf("invalid value for header %q", key)
		}
		result.Add(key, value)
	}
	return result, nil
}
