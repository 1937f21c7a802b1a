package matching

import (
	"net/http"
	"net/url"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchHeaderPattern(t *testing.T) {
	headers := http.Header{}
	headers.Set("Authorization", "Bearer abc123")
	headers.Add("Accept", "text/html")
	headers.Add("Accept", "application/json")

	tests := []struct {
		name    string
		header  string
		pattern string
		want    bool
	}{
		{"exact", "Authorization", "Bearer abc123", true},
		{"case-insensitive name", "authorization", "Bearer abc123", true},
		{"prefix", "Authorization", "Bearer *", true},
		{"suffix", "Authorization", "*123", true},
		{"contains", "Authorization", "*abc*", true},
		{"presence", "Authorization", "*", true},
		{"second value", "Accept", "application/json", true},
		{"missing header", "X-Missing", "*", false},
		{"value mismatch", "Authorization", "Basic *", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchHeaderPattern(tt.header, tt.pattern, headers))
		})
	}
}

func TestMatchMethod(t *testing.T) {
	assert.True(t, MatchMethod("get", http.MethodGet))
	assert.False(t, MatchMethod(http.MethodPost, http.MethodGet))
}

func TestMatchQueryParam(t *testing.T) {
	params := url.Values{"tag": {"a", "b"}, "page": {"2"}}

	assert.True(t, MatchQueryParam("page", "2", params))
	assert.True(t, MatchQueryParam("tag", "b", params))
	assert.False(t, MatchQueryParam("page", "3", params))
	assert.True(t, HasQueryParam("tag", params))
	assert.False(t, HasQueryParam("missing", params))
}

func TestMatchBody(t *testing.T) {
	body := []byte(`{"user":"alice"}`)

	assert.True(t, MatchBodyContains(body, "alice"))
	assert.True(t, MatchBodyContains(body, ""))
	assert.False(t, MatchBodyContains(body, "bob"))

	assert.True(t, MatchBodyPattern(regexp.MustCompile(`"user":"\w+"`), body))
	assert.False(t, MatchBodyPattern(nil, body))
}
