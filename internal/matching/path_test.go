package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchPath(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		path    string
		want    bool
	}{
		{"exact", "/api/users", "/api/users", true},
		{"exact mismatch", "/api/users", "/api/user", false},
		{"named param", "/api/users/{id}", "/api/users/42", true},
		{"named param segment count", "/api/users/{id}", "/api/users/42/posts", false},
		{"trailing wildcard", "/api/users/*", "/api/users/42/posts", true},
		{"trailing wildcard bare prefix", "/api/users/*", "/api/users", true},
		{"middle wildcard", "/api/*/items", "/api/orders/items", true},
		{"middle wildcard suffix mismatch", "/api/*/items", "/api/orders/items/1", false},
		{"leading wildcard", "*.json", "/data/report.json", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchPath(tt.pattern, tt.path))
		})
	}
}

func TestMatchGlob(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		path    string
		want    bool
	}{
		{"double star crosses segments", "/files/**/*.json", "/files/a/b/c.json", true},
		{"single star stays in segment", "/files/*.json", "/files/a/c.json", false},
		{"braces", "/v{1,2}/users", "/v2/users", true},
		{"no match", "/files/**", "/other/x", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NoError(t, ValidateGlob(tt.pattern))
			assert.Equal(t, tt.want, MatchGlob(tt.pattern, tt.path))
		})
	}
}

func TestValidateGlobRejectsMalformed(t *testing.T) {
	assert.Error(t, ValidateGlob("/files/[a-"))
}
