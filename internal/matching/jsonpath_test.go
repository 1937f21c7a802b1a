package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchJSONPath(t *testing.T) {
	body := []byte(`{
		"user": {"name": "alice", "age": 30, "admin": false},
		"items": [{"id": 1}, {"id": 2}],
		"note": null
	}`)

	tests := []struct {
		name     string
		path     string
		expected interface{}
		want     bool
	}{
		{"string value", "$.user.name", "alice", true},
		{"string mismatch", "$.user.name", "bob", false},
		{"number from int", "$.user.age", 30, true},
		{"number from int64", "$.user.age", int64(30), true},
		{"number from uint64", "$.user.age", uint64(30), true},
		{"number from float", "$.user.age", 30.0, true},
		{"number against string", "$.user.age", "30", false},
		{"string against number", "$.user.name", 1, false},
		{"object", "$.items[0]", map[string]interface{}{"id": float64(1)}, true},
		{"bool", "$.user.admin", false, true},
		{"null", "$.note", nil, true},
		{"wildcard any element", "$.items[*].id", 2, true},
		{"exists", "$.user.age", map[string]interface{}{"exists": true}, true},
		{"exists on missing", "$.user.email", map[string]interface{}{"exists": true}, false},
		{"not exists on missing", "$.user.email", map[string]interface{}{"exists": false}, true},
		{"not exists on present", "$.user.name", map[string]interface{}{"exists": false}, false},
		{"exists with non-bool is a literal", "$.user", map[string]interface{}{"exists": "yes"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, err := CompileJSONPath(tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, MatchJSONPath(x, tt.expected, body))
		})
	}
}

func TestMatchJSONPathInvalidBody(t *testing.T) {
	x, err := CompileJSONPath("$.a")
	require.NoError(t, err)
	assert.False(t, MatchJSONPath(x, "b", []byte("not json")))
}

func TestCompileJSONPathError(t *testing.T) {
	_, err := CompileJSONPath("$.user[")
	assert.Error(t, err)
}
