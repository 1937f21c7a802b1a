package matching

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvalExpr(t *testing.T) {
	req := httptest.NewRequest("POST", "http://api.example.com/v1/users?page=2", strings.NewReader(`{"a":1}`))
	req.Header.Set("content-type", "application/json")
	env := NewRequestEnv(req, []byte(`{"a":1}`))

	tests := []struct {
		expression string
		want       bool
	}{
		{`method == "POST"`, true},
		{`host == "api.example.com" && path == "/v1/users"`, true},
		{`query["page"] == "2"`, true},
		{`header["Content-Type"] startsWith "application/json"`, true},
		{`body contains "\"a\""`, true},
		{`method == "GET"`, false},
	}

	for _, tt := range tests {
		t.Run(tt.expression, func(t *testing.T) {
			program, err := CompileExpr(tt.expression)
			require.NoError(t, err)

			got, err := EvalExpr(program, env)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCompileExprRejectsNonBool(t *testing.T) {
	_, err := CompileExpr(`method + "x"`)
	assert.Error(t, err)

	_, err = CompileExpr(`unknownField == 1`)
	assert.Error(t, err)
}
