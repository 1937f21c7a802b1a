package matching

import (
	"fmt"
	"net/http"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// RequestEnv is the environment visible to request expressions.
//
//	method == "POST" && header["Content-Type"] startsWith "application/json"
//	host == "api.example.com" && query["page"] == "2"
type RequestEnv struct {
	Method string            `expr:"method"`
	URL    string            `expr:"url"`
	Host   string            `expr:"host"`
	Path   string            `expr:"path"`
	Query  map[string]string `expr:"query"`
	Header map[string]string `expr:"header"`
	Body   string            `expr:"body"`
}

// NewRequestEnv builds the expression environment for r. Only the first
// value of multi-valued headers and query parameters is exposed; header
// keys are in canonical MIME form.
func NewRequestEnv(r *http.Request, body []byte) RequestEnv {
	env := RequestEnv{
		Method: r.Method,
		Query:  make(map[string]string),
		Header: make(map[string]string, len(r.Header)),
		Body:   string(body),
	}
	if r.URL != nil {
		env.URL = r.URL.String()
		env.Host = r.URL.Host
		env.Path = r.URL.Path
		for k, v := range r.URL.Query() {
			if len(v) > 0 {
				env.Query[k] = v[0]
			}
		}
	}
	if env.Host == "" {
		env.Host = r.Host
	}
	for k, v := range r.Header {
		if len(v) > 0 {
			env.Header[http.CanonicalHeaderKey(k)] = v[0]
		}
	}
	return env
}

// CompileExpr type-checks a boolean expression against RequestEnv.
func CompileExpr(expression string) (*vm.Program, error) {
	program, err := expr.Compile(expression, expr.Env(RequestEnv{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compile %q: %w", expression, err)
	}
	return program, nil
}

// EvalExpr runs a compiled expression against env.
func EvalExpr(program *vm.Program, env RequestEnv) (bool, error) {
	out, err := expr.Run(program, env)
	if err != nil {
		return false, fmt.Errorf("eval: %w", err)
	}
	b, ok := out.(bool)
	if !ok {
		return false, fmt.Errorf("eval: expression returned %T, want bool", out)
	}
	return b, nil
}
