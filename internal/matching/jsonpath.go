package matching

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/ohler55/ojg/jp"
)

// CompileJSONPath parses a JSONPath expression.
func CompileJSONPath(path string) (jp.Expr, error) {
	x, err := jp.ParseString(path)
	if err != nil {
		return nil, fmt.Errorf("invalid JSONPath expression %q: %w", path, err)
	}
	return x, nil
}

// MatchJSONPath evaluates one JSONPath condition against a JSON body.
//
// expected is either a literal compared against every value the path
// selects (any equal value is a match), or an existence check of the form
// map[string]interface{}{"exists": bool}. A body that is not valid JSON
// never matches.
func MatchJSONPath(x jp.Expr, expected interface{}, body []byte) bool {
	var data interface{}
	if err := json.Unmarshal(body, &data); err != nil {
		return false
	}

	results := x.Get(data)

	if isExistenceCheck(expected) {
		return wantExists(expected) == (len(results) > 0)
	}

	for _, result := range results {
		if valuesEqual(result, expected) {
			return true
		}
	}
	return false
}

// isExistenceCheck reports whether expected is {"exists": bool}.
func isExistenceCheck(expected interface{}) bool {
	m, ok := expected.(map[string]interface{})
	if !ok || len(m) != 1 {
		return false
	}
	_, ok = m["exists"].(bool)
	return ok
}

func wantExists(expected interface{}) bool {
	return expected.(map[string]interface{})["exists"].(bool)
}

// valuesEqual compares a decoded JSON value with a fixture value. Numbers
// compare by value across the numeric types JSON and YAML decoding yield.
func valuesEqual(actual, expected interface{}) bool {
	if a, ok := number(actual); ok {
		e, ok := number(expected)
		return ok && a == e
	}
	return reflect.DeepEqual(actual, expected)
}

func number(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}
