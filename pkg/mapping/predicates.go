package mapping

import (
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/getmockd/mockhttp/internal/matching"
)

// Method matches the request method, ignoring case.
func Method(method string) Predicate {
	return func(r *http.Request) (bool, error) {
		return matching.MatchMethod(method, r.Method), nil
	}
}

// Host matches the request host, ignoring case.
func Host(host string) Predicate {
	return func(r *http.Request) (bool, error) {
		h := r.Host
		if r.URL != nil && r.URL.Host != "" {
			h = r.URL.Host
		}
		return strings.EqualFold(h, host), nil
	}
}

// Path matches the URL path: exactly, with "/*" wildcards, or with
// "{name}" segments.
func Path(pattern string) Predicate {
	return func(r *http.Request) (bool, error) {
		return r.URL != nil && matching.MatchPath(pattern, r.URL.Path), nil
	}
}

// PathGlob matches the URL path against a doublestar pattern.
func PathGlob(pattern string) (Predicate, error) {
	if err := matching.ValidateGlob(pattern); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidMatcher, err)
	}
	return func(r *http.Request) (bool, error) {
		return r.URL != nil && matching.MatchGlob(pattern, r.URL.Path), nil
	}, nil
}

// Header matches when some value of the named header fits pattern. The
// pattern is an exact value or uses "*" as a prefix, suffix or contains
// wildcard.
func Header(name, pattern string) Predicate {
	return func(r *http.Request) (bool, error) {
		return matching.MatchHeaderPattern(name, pattern, r.Header), nil
	}
}

// Query matches when some value of the named query parameter equals value.
func Query(name, value string) Predicate {
	return func(r *http.Request) (bool, error) {
		return r.URL != nil && matching.MatchQueryParam(name, value, r.URL.Query()), nil
	}
}

// BodyContains matches when the request body contains s.
func BodyContains(s string) Predicate {
	return func(r *http.Request) (bool, error) {
		body, err := requestBody(r)
		if err != nil {
			return false, err
		}
		return matching.MatchBodyContains(body, s), nil
	}
}

// BodyPattern matches when the request body contains a match for expr.
func BodyPattern(expr string) (Predicate, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidMatcher, err)
	}
	return func(r *http.Request) (bool, error) {
		body, err := requestBody(r)
		if err != nil {
			return false, err
		}
		return matching.MatchBodyPattern(re, body), nil
	}, nil
}

// JSONPath matches when the JSON request body has a value equal to expected
// at path. An expected value of map[string]interface{}{"exists": b} checks
// only for presence or absence.
func JSONPath(path string, expected interface{}) (Predicate, error) {
	x, err := matching.CompileJSONPath(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidMatcher, err)
	}
	return func(r *http.Request) (bool, error) {
		body, err := requestBody(r)
		if err != nil {
			return false, err
		}
		return matching.MatchJSONPath(x, expected, body), nil
	}, nil
}

// Expr matches when a boolean expr-lang expression holds. The expression
// sees method, url, host, path, query, header and body.
//
//	mapping.Expr(`method == "POST" && header["X-Tenant"] == "acme"`)
func Expr(expression string) (Predicate, error) {
	program, err := matching.CompileExpr(expression)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidMatcher, err)
	}
	return func(r *http.Request) (bool, error) {
		body, err := requestBody(r)
		if err != nil {
			return false, err
		}
		return matching.EvalExpr(program, matching.NewRequestEnv(r, body))
	}, nil
}

// All matches when every predicate matches. It stops at the first miss or
// error. All() matches everything.
func All(preds ...Predicate) Predicate {
	return func(r *http.Request) (bool, error) {
		for _, p := range preds {
			ok, err := p(r)
			if err != nil || !ok {
				return false, err
			}
		}
		return true, nil
	}
}

// Any matches when at least one predicate matches. It stops at the first
// match or error. Any() matches nothing.
func Any(preds ...Predicate) Predicate {
	return func(r *http.Request) (bool, error) {
		for _, p := range preds {
			ok, err := p(r)
			if err != nil || ok {
				return ok, err
			}
		}
		return false, nil
	}
}

// Not inverts p. Errors are passed through.
func Not(p Predicate) Predicate {
	return func(r *http.Request) (bool, error) {
		ok, err := p(r)
		if err != nil {
			return false, err
		}
		return !ok, nil
	}
}
