package fixture

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"

	"github.com/getmockd/mockhttp/pkg/mapping"
)

// Build converts the fixture into a matcher and resolver. A request with
// only a url becomes an ExactURL, one with only a urlPattern becomes a
// URLPattern, and anything else becomes a predicate requiring every
// criterion.
func (f Fixture) Build() (mapping.Matcher, mapping.Resolver, error) {
	m, err := f.matcher()
	if err != nil {
		return nil, nil, fmt.Errorf("%s: request: %w", f.Label(), err)
	}
	r, err := f.resolver()
	if err != nil {
		return nil, nil, fmt.Errorf("%s: response: %w", f.Label(), err)
	}
	return m, r, nil
}

func (f Fixture) matcher() (mapping.Matcher, error) {
	req := f.Request
	simple := req.Method == "" && req.Path == "" && req.Glob == "" &&
		len(req.Headers) == 0 && len(req.Query) == 0 && req.BodyContains == "" &&
		len(req.JSONPath) == 0 && req.When == ""

	switch {
	case simple && req.URL != "" && req.URLPattern == "":
		return mapping.ExactURL(req.URL), nil
	case simple && req.URLPattern != "" && req.URL == "":
		return mapping.NewURLPattern(req.URLPattern)
	}

	var preds []mapping.Predicate
	if req.URL != "" {
		want := req.URL
		preds = append(preds, func(r *http.Request) (bool, error) {
			return r.URL != nil && r.URL.String() == want, nil
		})
	}
	if req.URLPattern != "" {
		p, err := mapping.NewURLPattern(req.URLPattern)
		if err != nil {
			return nil, err
		}
		preds = append(preds, func(r *http.Request) (bool, error) {
			return r.URL != nil && p.Regexp.MatchString(r.URL.String()), nil
		})
	}
	if req.Method != "" {
		preds = append(preds, mapping.Method(req.Method))
	}
	if req.Path != "" {
		preds = append(preds, mapping.Path(req.Path))
	}
	if req.Glob != "" {
		p, err := mapping.PathGlob(req.Glob)
		if err != nil {
			return nil, err
		}
		preds = append(preds, p)
	}
	for _, name := range sortedKeys(req.Headers) {
		preds = append(preds, mapping.Header(name, req.Headers[name]))
	}
	for _, name := range sortedKeys(req.Query) {
		preds = append(preds, mapping.Query(name, req.Query[name]))
	}
	if req.BodyContains != "" {
		preds = append(preds, mapping.BodyContains(req.BodyContains))
	}
	for _, path := range sortedKeys(req.JSONPath) {
		p, err := mapping.JSONPath(path, req.JSONPath[path])
		if err != nil {
			return nil, err
		}
		preds = append(preds, p)
	}
	if req.When != "" {
		p, err := mapping.Expr(req.When)
		if err != nil {
			return nil, err
		}
		preds = append(preds, p)
	}

	if len(preds) == 0 {
		return nil, mapping.ErrMissingRequest
	}
	return mapping.All(preds...), nil
}

func (f Fixture) resolver() (mapping.Resolver, error) {
	if f.Passthrough {
		return mapping.Passthrough{}, nil
	}
	out := f.Response
	if out == nil {
		return nil, mapping.ErrMissingResponse
	}

	s := mapping.Static{StatusCode: out.Status, Header: make(http.Header)}
	for k, v := range out.Headers {
		s.Header.Set(k, v)
	}

	switch {
	case out.JSON != nil:
		body, err := json.Marshal(out.JSON)
		if err != nil {
			return nil, fmt.Errorf("encoding json body: %w", err)
		}
		s.Body = body
		if s.Header.Get("Content-Type") == "" {
			s.Header.Set("Content-Type", "application/json")
		}
	case out.Body != "":
		s.Body = []byte(out.Body)
	}
	return s, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
