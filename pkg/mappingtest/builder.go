package mappingtest

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/getmockd/mockhttp/pkg/mapping"
)

// Builder builds one mapping using a fluent API.
type Builder struct {
	mock   *Mock
	preds  []mapping.Predicate
	status int
	header http.Header
	body   []byte
	global bool
	err    error // First error encountered during building
}

// setError records the first error encountered during building.
func (b *Builder) setError(err error) {
	if b.err == nil {
		b.err = err
	}
}

// Err returns any error encountered during building.
func (b *Builder) Err() error {
	return b.err
}

// WithQueryParam requires a query parameter value.
func (b *Builder) WithQueryParam(name, value string) *Builder {
	b.preds = append(b.preds, mapping.Query(name, value))
	return b
}

// WithRequestHeader requires a request header. value may use "*"
// wildcards.
func (b *Builder) WithRequestHeader(name, value string) *Builder {
	b.preds = append(b.preds, mapping.Header(name, value))
	return b
}

// WithBodyContains requires the request body to contain s.
func (b *Builder) WithBodyContains(s string) *Builder {
	b.preds = append(b.preds, mapping.BodyContains(s))
	return b
}

// WithJSONPath requires the JSON request body to hold expected at path.
func (b *Builder) WithJSONPath(path string, expected interface{}) *Builder {
	p, err := mapping.JSONPath(path, expected)
	if err != nil {
		b.setError(fmt.Errorf("WithJSONPath: %w", err))
		return b
	}
	b.preds = append(b.preds, p)
	return b
}

// When requires an expr-lang condition on the request.
func (b *Builder) When(expression string) *Builder {
	p, err := mapping.Expr(expression)
	if err != nil {
		b.setError(fmt.Errorf("When: %w", err))
		return b
	}
	b.preds = append(b.preds, p)
	return b
}

// Global registers the mapping on the registry instead of the client. It
// is removed from the registry when the test completes.
func (b *Builder) Global() *Builder {
	b.global = true
	return b
}

// WithStatus sets the response status code. Default is 200 (OK).
func (b *Builder) WithStatus(status int) *Builder {
	b.status = status
	return b
}

// WithHeader adds a response header.
func (b *Builder) WithHeader(key, value string) *Builder {
	b.header.Add(key, value)
	return b
}

// WithBody sets the response body.
// For structs/maps, use WithJSON instead for automatic JSON encoding.
func (b *Builder) WithBody(body interface{}) *Builder {
	switch v := body.(type) {
	case string:
		b.body = []byte(v)
	case []byte:
		b.body = v
	default:
		return b.WithJSON(v)
	}
	return b
}

// WithJSON sets the response body as JSON and sets Content-Type to
// application/json unless it is already set.
func (b *Builder) WithJSON(body interface{}) *Builder {
	data, err := json.Marshal(body)
	if err != nil {
		b.setError(fmt.Errorf("WithJSON: failed to marshal body: %w", err))
		return b
	}
	b.body = data
	if b.header.Get("Content-Type") == "" {
		b.header.Set("Content-Type", "application/json")
	}
	return b
}

// Reply registers the mapping with a static response and returns its
// index. Building errors fail the test.
func (b *Builder) Reply() int {
	return b.register(mapping.Static{StatusCode: b.status, Header: b.header, Body: b.body})
}

// ReplyWith registers the mapping with a computed response.
func (b *Builder) ReplyWith(fn func(*http.Request) (*http.Response, error)) int {
	return b.register(mapping.Computed(fn))
}

// Passthrough registers the mapping so matching requests reach the real
// transport.
func (b *Builder) Passthrough() int {
	return b.register(mapping.Passthrough{})
}

func (b *Builder) register(r mapping.Resolver) int {
	t := b.mock.t
	t.Helper()
	if b.err != nil {
		t.Fatalf("building mapping: %v", b.err)
		return -1
	}

	var scope mapping.Scope = b.mock.client
	if b.global {
		scope = b.mock.registry
	}
	idx, err := scope.Map(mapping.All(b.preds...), r)
	if err != nil {
		t.Fatalf("registering mapping: %v", err)
		return -1
	}
	if b.global {
		b.mock.mu.Lock()
		b.mock.globals = append(b.mock.globals, idx)
		b.mock.mu.Unlock()
	}
	return idx
}
