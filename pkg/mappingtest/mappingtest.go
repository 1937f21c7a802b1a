package mappingtest

import (
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/getmockd/mockhttp/pkg/mapping"
)

// Mock is a test helper that owns an isolated registry and client.
type Mock struct {
	t        testing.TB
	registry *mapping.Registry
	client   *mapping.Client

	mu      sync.Mutex
	globals []int
}

// New creates a Mock for t. Options are passed to the registry and
// client; a WithRegistry option replaces the isolated registry. All
// mappings are removed when the test completes.
func New(t testing.TB, opts ...mapping.Option) *Mock {
	t.Helper()

	registry := mapping.NewRegistry(opts...)
	all := append([]mapping.Option{mapping.WithRegistry(registry)}, opts...)
	client := mapping.NewClient(all...)

	m := &Mock{t: t, registry: client.Interceptor().Registry(), client: client}
	t.Cleanup(func() {
		client.UnmapAll()
		m.mu.Lock()
		for _, idx := range m.globals {
			m.registry.Unmap(idx)
		}
		m.globals = nil
		m.mu.Unlock()
		client.Interceptor().CloseIdleConnections()
	})
	return m
}

// Client returns the intercepting client.
func (m *Mock) Client() *mapping.Client {
	return m.client
}

// HTTPClient returns the intercepting client as a plain *http.Client.
func (m *Mock) HTTPClient() *http.Client {
	return m.client.Client
}

// Registry returns the registry whose table backs global mappings.
func (m *Mock) Registry() *mapping.Registry {
	return m.registry
}

// On starts a mapping for method and target. target is a full URL when it
// contains "://", and a path pattern otherwise. An empty method matches
// any method.
func (m *Mock) On(method, target string) *Builder {
	b := &Builder{mock: m, status: http.StatusOK, header: make(http.Header)}
	if method != "" {
		b.preds = append(b.preds, mapping.Method(method))
	}
	if strings.Contains(target, "://") {
		b.preds = append(b.preds, func(r *http.Request) (bool, error) {
			return r.URL != nil && r.URL.String() == target, nil
		})
	} else if target != "" {
		b.preds = append(b.preds, mapping.Path(target))
	}
	return b
}

// Calls returns the journaled calls, oldest first.
func (m *Mock) Calls() []*RecordedCall {
	calls := m.client.Calls()
	out := make([]*RecordedCall, len(calls))
	for i := range calls {
		out[i] = &RecordedCall{Call: calls[i], t: m.t}
	}
	return out
}

// LastCall returns the most recent call. It fails the test when there is
// none.
func (m *Mock) LastCall() *RecordedCall {
	m.t.Helper()
	calls := m.Calls()
	if len(calls) == 0 {
		m.t.Fatalf("no requests were made")
		return nil
	}
	return calls[len(calls)-1]
}

// CallCount returns how many calls match method and target, using the
// same target rules as On.
func (m *Mock) CallCount(method, target string) int {
	n := 0
	for _, c := range m.Calls() {
		if c.matches(method, target) {
			n++
		}
	}
	return n
}

// AssertCalled asserts that at least one call matched method and target.
func (m *Mock) AssertCalled(method, target string) {
	m.t.Helper()
	if m.CallCount(method, target) == 0 {
		m.t.Errorf("expected a %s %s request, got none\ncalls: %s", method, target, m.describeCalls())
	}
}

// AssertNotCalled asserts that no call matched method and target.
func (m *Mock) AssertNotCalled(method, target string) {
	m.t.Helper()
	if n := m.CallCount(method, target); n > 0 {
		m.t.Errorf("expected no %s %s request, got %d", method, target, n)
	}
}

// AssertCallCount asserts the number of calls matching method and target.
func (m *Mock) AssertCallCount(method, target string, want int) {
	m.t.Helper()
	if got := m.CallCount(method, target); got != want {
		m.t.Errorf("expected %d %s %s request(s), got %d\ncalls: %s", want, method, target, got, m.describeCalls())
	}
}

// AssertAllMatched asserts that every call was answered by a mapping.
func (m *Mock) AssertAllMatched() {
	m.t.Helper()
	for _, c := range m.Calls() {
		if c.Origin == mapping.OriginNone && c.Err == nil {
			m.t.Errorf("unmatched request: %s %s", c.Method, c.URL)
		}
	}
}

func (m *Mock) describeCalls() string {
	calls := m.Calls()
	if len(calls) == 0 {
		return "(none)"
	}
	parts := make([]string, len(calls))
	for i, c := range calls {
		parts[i] = c.Method + " " + c.URL
	}
	return strings.Join(parts, ", ")
}
