package mapping

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/getmockd/mockhttp/pkg/logging"
)

// Transport is an http.RoundTripper that answers requests from its own
// local table first and its registry's global table second, without
// touching the network. Only Passthrough mappings reach the real
// transport, which is captured once when the Transport is built.
type Transport struct {
	local    *Table
	registry *Registry
	base     http.RoundTripper
	logger   *slog.Logger
	journal  Journal
}

// NewTransport creates a Transport with an empty local table.
func NewTransport(opts ...Option) *Transport {
	o := applyOptions(opts)

	registry := o.registry
	if registry == nil {
		registry = defaultRegistry
	}

	base := o.base
	if base == nil {
		base = DefaultBaseTransport()
	}
	// Passthrough must reach the real transport, never another interceptor.
	for {
		inner, ok := base.(*Transport)
		if !ok {
			break
		}
		base = inner.base
	}

	logger := logging.OrNop(o.logger)
	return &Transport{
		local:    NewTable(OriginLocal, logger),
		registry: registry,
		base:     base,
		logger:   logger,
	}
}

// DefaultBaseTransport returns a clone of http.DefaultTransport that can
// also serve file:// URLs from the local filesystem.
func DefaultBaseTransport() http.RoundTripper {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.RegisterProtocol("file", http.NewFileTransport(http.Dir("/")))
	return t
}

// RoundTrip implements http.RoundTripper.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	d := Dispatcher{
		Logger:         t.logger,
		Passthrough:    t.base,
		PrepareHeaders: t.registry.PrepareHeaders(),
	}
	if req == nil {
		return nil, ErrMissingRequest
	}
	// The caller's request is left untouched apart from its body being
	// consumed and closed.
	req = req.Clone(req.Context())
	body, err := requestBody(req)
	if err != nil {
		err = fmt.Errorf("mapping: read request body: %w", err)
		t.journal.record(req, nil, nil, err)
		return nil, err
	}
	res, err := d.Resolve(req, t.local, t.registry.Table())
	t.journal.record(req, body, res, err)
	if err != nil {
		return nil, err
	}
	return res.Response, nil
}

// Map implements Scope for the local table.
func (t *Transport) Map(request, response interface{}) (int, error) {
	return mapInto(t.local, request, response)
}

// MapPassthrough implements Scope for the local table.
func (t *Transport) MapPassthrough(request interface{}) (int, error) {
	return mapInto(t.local, request, Passthrough{})
}

// Unmap implements Scope for the local table.
func (t *Transport) Unmap(index int) bool {
	return t.local.Remove(index)
}

// UnmapAll implements Scope for the local table.
func (t *Transport) UnmapAll() {
	t.local.Clear()
}

// Local returns the local table.
func (t *Transport) Local() *Table {
	return t.local
}

// Registry returns the registry providing the global table.
func (t *Transport) Registry() *Registry {
	return t.registry
}

// Journal returns the log of requests handled by t.
func (t *Transport) Journal() *Journal {
	return &t.journal
}

// CloseIdleConnections closes idle connections of the real transport.
func (t *Transport) CloseIdleConnections() {
	type closeIdler interface{ CloseIdleConnections() }
	if c, ok := t.base.(closeIdler); ok {
		c.CloseIdleConnections()
	}
}

var (
	_ Scope             = (*Transport)(nil)
	_ http.RoundTripper = (*Transport)(nil)
)
