package mapping

import (
	"log/slog"
	"sync/atomic"

	"github.com/getmockd/mockhttp/pkg/logging"
)

// Scope is the registration surface shared by the global Registry and by
// each Transport and Client.
type Scope interface {
	// Map registers a request descriptor and a response descriptor and
	// returns the slot index. See ParseMatcher and ParseResolver.
	Map(request, response interface{}) (int, error)
	// MapPassthrough registers a request descriptor whose matches are sent
	// to the real transport.
	MapPassthrough(request interface{}) (int, error)
	// Unmap removes the mapping at index.
	Unmap(index int) bool
	// UnmapAll removes every mapping in the scope. Numbering restarts at
	// zero, so indices held from before the call may later name newer
	// mappings.
	UnmapAll()
}

// Registry owns the global table shared by every Transport built with it,
// and the toggle for default header preparation.
type Registry struct {
	table          *Table
	logger         *slog.Logger
	prepareHeaders atomic.Bool
	initialPrepare bool
}

// NewRegistry creates a registry with an empty global table.
func NewRegistry(opts ...Option) *Registry {
	o := applyOptions(opts)
	logger := logging.OrNop(o.logger)
	r := &Registry{
		table:  NewTable(OriginGlobal, logger),
		logger: logger,
	}
	if o.prepareHeaders != nil {
		r.initialPrepare = *o.prepareHeaders
	}
	r.prepareHeaders.Store(r.initialPrepare)
	return r
}

// Map implements Scope.
func (r *Registry) Map(request, response interface{}) (int, error) {
	return mapInto(r.table, request, response)
}

// MapPassthrough implements Scope.
func (r *Registry) MapPassthrough(request interface{}) (int, error) {
	return mapInto(r.table, request, Passthrough{})
}

// Unmap implements Scope.
func (r *Registry) Unmap(index int) bool {
	return r.table.Remove(index)
}

// UnmapAll implements Scope.
func (r *Registry) UnmapAll() {
	r.table.Clear()
}

// Table returns the global table.
func (r *Registry) Table() *Table {
	return r.table
}

// SetPrepareHeaders enables or disables default header preparation for
// ExactRequest comparisons made by every Transport using this registry.
func (r *Registry) SetPrepareHeaders(enabled bool) {
	r.prepareHeaders.Store(enabled)
}

// PrepareHeaders reports whether default header preparation is enabled.
func (r *Registry) PrepareHeaders() bool {
	return r.prepareHeaders.Load()
}

// Reset clears the global table and restores the header toggle to its
// initial value.
func (r *Registry) Reset() {
	r.table.Clear()
	r.prepareHeaders.Store(r.initialPrepare)
}

func mapInto(t *Table, request, response interface{}) (int, error) {
	if request == nil {
		return -1, ErrMissingRequest
	}
	if response == nil {
		return -1, ErrMissingResponse
	}
	m, err := ParseMatcher(request)
	if err != nil {
		return -1, err
	}
	res, err := ParseResolver(response)
	if err != nil {
		return -1, err
	}
	return t.Add(m, res)
}

var defaultRegistry = NewRegistry()

// DefaultRegistry returns the process-wide registry used by transports that
// were not given one.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// Map registers a global mapping on the default registry.
func Map(request, response interface{}) (int, error) {
	return defaultRegistry.Map(request, response)
}

// MapPassthrough registers a global passthrough mapping on the default
// registry.
func MapPassthrough(request interface{}) (int, error) {
	return defaultRegistry.MapPassthrough(request)
}

// Unmap removes a global mapping from the default registry.
func Unmap(index int) bool {
	return defaultRegistry.Unmap(index)
}

// UnmapAll clears the default registry's global table.
func UnmapAll() {
	defaultRegistry.UnmapAll()
}

// SetPrepareHeaders sets the header-preparation toggle of the default
// registry.
func SetPrepareHeaders(enabled bool) {
	defaultRegistry.SetPrepareHeaders(enabled)
}

var _ Scope = (*Registry)(nil)
