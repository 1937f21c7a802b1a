package mapping

import (
	"log/slog"
	"sync"

	"github.com/getmockd/mockhttp/pkg/logging"
)

// Entry is one registered mapping. Index is the slot it was stored in.
type Entry struct {
	Index    int
	Matcher  Matcher
	Resolver Resolver
}

// Table is an ordered list of mappings owned by one scope.
//
// Every Add takes the next slot; Remove leaves a tombstone in its slot
// instead of shifting later entries, so an index keeps naming the same
// mapping until Clear. Clear empties the table and restarts numbering at
// zero, so indices held from before a Clear may later name a different
// mapping.
//
// Table is safe for concurrent use. Entries returns a snapshot, so a
// dispatch never observes a half-applied mutation.
type Table struct {
	mu     sync.RWMutex
	slots  []*Entry
	scope  Origin
	logger *slog.Logger
}

// NewTable creates an empty table. scope labels log messages.
func NewTable(scope Origin, logger *slog.Logger) *Table {
	return &Table{
		scope:  scope,
		logger: logging.OrNop(logger),
	}
}

// Add appends a mapping and returns its slot index.
func (t *Table) Add(m Matcher, r Resolver) (int, error) {
	if err := validateMatcher(m); err != nil {
		return -1, err
	}
	if err := validateResolver(r); err != nil {
		return -1, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	index := len(t.slots)
	t.slots = append(t.slots, &Entry{Index: index, Matcher: m, Resolver: r})
	t.logger.Debug("mapping added",
		"scope", t.scope,
		"index", index,
		"matcher", m.Kind(),
		"resolver", r.Kind(),
	)
	return index, nil
}

// Remove tombstones the slot at index and reports whether a live mapping
// was removed. Indices outside the table log a warning; removing an
// already removed slot does nothing.
func (t *Table) Remove(index int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if index < 0 || index >= len(t.slots) {
		t.logger.Warn("unmap ignored: index out of range",
			"scope", t.scope,
			"index", index,
			"slots", len(t.slots),
		)
		return false
	}
	if t.slots[index] == nil {
		t.logger.Debug("unmap ignored: slot already removed", "scope", t.scope, "index", index)
		return false
	}

	t.slots[index] = nil
	t.logger.Debug("mapping removed", "scope", t.scope, "index", index)
	return true
}

// Clear removes every mapping and resets slot numbering.
func (t *Table) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.slots = nil
	t.logger.Debug("mappings cleared", "scope", t.scope)
}

// Entries returns the live mappings in insertion order.
func (t *Table) Entries() []Entry {
	t.mu.RLock()
	defer t.mu.RUnlock()

	live := make([]Entry, 0, len(t.slots))
	for _, e := range t.slots {
		if e != nil {
			live = append(live, *e)
		}
	}
	return live
}

// Len returns the number of slots issued since the last Clear, including
// tombstones. It is also the index the next Add will return.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.slots)
}

// Scope reports which scope the table belongs to.
func (t *Table) Scope() Origin {
	return t.scope
}
