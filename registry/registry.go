// Package registry implements the process-wide service definition table.
// Definitions are loaded once at startup and treated as read-only; a reload
// replaces the whole table reference atomically so concurrent readers never
// observe a partially updated table.
package registry

import (
	"sort"
	"sync"
	"sync/atomic"

	"github.com/hearthkit/servicekit/schema"
)

// LoadCheck is a verification hook run against the would-be table before it
// is published. A failing check aborts the load and leaves the current table
// untouched.
type LoadCheck func([]*schema.ServiceDefinition) error

// Registry is an in-memory service definition table.
type Registry struct {
	table  atomic.Pointer[tableState]
	checks []LoadCheck

	// loadMu serializes writers; readers never take it.
	loadMu sync.Mutex
}

type tableState struct {
	byID  map[string]*schema.ServiceDefinition
	order []*schema.ServiceDefinition
}

// Option configures a Registry.
type Option func(*Registry)

// WithLoadCheck adds a verification hook run on every Load and Reload.
func WithLoadCheck(check LoadCheck) Option {
	return func(r *Registry) {
		r.checks = append(r.checks, check)
	}
}

// New creates an empty service registry.
func New(opts ...Option) *Registry {
	r := &Registry{}
	for _, opt := range opts {
		opt(r)
	}
	r.table.Store(&tableState{byID: make(map[string]*schema.ServiceDefinition)})
	return r
}

// Load adds definitions to the table. Registering an identifier twice is an
// error. On any failure nothing is published: the previous table stays in
// effect in full.
func (r *Registry) Load(defs ...*schema.ServiceDefinition) error {
	r.loadMu.Lock()
	defer r.loadMu.Unlock()

	current := r.table.Load()
	next := &tableState{
		byID:  make(map[string]*schema.ServiceDefinition, len(current.order)+len(defs)),
		order: make([]*schema.ServiceDefinition, 0, len(current.order)+len(defs)),
	}
	for _, def := range current.order {
		next.byID[def.ID] = def
		next.order = append(next.order, def)
	}

	for _, def := range defs {
		if _, exists := next.byID[def.ID]; exists {
			return &schema.DuplicateServiceError{Service: def.ID}
		}
		next.byID[def.ID] = def
		next.order = append(next.order, def)
	}

	if err := r.runChecks(next.order); err != nil {
		return err
	}
	r.table.Store(next)
	return nil
}

// Reload replaces the entire table with defs in one atomic swap. Intended
// for hot-reloading definitions; readers in flight keep the old table.
func (r *Registry) Reload(defs []*schema.ServiceDefinition) error {
	r.loadMu.Lock()
	defer r.loadMu.Unlock()

	next := &tableState{
		byID:  make(map[string]*schema.ServiceDefinition, len(defs)),
		order: make([]*schema.ServiceDefinition, 0, len(defs)),
	}
	for _, def := range defs {
		if _, exists := next.byID[def.ID]; exists {
			return &schema.DuplicateServiceError{Service: def.ID}
		}
		next.byID[def.ID] = def
		next.order = append(next.order, def)
	}

	if err := r.runChecks(next.order); err != nil {
		return err
	}
	r.table.Store(next)
	return nil
}

func (r *Registry) runChecks(defs []*schema.ServiceDefinition) error {
	for _, check := range r.checks {
		if err := check(defs); err != nil {
			return err
		}
	}
	return nil
}

// Get returns the definition for a service identifier.
func (r *Registry) Get(id string) (*schema.ServiceDefinition, bool) {
	def, ok := r.table.Load().byID[id]
	return def, ok
}

// List returns all registered service identifiers, sorted.
func (r *Registry) List() []string {
	state := r.table.Load()
	ids := make([]string, 0, len(state.byID))
	for id := range state.byID {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Snapshot returns the current definitions in registration order.
func (r *Registry) Snapshot() []*schema.ServiceDefinition {
	state := r.table.Load()
	out := make([]*schema.ServiceDefinition, len(state.order))
	copy(out, state.order)
	return out
}

var _ ServiceRegistry = (*Registry)(nil)
