package magic

import (
	"sync"
	"sync/atomic"
)

// registryState is an immutable view of a Registry at one point in time.
type registryState struct {
	table      *Table
	generation uint64
}

// Registry holds custom signatures that are consulted before the built-in
// table. It only grows: signatures are appended and never removed.
//
// Registry is safe for concurrent use. Writers are serialized; readers work
// on a published snapshot and never wait for a writer.
type Registry struct {
	mu    sync.Mutex
	state atomic.Pointer[registryState]
}

var emptyState = &registryState{table: NewTable()}

// NewRegistry creates an empty registry.
// The zero value is also ready to use.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register appends one signature to the registry.
func (r *Registry) Register(sig Signature) {
	r.RegisterMany(sig)
}

// RegisterMany appends signatures in the given order.
// Registering zero signatures is a no-op.
func (r *Registry) RegisterMany(sigs ...Signature) {
	if len(sigs) == 0 {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	cur := r.load()
	all := make([]Signature, 0, cur.table.Len()+len(sigs))
	all = append(all, cur.table.sigs...)
	all = append(all, sigs...)

	r.state.Store(&registryState{
		table:      NewTable(all...),
		generation: cur.generation + 1,
	})
}

// Snapshot returns the registry contents as an immutable table.
func (r *Registry) Snapshot() *Table {
	return r.load().table
}

// View returns the registry contents together with their generation, both
// taken from the same snapshot.
func (r *Registry) View() (*Table, uint64) {
	s := r.load()
	return s.table, s.generation
}

// Len returns the number of registered signatures.
func (r *Registry) Len() int {
	return r.load().table.Len()
}

// Generation returns a counter that increases with every non-empty registration.
func (r *Registry) Generation() uint64 {
	return r.load().generation
}

func (r *Registry) load() *registryState {
	if s := r.state.Load(); s != nil {
		return s
	}
	return emptyState
}

// Global default registry (lazy initialized)
var (
	defaultRegistry     *Registry
	defaultRegistryOnce sync.Once
)

// DefaultRegistry returns the process-wide custom registry.
func DefaultRegistry() *Registry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}
