package brep

import (
	"fmt"
	"sync"

	"github.com/gocad/brep/kernel"
)

// RefID is an opaque string reference to a registered shape. Ids are
// allocated monotonically and never reused; external layers (document
// store, undo history) hold RefIDs, never live kernel handles.
type RefID string

// registryEntry pairs a stored handle with its reference count.
type registryEntry struct {
	shape kernel.Shape
	refs  int
}

// Registry owns kernel shape handles on behalf of external layers,
// keeping each alive until every holder has released it.
//
// A stored shape starts with a reference count of one. Retain and Release
// adjust the count; when it reaches zero the entry is removed and the
// handle's native resources are released exactly once. Releasing more
// times than retained is a caller bug: others may still hold the id. A
// strict registry (see WithStrict) panics on an unknown id so tests catch
// the pairing error at its source; a default registry logs a warning and
// returns ErrUnknownRef.
//
// Registry is safe for concurrent use.
type Registry struct {
	mu      sync.Mutex
	next    uint64
	entries map[RefID]*registryEntry
	strict  bool
}

// RegistryOption configures a Registry during creation.
type RegistryOption func(*Registry)

// WithStrict makes retain/release of an absent id panic instead of
// logging. Tests run strict so refcount pairing bugs fail loudly.
func WithStrict() RegistryOption {
	return func(r *Registry) { r.strict = true }
}

// NewRegistry creates an empty shape registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{entries: make(map[RefID]*registryEntry)}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Store registers a shape handle and transfers its ownership to the
// registry, returning a fresh id with a reference count of one. Store
// always succeeds.
func (r *Registry) Store(s kernel.Shape) RefID {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.next++
	id := RefID(fmt.Sprintf("shape-%06d", r.next))
	r.entries[id] = &registryEntry{shape: s, refs: 1}
	return id
}

// Get returns the handle stored under id. The handle stays owned by the
// registry; callers that keep it past the current operation must Retain
// the id.
func (r *Registry) Get(id RefID) (kernel.Shape, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[id]
	if !ok {
		return nil, false
	}
	return e.shape, true
}

// Retain increments the reference count of id.
func (r *Registry) Retain(id RefID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[id]
	if !ok {
		return r.missing("retain", id)
	}
	e.refs++
	return nil
}

// Release decrements the reference count of id. At zero the entry is
// dropped and the handle's native resources are released.
func (r *Registry) Release(id RefID) error {
	r.mu.Lock()
	e, ok := r.entries[id]
	if !ok {
		defer r.mu.Unlock()
		return r.missing("release", id)
	}
	e.refs--
	done := e.refs == 0
	if done {
		delete(r.entries, id)
	}
	r.mu.Unlock()

	// Native release happens outside the lock; the entry is already gone,
	// so a concurrent Get cannot observe a dead handle.
	if done {
		e.shape.Release()
	}
	return nil
}

// Len returns the number of live entries.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

func (r *Registry) missing(op string, id RefID) error {
	if r.strict {
		panic(fmt.Sprintf("brep: %s of unknown shape reference %q", op, id))
	}
	Logger().Warn("brep: reference to unknown shape", "op", op, "id", string(id))
	return fmt.Errorf("%s %q: %w", op, id, ErrUnknownRef)
}
