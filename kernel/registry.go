package kernel

import (
	"sort"
	"sync"
)

// Factory creates a new kernel instance.
type Factory func() Kernel

// registryEntry is one registered kernel backend.
type registryEntry struct {
	name     string
	priority int
	factory  Factory
}

// registry holds registered kernel backends.
//
// Kernels register themselves from init() functions, so that importing a
// kernel package for side effects is enough to make it selectable:
//
//	import _ "github.com/gocad/brep/kernel/mem"
var (
	registryMu sync.RWMutex
	kernels    = make(map[string]*registryEntry)
)

// Standard registration priorities.
const (
	// PriorityNative is used by cgo-backed kernels wrapping a full
	// geometry kernel.
	PriorityNative = 100

	// PrioritySoftware is used by pure-Go fallback kernels.
	PrioritySoftware = 10
)

// Register registers a kernel factory under a unique name. Higher priority
// kernels are preferred by Default. Registering an existing name replaces the
// previous entry.
func Register(name string, priority int, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	kernels[name] = &registryEntry{name: name, priority: priority, factory: factory}
}

// Unregister removes a kernel from the registry. Useful for testing.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(kernels, name)
}

// Registered returns all registered kernel names sorted by priority
// (highest first).
func Registered() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	entries := make([]*registryEntry, 0, len(kernels))
	for _, e := range kernels {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].priority != entries[j].priority {
			return entries[i].priority > entries[j].priority
		}
		return entries[i].name < entries[j].name
	})

	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.name
	}
	return names
}

// Get returns a new instance of a named kernel, or a NotFoundError.
func Get(name string) (Kernel, error) {
	registryMu.RLock()
	e, ok := kernels[name]
	registryMu.RUnlock()

	if !ok {
		return nil, &NotFoundError{Name: name}
	}
	return e.factory(), nil
}

// Default returns a new instance of the highest-priority registered kernel.
func Default() (Kernel, error) {
	for _, name := range Registered() {
		k, err := Get(name)
		if err == nil && k != nil {
			return k, nil
		}
	}
	return nil, ErrNoKernelAvailable
}

// MustDefault returns the default kernel or panics.
func MustDefault() Kernel {
	k, err := Default()
	if err != nil {
		panic(err)
	}
	return k
}
