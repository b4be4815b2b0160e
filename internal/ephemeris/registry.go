package ephemeris

import (
	"fmt"
	"sort"
	"sync"
)

// Registry is a thread-safe registry of ephemeris providers. It lets the
// surrounding application register an external binding (e.g. a Swiss
// Ephemeris wrapper) without the engines knowing anything beyond the
// Provider interface.
type Registry struct {
	mu        sync.RWMutex
	providers map[string]Provider
	def       string // default provider name
}

// NewRegistry creates a new empty provider registry.
func NewRegistry() *Registry {
	return &Registry{providers: make(map[string]Provider)}
}

// Register adds a provider to the registry. The first provider registered
// becomes the default. Duplicate registrations overwrite the previous entry.
func (r *Registry) Register(p Provider) error {
	name := p.Name()
	if name == "" {
		return fmt.Errorf("provider name cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.providers[name] = p
	if r.def == "" {
		r.def = name
	}
	return nil
}

// SetDefault marks a registered provider as the default.
func (r *Registry) SetDefault(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.providers[name]; !ok {
		return fmt.Errorf("set default %q: %w", name, ErrNotRegistered)
	}
	r.def = name
	return nil
}

// Get returns the provider with the given name, or the default when name
// is empty.
func (r *Registry) Get(name string) (Provider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if name == "" {
		name = r.def
	}
	p, ok := r.providers[name]
	if !ok {
		return nil, fmt.Errorf("get provider %q: %w", name, ErrNotRegistered)
	}
	return p, nil
}

// Names returns the registered provider names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.providers))
	for n := range r.providers {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
