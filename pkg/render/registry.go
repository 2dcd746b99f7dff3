package render

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

var (
	// ErrDuplicateRenderer reports a second Register call for the same name.
	ErrDuplicateRenderer = errors.New("render: renderer already registered")

	// ErrUnknownRenderer reports a lookup for a name nobody registered.
	ErrUnknownRenderer = errors.New("render: unknown renderer")
)

// Registry maps output names ("vanilla", "tui") to renderers. The zero
// value is not usable; construct with NewRegistry.
type Registry struct {
	mu        sync.RWMutex
	renderers map[string]Renderer
}

func NewRegistry() *Registry {
	return &Registry{renderers: make(map[string]Renderer)}
}

// Register stores a renderer under its Name. Names are first-come: a
// collision returns ErrDuplicateRenderer rather than replacing the holder.
func (r *Registry) Register(renderer Renderer) error {
	if renderer == nil {
		return errors.New("render: renderer is required")
	}
	name := renderer.Name()
	if name == "" {
		return errors.New("render: renderer name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.renderers[name]; exists {
		return fmt.Errorf("render: %q: %w", name, ErrDuplicateRenderer)
	}
	r.renderers[name] = renderer
	return nil
}

// MustRegister panics on registration failure, for wiring done at startup
// where a bad name is a programming error.
func (r *Registry) MustRegister(renderer Renderer) {
	if err := r.Register(renderer); err != nil {
		panic(err)
	}
}

func (r *Registry) Get(name string) (Renderer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	renderer, ok := r.renderers[name]
	if !ok {
		return nil, fmt.Errorf("render: %q: %w", name, ErrUnknownRenderer)
	}
	return renderer, nil
}

// List returns the registered names sorted for stable CLI and API output.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.renderers))
	for name := range r.renderers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.renderers[name]
	return ok
}
