package renderer

import (
	"fmt"
	"sync"
)

// Factory creates a fresh renderer.
type Factory func() Renderer

// Registry maps target names to renderer factories. The orchestrator
// resolves a target once and passes the renderer on explicitly.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
	order     []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds a factory under name. It panics if name is already taken.
func (r *Registry) Register(name string, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.factories[name]; exists {
		panic(fmt.Sprintf("renderer: target %q already registered", name))
	}
	r.factories[name] = f
	r.order = append(r.order, name)
}

// New creates the renderer for name.
func (r *Registry) New(name string) (Renderer, error) {
	r.mu.RLock()
	f, ok := r.factories[name]
	r.mu.RUnlock()
	if !ok {
		return nil, &UnknownTargetError{Name: name, Known: r.Names()}
	}
	return f(), nil
}

// Has reports whether a renderer is registered for name.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.factories[name]
	return ok
}

// Names returns the registered target names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.order...)
}

// DefaultRegistry returns a registry holding every built-in target.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register("python", func() Renderer { return NewPython() })
	r.Register("nodejs", func() Renderer { return NewNodeJS() })
	r.Register("typescript", func() Renderer { return NewTypeScript() })
	r.Register("rust", func() Renderer { return NewRust() })
	r.Register("go", func() Renderer { return NewGo() })
	return r
}
