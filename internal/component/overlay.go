package component

import (
	"errors"
	"sort"
	"strings"
)

// Overlay consults its stores in order; the first one holding a component
// wins. A template directory layered over the embedded store overrides only
// the components it provides.
type Overlay struct {
	stores []Store
}

// NewOverlay layers stores, highest priority first.
func NewOverlay(stores ...Store) *Overlay {
	return &Overlay{stores: stores}
}

// Name lists the layered store names.
func (o *Overlay) Name() string {
	names := make([]string, len(o.stores))
	for i, s := range o.stores {
		names[i] = s.Name()
	}
	return strings.Join(names, "+")
}

// Has reports whether any layer holds name.
func (o *Overlay) Has(name string) bool {
	for _, s := range o.stores {
		if s.Has(name) {
			return true
		}
	}
	return false
}

// Get returns name from the first layer holding it.
func (o *Overlay) Get(name string) (string, error) {
	for _, s := range o.stores {
		text, err := s.Get(name)
		if err == nil {
			return text, nil
		}
		var nf *ComponentNotFoundError
		if !errors.As(err, &nf) {
			return "", err
		}
	}
	return "", &ComponentNotFoundError{Name: name, Store: o.Name()}
}

// List merges the names of every enumerable layer.
func (o *Overlay) List() ([]string, error) {
	seen := map[string]bool{}
	var out []string
	for _, s := range o.stores {
		l, ok := s.(Lister)
		if !ok {
			continue
		}
		names, err := l.List()
		if err != nil {
			return nil, err
		}
		for _, n := range names {
			if !seen[n] {
				seen[n] = true
				out = append(out, n)
			}
		}
	}
	sort.Strings(out)
	return out, nil
}
