// Package component provides keyed stores of raw template text. A component
// name such as "python/cli.py" maps to the template the generator renders
// for that output file.
package component

import (
	"fmt"
	"sort"
	"strings"
)

// TemplateExt is the file extension of template files on disk.
const TemplateExt = ".hbs"

// Store maps component names to raw template text.
type Store interface {
	// Has reports whether the store holds name.
	Has(name string) bool
	// Get returns the template text for name, or a *ComponentNotFoundError.
	Get(name string) (string, error)
	// Name identifies the store in errors and logs.
	Name() string
}

// Lister is implemented by stores that can enumerate their components.
type Lister interface {
	List() ([]string, error)
}

// ComponentNotFoundError reports a component missing from a store.
type ComponentNotFoundError struct {
	Name  string
	Store string
}

// Error implements the error interface.
func (e *ComponentNotFoundError) Error() string {
	return fmt.Sprintf("component %q not found in %s store", e.Name, e.Store)
}

// ValidName reports whether name is a clean, relative, slash-separated
// component name.
func ValidName(name string) bool {
	if name == "" || strings.HasPrefix(name, "/") || strings.Contains(name, `\`) {
		return false
	}
	for _, part := range strings.Split(name, "/") {
		if part == "" || part == "." || part == ".." {
			return false
		}
	}
	return true
}

// Missing returns the names from want that store does not hold, sorted.
func Missing(store Store, want []string) []string {
	var out []string
	for _, name := range want {
		if !store.Has(name) {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

// Open returns the store the generator reads from: the embedded templates,
// overlaid by dir when it is set, behind an LRU cache of cacheSize entries.
func Open(dir string, cacheSize int) (*CachedStore, error) {
	var store Store = NewEmbedded()
	if dir != "" {
		ds, err := NewDirStore(dir, "")
		if err != nil {
			return nil, err
		}
		store = NewOverlay(ds, store)
	}
	return NewCached(store, cacheSize)
}
