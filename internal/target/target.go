// Package target holds the static, per-language tables renderers consume:
// canonical type mapping, reserved words and identifier conventions.
// Everything here is immutable after package initialization and safe for
// concurrent use.
package target

import (
	"fmt"
	"sort"

	"github.com/tacogips/clismith/internal/canon"
)

// Convention is the identifier case convention of a target language.
type Convention int

const (
	// SnakeCase joins lower-case words with underscores.
	SnakeCase Convention = iota
	// CamelCase joins words with capitalized initials after the first.
	CamelCase
)

// String returns the convention name.
func (c Convention) String() string {
	switch c {
	case SnakeCase:
		return "snake_case"
	case CamelCase:
		return "camelCase"
	default:
		return "unknown"
	}
}

// Apply transforms name into the convention, keeping leading and trailing
// underscores.
func (c Convention) Apply(name string) string {
	switch c {
	case CamelCase:
		return Camel(name)
	default:
		return Snake(name)
	}
}

// Target describes one output ecosystem.
type Target struct {
	// Name is the identifier used in configuration documents (e.g. "python").
	Name string
	// DisplayName is the human-readable language name.
	DisplayName string
	// Framework is the CLI framework generated code builds on.
	Framework string
	// FileExtension is the source file extension including the dot.
	FileExtension string
	// Convention is the identifier convention of the language.
	Convention Convention

	types    map[canon.Type]string
	reserved map[string]struct{}
}

// TypeName returns the target primitive for a canonical tag.
func (t *Target) TypeName(tag canon.Type) (string, bool) {
	name, ok := t.types[tag]
	if !ok || name == "" {
		return "", false
	}
	return name, true
}

// IsReserved reports whether word is reserved in the target language.
// The comparison is exact; reserved words are case-sensitive in every target.
func (t *Target) IsReserved(word string) bool {
	_, ok := t.reserved[word]
	return ok
}

// ReservedWords returns the reserved-word table in sorted order.
func (t *Target) ReservedWords() []string {
	words := make([]string, 0, len(t.reserved))
	for w := range t.reserved {
		words = append(words, w)
	}
	sort.Strings(words)
	return words
}

// Check verifies every canonical tag has a non-empty mapping. A failure is a
// defect in the generator's own tables, not in user input.
func (t *Target) Check() error {
	for _, tag := range canon.All() {
		if _, ok := t.TypeName(tag); !ok {
			return fmt.Errorf("target %s: no type mapping for canonical type %q", t.Name, tag)
		}
	}
	return nil
}

func newTarget(name, display, framework, ext string, conv Convention, types map[canon.Type]string, reserved []string) *Target {
	t := &Target{
		Name:          name,
		DisplayName:   display,
		Framework:     framework,
		FileExtension: ext,
		Convention:    conv,
		types:         types,
		reserved:      make(map[string]struct{}, len(reserved)),
	}
	for _, w := range reserved {
		t.reserved[w] = struct{}{}
	}
	return t
}

// all holds the targets in presentation order.
var all = []*Target{Python, NodeJS, TypeScript, Rust, Go}

func init() {
	for _, t := range all {
		if err := t.Check(); err != nil {
			panic(err)
		}
	}
}

// All returns every known target in presentation order.
func All() []*Target {
	out := make([]*Target, len(all))
	copy(out, all)
	return out
}

// Names returns the names of every known target.
func Names() []string {
	names := make([]string, len(all))
	for i, t := range all {
		names[i] = t.Name
	}
	return names
}

// Lookup returns the target with the given name.
func Lookup(name string) (*Target, bool) {
	for _, t := range all {
		if t.Name == name {
			return t, true
		}
	}
	return nil, false
}

// IsKnown reports whether name identifies a target.
func IsKnown(name string) bool {
	_, ok := Lookup(name)
	return ok
}
