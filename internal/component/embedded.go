package component

import (
	"embed"
	"errors"
	"io/fs"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/tacogips/clismith/internal/debug"
)

//go:embed all:templates
var templates embed.FS

// FSStore serves components from an fs.FS holding "<name>.hbs" files.
type FSStore struct {
	fsys  fs.FS
	label string
}

// NewEmbedded returns the store of templates compiled into the binary.
func NewEmbedded() *FSStore {
	sub, err := fs.Sub(templates, "templates")
	if err != nil {
		panic(err)
	}
	return &FSStore{fsys: sub, label: "embedded"}
}

// NewFSStore serves components from fsys.
func NewFSStore(fsys fs.FS, label string) *FSStore {
	return &FSStore{fsys: fsys, label: label}
}

// Name identifies the store.
func (s *FSStore) Name() string {
	return s.label
}

// Has reports whether the store holds name.
func (s *FSStore) Has(name string) bool {
	if !ValidName(name) {
		return false
	}
	info, err := fs.Stat(s.fsys, name+TemplateExt)
	return err == nil && !info.IsDir()
}

// Get returns the template text for name.
func (s *FSStore) Get(name string) (string, error) {
	if !ValidName(name) {
		return "", &ComponentNotFoundError{Name: name, Store: s.label}
	}
	data, err := fs.ReadFile(s.fsys, name+TemplateExt)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			debug.Debug("[component] %s store has no %s", s.label, name)
			return "", &ComponentNotFoundError{Name: name, Store: s.label}
		}
		return "", err
	}
	return string(data), nil
}

// List returns every component name in the store, sorted.
func (s *FSStore) List() ([]string, error) {
	matches, err := doublestar.Glob(s.fsys, "**/*"+TemplateExt)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(matches))
	for i, m := range matches {
		names[i] = strings.TrimSuffix(m, TemplateExt)
	}
	sort.Strings(names)
	return names, nil
}
