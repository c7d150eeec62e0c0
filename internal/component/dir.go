package component

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tacogips/clismith/internal/debug"
)

// DirStore serves components from a template directory on disk. The layout
// mirrors the embedded templates: "<dir>/python/cli.py.hbs" holds the
// component "python/cli.py".
type DirStore struct {
	root string
	fs   *FSStore
}

// NewDirStore opens dir as a component store. A relative dir is resolved
// against baseDir, or the working directory when baseDir is empty.
func NewDirStore(dir, baseDir string) (*DirStore, error) {
	debug.Debug("[component] Opening template directory: %s", dir)

	root, err := resolveDir(dir, baseDir)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("template directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("template directory %s: not a directory", dir)
	}

	debug.Debug("[component] Template root: %s", root)
	return &DirStore{root: root, fs: NewFSStore(os.DirFS(root), "directory")}, nil
}

// Root returns the absolute template directory.
func (s *DirStore) Root() string {
	return s.root
}

// Name identifies the store.
func (s *DirStore) Name() string {
	return "directory"
}

// Has reports whether the directory holds name.
func (s *DirStore) Has(name string) bool {
	return s.fs.Has(name)
}

// Get reads the template for name. Binary files are rejected.
func (s *DirStore) Get(name string) (string, error) {
	text, err := s.fs.Get(name)
	if err != nil {
		return "", err
	}
	if isBinaryContent([]byte(text)) {
		return "", fmt.Errorf("component %q in %s is binary", name, s.root)
	}
	return text, nil
}

// List returns every component name in the directory.
func (s *DirStore) List() ([]string, error) {
	return s.fs.List()
}

// resolveDir makes dir absolute. Relative paths may not escape baseDir.
func resolveDir(dir, baseDir string) (string, error) {
	if dir == "" {
		return "", fmt.Errorf("template directory cannot be empty")
	}
	if filepath.IsAbs(dir) {
		return filepath.Clean(dir), nil
	}
	if baseDir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to get current directory: %w", err)
		}
		baseDir = cwd
	}
	abs := filepath.Clean(filepath.Join(baseDir, dir))
	if !isSubPath(baseDir, abs) {
		return "", fmt.Errorf("template directory escapes base directory: %s", dir)
	}
	return abs, nil
}

func isSubPath(parent, child string) bool {
	parent = filepath.Clean(parent)
	child = filepath.Clean(child)
	if !filepath.IsAbs(parent) || !filepath.IsAbs(child) {
		return false
	}
	rel, err := filepath.Rel(parent, child)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// isBinaryContent looks for NUL bytes in the first 512 bytes.
func isBinaryContent(content []byte) bool {
	size := len(content)
	if size > 512 {
		size = 512
	}
	for i := 0; i < size; i++ {
		if content[i] == 0 {
			return true
		}
	}
	return false
}
