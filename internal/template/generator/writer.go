package generator

import (
	"os"
	"path/filepath"

	"github.com/tacogips/clismith/internal/debug"
)

// File modes of generated files.
const (
	ModeRegular    os.FileMode = 0o644
	ModeExecutable os.FileMode = 0o755
)

// Writer writes files to the filesystem.
type Writer interface {
	// WriteFile writes content to path with the given permissions.
	WriteFile(path string, content []byte, mode os.FileMode) error
	// CreateDir creates a directory and any necessary parents.
	CreateDir(path string) error
	// Exists reports whether something exists at path.
	Exists(path string) bool
}

// FileWriter implements Writer for the local filesystem.
type FileWriter struct{}

// NewFileWriter creates a FileWriter.
func NewFileWriter() *FileWriter {
	return &FileWriter{}
}

// WriteFile writes content atomically: it writes a temporary file next to
// path and renames it into place. Parent directories are created.
func (w *FileWriter) WriteFile(path string, content []byte, mode os.FileMode) error {
	debug.Debug("[generator] Writing file: %s (size: %d bytes, mode: %o)", path, len(content), mode)

	dir := filepath.Dir(path)
	if err := w.CreateDir(dir); err != nil {
		return err
	}

	f, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return newGeneratorError(GeneratorWriteFailed, "failed to create temporary file", path, err)
	}
	tempFile := f.Name()

	_, err = f.Write(content)
	closeErr := f.Close()
	if err != nil {
		_ = os.Remove(tempFile)
		return newGeneratorError(GeneratorWriteFailed, "failed to write file content", path, err)
	}
	if closeErr != nil {
		_ = os.Remove(tempFile)
		return newGeneratorError(GeneratorWriteFailed, "failed to close file", path, closeErr)
	}
	if err := os.Chmod(tempFile, mode); err != nil {
		_ = os.Remove(tempFile)
		return newGeneratorError(GeneratorWriteFailed, "failed to set file mode", path, err)
	}
	if err := os.Rename(tempFile, path); err != nil {
		_ = os.Remove(tempFile)
		return newGeneratorError(GeneratorWriteFailed, "failed to rename temporary file", path, err)
	}
	return nil
}

// CreateDir creates a directory and any necessary parents with mode 0755.
func (w *FileWriter) CreateDir(path string) error {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return newGeneratorError(GeneratorWriteFailed, "failed to create directory", path, err)
	}
	return nil
}

// Exists reports whether something exists at path.
func (w *FileWriter) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
