package integration

import (
	"os"
	"path/filepath"
	"testing"
)

// copyFixtureToTemp copies a fixture file or directory under ../fixtures to
// tempDir and returns the absolute path of the copy.
func copyFixtureToTemp(t *testing.T, fixture, tempDir string) string {
	t.Helper()

	src, err := filepath.Abs(filepath.Join("../fixtures", fixture))
	if err != nil {
		t.Fatalf("failed to get fixture path: %v", err)
	}
	dest := filepath.Join(tempDir, filepath.Base(fixture))

	err = filepath.Walk(src, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		relPath, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		destPath := filepath.Join(dest, relPath)

		if info.IsDir() {
			return os.MkdirAll(destPath, 0o755)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		return os.WriteFile(destPath, data, 0o644)
	})
	if err != nil {
		t.Fatalf("failed to copy fixture: %v", err)
	}
	return dest
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return string(data)
}

func assertExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected %s to exist: %v", path, err)
	}
}
