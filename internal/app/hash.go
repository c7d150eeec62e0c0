package app

import (
	"crypto/sha256"
	"encoding/hex"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// HashableFile represents a file with path and content for hash calculation.
type HashableFile struct {
	// Path is the file path.
	Path string
	// Content is the file content.
	Content []byte
}

// HashFiles calculates a SHA256 hash from file path/content pairs.
// The input files must already be sorted by path for deterministic results.
// Null byte separators between path and content, and between files, keep
// different file combinations from colliding.
func HashFiles(files []HashableFile) string {
	if len(files) == 0 {
		return ""
	}

	h := sha256.New()
	for _, file := range files {
		h.Write([]byte(file.Path))
		h.Write([]byte("\x00"))
		h.Write(file.Content)
		h.Write([]byte("\x00"))
	}
	return hex.EncodeToString(h.Sum(nil))
}

// HashInputs hashes the configuration file and every file under
// templatesDir, if set. Unreadable files hash as empty so a file that is
// briefly missing mid-save still changes the result.
func HashInputs(configPath, templatesDir string) string {
	paths := []string{configPath}
	if templatesDir != "" {
		_ = filepath.WalkDir(templatesDir, func(path string, d fs.DirEntry, err error) error {
			if err == nil && !d.IsDir() {
				paths = append(paths, path)
			}
			return nil
		})
	}
	sort.Strings(paths)

	files := make([]HashableFile, 0, len(paths))
	for _, p := range paths {
		content, _ := os.ReadFile(p)
		files = append(files, HashableFile{Path: p, Content: content})
	}
	return HashFiles(files)
}
