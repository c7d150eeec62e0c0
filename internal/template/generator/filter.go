package generator

import (
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/tacogips/clismith/internal/debug"
)

// MatchesPattern reports whether the slash-separated output path matches a
// doublestar pattern. Patterns without a slash also match the base name, so
// "*.md" skips "docs/README.md".
func MatchesPattern(relPath, pattern string) bool {
	if ok, err := doublestar.Match(pattern, relPath); err == nil && ok {
		return true
	}
	if !strings.Contains(pattern, "/") {
		if ok, err := doublestar.Match(pattern, path.Base(relPath)); err == nil && ok {
			return true
		}
	}
	return false
}

// ShouldSkip reports whether relPath matches any skip pattern.
func ShouldSkip(relPath string, patterns []string) bool {
	for _, pattern := range patterns {
		if MatchesPattern(relPath, pattern) {
			debug.Debug("[generator] Skipping %s (matched pattern: %s)", relPath, pattern)
			return true
		}
	}
	return false
}

// ValidatePatterns reports the first malformed skip pattern.
func ValidatePatterns(patterns []string) error {
	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			return newGeneratorError(GeneratorPathError, "invalid skip pattern", p, nil)
		}
	}
	return nil
}

// safeRelPath checks that an output path stays inside the output directory.
func safeRelPath(p string) error {
	if p == "" || path.IsAbs(p) || strings.Contains(p, `\`) {
		return newGeneratorError(GeneratorPathError, "output path must be relative", p, nil)
	}
	clean := path.Clean(p)
	if clean != p || clean == ".." || strings.HasPrefix(clean, "../") {
		return newGeneratorError(GeneratorPathError, "output path must be clean and stay inside the output directory", p, nil)
	}
	return nil
}
