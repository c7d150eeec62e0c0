// Package generator renders a target's manifest through the component store
// and writes the result to disk.
package generator

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tacogips/clismith/internal/component"
	"github.com/tacogips/clismith/internal/debug"
	"github.com/tacogips/clismith/internal/renderer"
)

// Job is everything needed to produce one target's files.
type Job struct {
	Manifest renderer.Manifest
	Context  renderer.Context
	Filters  map[string]renderer.Filter
}

// GenerateOptions configures file generation.
type GenerateOptions struct {
	// OutputDir is the directory files are written under.
	OutputDir string
	// Overwrite replaces existing generated files. Preserved files are never
	// overwritten.
	Overwrite bool
	// Skip lists doublestar patterns of output paths that are never written.
	Skip []string
}

// RenderedFile is one manifest entry with its rendered content.
type RenderedFile struct {
	renderer.OutputFile
	Content []byte
}

// Mode returns the permissions the file is written with.
func (f RenderedFile) Mode() os.FileMode {
	if f.Executable {
		return ModeExecutable
	}
	return ModeRegular
}

// DryRunFile describes what would happen to one file in dry-run mode.
type DryRunFile struct {
	// Path is the output file path.
	Path string
	// Content is the rendered content.
	Content []byte
	// Exists indicates the file already exists.
	Exists bool
	// WouldOverwrite indicates an existing file would be replaced.
	WouldOverwrite bool
	// WouldSkip indicates the file would not be written.
	WouldSkip bool
}

// GenerateResult contains generation statistics.
type GenerateResult struct {
	// Target is the target the files belong to.
	Target string
	// FilesCreated is the number of new files created.
	FilesCreated int
	// FilesSkipped is the number of existing files left alone.
	FilesSkipped int
	// FilesOverwritten is the number of existing files replaced.
	FilesOverwritten int
	// FilesPreserved is the number of existing user-owned files kept.
	FilesPreserved int
	// FilesIgnored is the number of files matching a skip pattern.
	FilesIgnored int
	// Files lists every output path that was considered.
	Files []string
	// DryRunFiles is populated in dry-run mode only.
	DryRunFiles []DryRunFile
	// Directories lists directories that would be created (dry-run only).
	Directories []string
}

// Generator renders manifests and writes files.
type Generator struct {
	store  component.Store
	writer Writer
}

// NewGenerator creates a Generator reading templates from store.
func NewGenerator(store component.Store) *Generator {
	return &Generator{store: store, writer: NewFileWriter()}
}

// NewGeneratorWithWriter creates a Generator with a custom writer.
func NewGeneratorWithWriter(store component.Store, w Writer) *Generator {
	return &Generator{store: store, writer: w}
}

// Render renders every manifest file in memory. A missing component is
// returned as the store's *component.ComponentNotFoundError.
func (g *Generator) Render(ctx context.Context, job Job) ([]RenderedFile, error) {
	helpers := Helpers(job.Filters)
	files := make([]RenderedFile, 0, len(job.Manifest.Files))
	for _, f := range job.Manifest.Files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := safeRelPath(f.Path); err != nil {
			return nil, err
		}
		source, err := g.store.Get(f.Component)
		if err != nil {
			return nil, err
		}
		out, err := Render(f.Component, source, job.Context, helpers)
		if err != nil {
			return nil, err
		}
		debug.Debug("[generator] Rendered %s -> %s (%d bytes)", f.Component, f.Path, len(out))
		files = append(files, RenderedFile{OutputFile: f, Content: []byte(out)})
	}
	return files, nil
}

// Generate renders job and writes the files under opts.OutputDir.
func (g *Generator) Generate(ctx context.Context, job Job, opts GenerateOptions) (*GenerateResult, error) {
	return g.generate(ctx, job, opts, false)
}

// DryRun renders job and reports what Generate would do, writing nothing.
func (g *Generator) DryRun(ctx context.Context, job Job, opts GenerateOptions) (*GenerateResult, error) {
	return g.generate(ctx, job, opts, true)
}

func (g *Generator) generate(ctx context.Context, job Job, opts GenerateOptions, dryRun bool) (*GenerateResult, error) {
	if opts.OutputDir == "" {
		return nil, fmt.Errorf("output directory cannot be empty")
	}
	if err := ValidatePatterns(opts.Skip); err != nil {
		return nil, err
	}
	debug.Debug("[generator] Starting generation: target=%s, outputDir=%s, dryRun=%v, overwrite=%v",
		job.Manifest.Target, opts.OutputDir, dryRun, opts.Overwrite)

	// Render everything before touching the disk so a template error never
	// leaves a half-written tree.
	files, err := g.Render(ctx, job)
	if err != nil {
		return nil, err
	}

	result := &GenerateResult{Target: job.Manifest.Target}
	dirs := map[string]bool{}

	if !dryRun && !g.writer.Exists(opts.OutputDir) {
		if err := g.writer.CreateDir(opts.OutputDir); err != nil {
			return nil, err
		}
	}

	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if ShouldSkip(f.Path, opts.Skip) {
			result.FilesIgnored++
			continue
		}

		outputPath := filepath.Join(opts.OutputDir, filepath.FromSlash(f.Path))
		result.Files = append(result.Files, outputPath)
		if dryRun {
			for dir := filepath.Dir(outputPath); dir != "." && dir != string(filepath.Separator) && !dirs[dir]; dir = filepath.Dir(dir) {
				if g.writer.Exists(dir) {
					break
				}
				dirs[dir] = true
			}
		}

		exists := g.writer.Exists(outputPath)
		switch {
		case exists && f.Preserve:
			debug.Debug("[generator] Preserving user-owned file: %s", outputPath)
			result.FilesPreserved++
			if dryRun {
				result.DryRunFiles = append(result.DryRunFiles, DryRunFile{Path: outputPath, Exists: true, WouldSkip: true})
			}
			continue
		case exists && !opts.Overwrite:
			debug.Debug("[generator] Skipping existing file: %s", outputPath)
			result.FilesSkipped++
			if dryRun {
				result.DryRunFiles = append(result.DryRunFiles, DryRunFile{Path: outputPath, Exists: true, WouldSkip: true})
			}
			continue
		}

		if dryRun {
			result.DryRunFiles = append(result.DryRunFiles, DryRunFile{
				Path:           outputPath,
				Content:        f.Content,
				Exists:         exists,
				WouldOverwrite: exists,
			})
		} else if err := g.writer.WriteFile(outputPath, f.Content, f.Mode()); err != nil {
			return result, err
		}

		if exists {
			result.FilesOverwritten++
		} else {
			result.FilesCreated++
		}
	}

	if dryRun {
		for dir := range dirs {
			result.Directories = append(result.Directories, dir)
		}
		sortPaths(result.Directories)
	}

	debug.Debug("[generator] Generation complete: created=%d, overwritten=%d, skipped=%d, preserved=%d, ignored=%d",
		result.FilesCreated, result.FilesOverwritten, result.FilesSkipped, result.FilesPreserved, result.FilesIgnored)
	return result, nil
}

// sortPaths orders parents before children, then lexically.
func sortPaths(paths []string) {
	sort.Slice(paths, func(i, j int) bool {
		di, dj := pathDepth(paths[i]), pathDepth(paths[j])
		if di != dj {
			return di < dj
		}
		return paths[i] < paths[j]
	})
}

func pathDepth(p string) int {
	clean := filepath.Clean(p)
	if clean == "." || clean == string(filepath.Separator) {
		return 0
	}
	return strings.Count(clean, string(filepath.Separator))
}
