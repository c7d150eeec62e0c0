package app

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/tacogips/clismith/internal/component"
	"github.com/tacogips/clismith/internal/config"
	"github.com/tacogips/clismith/internal/debug"
	"github.com/tacogips/clismith/internal/features"
	"github.com/tacogips/clismith/internal/template/generator"
)

// LoadConfig reads the configuration document at path.
func LoadConfig(path string) (*config.Mapping, error) {
	if path == "" {
		return nil, NewValidationError("configuration path cannot be empty", nil)
	}
	doc, err := config.LoadDocument(path)
	if err != nil {
		return nil, NewLoadError("failed to load configuration", err)
	}
	return doc, nil
}

// SourceName is the name recorded as the IR's provenance: the base name of
// the configuration file.
func SourceName(path string) string {
	return filepath.Base(path)
}

// ThresholdsFromSettings converts the analyzer settings.
func ThresholdsFromSettings(s *config.Settings) features.Thresholds {
	if s == nil {
		return features.DefaultThresholds()
	}
	return features.Thresholds{
		MaxPlainCommands: s.Analyzer.MaxPlainCommands,
		MaxPlainOptions:  s.Analyzer.MaxPlainOptions,
	}
}

// ValidateOptions contains options for validating a configuration.
type ValidateOptions struct {
	// ConfigPath is the configuration document to validate.
	ConfigPath string
	// Pipeline runs the validation; nil uses DefaultPipeline.
	Pipeline *Pipeline
}

// ValidateResult summarizes a valid configuration.
type ValidateResult struct {
	// Compiled holds the validated configuration, IR and features.
	Compiled *Compiled
	// Commands is the number of commands in the whole tree.
	Commands int
	// Groups is the number of commands with subcommands.
	Groups int
}

// Validate loads and compiles a configuration without rendering. Schema
// errors are returned as a schema.SchemaErrors batch.
func Validate(ctx context.Context, opts ValidateOptions) (*ValidateResult, error) {
	debug.DebugSection("[app] Validate workflow start")
	debug.DebugValue("[app] Config", opts.ConfigPath)

	doc, err := LoadConfig(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	c, err := pipelineOrDefault(opts.Pipeline).Compile(ctx, doc, SourceName(opts.ConfigPath))
	if err != nil {
		return nil, err
	}

	result := &ValidateResult{Compiled: c, Commands: len(c.IR.Commands)}
	for _, cmd := range c.IR.Commands {
		if cmd.IsGroup() {
			result.Groups++
		}
	}
	return result, nil
}

// RenderOptions selects the targets to render.
type RenderOptions struct {
	// ConfigPath is the configuration document.
	ConfigPath string
	// Targets lists target names. Empty selects the configuration's language.
	Targets []string
	// All renders every registered target and ignores Targets.
	All bool
	// Pipeline runs the rendering; nil uses DefaultPipeline.
	Pipeline *Pipeline
}

// RenderResult holds the rendered targets in request order.
type RenderResult struct {
	Compiled *Compiled
	Outputs  []*Output
}

// Render loads, compiles and renders the selected targets without touching
// the component store or the disk.
func Render(ctx context.Context, opts RenderOptions) (*RenderResult, error) {
	debug.DebugSection("[app] Render workflow start")
	debug.DebugValue("[app] Config", opts.ConfigPath)

	p := pipelineOrDefault(opts.Pipeline)
	doc, err := LoadConfig(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	c, err := p.Compile(ctx, doc, SourceName(opts.ConfigPath))
	if err != nil {
		return nil, err
	}
	targets := selectTargets(p, c, opts.Targets, opts.All)
	debug.DebugValue("[app] Targets", targets)

	outputs, err := p.RenderAll(ctx, c, targets)
	if err != nil {
		return nil, err
	}
	return &RenderResult{Compiled: c, Outputs: outputs}, nil
}

// GenerateOptions contains options for generating files.
type GenerateOptions struct {
	RenderOptions
	// OutputDir is the directory files are written under. With more than one
	// target each target is written to OutputDir/<target>.
	OutputDir string
	// Overwrite replaces existing generated files.
	Overwrite bool
	// DryRun reports what would be written without writing.
	DryRun bool
	// TemplatesDir overlays the embedded templates with a directory.
	TemplatesDir string
	// Skip lists doublestar patterns of output paths that are never written.
	Skip []string
	// CacheSize is the component cache capacity; 0 uses 64.
	CacheSize int
}

// TargetResult is the outcome of one target.
type TargetResult struct {
	*generator.GenerateResult
	// OutputDir is the directory the target was written to.
	OutputDir string
}

// GenerateResult contains the results of every generated target.
type GenerateResult struct {
	Compiled *Compiled
	Targets  []TargetResult
}

// FilesCreated sums the created files of all targets.
func (r *GenerateResult) FilesCreated() int {
	n := 0
	for _, t := range r.Targets {
		n += t.FilesCreated
	}
	return n
}

// Generate renders the selected targets and writes their files.
func Generate(ctx context.Context, opts GenerateOptions) (*GenerateResult, error) {
	cacheSize := opts.CacheSize
	if cacheSize <= 0 {
		cacheSize = config.DefaultSettings().Cache.Templates
	}
	store, err := component.Open(opts.TemplatesDir, cacheSize)
	if err != nil {
		return nil, NewLoadError("failed to open templates", err)
	}
	return generateWith(ctx, opts, store)
}

func generateWith(ctx context.Context, opts GenerateOptions, store component.Store) (*GenerateResult, error) {
	debug.DebugSection("[app] Generate workflow start")
	debug.DebugValue("[app] OutputDir", opts.OutputDir)
	debug.DebugValue("[app] DryRun", opts.DryRun)
	debug.DebugValue("[app] Overwrite", opts.Overwrite)
	debug.DebugValue("[app] Store", store.Name())

	if err := ValidateOutputDir(opts.OutputDir); err != nil {
		return nil, NewValidationError("invalid output directory", err)
	}

	rendered, err := Render(ctx, opts.RenderOptions)
	if err != nil {
		return nil, err
	}

	// Every component must exist before any target writes a file.
	for _, out := range rendered.Outputs {
		var want []string
		for _, f := range out.Manifest.Files {
			want = append(want, f.Component)
		}
		if missing := component.Missing(store, want); len(missing) > 0 {
			return nil, &component.ComponentNotFoundError{Name: missing[0], Store: store.Name()}
		}
	}

	gen := generator.NewGenerator(store)
	result := &GenerateResult{Compiled: rendered.Compiled}
	for _, out := range rendered.Outputs {
		dir := opts.OutputDir
		if len(rendered.Outputs) > 1 {
			dir = filepath.Join(opts.OutputDir, out.Target)
		}
		genOpts := generator.GenerateOptions{OutputDir: dir, Overwrite: opts.Overwrite, Skip: opts.Skip}

		var res *generator.GenerateResult
		if opts.DryRun {
			res, err = gen.DryRun(ctx, out.Job(), genOpts)
		} else {
			res, err = gen.Generate(ctx, out.Job(), genOpts)
		}
		if err != nil {
			var ge *generator.GeneratorError
			if errors.As(err, &ge) && ge.Type == generator.GeneratorWriteFailed {
				return nil, NewGenerateError(fmt.Sprintf("failed to generate %s", out.Target), err)
			}
			return nil, err
		}
		result.Targets = append(result.Targets, TargetResult{GenerateResult: res, OutputDir: dir})
	}
	debug.Debug("[app] Generate workflow completed: %d targets, %d files created", len(result.Targets), result.FilesCreated())
	return result, nil
}

// ValidateOutputDir validates that the output directory path is usable.
func ValidateOutputDir(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("output directory cannot be empty")
	}
	return nil
}

func selectTargets(p *Pipeline, c *Compiled, targets []string, all bool) []string {
	if all {
		return p.Registry().Names()
	}
	if len(targets) == 0 {
		return []string{c.Config.Language}
	}
	seen := make(map[string]bool, len(targets))
	var out []string
	for _, t := range targets {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" && !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	return out
}

func pipelineOrDefault(p *Pipeline) *Pipeline {
	if p == nil {
		return DefaultPipeline()
	}
	return p
}
