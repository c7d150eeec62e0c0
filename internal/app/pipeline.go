package app

import (
	"context"
	"time"

	"github.com/tacogips/clismith/internal/debug"
	"github.com/tacogips/clismith/internal/features"
	"github.com/tacogips/clismith/internal/ir"
	"github.com/tacogips/clismith/internal/renderer"
	"github.com/tacogips/clismith/internal/schema"
	"github.com/tacogips/clismith/internal/template/generator"
	"golang.org/x/sync/errgroup"
)

// Pipeline sequences validation, IR construction, feature analysis and
// rendering. It holds no per-run state and is safe for concurrent use.
type Pipeline struct {
	registry *renderer.Registry
	analyzer *features.Analyzer
}

// NewPipeline creates a Pipeline resolving targets in reg and analyzing
// features with th.
func NewPipeline(reg *renderer.Registry, th features.Thresholds) *Pipeline {
	if reg == nil {
		reg = renderer.DefaultRegistry()
	}
	return &Pipeline{registry: reg, analyzer: features.NewAnalyzer(th)}
}

// DefaultPipeline uses every built-in target and the default thresholds.
func DefaultPipeline() *Pipeline {
	return NewPipeline(renderer.DefaultRegistry(), features.DefaultThresholds())
}

// Registry returns the target registry.
func (p *Pipeline) Registry() *renderer.Registry {
	return p.registry
}

// Compiled is the target-independent result of a run: the validated
// configuration with its IR and feature set. It is shared read-only by every
// target rendered from it.
type Compiled struct {
	Config   *schema.Config
	IR       *ir.IR
	Features features.FeatureSet
}

// Output is one target's rendering result.
type Output struct {
	Target   string
	Context  renderer.Context
	Manifest renderer.Manifest
	Filters  map[string]renderer.Filter
}

// Job returns the generator job for o.
func (o *Output) Job() generator.Job {
	return generator.Job{Manifest: o.Manifest, Context: o.Context, Filters: o.Filters}
}

// Compile validates raw, then builds the IR and analyzes features
// concurrently. A schema.SchemaErrors batch, an ir.BuildInvariantError or a
// context error is returned as is.
func (p *Pipeline) Compile(ctx context.Context, raw interface{}, source string) (*Compiled, error) {
	start := time.Now()
	defer debug.DebugDuration("[app] Compile", start)

	cfg, err := schema.Validate(raw)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c := &Compiled{Config: cfg}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		tree, err := ir.Build(cfg, source)
		if err != nil {
			return err
		}
		c.IR = tree
		return gctx.Err()
	})
	g.Go(func() error {
		c.Features = p.analyzer.Analyze(cfg)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	debug.Debug("[app] Compiled %s: %d commands, features=%s", source, len(c.IR.Commands), c.Features)
	return c, nil
}

// Render produces the context, manifest and filters of one target. An empty
// target selects the language named by the configuration.
func (p *Pipeline) Render(c *Compiled, target string) (*Output, error) {
	if target == "" {
		target = c.Config.Language
	}
	r, err := p.registry.New(target)
	if err != nil {
		return nil, err
	}
	tctx, err := r.TemplateContext(c.IR, c.Features)
	if err != nil {
		return nil, err
	}
	manifest, err := r.OutputStructure(c.IR)
	if err != nil {
		return nil, err
	}
	debug.Debug("[app] Rendered target %s: %d files", target, len(manifest.Files))
	return &Output{
		Target:   target,
		Context:  tctx,
		Manifest: manifest,
		Filters:  r.CustomFilters(),
	}, nil
}

// Run compiles raw and renders a single target.
func (p *Pipeline) Run(ctx context.Context, raw interface{}, source, target string) (*Output, error) {
	c, err := p.Compile(ctx, raw, source)
	if err != nil {
		return nil, err
	}
	return p.Render(c, target)
}

// RenderAll renders every target concurrently, each with its own renderer.
// Outputs keep the order of targets; the first failure is returned.
func (p *Pipeline) RenderAll(ctx context.Context, c *Compiled, targets []string) ([]*Output, error) {
	for _, t := range targets {
		if !p.registry.Has(t) {
			_, err := p.registry.New(t)
			return nil, err
		}
	}

	outputs := make([]*Output, len(targets))
	g, gctx := errgroup.WithContext(ctx)
	for i, t := range targets {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out, err := p.Render(c, t)
			if err != nil {
				return err
			}
			outputs[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outputs, nil
}
