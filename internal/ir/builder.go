package ir

import (
	"strings"
	"time"

	"github.com/tacogips/clismith/internal/build"
	"github.com/tacogips/clismith/internal/canon"
	"github.com/tacogips/clismith/internal/config"
	"github.com/tacogips/clismith/internal/debug"
	"github.com/tacogips/clismith/internal/schema"
)

// Build lowers a validated configuration into an IR. sourceName is recorded
// as provenance only.
//
// Build is a pure function of its inputs: equal configurations yield
// structurally equal IRs. It fails only with a *BuildInvariantError, and
// never returns a partially built IR.
func Build(cfg *schema.Config, sourceName string) (*IR, error) {
	start := time.Now()
	defer debug.DebugDuration("[ir] Build", start)

	if cfg == nil {
		return nil, newInvariantError("", "no validated configuration")
	}

	b := &builder{hooks: make(map[string]string)}
	globals, err := b.options(cfg.CLI.Options, "")
	if err != nil {
		return nil, err
	}
	commands, err := b.commands(cfg.CLI.Commands, nil)
	if err != nil {
		return nil, err
	}
	if b.defaults > 1 {
		return nil, newInvariantError("", "%d default commands", b.defaults)
	}

	result := &IR{
		Project: Project{
			Name:        cfg.DisplayName,
			PackageName: cfg.PackageName,
			CommandName: cfg.CommandName,
			Version:     cfg.Version,
			Description: cfg.Description,
			Author:      cfg.Author,
			License:     cfg.License,
			Language:    cfg.Language,
		},
		Metadata: Metadata{
			SourceName:       sourceName,
			GeneratorVersion: build.GeneratorTag(),
		},
		CLI: CLI{
			Name:          cfg.CLI.Name,
			Tagline:       cfg.CLI.Tagline,
			Version:       cfg.CLI.Version,
			Color:         cfg.CLI.Color,
			GlobalOptions: globals,
			Commands:      commands,
		},
		Commands: b.flat,
	}
	debug.Debug("[ir] Built %d commands (%d top-level) from %s", len(b.flat), len(commands), sourceName)
	return result, nil
}

type builder struct {
	// flat collects commands in pre-order as they are built.
	flat []*Command
	// hooks maps hook names to the command path that owns them.
	hooks    map[string]string
	defaults int
}

// commands lowers one level of the tree. prefix is the path of the parent.
func (b *builder) commands(cmds []schema.Command, prefix []string) ([]*Command, error) {
	out := make([]*Command, 0, len(cmds))
	siblings := make(map[string]bool, len(cmds))

	for i := range cmds {
		src := &cmds[i]
		path := append(prefix[:len(prefix):len(prefix)], src.Name)
		where := strings.Join(path, " ")

		if src.Name == "" {
			return nil, newInvariantError(where, "command without a name")
		}
		if siblings[src.Name] {
			return nil, newInvariantError(where, "duplicate sibling command %q", src.Name)
		}
		siblings[src.Name] = true

		hook := canon.HookName(path)
		if other, clash := b.hooks[hook]; clash {
			return nil, newInvariantError(where, "hook name %q already belongs to %q", hook, other)
		}
		b.hooks[hook] = where

		cmd := &Command{
			Name:        src.Name,
			Description: src.Description,
			Path:        path,
			HookName:    hook,
			Kind:        KindLeaf,
			IsDefault:   src.Default,
			Hidden:      src.Hidden,
			Aliases:     append([]string(nil), src.Aliases...),
		}
		if src.Default {
			b.defaults++
		}
		if len(src.Subcommands) > 0 {
			cmd.Kind = KindGroup
		}

		var err error
		if cmd.Arguments, err = b.arguments(src.Arguments, where); err != nil {
			return nil, err
		}
		if cmd.Options, err = b.options(src.Options, where); err != nil {
			return nil, err
		}

		// Pre-order: the parent is recorded before its subtree.
		b.flat = append(b.flat, cmd)
		if cmd.Subcommands, err = b.commands(src.Subcommands, path); err != nil {
			return nil, err
		}
		out = append(out, cmd)
	}
	return out, nil
}

func (b *builder) arguments(args []schema.Argument, where string) ([]Argument, error) {
	out := make([]Argument, 0, len(args))
	for i, a := range args {
		if !a.Type.Valid() {
			return nil, newInvariantError(where, "argument %q has non-canonical type %q", a.Name, a.Type)
		}
		if a.Variadic && i != len(args)-1 {
			return nil, newInvariantError(where, "variadic argument %q is not last", a.Name)
		}
		out = append(out, Argument{
			Name:        a.Name,
			Description: a.Description,
			Type:        a.Type,
			Required:    a.Required,
			Variadic:    a.Variadic,
			Choices:     append([]string(nil), a.Choices...),
		})
	}
	return out, nil
}

func (b *builder) options(opts []schema.Option, where string) ([]Option, error) {
	out := make([]Option, 0, len(opts))
	for _, o := range opts {
		if !o.Type.Valid() {
			return nil, newInvariantError(where, "option %q has non-canonical type %q", o.Name, o.Type)
		}
		opt := Option{
			Name:        o.Name,
			Short:       o.Short,
			Description: o.Description,
			Type:        o.Type,
			IsFlag:      o.IsFlag,
			HasDefault:  o.HasDefault,
			Choices:     append([]string(nil), o.Choices...),
			Multiple:    o.Multiple,
		}
		if o.HasDefault {
			opt.Default = config.Plain(o.Default)
		}
		out = append(out, opt)
	}
	return out, nil
}
