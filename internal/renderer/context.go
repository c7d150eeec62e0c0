package renderer

import (
	"strings"

	"github.com/tacogips/clismith/internal/canon"
	"github.com/tacogips/clismith/internal/debug"
	"github.com/tacogips/clismith/internal/features"
	"github.com/tacogips/clismith/internal/ir"
	"github.com/tacogips/clismith/internal/target"
)

// profile holds everything that differs between targets. The context key
// schema and the filter names shared by all targets live in base.
type profile struct {
	target    *target.Target
	style     literalStyle
	packageID func(p *ir.IR) string
	files     func(pkg string) []OutputFile
	filters   map[string]Filter
}

// base implements Renderer on top of a profile.
type base struct {
	profile
}

// Target returns the target this renderer produces.
func (b *base) Target() *target.Target {
	return b.target
}

// OutputStructure lists the files the target needs.
func (b *base) OutputStructure(p *ir.IR) (Manifest, error) {
	if p == nil {
		return Manifest{}, newContextError(b.target.Name, "", "no IR to lay out")
	}
	return Manifest{Target: b.target.Name, Files: b.files(b.packageID(p))}, nil
}

// CustomFilters returns the shared filters merged with the target's own.
func (b *base) CustomFilters() map[string]Filter {
	t := b.target
	out := map[string]Filter{
		"upper":      strings.ToUpper,
		"lower":      strings.ToLower,
		"snake":      target.Snake,
		"camel":      target.Camel,
		"pascal":     target.Pascal,
		"kebab":      target.Kebab,
		"safe_identifier": t.SafeIdentifier,
		"escape":     b.style.escape,
		"quote":      b.style.quote,
		"comment":    singleLine,
	}
	for name, f := range b.filters {
		out[name] = f
	}
	return out
}

// TemplateContext builds the template context for p.
func (b *base) TemplateContext(p *ir.IR, fs features.FeatureSet) (Context, error) {
	if p == nil {
		return nil, newContextError(b.target.Name, "", "no IR to render")
	}
	debug.Debugf("[renderer] building %s context for %s (%d commands)", b.target.Name, p.Metadata.SourceName, len(p.Commands))

	globals, err := b.options(p.CLI.GlobalOptions, "")
	if err != nil {
		return nil, err
	}

	entries := make(map[*ir.Command]map[string]interface{}, len(p.Commands))
	flat := make([]map[string]interface{}, 0, len(p.Commands))
	for _, c := range p.Commands {
		entry, err := b.command(c)
		if err != nil {
			return nil, err
		}
		entries[c] = entry
		flat = append(flat, entry)
	}
	// Second pass: entries exist for every node, so children can be linked
	// without recursion.
	for _, c := range p.Commands {
		subs := make([]map[string]interface{}, len(c.Subcommands))
		for i, sub := range c.Subcommands {
			subs[i] = entries[sub]
			subs[i]["parent_identifier"] = entries[c]["qualified_identifier"]
		}
		entries[c]["subcommands"] = subs
	}

	if err := b.checkIdentifiers(globals, flat); err != nil {
		return nil, err
	}

	top := make([]map[string]interface{}, len(p.CLI.Commands))
	for i, c := range p.CLI.Commands {
		top[i] = entries[c]
	}
	var defaultCommand interface{}
	if dc := p.DefaultCommand(); dc != nil {
		defaultCommand = entries[dc]
	}

	t := b.target
	return Context{
		"project": map[string]interface{}{
			"name":               p.Project.Name,
			"display_name":       p.Project.Name,
			"package_name":       p.Project.PackageName,
			"package_identifier": b.packageID(p),
			"command_name":       p.Project.CommandName,
			"version":            p.Project.Version,
			"description":        p.Project.Description,
			"author":             p.Project.Author,
			"license":            p.Project.License,
		},
		"metadata": map[string]interface{}{
			"source":            p.Metadata.SourceName,
			"generator_version": p.Metadata.GeneratorVersion,
		},
		"target": map[string]interface{}{
			"name":           t.Name,
			"display_name":   t.DisplayName,
			"convention":     t.Convention.String(),
			"framework":      t.Framework,
			"file_extension": t.FileExtension,
		},
		"cli": map[string]interface{}{
			"name":            p.CLI.Name,
			"tagline":         p.CLI.Tagline,
			"version":         p.CLI.Version,
			"color":           p.CLI.Color,
			"global_options":  globals,
			"commands":        top,
			"default_command": defaultCommand,
		},
		"commands": flat,
		"features": fs.Map(),
	}, nil
}

// checkIdentifiers rejects a context in which two commands share a hook name
// or qualified identifier, or two parameters of one command share an
// identifier. Validation reports these first.
func (b *base) checkIdentifiers(globals, commands []map[string]interface{}) error {
	if err := b.uniqueParams("", globals); err != nil {
		return err
	}
	hooks := make(map[string]string, len(commands))
	quals := make(map[string]string, len(commands))
	for _, c := range commands {
		path := c["path_string"].(string)
		for _, slot := range []struct {
			key  string
			seen map[string]string
		}{{"hook_name", hooks}, {"qualified_identifier", quals}} {
			id := c[slot.key].(string)
			if other, clash := slot.seen[id]; clash {
				return newContextError(b.target.Name, path, "%s %q is also used by command %q", slot.key, id, other)
			}
			slot.seen[id] = path
		}
		args := c["arguments"].([]map[string]interface{})
		opts := c["options"].([]map[string]interface{})
		if err := b.uniqueParams(path, args, opts); err != nil {
			return err
		}
	}
	return nil
}

func (b *base) uniqueParams(path string, lists ...[]map[string]interface{}) error {
	seen := make(map[string]string)
	for _, list := range lists {
		for _, p := range list {
			id, name := p["identifier"].(string), p["name"].(string)
			if other, clash := seen[id]; clash {
				return newContextError(b.target.Name, path, "parameters %q and %q share the identifier %q", other, name, id)
			}
			seen[id] = name
		}
	}
	return nil
}

func (b *base) command(c *ir.Command) (map[string]interface{}, error) {
	path := c.PathString()
	args, err := b.arguments(c.Arguments, path)
	if err != nil {
		return nil, err
	}
	opts, err := b.options(c.Options, path)
	if err != nil {
		return nil, err
	}
	t := b.target
	return map[string]interface{}{
		"name":                 c.Name,
		"identifier":           t.SafeIdentifier(c.Name),
		"qualified_identifier": t.SafeIdentifier(strings.Join(c.Path, "_")),
		"parent_identifier":    "",
		"description":          c.Description,
		"path":                 append([]string(nil), c.Path...),
		"path_string":          path,
		"hook_name":            t.SafeIdentifier(c.HookName),
		"hook_key":             c.HookName,
		"kind":                 string(c.Kind),
		"is_group":             c.IsGroup(),
		"is_leaf":              c.IsLeaf(),
		"has_action":           c.HasAction(),
		"depth":                c.Depth(),
		"is_default":           c.IsDefault,
		"hidden":               c.Hidden,
		"aliases":              append([]string{}, c.Aliases...),
		"arguments":            args,
		"options":              opts,
	}, nil
}

func (b *base) arguments(args []ir.Argument, path string) ([]map[string]interface{}, error) {
	out := make([]map[string]interface{}, len(args))
	for i, a := range args {
		typ, err := b.typeName(a.Type, path, "argument "+a.Name)
		if err != nil {
			return nil, err
		}
		out[i] = map[string]interface{}{
			"name":           a.Name,
			"identifier":     b.target.SafeIdentifier(a.Name),
			"metavar":        strings.ToUpper(target.Snake(a.Name)),
			"description":    a.Description,
			"type":           typ,
			"canonical_type": a.Type.String(),
			"required":       a.Required,
			"variadic":       a.Variadic,
			"choices":        append([]string{}, a.Choices...),
			"has_choices":    len(a.Choices) > 0,
		}
	}
	return out, nil
}

func (b *base) options(opts []ir.Option, path string) ([]map[string]interface{}, error) {
	out := make([]map[string]interface{}, len(opts))
	for i, o := range opts {
		what := "option " + o.Name
		typ, err := b.typeName(o.Type, path, what)
		if err != nil {
			return nil, err
		}
		literal := ""
		if o.HasDefault {
			literalType := o.Type
			if o.Multiple {
				literalType = canon.Array
			}
			literal, err = b.style.literal(o.Default, literalType)
			if err != nil {
				return nil, newContextError(b.target.Name, path, "%s: %v", what, err)
			}
		}
		short := ""
		if o.Short != "" {
			short = "-" + o.Short
		}
		out[i] = map[string]interface{}{
			"name":            o.Name,
			"identifier":      b.target.SafeIdentifier(o.Name),
			"flag":            "--" + o.Name,
			"short":           o.Short,
			"short_flag":      short,
			"has_short":       o.Short != "",
			"description":     o.Description,
			"type":            typ,
			"canonical_type":  o.Type.String(),
			"is_flag":         o.IsFlag,
			"default":         o.Default,
			"has_default":     o.HasDefault,
			"default_literal": literal,
			"default_display": display(o.Default),
			"choices":         append([]string{}, o.Choices...),
			"has_choices":     len(o.Choices) > 0,
			"multiple":        o.Multiple,
		}
	}
	return out, nil
}

func (b *base) typeName(tag canon.Type, path, what string) (string, error) {
	name, ok := b.target.TypeName(tag)
	if !ok {
		return "", newContextError(b.target.Name, path, "%s: no %s type for canonical type %q", what, b.target.DisplayName, tag)
	}
	return name, nil
}
