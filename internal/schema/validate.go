package schema

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/tacogips/clismith/internal/canon"
	"github.com/tacogips/clismith/internal/config"
	"github.com/tacogips/clismith/internal/debug"
	"github.com/tacogips/clismith/internal/target"
)

var (
	namePattern  = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]*$`)
	shortPattern = regexp.MustCompile(`^[A-Za-z0-9]$`)
)

// languageAliases maps common spellings onto target names.
var languageAliases = map[string]string{
	"py":     "python",
	"node":   "nodejs",
	"js":     "nodejs",
	"ts":     "typescript",
	"rs":     "rust",
	"golang": "go",
}

// Validate checks a raw configuration document and returns the validated
// configuration. raw is a *config.Mapping as produced by config.LoadDocument,
// or a programmatic map[string]interface{} tree. raw itself is never
// modified.
//
// On failure the error is a SchemaErrors batch holding every problem found.
func Validate(raw interface{}) (*Config, error) {
	start := time.Now()
	defer debug.DebugDuration("[schema] Validate", start)

	doc, errs := normalize(raw)
	if len(errs) > 0 {
		debug.Debug("[schema] Document rejected during normalization (%d errors)", len(errs))
		return nil, sortErrors(errs)
	}

	structural, err := checkStructure(doc)
	if err != nil {
		return nil, err
	}
	debug.Debug("[schema] Structural pass: %d errors", len(structural))

	filled := FillDefaults(doc)
	debug.Debug("[schema] Filled %d default values", filled)

	c := newChecker()
	cfg := c.document(doc)
	debug.Debug("[schema] Semantic pass: %d errors", len(c.errs))

	all := append(structural, c.errs...)
	if len(all) > 0 {
		return nil, sortErrors(all)
	}
	return cfg, nil
}

// checker runs the semantic pass over a default-filled document. Values of
// the wrong primitive type are skipped silently because the structural pass
// has already reported them.
type checker struct {
	errs SchemaErrors
	// hooks maps each neutral hook name to the path of the command owning it.
	hooks map[string]string
	// defaultAt is the path of the first default command.
	defaultAt string
	// declared lists the commands that own their hook name, parents first.
	declared []declared
}

// declared is a command taking part in the identifier checks.
type declared struct {
	path  string
	names []string
	cmd   Command
}

func newChecker() *checker {
	return &checker{hooks: make(map[string]string)}
}

func (c *checker) add(kind SchemaErrorKind, path, format string, args ...interface{}) {
	c.errs = append(c.errs, &SchemaError{Kind: kind, Path: path, Reason: fmt.Sprintf(format, args...)})
}

// checkKeys reports repeated keys of a mapping that is not a command table.
func (c *checker) checkKeys(m *config.Mapping, path string) {
	seen := make(map[string]bool, m.Len())
	for _, key := range m.Keys() {
		if seen[key] {
			c.add(KindDuplicate, joinPath(path, key), "key %q is given more than once", key)
		}
		seen[key] = true
	}
}

// ValidName reports whether name is acceptable as a package, command,
// argument or option name.
func ValidName(name string) bool {
	return namePattern.MatchString(name)
}

func (c *checker) checkName(name, path, what string) {
	if name != "" && !namePattern.MatchString(name) {
		c.add(KindInvalidName, path,
			"%s name %q must start with a letter and contain only letters, digits, '-' or '_'", what, name)
	}
}

func (c *checker) document(doc *config.Mapping) *Config {
	c.checkKeys(doc, "")

	cfg := &Config{}
	cfg.PackageName, _ = stringAt(doc, "package_name")
	cfg.CommandName, _ = stringAt(doc, "command_name")
	cfg.DisplayName, _ = stringAt(doc, "display_name")
	cfg.Description, _ = stringAt(doc, "description")
	cfg.Version, _ = stringAt(doc, "version")
	cfg.Author, _ = stringAt(doc, "author")
	cfg.License, _ = stringAt(doc, "license")

	c.checkName(cfg.CommandName, "command_name", "command")
	if lang, ok := stringAt(doc, "language"); ok && lang != "" {
		cfg.Language = c.language(lang)
	}

	if cli := mappingAt(doc, "cli"); cli != nil {
		cfg.CLI = c.cli(cli, "cli")
		c.targetIdentifiers(cfg.CLI.Options, "cli.options")
	}
	return cfg
}

func (c *checker) language(lang string) string {
	name := strings.ToLower(strings.TrimSpace(lang))
	if alias, ok := languageAliases[name]; ok {
		name = alias
	}
	if !target.IsKnown(name) {
		c.add(KindUnknownLanguage, "language", "unknown language %q (expected one of %s)",
			lang, strings.Join(target.Names(), ", "))
	}
	return name
}

func (c *checker) cli(m *config.Mapping, path string) CLI {
	c.checkKeys(m, path)

	cli := CLI{}
	cli.Name, _ = stringAt(m, "name")
	cli.Tagline, _ = stringAt(m, "tagline")
	cli.Version, _ = stringAt(m, "version")
	if color, ok := m.Get("color"); ok {
		b, isBool := color.(bool)
		cli.Color = b || !isBool
	}
	c.checkName(cli.Name, joinPath(path, "name"), "program")

	cli.Options = c.options(listAt(m, "options"), joinPath(path, "options"))
	if cmds := mappingAt(m, "commands"); cmds != nil {
		cli.Commands = c.commands(cmds, joinPath(path, "commands"), nil, true)
	}
	return cli
}

// commands checks one level of a command table. live is false beneath a
// duplicate command, whose subtree is still checked but does not claim hook
// names or the default slot.
func (c *checker) commands(m *config.Mapping, path string, ancestors []string, live bool) []Command {
	seen := make(map[string]string, m.Len())
	var out []Command

	for _, e := range m.Entries() {
		cpath := joinPath(path, e.Key)
		c.checkName(e.Key, cpath, "command")

		folded := strings.ToLower(e.Key)
		first, dup := seen[folded]
		if dup {
			c.add(KindDuplicate, cpath, "duplicate command name %q (first declared at %s)", e.Key, first)
		} else {
			seen[folded] = cpath
		}
		own := live && !dup

		names := append(ancestors[:len(ancestors):len(ancestors)], e.Key)
		if own {
			hook := canon.HookName(names)
			if other, clash := c.hooks[hook]; clash {
				c.add(KindConflict, cpath, "hook name %q is already used by the command at %s", hook, other)
			} else {
				c.hooks[hook] = cpath
			}
		}

		body, _ := e.Value.(*config.Mapping)
		if body == nil {
			body = &config.Mapping{}
		}
		at := -1
		if own {
			at = len(c.declared)
			c.declared = append(c.declared, declared{path: cpath, names: names})
		}
		cmd := c.command(e.Key, body, cpath, names, own)
		if at >= 0 {
			c.declared[at].cmd = cmd
		}

		for j, alias := range cmd.Aliases {
			apath := joinPath(cpath, "aliases", strconv.Itoa(j))
			c.checkName(alias, apath, "alias")
			af := strings.ToLower(alias)
			if other, clash := seen[af]; clash {
				c.add(KindDuplicate, apath, "alias %q collides with %s", alias, other)
				continue
			}
			seen[af] = apath
		}

		if !dup {
			out = append(out, cmd)
		}
	}
	return out
}

func (c *checker) command(name string, m *config.Mapping, path string, names []string, live bool) Command {
	c.checkKeys(m, path)

	cmd := Command{Name: name}
	cmd.Description, _ = stringAt(m, "description")
	cmd.Default = boolAt(m, "default")
	cmd.Hidden = boolAt(m, "hidden")
	cmd.Aliases = stringList(listAt(m, "aliases"))

	if cmd.Default && live {
		if c.defaultAt != "" {
			c.add(KindConflict, joinPath(path, "default"), "only one default command is allowed (already %s)", c.defaultAt)
		} else {
			c.defaultAt = path
		}
	}

	cmd.Arguments = c.arguments(listAt(m, "args"), joinPath(path, "args"))
	cmd.Options = c.options(listAt(m, "options"), joinPath(path, "options"))
	c.crossCheck(cmd.Arguments, cmd.Options, path)

	if subs := mappingAt(m, "subcommands"); subs != nil {
		cmd.Subcommands = c.commands(subs, joinPath(path, "subcommands"), names, live)
	}
	return cmd
}

func (c *checker) arguments(items []interface{}, path string) []Argument {
	seen := make(map[string]string, len(items))
	optionalAt := ""
	var out []Argument

	for i, item := range items {
		ipath := joinPath(path, strconv.Itoa(i))
		m, ok := item.(*config.Mapping)
		if !ok {
			continue
		}
		c.checkKeys(m, ipath)

		arg := Argument{}
		arg.Name, _ = stringAt(m, "name")
		arg.Description, _ = stringAt(m, "description")
		arg.Required = boolAt(m, "required")
		arg.Variadic = boolAt(m, "variadic")

		c.checkName(arg.Name, joinPath(ipath, "name"), "argument")
		if arg.Name != "" {
			folded := foldName(arg.Name)
			if first, dup := seen[folded]; dup {
				c.add(KindDuplicate, ipath, "duplicate argument name %q (first declared at %s)", arg.Name, first)
			} else {
				seen[folded] = ipath
			}
		}

		var isChoice bool
		arg.Type, isChoice = c.parseType(m, ipath)
		arg.Choices = c.choices(m, ipath, isChoice)

		if arg.Variadic && i != len(items)-1 {
			c.add(KindInvalidValue, joinPath(ipath, "variadic"), "a variadic argument must be the last argument")
		}
		if arg.Required && optionalAt != "" {
			c.add(KindInvalidValue, joinPath(ipath, "required"),
				"a required argument cannot follow the optional argument at %s", optionalAt)
		}
		if !arg.Required && optionalAt == "" {
			optionalAt = ipath
		}
		out = append(out, arg)
	}
	return out
}

func (c *checker) options(items []interface{}, path string) []Option {
	names := make(map[string]string, len(items))
	shorts := make(map[string]string, len(items))
	var out []Option

	for i, item := range items {
		ipath := joinPath(path, strconv.Itoa(i))
		m, ok := item.(*config.Mapping)
		if !ok {
			continue
		}
		c.checkKeys(m, ipath)

		opt := Option{}
		opt.Name, _ = stringAt(m, "name")
		opt.Short, _ = stringAt(m, "short")
		opt.Description, _ = stringAt(m, "description")
		opt.IsFlag = boolAt(m, "flag")
		opt.Multiple = boolAt(m, "multiple")

		c.checkName(opt.Name, joinPath(ipath, "name"), "option")
		if strings.EqualFold(opt.Name, "help") {
			c.add(KindConflict, joinPath(ipath, "name"), "option name %q is reserved for the generated help flag", opt.Name)
		}
		if opt.Name != "" {
			folded := foldName(opt.Name)
			if first, dup := names[folded]; dup {
				c.add(KindDuplicate, ipath, "duplicate option name %q (first declared at %s)", opt.Name, first)
			} else {
				names[folded] = ipath
			}
		}

		if opt.Short != "" {
			spath := joinPath(ipath, "short")
			switch {
			case !shortPattern.MatchString(opt.Short):
				c.add(KindInvalidName, spath, "short alias %q must be a single ASCII letter or digit", opt.Short)
			case opt.Short == "h":
				c.add(KindConflict, spath, "short alias \"h\" is reserved for the generated help flag")
			default:
				if first, dup := shorts[opt.Short]; dup {
					c.add(KindDuplicate, spath, "duplicate short alias %q (first declared at %s)", opt.Short, first)
				} else {
					shorts[opt.Short] = ipath
				}
			}
		}

		var isChoice bool
		opt.Type, isChoice = c.parseType(m, ipath)
		opt.Choices = c.choices(m, ipath, isChoice)

		if opt.IsFlag && opt.Type != "" && opt.Type != canon.Boolean {
			c.add(KindConflict, joinPath(ipath, "flag"), "a flag option must have type boolean, got %s", opt.Type)
		}

		if def, ok := m.Get("default"); ok && def != nil {
			opt.Default, opt.HasDefault = def, true
			if opt.Type != "" {
				c.checkDefault(opt, joinPath(ipath, "default"))
			}
		}
		out = append(out, opt)
	}
	return out
}

// crossCheck rejects an option sharing its name with an argument of the same
// command; both become parameters of one generated handler.
func (c *checker) crossCheck(args []Argument, opts []Option, path string) {
	argAt := make(map[string]int, len(args))
	for i, a := range args {
		if a.Name != "" {
			argAt[foldName(a.Name)] = i
		}
	}
	for i, o := range opts {
		if j, clash := argAt[foldName(o.Name)]; clash && o.Name != "" {
			c.add(KindDuplicate, joinPath(path, "options", strconv.Itoa(i)),
				"option %q collides with argument at %s", o.Name, joinPath(path, "args", strconv.Itoa(j)))
		}
	}
}

// foldName is the spelling-independent form of a parameter name. Names with
// the same fold are reported as duplicates.
func foldName(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), "-", "_")
}

// targetIdentifiers reports names that differ in the description but become
// the same identifier once a target applies its naming rules: command hook
// names and qualified identifiers across the whole tree, parameters within
// one command. Pairs already reported as duplicates are skipped, and each
// pair is reported once whatever the number of targets it collides in.
func (c *checker) targetIdentifiers(globals []Option, globalsPath string) {
	reported := make(map[[2]string]bool)
	for _, t := range target.All() {
		hooks := make(map[string]int, len(c.declared))
		quals := make(map[string]int, len(c.declared))
		for i, d := range c.declared {
			hook := canon.HookName(d.names)
			for _, slot := range []struct {
				what string
				seen map[string]int
				id   string
			}{
				{"hook name", hooks, t.SafeIdentifier(hook)},
				{"identifier", quals, t.SafeIdentifier(strings.Join(d.names, "_"))},
			} {
				j, clash := slot.seen[slot.id]
				if !clash {
					slot.seen[slot.id] = i
					continue
				}
				first := c.declared[j]
				pair := [2]string{first.path, d.path}
				if reported[pair] || canon.HookName(first.names) == hook {
					continue
				}
				reported[pair] = true
				c.add(KindConflict, d.path, "command %q has the same %s %s %q as the command at %s",
					strings.Join(d.names, " "), t.DisplayName, slot.what, slot.id, first.path)
			}
		}

		c.parameters(t, nil, globals, globalsPath, reported)
		for _, d := range c.declared {
			c.parameters(t, d.cmd.Arguments, d.cmd.Options, d.path, reported)
		}
	}
}

// parameters reports arguments and options of one command whose names
// collide as identifiers of t.
func (c *checker) parameters(t *target.Target, args []Argument, opts []Option, path string, reported map[[2]string]bool) {
	type param struct{ what, name string }
	params := make([]param, 0, len(args)+len(opts))
	for _, a := range args {
		if a.Name != "" {
			params = append(params, param{"argument", a.Name})
		}
	}
	for _, o := range opts {
		if o.Name != "" {
			params = append(params, param{"option", o.Name})
		}
	}

	seen := make(map[string]param, len(params))
	for _, p := range params {
		id := t.SafeIdentifier(p.name)
		first, clash := seen[id]
		if !clash {
			seen[id] = p
			continue
		}
		pair := [2]string{path + " " + first.name, p.name}
		if reported[pair] || foldName(first.name) == foldName(p.name) {
			continue
		}
		reported[pair] = true
		c.add(KindConflict, path, "%s %q and %s %q both become the %s identifier %q",
			first.what, first.name, p.what, p.name, t.DisplayName, id)
	}
}

// parseType returns the canonical type of a filled argument or option.
func (c *checker) parseType(m *config.Mapping, path string) (canon.Type, bool) {
	spelling, ok := stringAt(m, "type")
	if !ok || spelling == "" {
		return "", false
	}
	typ, isChoice, err := canon.Parse(spelling)
	if err != nil {
		c.add(KindType, joinPath(path, "type"), "%v", err)
		return "", false
	}
	return typ, isChoice
}

// choices reads the choices list. An empty list is an error whatever the
// type; a choice type without any list is one too.
func (c *checker) choices(m *config.Mapping, path string, isChoice bool) []string {
	choices := stringList(listAt(m, "choices"))
	raw, _ := m.Get("choices")
	switch items, isList := raw.([]interface{}); {
	case isList && len(items) == 0:
		c.add(KindEmptyChoices, joinPath(path, "choices"), "choices list must not be empty")
	case isChoice && len(choices) == 0:
		c.add(KindEmptyChoices, joinPath(path, "choices"), "type %q requires a non-empty choices list", canon.ChoiceMarker)
	}
	return choices
}

func (c *checker) checkDefault(opt Option, path string) {
	if opt.Multiple || opt.Type == canon.Array {
		items, ok := opt.Default.([]interface{})
		if !ok {
			if opt.Type == canon.Array || opt.Multiple {
				c.add(KindType, path, "default of a list option must be a list, got %s", describe(opt.Default))
			}
			return
		}
		elem := opt.Type
		if elem == canon.Array {
			elem = canon.String
		}
		for i, item := range items {
			c.checkScalarDefault(item, elem, opt.Choices, joinPath(path, strconv.Itoa(i)))
		}
		return
	}
	c.checkScalarDefault(opt.Default, opt.Type, opt.Choices, path)
}

func (c *checker) checkScalarDefault(v interface{}, typ canon.Type, choices []string, path string) {
	if !matchesType(v, typ) {
		c.add(KindType, path, "default %v (%s) does not match type %s", v, describe(v), typ)
		return
	}
	if len(choices) == 0 {
		return
	}
	literal := fmt.Sprint(v)
	for _, choice := range choices {
		if choice == literal {
			return
		}
	}
	c.add(KindInvalidValue, path, "default %q is not one of the choices (%s)", literal, strings.Join(choices, ", "))
}

func matchesType(v interface{}, typ canon.Type) bool {
	switch typ {
	case canon.String, canon.Path:
		_, ok := v.(string)
		return ok
	case canon.Integer:
		switch n := v.(type) {
		case int:
			return true
		case float64:
			return n == math.Trunc(n)
		}
		return false
	case canon.Float:
		switch v.(type) {
		case int, float64:
			return true
		}
		return false
	case canon.Boolean:
		_, ok := v.(bool)
		return ok
	case canon.Object:
		_, ok := v.(*config.Mapping)
		return ok
	case canon.Array:
		_, ok := v.([]interface{})
		return ok
	case canon.Any:
		return true
	default:
		return false
	}
}

// stringList renders scalar list items as strings, skipping non-scalars.
func stringList(items []interface{}) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		switch v := item.(type) {
		case string:
			out = append(out, v)
		case bool, int, float64:
			out = append(out, fmt.Sprint(v))
		}
	}
	return out
}
