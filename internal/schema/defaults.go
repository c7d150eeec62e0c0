package schema

import (
	"github.com/tacogips/clismith/internal/canon"
	"github.com/tacogips/clismith/internal/config"
)

// FillDefaults inserts the documented default of every omitted field into
// doc and returns how many fields it filled. A null value counts as
// omitted. Values of the wrong shape are left for validation to report.
//
// Filling is deterministic and idempotent: a second call on the same
// document fills nothing.
func FillDefaults(doc *config.Mapping) int {
	f := &filler{}
	f.document(doc)
	return f.filled
}

type filler struct {
	filled int
}

// set stores value under key when the key is absent or null.
func (f *filler) set(m *config.Mapping, key string, value interface{}) {
	if cur, ok := m.Get(key); ok && cur != nil {
		return
	}
	m.Set(key, value)
	f.filled++
}

// container returns the mapping under key, creating it when absent or null.
// It returns nil when the key holds something other than a mapping.
func (f *filler) container(m *config.Mapping, key string) *config.Mapping {
	f.set(m, key, &config.Mapping{})
	sub, _ := m.Get(key)
	child, _ := sub.(*config.Mapping)
	return child
}

func (f *filler) document(doc *config.Mapping) {
	f.set(doc, "version", DefaultVersion)
	f.set(doc, "author", "")
	f.set(doc, "license", DefaultLicense)

	cli := f.container(doc, "cli")
	if cli == nil {
		return
	}
	if name, ok := stringAt(doc, "command_name"); ok {
		f.set(cli, "name", name)
	}
	if desc, ok := stringAt(doc, "description"); ok {
		f.set(cli, "tagline", desc)
	}
	if version, ok := stringAt(doc, "version"); ok {
		f.set(cli, "version", version)
	}
	f.set(cli, "color", true)
	f.set(cli, "options", []interface{}{})
	for _, item := range listAt(cli, "options") {
		if opt, ok := item.(*config.Mapping); ok {
			f.option(opt)
		}
	}
	if cmds := f.container(cli, "commands"); cmds != nil {
		f.commands(cmds)
	}
}

func (f *filler) commands(cmds *config.Mapping) {
	for i, e := range cmds.Entries() {
		value := e.Value
		if value == nil {
			value = &config.Mapping{}
			cmds.SetAt(i, value)
			f.filled++
		}
		if cmd, ok := value.(*config.Mapping); ok {
			f.command(cmd)
		}
	}
}

func (f *filler) command(cmd *config.Mapping) {
	f.set(cmd, "description", "")
	f.set(cmd, "default", false)
	f.set(cmd, "hidden", false)
	f.set(cmd, "aliases", []interface{}{})
	f.set(cmd, "args", []interface{}{})
	f.set(cmd, "options", []interface{}{})

	for _, item := range listAt(cmd, "args") {
		if arg, ok := item.(*config.Mapping); ok {
			f.argument(arg)
		}
	}
	for _, item := range listAt(cmd, "options") {
		if opt, ok := item.(*config.Mapping); ok {
			f.option(opt)
		}
	}
	if subs := f.container(cmd, "subcommands"); subs != nil {
		f.commands(subs)
	}
}

func (f *filler) argument(arg *config.Mapping) {
	f.set(arg, "description", "")
	f.set(arg, "type", string(canon.String))
	f.set(arg, "required", true)
	f.set(arg, "variadic", false)
}

func (f *filler) option(opt *config.Mapping) {
	f.set(opt, "description", "")
	f.set(opt, "type", string(inferOptionType(opt)))
	typ, _ := stringAt(opt, "type")
	parsed, _, err := canon.Parse(typ)
	f.set(opt, "flag", err == nil && parsed == canon.Boolean)
	f.set(opt, "multiple", false)
}

// inferOptionType picks the type of an option that declares none: boolean
// for flags, the primitive kind of the default when one is given, string
// otherwise.
func inferOptionType(opt *config.Mapping) canon.Type {
	if flag, ok := opt.Get("flag"); ok && flag == true {
		return canon.Boolean
	}
	def, ok := opt.Get("default")
	if !ok || def == nil {
		return canon.String
	}
	switch v := def.(type) {
	case *config.Mapping:
		return canon.Object
	case []interface{}:
		if multiple, _ := opt.Get("multiple"); multiple == true {
			if len(v) == 0 {
				return canon.String
			}
			return canon.Infer(v[0])
		}
		return canon.Array
	default:
		return canon.Infer(def)
	}
}

func stringAt(m *config.Mapping, key string) (string, bool) {
	v, ok := m.Get(key)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

func boolAt(m *config.Mapping, key string) bool {
	v, _ := m.Get(key)
	b, _ := v.(bool)
	return b
}

func listAt(m *config.Mapping, key string) []interface{} {
	v, _ := m.Get(key)
	l, _ := v.([]interface{})
	return l
}

func mappingAt(m *config.Mapping, key string) *config.Mapping {
	v, _ := m.Get(key)
	sub, _ := v.(*config.Mapping)
	return sub
}
