package renderer

import (
	"errors"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tacogips/clismith/internal/canon"
	"github.com/tacogips/clismith/internal/config"
	"github.com/tacogips/clismith/internal/features"
	"github.com/tacogips/clismith/internal/ir"
	"github.com/tacogips/clismith/internal/schema"
)

const settingsTool = `
package_name: settings-tool
command_name: stool
display_name: Settings Tool
description: Manage "settings"
language: python
cli:
  options:
    - name: verbose
      short: v
      flag: true
  commands:
    config:
      description: Manage configuration
      subcommands:
        get:
          args:
            - name: key
        set:
          args:
            - name: key
            - name: value
              choices: [on, off]
          options:
            - name: ratio
              type: float
              default: 1
            - name: tags
              multiple: true
              default: [a, b]
    status:
      default: true
      options:
        - name: retries
          default: 3
        - name: class
          default: "x\"y"
`

func buildIR(t *testing.T, src string) *ir.IR {
	t.Helper()
	doc, err := config.ParseDocument([]byte(src), "settings.yaml")
	require.NoError(t, err)
	cfg, err := schema.Validate(doc)
	require.NoError(t, err)
	p, err := ir.Build(cfg, "settings.yaml")
	require.NoError(t, err)
	return p
}

func contextFor(t *testing.T, name string, p *ir.IR) Context {
	t.Helper()
	r, err := DefaultRegistry().New(name)
	require.NoError(t, err)
	ctx, err := r.TemplateContext(p, features.NewFeatureSet(features.JSONOutput))
	require.NoError(t, err)
	return ctx
}

// keyPaths collects every map key path; list elements share the suffix "[]"
// and option defaults are treated as leaves.
func keyPaths(v interface{}, prefix string, into map[string]bool) {
	switch val := v.(type) {
	case Context:
		keyPaths(map[string]interface{}(val), prefix, into)
	case map[string]interface{}:
		for k, child := range val {
			path := prefix + "." + k
			into[path] = true
			if k != "default" {
				keyPaths(child, path, into)
			}
		}
	case map[string]bool:
		for k := range val {
			into[prefix+"."+k] = true
		}
	case []map[string]interface{}:
		for _, item := range val {
			keyPaths(item, prefix+"[]", into)
		}
	}
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func TestContextKeySchemaIsIdenticalAcrossTargets(t *testing.T) {
	p := buildIR(t, settingsTool)
	reg := DefaultRegistry()

	var want []string
	for _, name := range reg.Names() {
		paths := map[string]bool{}
		keyPaths(contextFor(t, name, p), "", paths)
		got := sortedKeys(paths)
		if want == nil {
			want = got
			continue
		}
		assert.Equal(t, want, got, name)
	}

	for _, key := range []string{
		".project.package_name", ".metadata.generator_version", ".target.convention",
		".cli.default_command", ".commands[].hook_name", ".commands[].subcommands",
		".commands[].arguments[].canonical_type", ".commands[].options[].default_literal",
		".cli.global_options[].has_short", ".features.json_output",
	} {
		assert.Contains(t, want, key)
	}
}

func TestContextCommands(t *testing.T) {
	p := buildIR(t, settingsTool)
	ctx := contextFor(t, "python", p)

	commands := ctx["commands"].([]map[string]interface{})
	require.Len(t, commands, 4)
	var paths []string
	for _, c := range commands {
		paths = append(paths, c["path_string"].(string))
	}
	assert.Equal(t, []string{"config", "config get", "config set", "status"}, paths)

	group := commands[0]
	assert.Equal(t, true, group["is_group"])
	assert.Equal(t, false, group["has_action"])
	subs := group["subcommands"].([]map[string]interface{})
	require.Len(t, subs, 2)
	assert.Equal(t, "config_get", subs[0]["qualified_identifier"])
	assert.Equal(t, "config", subs[0]["parent_identifier"])
	assert.Equal(t, "", group["parent_identifier"])

	cli := ctx["cli"].(map[string]interface{})
	assert.Equal(t, "status", cli["default_command"].(map[string]interface{})["name"])
	assert.Len(t, cli["commands"], 2)

	enabled := ctx["features"].(map[string]bool)
	assert.True(t, enabled["json_output"])
	assert.False(t, enabled["rich_output"])
}

func TestHookNamesFollowConvention(t *testing.T) {
	p := buildIR(t, settingsTool)
	tests := []struct {
		target string
		want   string
	}{
		{"python", "on_config_get"},
		{"rust", "on_config_get"},
		{"nodejs", "onConfigGet"},
		{"typescript", "onConfigGet"},
		{"go", "onConfigGet"},
	}
	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			get := contextFor(t, tt.target, p)["commands"].([]map[string]interface{})[1]
			assert.Equal(t, tt.want, get["hook_name"])
			assert.Equal(t, "on_config_get", get["hook_key"])
		})
	}
}

func option(t *testing.T, ctx Context, command int, name string) map[string]interface{} {
	t.Helper()
	c := ctx["commands"].([]map[string]interface{})[command]
	for _, o := range c["options"].([]map[string]interface{}) {
		if o["name"] == name {
			return o
		}
	}
	t.Fatalf("option %s not found", name)
	return nil
}

func TestOptionEntries(t *testing.T) {
	p := buildIR(t, settingsTool)

	py := contextFor(t, "python", p)
	retries := option(t, py, 3, "retries")
	assert.Equal(t, "int", retries["type"])
	assert.Equal(t, "integer", retries["canonical_type"])
	assert.Equal(t, "3", retries["default_literal"])
	assert.Equal(t, "--retries", retries["flag"])
	assert.Equal(t, false, retries["has_short"])

	class := option(t, py, 3, "class")
	assert.Equal(t, "class_", class["identifier"])
	assert.Equal(t, `"x\"y"`, class["default_literal"])

	ratio := option(t, py, 2, "ratio")
	assert.Equal(t, "1.0", ratio["default_literal"])
	tags := option(t, py, 2, "tags")
	assert.Equal(t, `["a", "b"]`, tags["default_literal"])
	assert.Equal(t, "a,b", tags["default_display"])
	assert.Equal(t, true, tags["multiple"])

	goCtx := contextFor(t, "go", p)
	assert.Equal(t, "int", option(t, goCtx, 3, "retries")["type"])
	assert.Equal(t, `[]string{"a", "b"}`, option(t, goCtx, 2, "tags")["default_literal"])

	rs := contextFor(t, "rust", p)
	assert.Equal(t, "i64", option(t, rs, 3, "retries")["type"])
	assert.Equal(t, "class", option(t, rs, 3, "class")["identifier"])

	globals := py["cli"].(map[string]interface{})["global_options"].([]map[string]interface{})
	require.Len(t, globals, 1)
	assert.Equal(t, "-v", globals[0]["short_flag"])
	assert.Equal(t, true, globals[0]["is_flag"])
}

func TestArgumentEntries(t *testing.T) {
	ctx := contextFor(t, "typescript", buildIR(t, settingsTool))
	set := ctx["commands"].([]map[string]interface{})[2]
	args := set["arguments"].([]map[string]interface{})
	require.Len(t, args, 2)
	assert.Equal(t, "KEY", args[0]["metavar"])
	assert.Equal(t, "string", args[1]["type"])
	assert.Equal(t, []string{"on", "off"}, args[1]["choices"])
	assert.Equal(t, true, args[1]["has_choices"])
}

func TestUnmappedTypeIsRenderContextError(t *testing.T) {
	p := buildIR(t, settingsTool)
	p.Commands[1].Arguments[0].Type = canon.Type("complex")

	_, err := NewRust().TemplateContext(p, features.NewFeatureSet())
	var rerr *RenderContextError
	require.True(t, errors.As(err, &rerr))
	assert.Equal(t, "rust", rerr.Target)
	assert.Equal(t, "config get", rerr.CommandPath)
	assert.Contains(t, rerr.Error(), `"complex"`)
}

func TestNilIR(t *testing.T) {
	_, err := NewGo().TemplateContext(nil, features.NewFeatureSet())
	assert.Error(t, err)
	_, err = NewGo().OutputStructure(nil)
	assert.Error(t, err)
}

func TestManifests(t *testing.T) {
	p := buildIR(t, settingsTool)
	reg := DefaultRegistry()
	for _, name := range reg.Names() {
		t.Run(name, func(t *testing.T) {
			r, err := reg.New(name)
			require.NoError(t, err)
			m, err := r.OutputStructure(p)
			require.NoError(t, err)
			assert.Equal(t, name, m.Target)

			for _, id := range []string{FileEntry, FilePackageDescriptor, FileHooks, FileReadme} {
				_, ok := m.File(id)
				assert.True(t, ok, id)
			}
			hooks, _ := m.File(FileHooks)
			assert.True(t, hooks.Preserve)

			seen := map[string]bool{}
			for _, f := range m.Files {
				assert.False(t, seen[f.Path], "duplicate path %s", f.Path)
				seen[f.Path] = true
				assert.NotEmpty(t, f.Component)
				if f.ID != FileHooks {
					assert.False(t, f.Preserve, f.Path)
				}
			}
		})
	}
}

func TestManifestPaths(t *testing.T) {
	p := buildIR(t, settingsTool)

	py, err := NewPython().OutputStructure(p)
	require.NoError(t, err)
	entry, _ := py.File(FileEntry)
	assert.Equal(t, "settings_tool/cli.py", entry.Path)

	node, err := NewNodeJS().OutputStructure(p)
	require.NoError(t, err)
	entry, _ = node.File(FileEntry)
	assert.Equal(t, "bin/cli.js", entry.Path)
	assert.True(t, entry.Executable)

	ts, err := NewTypeScript().OutputStructure(p)
	require.NoError(t, err)
	_, ok := ts.File(FileCompilerConfig)
	assert.True(t, ok)
	assert.Contains(t, ts.Components(), "shared/README.md")
}

func TestPackageIdentifiers(t *testing.T) {
	p := buildIR(t, settingsTool)
	tests := map[string]string{
		"python":     "settings_tool",
		"nodejs":     "settings-tool",
		"typescript": "settings-tool",
		"rust":       "settings-tool",
		"go":         "settings-tool",
	}
	for name, want := range tests {
		ctx := contextFor(t, name, p)
		assert.Equal(t, want, ctx["project"].(map[string]interface{})["package_identifier"], name)
	}

	p.Project.PackageName = "github.com/acme/stool"
	assert.Equal(t, "github.com/acme/stool", goModule(p))
	p.Project.PackageName = "@Acme/Stool"
	assert.Equal(t, "@acme/stool", npmPackage(p))
}

func TestTemplateContextRejectsIdentifierCollisions(t *testing.T) {
	t.Run("hook names", func(t *testing.T) {
		p := buildIR(t, settingsTool)
		p.Commands[3].HookName = p.Commands[1].HookName

		_, err := NewGo().TemplateContext(p, features.NewFeatureSet())
		var rce *RenderContextError
		require.True(t, errors.As(err, &rce), "got %v", err)
		assert.Equal(t, "status", rce.CommandPath)
		assert.Contains(t, rce.Reason, `hook_name "onConfigGet"`)
	})

	t.Run("options of one command", func(t *testing.T) {
		p := buildIR(t, settingsTool)
		p.Commands[3].Options = append(p.Commands[3].Options, ir.Option{Name: "Retries", Type: canon.Integer})

		for _, name := range []string{"python", "go"} {
			r, err := DefaultRegistry().New(name)
			require.NoError(t, err)
			_, err = r.TemplateContext(p, features.NewFeatureSet())
			var rce *RenderContextError
			require.True(t, errors.As(err, &rce), "%s: got %v", name, err)
			assert.Contains(t, rce.Reason, `"retries" and "Retries"`, name)
		}
	})

	t.Run("global options", func(t *testing.T) {
		p := buildIR(t, settingsTool)
		p.CLI.GlobalOptions = append(p.CLI.GlobalOptions, ir.Option{Name: "Verbose", Type: canon.Boolean, IsFlag: true})

		_, err := NewNodeJS().TemplateContext(p, features.NewFeatureSet())
		var rce *RenderContextError
		require.True(t, errors.As(err, &rce), "got %v", err)
		assert.Equal(t, globalPath, rce.CommandPath)
	})
}
