package generator

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aymerick/raymond"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tacogips/clismith/internal/component"
	"github.com/tacogips/clismith/internal/config"
	"github.com/tacogips/clismith/internal/features"
	"github.com/tacogips/clismith/internal/ir"
	"github.com/tacogips/clismith/internal/renderer"
	"github.com/tacogips/clismith/internal/schema"
)

const settingsTool = `
package_name: settings-tool
language: python
command_name: stool
display_name: Settings Tool
description: Manage "settings" <fast>
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
          aliases: [g]
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
        - name: json
          flag: true
`

func embeddedJob(t *testing.T, targetName string) Job {
	t.Helper()
	doc, err := config.ParseDocument([]byte(settingsTool), "settings.yaml")
	require.NoError(t, err)
	cfg, err := schema.Validate(doc)
	require.NoError(t, err)
	p, err := ir.Build(cfg, "settings.yaml")
	require.NoError(t, err)

	r, err := renderer.DefaultRegistry().New(targetName)
	require.NoError(t, err)
	ctx, err := r.TemplateContext(p, features.Analyze(cfg))
	require.NoError(t, err)
	manifest, err := r.OutputStructure(p)
	require.NoError(t, err)
	return Job{Manifest: manifest, Context: ctx, Filters: r.CustomFilters()}
}

func renderAll(t *testing.T, targetName string) map[string]string {
	t.Helper()
	files, err := NewGenerator(component.NewEmbedded()).Render(context.Background(), embeddedJob(t, targetName))
	require.NoError(t, err)
	out := make(map[string]string, len(files))
	for _, f := range files {
		out[f.Path] = string(f.Content)
	}
	return out
}

func TestEmbeddedTemplatesCoverEveryTarget(t *testing.T) {
	reg := renderer.DefaultRegistry()
	for _, name := range reg.Names() {
		job := embeddedJob(t, name)
		var want []string
		for _, f := range job.Manifest.Files {
			want = append(want, f.Component)
		}
		assert.Empty(t, component.Missing(component.NewEmbedded(), want), name)
	}
}

func TestEmbeddedTemplatesParse(t *testing.T) {
	store := component.NewEmbedded()
	names, err := store.List()
	require.NoError(t, err)
	require.NotEmpty(t, names)
	for _, name := range names {
		text, err := store.Get(name)
		require.NoError(t, err)
		_, err = raymond.Parse(text)
		assert.NoError(t, err, name)
	}
}

// contextKeys collects every map key in a template context.
func contextKeys(v interface{}, into map[string]bool) {
	switch val := v.(type) {
	case renderer.Context:
		contextKeys(map[string]interface{}(val), into)
	case map[string]interface{}:
		for k, child := range val {
			into[k] = true
			contextKeys(child, into)
		}
	case map[string]bool:
		for k := range val {
			into[k] = true
		}
	case []map[string]interface{}:
		for _, item := range val {
			contextKeys(item, into)
		}
	}
}

// A helper named like a context key would shadow it: {{{identifier}}}
// would call the helper instead of reading the value.
func TestHelpersDoNotShadowContextKeys(t *testing.T) {
	for _, name := range renderer.DefaultRegistry().Names() {
		job := embeddedJob(t, name)
		keys := map[string]bool{}
		contextKeys(job.Context, keys)
		require.Contains(t, keys, "identifier", name)
		for helper := range Helpers(job.Filters) {
			assert.False(t, keys[helper], "%s: helper %q shadows a context key", name, helper)
		}
	}
}

func TestRenderPython(t *testing.T) {
	files := renderAll(t, "python")

	cli := files["settings_tool/cli.py"]
	assert.Contains(t, cli, "import click")
	assert.Contains(t, cli, "def config_get_command(")
	assert.Contains(t, cli, `"on_config_get"`)
	assert.Contains(t, cli, `click.Choice(["on", "off", ])`)
	assert.Contains(t, cli, "default=1.0")
	assert.Contains(t, cli, `default=["a", "b"]`)
	assert.Contains(t, cli, "import json")
	assert.NotContains(t, cli, "&quot;", "output is not HTML-escaped")
	assert.NotContains(t, cli, "&lt;")

	hooks := files["settings_tool/hooks.py"]
	assert.Contains(t, hooks, "def on_config_get(global_options, params):")
	assert.Contains(t, hooks, "def on_status(")
	assert.NotContains(t, hooks, "def on_config(", "groups without actions have no hook")

	assert.Contains(t, files["pyproject.toml"], `name = "settings-tool"`)
	assert.Contains(t, files["README.md"], "Settings Tool")
}

func TestRenderNodeJS(t *testing.T) {
	files := renderAll(t, "nodejs")

	cli := files["bin/cli.js"]
	assert.Contains(t, cli, "require('commander')")
	assert.Contains(t, cli, "const configGetCommand = configCommand")
	assert.Contains(t, cli, "configGetCommand.alias(\"g\");")
	assert.Contains(t, cli, `dispatch("onConfigGet"`)
	assert.NotContains(t, cli, "&#x27;")

	hooks := files["lib/hooks.js"]
	assert.Contains(t, hooks, "async function onConfigSet(options, key, value)")
	assert.Contains(t, hooks, "module.exports")
	assert.Contains(t, files["package.json"], `"name": "settings-tool"`)
}

func TestRenderTypeScript(t *testing.T) {
	files := renderAll(t, "typescript")
	assert.Contains(t, files["src/cli.ts"], "from 'commander'")
	assert.Contains(t, files["src/hooks.ts"], "export async function onConfigGet(options: Options, key: string)")
	assert.Contains(t, files, "tsconfig.json")
}

func TestRenderRust(t *testing.T) {
	files := renderAll(t, "rust")

	main := files["src/main.rs"]
	assert.Contains(t, main, "use clap::")
	assert.Contains(t, main, "fn config_get_command() -> Command")
	assert.Contains(t, main, `.default_values(["a", "b", ])`)
	assert.Contains(t, main, `.default_value("3")`)

	assert.Contains(t, files["src/hooks.rs"], "pub fn on_config_get(")
	assert.Contains(t, files["Cargo.toml"], `name = "settings-tool"`)
}

func TestRenderGo(t *testing.T) {
	files := renderAll(t, "go")

	main := files["main.go"]
	assert.Contains(t, main, `"github.com/spf13/cobra"`)
	assert.Contains(t, main, "configGetCmd := &cobra.Command{")
	assert.Contains(t, main, `[]string{"a", "b"}`)
	assert.Contains(t, main, `"encoding/json"`)

	hooks := files["hooks.go"]
	assert.Contains(t, hooks, "func onConfigGet(cmd *cobra.Command, args []string) (any, error)")
	assert.True(t, strings.HasPrefix(files["go.mod"], "module settings-tool"))
}

func TestGenerateEveryTarget(t *testing.T) {
	for _, name := range renderer.DefaultRegistry().Names() {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			job := embeddedJob(t, name)
			result, err := NewGenerator(component.NewEmbedded()).Generate(context.Background(), job, GenerateOptions{OutputDir: dir})
			require.NoError(t, err)
			assert.Equal(t, len(job.Manifest.Files), result.FilesCreated)

			for _, f := range job.Manifest.Files {
				info, err := os.Stat(filepath.Join(dir, filepath.FromSlash(f.Path)))
				require.NoError(t, err, f.Path)
				if f.Executable {
					assert.Equal(t, ModeExecutable, info.Mode().Perm(), f.Path)
				}
			}
		})
	}
}
