package ir

import (
	"fmt"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tacogips/clismith/internal/build"
	"github.com/tacogips/clismith/internal/canon"
	"github.com/tacogips/clismith/internal/config"
	"github.com/tacogips/clismith/internal/schema"
)

func validated(t *testing.T, src string) *schema.Config {
	t.Helper()
	doc, err := config.ParseDocument([]byte(src), "test.yaml")
	require.NoError(t, err)
	cfg, err := schema.Validate(doc)
	require.NoError(t, err)
	return cfg
}

const configTool = `
package_name: settings-tool
command_name: settings
display_name: Settings Tool
description: Reads and writes settings
language: python
author: Jane
cli:
  options:
    - name: verbose
      flag: true
  commands:
    config:
      description: Manage configuration
      options:
        - name: file
          type: path
          default: ~/.settings
      subcommands:
        get:
          args:
            - name: key
        set:
          default: true
          args:
            - name: key
            - name: value
              required: false
          options:
            - name: tags
              default: [a, b]
    status:
      hidden: true
      aliases: [st]
`

func TestBuildConfigScenario(t *testing.T) {
	got, err := Build(validated(t, configTool), "settings.yaml")
	require.NoError(t, err)

	assert.Equal(t, "Settings Tool", got.Project.Name)
	assert.Equal(t, "settings-tool", got.Project.PackageName)
	assert.Equal(t, "settings", got.Project.CommandName)
	assert.Equal(t, "Jane", got.Project.Author)
	assert.Equal(t, "python", got.Project.Language)
	assert.Equal(t, "settings.yaml", got.Metadata.SourceName)
	assert.Equal(t, build.GeneratorTag(), got.Metadata.GeneratorVersion)

	require.Len(t, got.CLI.Commands, 2)
	group := got.CLI.Commands[0]
	assert.Equal(t, KindGroup, group.Kind)
	assert.True(t, group.IsGroup())
	assert.True(t, group.HasAction(), "a group with its own options keeps a default action")
	require.Len(t, group.Options, 1)
	assert.Equal(t, canon.Path, group.Options[0].Type)
	assert.Equal(t, []string{"config"}, group.Path)
	assert.Equal(t, "on_config", group.HookName)

	require.Len(t, group.Subcommands, 2)
	get, set := group.Subcommands[0], group.Subcommands[1]
	assert.Equal(t, KindLeaf, get.Kind)
	assert.Equal(t, KindLeaf, set.Kind)
	assert.Equal(t, []string{"config", "get"}, get.Path)
	assert.Equal(t, []string{"config", "set"}, set.Path)
	assert.Equal(t, "on_config_get", get.HookName)
	assert.Equal(t, "on_config_set", set.HookName)
	assert.Equal(t, "config set", set.PathString())
	assert.Equal(t, 2, set.Depth())
	assert.False(t, set.Arguments[1].Required)
	assert.Equal(t, []interface{}{"a", "b"}, set.Options[0].Default)

	status := got.CLI.Commands[1]
	assert.True(t, status.Hidden)
	assert.Equal(t, []string{"st"}, status.Aliases)

	names := make([]string, len(got.Commands))
	for i, c := range got.Commands {
		names[i] = c.PathString()
	}
	assert.Equal(t, []string{"config", "config get", "config set", "status"}, names, "flattened in pre-order")

	assert.Same(t, set, got.Lookup("config", "set"))
	assert.Nil(t, got.Lookup("config", "nope"))
	assert.Same(t, set, got.DefaultCommand())

	require.Len(t, got.CLI.GlobalOptions, 1)
	assert.Len(t, got.Options(), 3)
}

func TestBuildGroupWithoutOwnAction(t *testing.T) {
	got, err := Build(validated(t, `
package_name: p
command_name: p
display_name: P
description: d
language: go
cli:
  commands:
    remote:
      subcommands:
        add: {}
`), "p.yaml")
	require.NoError(t, err)
	assert.False(t, got.CLI.Commands[0].HasAction())
	assert.True(t, got.CLI.Commands[0].Subcommands[0].HasAction())
	assert.Nil(t, got.DefaultCommand())
}

func TestBuildInvariantViolations(t *testing.T) {
	base := func() *schema.Config {
		return &schema.Config{
			PackageName: "p", CommandName: "p", DisplayName: "P", Description: "d", Language: "go",
			CLI: schema.CLI{Name: "p", Color: true},
		}
	}

	tests := []struct {
		name   string
		mutate func(*schema.Config)
		path   string
	}{
		{"nameless command", func(c *schema.Config) {
			c.CLI.Commands = []schema.Command{{Name: ""}}
		}, ""},
		{"duplicate siblings", func(c *schema.Config) {
			c.CLI.Commands = []schema.Command{{Name: "a"}, {Name: "a"}}
		}, "a"},
		{"colliding hook names", func(c *schema.Config) {
			c.CLI.Commands = []schema.Command{
				{Name: "a", Subcommands: []schema.Command{{Name: "b"}}},
				{Name: "a-b"},
			}
		}, "a-b"},
		{"non-canonical type", func(c *schema.Config) {
			c.CLI.Commands = []schema.Command{{Name: "a", Options: []schema.Option{{Name: "x", Type: "uuid"}}}}
		}, "a"},
		{"variadic not last", func(c *schema.Config) {
			c.CLI.Commands = []schema.Command{{Name: "a", Arguments: []schema.Argument{
				{Name: "x", Type: canon.String, Variadic: true},
				{Name: "y", Type: canon.String},
			}}}
		}, "a"},
		{"two defaults", func(c *schema.Config) {
			c.CLI.Commands = []schema.Command{{Name: "a", Default: true}, {Name: "b", Default: true}}
		}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			got, err := Build(cfg, "x.yaml")
			assert.Nil(t, got, "no partial IR is returned")
			require.Error(t, err)
			assert.True(t, IsBuildInvariantError(err))
			var invariant *BuildInvariantError
			require.ErrorAs(t, err, &invariant)
			assert.Equal(t, tt.path, invariant.Path)
		})
	}

	_, err := Build(nil, "x.yaml")
	assert.True(t, IsBuildInvariantError(err))
	assert.Contains(t, err.Error(), "<root>")
}

// genTree builds command documents from parent links and names drawn from a
// small pool, so siblings and hook names frequently collide.
func genTree() gopter.Gen {
	names := gen.OneConstOf("config", "get", "set", "a", "b", "a-b", "a_b", "build", "Build", "run-all")
	return gopter.CombineGens(
		gen.SliceOfN(8, gen.IntRange(0, 64)),
		gen.SliceOfN(8, names),
		gen.SliceOfN(8, gen.IntRange(0, 3)),
	).Map(func(vals []interface{}) *config.Mapping {
		parents := vals[0].([]int)
		picked := vals[1].([]string)
		extras := vals[2].([]int)

		root := &config.Mapping{}
		nodes := make([]*config.Mapping, len(picked))
		for i, name := range picked {
			node := config.NewMapping("subcommands", &config.Mapping{})
			if extras[i] > 0 {
				node.Add("options", []interface{}{config.NewMapping("name", fmt.Sprintf("opt%d", i))})
			}
			if extras[i] > 1 {
				node.Add("args", []interface{}{config.NewMapping("name", "input")})
			}
			nodes[i] = node

			parent := root
			if i > 0 {
				if p := parents[i] % (i + 1); p < i {
					sub, _ := nodes[p].Get("subcommands")
					parent = sub.(*config.Mapping)
				}
			}
			parent.Add(name, node)
		}
		return config.NewMapping(
			"package_name", "tree",
			"command_name", "tree",
			"display_name", "Tree",
			"description", "generated",
			"language", "rust",
			"cli", config.NewMapping("commands", root),
		)
	})
}

func TestBuildProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 300
	properties := gopter.NewProperties(parameters)

	buildDoc := func(doc *config.Mapping) (*IR, *IR, bool) {
		cfg, err := schema.Validate(doc)
		if err != nil {
			return nil, nil, false
		}
		first, err1 := Build(cfg, "tree.yaml")
		second, err2 := Build(cfg, "tree.yaml")
		if err1 != nil || err2 != nil {
			panic(fmt.Sprintf("valid configuration failed to build: %v %v", err1, err2))
		}
		return first, second, true
	}

	properties.Property("build is idempotent", prop.ForAll(
		func(doc *config.Mapping) bool {
			first, second, ok := buildDoc(doc)
			return !ok || assert.ObjectsAreEqual(first, second)
		},
		genTree(),
	))

	properties.Property("hook names are unique", prop.ForAll(
		func(doc *config.Mapping) bool {
			got, _, ok := buildDoc(doc)
			if !ok {
				return true
			}
			seen := make(map[string]bool)
			for _, c := range got.Commands {
				if seen[c.HookName] {
					return false
				}
				seen[c.HookName] = true
			}
			return true
		},
		genTree(),
	))

	properties.Property("path length equals nesting depth", prop.ForAll(
		func(doc *config.Mapping) bool {
			got, _, ok := buildDoc(doc)
			if !ok {
				return true
			}
			var walk func(cmds []*Command, depth int) bool
			walk = func(cmds []*Command, depth int) bool {
				for _, c := range cmds {
					if len(c.Path) != depth || c.Path[depth-1] != c.Name {
						return false
					}
					if c.IsGroup() != (len(c.Subcommands) > 0) {
						return false
					}
					if !walk(c.Subcommands, depth+1) {
						return false
					}
				}
				return true
			}
			return walk(got.CLI.Commands, 1)
		},
		genTree(),
	))

	properties.Property("flattened list covers the tree in pre-order", prop.ForAll(
		func(doc *config.Mapping) bool {
			got, _, ok := buildDoc(doc)
			if !ok {
				return true
			}
			var order []*Command
			var walk func(cmds []*Command)
			walk = func(cmds []*Command) {
				for _, c := range cmds {
					order = append(order, c)
					walk(c.Subcommands)
				}
			}
			walk(got.CLI.Commands)
			if len(order) != len(got.Commands) {
				return false
			}
			for i := range order {
				if order[i] != got.Commands[i] {
					return false
				}
			}
			return true
		},
		genTree(),
	))

	properties.TestingRun(t)
}
