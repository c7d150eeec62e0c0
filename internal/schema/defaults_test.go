package schema

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tacogips/clismith/internal/config"
)

func TestFillDefaults(t *testing.T) {
	doc := parse(t, header+`
cli:
  commands:
    run:
      args:
        - name: target
      options:
        - name: count
          default: 2
        - name: quiet
          flag: true
    empty:
`)
	filled := FillDefaults(doc)
	assert.Greater(t, filled, 0)

	cli := mappingAt(doc, "cli")
	require.NotNil(t, cli)
	name, _ := stringAt(cli, "name")
	assert.Equal(t, "demo", name)

	run := mappingAt(mappingAt(cli, "commands"), "run")
	arg := listAt(run, "args")[0].(*config.Mapping)
	required, _ := arg.Get("required")
	assert.Equal(t, true, required)

	count := listAt(run, "options")[0].(*config.Mapping)
	typ, _ := stringAt(count, "type")
	assert.Equal(t, "integer", typ)

	quiet := listAt(run, "options")[1].(*config.Mapping)
	typ, _ = stringAt(quiet, "type")
	assert.Equal(t, "boolean", typ)

	empty := mappingAt(mappingAt(cli, "commands"), "empty")
	require.NotNil(t, empty, "a null command becomes an empty mapping")

	assert.Equal(t, 0, FillDefaults(doc), "second pass fills nothing")
}

func TestFillDefaultsSkipsWrongShapes(t *testing.T) {
	doc := parse(t, header+"cli: not-a-mapping\n")
	FillDefaults(doc)
	v, _ := doc.Get("cli")
	assert.Equal(t, "not-a-mapping", v)
}

// genDocument builds documents whose optional fields are present or absent
// according to a bit mask.
func genDocument() gopter.Gen {
	return gen.SliceOfN(16, gen.Bool()).Map(func(bits []bool) *config.Mapping {
		doc := config.NewMapping(
			"package_name", "demo",
			"command_name", "demo",
			"display_name", "Demo",
			"description", "Demo tool",
			"language", "go",
		)
		if bits[0] {
			doc.Add("version", "1.2.3")
		}
		if bits[1] {
			doc.Add("license", "Apache-2.0")
		}
		if !bits[2] {
			return doc
		}

		cli := &config.Mapping{}
		doc.Add("cli", cli)
		if bits[3] {
			cli.Add("color", false)
		}
		if bits[4] {
			cli.Add("tagline", "custom")
		}

		opt := config.NewMapping("name", "level")
		if bits[5] {
			opt.Add("default", 3)
		}
		if bits[6] {
			opt.Add("type", "int")
		}
		if bits[7] {
			opt.Add("flag", false)
		}

		arg := config.NewMapping("name", "target")
		if bits[8] {
			arg.Add("required", false)
		}
		if bits[9] {
			arg.Add("variadic", true)
		}

		cmd := config.NewMapping("options", []interface{}{opt}, "args", []interface{}{arg})
		if bits[10] {
			cmd.Add("description", "runs")
		}

		cmds := &config.Mapping{}
		if bits[11] {
			cmds.Add("run", cmd)
		}
		if bits[12] {
			cmds.Add("idle", nil)
		}
		if bits[13] {
			sub := &config.Mapping{}
			sub.Add("leaf", nil)
			cmds.Add("group", config.NewMapping("subcommands", sub))
		}
		if bits[14] {
			cli.Add("commands", cmds)
		}
		if bits[15] {
			cli.Add("options", []interface{}{config.NewMapping("name", "verbose", "flag", true)})
		}
		return doc
	})
}

func TestFillDefaultsProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("second fill changes nothing", prop.ForAll(
		func(doc *config.Mapping) bool {
			FillDefaults(doc)
			before := doc.ToPlain()
			if FillDefaults(doc) != 0 {
				return false
			}
			return assert.ObjectsAreEqual(before, doc.ToPlain())
		},
		genDocument(),
	))

	properties.Property("generated documents validate", prop.ForAll(
		func(doc *config.Mapping) bool {
			_, err := Validate(doc)
			return err == nil
		},
		genDocument(),
	))

	properties.Property("validation is deterministic", prop.ForAll(
		func(doc *config.Mapping) bool {
			a, errA := Validate(doc)
			b, errB := Validate(doc)
			return errA == nil && errB == nil && assert.ObjectsAreEqual(a, b)
		},
		genDocument(),
	))

	properties.TestingRun(t)
}
