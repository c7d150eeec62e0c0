package renderer

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tacogips/clismith/internal/canon"
)

func TestEscape(t *testing.T) {
	tests := []struct {
		name   string
		escape func(string) string
		in     string
		want   string
	}{
		{"python quote", escapePython, `say "hi"`, `say \"hi\"`},
		{"python newline", escapePython, "a\nb", `a\nb`},
		{"python control", escapePython, "\x01", `\x01`},
		{"python unicode kept", escapePython, "héllo", "héllo"},
		{"js line separator", escapeJS, "a\u2028b", `a\u2028b`},
		{"js backslash", escapeJS, `C:\dir`, `C:\\dir`},
		{"rust nul", escapeRust, "a\x00b", `a\0b`},
		{"rust control", escapeRust, "\x7f", `\u{7f}`},
		{"go tab", escapeGo, "a\tb", `a\tb`},
		{"go quote", escapeGo, `"x"`, `\"x\"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.escape(tt.in))
		})
	}
}

func TestLiteral(t *testing.T) {
	py := NewPython().style
	goStyle := NewGo().style
	rs := NewRust().style
	js := NewNodeJS().style

	tests := []struct {
		name  string
		style literalStyle
		value interface{}
		typ   canon.Type
		want  string
	}{
		{"python none", py, nil, canon.String, "None"},
		{"python bool", py, true, canon.Boolean, "True"},
		{"python float from int", py, 2, canon.Float, "2.0"},
		{"python object", py, map[string]interface{}{"b": 2, "a": "x"}, canon.Object, `{"a": "x", "b": 2}`},
		{"go string", goStyle, "a\"b", canon.String, `"a\"b"`},
		{"go object", goStyle, map[string]interface{}{"k": "v"}, canon.Object, `map[string]string{"k": "v"}`},
		{"go nil", goStyle, nil, canon.String, "nil"},
		{"go numeric list", goStyle, []interface{}{1, 2.5}, canon.Array, `[]string{"1", "2.5"}`},
		{"rust list", rs, []interface{}{"a"}, canon.Array, `vec!["a"]`},
		{"rust object", rs, map[string]interface{}{"k": "v"}, canon.Object,
			`std::collections::HashMap::from([("k".to_string(), "v".to_string())])`},
		{"js object", js, map[string]interface{}{"k": false}, canon.Object, `{ "k": false }`},
		{"js float", js, 0.5, canon.Float, "0.5"},
		{"integral float as integer", js, 4.0, canon.Integer, "4"},
		{"large float", js, 1e21, canon.Float, "1e+21"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.style.literal(tt.value, tt.typ)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := py.literal(math.Inf(1), canon.Float)
	assert.Error(t, err)
	_, err = py.literal(struct{}{}, canon.Any)
	assert.Error(t, err)
}

func TestDisplay(t *testing.T) {
	assert.Equal(t, "", display(nil))
	assert.Equal(t, "3", display(3))
	assert.Equal(t, "0.25", display(0.25))
	assert.Equal(t, "true", display(true))
	assert.Equal(t, "a,b", display([]interface{}{"a", "b"}))
	assert.Equal(t, "a=1,b=x", display(map[string]interface{}{"b": "x", "a": 1}))
}

func TestCustomFilters(t *testing.T) {
	py := NewPython().CustomFilters()
	assert.Equal(t, "class_", py["safe_identifier"]("class"))
	assert.Equal(t, `"it's \"ok\""`, py["quote"](`it's "ok"`))
	assert.Equal(t, `say \"\"\" done`, py["docstring"](`say """ done`))
	assert.Equal(t, "dry_run", py["snake"]("dry-run"))
	assert.Equal(t, "DryRun", py["pascal"]("dry-run"))
	assert.Equal(t, "dry-run", py["kebab"]("DryRun"))
	assert.Equal(t, "one two", py["comment"]("one\n  two"))

	node := NewNodeJS().CustomFilters()
	assert.Equal(t, "dryRun", node["safe_identifier"]("dry-run"))
	assert.Equal(t, `ends *\/ here`, node["jsdoc"]("ends */ here"))
	_, ok := node["docstring"]
	assert.False(t, ok, "filters are per target")

	goFilters := NewGo().CustomFilters()
	assert.Equal(t, "ConfigGet", goFilters["exported"]("config-get"))
	assert.Equal(t, "X2fa", goFilters["exported"]("2fa"))
	assert.Equal(t, "type_", goFilters["safe_identifier"]("type"))

	rs := NewRust().CustomFilters()
	assert.Equal(t, "MAX_RETRIES", rs["screaming"]("maxRetries"))
}

func TestRegistry(t *testing.T) {
	reg := DefaultRegistry()
	assert.Equal(t, []string{"python", "nodejs", "typescript", "rust", "go"}, reg.Names())
	assert.True(t, reg.Has("go"))
	assert.False(t, reg.Has("cobol"))

	r, err := reg.New("rust")
	require.NoError(t, err)
	assert.Equal(t, "rust", r.Target().Name)
	assert.Equal(t, "clap", r.Target().Framework)

	_, err = reg.New("cobol")
	var unknown *UnknownTargetError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "cobol", unknown.Name)
	assert.Contains(t, err.Error(), "python, nodejs")

	assert.Panics(t, func() { reg.Register("go", func() Renderer { return NewGo() }) })

	empty := NewRegistry()
	empty.Register("python", func() Renderer { return NewPython() })
	assert.Equal(t, []string{"python"}, empty.Names())
}

func TestRenderContextErrorMessage(t *testing.T) {
	err := newContextError("go", "", "option x: bad")
	assert.Equal(t, `go renderer: command "<global>": option x: bad`, err.Error())
}
