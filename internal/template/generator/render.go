package generator

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/aymerick/raymond"
	"github.com/tacogips/clismith/internal/renderer"
)

// Helpers builds the handlebars helpers for one target: every renderer
// filter, plus "eq" and "join". Filter output is not HTML-escaped.
func Helpers(filters map[string]renderer.Filter) map[string]interface{} {
	helpers := map[string]interface{}{
		"eq": func(a, b interface{}) bool {
			return raymond.Str(a) == raymond.Str(b)
		},
		"join": func(list interface{}, sep string) raymond.SafeString {
			return raymond.SafeString(strings.Join(toStrings(list), sep))
		},
	}
	for name, f := range filters {
		helpers[name] = func(v interface{}) raymond.SafeString {
			return raymond.SafeString(f(raymond.Str(v)))
		}
	}
	return helpers
}

// Render substitutes data into a handlebars template. Values printed with
// double braces are HTML-escaped; templates use triple braces or helpers.
func Render(name, source string, data renderer.Context, helpers map[string]interface{}) (string, error) {
	tpl, err := raymond.Parse(source)
	if err != nil {
		return "", newGeneratorError(GeneratorRenderFailed, "failed to parse template", name, err)
	}
	tpl.RegisterHelpers(helpers)
	out, err := tpl.Exec(map[string]interface{}(data))
	if err != nil {
		return "", newGeneratorError(GeneratorRenderFailed, "failed to render template", name, err)
	}
	return out, nil
}

func toStrings(list interface{}) []string {
	v := reflect.ValueOf(list)
	if v.Kind() != reflect.Slice && v.Kind() != reflect.Array {
		if list == nil {
			return nil
		}
		return []string{fmt.Sprint(list)}
	}
	out := make([]string, v.Len())
	for i := range out {
		out[i] = raymond.Str(v.Index(i).Interface())
	}
	return out
}
