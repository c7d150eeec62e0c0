// Package canon defines the target-neutral type tags used throughout the
// generation pipeline. User-facing type spellings are parsed into one of these
// tags during validation; renderers map each tag to a target primitive.
package canon

import (
	"fmt"
	"strings"
)

// Type is a canonical, target-neutral type tag.
type Type string

const (
	// String is a free-form text value.
	String Type = "string"
	// Integer is a whole number.
	Integer Type = "integer"
	// Float is a floating-point number.
	Float Type = "float"
	// Boolean is a true/false switch.
	Boolean Type = "boolean"
	// Array is an ordered list of strings.
	Array Type = "array"
	// Path is a filesystem path.
	Path Type = "path"
	// Any is an untyped value.
	Any Type = "any"
	// Object is a string-keyed mapping.
	Object Type = "object"
	// Void is the absence of a value.
	Void Type = "void"
)

// All returns every canonical type tag in a stable order.
func All() []Type {
	return []Type{String, Integer, Float, Boolean, Array, Path, Any, Object, Void}
}

// Valid reports whether t is one of the canonical tags.
func (t Type) Valid() bool {
	for _, c := range All() {
		if c == t {
			return true
		}
	}
	return false
}

// String returns the tag text.
func (t Type) String() string {
	return string(t)
}

// aliases maps accepted user spellings onto canonical tags.
var aliases = map[string]Type{
	"string":     String,
	"str":        String,
	"text":       String,
	"integer":    Integer,
	"int":        Integer,
	"float":      Float,
	"number":     Float,
	"double":     Float,
	"decimal":    Float,
	"boolean":    Boolean,
	"bool":       Boolean,
	"flag":       Boolean,
	"array":      Array,
	"list":       Array,
	"multiple":   Array,
	"path":       Path,
	"file":       Path,
	"dir":        Path,
	"filepath":   Path,
	"any":        Any,
	"object":     Object,
	"dict":       Object,
	"map":        Object,
	"json":       Object,
	"void":       Void,
	"none":       Void,
	"null":       Void,
	ChoiceMarker: String,
	"choices":    String,
}

// ChoiceMarker is the user spelling that declares an enumerated string. It
// parses to String but obliges the declaration to carry a non-empty choice list.
const ChoiceMarker = "choice"

// Parse converts a user type spelling into its canonical tag. The second
// return value reports whether the spelling was a choice marker.
func Parse(spelling string) (Type, bool, error) {
	key := strings.ToLower(strings.TrimSpace(spelling))
	t, ok := aliases[key]
	if !ok {
		return "", false, fmt.Errorf("unknown type %q (expected one of %s)", spelling, strings.Join(Names(), ", "))
	}
	return t, key == ChoiceMarker || key == "choices", nil
}

// Names returns the canonical tag names.
func Names() []string {
	all := All()
	names := make([]string, len(all))
	for i, t := range all {
		names[i] = string(t)
	}
	return names
}

// Infer derives a canonical tag from the primitive kind of a decoded value.
// It is used to type options that declare a default but no explicit type.
func Infer(value interface{}) Type {
	switch value.(type) {
	case bool:
		return Boolean
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return Integer
	case float32, float64:
		return Float
	case []interface{}, []string:
		return Array
	case map[string]interface{}:
		return Object
	case nil:
		return String
	default:
		return String
	}
}
