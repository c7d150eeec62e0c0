package schema

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// SchemaErrorKind categorizes a configuration problem.
type SchemaErrorKind int

const (
	// KindMissing indicates a required field is absent or empty.
	KindMissing SchemaErrorKind = iota
	// KindType indicates a value of the wrong primitive type or an unknown type spelling.
	KindType
	// KindDuplicate indicates a repeated command, option, argument, alias or key.
	KindDuplicate
	// KindUnknownLanguage indicates an unsupported target language.
	KindUnknownLanguage
	// KindEmptyChoices indicates a choice type without any choices.
	KindEmptyChoices
	// KindInvalidName indicates a name that cannot become an identifier or flag.
	KindInvalidName
	// KindCycle indicates a document that contains itself.
	KindCycle
	// KindConflict indicates declarations that are individually valid but cannot coexist.
	KindConflict
	// KindInvalidValue indicates a well-typed value that is not allowed.
	KindInvalidValue
)

// String returns the string representation of the kind.
func (k SchemaErrorKind) String() string {
	switch k {
	case KindMissing:
		return "missing"
	case KindType:
		return "type"
	case KindDuplicate:
		return "duplicate"
	case KindUnknownLanguage:
		return "unknown-language"
	case KindEmptyChoices:
		return "empty-choices"
	case KindInvalidName:
		return "invalid-name"
	case KindCycle:
		return "cycle"
	case KindConflict:
		return "conflict"
	case KindInvalidValue:
		return "invalid-value"
	default:
		return "unknown"
	}
}

// SchemaError is a single problem in a configuration document.
type SchemaError struct {
	// Kind categorizes the error.
	Kind SchemaErrorKind
	// Path is the dotted field path, e.g. "cli.commands.build.options.1".
	// Sequence items are addressed by index. The root is "".
	Path string
	// Reason is a human-readable explanation.
	Reason string
}

// Error implements the error interface.
func (e *SchemaError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Reason)
	}
	return fmt.Sprintf("%s: %s: %s", e.Path, e.Kind, e.Reason)
}

// SchemaErrors is the complete batch of problems found in one validation
// pass, sorted by path.
type SchemaErrors []*SchemaError

// Error implements the error interface.
func (es SchemaErrors) Error() string {
	if len(es) == 1 {
		return "invalid configuration: " + es[0].Error()
	}
	var b strings.Builder
	fmt.Fprintf(&b, "invalid configuration: %d errors", len(es))
	for _, e := range es {
		b.WriteString("\n  ")
		b.WriteString(e.Error())
	}
	return b.String()
}

// OfKind returns the errors of the given kind.
func (es SchemaErrors) OfKind(kind SchemaErrorKind) SchemaErrors {
	var out SchemaErrors
	for _, e := range es {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

// AsSchemaErrors extracts a SchemaErrors batch from err.
func AsSchemaErrors(err error) (SchemaErrors, bool) {
	var es SchemaErrors
	if errors.As(err, &es) {
		return es, true
	}
	return nil, false
}

// sortErrors orders the batch by path and removes exact repeats.
func sortErrors(es SchemaErrors) SchemaErrors {
	sort.SliceStable(es, func(i, j int) bool {
		if es[i].Path != es[j].Path {
			return es[i].Path < es[j].Path
		}
		if es[i].Kind != es[j].Kind {
			return es[i].Kind < es[j].Kind
		}
		return es[i].Reason < es[j].Reason
	})
	out := es[:0]
	for _, e := range es {
		if len(out) > 0 && *e == *out[len(out)-1] {
			continue
		}
		out = append(out, e)
	}
	return out
}

func joinPath(parts ...string) string {
	var nonEmpty []string
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, ".")
}
