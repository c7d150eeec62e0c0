package target

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// SafeIdentifier turns name into an identifier that is legal in the target:
// the target's case convention is applied, a reserved word gets a single
// trailing underscore, and a name not starting with a letter or underscore
// gets a leading underscore. Applying it to its own output is a no-op.
func (t *Target) SafeIdentifier(name string) string {
	id := t.Convention.Apply(name)
	if t.IsReserved(id) {
		id += "_"
	}
	if r, _ := utf8.DecodeRuneInString(id); id == "" || !(unicode.IsLetter(r) || r == '_') {
		id = "_" + id
	}
	return id
}

// SafeIdentifier applies the named target's identifier rules to name.
// It reports false when the target is unknown.
func SafeIdentifier(name, targetName string) (string, bool) {
	t, ok := Lookup(targetName)
	if !ok {
		return "", false
	}
	return t.SafeIdentifier(name), true
}

// Snake converts name to snake_case. Leading and trailing underscores are
// kept; every other run of separators becomes a single underscore.
func Snake(name string) string {
	lead, core, trail := splitUnderscores(name)
	words := Words(core)
	for i, w := range words {
		words[i] = lowerWord(w)
	}
	return lead + strings.Join(words, "_") + trail
}

// Kebab converts name to kebab-case.
func Kebab(name string) string {
	words := Words(name)
	for i, w := range words {
		words[i] = lowerWord(w)
	}
	return strings.Join(words, "-")
}

// Camel converts name to camelCase. Leading and trailing underscores are
// kept. Separators are removed, the first segment loses its leading capitals
// and later segments gain an initial capital. Existing camel humps are left
// alone so the transform is stable under re-application.
func Camel(name string) string {
	lead, core, trail := splitUnderscores(name)
	segments := segmentsOf(core)
	var b strings.Builder
	for i, seg := range segments {
		switch {
		case i == 0:
			b.WriteString(seg)
		case allUpper(seg):
			b.WriteString(capitalize(lowerWord(seg)))
		default:
			b.WriteString(capitalize(seg))
		}
	}
	return lead + lowerLeading(b.String()) + trail
}

// Pascal converts name to PascalCase.
func Pascal(name string) string {
	return capitalize(Camel(strings.Trim(name, "_")))
}

// Words splits name into words at separators, lower-to-upper transitions,
// digit-to-upper transitions and the end of an upper-case acronym
// ("HTTPServer" -> "HTTP", "Server").
func Words(name string) []string {
	var words []string
	for _, seg := range segmentsOf(name) {
		words = append(words, splitCase(seg)...)
	}
	return words
}

// segmentsOf splits at any rune that is neither a letter nor a digit.
func segmentsOf(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func splitCase(seg string) []string {
	runes := []rune(seg)
	var words []string
	start := 0
	for i := 1; i < len(runes); i++ {
		prev, cur := runes[i-1], runes[i]
		boundary := false
		switch {
		case unicode.IsUpper(cur) && (unicode.IsLower(prev) || unicode.IsDigit(prev)):
			boundary = true
		case unicode.IsUpper(prev) && unicode.IsUpper(cur) && i+1 < len(runes) && unicode.IsLower(runes[i+1]):
			boundary = true
		}
		if boundary {
			words = append(words, string(runes[start:i]))
			start = i
		}
	}
	return append(words, string(runes[start:]))
}

func splitUnderscores(s string) (lead, core, trail string) {
	trimmedLeft := strings.TrimLeft(s, "_")
	lead = s[:len(s)-len(trimmedLeft)]
	core = strings.TrimRight(trimmedLeft, "_")
	trail = trimmedLeft[len(core):]
	return lead, core, trail
}

// lowerLeading lower-cases a leading run of capitals. When the run is
// followed by a lower-case letter its last capital starts the next hump
// ("HTTPServer" -> "httpServer").
func lowerLeading(seg string) string {
	if allUpper(seg) {
		return lowerWord(seg)
	}
	runes := []rune(seg)
	n := 0
	for n < len(runes) && unicode.IsUpper(runes[n]) {
		n++
	}
	if n > 1 && n < len(runes) && unicode.IsLower(runes[n]) {
		n--
	}
	return lowerWord(string(runes[:n])) + string(runes[n:])
}

// lowerWord lower-cases w and drops anything that is not a letter or digit.
// Some mappings add combining marks ("İ" becomes "i" plus U+0307), which
// would otherwise split the word the next time it is converted.
func lowerWord(w string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return -1
	}, cases.Lower(language.Und).String(w))
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return cases.Upper(language.Und).String(string(r)) + s[size:]
}

// allUpper reports whether s has letters and none of them is lower-case.
func allUpper(s string) bool {
	hasLetter := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsLetter(r) {
			hasLetter = true
		}
	}
	return hasLetter
}
