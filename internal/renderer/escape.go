package renderer

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// escapeWith escapes backslashes, double quotes and control characters for a
// double-quoted string literal. Non-printable runes go through esc.
func escapeWith(s string, esc func(r rune) string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if unicode.IsPrint(r) {
				b.WriteRune(r)
			} else {
				b.WriteString(esc(r))
			}
		}
	}
	return b.String()
}

func escapePython(s string) string {
	return escapeWith(s, func(r rune) string {
		switch {
		case r < 0x100:
			return fmt.Sprintf(`\x%02x`, r)
		case r <= 0xFFFF:
			return fmt.Sprintf(`\u%04x`, r)
		default:
			return fmt.Sprintf(`\U%08x`, r)
		}
	})
}

func escapeJS(s string) string {
	return escapeWith(s, func(r rune) string {
		if r <= 0xFFFF {
			return fmt.Sprintf(`\u%04x`, r)
		}
		return fmt.Sprintf(`\u{%x}`, r)
	})
}

func escapeRust(s string) string {
	return escapeWith(s, func(r rune) string {
		if r == 0 {
			return `\0`
		}
		return fmt.Sprintf(`\u{%x}`, r)
	})
}

func escapeGo(s string) string {
	q := strconv.Quote(s)
	return q[1 : len(q)-1]
}

// singleLine folds line breaks so text can sit inside a one-line comment.
func singleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// blockComment makes text safe inside a /* */ or /** */ comment.
func blockComment(s string) string {
	return strings.ReplaceAll(singleLine(s), "*/", `*\/`)
}

// docstring makes text safe inside a triple-quoted Python string.
func docstring(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"""`, `\"\"\"`)
}
