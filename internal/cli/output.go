package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/tacogips/clismith/internal/app"
	"github.com/tacogips/clismith/internal/component"
	"github.com/tacogips/clismith/internal/schema"
)

// ANSI color codes
const (
	colorReset   = "\033[0m"
	colorRed     = "\033[31m"
	colorGreen   = "\033[32m"
	colorYellow  = "\033[33m"
	colorBlue    = "\033[34m"
	colorMagenta = "\033[35m"
	colorGray    = "\033[90m"
)

// printer writes user-facing output. Everything except errors is
// suppressed in quiet mode.
type printer struct {
	out     io.Writer
	err     io.Writer
	quiet   bool
	noColor bool
}

func newPrinter(out, err io.Writer, quiet, noColor bool) *printer {
	return &printer{out: out, err: err, quiet: quiet, noColor: noColor}
}

func (p *printer) paint(color, s string) string {
	if p.noColor {
		return s
	}
	return color + s + colorReset
}

// info prints an informational message
func (p *printer) info(format string, args ...interface{}) {
	if p.quiet {
		return
	}
	fmt.Fprintf(p.out, format+"\n", args...)
}

// success prints a success message
func (p *printer) success(format string, args ...interface{}) {
	if p.quiet {
		return
	}
	fmt.Fprintf(p.out, "%s %s\n", p.paint(colorGreen, "✓"), fmt.Sprintf(format, args...))
}

// warning prints a warning message
func (p *printer) warning(format string, args ...interface{}) {
	if p.quiet {
		return
	}
	fmt.Fprintf(p.out, "%s %s\n", p.paint(colorYellow, "⚠"), fmt.Sprintf(format, args...))
}

// progress prints a progress indicator
func (p *printer) progress(format string, args ...interface{}) {
	if p.quiet {
		return
	}
	fmt.Fprintf(p.out, "%s %s\n", p.paint(colorBlue, "→"), fmt.Sprintf(format, args...))
}

// header prints a section header
func (p *printer) header(title string) {
	if p.quiet {
		return
	}
	fmt.Fprintf(p.out, "\n%s\n", p.paint(colorMagenta, "=== "+title+" ==="))
}

// errorMsg prints an error message to the error stream
func (p *printer) errorMsg(format string, args ...interface{}) {
	fmt.Fprintf(p.err, "%s %s\n", p.paint(colorRed, "✗"), fmt.Sprintf(format, args...))
}

// raw writes data to the output stream regardless of quiet mode. Used for
// machine-readable output.
func (p *printer) raw(data []byte) {
	p.out.Write(data)
	if len(data) > 0 && data[len(data)-1] != '\n' {
		io.WriteString(p.out, "\n")
	}
}

// failure prints err, listing every schema error on its own line.
func (p *printer) failure(err error) {
	if errs, ok := schema.AsSchemaErrors(err); ok {
		if len(errs) == 1 {
			p.errorMsg("invalid configuration: 1 error")
		} else {
			p.errorMsg("invalid configuration: %d errors", len(errs))
		}
		for _, e := range errs {
			path := e.Path
			if path == "" {
				path = "(root)"
			}
			fmt.Fprintf(p.err, "  %s %s: %s\n", p.paint(colorGray, path), e.Kind, e.Reason)
		}
		return
	}

	var nf *component.ComponentNotFoundError
	if errors.As(err, &nf) {
		p.errorMsg("%v", err)
		fmt.Fprintf(p.err, "  %s\n", p.paint(colorGray, "check --templates or the templates_dir setting"))
		return
	}

	var appErr *app.AppError
	if errors.As(err, &appErr) {
		p.errorMsg("%s: %v", appErr.Type, err)
		return
	}
	p.errorMsg("%v", err)
}

// table prints rows as left-aligned columns. Widths are display widths so
// wide runes line up.
func (p *printer) table(headers []string, rows [][]string) {
	if p.quiet {
		return
	}
	fmt.Fprint(p.out, formatTable(headers, rows))
}

func formatTable(headers []string, rows [][]string) string {
	widths := make([]int, len(headers))
	measure := func(row []string) {
		for i, cell := range row {
			if i < len(widths) {
				if w := runewidth.StringWidth(cell); w > widths[i] {
					widths[i] = w
				}
			}
		}
	}
	measure(headers)
	for _, row := range rows {
		measure(row)
	}

	var b strings.Builder
	line := func(row []string) {
		for i := range widths {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			if i == len(widths)-1 {
				b.WriteString(cell)
			} else {
				b.WriteString(runewidth.FillRight(cell, widths[i]))
				b.WriteString("  ")
			}
		}
		b.WriteString("\n")
	}
	line(headers)
	sep := make([]string, len(widths))
	for i, w := range widths {
		sep[i] = strings.Repeat("-", w)
	}
	line(sep)
	for _, row := range rows {
		line(row)
	}
	return b.String()
}

// plural returns "1 file" or "3 files".
func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}

// formatBytes formats bytes as human-readable string
func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
