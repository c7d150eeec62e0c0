package renderer

import (
	"strings"

	"github.com/tacogips/clismith/internal/ir"
	"github.com/tacogips/clismith/internal/target"
)

// RustRenderer produces a clap application built with Cargo.
type RustRenderer struct {
	base
}

// NewRust creates the Rust renderer.
func NewRust() *RustRenderer {
	return &RustRenderer{base{profile{
		target: target.Rust,
		style: literalStyle{
			escape:   escapeRust,
			null:     "None",
			trueLit:  "true",
			falseLit: "false",
			list:     joinWith("vec![", ", ", "]"),
			object: func(pairs []string) string {
				return "std::collections::HashMap::from([" + strings.Join(pairs, ", ") + "])"
			},
			pair: func(key, value string) string {
				return "(" + key + ".to_string(), " + value + ".to_string())"
			},
		},
		packageID: func(p *ir.IR) string { return target.Kebab(p.Project.PackageName) },
		files: func(string) []OutputFile {
			return []OutputFile{
				{ID: FilePackageDescriptor, Component: "rust/Cargo.toml", Path: "Cargo.toml"},
				{ID: FileEntry, Component: "rust/main.rs", Path: "src/main.rs"},
				{ID: FileHooks, Component: "rust/hooks.rs", Path: "src/hooks.rs", Preserve: true},
				{ID: FileReadme, Component: "shared/README.md", Path: "README.md"},
			}
		},
		filters: map[string]Filter{
			"doc":       singleLine,
			"screaming": func(s string) string { return strings.ToUpper(target.Snake(s)) },
		},
	}}}
}
