package renderer

import (
	"strings"

	"github.com/tacogips/clismith/internal/ir"
	"github.com/tacogips/clismith/internal/target"
)

// GoRenderer produces a cobra application as a Go module.
type GoRenderer struct {
	base
}

// NewGo creates the Go renderer.
func NewGo() *GoRenderer {
	return &GoRenderer{base{profile{
		target: target.Go,
		style: literalStyle{
			escape:    escapeGo,
			null:      "nil",
			trueLit:   "true",
			falseLit:  "false",
			list:      joinWith("[]string{", ", ", "}"),
			object:    joinWith("map[string]string{", ", ", "}"),
			pair:      colonPair,
			textItems: true,
		},
		packageID: goModule,
		files: func(string) []OutputFile {
			return []OutputFile{
				{ID: FilePackageDescriptor, Component: "go/go.mod", Path: "go.mod"},
				{ID: FileEntry, Component: "go/main.go", Path: "main.go"},
				{ID: FileHooks, Component: "go/hooks.go", Path: "hooks.go", Preserve: true},
				{ID: FileReadme, Component: "shared/README.md", Path: "README.md"},
			}
		},
		filters: map[string]Filter{
			"exported": exported,
		},
	}}}
}

// goModule keeps paths like "github.com/acme/tool" and kebab-cases bare names.
func goModule(p *ir.IR) string {
	name := strings.TrimSpace(p.Project.PackageName)
	if strings.ContainsAny(name, "./") {
		return name
	}
	return target.Kebab(name)
}

// exported spells name as an exported Go identifier.
func exported(name string) string {
	id := target.Pascal(name)
	if id == "" {
		return "X"
	}
	if r := id[0]; r >= '0' && r <= '9' {
		return "X" + id
	}
	return id
}
