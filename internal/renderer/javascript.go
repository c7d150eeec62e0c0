package renderer

import (
	"strings"

	"github.com/tacogips/clismith/internal/ir"
	"github.com/tacogips/clismith/internal/target"
)

// NodeJSRenderer produces a commander application in plain JavaScript.
type NodeJSRenderer struct {
	base
}

// TypeScriptRenderer produces a commander application in TypeScript.
type TypeScriptRenderer struct {
	base
}

var javaScriptStyle = literalStyle{
	escape:   escapeJS,
	null:     "null",
	trueLit:  "true",
	falseLit: "false",
	list:     joinWith("[", ", ", "]"),
	object:   joinWith("{ ", ", ", " }"),
	pair:     colonPair,
}

func javaScriptFilters() map[string]Filter {
	return map[string]Filter{
		"jsdoc": blockComment,
	}
}

// NewNodeJS creates the Node.js renderer.
func NewNodeJS() *NodeJSRenderer {
	return &NodeJSRenderer{base{profile{
		target:    target.NodeJS,
		style:     javaScriptStyle,
		packageID: npmPackage,
		files: func(string) []OutputFile {
			return []OutputFile{
				{ID: FilePackageDescriptor, Component: "nodejs/package.json", Path: "package.json"},
				{ID: FileEntry, Component: "nodejs/cli.js", Path: "bin/cli.js", Executable: true},
				{ID: FileHooks, Component: "nodejs/hooks.js", Path: "lib/hooks.js", Preserve: true},
				{ID: FileReadme, Component: "shared/README.md", Path: "README.md"},
			}
		},
		filters: javaScriptFilters(),
	}}}
}

// NewTypeScript creates the TypeScript renderer.
func NewTypeScript() *TypeScriptRenderer {
	return &TypeScriptRenderer{base{profile{
		target:    target.TypeScript,
		style:     javaScriptStyle,
		packageID: npmPackage,
		files: func(string) []OutputFile {
			return []OutputFile{
				{ID: FilePackageDescriptor, Component: "typescript/package.json", Path: "package.json"},
				{ID: FileCompilerConfig, Component: "typescript/tsconfig.json", Path: "tsconfig.json"},
				{ID: FileEntry, Component: "typescript/cli.ts", Path: "src/cli.ts"},
				{ID: FileHooks, Component: "typescript/hooks.ts", Path: "src/hooks.ts", Preserve: true},
				{ID: FileReadme, Component: "shared/README.md", Path: "README.md"},
			}
		},
		filters: javaScriptFilters(),
	}}}
}

// npmPackage is the npm package name. Scoped names are only lower-cased.
func npmPackage(p *ir.IR) string {
	name := p.Project.PackageName
	if strings.HasPrefix(name, "@") {
		return strings.ToLower(name)
	}
	return target.Kebab(name)
}
