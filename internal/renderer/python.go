package renderer

import (
	"github.com/tacogips/clismith/internal/ir"
	"github.com/tacogips/clismith/internal/target"
)

// PythonRenderer produces a click application packaged with pyproject.toml.
type PythonRenderer struct {
	base
}

// NewPython creates the Python renderer.
func NewPython() *PythonRenderer {
	return &PythonRenderer{base{profile{
		target: target.Python,
		style: literalStyle{
			escape:   escapePython,
			null:     "None",
			trueLit:  "True",
			falseLit: "False",
			list:     joinWith("[", ", ", "]"),
			object:   joinWith("{", ", ", "}"),
			pair:     colonPair,
		},
		packageID: pythonPackage,
		files:     pythonFiles,
		filters: map[string]Filter{
			"docstring": docstring,
		},
	}}}
}

// pythonPackage is the import name of the generated package.
func pythonPackage(p *ir.IR) string {
	return target.Python.SafeIdentifier(target.Snake(p.Project.PackageName))
}

func pythonFiles(pkg string) []OutputFile {
	return []OutputFile{
		{ID: FilePackageDescriptor, Component: "python/pyproject.toml", Path: "pyproject.toml"},
		{ID: FilePackageInit, Component: "python/__init__.py", Path: pkg + "/__init__.py"},
		{ID: FileModuleMain, Component: "python/__main__.py", Path: pkg + "/__main__.py"},
		{ID: FileEntry, Component: "python/cli.py", Path: pkg + "/cli.py"},
		{ID: FileHooks, Component: "python/hooks.py", Path: pkg + "/hooks.py", Preserve: true},
		{ID: FileReadme, Component: "shared/README.md", Path: "README.md"},
	}
}
