// Package renderer turns an IR and a feature set into the data a text
// template engine needs for one target: a template context, an output
// manifest and a set of custom filters. Renderers never substitute text
// themselves.
package renderer

import (
	"github.com/tacogips/clismith/internal/features"
	"github.com/tacogips/clismith/internal/ir"
	"github.com/tacogips/clismith/internal/target"
)

// Context is the nested mapping exposed to templates. Every target produces
// the same key schema; only leaf values differ.
type Context map[string]interface{}

// Filter is a pure string transform exposed to templates.
type Filter func(string) string

// Logical output file identifiers.
const (
	FileEntry             = "entry"
	FilePackageDescriptor = "package-descriptor"
	FilePackageInit       = "package-init"
	FileModuleMain        = "module-main"
	FileCompilerConfig    = "compiler-config"
	FileHooks             = "hooks"
	FileReadme            = "readme"
)

// OutputFile is one file a target needs.
type OutputFile struct {
	// ID is the logical identifier, one of the File* constants.
	ID string `json:"id" yaml:"id"`
	// Component names the template in the component store.
	Component string `json:"component" yaml:"component"`
	// Path is the output path relative to the output directory, using '/'.
	Path string `json:"path" yaml:"path"`
	// Executable marks files that get the executable bit.
	Executable bool `json:"executable,omitempty" yaml:"executable,omitempty"`
	// Preserve marks user-owned files that are written once and never overwritten.
	Preserve bool `json:"preserve,omitempty" yaml:"preserve,omitempty"`
}

// Manifest lists the files of one target. It depends only on the IR, never
// on template content.
type Manifest struct {
	Target string       `json:"target" yaml:"target"`
	Files  []OutputFile `json:"files" yaml:"files"`
}

// File returns the entry with the given logical identifier.
func (m Manifest) File(id string) (OutputFile, bool) {
	for _, f := range m.Files {
		if f.ID == id {
			return f, true
		}
	}
	return OutputFile{}, false
}

// Components returns the distinct component names in manifest order.
func (m Manifest) Components() []string {
	seen := make(map[string]bool, len(m.Files))
	var out []string
	for _, f := range m.Files {
		if !seen[f.Component] {
			seen[f.Component] = true
			out = append(out, f.Component)
		}
	}
	return out
}

// Renderer is the per-target rendering contract. Implementations hold only
// static tables and are safe for concurrent use.
type Renderer interface {
	// Target returns the target this renderer produces.
	Target() *target.Target
	// TemplateContext builds the template context. It fails with a
	// *RenderContextError when a command cannot be expressed in the target.
	TemplateContext(p *ir.IR, fs features.FeatureSet) (Context, error)
	// OutputStructure lists the files the target needs.
	OutputStructure(p *ir.IR) (Manifest, error)
	// CustomFilters returns the target's template filters by name.
	CustomFilters() map[string]Filter
}
