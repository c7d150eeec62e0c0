// Package features decides which optional subsystems a generated program
// needs. The set of features and the triggers that enable them are closed;
// nothing outside this package adds to them.
package features

import (
	"sort"
	"strings"
)

// Name identifies an optional subsystem of the generated program.
type Name string

const (
	// RichOutput selects styled terminal output over plain text.
	RichOutput Name = "rich-output"
	// ConfigurationSubsystem adds a settings file reader and writer.
	ConfigurationSubsystem Name = "configuration-subsystem"
	// InteractiveShell adds a read-eval-print loop.
	InteractiveShell Name = "interactive-shell"
	// JSONOutput adds machine-readable output helpers.
	JSONOutput Name = "json-output"
	// ShellCompletion adds completion script generation.
	ShellCompletion Name = "shell-completion"
	// PluginSystem adds discovery of external subcommands.
	PluginSystem Name = "plugin-system"
	// VerbosityControl adds log-level plumbing for verbose/quiet switches.
	VerbosityControl Name = "verbosity-control"
)

var all = []Name{
	RichOutput,
	ConfigurationSubsystem,
	InteractiveShell,
	JSONOutput,
	ShellCompletion,
	PluginSystem,
	VerbosityControl,
}

var descriptions = map[Name]string{
	RichOutput:             "styled output; off when color is disabled or the CLI is small and plain",
	ConfigurationSubsystem: "a command named config, config-* or config_*",
	InteractiveShell:       "a command named shell, repl or interactive, or an option named interactive",
	JSONOutput:             "an option named json, or a format/output-format option offering json",
	ShellCompletion:        "a command named completion or completions",
	PluginSystem:           "a command named plugin or plugins",
	VerbosityControl:       "an option named verbose, quiet or debug",
}

// Names returns every feature in a stable order.
func Names() []Name {
	return append([]Name(nil), all...)
}

// Key returns the snake_case spelling used in template contexts.
func (n Name) Key() string {
	return strings.ReplaceAll(string(n), "-", "_")
}

// Description explains what enables the feature.
func (n Name) Description() string {
	return descriptions[n]
}

// Parse looks up a feature by its name or key.
func Parse(s string) (Name, bool) {
	folded := fold(s)
	for _, n := range all {
		if string(n) == folded {
			return n, true
		}
	}
	return "", false
}

// FeatureSet is an immutable assignment of every feature to on or off.
type FeatureSet struct {
	flags map[Name]bool
}

// NewFeatureSet creates a set with the listed features on and all others off.
func NewFeatureSet(enabled ...Name) FeatureSet {
	flags := make(map[Name]bool, len(all))
	for _, n := range all {
		flags[n] = false
	}
	for _, n := range enabled {
		if _, known := flags[n]; known {
			flags[n] = true
		}
	}
	return FeatureSet{flags: flags}
}

// Has reports whether feature n is on.
func (s FeatureSet) Has(n Name) bool {
	return s.flags[n]
}

// Enabled returns the features that are on, in stable order.
func (s FeatureSet) Enabled() []Name {
	var out []Name
	for _, n := range all {
		if s.flags[n] {
			out = append(out, n)
		}
	}
	return out
}

// Map returns a fresh map from every feature key to its state.
func (s FeatureSet) Map() map[string]bool {
	out := make(map[string]bool, len(all))
	for _, n := range all {
		out[n.Key()] = s.flags[n]
	}
	return out
}

// String lists the enabled features.
func (s FeatureSet) String() string {
	enabled := s.Enabled()
	if len(enabled) == 0 {
		return "none"
	}
	names := make([]string, len(enabled))
	for i, n := range enabled {
		names[i] = string(n)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

// fold lower-cases s and treats '_' and '-' alike.
func fold(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-")
}
