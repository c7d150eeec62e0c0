// Package ir defines the intermediate representation every renderer
// consumes, and the builder that lowers a validated configuration into it.
//
// An IR is frozen once Build returns: no field is modified afterwards, and
// it may be shared read-only between goroutines rendering different targets.
package ir

import (
	"strings"

	"github.com/tacogips/clismith/internal/canon"
)

// Kind classifies a command by whether it has subcommands.
type Kind string

const (
	// KindLeaf is a command without subcommands.
	KindLeaf Kind = "leaf"
	// KindGroup is a command with at least one subcommand.
	KindGroup Kind = "group"
)

// IR is the complete intermediate representation of one configuration.
type IR struct {
	Project  Project
	Metadata Metadata
	CLI      CLI
	// Commands holds every command of the tree in depth-first pre-order.
	Commands []*Command
}

// Project carries the identity of the generated program.
type Project struct {
	// Name is the human-readable display name.
	Name        string
	PackageName string
	CommandName string
	Version     string
	Description string
	Author      string
	License     string
	// Language is the target named by the configuration.
	Language string
}

// Metadata records provenance. It never influences generated behavior.
type Metadata struct {
	// SourceName is the configuration file the IR was built from.
	SourceName string
	// GeneratorVersion identifies the generator build, e.g. "clismith/0.3.0".
	GeneratorVersion string
}

// CLI is the command surface.
type CLI struct {
	Name          string
	Tagline       string
	Version       string
	Color         bool
	GlobalOptions []Option
	// Commands holds the top-level commands in declaration order.
	Commands []*Command
}

// Command is one node of the command tree.
type Command struct {
	Name        string
	Description string
	Arguments   []Argument
	Options     []Option
	Subcommands []*Command
	// Path lists the command names from the root to this command.
	Path []string
	// HookName is the target-neutral dispatch key, e.g. "on_config_get".
	HookName  string
	Kind      Kind
	IsDefault bool
	Hidden    bool
	Aliases   []string
}

// Argument is a positional argument.
type Argument struct {
	Name        string
	Description string
	Type        canon.Type
	Required    bool
	Variadic    bool
	Choices     []string
}

// Option is a named option or switch.
type Option struct {
	Name        string
	Short       string
	Description string
	Type        canon.Type
	IsFlag      bool
	// Default holds plain values (string, bool, int, float64,
	// []interface{}, map[string]interface{}) when HasDefault is set.
	Default    interface{}
	HasDefault bool
	Choices    []string
	Multiple   bool
}

// IsGroup reports whether c has subcommands.
func (c *Command) IsGroup() bool {
	return c.Kind == KindGroup
}

// IsLeaf reports whether c has no subcommands.
func (c *Command) IsLeaf() bool {
	return c.Kind == KindLeaf
}

// HasAction reports whether invoking c runs user code: always for leaves,
// and for groups that declare arguments or options of their own.
func (c *Command) HasAction() bool {
	return c.IsLeaf() || len(c.Arguments) > 0 || len(c.Options) > 0
}

// Depth returns the nesting depth; top-level commands have depth 1.
func (c *Command) Depth() int {
	return len(c.Path)
}

// PathString joins the path the way a user types it, e.g. "config get".
func (c *Command) PathString() string {
	return strings.Join(c.Path, " ")
}

// Lookup returns the command at path, or nil.
func (r *IR) Lookup(path ...string) *Command {
	for _, c := range r.Commands {
		if equalPath(c.Path, path) {
			return c
		}
	}
	return nil
}

// DefaultCommand returns the command marked default, or nil.
func (r *IR) DefaultCommand() *Command {
	for _, c := range r.Commands {
		if c.IsDefault {
			return c
		}
	}
	return nil
}

// Options returns the global options followed by the options of every
// command, in pre-order.
func (r *IR) Options() []Option {
	out := append([]Option(nil), r.CLI.GlobalOptions...)
	for _, c := range r.Commands {
		out = append(out, c.Options...)
	}
	return out
}

func equalPath(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
