// Package schema validates raw configuration documents and produces the
// strongly typed Config consumed by the rest of the pipeline.
//
// Validation runs in two passes over a normalized copy of the input. The
// structural pass checks shape and primitive types against an embedded JSON
// Schema. The semantic pass fills documented defaults, then checks names,
// uniqueness, type spellings and cross-field rules. Every problem from both
// passes is reported in one SchemaErrors batch.
package schema

import "github.com/tacogips/clismith/internal/canon"

// Default values filled for omitted fields.
const (
	DefaultVersion = "0.1.0"
	DefaultLicense = "MIT"
)

// Config is a validated configuration. Every field is present, defaults are
// filled and types are canonical. A Config is never modified after Validate
// returns it.
type Config struct {
	PackageName string `json:"package_name" yaml:"package_name"`
	CommandName string `json:"command_name" yaml:"command_name"`
	DisplayName string `json:"display_name" yaml:"display_name"`
	Description string `json:"description" yaml:"description"`
	// Language is the lower-cased target name.
	Language string `json:"language" yaml:"language"`
	Version  string `json:"version" yaml:"version"`
	Author   string `json:"author" yaml:"author"`
	License  string `json:"license" yaml:"license"`
	CLI      CLI    `json:"cli" yaml:"cli"`
}

// CLI is the command surface of the generated program.
type CLI struct {
	Name    string `json:"name" yaml:"name"`
	Tagline string `json:"tagline" yaml:"tagline"`
	Version string `json:"version" yaml:"version"`
	// Color is false only when the document explicitly disables color output.
	Color    bool      `json:"color" yaml:"color"`
	Options  []Option  `json:"options" yaml:"options"`
	Commands []Command `json:"commands" yaml:"commands"`
}

// Command is a command definition. Subcommands keep declaration order.
type Command struct {
	Name        string     `json:"name" yaml:"name"`
	Description string     `json:"description" yaml:"description"`
	Default     bool       `json:"default" yaml:"default"`
	Hidden      bool       `json:"hidden" yaml:"hidden"`
	Aliases     []string   `json:"aliases" yaml:"aliases"`
	Arguments   []Argument `json:"args" yaml:"args"`
	Options     []Option   `json:"options" yaml:"options"`
	Subcommands []Command  `json:"subcommands" yaml:"subcommands"`
}

// Argument is a positional argument.
type Argument struct {
	Name        string     `json:"name" yaml:"name"`
	Description string     `json:"description" yaml:"description"`
	Type        canon.Type `json:"type" yaml:"type"`
	Required    bool       `json:"required" yaml:"required"`
	Variadic    bool       `json:"variadic" yaml:"variadic"`
	Choices     []string   `json:"choices,omitempty" yaml:"choices,omitempty"`
}

// Option is a named option or boolean switch.
type Option struct {
	Name        string     `json:"name" yaml:"name"`
	Short       string     `json:"short,omitempty" yaml:"short,omitempty"`
	Description string     `json:"description" yaml:"description"`
	Type        canon.Type `json:"type" yaml:"type"`
	// IsFlag marks a boolean switch that takes no value.
	IsFlag bool `json:"flag" yaml:"flag"`
	// Default is meaningful only when HasDefault is set. Scalars are
	// string, bool, int or float64; lists are []interface{}.
	Default    interface{} `json:"default,omitempty" yaml:"default,omitempty"`
	HasDefault bool        `json:"-" yaml:"-"`
	Choices    []string    `json:"choices,omitempty" yaml:"choices,omitempty"`
	Multiple   bool        `json:"multiple" yaml:"multiple"`
}

// HasSubcommands reports whether c is a group.
func (c *Command) HasSubcommands() bool {
	return len(c.Subcommands) > 0
}

// Walk visits every command of the CLI depth-first in declaration order.
// path holds the names from the root to the visited command.
func (c *CLI) Walk(fn func(cmd *Command, path []string)) {
	var walk func(cmds []Command, prefix []string)
	walk = func(cmds []Command, prefix []string) {
		for i := range cmds {
			path := append(prefix[:len(prefix):len(prefix)], cmds[i].Name)
			fn(&cmds[i], path)
			walk(cmds[i].Subcommands, path)
		}
	}
	walk(c.Commands, nil)
}

// CountCommands returns the number of commands in the whole tree.
func (c *CLI) CountCommands() int {
	n := 0
	c.Walk(func(*Command, []string) { n++ })
	return n
}
