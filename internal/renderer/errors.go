package renderer

import (
	"fmt"
	"strings"
)

// RenderContextError reports an IR element the target cannot express. It
// indicates a gap in the generator's target tables, not a user error.
type RenderContextError struct {
	// Target is the target name.
	Target string
	// CommandPath is the offending command path joined with spaces, or
	// "<global>" for global options.
	CommandPath string
	// Reason describes the gap.
	Reason string
}

// Error implements the error interface.
func (e *RenderContextError) Error() string {
	return fmt.Sprintf("%s renderer: command %q: %s", e.Target, e.CommandPath, e.Reason)
}

// UnknownTargetError reports a lookup of a target with no renderer.
type UnknownTargetError struct {
	Name  string
	Known []string
}

// Error implements the error interface.
func (e *UnknownTargetError) Error() string {
	return fmt.Sprintf("unknown target %q (available: %s)", e.Name, strings.Join(e.Known, ", "))
}

const globalPath = "<global>"

func newContextError(targetName, commandPath, format string, args ...interface{}) *RenderContextError {
	if commandPath == "" {
		commandPath = globalPath
	}
	return &RenderContextError{Target: targetName, CommandPath: commandPath, Reason: fmt.Sprintf(format, args...)}
}
