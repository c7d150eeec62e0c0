package ir

import (
	"errors"
	"fmt"
)

// BuildInvariantError reports a validated configuration that cannot be
// lowered into a well-formed IR. It is always a generator bug, never a
// problem with the user's document.
type BuildInvariantError struct {
	// Path is the command path, joined with spaces, or empty for the root.
	Path string
	// Reason describes the violated invariant.
	Reason string
}

// Error implements the error interface.
func (e *BuildInvariantError) Error() string {
	where := e.Path
	if where == "" {
		where = "<root>"
	}
	return fmt.Sprintf("internal error building IR at %s: %s (please report this as a clismith bug)", where, e.Reason)
}

// IsBuildInvariantError reports whether err is a BuildInvariantError.
func IsBuildInvariantError(err error) bool {
	var target *BuildInvariantError
	return errors.As(err, &target)
}

func newInvariantError(path, format string, args ...interface{}) *BuildInvariantError {
	return &BuildInvariantError{Path: path, Reason: fmt.Sprintf(format, args...)}
}
