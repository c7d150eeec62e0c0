package app

import "fmt"

// AppErrorType represents the type of application error.
type AppErrorType int

const (
	// LoadFailed indicates a configuration document could not be loaded.
	LoadFailed AppErrorType = iota
	// GenerateFailed indicates files could not be written.
	GenerateFailed
	// InitFailed indicates a starter document could not be created.
	InitFailed
	// WatchFailed indicates the file watcher could not be set up.
	WatchFailed
	// ValidationFailed indicates invalid workflow options.
	ValidationFailed
)

// String returns the error type name.
func (t AppErrorType) String() string {
	switch t {
	case LoadFailed:
		return "load failed"
	case GenerateFailed:
		return "generate failed"
	case InitFailed:
		return "init failed"
	case WatchFailed:
		return "watch failed"
	case ValidationFailed:
		return "invalid options"
	default:
		return "unknown"
	}
}

// AppError represents a workflow I/O failure. Errors raised by the pipeline
// itself (schema, build, render, missing component) are never wrapped.
type AppError struct {
	// Type is the error type.
	Type AppErrorType
	// Message is the error message.
	Message string
	// Cause is the underlying error.
	Cause error
}

// Error returns the error message.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewAppError creates a new AppError.
func NewAppError(errType AppErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
	}
}

// NewLoadError creates a load error.
func NewLoadError(message string, cause error) *AppError {
	return NewAppError(LoadFailed, message, cause)
}

// NewGenerateError creates a generate error.
func NewGenerateError(message string, cause error) *AppError {
	return NewAppError(GenerateFailed, message, cause)
}

// NewInitError creates an init error.
func NewInitError(message string, cause error) *AppError {
	return NewAppError(InitFailed, message, cause)
}

// NewWatchError creates a watch error.
func NewWatchError(message string, cause error) *AppError {
	return NewAppError(WatchFailed, message, cause)
}

// NewValidationError creates an options validation error.
func NewValidationError(message string, cause error) *AppError {
	return NewAppError(ValidationFailed, message, cause)
}
