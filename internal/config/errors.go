package config

import (
	"errors"
	"fmt"
)

// ConfigErrorType represents the type of configuration error.
type ConfigErrorType int

const (
	// ConfigNotFound indicates the configuration file was not found.
	ConfigNotFound ConfigErrorType = iota
	// ConfigInvalid indicates the file has invalid syntax or an unexpected top-level shape.
	ConfigInvalid
	// ConfigValidationFailed indicates tool settings failed validation.
	ConfigValidationFailed
	// ConfigUnsupported indicates a file extension the loader cannot read.
	ConfigUnsupported
)

// String returns the string representation of the error type.
func (t ConfigErrorType) String() string {
	switch t {
	case ConfigNotFound:
		return "NotFound"
	case ConfigInvalid:
		return "Invalid"
	case ConfigValidationFailed:
		return "ValidationFailed"
	case ConfigUnsupported:
		return "Unsupported"
	default:
		return "Unknown"
	}
}

// ConfigError represents a configuration-related error.
type ConfigError struct {
	// Type is the error type.
	Type ConfigErrorType
	// Message is the error message.
	Message string
	// File is the configuration file path.
	File string
	// Field is the configuration field that caused the error.
	Field string
	// Cause is the underlying error if any.
	Cause error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	where := e.File
	if where == "" {
		where = "<settings>"
	}
	msg := fmt.Sprintf("configuration error in %s", where)
	if e.Field != "" {
		msg += fmt.Sprintf(" [field: %s]", e.Field)
	}
	msg += ": " + e.Message
	if e.Cause != nil {
		msg += fmt.Sprintf(": %v", e.Cause)
	}
	return msg
}

// Unwrap returns the underlying cause error.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// NewConfigError creates a new ConfigError.
func NewConfigError(typ ConfigErrorType, file, message string) *ConfigError {
	return &ConfigError{
		Type:    typ,
		File:    file,
		Message: message,
	}
}

// NewConfigErrorWithField creates a new ConfigError with a field name.
func NewConfigErrorWithField(typ ConfigErrorType, file, field, message string) *ConfigError {
	return &ConfigError{
		Type:    typ,
		File:    file,
		Field:   field,
		Message: message,
	}
}

// NewConfigErrorWithCause creates a new ConfigError with a cause.
func NewConfigErrorWithCause(typ ConfigErrorType, file, message string, cause error) *ConfigError {
	return &ConfigError{
		Type:    typ,
		File:    file,
		Message: message,
		Cause:   cause,
	}
}

// IsNotFound reports whether err is a ConfigError of type ConfigNotFound.
func IsNotFound(err error) bool {
	var cfgErr *ConfigError
	return errors.As(err, &cfgErr) && cfgErr.Type == ConfigNotFound
}
