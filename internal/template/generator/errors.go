package generator

import "fmt"

// GeneratorErrorType categorizes generator errors.
type GeneratorErrorType int

const (
	// GeneratorWriteFailed indicates a file write operation failed.
	GeneratorWriteFailed GeneratorErrorType = iota
	// GeneratorRenderFailed indicates a template failed to parse or execute.
	GeneratorRenderFailed
	// GeneratorPathError indicates an invalid or unsafe output path.
	GeneratorPathError
)

// String returns the error type name.
func (t GeneratorErrorType) String() string {
	switch t {
	case GeneratorWriteFailed:
		return "write failed"
	case GeneratorRenderFailed:
		return "render failed"
	case GeneratorPathError:
		return "invalid path"
	default:
		return "unknown"
	}
}

// GeneratorError is a failure while rendering or writing one file.
type GeneratorError struct {
	Type    GeneratorErrorType
	Message string
	// Subject is the component name for render failures and the output
	// path otherwise.
	Subject string
	Cause   error
}

func (e *GeneratorError) Error() string {
	msg := e.Type.String() + ": " + e.Message
	if e.Subject != "" {
		msg = fmt.Sprintf("%s: %s: %s", e.Type, e.Subject, e.Message)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *GeneratorError) Unwrap() error {
	return e.Cause
}

func newGeneratorError(typ GeneratorErrorType, message, subject string, cause error) *GeneratorError {
	return &GeneratorError{Type: typ, Message: message, Subject: subject, Cause: cause}
}
