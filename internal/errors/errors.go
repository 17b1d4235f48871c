package errors

import "errors"

// Domain is the error domain attached to error details.
const Domain = "github.com/mmynk/splitledger"

// Error is the domain error type with structured metadata.
type Error struct {
	Code     Code              // Machine-readable error kind
	Message  string            // Internal message (for logs)
	Metadata map[string]string // Additional context for message templates
	Cause    error             // Wrapped underlying error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

// Unwrap returns the underlying cause for error chain traversal.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error by code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// New creates a simple domain error with a code and message.
func New(code Code, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// WithMetadata creates a domain error with metadata for message templating.
func WithMetadata(code Code, message string, metadata map[string]string) *Error {
	return &Error{
		Code:     code,
		Message:  message,
		Metadata: metadata,
	}
}

// Wrap creates a domain error that wraps an underlying cause.
func Wrap(code Code, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// GetCode extracts the error code from any error.
// Returns CodeUnknown if the error is not a domain error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeUnknown
}

// IsCode checks if the error has the specified code.
func IsCode(err error, code Code) bool {
	return GetCode(err) == code
}

// GetMetadata extracts metadata from an error if present.
func GetMetadata(err error) map[string]string {
	var e *Error
	if errors.As(err, &e) {
		return e.Metadata
	}
	return nil
}

// Storage wraps a persistence failure. The cause is kept for logs only.
func Storage(op string, cause error) *Error {
	return Wrap(CodeStorage, op, cause)
}

// InvalidArgument reports a malformed request field.
func InvalidArgument(field, reason string) *Error {
	return WithMetadata(CodeInvalidArgument, field+": "+reason, map[string]string{
		"Field":  field,
		"Reason": reason,
	})
}
