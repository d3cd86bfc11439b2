package apperr

import "fmt"

// Code classifies an application error so the API boundary can map it to an
// HTTP status without inspecting message text.
type Code int

const (
	CodeNotFound     Code = iota + 1 // Missing entity
	CodeConflict                     // Uniqueness or business-rule violation
	CodeValidation                   // Malformed input, aggregated per field
	CodeUnauthorized                 // Authentication failure
)

// Error is a typed application error raised by the service layer.
type Error struct {
	Code    Code
	Message string
	// Fields maps field name to messages for validation errors; nil otherwise.
	Fields map[string][]string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// NotFound reports a missing entity.
func NotFound(format string, args ...any) *Error {
	return &Error{Code: CodeNotFound, Message: fmt.Sprintf(format, args...)}
}

// Conflict reports a uniqueness or business-rule violation.
func Conflict(format string, args ...any) *Error {
	return &Error{Code: CodeConflict, Message: fmt.Sprintf(format, args...)}
}

// Unauthorized reports an authentication failure.
func Unauthorized(format string, args ...any) *Error {
	return &Error{Code: CodeUnauthorized, Message: fmt.Sprintf(format, args...)}
}

// Validation reports malformed input with per-field messages.
func Validation(fields map[string][]string) *Error {
	return &Error{Code: CodeValidation, Message: "validation failed", Fields: fields}
}

// ValidationMsg reports a single-field validation failure.
func ValidationMsg(field, msg string) *Error {
	return Validation(map[string][]string{field: {msg}})
}
