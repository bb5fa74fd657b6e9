// Package goerror defines the structured error carried from use cases to the
// transport layer.
package goerror

import (
	"fmt"
	"net/http"
)

// Type classifies errors into high-level buckets used by the application.
type Type int

const (
	// TypeServer represents server-side failures.
	TypeServer Type = iota
	// TypeBusiness represents business rule violations.
	TypeBusiness
	// TypeValidation represents input validation failures.
	TypeValidation
)

// String returns the string representation of the error type.
func (t Type) String() string {
	switch t {
	case TypeValidation:
		return "ERROR_TYPE_VALIDATION"
	case TypeBusiness:
		return "ERROR_TYPE_BUSINESS"
	case TypeServer:
		return "ERROR_TYPE_SERVER"
	default:
		return "ERROR_TYPE_UNKNOWN"
	}
}

// Code is a stable identifier used for mapping errors to HTTP status codes.
type Code int

const (
	// CodeInternal represents an internal or unspecified error.
	CodeInternal Code = iota
	// CodeInvalidFormat indicates an unparseable request.
	CodeInvalidFormat
	// CodeInvalidInput indicates a well-formed request with invalid values.
	CodeInvalidInput
	// CodeNotFound indicates a missing resource.
	CodeNotFound
	// CodeUnavailable indicates a dependency is temporarily unreachable.
	CodeUnavailable
)

// String returns the string representation of the error code.
func (c Code) String() string {
	switch c {
	case CodeInvalidFormat:
		return "ERROR_CODE_INVALID_FORMAT"
	case CodeInvalidInput:
		return "ERROR_CODE_INVALID_INPUT"
	case CodeNotFound:
		return "ERROR_CODE_NOT_FOUND"
	case CodeUnavailable:
		return "ERROR_CODE_UNAVAILABLE"
	default:
		return "ERROR_CODE_INTERNAL"
	}
}

// Error is a structured error used across the application.
//
// It can wrap an underlying error while also carrying a user-facing message,
// a high-level type, a stable error code and optional per-field messages.
type Error struct {
	err     error
	msg     string
	errType Type
	code    Code
	fields  map[string]string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.err != nil {
		return e.err.Error()
	}
	if e.msg != "" {
		return e.msg
	}

	switch e.errType {
	case TypeValidation:
		return "Validation violation"
	case TypeBusiness:
		return "Logical business not meet with requirement"
	default:
		return "Internal error"
	}
}

// String returns a verbose representation of the error for debugging/logging.
func (e *Error) String() string {
	return fmt.Sprintf("Error Type: %s, Code: %s, Message: %s, Underlying Error: %v",
		e.errType, e.code, e.msg, e.err)
}

// Msg returns the user-facing error message, if set.
func (e *Error) Msg() string { return e.msg }

// Type returns the high-level error type.
func (e *Error) Type() Type { return e.errType }

// Code returns the stable error code.
func (e *Error) Code() Code { return e.code }

// Fields returns per-field validation messages, if any.
func (e *Error) Fields() map[string]string { return e.fields }

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error { return e.err }

// StatusCode maps the error code to an HTTP status code.
func (e *Error) StatusCode() int {
	switch e.code {
	case CodeInvalidFormat:
		return http.StatusBadRequest
	case CodeInvalidInput:
		return http.StatusUnprocessableEntity
	case CodeNotFound:
		return http.StatusNotFound
	case CodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// NewServer wraps err as an internal server error.
func NewServer(err error) error {
	return &Error{err: err, msg: "Internal server error", errType: TypeServer, code: CodeInternal}
}

// NewBusiness creates a business-rule error with the specified message and code.
func NewBusiness(msg string, code Code) error {
	return &Error{msg: msg, errType: TypeBusiness, code: code}
}

// NewInvalidInput creates a validation error.
//
// When err is non-nil it is wrapped (typically a validator error that carries
// its own field map). Otherwise kv is read as field/message pairs; an odd
// number of elements degrades to an invalid-format error.
func NewInvalidInput(err error, kv ...string) error {
	if err != nil {
		return &Error{err: err, msg: "Validation error", errType: TypeValidation, code: CodeInvalidInput}
	}

	if len(kv)%2 != 0 {
		return NewInvalidFormat()
	}

	fields := make(map[string]string, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		fields[kv[i]] = kv[i+1]
	}

	return &Error{msg: "Validation error", errType: TypeValidation, code: CodeInvalidInput, fields: fields}
}

// NewInvalidFormat creates a validation error for an unparseable request.
func NewInvalidFormat(msgs ...string) error {
	msg := "Invalid request body"
	if len(msgs) > 0 && msgs[0] != "" {
		msg = msgs[0]
	}

	return &Error{msg: msg, errType: TypeValidation, code: CodeInvalidFormat}
}
