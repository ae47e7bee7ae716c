// Package domainerrors provides coded errors for the document control domain.
//
// Services attach a Code so transports and callers can branch on the failure
// kind without string matching. Stores return sentinel errors
// (pkg/platform/sentinel) and services translate them into coded errors at
// the boundary.
package domainerrors

import (
	"errors"
	"net/http"
)

// Code identifies the kind of a domain error.
type Code string

const (
	// CodeBadRequest covers malformed or incomplete requests at the transport
	// boundary (bad JSON, missing fields).
	CodeBadRequest Code = "bad_request"

	// CodeInvalidInput covers values rejected by domain primitives at parse
	// time (unknown role, unknown meaning).
	CodeInvalidInput Code = "invalid_input"

	// CodeValidation covers inputs that parse but violate declared
	// constraints (minimum lengths, enum membership, duplicate document
	// numbers).
	CodeValidation Code = "validation_failed"

	// CodeMalformed covers stored data that cannot be interpreted, such as a
	// version label that does not parse as major.minor.
	CodeMalformed Code = "malformed_data"

	// CodeUnauthorized means no authenticated principal was supplied.
	CodeUnauthorized Code = "unauthorized"

	// CodeForbidden means the principal lacks the role an action requires.
	CodeForbidden Code = "forbidden"

	CodeNotFound Code = "not_found"
	CodeConflict Code = "conflict"

	// CodeInvariantViolation marks illegal state transitions detected by
	// domain entities.
	CodeInvariantViolation Code = "invariant_violation"

	// CodeStoreFailure means the persistence collaborator failed to read or
	// write. A store failure on the audit path is surfaced to the caller
	// because audit completeness is a correctness requirement.
	CodeStoreFailure Code = "store_failure"

	CodeTimeout  Code = "timeout"
	CodeInternal Code = "internal_error"
)

// Error is a coded domain error. It optionally wraps a cause.
type Error struct {
	Code    Code
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.cause }

// New creates a coded error with a human-readable message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap attaches a code and message to an underlying error.
func Wrap(err error, code Code, message string) *Error {
	return &Error{Code: code, Message: message, cause: err}
}

// HasCode reports whether err carries the given code anywhere in its chain.
func HasCode(err error, code Code) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// CodeOf returns the code carried by err, or CodeInternal when err is not a
// domain error.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// ToHTTPStatus translates a code into the HTTP status the transport layer
// should emit.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeBadRequest, CodeInvalidInput, CodeValidation, CodeMalformed:
		return http.StatusBadRequest
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	case CodeNotFound:
		return http.StatusNotFound
	case CodeConflict, CodeInvariantViolation:
		return http.StatusConflict
	case CodeTimeout:
		return http.StatusGatewayTimeout
	case CodeStoreFailure, CodeInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
