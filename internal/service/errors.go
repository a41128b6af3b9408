package service

import "errors"

// Kind classifies a service failure so callers can branch on it without
// parsing messages.
type Kind string

const (
	KindValidation     Kind = "VALIDATION"
	KindConflict       Kind = "CONFLICT"
	KindNotFound       Kind = "NOT_FOUND"
	KindAuthorization  Kind = "AUTHORIZATION"
	KindInvalidState   Kind = "INVALID_STATE"
	KindPartialFailure Kind = "PARTIAL_FAILURE"
)

// Error is the typed failure returned by every service operation. Field
// names the offending input for validation failures.
type Error struct {
	Kind    Kind
	Field   string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Field != "" {
		return e.Field + ": " + e.Message
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func Validation(field, message string) *Error {
	return &Error{Kind: KindValidation, Field: field, Message: message}
}

func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

func NotFound(what string) *Error {
	return &Error{Kind: KindNotFound, Message: what + " not found"}
}

func Unauthorized(message string) *Error {
	return &Error{Kind: KindAuthorization, Message: message}
}

func InvalidState(message string) *Error {
	return &Error{Kind: KindInvalidState, Message: message}
}

// PartialFailure marks a composite operation that committed one side but
// not the other; it must never be collapsed into a plain error.
func PartialFailure(message string, err error) *Error {
	return &Error{Kind: KindPartialFailure, Message: message, Err: err}
}

// KindOf extracts the failure kind, or "" for untyped errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
