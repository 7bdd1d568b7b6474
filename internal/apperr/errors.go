package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind is the closed set of failure categories the API reports.
type Kind string

const (
	KindValidation   Kind = "validation"
	KindUnauthorized Kind = "unauthorized"
	KindForbidden    Kind = "forbidden"
	KindNotFound     Kind = "not_found"
	KindConflict     Kind = "conflict"
	KindUnexpected   Kind = "unexpected"
)

// Error carries a taxonomy kind and a client-safe message. For unexpected
// errors the wrapped cause keeps full detail for logging; the message shown
// to the client stays generic.
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// Is matches two taxonomy errors by kind, so sentinel-style comparisons
// like errors.Is(err, apperr.NotFound("")) work in tests and stores.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Kind == t.Kind
	}
	return false
}

func Validation(msg string) *Error   { return &Error{Kind: KindValidation, Message: msg} }
func Unauthorized(msg string) *Error { return &Error{Kind: KindUnauthorized, Message: msg} }
func Forbidden(msg string) *Error    { return &Error{Kind: KindForbidden, Message: msg} }
func NotFound(msg string) *Error     { return &Error{Kind: KindNotFound, Message: msg} }
func Conflict(msg string) *Error     { return &Error{Kind: KindConflict, Message: msg} }

// Unexpected wraps a storage/codec failure. The cause is for logs only;
// clients see the generic message.
func Unexpected(cause error) *Error {
	return &Error{Kind: KindUnexpected, Message: "unexpected server error", cause: cause}
}

// From normalizes any error to a taxonomy member. Unknown errors become
// unexpected.
func From(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Unexpected(err)
}

// Status maps a taxonomy kind to its HTTP status code.
func Status(err error) int {
	switch From(err).Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
