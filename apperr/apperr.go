package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind is the outcome bucket every operation result classifies into.
type Kind int

const (
	KindBadRequest Kind = iota
	KindNotFound
	KindConflict
	KindInternal
)

// Error carries a kind plus a human-readable message. The wrapped cause is
// kept for diagnostics but never serialized to callers.
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.cause }

func BadRequest(msg string) *Error { return &Error{Kind: KindBadRequest, Message: msg} }
func NotFound(msg string) *Error   { return &Error{Kind: KindNotFound, Message: msg} }
func Conflict(msg string) *Error   { return &Error{Kind: KindConflict, Message: msg} }

func Internal(msg string, cause error) *Error {
	return &Error{Kind: KindInternal, Message: msg, cause: cause}
}

// Wrap classifies an arbitrary error, passing through ones already typed.
func Wrap(err error, msg string) *Error {
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	return Internal(msg, err)
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Kind == kind
}

func IsConflict(err error) bool { return IsKind(err, KindConflict) }
func IsNotFound(err error) bool { return IsKind(err, KindNotFound) }

// Status maps an error to the HTTP status the response layer uses. Untyped
// errors are server faults.
func Status(err error) int {
	var ae *Error
	if !errors.As(err, &ae) {
		return http.StatusInternalServerError
	}
	switch ae.Kind {
	case KindBadRequest:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage is what callers see. Internal causes stay server-side.
func PublicMessage(err error) string {
	var ae *Error
	if !errors.As(err, &ae) {
		return "internal server error"
	}
	return ae.Message
}
