package apperror

import (
	"errors"
	"fmt"
)

// Kind classifies an error for the transport layer. Services attach exactly
// one kind to every error they return; handlers map kinds to HTTP statuses
// verbatim and never reinterpret them.
type Kind int

const (
	KindInternal Kind = iota
	KindBadInput
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindBadInput:
		return "BAD_INPUT"
	case KindUnauthorized:
		return "UNAUTHORIZED"
	case KindForbidden:
		return "FORBIDDEN"
	case KindNotFound:
		return "NOT_FOUND"
	case KindConflict:
		return "CONFLICT"
	default:
		return "INTERNAL_ERROR"
	}
}

type Error struct {
	Kind    Kind
	Message string // user-facing message
	Err     error  // wrapped cause, optional
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match two classified errors by kind and message, so
// sentinel values declared with the constructors below behave like stdlib
// sentinels.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Message == t.Message
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(err error, kind Kind, message string) *Error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Message: message, Err: err}
}

func BadInput(message string) *Error  { return New(KindBadInput, message) }
func Forbidden(message string) *Error { return New(KindForbidden, message) }
func NotFound(message string) *Error  { return New(KindNotFound, message) }
func Conflict(message string) *Error  { return New(KindConflict, message) }

func BadInputf(format string, args ...any) *Error {
	return New(KindBadInput, fmt.Sprintf(format, args...))
}
func Conflictf(format string, args ...any) *Error {
	return New(KindConflict, fmt.Sprintf(format, args...))
}

// KindOf extracts the classification of err, walking the wrap chain.
// Unclassified errors report KindInternal.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// MessageOf extracts the user-facing message of err, or a generic fallback
// for unclassified errors so internals never leak to clients.
func MessageOf(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "An unexpected error occurred"
}
