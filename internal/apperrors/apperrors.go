package apperrors

import (
	"errors"
	"fmt"
)

// Kind classifies an application failure so handlers can map it to an HTTP
// status without inspecting error strings.
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindNotFound
	KindAuth
	KindConflict
	KindIntegrity
)

// String returns a short name for the kind, used in log lines.
func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindAuth:
		return "auth"
	case KindConflict:
		return "conflict"
	case KindIntegrity:
		return "integrity"
	default:
		return "unknown"
	}
}

// Error is a classified application error. Message is safe to return to the
// client; Err carries the internal cause for logging.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a classified error with a user-facing message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap creates a classified error around an internal cause.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// Validation reports a missing or malformed request field.
func Validation(message string) *Error {
	return New(KindValidation, message)
}

// NotFound reports an absent referenced entity.
func NotFound(message string) *Error {
	return New(KindNotFound, message)
}

// Auth reports an invalid, expired or unrefreshable credential. The message
// must never leak provider-internal detail.
func Auth(message string) *Error {
	return New(KindAuth, message)
}

// Conflict reports an already-satisfied condition such as a duplicate like.
func Conflict(message string) *Error {
	return New(KindConflict, message)
}

// Integrity reports a data-corruption condition such as a post whose author
// row is missing. Never retried.
func Integrity(message string, err error) *Error {
	return Wrap(KindIntegrity, message, err)
}

// KindOf extracts the kind of err, or KindUnknown for unclassified errors.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindUnknown
}

// MessageOf returns the user-facing message of err, or a generic fallback for
// unclassified errors.
func MessageOf(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "Sorry! There has been an internal error."
}
