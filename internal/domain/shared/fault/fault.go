// Package fault classifies engine errors so callers can map outcomes
// without string matching. Sentinel errors across the domain packages are
// fault values; errors.Is and errors.As keep working through wrapping.
package fault

import (
	"errors"
	"fmt"
)

type Kind uint8

const (
	Unknown Kind = iota
	NotFound
	Permission
	Validation
	Availability
	State
	Infrastructure
)

func (k Kind) String() string {
	switch k {
	case NotFound:
		return "not_found"
	case Permission:
		return "permission"
	case Validation:
		return "validation"
	case Availability:
		return "availability"
	case State:
		return "state"
	case Infrastructure:
		return "infrastructure"
	default:
		return "unknown"
	}
}

type Error struct {
	kind  Kind
	msg   string
	cause error
}

// New builds a classified error; usable as a package sentinel.
func New(kind Kind, msg string) *Error {
	return &Error{kind: kind, msg: msg}
}

// Wrap classifies an upstream failure, preserving the cause for diagnostics.
func Wrap(kind Kind, msg string, cause error) *Error {
	return &Error{kind: kind, msg: msg, cause: cause}
}

// WithCause keeps the sentinel's kind and message while attaching a cause.
// errors.Is(result, sentinel) holds for the returned error.
func (e *Error) WithCause(cause error) *Error {
	return &Error{kind: e.kind, msg: e.msg, cause: cause}
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.cause)
	}
	return e.msg
}

func (e *Error) Kind() Kind { return e.kind }

func (e *Error) Unwrap() error { return e.cause }

// Is matches another fault with the same kind and message, so sentinels
// survive WithCause decoration.
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.kind == other.kind && e.msg == other.msg
}

// KindOf walks the error chain and returns the first classified kind.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.kind
	}
	return Unknown
}

// IsKind reports whether the error chain carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
