// Package errs defines the tagged error kinds the stores return so
// callers can map failures to API responses without inspecting
// driver-level errors.
package errs

import (
	"errors"
	"fmt"
)

// Kind classifies a domain error.
type Kind int

const (
	// KindValidation marks a missing required field or an enum value
	// outside its domain.
	KindValidation Kind = iota + 1

	// KindNotFound marks a record that does not exist or belongs to a
	// different advocate. The two cases are intentionally
	// indistinguishable so one tenant cannot probe another's ids.
	KindNotFound

	// KindConflict marks a duplicate unique field on create.
	KindConflict

	// KindCascadeIncomplete marks a client deletion whose case removal
	// did not fully complete.
	KindCascadeIncomplete
)

// Error carries a kind, a caller-safe message, and an optional cause.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Validation returns a KindValidation error with a formatted message.
func Validation(format string, args ...any) error {
	return &Error{Kind: KindValidation, Msg: fmt.Sprintf(format, args...)}
}

// NotFound returns a KindNotFound error.
func NotFound(msg string) error {
	return &Error{Kind: KindNotFound, Msg: msg}
}

// Conflict returns a KindConflict error.
func Conflict(msg string) error {
	return &Error{Kind: KindConflict, Msg: msg}
}

// CascadeIncomplete returns a KindCascadeIncomplete error wrapping the
// underlying failure.
func CascadeIncomplete(msg string, cause error) error {
	return &Error{Kind: KindCascadeIncomplete, Msg: msg, Err: cause}
}

// KindOf returns the kind of err, or 0 if err carries no kind.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

func IsValidation(err error) bool { return KindOf(err) == KindValidation }
func IsNotFound(err error) bool   { return KindOf(err) == KindNotFound }
func IsConflict(err error) bool   { return KindOf(err) == KindConflict }

// IsCascadeIncomplete reports whether err marks a partial cascade delete.
func IsCascadeIncomplete(err error) bool { return KindOf(err) == KindCascadeIncomplete }
