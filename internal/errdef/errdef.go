// Package errdef defines the error kinds the store and its front ends agree on.
//
// Each kind wraps a formatted error so the message reads naturally while callers
// can still branch with the Is* helpers through any amount of %w wrapping.
package errdef

import (
	"errors"
	"fmt"
)

// NewBadRequest reports input that failed validation.
func NewBadRequest(format string, a ...any) error {
	return badRequest{fmt.Errorf(format, a...)}
}

type badRequest struct{ error }

func (e badRequest) Unwrap() error { return e.error }

func IsBadRequest(err error) bool {
	var e badRequest
	return errors.As(err, &e)
}

// NewNotFound reports a record that does not exist.
func NewNotFound(format string, a ...any) error {
	return notFound{fmt.Errorf(format, a...)}
}

type notFound struct{ error }

func (e notFound) Unwrap() error { return e.error }

func IsNotFound(err error) bool {
	var e notFound
	return errors.As(err, &e)
}

// NewDuplicated reports a unique key that is already taken.
func NewDuplicated(format string, a ...any) error {
	return duplicated{fmt.Errorf(format, a...)}
}

type duplicated struct{ error }

func (e duplicated) Unwrap() error { return e.error }

func IsDuplicated(err error) bool {
	var e duplicated
	return errors.As(err, &e)
}

// NewUnauthorized reports rejected credentials.
func NewUnauthorized(format string, a ...any) error {
	return unauthorized{fmt.Errorf(format, a...)}
}

type unauthorized struct{ error }

func (e unauthorized) Unwrap() error { return e.error }

func IsUnauthorized(err error) bool {
	var e unauthorized
	return errors.As(err, &e)
}

// NewConflict reports a change that the current state does not allow.
func NewConflict(format string, a ...any) error {
	return conflict{fmt.Errorf(format, a...)}
}

type conflict struct{ error }

func (e conflict) Unwrap() error { return e.error }

func IsConflict(err error) bool {
	var e conflict
	return errors.As(err, &e)
}

// Kind names the kind of err, or "internal" when it carries none.
func Kind(err error) string {
	switch {
	case IsBadRequest(err):
		return "bad_request"
	case IsNotFound(err):
		return "not_found"
	case IsDuplicated(err):
		return "duplicated"
	case IsUnauthorized(err):
		return "unauthorized"
	case IsConflict(err):
		return "conflict"
	default:
		return "internal"
	}
}
