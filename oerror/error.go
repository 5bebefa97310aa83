package oerror

import (
	"errors"
	"fmt"
)

var (
	ErrMissingCaster = errors.New("missing physics caster")
	ErrMissingMover  = errors.New("missing capsule mover")
	ErrMissingCamera = errors.New("missing camera transform")
	ErrEmptyMask     = errors.New("empty casting mask")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// LocomotionError is an error raised by the locomotion controller. It may wrap one of the sentinel
// errors above so callers can match it with errors.Is.
type LocomotionError struct {
	Err     string
	wrapped error
}

// New returns a new LocomotionError formatted with the given arguments.
func New(format string, args ...any) *LocomotionError {
	return &LocomotionError{Err: fmt.Sprintf(format, args...)}
}

// Wrap returns a new LocomotionError that wraps err and carries the given message.
func Wrap(err error, msg string) *LocomotionError {
	return &LocomotionError{Err: msg, wrapped: err}
}

func (e *LocomotionError) Error() string {
	if e.wrapped != nil {
		return e.Err + ": " + e.wrapped.Error()
	}
	return e.Err
}

func (e *LocomotionError) Unwrap() error {
	return e.wrapped
}
