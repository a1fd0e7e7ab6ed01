package fsmx

import (
	"errors"
	"fmt"
)

var (
	// ErrConfigMissing is returned by New when no config is given.
	ErrConfigMissing = errors.New("config is not provided")
	// ErrUnknownState matches every *UnknownStateError.
	ErrUnknownState = errors.New("state doesn't exist")
	// ErrUnknownEvent matches every *UnknownEventError.
	ErrUnknownEvent = errors.New("event doesn't exist")
	// ErrInvalidConfig wraps failures reported by Config.Validate.
	ErrInvalidConfig = errors.New("invalid config")
)

// UnknownStateError reports a state change toward a name missing from the
// state table. It matches ErrUnknownState under errors.Is.
type UnknownStateError struct {
	State string
}

func (e *UnknownStateError) Error() string {
	return fmt.Sprintf("state %q doesn't exist", e.State)
}

func (e *UnknownStateError) Is(target error) bool {
	return target == ErrUnknownState
}

// UnknownEventError reports an event the active state has no transition for.
// State may itself be undefined when the machine was built with an unknown
// initial state. It matches ErrUnknownEvent under errors.Is.
type UnknownEventError struct {
	State string
	Event string
}

func (e *UnknownEventError) Error() string {
	return fmt.Sprintf("event %q doesn't exist in state %q", e.Event, e.State)
}

func (e *UnknownEventError) Is(target error) bool {
	return target == ErrUnknownEvent
}

// IsUnknownStateError reports whether err is or wraps an *UnknownStateError.
func IsUnknownStateError(err error) bool {
	var e *UnknownStateError
	return errors.As(err, &e)
}

// IsUnknownEventError reports whether err is or wraps an *UnknownEventError.
func IsUnknownEventError(err error) bool {
	var e *UnknownEventError
	return errors.As(err, &e)
}
