package model

import (
	"errors"
	"fmt"
)

var (
	// ErrEmpty is returned when raw YAML input is blank.
	ErrEmpty = errors.New("no YAML provided")
	// ErrNotMapping is returned when raw YAML does not decode to a mapping.
	ErrNotMapping = errors.New("YAML must be a mapping (key: value)")
	// ErrUnknownType is returned for a type tag outside the known variants.
	ErrUnknownType = errors.New("unknown type")
	// ErrMissingPayload is returned when a record lacks the fields its type requires.
	ErrMissingPayload = errors.New("missing payload for type")
)

// FormatError reports malformed record input. The in-memory model is never
// changed by an input that produced a FormatError.
type FormatError struct {
	Entity string
	Key    string
	Err    error
}

func (e *FormatError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("%s YAML error: %s: %v", e.Entity, e.Key, e.Err)
	}
	return fmt.Sprintf("%s YAML error: %v", e.Entity, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }
