package input

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidEventKind is returned when a key is requested from an event that is not a key press or release
	ErrInvalidEventKind = errors.New("cannot get key from non-key event")

	// ErrNoDisplay is returned when no X display is configured
	ErrNoDisplay = errors.New("no X display configured")
)

// EventKindError reports the kind of a rejected platform event.
// It matches ErrInvalidEventKind with errors.Is.
type EventKindError struct {
	Kind interface{}
}

func (e *EventKindError) Error() string {
	return fmt.Sprintf("%v (kind %v)", ErrInvalidEventKind, e.Kind)
}

func (e *EventKindError) Is(target error) bool {
	return target == ErrInvalidEventKind
}
