package booking

import (
	"errors"
	"fmt"

	"spedocity/models"
)

// ErrSessionNotFound is returned when a booking session does not exist, has
// expired, or belongs to another user.
var ErrSessionNotFound = errors.New("booking session not found or expired")

// TransitionError reports an event the sequencer has no transition for.
type TransitionError struct {
	From  models.Step
	Event string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("no %s transition from step %q", e.Event, e.From)
}
