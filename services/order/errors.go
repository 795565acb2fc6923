package order

import (
	"errors"
	"fmt"

	"spedocity/models"
)

// ErrOrderNotFound is returned when an order does not exist or belongs to
// another user.
var ErrOrderNotFound = errors.New("order not found")

// ErrIncompleteDraft is returned when a draft reaches confirmation without
// the fields an order needs.
var ErrIncompleteDraft = errors.New("booking draft is incomplete")

// StatusError reports a disallowed order status transition.
type StatusError struct {
	From models.OrderStatus
	To   models.OrderStatus
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("cannot move order from %q to %q", e.From, e.To)
}
