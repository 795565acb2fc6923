package models

import "time"

// BookingSession holds one in-progress booking wizard: the current step plus
// the draft being accumulated. Exactly one draft exists per session.
type BookingSession struct {
	SessionID   string       `json:"sessionId"`
	UserID      string       `json:"userId"`
	CurrentStep Step         `json:"currentStep"`
	Draft       BookingDraft `json:"draft"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}
