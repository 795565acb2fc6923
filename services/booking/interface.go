package booking

import (
	"context"
	"encoding/json"
	"time"

	"spedocity/models"
)

// Preseed optionally pre-fills pickup and dropoff when a session starts,
// letting the wizard begin at the service step. Both fields are required
// together.
type Preseed struct {
	Pickup  string `json:"pickup"`
	Dropoff string `json:"dropoff"`
}

// StepResult is the outcome of a step-completed or back-requested event.
type StepResult struct {
	Session   *models.BookingSession
	Completed bool
	Cancelled bool
	Order     *models.Order
}

// OrderCreator turns a completed draft into a durable order. Implemented by
// the order service.
type OrderCreator interface {
	CreateFromDraft(ctx context.Context, userID string, draft models.BookingDraft) (*models.Order, error)
}

// BookingSessionService drives the booking wizard: one session per booking
// attempt, advanced by step-completed events and rewound by back-requested
// events, with all transition logic owned centrally here rather than by the
// screens.
type BookingSessionService interface {
	InitiateSession(ctx context.Context, userID string, preseed *Preseed) (*models.BookingSession, error)
	GetSession(ctx context.Context, userID, sessionID string) (*models.BookingSession, error)
	CompleteStep(ctx context.Context, userID, sessionID string, step models.Step, payload json.RawMessage) (*StepResult, error)
	StepBack(ctx context.Context, userID, sessionID string) (*StepResult, error)
	CancelSession(ctx context.Context, userID, sessionID string) error
	AvailableServices() []models.ServiceType
}

// DefaultBookingSessionService implements BookingSessionService.
type DefaultBookingSessionService struct {
	Store      SessionStore
	Refs       ReferenceGenerator
	Orders     OrderCreator
	SessionTTL time.Duration
}
