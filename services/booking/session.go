package booking

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"spedocity/models"

	"github.com/google/uuid"
)

// InitiateSession creates a new booking session owned by the given user and
// stores it with the configured TTL. When both pickup and dropoff are
// pre-seeded (re-entering the flow from a pre-filled search bar) the wizard
// starts at the service step with both fields already in the draft.
func (s *DefaultBookingSessionService) InitiateSession(ctx context.Context, userID string, preseed *Preseed) (*models.BookingSession, error) {
	now := time.Now()
	session := &models.BookingSession{
		SessionID:   uuid.New().String(),
		UserID:      userID,
		CurrentStep: models.StepPickup,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if preseed != nil {
		pickup := strings.TrimSpace(preseed.Pickup)
		dropoff := strings.TrimSpace(preseed.Dropoff)
		if pickup == "" || dropoff == "" {
			return nil, fmt.Errorf("pre-seeding requires both pickup and dropoff")
		}
		session.Draft.Pickup = pickup
		session.Draft.Dropoff = dropoff
		session.CurrentStep = models.StepService
	}

	if err := s.Store.Save(ctx, session, s.SessionTTL); err != nil {
		return nil, err
	}
	return session, nil
}

// GetSession returns the session so a re-entered screen can redisplay
// previously collected values. Read-only: nothing is recomputed.
func (s *DefaultBookingSessionService) GetSession(ctx context.Context, userID, sessionID string) (*models.BookingSession, error) {
	return s.load(ctx, userID, sessionID)
}

// CompleteStep handles a StepCompleted event: the raw payload is decoded into
// the step's typed variant, merged into the draft through its reducer, and
// the session advances along the forward table. Completing the confirm step
// finalizes the booking: the draft becomes a durable order and the session is
// discarded.
func (s *DefaultBookingSessionService) CompleteStep(ctx context.Context, userID, sessionID string, step models.Step, payload json.RawMessage) (*StepResult, error) {
	session, err := s.load(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	if step != session.CurrentStep {
		return nil, &TransitionError{From: session.CurrentStep, Event: "complete:" + string(step)}
	}

	if step == models.StepConfirm {
		order, err := s.Orders.CreateFromDraft(ctx, userID, session.Draft)
		if err != nil {
			return nil, err
		}
		if err := s.Store.Delete(ctx, sessionID); err != nil {
			return nil, err
		}
		return &StepResult{Completed: true, Order: order}, nil
	}

	p, err := DecodePayload(step, session.Draft, payload)
	if err != nil {
		return nil, err
	}

	next, _, err := Advance(session.CurrentStep, p, &session.Draft, s.Refs)
	if err != nil {
		return nil, err
	}
	session.CurrentStep = next
	session.UpdatedAt = time.Now()

	if err := s.Store.Save(ctx, session, s.SessionTTL); err != nil {
		return nil, err
	}
	return &StepResult{Session: session}, nil
}

// StepBack handles a BackRequested event. The draft is left untouched so
// moving forward again restores prior input; backing out of the first step
// cancels the session.
func (s *DefaultBookingSessionService) StepBack(ctx context.Context, userID, sessionID string) (*StepResult, error) {
	session, err := s.load(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}

	prev, cancelled, err := Back(session.CurrentStep)
	if err != nil {
		return nil, err
	}
	if cancelled {
		if err := s.Store.Delete(ctx, sessionID); err != nil {
			return nil, err
		}
		return &StepResult{Cancelled: true}, nil
	}

	session.CurrentStep = prev
	session.UpdatedAt = time.Now()
	if err := s.Store.Save(ctx, session, s.SessionTTL); err != nil {
		return nil, err
	}
	return &StepResult{Session: session}, nil
}

// CancelSession discards the session and its draft. The draft was never
// persisted, so cancellation is a plain delete.
func (s *DefaultBookingSessionService) CancelSession(ctx context.Context, userID, sessionID string) error {
	if _, err := s.load(ctx, userID, sessionID); err != nil {
		return err
	}
	return s.Store.Delete(ctx, sessionID)
}

// AvailableServices returns the bookable service catalog.
func (s *DefaultBookingSessionService) AvailableServices() []models.ServiceType {
	return Services()
}

// load fetches a session and verifies ownership. A session owned by another
// user is reported as not found.
func (s *DefaultBookingSessionService) load(ctx context.Context, userID, sessionID string) (*models.BookingSession, error) {
	session, err := s.Store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.UserID != userID {
		return nil, ErrSessionNotFound
	}
	return session, nil
}
