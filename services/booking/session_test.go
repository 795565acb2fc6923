package booking

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"spedocity/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memorySessionStore struct {
	sessions map[string]*models.BookingSession
}

func newMemorySessionStore() *memorySessionStore {
	return &memorySessionStore{sessions: make(map[string]*models.BookingSession)}
}

func (s *memorySessionStore) Save(ctx context.Context, session *models.BookingSession, ttl time.Duration) error {
	copied := *session
	s.sessions[session.SessionID] = &copied
	return nil
}

func (s *memorySessionStore) Get(ctx context.Context, sessionID string) (*models.BookingSession, error) {
	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	copied := *session
	return &copied, nil
}

func (s *memorySessionStore) Delete(ctx context.Context, sessionID string) error {
	delete(s.sessions, sessionID)
	return nil
}

type fakeOrderCreator struct {
	created []models.BookingDraft
}

func (f *fakeOrderCreator) CreateFromDraft(ctx context.Context, userID string, draft models.BookingDraft) (*models.Order, error) {
	f.created = append(f.created, draft)
	return &models.Order{
		ID:         "order-1",
		UserID:     userID,
		BookingRef: draft.BookingID,
		Status:     models.OrderCreated,
	}, nil
}

func newTestService(store SessionStore, orders OrderCreator) *DefaultBookingSessionService {
	return &DefaultBookingSessionService{
		Store:      store,
		Refs:       fixedRefGenerator{ref: "SPD123"},
		Orders:     orders,
		SessionTTL: 30 * time.Minute,
	}
}

func mustJSON(t *testing.T, v interface{}) json.RawMessage {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return b
}

func TestInitiateSessionStartsAtPickup(t *testing.T) {
	svc := newTestService(newMemorySessionStore(), &fakeOrderCreator{})

	session, err := svc.InitiateSession(context.Background(), "user-1", nil)
	require.NoError(t, err)
	assert.Equal(t, models.StepPickup, session.CurrentStep)
	assert.NotEmpty(t, session.SessionID)
	assert.Equal(t, "user-1", session.UserID)
}

func TestInitiateSessionPreseed(t *testing.T) {
	svc := newTestService(newMemorySessionStore(), &fakeOrderCreator{})

	t.Run("both addresses jump to service step", func(t *testing.T) {
		session, err := svc.InitiateSession(context.Background(), "user-1", &Preseed{
			Pickup:  "12 MG Road",
			Dropoff: "4 Church Street",
		})
		require.NoError(t, err)
		assert.Equal(t, models.StepService, session.CurrentStep)
		assert.Equal(t, "12 MG Road", session.Draft.Pickup)
		assert.Equal(t, "4 Church Street", session.Draft.Dropoff)
	})

	t.Run("partial preseed is rejected", func(t *testing.T) {
		_, err := svc.InitiateSession(context.Background(), "user-1", &Preseed{Pickup: "12 MG Road"})
		assert.Error(t, err)
	})
}

func TestCompleteStepFullFlow(t *testing.T) {
	store := newMemorySessionStore()
	orders := &fakeOrderCreator{}
	svc := newTestService(store, orders)
	ctx := context.Background()

	session, err := svc.InitiateSession(ctx, "user-1", nil)
	require.NoError(t, err)
	id := session.SessionID

	steps := []struct {
		step    models.Step
		payload interface{}
	}{
		{models.StepPickup, PickupPayload{Address: "12 MG Road"}},
		{models.StepDropoff, DropoffPayload{Address: "4 Church Street"}},
		{models.StepService, ServicePayload{Service: "mini-truck"}},
		{models.StepItems, ItemsPayload{Items: []models.ItemDetail{{Name: "fridge"}}}},
		{models.StepHelpers, HelpersPayload{Count: 1}},
		{models.StepSchedule, SchedulePayload{Schedule: models.Schedule{Kind: models.ScheduleNow}}},
		{models.StepFare, fareInput{EstimatedDistanceKm: 12.5}},
		{models.StepPayment, PaymentPayload{Method: "wallet"}},
	}

	for _, s := range steps {
		result, err := svc.CompleteStep(ctx, "user-1", id, s.step, mustJSON(t, s.payload))
		require.NoError(t, err, "completing %s", s.step)
		require.False(t, result.Completed)
		require.NotNil(t, result.Session)
	}

	current, err := svc.GetSession(ctx, "user-1", id)
	require.NoError(t, err)
	assert.Equal(t, models.StepConfirm, current.CurrentStep)
	assert.Equal(t, "SPD123", current.Draft.BookingID)
	require.NotNil(t, current.Draft.Fare)
	assert.Equal(t, 349, current.Draft.Fare.TotalPrice)

	result, err := svc.CompleteStep(ctx, "user-1", id, models.StepConfirm, nil)
	require.NoError(t, err)
	assert.True(t, result.Completed)
	require.NotNil(t, result.Order)
	assert.Equal(t, "SPD123", result.Order.BookingRef)
	require.Len(t, orders.created, 1)

	// Session is gone after confirmation.
	_, err = svc.GetSession(ctx, "user-1", id)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestCompleteStepServerSideFare(t *testing.T) {
	store := newMemorySessionStore()
	svc := newTestService(store, &fakeOrderCreator{})
	ctx := context.Background()

	session, err := svc.InitiateSession(ctx, "user-1", &Preseed{Pickup: "a", Dropoff: "b"})
	require.NoError(t, err)
	id := session.SessionID

	_, err = svc.CompleteStep(ctx, "user-1", id, models.StepService, mustJSON(t, ServicePayload{Service: "bike"}))
	require.NoError(t, err)
	_, err = svc.CompleteStep(ctx, "user-1", id, models.StepItems, mustJSON(t, ItemsPayload{}))
	require.NoError(t, err)
	_, err = svc.CompleteStep(ctx, "user-1", id, models.StepHelpers, mustJSON(t, HelpersPayload{Count: 2}))
	require.NoError(t, err)
	_, err = svc.CompleteStep(ctx, "user-1", id, models.StepSchedule, mustJSON(t, SchedulePayload{Schedule: models.Schedule{Kind: models.ScheduleNow}}))
	require.NoError(t, err)

	// A client claiming an arbitrary total gets the server's quote instead:
	// only the estimate inputs are read from the payload.
	result, err := svc.CompleteStep(ctx, "user-1", id, models.StepFare, []byte(`{"estimatedDistanceKm":10,"totalPrice":1}`))
	require.NoError(t, err)
	fare := result.Session.Draft.Fare
	require.NotNil(t, fare)
	assert.Equal(t, 49+60+100, fare.TotalPrice)
}

func TestCompleteStepOutOfOrder(t *testing.T) {
	svc := newTestService(newMemorySessionStore(), &fakeOrderCreator{})
	ctx := context.Background()

	session, err := svc.InitiateSession(ctx, "user-1", nil)
	require.NoError(t, err)

	_, err = svc.CompleteStep(ctx, "user-1", session.SessionID, models.StepPayment, mustJSON(t, PaymentPayload{Method: "wallet"}))
	var transition *TransitionError
	require.ErrorAs(t, err, &transition)
	assert.Equal(t, models.StepPickup, transition.From)
}

func TestStepBackAndCancel(t *testing.T) {
	svc := newTestService(newMemorySessionStore(), &fakeOrderCreator{})
	ctx := context.Background()

	session, err := svc.InitiateSession(ctx, "user-1", nil)
	require.NoError(t, err)
	id := session.SessionID

	_, err = svc.CompleteStep(ctx, "user-1", id, models.StepPickup, mustJSON(t, PickupPayload{Address: "a"}))
	require.NoError(t, err)

	result, err := svc.StepBack(ctx, "user-1", id)
	require.NoError(t, err)
	assert.False(t, result.Cancelled)
	assert.Equal(t, models.StepPickup, result.Session.CurrentStep)
	assert.Equal(t, "a", result.Session.Draft.Pickup, "draft survives back navigation")

	// Back from the first step cancels and deletes the session.
	result, err = svc.StepBack(ctx, "user-1", id)
	require.NoError(t, err)
	assert.True(t, result.Cancelled)
	_, err = svc.GetSession(ctx, "user-1", id)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionOwnership(t *testing.T) {
	svc := newTestService(newMemorySessionStore(), &fakeOrderCreator{})
	ctx := context.Background()

	session, err := svc.InitiateSession(ctx, "user-1", nil)
	require.NoError(t, err)

	_, err = svc.GetSession(ctx, "user-2", session.SessionID)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	err = svc.CancelSession(ctx, "user-2", session.SessionID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
