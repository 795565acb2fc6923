package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"spedocity/models"
	"spedocity/services/booking"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSessionStore struct {
	sessions map[string]*models.BookingSession
}

func (s *stubSessionStore) Save(ctx context.Context, session *models.BookingSession, ttl time.Duration) error {
	copied := *session
	s.sessions[session.SessionID] = &copied
	return nil
}

func (s *stubSessionStore) Get(ctx context.Context, sessionID string) (*models.BookingSession, error) {
	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, booking.ErrSessionNotFound
	}
	copied := *session
	return &copied, nil
}

func (s *stubSessionStore) Delete(ctx context.Context, sessionID string) error {
	delete(s.sessions, sessionID)
	return nil
}

type stubRefGenerator struct{}

func (stubRefGenerator) NewBookingRef() string { return "SPD999" }

type stubOrderCreator struct{}

func (stubOrderCreator) CreateFromDraft(ctx context.Context, userID string, draft models.BookingDraft) (*models.Order, error) {
	return &models.Order{ID: "order-1", UserID: userID, BookingRef: draft.BookingID, Status: models.OrderCreated}, nil
}

func newBookingTestRouter() (*gin.Engine, *BookingHandler) {
	gin.SetMode(gin.TestMode)

	svc := &booking.DefaultBookingSessionService{
		Store:      &stubSessionStore{sessions: make(map[string]*models.BookingSession)},
		Refs:       stubRefGenerator{},
		Orders:     stubOrderCreator{},
		SessionTTL: 10 * time.Minute,
	}
	h := NewBookingHandler(svc)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userID", "user-1")
		c.Next()
	})
	r.GET("/booking/services", h.GetAvailableServices)
	r.POST("/booking/fare-quote", h.QuoteFare)
	r.POST("/booking/session", h.InitiateSession)
	r.GET("/booking/session/:sessionID", h.GetSession)
	r.POST("/booking/session/:sessionID/step", h.CompleteStep)
	r.POST("/booking/session/:sessionID/back", h.StepBack)
	return r, h
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGetAvailableServicesEndpoint(t *testing.T) {
	r, _ := newBookingTestRouter()

	w := doJSON(t, r, http.MethodGet, "/booking/services", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Services []models.ServiceType `json:"services"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Services, 4)
}

func TestQuoteFareEndpoint(t *testing.T) {
	r, _ := newBookingTestRouter()

	w := doJSON(t, r, http.MethodPost, "/booking/fare-quote", gin.H{
		"serviceType":         "mini-truck",
		"estimatedDistanceKm": 12.5,
		"helperCount":         1,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var fare models.FareBreakdown
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fare))
	assert.Equal(t, 349, fare.TotalPrice)

	w = doJSON(t, r, http.MethodPost, "/booking/fare-quote", gin.H{"serviceType": "rickshaw"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBookingSessionEndpoints(t *testing.T) {
	r, _ := newBookingTestRouter()

	w := doJSON(t, r, http.MethodPost, "/booking/session", gin.H{
		"preseed": gin.H{"pickup": "12 MG Road", "dropoff": "4 Church Street"},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var session models.BookingSession
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &session))
	assert.Equal(t, models.StepService, session.CurrentStep)

	w = doJSON(t, r, http.MethodPost, "/booking/session/"+session.SessionID+"/step", gin.H{
		"step":    "service",
		"payload": gin.H{"service": "bike"},
	})
	require.Equal(t, http.StatusOK, w.Code)

	// An out-of-order step is a conflict.
	w = doJSON(t, r, http.MethodPost, "/booking/session/"+session.SessionID+"/step", gin.H{
		"step":    "payment",
		"payload": gin.H{"method": "wallet"},
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	// Back from items returns to service.
	w = doJSON(t, r, http.MethodPost, "/booking/session/"+session.SessionID+"/back", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &session))
	assert.Equal(t, models.StepService, session.CurrentStep)

	// Unknown sessions are 404.
	w = doJSON(t, r, http.MethodGet, "/booking/session/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
