package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"spedocity/models"
	"spedocity/services/booking"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler exposes the booking wizard session endpoints. Each screen of
// the wizard posts step-completed and back-requested events here; the session
// service owns all transition logic.
type BookingHandler struct {
	Service booking.BookingSessionService
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(svc booking.BookingSessionService) *BookingHandler {
	return &BookingHandler{Service: svc}
}

func authedUserID(c *gin.Context) (string, bool) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return "", false
	}
	return userID.(string), true
}

// InitiateSession starts a new booking session, optionally pre-seeded with
// pickup and dropoff addresses.
func (h *BookingHandler) InitiateSession(c *gin.Context) {
	logger := getLogger(c)

	userID, ok := authedUserID(c)
	if !ok {
		return
	}

	var req struct {
		Preseed *booking.Preseed `json:"preseed"`
	}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
			return
		}
	}

	session, err := h.Service.InitiateSession(c.Request.Context(), userID, req.Preseed)
	if err != nil {
		logger.Error("Failed to initiate booking session", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, session)
}

// GetSession returns the current session state so a client can resume the
// wizard where it left off.
func (h *BookingHandler) GetSession(c *gin.Context) {
	userID, ok := authedUserID(c)
	if !ok {
		return
	}

	session, err := h.Service.GetSession(c.Request.Context(), userID, c.Param("sessionID"))
	if err != nil {
		if errors.Is(err, booking.ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "booking session not found or expired"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load booking session"})
		return
	}

	c.JSON(http.StatusOK, session)
}

// CompleteStep applies a step-completed event to the session. On the confirm
// step the session is finalized into an order.
func (h *BookingHandler) CompleteStep(c *gin.Context) {
	logger := getLogger(c)

	userID, ok := authedUserID(c)
	if !ok {
		return
	}

	var req struct {
		Step    string          `json:"step" binding:"required"`
		Payload json.RawMessage `json:"payload"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	step, err := models.ParseStep(req.Step)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.Service.CompleteStep(c.Request.Context(), userID, c.Param("sessionID"), step, req.Payload)
	if err != nil {
		h.stepError(c, logger, err)
		return
	}

	if result.Completed {
		c.JSON(http.StatusOK, gin.H{
			"completed": true,
			"order":     result.Order,
		})
		return
	}

	c.JSON(http.StatusOK, result.Session)
}

// StepBack applies a back-requested event. Backing out of the first step
// cancels the session.
func (h *BookingHandler) StepBack(c *gin.Context) {
	logger := getLogger(c)

	userID, ok := authedUserID(c)
	if !ok {
		return
	}

	result, err := h.Service.StepBack(c.Request.Context(), userID, c.Param("sessionID"))
	if err != nil {
		h.stepError(c, logger, err)
		return
	}

	if result.Cancelled {
		c.JSON(http.StatusOK, gin.H{"cancelled": true})
		return
	}

	c.JSON(http.StatusOK, result.Session)
}

// CancelSession discards the session outright.
func (h *BookingHandler) CancelSession(c *gin.Context) {
	userID, ok := authedUserID(c)
	if !ok {
		return
	}

	if err := h.Service.CancelSession(c.Request.Context(), userID, c.Param("sessionID")); err != nil {
		if errors.Is(err, booking.ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "booking session not found or expired"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to cancel booking session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"cancelled": true})
}

// GetAvailableServices lists the bookable service types with their pricing.
func (h *BookingHandler) GetAvailableServices(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"services": h.Service.AvailableServices()})
}

// QuoteFare returns a fare estimate without a session, for the fare review
// screen.
func (h *BookingHandler) QuoteFare(c *gin.Context) {
	var req struct {
		ServiceType         string  `json:"serviceType" binding:"required"`
		EstimatedDistanceKm float64 `json:"estimatedDistanceKm"`
		HelperCount         int     `json:"helperCount"`
		Insurance           bool    `json:"insurance"`
		EstimatedTime       string  `json:"estimatedTime"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	fare, err := booking.QuoteFare(booking.FareRequest{
		ServiceType:         req.ServiceType,
		EstimatedDistanceKm: req.EstimatedDistanceKm,
		HelperCount:         req.HelperCount,
		Insurance:           req.Insurance,
		EstimatedTime:       req.EstimatedTime,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, fare)
}

// stepError maps session service errors to HTTP responses.
func (h *BookingHandler) stepError(c *gin.Context, logger *zap.Logger, err error) {
	var transition *booking.TransitionError
	switch {
	case errors.Is(err, booking.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "booking session not found or expired"})
	case errors.As(err, &transition):
		c.JSON(http.StatusConflict, gin.H{"error": transition.Error()})
	default:
		logger.Error("Booking step failed", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	}
}
