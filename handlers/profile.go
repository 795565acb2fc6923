package handlers

import (
	"errors"
	"net/http"

	"spedocity/services/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ProfileHandler exposes the user profile endpoints.
type ProfileHandler struct {
	Service user.UserService
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(svc user.UserService) *ProfileHandler {
	return &ProfileHandler{Service: svc}
}

// GetProfileHandler returns the authenticated user's profile.
func (h *ProfileHandler) GetProfileHandler(c *gin.Context) {
	logger := getLogger(c)

	userID, ok := authedUserID(c)
	if !ok {
		return
	}

	profile, err := h.Service.GetProfile(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		logger.Error("Failed to get user profile", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve profile"})
		return
	}

	c.JSON(http.StatusOK, profile)
}

// UpdateProfileHandler updates the authenticated user's name and email.
func (h *ProfileHandler) UpdateProfileHandler(c *gin.Context) {
	logger := getLogger(c)

	userID, ok := authedUserID(c)
	if !ok {
		return
	}

	var req user.ProfileUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	updated, err := h.Service.UpdateProfile(c.Request.Context(), userID, req)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		logger.Error("Failed to update profile", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, updated)
}
