package handlers

import (
	"net/http"

	"spedocity/services/notification"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NotificationHandler exposes the in-app notification feed.
type NotificationHandler struct {
	Service notification.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(svc notification.NotificationService) *NotificationHandler {
	return &NotificationHandler{Service: svc}
}

// ListNotifications returns the user's notifications, newest first.
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	logger := getLogger(c)

	userID, ok := authedUserID(c)
	if !ok {
		return
	}

	notifs, err := h.Service.List(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to list notifications", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list notifications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"notifications": notifs})
}

// MarkNotificationRead marks one notification as read.
func (h *NotificationHandler) MarkNotificationRead(c *gin.Context) {
	logger := getLogger(c)

	userID, ok := authedUserID(c)
	if !ok {
		return
	}

	if err := h.Service.MarkRead(c.Request.Context(), userID, c.Param("notificationID")); err != nil {
		logger.Error("Failed to mark notification read", zap.Error(err))
		c.JSON(http.StatusNotFound, gin.H{"error": "notification not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
