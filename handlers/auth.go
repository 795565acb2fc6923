package handlers

import (
	"errors"
	"net/http"

	"spedocity/services/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandler exposes the phone-OTP authentication endpoints.
type AuthHandler struct {
	Service user.UserService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(svc user.UserService) *AuthHandler {
	return &AuthHandler{Service: svc}
}

// SendOTPHandler starts an OTP session for a mobile number.
func (h *AuthHandler) SendOTPHandler(c *gin.Context) {
	logger := getLogger(c)

	var req struct {
		MobileNumber string `json:"mobileNumber" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	sessionID, err := h.Service.SendOTP(c.Request.Context(), req.MobileNumber)
	if err != nil {
		var cooldown user.OTPCooldownError
		if errors.As(err, &cooldown) {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":      "OTP recently sent",
				"retryAfter": int(cooldown.RetryAfter.Seconds()),
			})
			return
		}
		logger.Error("Failed to send OTP", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to send OTP"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"sessionId": sessionID})
}

// VerifyOTPHandler exchanges a session ID and code for a bearer token.
func (h *AuthHandler) VerifyOTPHandler(c *gin.Context) {
	logger := getLogger(c)

	var req struct {
		SessionID string `json:"sessionId" binding:"required"`
		OTP       string `json:"otp" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	resp, err := h.Service.VerifyOTP(c.Request.Context(), req.SessionID, req.OTP)
	if err != nil {
		if errors.Is(err, user.ErrOTPMismatch) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired OTP"})
			return
		}
		logger.Error("OTP verification failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "verification failed"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ResendOTPHandler re-issues a code for a mobile number, subject to cooldown.
func (h *AuthHandler) ResendOTPHandler(c *gin.Context) {
	logger := getLogger(c)

	var req struct {
		MobileNumber string `json:"mobileNumber" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	sessionID, err := h.Service.ResendOTP(c.Request.Context(), req.MobileNumber)
	if err != nil {
		var cooldown user.OTPCooldownError
		if errors.As(err, &cooldown) {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":      "OTP recently sent",
				"retryAfter": int(cooldown.RetryAfter.Seconds()),
			})
			return
		}
		logger.Error("Failed to resend OTP", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to resend OTP"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"sessionId": sessionID})
}

// LogoutHandler revokes the authenticated user's token.
func (h *AuthHandler) LogoutHandler(c *gin.Context) {
	logger := getLogger(c)

	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	if err := h.Service.Logout(c.Request.Context(), userID.(string)); err != nil {
		logger.Error("Logout failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "logout failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
