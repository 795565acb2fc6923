package handlers

import (
	"errors"
	"net/http"

	"spedocity/services/wallet"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// WalletHandler exposes the wallet balance and transaction endpoints.
type WalletHandler struct {
	Service wallet.WalletService
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(svc wallet.WalletService) *WalletHandler {
	return &WalletHandler{Service: svc}
}

// GetWallet returns the user's wallet, creating it on first access.
func (h *WalletHandler) GetWallet(c *gin.Context) {
	logger := getLogger(c)

	userID, ok := authedUserID(c)
	if !ok {
		return
	}

	w, err := h.Service.Get(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to fetch wallet", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch wallet"})
		return
	}

	c.JSON(http.StatusOK, w)
}

// TopUpWallet credits the wallet.
func (h *WalletHandler) TopUpWallet(c *gin.Context) {
	logger := getLogger(c)

	userID, ok := authedUserID(c)
	if !ok {
		return
	}

	var req struct {
		Amount int `json:"amount" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	w, err := h.Service.TopUp(c.Request.Context(), userID, req.Amount, "wallet top-up")
	if err != nil {
		if errors.Is(err, wallet.ErrInvalidAmount) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "amount must be positive"})
			return
		}
		logger.Error("Wallet top-up failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "top-up failed"})
		return
	}

	c.JSON(http.StatusOK, w)
}

// ListWalletTransactions returns the wallet ledger, newest first.
func (h *WalletHandler) ListWalletTransactions(c *gin.Context) {
	logger := getLogger(c)

	userID, ok := authedUserID(c)
	if !ok {
		return
	}

	txns, err := h.Service.Transactions(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to list wallet transactions", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list transactions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"transactions": txns})
}
