package handlers

import (
	"errors"
	"net/http"

	"spedocity/models"
	"spedocity/services/order"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// OrderHandler exposes the order endpoints.
type OrderHandler struct {
	Service order.OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(svc order.OrderService) *OrderHandler {
	return &OrderHandler{Service: svc}
}

// ListOrders returns the authenticated user's orders, newest first.
func (h *OrderHandler) ListOrders(c *gin.Context) {
	logger := getLogger(c)

	userID, ok := authedUserID(c)
	if !ok {
		return
	}

	orders, err := h.Service.List(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to list orders", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list orders"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// GetOrder returns one order by ID.
func (h *OrderHandler) GetOrder(c *gin.Context) {
	userID, ok := authedUserID(c)
	if !ok {
		return
	}

	o, err := h.Service.Get(c.Request.Context(), userID, c.Param("orderID"))
	if err != nil {
		if errors.Is(err, order.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch order"})
		return
	}

	c.JSON(http.StatusOK, o)
}

// UpdateOrderStatus advances an order through its lifecycle.
func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	logger := getLogger(c)

	userID, ok := authedUserID(c)
	if !ok {
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	o, err := h.Service.UpdateStatus(c.Request.Context(), userID, c.Param("orderID"), models.OrderStatus(req.Status))
	if err != nil {
		var statusErr *order.StatusError
		switch {
		case errors.Is(err, order.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		case errors.As(err, &statusErr):
			c.JSON(http.StatusConflict, gin.H{"error": statusErr.Error()})
		default:
			logger.Error("Failed to update order status", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, o)
}

// CancelOrder cancels an order that has not yet been picked up. The wallet
// charge is refunded.
func (h *OrderHandler) CancelOrder(c *gin.Context) {
	logger := getLogger(c)

	userID, ok := authedUserID(c)
	if !ok {
		return
	}

	o, err := h.Service.Cancel(c.Request.Context(), userID, c.Param("orderID"))
	if err != nil {
		var statusErr *order.StatusError
		switch {
		case errors.Is(err, order.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		case errors.As(err, &statusErr):
			c.JSON(http.StatusConflict, gin.H{"error": statusErr.Error()})
		default:
			logger.Error("Failed to cancel order", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to cancel order"})
		}
		return
	}

	c.JSON(http.StatusOK, o)
}
