package orderRepo

import "spedocity/models"

// OrderRepository defines methods for order data access.
type OrderRepository interface {
	// Create inserts a new order record.
	Create(order *models.Order) error
	// GetByID retrieves an order by its unique ID, or nil if absent.
	GetByID(id string) (*models.Order, error)
	// ListByUser retrieves all orders belonging to a user, newest first.
	ListByUser(userID string) ([]models.Order, error)
	// UpdateStatus sets the status of an order.
	UpdateStatus(id string, status models.OrderStatus) error
}
