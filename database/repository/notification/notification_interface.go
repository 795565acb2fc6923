package notificationRepo

import "spedocity/models"

// NotificationRepository defines methods for in-app notification data access.
type NotificationRepository interface {
	// Insert stores a new notification.
	Insert(n *models.Notification) error
	// ListByUser retrieves a user's notifications, newest first.
	ListByUser(userID string) ([]models.Notification, error)
	// MarkRead marks a single notification as read.
	MarkRead(userID, id string) error
}
