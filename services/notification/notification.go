package notification

import (
	"context"

	notificationRepo "spedocity/database/repository/notification"
	"spedocity/models"

	"github.com/google/uuid"
)

// NotificationService manages the per-user in-app notification feed. Push
// delivery to devices is out of scope; entries are fetched by the client.
type NotificationService interface {
	Push(ctx context.Context, userID, title, body string, data map[string]string) error
	List(ctx context.Context, userID string) ([]models.Notification, error)
	MarkRead(ctx context.Context, userID, id string) error
}

// DefaultNotificationService implements NotificationService.
type DefaultNotificationService struct {
	Repo notificationRepo.NotificationRepository
}

// Push appends an entry to the user's feed.
func (s *DefaultNotificationService) Push(ctx context.Context, userID, title, body string, data map[string]string) error {
	return s.Repo.Insert(&models.Notification{
		ID:     uuid.New().String(),
		UserID: userID,
		Title:  title,
		Body:   body,
		Data:   data,
	})
}

// List returns the user's feed, newest first.
func (s *DefaultNotificationService) List(ctx context.Context, userID string) ([]models.Notification, error) {
	return s.Repo.ListByUser(userID)
}

// MarkRead marks one entry as read.
func (s *DefaultNotificationService) MarkRead(ctx context.Context, userID, id string) error {
	return s.Repo.MarkRead(userID, id)
}
