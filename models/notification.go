package models

import "time"

// Notification is one entry in a user's in-app feed.
type Notification struct {
	ID        string            `bson:"id" json:"id"`
	UserID    string            `bson:"userId" json:"userId"`
	Title     string            `bson:"title" json:"title"`
	Body      string            `bson:"body" json:"body"`
	Data      map[string]string `bson:"data,omitempty" json:"data,omitempty"`
	Read      bool              `bson:"read" json:"read"`
	CreatedAt time.Time         `bson:"createdAt" json:"createdAt"`
}

// ReminderPayload is the asynq task payload for scheduled-booking reminders.
type ReminderPayload struct {
	UserID     string `json:"userId"`
	OrderID    string `json:"orderId"`
	BookingRef string `json:"bookingRef"`
	TimeSlot   string `json:"timeSlot"`
}
