package models

import "time"

// User represents a platform user. Accounts are keyed by mobile number and
// created lazily on the first successful OTP verification.
type User struct {
	ID           string    `bson:"id" json:"id"`
	Name         string    `bson:"name,omitempty" json:"name,omitempty"`
	Email        string    `bson:"email,omitempty" json:"email,omitempty"`
	MobileNumber string    `bson:"mobileNumber" json:"mobileNumber"`
	TokenHash    string    `bson:"tokenHash,omitempty" json:"-"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}

// AuthResponse is returned on successful OTP verification.
type AuthResponse struct {
	Success      bool   `json:"success"`
	Token        string `json:"token"`
	UserID       string `json:"user_id"`
	MobileNumber string `json:"mobile_number"`
	UserData     *User  `json:"userData"`
}
