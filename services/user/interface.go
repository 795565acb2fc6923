package user

import (
	"context"
	"time"

	userRepo "spedocity/database/repository/user"
	"spedocity/models"
)

// ProfileUpdate carries the profile fields a user may change.
type ProfileUpdate struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UserService handles phone-OTP authentication and profile management.
type UserService interface {
	SendOTP(ctx context.Context, mobileNumber string) (sessionID string, err error)
	VerifyOTP(ctx context.Context, sessionID, otp string) (*models.AuthResponse, error)
	ResendOTP(ctx context.Context, mobileNumber string) (sessionID string, err error)
	Logout(ctx context.Context, userID string) error
	GetProfile(ctx context.Context, userID string) (*models.User, error)
	UpdateProfile(ctx context.Context, userID string, update ProfileUpdate) (*models.User, error)
}

// OTPStore abstracts the Redis-backed OTP records so the auth flow can be
// exercised without a live Redis.
type OTPStore interface {
	Store(ctx context.Context, sessionID, otp string, ttl time.Duration) error
	Verify(ctx context.Context, sessionID, otp string) error
	SaveSession(ctx context.Context, sessionID, mobileNumber string, ttl time.Duration) error
	SessionNumber(ctx context.Context, sessionID string) (string, error)
	SetCooldown(ctx context.Context, mobileNumber string, ttl time.Duration) error
	CooldownRemaining(ctx context.Context, mobileNumber string) (time.Duration, error)
}

// TokenCache caches token hashes for the auth middleware.
type TokenCache interface {
	Set(ctx context.Context, userID, tokenHash string, ttl time.Duration) error
	Delete(ctx context.Context, userID string) error
}

// DefaultUserService implements UserService.
type DefaultUserService struct {
	Repo       userRepo.UserRepository
	OTP        OTPStore
	Tokens     TokenCache
	OTPTTL     time.Duration
	Cooldown   time.Duration
	TokenTTL   time.Duration
	SendOTPMsg func(phoneNumber, message string) error
}
