package user

import (
	"errors"
	"fmt"
	"time"
)

// ErrOTPMismatch is returned when the provided code does not match or has
// expired.
var ErrOTPMismatch = errors.New("invalid or expired OTP")

// ErrUserNotFound is returned when a user record does not exist.
var ErrUserNotFound = errors.New("user not found")

// OTPCooldownError signals that a resend was requested inside the cooldown
// window.
type OTPCooldownError struct {
	RetryAfter time.Duration
}

func (e OTPCooldownError) Error() string {
	return fmt.Sprintf("OTP recently sent; retry after %s", e.RetryAfter.Round(time.Second))
}
