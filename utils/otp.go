package utils

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	otpKeyPrefix      = "otp:"
	otpSessionPrefix  = "otpSession:"
	otpCooldownPrefix = "otpCooldown:"
)

// GenerateNumericOTP generates a secure random numeric OTP of the given length.
func GenerateNumericOTP(length int) (string, error) {
	const digits = "0123456789"
	otp := make([]byte, length)
	for i := range otp {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(digits))))
		if err != nil {
			return "", fmt.Errorf("failed to generate random digit: %w", err)
		}
		otp[i] = digits[n.Int64()]
	}
	return string(otp), nil
}

// SendSMSMessage sends an SMS to the given phone number. The real gateway
// integration lives outside this service; here the outgoing message is logged.
func SendSMSMessage(phoneNumber, message string) error {
	GetLogger().Sugar().Infof("Sending SMS to %s: %s", phoneNumber, message)
	return nil
}

// StoreOTP hashes the OTP with bcrypt and stores it in Redis under the given
// session ID with the supplied TTL. Only the hash is kept at rest.
func StoreOTP(ctx context.Context, sessionID, otp string, ttl time.Duration) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(otp), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash OTP: %w", err)
	}
	client := GetOTPCacheClient()
	if err := client.Set(ctx, otpKeyPrefix+sessionID, string(hash), ttl).Err(); err != nil {
		GetLogger().Error("Failed to cache OTP", zap.Error(err))
		return fmt.Errorf("failed to store OTP")
	}
	return nil
}

// VerifyOTPRecord retrieves the stored OTP hash from Redis and compares it to
// the provided OTP. If they match, the record is deleted so a code can only
// be used once.
func VerifyOTPRecord(ctx context.Context, sessionID, providedOTP string) error {
	client := GetOTPCacheClient()
	storedHash, err := client.Get(ctx, otpKeyPrefix+sessionID).Result()
	if err != nil {
		if err == redis.Nil {
			return fmt.Errorf("OTP not found or expired")
		}
		return fmt.Errorf("failed to retrieve OTP: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(providedOTP)) != nil {
		return fmt.Errorf("OTP does not match")
	}

	if err := client.Del(ctx, otpKeyPrefix+sessionID).Err(); err != nil {
		GetLogger().Error("Failed to delete OTP after verification", zap.Error(err))
	}
	return nil
}

// StoreOTPSession links an OTP session ID to the mobile number it was issued
// for, so verification can recover the number.
func StoreOTPSession(ctx context.Context, sessionID, mobileNumber string, ttl time.Duration) error {
	if err := GetOTPCacheClient().Set(ctx, otpSessionPrefix+sessionID, mobileNumber, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store OTP session: %w", err)
	}
	return nil
}

// GetOTPSession returns the mobile number behind an OTP session ID.
func GetOTPSession(ctx context.Context, sessionID string) (string, error) {
	number, err := GetOTPCacheClient().Get(ctx, otpSessionPrefix+sessionID).Result()
	if err != nil {
		if err == redis.Nil {
			return "", fmt.Errorf("OTP session not found or expired")
		}
		return "", fmt.Errorf("failed to retrieve OTP session: %w", err)
	}
	return number, nil
}

// SetOTPCooldown marks the given mobile number as recently served. Further
// send/resend requests are rejected until the key expires.
func SetOTPCooldown(ctx context.Context, mobileNumber string, ttl time.Duration) error {
	return GetOTPCacheClient().Set(ctx, otpCooldownPrefix+mobileNumber, "1", ttl).Err()
}

// OTPCooldownRemaining returns how long the number must wait before another
// OTP can be sent. Zero means no cooldown is active.
func OTPCooldownRemaining(ctx context.Context, mobileNumber string) (time.Duration, error) {
	ttl, err := GetOTPCacheClient().TTL(ctx, otpCooldownPrefix+mobileNumber).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to check OTP cooldown: %w", err)
	}
	if ttl < 0 {
		return 0, nil
	}
	return ttl, nil
}
