package user

import (
	"context"
	"time"

	"spedocity/utils"
)

// redisOTPStore is the production OTPStore, delegating to the Redis-backed
// helpers in utils.
type redisOTPStore struct{}

// NewRedisOTPStore returns the Redis-backed OTP store.
func NewRedisOTPStore() OTPStore {
	return redisOTPStore{}
}

func (redisOTPStore) Store(ctx context.Context, sessionID, otp string, ttl time.Duration) error {
	return utils.StoreOTP(ctx, sessionID, otp, ttl)
}

func (redisOTPStore) Verify(ctx context.Context, sessionID, otp string) error {
	return utils.VerifyOTPRecord(ctx, sessionID, otp)
}

func (redisOTPStore) SaveSession(ctx context.Context, sessionID, mobileNumber string, ttl time.Duration) error {
	return utils.StoreOTPSession(ctx, sessionID, mobileNumber, ttl)
}

func (redisOTPStore) SessionNumber(ctx context.Context, sessionID string) (string, error) {
	return utils.GetOTPSession(ctx, sessionID)
}

func (redisOTPStore) SetCooldown(ctx context.Context, mobileNumber string, ttl time.Duration) error {
	return utils.SetOTPCooldown(ctx, mobileNumber, ttl)
}

func (redisOTPStore) CooldownRemaining(ctx context.Context, mobileNumber string) (time.Duration, error) {
	return utils.OTPCooldownRemaining(ctx, mobileNumber)
}

// redisTokenCache is the production TokenCache over the auth cache client.
type redisTokenCache struct{}

// NewRedisTokenCache returns the Redis-backed token cache.
func NewRedisTokenCache() TokenCache {
	return redisTokenCache{}
}

func (redisTokenCache) Set(ctx context.Context, userID, tokenHash string, ttl time.Duration) error {
	return utils.GetAuthCacheClient().Set(ctx, utils.AuthCachePrefix+userID, tokenHash, ttl).Err()
}

func (redisTokenCache) Delete(ctx context.Context, userID string) error {
	return utils.GetAuthCacheClient().Del(ctx, utils.AuthCachePrefix+userID).Err()
}
