package user

import (
	"context"
	"testing"
	"time"

	"spedocity/models"
	"spedocity/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryOTPStore struct {
	otps      map[string]string
	sessions  map[string]string
	cooldowns map[string]time.Duration
}

func newMemoryOTPStore() *memoryOTPStore {
	return &memoryOTPStore{
		otps:      make(map[string]string),
		sessions:  make(map[string]string),
		cooldowns: make(map[string]time.Duration),
	}
}

func (s *memoryOTPStore) Store(ctx context.Context, sessionID, otp string, ttl time.Duration) error {
	s.otps[sessionID] = otp
	return nil
}

func (s *memoryOTPStore) Verify(ctx context.Context, sessionID, otp string) error {
	stored, ok := s.otps[sessionID]
	if !ok || stored != otp {
		return ErrOTPMismatch
	}
	delete(s.otps, sessionID)
	return nil
}

func (s *memoryOTPStore) SaveSession(ctx context.Context, sessionID, mobileNumber string, ttl time.Duration) error {
	s.sessions[sessionID] = mobileNumber
	return nil
}

func (s *memoryOTPStore) SessionNumber(ctx context.Context, sessionID string) (string, error) {
	number, ok := s.sessions[sessionID]
	if !ok {
		return "", ErrOTPMismatch
	}
	return number, nil
}

func (s *memoryOTPStore) SetCooldown(ctx context.Context, mobileNumber string, ttl time.Duration) error {
	s.cooldowns[mobileNumber] = ttl
	return nil
}

func (s *memoryOTPStore) CooldownRemaining(ctx context.Context, mobileNumber string) (time.Duration, error) {
	return s.cooldowns[mobileNumber], nil
}

type memoryUserRepo struct {
	users map[string]*models.User
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{users: make(map[string]*models.User)}
}

func (r *memoryUserRepo) GetByID(id string) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *memoryUserRepo) GetByMobileNumber(number string) (*models.User, error) {
	for _, u := range r.users {
		if u.MobileNumber == number {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *memoryUserRepo) Create(u *models.User) error {
	copied := *u
	r.users[u.ID] = &copied
	return nil
}

func (r *memoryUserRepo) Update(u *models.User) error {
	copied := *u
	r.users[u.ID] = &copied
	return nil
}

func (r *memoryUserRepo) Delete(id string) error {
	delete(r.users, id)
	return nil
}

type memoryTokenCache struct {
	hashes map[string]string
}

func newMemoryTokenCache() *memoryTokenCache {
	return &memoryTokenCache{hashes: make(map[string]string)}
}

func (c *memoryTokenCache) Set(ctx context.Context, userID, tokenHash string, ttl time.Duration) error {
	c.hashes[userID] = tokenHash
	return nil
}

func (c *memoryTokenCache) Delete(ctx context.Context, userID string) error {
	delete(c.hashes, userID)
	return nil
}

func newTestUserService(otp *memoryOTPStore, repo *memoryUserRepo, tokens *memoryTokenCache) *DefaultUserService {
	return &DefaultUserService{
		Repo:       repo,
		OTP:        otp,
		Tokens:     tokens,
		OTPTTL:     5 * time.Minute,
		Cooldown:   30 * time.Second,
		TokenTTL:   time.Hour,
		SendOTPMsg: func(phoneNumber, message string) error { return nil },
	}
}

func TestSendOTP(t *testing.T) {
	ctx := context.Background()

	t.Run("issues a session and code", func(t *testing.T) {
		otp := newMemoryOTPStore()
		var sentTo string
		svc := newTestUserService(otp, newMemoryUserRepo(), newMemoryTokenCache())
		svc.SendOTPMsg = func(phoneNumber, message string) error {
			sentTo = phoneNumber
			return nil
		}

		sessionID, err := svc.SendOTP(ctx, "+919876543210")
		require.NoError(t, err)
		assert.NotEmpty(t, sessionID)
		assert.Equal(t, "+919876543210", sentTo)
		assert.Len(t, otp.otps[sessionID], 6)
		assert.Equal(t, "+919876543210", otp.sessions[sessionID])
		assert.Equal(t, 30*time.Second, otp.cooldowns["+919876543210"])
	})

	t.Run("rejects malformed numbers", func(t *testing.T) {
		svc := newTestUserService(newMemoryOTPStore(), newMemoryUserRepo(), newMemoryTokenCache())
		_, err := svc.SendOTP(ctx, "not-a-number")
		assert.Error(t, err)
	})

	t.Run("enforces resend cooldown", func(t *testing.T) {
		otp := newMemoryOTPStore()
		otp.cooldowns["+919876543210"] = 12 * time.Second
		svc := newTestUserService(otp, newMemoryUserRepo(), newMemoryTokenCache())

		_, err := svc.SendOTP(ctx, "+919876543210")
		var cooldown OTPCooldownError
		require.ErrorAs(t, err, &cooldown)
		assert.Equal(t, 12*time.Second, cooldown.RetryAfter)
	})
}

func TestVerifyOTP(t *testing.T) {
	ctx := context.Background()

	t.Run("creates account on first verification", func(t *testing.T) {
		otp := newMemoryOTPStore()
		repo := newMemoryUserRepo()
		tokens := newMemoryTokenCache()
		svc := newTestUserService(otp, repo, tokens)

		sessionID, err := svc.SendOTP(ctx, "+919876543210")
		require.NoError(t, err)
		code := otp.otps[sessionID]

		resp, err := svc.VerifyOTP(ctx, sessionID, code)
		require.NoError(t, err)
		assert.True(t, resp.Success)
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, "+919876543210", resp.MobileNumber)
		require.NotNil(t, resp.UserData)

		stored, err := repo.GetByID(resp.UserID)
		require.NoError(t, err)
		assert.Equal(t, utils.HashToken(resp.Token), stored.TokenHash)
		assert.Equal(t, stored.TokenHash, tokens.hashes[resp.UserID])
	})

	t.Run("reuses the existing account", func(t *testing.T) {
		otp := newMemoryOTPStore()
		repo := newMemoryUserRepo()
		svc := newTestUserService(otp, repo, newMemoryTokenCache())

		require.NoError(t, repo.Create(&models.User{ID: "u-1", MobileNumber: "+919876543210", Name: "Asha"}))

		sessionID, err := svc.SendOTP(ctx, "+919876543210")
		require.NoError(t, err)

		resp, err := svc.VerifyOTP(ctx, sessionID, otp.otps[sessionID])
		require.NoError(t, err)
		assert.Equal(t, "u-1", resp.UserID)
		assert.Len(t, repo.users, 1)
	})

	t.Run("rejects a wrong code", func(t *testing.T) {
		otp := newMemoryOTPStore()
		svc := newTestUserService(otp, newMemoryUserRepo(), newMemoryTokenCache())

		sessionID, err := svc.SendOTP(ctx, "+919876543210")
		require.NoError(t, err)

		_, err = svc.VerifyOTP(ctx, sessionID, "000000")
		assert.ErrorIs(t, err, ErrOTPMismatch)
	})

	t.Run("rejects an unknown session", func(t *testing.T) {
		svc := newTestUserService(newMemoryOTPStore(), newMemoryUserRepo(), newMemoryTokenCache())
		_, err := svc.VerifyOTP(ctx, "missing", "123456")
		assert.ErrorIs(t, err, ErrOTPMismatch)
	})
}

func TestLogout(t *testing.T) {
	ctx := context.Background()
	otp := newMemoryOTPStore()
	repo := newMemoryUserRepo()
	tokens := newMemoryTokenCache()
	svc := newTestUserService(otp, repo, tokens)

	sessionID, err := svc.SendOTP(ctx, "+919876543210")
	require.NoError(t, err)
	resp, err := svc.VerifyOTP(ctx, sessionID, otp.otps[sessionID])
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, resp.UserID))

	stored, err := repo.GetByID(resp.UserID)
	require.NoError(t, err)
	assert.Empty(t, stored.TokenHash)
	assert.NotContains(t, tokens.hashes, resp.UserID)
}

func TestProfile(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryUserRepo()
	svc := newTestUserService(newMemoryOTPStore(), repo, newMemoryTokenCache())

	require.NoError(t, repo.Create(&models.User{ID: "u-1", MobileNumber: "+919876543210"}))

	t.Run("updates name and email", func(t *testing.T) {
		updated, err := svc.UpdateProfile(ctx, "u-1", ProfileUpdate{Name: "Asha", Email: "asha@example.com"})
		require.NoError(t, err)
		assert.Equal(t, "Asha", updated.Name)
		assert.Equal(t, "asha@example.com", updated.Email)
	})

	t.Run("empty fields are preserved", func(t *testing.T) {
		updated, err := svc.UpdateProfile(ctx, "u-1", ProfileUpdate{Email: "new@example.com"})
		require.NoError(t, err)
		assert.Equal(t, "Asha", updated.Name)
		assert.Equal(t, "new@example.com", updated.Email)
	})

	t.Run("rejects a malformed email", func(t *testing.T) {
		_, err := svc.UpdateProfile(ctx, "u-1", ProfileUpdate{Email: "nope"})
		assert.Error(t, err)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := svc.GetProfile(ctx, "missing")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}
