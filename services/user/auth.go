package user

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"spedocity/models"
	"spedocity/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var mobileNumberPattern = regexp.MustCompile(`^\+?[0-9]{10,15}$`)

// SendOTP issues a fresh OTP session for the given mobile number. The code is
// hashed at rest and delivered out of band; the returned session ID is what
// the client presents to VerifyOTP. A number inside the resend cooldown
// window gets OTPCooldownError instead of a new code.
func (s *DefaultUserService) SendOTP(ctx context.Context, mobileNumber string) (string, error) {
	if !mobileNumberPattern.MatchString(mobileNumber) {
		return "", fmt.Errorf("invalid mobile number")
	}

	remaining, err := s.OTP.CooldownRemaining(ctx, mobileNumber)
	if err != nil {
		return "", err
	}
	if remaining > 0 {
		return "", OTPCooldownError{RetryAfter: remaining}
	}

	otp, err := utils.GenerateNumericOTP(6)
	if err != nil {
		return "", fmt.Errorf("failed to generate OTP: %w", err)
	}

	sessionID := uuid.New().String()
	if err := s.OTP.Store(ctx, sessionID, otp, s.OTPTTL); err != nil {
		return "", err
	}
	if err := s.OTP.SaveSession(ctx, sessionID, mobileNumber, s.OTPTTL); err != nil {
		return "", err
	}
	if err := s.OTP.SetCooldown(ctx, mobileNumber, s.Cooldown); err != nil {
		utils.GetLogger().Error("Failed to set OTP cooldown", zap.Error(err))
	}

	message := fmt.Sprintf("Your Spedocity OTP is: %s. It expires in %d minutes.", otp, int(s.OTPTTL.Minutes()))
	send := s.SendOTPMsg
	if send == nil {
		send = utils.SendSMSMessage
	}
	if err := send(mobileNumber, message); err != nil {
		utils.GetLogger().Error("Failed to send OTP", zap.Error(err))
		return "", fmt.Errorf("failed to send OTP")
	}

	return sessionID, nil
}

// ResendOTP issues a new session for the number, subject to the same cooldown
// as SendOTP.
func (s *DefaultUserService) ResendOTP(ctx context.Context, mobileNumber string) (string, error) {
	return s.SendOTP(ctx, mobileNumber)
}

// VerifyOTP checks the code against the session. On success the user account
// is fetched or lazily created for the number, a bearer token is issued, and
// its hash is stored for the auth middleware.
func (s *DefaultUserService) VerifyOTP(ctx context.Context, sessionID, otp string) (*models.AuthResponse, error) {
	mobileNumber, err := s.OTP.SessionNumber(ctx, sessionID)
	if err != nil {
		return nil, ErrOTPMismatch
	}
	if err := s.OTP.Verify(ctx, sessionID, otp); err != nil {
		return nil, ErrOTPMismatch
	}

	userRec, err := s.Repo.GetByMobileNumber(mobileNumber)
	if err != nil {
		utils.GetLogger().Error("VerifyOTP: failed to fetch user", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}
	if userRec == nil {
		userRec = &models.User{
			ID:           uuid.New().String(),
			MobileNumber: mobileNumber,
		}
		if err := s.Repo.Create(userRec); err != nil {
			utils.GetLogger().Error("VerifyOTP: failed to create user", zap.Error(err))
			return nil, fmt.Errorf("authentication failed, please try again")
		}
	}

	token, err := utils.GenerateToken(userRec.ID, userRec.MobileNumber, s.tokenTTLOrDefault())
	if err != nil {
		return nil, fmt.Errorf("authentication failed, please try again")
	}

	tokenHash := utils.HashToken(token)
	userRec.TokenHash = tokenHash
	if err := s.Repo.Update(userRec); err != nil {
		return nil, fmt.Errorf("authentication failed, please try again")
	}
	if s.Tokens != nil {
		if err := s.Tokens.Set(ctx, userRec.ID, tokenHash, utils.AuthCacheTTL); err != nil {
			utils.GetLogger().Error("VerifyOTP: failed to cache token hash", zap.Error(err))
		}
	}

	return &models.AuthResponse{
		Success:      true,
		Token:        token,
		UserID:       userRec.ID,
		MobileNumber: userRec.MobileNumber,
		UserData:     userRec,
	}, nil
}

// Logout revokes the user's current token: the stored hash is cleared so the
// middleware rejects it on both the cache and DB paths.
func (s *DefaultUserService) Logout(ctx context.Context, userID string) error {
	userRec, err := s.Repo.GetByID(userID)
	if err != nil {
		return ErrUserNotFound
	}
	userRec.TokenHash = ""
	if err := s.Repo.Update(userRec); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	if s.Tokens != nil {
		if err := s.Tokens.Delete(ctx, userID); err != nil {
			utils.GetLogger().Error("Logout: failed to clear token cache", zap.Error(err))
		}
	}
	return nil
}

// tokenTTLOrDefault guards against an unset TokenTTL.
func (s *DefaultUserService) tokenTTLOrDefault() time.Duration {
	if s.TokenTTL <= 0 {
		return 30 * 24 * time.Hour
	}
	return s.TokenTTL
}
