package user

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"spedocity/models"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// GetProfile returns the user's account record.
func (s *DefaultUserService) GetProfile(ctx context.Context, userID string) (*models.User, error) {
	userRec, err := s.Repo.GetByID(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	return userRec, nil
}

// UpdateProfile applies the provided profile fields. Empty fields are left
// unchanged; the mobile number is the account key and cannot be changed here.
func (s *DefaultUserService) UpdateProfile(ctx context.Context, userID string, update ProfileUpdate) (*models.User, error) {
	userRec, err := s.Repo.GetByID(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	if name := strings.TrimSpace(update.Name); name != "" {
		userRec.Name = name
	}
	if email := strings.TrimSpace(update.Email); email != "" {
		if !emailPattern.MatchString(email) {
			return nil, fmt.Errorf("invalid email address")
		}
		userRec.Email = email
	}

	if err := s.Repo.Update(userRec); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return userRec, nil
}
