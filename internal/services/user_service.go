package services

import (
	"context"
	"strings"

	"github.com/pratik-mahalle/threatwatch/internal/auth"
	"github.com/pratik-mahalle/threatwatch/internal/domain/user"
	"github.com/pratik-mahalle/threatwatch/internal/pkg/errors"
	"github.com/pratik-mahalle/threatwatch/internal/pkg/logger"
)

// UserService implements user.Service
type UserService struct {
	repo       user.Repository
	bcryptCost int
	logger     *logger.Logger
}

// NewUserService creates a new user service
func NewUserService(repo user.Repository, bcryptCost int, log *logger.Logger) user.Service {
	return &UserService{
		repo:       repo,
		bcryptCost: bcryptCost,
		logger:     log,
	}
}

// Register creates an account with the default notification preferences
func (s *UserService) Register(ctx context.Context, email, username, password string) (*user.User, error) {
	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, errors.Internal("Failed to hash password", err)
	}

	u := &user.User{
		Email:        strings.ToLower(strings.TrimSpace(email)),
		Username:     username,
		PasswordHash: hash,
		Preferences:  user.DefaultPreferences(),
	}

	if err := s.repo.Create(ctx, u); err != nil {
		if !errors.HasCode(err, errors.ErrCodeConflict) {
			s.logger.ErrorWithErr(err, "Failed to create user")
		}
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"user_id": u.ID,
		"email":   u.Email,
	}).Info("User registered")

	return u, nil
}

// Authenticate checks credentials. Unknown emails and wrong passwords give
// the same error.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*user.User, error) {
	u, err := s.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.HasCode(err, errors.ErrCodeNotFound) {
			return nil, errors.Unauthorized("Invalid email or password")
		}
		return nil, err
	}

	if err := auth.CheckPassword(u.PasswordHash, password); err != nil {
		return nil, errors.Unauthorized("Invalid email or password")
	}
	return u, nil
}

// GetByID retrieves a user by ID
func (s *UserService) GetByID(ctx context.Context, id int64) (*user.User, error) {
	return s.repo.GetByID(ctx, id)
}

// UpdatePreferences replaces the notification settings and returns the user
func (s *UserService) UpdatePreferences(ctx context.Context, id int64, phone string, prefs user.Preferences) (*user.User, error) {
	if err := s.repo.UpdatePreferences(ctx, id, strings.TrimSpace(phone), prefs); err != nil {
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"user_id":        id,
		"email_alerts":   prefs.EmailAlerts,
		"sms_alerts":     prefs.SMSAlerts,
		"weekly_reports": prefs.WeeklyReports,
	}).Info("Notification preferences updated")

	return s.repo.GetByID(ctx, id)
}
