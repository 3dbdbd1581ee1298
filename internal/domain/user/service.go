package user

import "context"

// Service defines the interface for user business logic
type Service interface {
	// Register creates an account with default preferences
	Register(ctx context.Context, email, username, password string) (*User, error)

	// Authenticate verifies credentials
	Authenticate(ctx context.Context, email, password string) (*User, error)

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id int64) (*User, error)

	// UpdatePreferences changes notification settings
	UpdatePreferences(ctx context.Context, id int64, phone string, prefs Preferences) (*User, error)
}
