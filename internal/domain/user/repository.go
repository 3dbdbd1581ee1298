package user

import "context"

// Repository defines the interface for user data access
type Repository interface {
	// Create creates a new user
	Create(ctx context.Context, user *User) error

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id int64) (*User, error)

	// GetByEmail retrieves a user by email
	GetByEmail(ctx context.Context, email string) (*User, error)

	// UpdatePreferences replaces a user's phone and preferences
	UpdatePreferences(ctx context.Context, id int64, phone string, prefs Preferences) error

	// ListByPreference returns every user with the preference enabled
	ListByPreference(ctx context.Context, pref Preference) ([]*User, error)
}
