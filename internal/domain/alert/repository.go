package alert

import "context"

// Repository defines the interface for alert data access.
// A nil ownerID means every alert regardless of owner.
type Repository interface {
	// Create persists a new alert and sets its ID and CreatedAt
	Create(ctx context.Context, alert *Alert) (int64, error)

	// GetByID retrieves an alert by ID
	GetByID(ctx context.Context, id int64) (*Alert, error)

	// ListRecent returns up to limit alerts, newest first
	ListRecent(ctx context.Context, ownerID *int64, limit int) ([]*Alert, error)

	// UpdateStatus writes a new status and returns the updated alert
	UpdateStatus(ctx context.Context, id int64, status Status) (*Alert, error)

	// Aggregate counts alerts by label, severity and status
	Aggregate(ctx context.Context, ownerID *int64) (*Aggregate, error)
}
