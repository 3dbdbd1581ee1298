package alert

import (
	"context"

	"github.com/pratik-mahalle/threatwatch/internal/domain/threat"
)

// Service defines the interface for alert read operations
type Service interface {
	// ListRecent lists the newest alerts for an owner
	ListRecent(ctx context.Context, ownerID *int64, limit int) ([]*Alert, error)

	// Get retrieves a single alert
	Get(ctx context.Context, id int64) (*Alert, error)

	// Summary returns global counts across all alerts
	Summary(ctx context.Context) (*Overview, error)

	// SecurityEvents renders recent alerts as a security log feed
	SecurityEvents(ctx context.Context, limit int) ([]SecurityEvent, error)
}

// Recorder classifies a flow and stores the resulting alert
type Recorder interface {
	ClassifyAndRecord(ctx context.Context, features threat.FeatureRecord, ownerID *int64) (*AlertSummary, error)
}
