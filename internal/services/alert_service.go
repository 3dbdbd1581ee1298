package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/pratik-mahalle/threatwatch/internal/domain/alert"
	"github.com/pratik-mahalle/threatwatch/internal/pkg/logger"
	"github.com/pratik-mahalle/threatwatch/internal/pkg/utils"
)

// AlertService implements alert.Service
type AlertService struct {
	repo   alert.Repository
	logger *logger.Logger
}

// NewAlertService creates a new alert service
func NewAlertService(repo alert.Repository, log *logger.Logger) alert.Service {
	return &AlertService{
		repo:   repo,
		logger: log,
	}
}

// ListRecent lists alerts newest first. A non-positive limit means the default.
func (s *AlertService) ListRecent(ctx context.Context, ownerID *int64, limit int) ([]*alert.Alert, error) {
	if limit <= 0 {
		limit = utils.DefaultAlertLimit
	}
	if limit > utils.MaxLimit {
		limit = utils.MaxLimit
	}
	return s.repo.ListRecent(ctx, ownerID, limit)
}

// Get retrieves an alert by ID
func (s *AlertService) Get(ctx context.Context, id int64) (*alert.Alert, error) {
	return s.repo.GetByID(ctx, id)
}

// Summary counts every alert regardless of owner
func (s *AlertService) Summary(ctx context.Context) (*alert.Overview, error) {
	agg, err := s.repo.Aggregate(ctx, nil)
	if err != nil {
		s.logger.ErrorWithErr(err, "Failed to aggregate alerts")
		return nil, err
	}

	return &alert.Overview{
		Total:      agg.Total,
		Threats:    agg.Threats,
		ByStatus:   agg.ByStatus,
		BySeverity: agg.BySeverity,
		LatestAt:   agg.LatestAt,
	}, nil
}

// SecurityEvents renders the newest alerts as log entries
func (s *AlertService) SecurityEvents(ctx context.Context, limit int) ([]alert.SecurityEvent, error) {
	alerts, err := s.ListRecent(ctx, nil, limit)
	if err != nil {
		return nil, err
	}

	out := make([]alert.SecurityEvent, 0, len(alerts))
	for _, a := range alerts {
		out = append(out, alert.NewSecurityEvent(a, uuid.New().String()))
	}
	return out, nil
}
