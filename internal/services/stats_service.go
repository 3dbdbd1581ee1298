package services

import (
	"context"

	"github.com/pratik-mahalle/threatwatch/internal/domain/alert"
	"github.com/pratik-mahalle/threatwatch/internal/domain/stats"
)

// StatsService implements stats.Service
type StatsService struct {
	alerts alert.Repository
}

// NewStatsService creates a new stats service
func NewStatsService(alerts alert.Repository) stats.Service {
	return &StatsService{alerts: alerts}
}

// Summarize computes dashboard stats from the store at call time
func (s *StatsService) Summarize(ctx context.Context, ownerID *int64) (*stats.Stats, error) {
	agg, err := s.alerts.Aggregate(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	out := stats.FromAggregate(agg)
	return &out, nil
}
