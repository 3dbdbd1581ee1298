package stats

import (
	"context"

	"github.com/pratik-mahalle/threatwatch/internal/domain/alert"
	"github.com/pratik-mahalle/threatwatch/internal/domain/threat"
)

// Bucket is one slice of a dashboard distribution
type Bucket struct {
	Name  string `json:"name"`
	Value int64  `json:"value"`
	Color string `json:"color"`
}

// Stats is the dashboard summary for one owner
type Stats struct {
	TotalScans           int64    `json:"total_scans"`
	TotalThreats         int64    `json:"total_threats"`
	SeverityDistribution []Bucket `json:"severity_distribution"`
	StatusDistribution   []Bucket `json:"status_distribution"`
}

var severityColors = map[threat.Severity]string{
	threat.SeverityCritical: "#ef4444",
	threat.SeverityHigh:     "#f97316",
	threat.SeverityMedium:   "#eab308",
	threat.SeverityLow:      "#3b82f6",
}

// FromAggregate builds dashboard stats. The status distribution carries
// Active and Remediated only; Safe alerts count toward TotalScans alone.
func FromAggregate(agg *alert.Aggregate) Stats {
	s := Stats{
		TotalScans:           agg.Total,
		TotalThreats:         agg.Threats,
		SeverityDistribution: make([]Bucket, 0, len(threat.Severities)),
		StatusDistribution: []Bucket{
			{Name: string(alert.StatusActive), Value: agg.ByStatus[alert.StatusActive], Color: "#ef4444"},
			{Name: string(alert.StatusRemediated), Value: agg.ByStatus[alert.StatusRemediated], Color: "#22c55e"},
		},
	}
	for _, sev := range threat.Severities {
		s.SeverityDistribution = append(s.SeverityDistribution, Bucket{
			Name:  string(sev),
			Value: agg.BySeverity[sev],
			Color: severityColors[sev],
		})
	}
	return s
}

// Service computes dashboard stats
type Service interface {
	// Summarize reads the store at call time; a nil owner means global
	Summarize(ctx context.Context, ownerID *int64) (*Stats, error)
}
