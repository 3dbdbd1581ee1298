package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pratik-mahalle/threatwatch/internal/domain/alert"
	"github.com/pratik-mahalle/threatwatch/internal/domain/threat"
)

func TestFromAggregate(t *testing.T) {
	agg := alert.NewAggregate()
	agg.Total = 6
	agg.Threats = 4
	agg.BySeverity[threat.SeverityCritical] = 3
	agg.BySeverity[threat.SeverityHigh] = 1
	agg.BySeverity[threat.SeverityLow] = 2
	agg.ByStatus[alert.StatusActive] = 2
	agg.ByStatus[alert.StatusRemediated] = 2
	agg.ByStatus[alert.StatusSafe] = 2

	s := FromAggregate(agg)

	assert.Equal(t, int64(6), s.TotalScans)
	assert.Equal(t, int64(4), s.TotalThreats)
	assert.Equal(t, []Bucket{
		{Name: "Critical", Value: 3, Color: "#ef4444"},
		{Name: "High", Value: 1, Color: "#f97316"},
		{Name: "Medium", Value: 0, Color: "#eab308"},
		{Name: "Low", Value: 2, Color: "#3b82f6"},
	}, s.SeverityDistribution)
	assert.Equal(t, []Bucket{
		{Name: "Active", Value: 2, Color: "#ef4444"},
		{Name: "Remediated", Value: 2, Color: "#22c55e"},
	}, s.StatusDistribution)

	var sevSum, statusSum int64
	for _, b := range s.SeverityDistribution {
		sevSum += b.Value
	}
	for _, b := range s.StatusDistribution {
		statusSum += b.Value
	}
	assert.Equal(t, s.TotalScans, sevSum)
	assert.Equal(t, s.TotalScans, statusSum+agg.ByStatus[alert.StatusSafe])
}
