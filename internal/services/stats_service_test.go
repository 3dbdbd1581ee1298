package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pratik-mahalle/threatwatch/internal/domain/alert"
	"github.com/pratik-mahalle/threatwatch/internal/pkg/logger"
	"github.com/pratik-mahalle/threatwatch/internal/testutil"
)

func TestStatsService_Summarize(t *testing.T) {
	repo := testutil.NewMockAlertRepository()
	service := NewStatsService(repo)

	owner, other := int64(1), int64(2)
	seedAlerts(t, repo, 3, 0.95, 1, &owner)
	seedAlerts(t, repo, 2, 0.6, 1, &owner)
	seedAlerts(t, repo, 4, 0.2, 0, &owner)
	seedAlerts(t, repo, 7, 0.99, 1, &other)

	got, err := service.Summarize(context.Background(), &owner)
	require.NoError(t, err)

	assert.Equal(t, int64(9), got.TotalScans)
	assert.Equal(t, int64(5), got.TotalThreats)

	var severitySum int64
	for _, b := range got.SeverityDistribution {
		severitySum += b.Value
	}
	assert.Equal(t, got.TotalScans, severitySum)

	require.Len(t, got.StatusDistribution, 2)
	assert.Equal(t, "Active", got.StatusDistribution[0].Name)
	assert.Equal(t, int64(5), got.StatusDistribution[0].Value)
	assert.Equal(t, "Remediated", got.StatusDistribution[1].Name)
}

func TestStatsService_ReadAfterWrite(t *testing.T) {
	repo := testutil.NewMockAlertRepository()
	stats := NewStatsService(repo)
	remediation := NewRemediationService(repo, &testutil.MockPublisher{}, logger.Nop())

	owner := int64(1)
	seedAlerts(t, repo, 1, 0.95, 1, &owner)

	_, err := remediation.PerformAction(context.Background(), 1, "Approve")
	require.NoError(t, err)

	got, err := stats.Summarize(context.Background(), &owner)
	require.NoError(t, err)
	assert.Equal(t, int64(0), got.StatusDistribution[0].Value)
	assert.Equal(t, int64(1), got.StatusDistribution[1].Value)
	assert.Equal(t, string(alert.StatusRemediated), got.StatusDistribution[1].Name)
}
