package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pratik-mahalle/threatwatch/internal/domain/alert"
	"github.com/pratik-mahalle/threatwatch/internal/domain/remediation"
	"github.com/pratik-mahalle/threatwatch/internal/domain/threat"
	"github.com/pratik-mahalle/threatwatch/internal/events"
	"github.com/pratik-mahalle/threatwatch/internal/pkg/errors"
	"github.com/pratik-mahalle/threatwatch/internal/pkg/logger"
	"github.com/pratik-mahalle/threatwatch/internal/testutil"
)

func newRemediationFixture() (*RemediationService, *testutil.MockAlertRepository, *testutil.MockPublisher) {
	repo := testutil.NewMockAlertRepository()
	pub := &testutil.MockPublisher{}
	return NewRemediationService(repo, pub, logger.Nop()), repo, pub
}

func TestRemediationService_PerformAction(t *testing.T) {
	tests := []struct {
		action string
		want   alert.Status
	}{
		{"Approve", alert.StatusRemediated},
		{"Retry", alert.StatusActive},
		{"Rollback", alert.StatusActive},
		{"Stop", alert.StatusSafe},
	}

	for _, tt := range tests {
		t.Run(tt.action, func(t *testing.T) {
			service, repo, pub := newRemediationFixture()
			repo.Put(&alert.Alert{ID: 42, Status: alert.StatusActive, Severity: threat.SeverityCritical})

			res, err := service.PerformAction(context.Background(), 42, tt.action)
			require.NoError(t, err)
			assert.Equal(t, "Action "+tt.action+" performed successfully", res.Message)
			assert.Equal(t, tt.want, res.Status)

			stored, _ := repo.GetByID(context.Background(), 42)
			assert.Equal(t, tt.want, stored.Status)

			require.Len(t, pub.Published(), 1)
			assert.Equal(t, events.TypeAlertStatusChanged, pub.Published()[0].Type)
		})
	}
}

func TestRemediationService_PerformAction_Idempotent(t *testing.T) {
	service, repo, _ := newRemediationFixture()
	repo.Put(&alert.Alert{ID: 42, Status: alert.StatusActive})

	for i := 0; i < 2; i++ {
		res, err := service.PerformAction(context.Background(), 42, "Stop")
		require.NoError(t, err)
		assert.Equal(t, alert.StatusSafe, res.Status)
	}
}

func TestRemediationService_PerformAction_NotFound(t *testing.T) {
	service, _, pub := newRemediationFixture()

	_, err := service.PerformAction(context.Background(), 999, "Approve")
	assert.True(t, errors.HasCode(err, errors.ErrCodeNotFound))
	assert.Empty(t, pub.Published())
}

func TestRemediationService_PerformAction_InvalidAction(t *testing.T) {
	for _, name := range []string{"Explode", "approve", ""} {
		t.Run(name, func(t *testing.T) {
			service, repo, _ := newRemediationFixture()
			repo.Put(&alert.Alert{ID: 42, Status: alert.StatusActive})

			_, err := service.PerformAction(context.Background(), 42, name)
			assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidAction))

			stored, _ := repo.GetByID(context.Background(), 42)
			assert.Equal(t, alert.StatusActive, stored.Status, "status must not change")
		})
	}
}

func TestRemediationService_ListTasks(t *testing.T) {
	service, repo, _ := newRemediationFixture()
	owner := int64(9)
	seedAlerts(t, repo, 15, 0.95, 1, &owner)
	seedAlerts(t, repo, 10, 0.3, 0, nil)

	tasks, err := service.ListTasks(context.Background())
	require.NoError(t, err)
	assert.Len(t, tasks, remediation.TaskLimit)

	// newest first: the ten Normal alerts lead
	assert.Equal(t, int64(25), tasks[0].ID)
	assert.Equal(t, remediation.TaskCompleted, tasks[0].Status)
	assert.Equal(t, 100, tasks[0].Progress)

	last := tasks[len(tasks)-1]
	assert.Equal(t, remediation.PlaybookIsolateHost, last.Playbook)
	assert.Equal(t, remediation.TaskInProgress, last.Status)
	assert.Equal(t, remediation.ProgressFor(alert.StatusActive, last.ID), last.Progress)
}

func TestRemediationService_ExecutePlaybook(t *testing.T) {
	service, repo, pub := newRemediationFixture()
	service.intn = func(n int) int { return n - 1 }

	res, err := service.ExecutePlaybook(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Playbook executed successfully", res.Message)

	stored, err := repo.GetByID(context.Background(), res.TaskID)
	require.NoError(t, err)
	assert.Equal(t, "192.168.1.200", stored.SourceAddress)
	assert.True(t, strings.HasPrefix(stored.SourceAddress, "192.168.1."))
	assert.Equal(t, 0.98, stored.Confidence)
	assert.Equal(t, threat.LabelAttack, stored.VerdictLabel)
	assert.Equal(t, threat.SeverityCritical, stored.Severity)
	assert.Equal(t, alert.StatusActive, stored.Status)
	assert.Nil(t, stored.OwnerID)
	assert.Len(t, pub.Published(), 1)
}
