package services

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/pratik-mahalle/threatwatch/internal/domain/alert"
	"github.com/pratik-mahalle/threatwatch/internal/domain/remediation"
	"github.com/pratik-mahalle/threatwatch/internal/domain/threat"
	"github.com/pratik-mahalle/threatwatch/internal/events"
	"github.com/pratik-mahalle/threatwatch/internal/pkg/errors"
	"github.com/pratik-mahalle/threatwatch/internal/pkg/logger"
	"github.com/pratik-mahalle/threatwatch/internal/pkg/metrics"
)

const simulatedConfidence = 0.98

// RemediationService implements remediation.Service
type RemediationService struct {
	alerts    alert.Repository
	publisher events.Publisher
	logger    *logger.Logger
	intn      func(n int) int
}

// NewRemediationService creates a new remediation service
func NewRemediationService(alerts alert.Repository, publisher events.Publisher, log *logger.Logger) *RemediationService {
	return &RemediationService{
		alerts:    alerts,
		publisher: publisher,
		logger:    log,
		intn:      rand.Intn,
	}
}

// ListTasks returns the newest alerts of every owner as remediation tasks
func (s *RemediationService) ListTasks(ctx context.Context) ([]remediation.Task, error) {
	alerts, err := s.alerts.ListRecent(ctx, nil, remediation.TaskLimit)
	if err != nil {
		return nil, err
	}

	tasks := make([]remediation.Task, 0, len(alerts))
	for _, a := range alerts {
		tasks = append(tasks, remediation.TaskFromAlert(a))
	}
	return tasks, nil
}

// PerformAction moves an alert to the action's target status. The action is
// checked before the store is touched, so an unknown name changes nothing.
func (s *RemediationService) PerformAction(ctx context.Context, alertID int64, name string) (*remediation.ActionResult, error) {
	action, ok := remediation.ParseAction(name)
	if !ok {
		metrics.RecordRemediationAction(name, "invalid")
		return nil, errors.InvalidAction(name)
	}

	a, err := s.alerts.UpdateStatus(ctx, alertID, action.Target())
	if err != nil {
		if errors.HasCode(err, errors.ErrCodeNotFound) {
			metrics.RecordRemediationAction(string(action), "not_found")
		} else {
			metrics.RecordRemediationAction(string(action), "error")
			s.logger.ErrorWithErr(err, "Failed to apply remediation action")
		}
		return nil, err
	}
	metrics.RecordRemediationAction(string(action), "ok")

	s.logger.WithFields(map[string]interface{}{
		"alert_id": alertID,
		"action":   action,
		"status":   a.Status,
	}).Info("Remediation action applied")

	if err := s.publisher.Publish(ctx, events.NewEvent(events.TypeAlertStatusChanged, a)); err != nil {
		s.logger.WithError(err).Warn("Failed to publish alert event")
	}

	return &remediation.ActionResult{
		Message: fmt.Sprintf("Action %s performed successfully", action),
		Status:  a.Status,
	}, nil
}

// ExecutePlaybook records a simulated critical attack without an owner.
// It never notifies anyone.
func (s *RemediationService) ExecutePlaybook(ctx context.Context) (*remediation.ExecuteResult, error) {
	a := &alert.Alert{
		SourceAddress: fmt.Sprintf("192.168.1.%d", 100+s.intn(101)),
		VerdictLabel:  threat.LabelAttack,
		Confidence:    simulatedConfidence,
		Severity:      threat.SeverityCritical,
		Status:        alert.StatusActive,
	}

	id, err := s.alerts.Create(ctx, a)
	if err != nil {
		s.logger.ErrorWithErr(err, "Failed to record simulated alert")
		return nil, err
	}

	if err := s.publisher.Publish(ctx, events.NewEvent(events.TypeAlertCreated, a)); err != nil {
		s.logger.WithError(err).Warn("Failed to publish alert event")
	}

	return &remediation.ExecuteResult{
		Message: "Playbook executed successfully",
		TaskID:  id,
	}, nil
}
