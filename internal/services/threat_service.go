package services

import (
	"context"
	"time"

	"github.com/pratik-mahalle/threatwatch/internal/domain/alert"
	"github.com/pratik-mahalle/threatwatch/internal/domain/notification"
	"github.com/pratik-mahalle/threatwatch/internal/domain/threat"
	"github.com/pratik-mahalle/threatwatch/internal/events"
	"github.com/pratik-mahalle/threatwatch/internal/pkg/errors"
	"github.com/pratik-mahalle/threatwatch/internal/pkg/logger"
)

// ThreatService classifies traffic and records the result as an alert
type ThreatService struct {
	classifier threat.Classifier
	alerts     alert.Repository
	dispatcher notification.Dispatcher
	publisher  events.Publisher
	logger     *logger.Logger
}

// NewThreatService creates a new threat service
func NewThreatService(
	classifier threat.Classifier,
	alerts alert.Repository,
	dispatcher notification.Dispatcher,
	publisher events.Publisher,
	log *logger.Logger,
) *ThreatService {
	return &ThreatService{
		classifier: classifier,
		alerts:     alerts,
		dispatcher: dispatcher,
		publisher:  publisher,
		logger:     log,
	}
}

// ClassifyAndRecord classifies one flow, persists the alert and hands
// qualifying threats to the notification dispatcher. It returns once the
// alert is stored; delivery happens in the background.
func (s *ThreatService) ClassifyAndRecord(ctx context.Context, features threat.FeatureRecord, ownerID *int64) (*alert.AlertSummary, error) {
	verdict, err := s.classifier.Classify(ctx, features)
	if err != nil {
		return nil, err
	}

	a := alert.New(verdict, features.SrcIP, ownerID)
	if _, err := s.alerts.Create(ctx, a); err != nil {
		s.logger.ErrorWithErr(err, "Failed to record alert")
		if _, ok := errors.As(err); ok {
			return nil, err
		}
		return nil, errors.PersistenceFailure("Failed to record alert", err)
	}

	s.logger.WithFields(map[string]interface{}{
		"alert_id": a.ID,
		"user_id":  ownerID,
		"label":    a.VerdictLabel,
		"severity": a.Severity,
	}).Info("Alert recorded")

	if err := s.publisher.Publish(ctx, events.NewEvent(events.TypeAlertCreated, a)); err != nil {
		s.logger.WithError(err).Warn("Failed to publish alert event")
	}

	if verdict.ShouldNotify() {
		s.dispatcher.Enqueue(notification.Job{
			Alert:         *a,
			Verdict:       verdict,
			SourceAddress: features.SrcIP,
			EnqueuedAt:    time.Now(),
		})
	}

	return &alert.AlertSummary{
		ID:         a.ID,
		IsThreat:   verdict.IsThreat,
		Confidence: verdict.Confidence,
		Severity:   verdict.Severity,
		Timestamp:  a.CreatedAt,
	}, nil
}
