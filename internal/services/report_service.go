package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"

	"github.com/pratik-mahalle/threatwatch/internal/domain/notification"
	"github.com/pratik-mahalle/threatwatch/internal/domain/stats"
	"github.com/pratik-mahalle/threatwatch/internal/domain/user"
	"github.com/pratik-mahalle/threatwatch/internal/notify"
	"github.com/pratik-mahalle/threatwatch/internal/pkg/logger"
	"github.com/pratik-mahalle/threatwatch/internal/pkg/metrics"
	"github.com/pratik-mahalle/threatwatch/internal/reports"
)

// ReportService mails each subscriber a summary of their own alerts
type ReportService struct {
	users   user.Repository
	stats   stats.Service
	mail    notification.Transport
	archive reports.Archive
	logger  *logger.Logger
	now     func() time.Time
}

// NewReportService creates a report service. archive may be nil.
func NewReportService(users user.Repository, statsSvc stats.Service, mail notification.Transport, archive reports.Archive, log *logger.Logger) *ReportService {
	return &ReportService{
		users:   users,
		stats:   statsSvc,
		mail:    mail,
		archive: archive,
		logger:  log,
		now:     time.Now,
	}
}

// SendWeekly sends one report per subscriber and returns how many were sent.
// A failure for one user does not stop the others.
func (s *ReportService) SendWeekly(ctx context.Context) (int, error) {
	subscribers, err := s.users.ListByPreference(ctx, user.PreferenceWeeklyReports)
	if err != nil {
		metrics.RecordReport("failed")
		return 0, err
	}

	to := s.now().UTC()
	from := to.AddDate(0, 0, -7)

	var result *multierror.Error
	sent := 0
	for _, u := range subscribers {
		if err := s.sendOne(ctx, u, from, to); err != nil {
			metrics.RecordReport("failed")
			result = multierror.Append(result, fmt.Errorf("user %d: %w", u.ID, err))
			continue
		}
		metrics.RecordReport("sent")
		sent++
	}

	s.logger.WithFields(map[string]interface{}{
		"subscribers": len(subscribers),
		"sent":        sent,
	}).Info("Weekly reports sent")

	return sent, result.ErrorOrNil()
}

func (s *ReportService) sendOne(ctx context.Context, u *user.User, from, to time.Time) error {
	ownerID := u.ID
	summary, err := s.stats.Summarize(ctx, &ownerID)
	if err != nil {
		return err
	}

	subject, body, err := notify.WeeklyReport(summary, from, to)
	if err != nil {
		return err
	}

	if s.archive != nil {
		if _, err := s.archive.Put(ctx, to, u.ID, []byte(body)); err != nil {
			s.logger.WithError(err).Warn("Failed to archive weekly report")
		}
	}

	return s.mail.Send(ctx, notification.Message{
		ID:      uuid.New().String(),
		Channel: notification.ChannelEmail,
		To:      u.Email,
		Subject: subject,
		Body:    body,
		HTML:    true,
	})
}
