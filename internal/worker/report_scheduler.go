package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/pratik-mahalle/threatwatch/internal/pkg/logger"
)

const reportRunTimeout = 10 * time.Minute

// ReportSender sends one round of weekly reports
type ReportSender interface {
	SendWeekly(ctx context.Context) (int, error)
}

// ReportScheduler runs the weekly report job on a cron schedule
type ReportScheduler struct {
	sender   ReportSender
	schedule string
	logger   *logger.Logger

	scheduler    *cron.Cron
	runningMutex sync.Mutex
	isRunning    bool
}

// NewReportScheduler validates the schedule (standard five-field cron)
func NewReportScheduler(sender ReportSender, schedule string, log *logger.Logger) (*ReportScheduler, error) {
	if _, err := cron.ParseStandard(schedule); err != nil {
		return nil, fmt.Errorf("invalid report schedule: %w", err)
	}
	return &ReportScheduler{
		sender:   sender,
		schedule: schedule,
		logger:   log,
	}, nil
}

// Start starts the scheduler
func (s *ReportScheduler) Start() error {
	s.runningMutex.Lock()
	defer s.runningMutex.Unlock()

	if s.isRunning {
		return fmt.Errorf("report scheduler is already running")
	}

	s.scheduler = cron.New()
	if _, err := s.scheduler.AddFunc(s.schedule, s.run); err != nil {
		return fmt.Errorf("failed to schedule reports: %w", err)
	}
	s.scheduler.Start()
	s.isRunning = true

	s.logger.WithFields(map[string]interface{}{
		"schedule": s.schedule,
	}).Info("Report scheduler started")

	return nil
}

// Stop stops the scheduler and waits for a running job until ctx expires
func (s *ReportScheduler) Stop(ctx context.Context) error {
	s.runningMutex.Lock()
	defer s.runningMutex.Unlock()

	if !s.isRunning {
		return nil
	}
	s.isRunning = false

	select {
	case <-s.scheduler.Stop().Done():
		s.logger.Info("Report scheduler stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// RunNow sends reports immediately
func (s *ReportScheduler) RunNow(ctx context.Context) (int, error) {
	return s.sender.SendWeekly(ctx)
}

func (s *ReportScheduler) run() {
	ctx, cancel := context.WithTimeout(context.Background(), reportRunTimeout)
	defer cancel()

	start := time.Now()
	sent, err := s.sender.SendWeekly(ctx)
	fields := map[string]interface{}{
		"sent":     sent,
		"duration": time.Since(start).String(),
	}
	if err != nil {
		s.logger.WithFields(fields).ErrorWithErr(err, "Weekly report run finished with errors")
		return
	}
	s.logger.WithFields(fields).Info("Weekly report run finished")
}
