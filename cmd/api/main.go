// @title ThreatWatch API
// @version 1.0
// @description Network threat classification, alerting and remediation.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pratik-mahalle/threatwatch/internal/api/handlers"
	"github.com/pratik-mahalle/threatwatch/internal/api/router"
	"github.com/pratik-mahalle/threatwatch/internal/classifier"
	"github.com/pratik-mahalle/threatwatch/internal/config"
	"github.com/pratik-mahalle/threatwatch/internal/events"
	"github.com/pratik-mahalle/threatwatch/internal/notify"
	"github.com/pratik-mahalle/threatwatch/internal/pkg/logger"
	"github.com/pratik-mahalle/threatwatch/internal/pkg/validator"
	"github.com/pratik-mahalle/threatwatch/internal/reports"
	"github.com/pratik-mahalle/threatwatch/internal/repository/postgres"
	"github.com/pratik-mahalle/threatwatch/internal/services"
	"github.com/pratik-mahalle/threatwatch/internal/worker"
	"github.com/pratik-mahalle/threatwatch/migrations"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "threatwatch: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log := logger.Init(logger.Config{
		Level:      cfg.Logging.Level,
		Format:     cfg.Logging.Format,
		OutputPath: cfg.Logging.OutputPath,
	})

	// Database
	db, err := postgres.New(cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	migrationsFS, err := migrations.GetFS(cfg.Database.Driver)
	if err != nil {
		return err
	}
	applied, err := postgres.RunMigrations(db, cfg.Database.Driver, migrationsFS)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	log.WithFields(map[string]interface{}{
		"driver":  cfg.Database.Driver,
		"applied": applied,
	}).Info("Database ready")

	alertRepo := postgres.NewAlertRepository(db, cfg.Database.Driver)
	userRepo := postgres.NewUserRepository(db, cfg.Database.Driver)

	// Classification model
	model, err := classifier.NewModel(cfg.Model, log)
	if err != nil {
		return fmt.Errorf("failed to load model: %w", err)
	}
	adapter := classifier.NewAdapter(model, log)

	// Alert events
	checks := map[string]handlers.Check{"database": db.PingContext}
	var publisher events.Publisher = events.NopPublisher{}
	if cfg.Redis.Enabled {
		redisPub := events.NewRedisPublisher(
			events.NewRedisClient(cfg.Redis.Addr(), cfg.Redis.Password, cfg.Redis.DB),
			cfg.Redis.Channel,
		)
		defer redisPub.Close()
		publisher = redisPub
		checks["redis"] = redisPub.Ping
		log.Infof("Publishing alert events to redis channel %s", cfg.Redis.Channel)
	}

	// Notifications
	mail := notify.NewSMTPTransport(notify.SMTPConfig{
		Host:        cfg.Notification.SMTPHost,
		Port:        cfg.Notification.SMTPPort,
		Username:    cfg.Notification.SMTPUsername,
		Password:    cfg.Notification.SMTPPassword,
		From:        cfg.Notification.From,
		DialTimeout: cfg.Notification.DialTimeout,
	})
	sms := notify.NewSMSTransport(mail, cfg.Notification.SMSMode, cfg.Notification.SMSGatewayDomain)
	notificationRouter := services.NewNotificationRouter(userRepo, mail, sms, log)

	dispatcher := worker.NewDispatcher(notificationRouter, cfg.Notification.Workers, cfg.Notification.QueueSize, log)
	dispatcher.Start()

	// Services
	val := validator.New()
	threatService := services.NewThreatService(adapter, alertRepo, dispatcher, publisher, log)
	alertService := services.NewAlertService(alertRepo, log)
	statsService := services.NewStatsService(alertRepo)
	remediationService := services.NewRemediationService(alertRepo, publisher, log)
	userService := services.NewUserService(userRepo, cfg.Auth.BCryptCost, log)
	subscriptionService := services.NewSubscriptionService(mail, log)

	// Weekly reports
	var scheduler *worker.ReportScheduler
	if cfg.Reports.Enabled {
		var archive reports.Archive
		if cfg.Reports.S3Bucket != "" {
			s3Archive, err := reports.NewS3Archive(context.Background(), cfg.Reports)
			if err != nil {
				return fmt.Errorf("failed to configure report archive: %w", err)
			}
			archive = s3Archive
		}

		reportService := services.NewReportService(userRepo, statsService, mail, archive, log)
		scheduler, err = worker.NewReportScheduler(reportService, cfg.Reports.Schedule, log)
		if err != nil {
			return err
		}
		if err := scheduler.Start(); err != nil {
			return err
		}
	}

	stop := make(chan struct{})
	h := &router.Handlers{
		Health:      handlers.NewHealthHandler(checks, log),
		Auth:        handlers.NewAuthHandler(userService, cfg, log, val),
		User:        handlers.NewUserHandler(userService, log, val),
		Threat:      handlers.NewThreatHandler(threatService, log),
		Alert:       handlers.NewAlertHandler(alertService, log),
		Stats:       handlers.NewStatsHandler(statsService),
		Remediation: handlers.NewRemediationHandler(remediationService, log, val),
		Newsletter:  handlers.NewNewsletterHandler(subscriptionService, log, val),
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.New(cfg, log, h, stop),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Infof("Server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		log.Infof("Received %s, shutting down", sig)
	case err := <-serverErr:
		if err != nil {
			log.ErrorWithErr(err, "Server failed")
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	// Stop intake first, then drain queued notifications
	if err := srv.Shutdown(ctx); err != nil {
		log.ErrorWithErr(err, "Server forced to shutdown")
	}
	close(stop)
	if scheduler != nil {
		if err := scheduler.Stop(ctx); err != nil {
			log.ErrorWithErr(err, "Report scheduler did not stop cleanly")
		}
	}
	if err := dispatcher.Stop(ctx); err != nil {
		log.ErrorWithErr(err, "Notification queue not fully drained")
	}
	subscriptionService.Wait()

	log.Info("Server stopped")
	return nil
}
