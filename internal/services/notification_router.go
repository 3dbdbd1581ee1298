package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"

	"github.com/pratik-mahalle/threatwatch/internal/domain/notification"
	"github.com/pratik-mahalle/threatwatch/internal/notify"
	"github.com/pratik-mahalle/threatwatch/internal/pkg/errors"
	"github.com/pratik-mahalle/threatwatch/internal/pkg/logger"
	"github.com/pratik-mahalle/threatwatch/internal/pkg/metrics"
)

// NotificationRouter implements notification.Router. Email goes to every
// subscriber; SMS goes to the submitter only.
type NotificationRouter struct {
	directory notification.Directory
	email     notification.Transport
	sms       notification.SecondaryTransport
	logger    *logger.Logger
}

// NewNotificationRouter creates a new router
func NewNotificationRouter(directory notification.Directory, email notification.Transport, sms notification.SecondaryTransport, log *logger.Logger) *NotificationRouter {
	return &NotificationRouter{
		directory: directory,
		email:     email,
		sms:       sms,
		logger:    log,
	}
}

// Route runs both channels concurrently and returns every delivery error
func (r *NotificationRouter) Route(ctx context.Context, job notification.Job) error {
	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		result *multierror.Error
	)

	collect := func(err error) {
		if err == nil {
			return
		}
		mu.Lock()
		result = multierror.Append(result, err)
		mu.Unlock()
	}

	wg.Add(2)
	go func() {
		defer wg.Done()
		collect(r.routeEmail(ctx, job))
	}()
	go func() {
		defer wg.Done()
		collect(r.routeSMS(ctx, job))
	}()
	wg.Wait()

	return result.ErrorOrNil()
}

func (r *NotificationRouter) routeEmail(ctx context.Context, job notification.Job) error {
	recipients, err := r.directory.ListRecipients(ctx, notification.ChannelEmail)
	if err != nil {
		metrics.RecordNotification(string(notification.ChannelEmail), string(notification.DeliveryStatusFailed))
		return errors.NotificationFailure(string(notification.ChannelEmail), err)
	}
	if len(recipients) == 0 {
		metrics.RecordNotification(string(notification.ChannelEmail), string(notification.DeliveryStatusSkipped))
		return nil
	}

	subject, body, err := notify.ThreatEmail(job.Alert)
	if err != nil {
		return errors.NotificationFailure(string(notification.ChannelEmail), err)
	}

	var result *multierror.Error
	for _, rcpt := range recipients {
		msg := notification.Message{
			ID:      uuid.New().String(),
			Channel: notification.ChannelEmail,
			To:      rcpt.Address,
			Subject: subject,
			Body:    body,
			HTML:    true,
		}
		if err := r.email.Send(ctx, msg); err != nil {
			metrics.RecordNotification(string(notification.ChannelEmail), string(notification.DeliveryStatusFailed))
			result = multierror.Append(result, errors.NotificationFailure(
				string(notification.ChannelEmail), fmt.Errorf("recipient %s: %w", rcpt.Address, err)))
			continue
		}
		metrics.RecordNotification(string(notification.ChannelEmail), string(notification.DeliveryStatusSent))
	}

	r.logger.WithFields(map[string]interface{}{
		"alert_id":   job.Alert.ID,
		"recipients": len(recipients),
	}).Debug("Email fan-out finished")

	return result.ErrorOrNil()
}

func (r *NotificationRouter) routeSMS(ctx context.Context, job notification.Job) error {
	if job.Alert.OwnerID == nil {
		return nil
	}

	prefs, err := r.directory.GetPreferences(ctx, *job.Alert.OwnerID)
	if err != nil {
		if errors.HasCode(err, errors.ErrCodeNotFound) {
			return nil
		}
		metrics.RecordNotification(string(notification.ChannelSMS), string(notification.DeliveryStatusFailed))
		return errors.NotificationFailure(string(notification.ChannelSMS), err)
	}
	if !prefs.SecondaryEnabled {
		return nil
	}

	to := r.sms.AddressFor(prefs)
	if to == "" {
		metrics.RecordNotification(string(notification.ChannelSMS), string(notification.DeliveryStatusSkipped))
		return nil
	}

	msg := notification.Message{
		ID:      uuid.New().String(),
		Channel: notification.ChannelSMS,
		To:      to,
		Body:    notify.ThreatSMS(job.Verdict.Label, job.SourceAddress, job.Verdict.Severity),
	}
	if err := r.sms.Send(ctx, msg); err != nil {
		metrics.RecordNotification(string(notification.ChannelSMS), string(notification.DeliveryStatusFailed))
		return errors.NotificationFailure(string(notification.ChannelSMS), fmt.Errorf("recipient %s: %w", to, err))
	}
	metrics.RecordNotification(string(notification.ChannelSMS), string(notification.DeliveryStatusSent))
	return nil
}
