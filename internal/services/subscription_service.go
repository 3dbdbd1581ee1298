package services

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/pratik-mahalle/threatwatch/internal/domain/notification"
	"github.com/pratik-mahalle/threatwatch/internal/notify"
	"github.com/pratik-mahalle/threatwatch/internal/pkg/logger"
	"github.com/pratik-mahalle/threatwatch/internal/pkg/metrics"
)

// SubscriptionService confirms newsletter signups by mail. Nothing is stored.
type SubscriptionService struct {
	mail   notification.Transport
	logger *logger.Logger
	wg     sync.WaitGroup
}

// NewSubscriptionService creates a subscription service
func NewSubscriptionService(mail notification.Transport, log *logger.Logger) *SubscriptionService {
	return &SubscriptionService{mail: mail, logger: log}
}

// Subscribe queues the confirmation mail and returns at once. The send
// outlives the request; failures are logged.
func (s *SubscriptionService) Subscribe(ctx context.Context, email string) {
	subject, body := notify.NewsletterConfirmation()
	msg := notification.Message{
		ID:      uuid.New().String(),
		Channel: notification.ChannelEmail,
		To:      email,
		Subject: subject,
		Body:    body,
		HTML:    true,
	}

	sendCtx := context.WithoutCancel(ctx)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		if err := s.mail.Send(sendCtx, msg); err != nil {
			metrics.RecordNotification(string(notification.ChannelEmail), string(notification.DeliveryStatusFailed))
			s.logger.With("recipient", email).ErrorWithErr(err, "Failed to send newsletter confirmation")
			return
		}
		metrics.RecordNotification(string(notification.ChannelEmail), string(notification.DeliveryStatusSent))
		s.logger.With("recipient", email).Info("Newsletter confirmation sent")
	}()
}

// Wait blocks until every queued confirmation has been attempted
func (s *SubscriptionService) Wait() {
	s.wg.Wait()
}
