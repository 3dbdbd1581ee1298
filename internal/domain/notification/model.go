package notification

import (
	"time"

	"github.com/pratik-mahalle/threatwatch/internal/domain/alert"
	"github.com/pratik-mahalle/threatwatch/internal/domain/threat"
)

// Channel represents a notification channel
type Channel string

const (
	ChannelEmail Channel = "email"
	// ChannelSMS is the urgent secondary channel, sent to the submitter only
	ChannelSMS Channel = "sms"
)

// IsValid checks if the channel is valid
func (c Channel) IsValid() bool {
	return c == ChannelEmail || c == ChannelSMS
}

// DeliveryStatus represents the outcome of one send
type DeliveryStatus string

const (
	DeliveryStatusSent    DeliveryStatus = "sent"
	DeliveryStatusFailed  DeliveryStatus = "failed"
	DeliveryStatusSkipped DeliveryStatus = "skipped"
)

// Message is a single outbound message to one address
type Message struct {
	ID      string
	Channel Channel
	To      string
	Subject string
	Body    string
	HTML    bool
}

// Recipient is a snapshot of one address taken at dispatch time
type Recipient struct {
	UserID  int64
	Address string
}

// OwnerPreferences is what the router needs to know about the submitter
type OwnerPreferences struct {
	EmailEnabled     bool
	SecondaryEnabled bool
	EmailAddress     string
	SecondaryAddress string
}

// Job carries one persisted alert to the router
type Job struct {
	Alert         alert.Alert
	Verdict       threat.Verdict
	SourceAddress string
	EnqueuedAt    time.Time
}
