package notify

import (
	"context"
	"strings"
	"unicode"

	"github.com/pratik-mahalle/threatwatch/internal/domain/notification"
)

// SMS delivery modes
const (
	// SMSModeEmail sends the text as a short email to the owner's address
	SMSModeEmail = "email"
	// SMSModeGateway sends to {digits}@{domain} through an email-to-SMS gateway
	SMSModeGateway = "gateway"
)

const smsSubjectLen = 30

// SMSTransport delivers short texts over a mail transport
type SMSTransport struct {
	mail   notification.Transport
	mode   string
	domain string
}

// NewSMSTransport creates an SMS transport on top of mail
func NewSMSTransport(mail notification.Transport, mode, gatewayDomain string) *SMSTransport {
	return &SMSTransport{mail: mail, mode: mode, domain: gatewayDomain}
}

// AddressFor picks the destination for the owner. An empty string means the
// owner cannot be reached on this channel.
func (t *SMSTransport) AddressFor(p *notification.OwnerPreferences) string {
	if t.mode != SMSModeGateway {
		return p.EmailAddress
	}
	digits := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, p.SecondaryAddress)
	if digits == "" || t.domain == "" {
		return ""
	}
	return digits + "@" + t.domain
}

// Send wraps the text in a plain mail message
func (t *SMSTransport) Send(ctx context.Context, msg notification.Message) error {
	out := notification.Message{
		ID:      msg.ID,
		Channel: notification.ChannelSMS,
		To:      msg.To,
		Body:    msg.Body,
	}
	if t.mode != SMSModeGateway {
		out.Subject = "SMS: " + truncate(msg.Body, smsSubjectLen)
	}
	return t.mail.Send(ctx, out)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
