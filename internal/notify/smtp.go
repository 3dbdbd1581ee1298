// Package notify holds the outbound message transports and templates.
package notify

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"mime"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"

	"github.com/pratik-mahalle/threatwatch/internal/domain/notification"
)

// SMTPConfig holds the mail server settings
type SMTPConfig struct {
	Host        string
	Port        int
	Username    string
	Password    string
	From        string
	DialTimeout time.Duration
	// Insecure disables TLS, for local relays and tests
	Insecure bool
}

// SMTPTransport sends one message per connection
type SMTPTransport struct {
	cfg SMTPConfig
	now func() time.Time
}

// NewSMTPTransport creates an SMTP transport
func NewSMTPTransport(cfg SMTPConfig) *SMTPTransport {
	if cfg.DialTimeout == 0 {
		cfg.DialTimeout = 10 * time.Second
	}
	return &SMTPTransport{cfg: cfg, now: time.Now}
}

// Send delivers msg to msg.To. Port 465 uses implicit TLS, anything else
// requires STARTTLS unless the transport is insecure.
func (t *SMTPTransport) Send(ctx context.Context, msg notification.Message) error {
	if msg.To == "" {
		return fmt.Errorf("message %s has no recipient", msg.ID)
	}

	addr := net.JoinHostPort(t.cfg.Host, strconv.Itoa(t.cfg.Port))
	tlsConfig := &tls.Config{ServerName: t.cfg.Host}

	dialer := &net.Dialer{Timeout: t.cfg.DialTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", addr, err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		conn.SetDeadline(deadline)
	}

	var c *smtp.Client
	switch {
	case t.cfg.Insecure:
		c = smtp.NewClient(conn)
	case t.cfg.Port == 465:
		c = smtp.NewClient(tls.Client(conn, tlsConfig))
	default:
		c, err = smtp.NewClientStartTLS(conn, tlsConfig)
		if err != nil {
			return fmt.Errorf("failed to start TLS: %w", err)
		}
	}
	defer c.Close()

	if t.cfg.Username != "" {
		if err := c.Auth(sasl.NewPlainClient("", t.cfg.Username, t.cfg.Password)); err != nil {
			return fmt.Errorf("failed to authenticate: %w", err)
		}
	}

	body := t.compose(msg)
	if err := c.SendMail(t.cfg.From, []string{msg.To}, bytes.NewReader(body)); err != nil {
		return fmt.Errorf("failed to send mail: %w", err)
	}

	return c.Quit()
}

func (t *SMTPTransport) compose(msg notification.Message) []byte {
	contentType := "text/plain"
	if msg.HTML {
		contentType = "text/html"
	}

	domain := "localhost"
	if i := strings.LastIndex(t.cfg.From, "@"); i >= 0 {
		domain = t.cfg.From[i+1:]
	}

	var b bytes.Buffer
	fmt.Fprintf(&b, "From: %s\r\n", t.cfg.From)
	fmt.Fprintf(&b, "To: %s\r\n", msg.To)
	fmt.Fprintf(&b, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", msg.Subject))
	fmt.Fprintf(&b, "Date: %s\r\n", t.now().Format(time.RFC1123Z))
	fmt.Fprintf(&b, "Message-ID: <%s@%s>\r\n", msg.ID, domain)
	b.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&b, "Content-Type: %s; charset=UTF-8\r\n", contentType)
	b.WriteString("Content-Transfer-Encoding: 8bit\r\n")
	b.WriteString("\r\n")
	b.WriteString(strings.ReplaceAll(strings.ReplaceAll(msg.Body, "\r\n", "\n"), "\n", "\r\n"))
	b.WriteString("\r\n")
	return b.Bytes()
}
