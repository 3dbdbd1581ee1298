package alert

import (
	"fmt"
	"time"

	"github.com/pratik-mahalle/threatwatch/internal/domain/threat"
)

// Security event levels
const (
	LevelError   = "ERROR"
	LevelWarning = "WARNING"
)

// SecurityEvent is a log-style view of a stored alert
type SecurityEvent struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"`
	Event     string    `json:"event"`
	Source    string    `json:"source"`
	User      string    `json:"user"`
	IP        string    `json:"ip"`
	Message   string    `json:"message"`
	TraceID   string    `json:"trace_id"`
}

// NewSecurityEvent renders a as a security event with the given trace id
func NewSecurityEvent(a *Alert, traceID string) SecurityEvent {
	level := LevelWarning
	if a.Severity == threat.SeverityCritical || a.Severity == threat.SeverityHigh {
		level = LevelError
	}
	return SecurityEvent{
		ID:        fmt.Sprintf("log-%d", a.ID),
		Timestamp: a.CreatedAt,
		Level:     level,
		Event:     string(a.VerdictLabel),
		Source:    "IDS/IPS",
		User:      "System",
		IP:        a.SourceAddress,
		Message:   fmt.Sprintf("Threat detected: %s with %v confidence.", a.VerdictLabel, a.Confidence),
		TraceID:   traceID,
	}
}
