// Package events publishes alert lifecycle changes for other consumers.
package events

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/pratik-mahalle/threatwatch/internal/domain/alert"
)

// Type names an alert lifecycle change
type Type string

const (
	TypeAlertCreated       Type = "alert.created"
	TypeAlertStatusChanged Type = "alert.status_changed"
)

// Event is the JSON payload published for each change
type Event struct {
	ID         string      `json:"id"`
	Type       Type        `json:"type"`
	Alert      alert.Alert `json:"alert"`
	OccurredAt time.Time   `json:"occurred_at"`
}

// NewEvent stamps a new event for a
func NewEvent(t Type, a *alert.Alert) Event {
	return Event{
		ID:         uuid.New().String(),
		Type:       t,
		Alert:      *a,
		OccurredAt: time.Now().UTC(),
	}
}

// Publisher delivers events. A failed publish is never fatal to the caller.
type Publisher interface {
	Publish(ctx context.Context, ev Event) error
}

// NopPublisher drops every event
type NopPublisher struct{}

func (NopPublisher) Publish(ctx context.Context, ev Event) error { return nil }
