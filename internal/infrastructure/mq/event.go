// Package mq publishes domain events. In "channel" mode events are handled in
// process; in "kafka" mode they are written to a topic.
package mq

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event types.
const (
	EventBookingStatusChanged = "booking.status_changed"
	EventBookingCreated       = "booking.created"
	EventUserMoodRecorded     = "user.mood_recorded"
	EventLiveSessionCreated   = "livesession.created"
)

// Event is the wire form of a domain event.
type Event struct {
	ID          string          `json:"id"`
	Type        string          `json:"type"`
	AggregateID string          `json:"aggregateId"`
	OccurredAt  time.Time       `json:"occurredAt"`
	Payload     json.RawMessage `json:"payload,omitempty"`
}

// NewEvent builds an event with a fresh id. payload is JSON-encoded.
func NewEvent(eventType, aggregateID string, payload any) (Event, error) {
	ev := Event{
		ID:          uuid.NewString(),
		Type:        eventType,
		AggregateID: aggregateID,
		OccurredAt:  time.Now().UTC(),
	}
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return Event{}, err
		}
		ev.Payload = raw
	}
	return ev, nil
}

// Publisher delivers events. Publish must not be called after Close.
type Publisher interface {
	Publish(ctx context.Context, ev Event) error
	Close() error
}

// Handler consumes events on the receiving side.
type Handler func(ctx context.Context, ev Event)

// BookingStatusChanged is the payload of EventBookingStatusChanged.
type BookingStatusChanged struct {
	UserID string `json:"userId"`
	From   string `json:"from"`
	To     string `json:"to"`
}
