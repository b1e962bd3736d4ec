// Package events carries booking lifecycle notifications to subscribers
// outside the request path.
package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	BookingCreated   = "booking.created"
	BookingConfirmed = "booking.confirmed"
	BookingCancelled = "booking.cancelled"
	BookingCompleted = "booking.completed"
)

type Event struct {
	ID            string    `json:"event_id"`
	Type          string    `json:"event_type"`
	AppointmentID string    `json:"appointment_id"`
	ResourceID    string    `json:"resource_id"`
	CustomerID    string    `json:"customer_id"`
	ServiceID     string    `json:"service_id,omitempty"`
	Date          string    `json:"date"`
	Time          string    `json:"time"`
	Status        string    `json:"status"`
	OccurredAt    time.Time `json:"occurred_at"`
}

func New(eventType string, occurredAt time.Time) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		OccurredAt: occurredAt,
	}
}

type Publisher interface {
	Publish(ctx context.Context, ev Event) error
}

// Nop drops every event.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }
