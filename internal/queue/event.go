// Package queue defines the booking lifecycle events exchanged over
// RabbitMQ and the consumer that turns them into an audit log.
package queue

import "github.com/iliyamo/armhub-seatdesk/internal/model"

// Event types published on the seat events queue.
const (
	EventBookingCreated   = "booking.created"
	EventBookingCancelled = "booking.cancelled"
	EventBookingCleared   = "booking.cleared"
	EventBookingExpired   = "booking.expired"
)

// SeatEvent describes one change to a seat slot.  It carries enough of the
// booking for consumers to log or notify without querying the database.
type SeatEvent struct {
	Type          string         `json:"type"`
	BookingID     string         `json:"booking_id"`
	Room          model.RoomType `json:"room"`
	SeatID        int            `json:"seat_id"`
	RequesterName string         `json:"requester_name"`
	Duration      model.Duration `json:"duration"`
	Actor         string         `json:"actor,omitempty"` // staff email for clears, empty otherwise
	OccurredAt    string         `json:"occurred_at"`     // RFC3339, UTC
}

// NewSeatEvent builds an event of type typ for b.
func NewSeatEvent(typ string, b model.Booking, actor, occurredAt string) SeatEvent {
	return SeatEvent{
		Type:          typ,
		BookingID:     b.ID,
		Room:          b.Room,
		SeatID:        b.SeatID,
		RequesterName: b.RequesterName,
		Duration:      b.Duration,
		Actor:         actor,
		OccurredAt:    occurredAt,
	}
}
