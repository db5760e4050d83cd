// Package service implements the seat desk workflows: reservation,
// clearing, seat metadata, announcements, expiry and staff login.  Each
// workflow talks to storage through the small interfaces below, which the
// MySQL repositories and the in-memory stores both satisfy.
package service

import (
	"context"

	"github.com/iliyamo/armhub-seatdesk/internal/model"
	"github.com/iliyamo/armhub-seatdesk/internal/queue"
	"github.com/iliyamo/armhub-seatdesk/internal/repository"
)

// BookingStore persists live bookings.
type BookingStore interface {
	Create(ctx context.Context, b model.Booking) error
	Get(ctx context.Context, id string) (model.Booking, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f repository.BookingFilter) ([]model.Booking, error)
}

// MetadataStore persists seat annotations.
type MetadataStore interface {
	Put(ctx context.Context, m model.SeatMetadata) error
	Delete(ctx context.Context, key model.SeatKey) error
	All(ctx context.Context) (map[model.SeatKey]model.SeatMetadata, error)
}

// NewsStore persists announcements.
type NewsStore interface {
	Create(ctx context.Context, n model.RoomNews) error
	List(ctx context.Context) ([]model.RoomNews, error)
	Delete(ctx context.Context, id string) error
}

// UserStore persists staff accounts.
type UserStore interface {
	Create(ctx context.Context, email, passwordHash, role string) (uint64, error)
	GetByEmail(ctx context.Context, email string) (model.User, error)
	GetByID(ctx context.Context, id uint64) (model.User, error)
}

// EventPublisher emits booking lifecycle events.  Publishing is best
// effort: workflows log a failed publish and carry on.
type EventPublisher interface {
	Publish(ctx context.Context, ev queue.SeatEvent) error
}

var (
	_ BookingStore  = (*repository.BookingRepo)(nil)
	_ MetadataStore = (*repository.SeatMetadataRepo)(nil)
	_ NewsStore     = (*repository.NewsRepo)(nil)
	_ UserStore     = (*repository.UserRepo)(nil)
)
