package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/iliyamo/armhub-seatdesk/internal/auth"
	"github.com/iliyamo/armhub-seatdesk/internal/failure"
	"github.com/iliyamo/armhub-seatdesk/internal/live"
	"github.com/iliyamo/armhub-seatdesk/internal/model"
	"github.com/iliyamo/armhub-seatdesk/internal/queue"
	"github.com/iliyamo/armhub-seatdesk/internal/repository"
)

// Clearing is the administrator override that frees occupied seats.
type Clearing struct {
	Bookings BookingStore
	Notifier live.Notifier
	Events   EventPublisher
	Log      *zap.Logger
	Now      func() time.Time
}

// Clear deletes a booking on behalf of an administrator.  confirmName
// must repeat the requester's name as shown on the booking (case and
// surrounding space ignored); anything else aborts without deleting.
// Subscribers are notified only after the store acknowledged the delete.
func (s *Clearing) Clear(ctx context.Context, actor auth.Capability, bookingID, confirmName string) (model.Booking, error) {
	if !actor.Admin {
		return model.Booking{}, failure.ForbiddenError
	}

	b, err := s.Bookings.Get(ctx, bookingID)
	if errors.Is(err, repository.ErrNotFound) {
		return model.Booking{}, failure.NotFound("booking")
	}
	if err != nil {
		s.Log.Error("load booking failed", zap.String("booking_id", bookingID), zap.Error(err))
		return model.Booking{}, failure.Internal("could not load booking")
	}

	if !strings.EqualFold(strings.TrimSpace(confirmName), strings.TrimSpace(b.RequesterName)) {
		return model.Booking{}, failure.Conflict("confirmation does not match the booking's requester")
	}

	if err := s.Bookings.Delete(ctx, bookingID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.Booking{}, failure.NotFound("booking")
		}
		s.Log.Error("clear booking failed", zap.String("booking_id", bookingID), zap.Error(err))
		return model.Booking{}, failure.Internal("could not clear seat")
	}

	s.Log.Info("seat cleared",
		zap.String("booking_id", b.ID), zap.String("seat", b.Key().String()), zap.String("admin", actor.Email))
	s.Notifier.Notify(ctx, b.Room)
	emit(ctx, s.Events, s.Log, queue.EventBookingCleared, b, actor.Email, s.now())
	return b, nil
}

// ListActive returns every live booking, newest first, optionally limited
// to one room.
func (s *Clearing) ListActive(ctx context.Context, actor auth.Capability, room model.RoomType) ([]model.Booking, error) {
	if !actor.Admin {
		return nil, failure.ForbiddenError
	}
	if room != "" && !room.Valid() {
		return nil, failure.BadRequestFromString("room must be one of reading, electronic")
	}
	out, err := s.Bookings.List(ctx, repository.BookingFilter{Room: room})
	if err != nil {
		s.Log.Error("list bookings failed", zap.Error(err))
		return nil, failure.Internal("could not list bookings")
	}
	return out, nil
}

func (s *Clearing) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
