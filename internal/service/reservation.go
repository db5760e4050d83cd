package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/iliyamo/armhub-seatdesk/internal/failure"
	"github.com/iliyamo/armhub-seatdesk/internal/live"
	"github.com/iliyamo/armhub-seatdesk/internal/model"
	"github.com/iliyamo/armhub-seatdesk/internal/queue"
	"github.com/iliyamo/armhub-seatdesk/internal/repository"
	"github.com/iliyamo/armhub-seatdesk/internal/utils"
	"github.com/iliyamo/armhub-seatdesk/internal/validator"
)

// ReserveRequest is the reservation form.  Text fields are trimmed before
// validation; an empty duration selects the default.
type ReserveRequest struct {
	Room     model.RoomType `json:"room" validate:"room"`
	SeatID   int            `json:"seat_id" validate:"gte=1"`
	Name     string         `json:"name" validate:"notblank,max=120"`
	Group    string         `json:"group" validate:"notblank,max=64"`
	Phone    string         `json:"phone" validate:"notblank,max=32"`
	Duration model.Duration `json:"duration" validate:"duration"`
}

// ReserveResult is a created booking plus the one-time self-cancel token.
type ReserveResult struct {
	Booking     model.Booking `json:"booking"`
	CancelToken string        `json:"cancel_token"`
}

// Reservations runs the requester-facing booking workflow.
type Reservations struct {
	Bookings   BookingStore
	Capacities model.Capacities
	Guard      bool // claim each seat slot under a unique key
	Location   *time.Location
	Notifier   live.Notifier
	Events     EventPublisher
	Log        *zap.Logger
	Now        func() time.Time
}

func (s *Reservations) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Reserve validates req and records a booking for the addressed seat.
// With the claim guard on, a seat that already has a live booking is
// rejected with a 409 failure; with it off the insert is unconditional.
// A failed write is reported once and never retried.
func (s *Reservations) Reserve(ctx context.Context, req ReserveRequest) (ReserveResult, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Group = strings.TrimSpace(req.Group)
	req.Phone = strings.TrimSpace(req.Phone)
	if req.Duration == "" {
		req.Duration = model.DefaultDuration
	}
	if err := validator.ValidateStruct(&req); err != nil {
		return ReserveResult{}, err
	}
	key := model.SeatKey{Room: req.Room, Number: req.SeatID}
	if err := key.Validate(s.Capacities); err != nil {
		return ReserveResult{}, failure.BadRequest(err)
	}

	raw, hash, err := utils.NewCancelToken()
	if err != nil {
		s.Log.Error("generate cancel token", zap.Error(err))
		return ReserveResult{}, failure.Internal("could not create booking")
	}

	now := s.now().In(s.location())
	b := model.Booking{
		ID:              uuid.NewString(),
		SeatID:          req.SeatID,
		Room:            req.Room,
		RequesterName:   req.Name,
		RequesterGroup:  req.Group,
		RequesterPhone:  req.Phone,
		StartTime:       now.Format("15:04"),
		Duration:        req.Duration,
		CreatedAt:       now.UnixMilli(),
		CancelTokenHash: hash,
	}
	if s.Guard {
		claim := key.String()
		b.ClaimKey = &claim
	}

	if err := s.Bookings.Create(ctx, b); err != nil {
		if errors.Is(err, repository.ErrSeatTaken) {
			return ReserveResult{}, failure.Conflict(fmt.Sprintf("seat %d in the %s room is already taken", key.Number, key.Room))
		}
		s.Log.Error("save booking failed",
			zap.String("seat", key.String()), zap.String("requester", b.RequesterName), zap.Error(err))
		return ReserveResult{}, failure.Internal("could not save booking")
	}

	s.Log.Info("seat reserved",
		zap.String("booking_id", b.ID), zap.String("seat", key.String()), zap.String("duration", string(b.Duration)))
	s.Notifier.Notify(ctx, b.Room)
	emit(ctx, s.Events, s.Log, queue.EventBookingCreated, b, "", now)
	return ReserveResult{Booking: b, CancelToken: raw}, nil
}

// Cancel lets a requester release their own booking by presenting the
// token returned at creation.
func (s *Reservations) Cancel(ctx context.Context, bookingID, cancelToken string) error {
	b, err := s.Bookings.Get(ctx, bookingID)
	if errors.Is(err, repository.ErrNotFound) {
		return failure.NotFound("booking")
	}
	if err != nil {
		s.Log.Error("load booking failed", zap.String("booking_id", bookingID), zap.Error(err))
		return failure.Internal("could not load booking")
	}
	if !utils.TokenMatches(b.CancelTokenHash, strings.TrimSpace(cancelToken)) {
		return failure.Forbidden("cancel token does not match this booking")
	}

	if err := s.Bookings.Delete(ctx, bookingID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return failure.NotFound("booking")
		}
		s.Log.Error("delete booking failed", zap.String("booking_id", bookingID), zap.Error(err))
		return failure.Internal("could not cancel booking")
	}

	s.Log.Info("booking cancelled by requester", zap.String("booking_id", b.ID), zap.String("seat", b.Key().String()))
	s.Notifier.Notify(ctx, b.Room)
	emit(ctx, s.Events, s.Log, queue.EventBookingCancelled, b, "", s.now())
	return nil
}

// ListByRequester returns the bookings made under name, newest first.
// Names are compared ignoring case and surrounding space.
func (s *Reservations) ListByRequester(ctx context.Context, name string) ([]model.Booking, error) {
	name = strings.TrimSpace(name)
	if err := validator.ValidateVar(name, "notblank,max=120"); err != nil {
		return nil, failure.BadRequestFromString("name is required and must be at most 120 characters")
	}
	out, err := s.Bookings.List(ctx, repository.BookingFilter{RequesterName: name})
	if err != nil {
		s.Log.Error("list requester bookings failed", zap.Error(err))
		return nil, failure.Internal("could not list bookings")
	}
	return out, nil
}

func (s *Reservations) location() *time.Location {
	if s.Location == nil {
		return time.Local
	}
	return s.Location
}
