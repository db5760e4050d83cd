package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/iliyamo/armhub-seatdesk/internal/live"
	"github.com/iliyamo/armhub-seatdesk/internal/model"
	"github.com/iliyamo/armhub-seatdesk/internal/queue"
	"github.com/iliyamo/armhub-seatdesk/internal/repository"
)

// Reaper removes bookings whose selected duration has elapsed.  Bookings
// otherwise persist until cleared or cancelled, so the reaper only runs
// when explicitly enabled.
type Reaper struct {
	Enabled  bool
	Interval time.Duration
	Bookings BookingStore
	Location *time.Location
	Notifier live.Notifier
	Events   EventPublisher
	Log      *zap.Logger
	Now      func() time.Time
}

// Sweep deletes every booking that expired at or before now and returns
// how many it removed.  Bookings deleted concurrently are skipped.
func (r *Reaper) Sweep(ctx context.Context, now time.Time) (int, error) {
	loc := r.Location
	if loc == nil {
		loc = time.Local
	}
	bookings, err := r.Bookings.List(ctx, repository.BookingFilter{})
	if err != nil {
		return 0, err
	}

	removed := 0
	touched := map[model.RoomType]bool{}
	for _, b := range bookings {
		if now.Before(b.Duration.ExpiresAt(b.Created(loc))) {
			continue
		}
		if err := r.Bookings.Delete(ctx, b.ID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				continue
			}
			return removed, err
		}
		removed++
		touched[b.Room] = true
		r.Log.Info("booking expired", zap.String("booking_id", b.ID), zap.String("seat", b.Key().String()))
		emit(ctx, r.Events, r.Log, queue.EventBookingExpired, b, "", now)
	}
	for _, room := range model.Rooms {
		if touched[room] && r.Notifier != nil {
			r.Notifier.Notify(ctx, room)
		}
	}
	return removed, nil
}

// Run sweeps on every tick until ctx is done.  It returns at once when the
// reaper is disabled.
func (r *Reaper) Run(ctx context.Context) {
	if !r.Enabled {
		return
	}
	interval := r.Interval
	if interval <= 0 {
		interval = time.Minute
	}
	now := time.Now
	if r.Now != nil {
		now = r.Now
	}
	r.Log.Info("booking reaper started", zap.Duration("interval", interval))

	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			n, err := r.Sweep(ctx, now())
			if err != nil {
				r.Log.Error("reaper sweep failed", zap.Error(err))
				continue
			}
			if n > 0 {
				r.Log.Info("reaper sweep", zap.Int("removed", n))
			}
		}
	}
}
