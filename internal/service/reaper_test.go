package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/iliyamo/armhub-seatdesk/internal/model"
	"github.com/iliyamo/armhub-seatdesk/internal/queue"
)

func TestReaper_DisabledKeepsBookingsIndefinitely(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()
	req := aliRequest(5)
	req.Duration = model.DurationOneHour
	_, err := f.reservations.Reserve(ctx, req)
	require.NoError(t, err)

	r := &Reaper{
		Enabled: false, Interval: time.Millisecond, Bookings: f.bookings, Location: tz,
		Notifier: f.hub, Events: f.events, Log: zap.NewNop(),
		Now: func() time.Time { return f.clock.Add(72 * time.Hour) },
	}

	done := make(chan struct{})
	go func() {
		r.Run(ctx)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("disabled reaper did not return")
	}

	f.clock = f.clock.Add(30 * 24 * time.Hour)
	assert.True(t, occupied(t, f, model.RoomReading, 5))
}

func TestReaper_Sweep(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()

	for seat, d := range map[int]model.Duration{
		1: model.DurationOneHour,
		2: model.DurationTwoHours,
		3: model.DurationThreeHours,
		4: model.DurationFullDay,
	} {
		req := aliRequest(seat)
		req.Duration = d
		_, err := f.reservations.Reserve(ctx, req)
		require.NoError(t, err)
	}
	r := &Reaper{Enabled: true, Bookings: f.bookings, Location: tz, Notifier: f.hub, Events: f.events, Log: zap.NewNop()}
	sub := f.hub.Subscribe(model.RoomReading)
	defer sub.Close()

	created := f.clock
	n, err := r.Sweep(ctx, created.Add(59*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	n, err = r.Sweep(ctx, created.Add(2*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.False(t, occupied(t, f, model.RoomReading, 1))
	assert.False(t, occupied(t, f, model.RoomReading, 2))
	assert.True(t, occupied(t, f, model.RoomReading, 3))
	select {
	case <-sub.C:
	default:
		t.Fatal("sweep did not notify")
	}

	// full day lasts until local midnight
	n, err = r.Sweep(ctx, time.Date(2026, 3, 10, 23, 59, 0, 0, tz))
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.True(t, occupied(t, f, model.RoomReading, 4))

	n, err = r.Sweep(ctx, time.Date(2026, 3, 11, 0, 0, 0, 0, tz))
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.False(t, occupied(t, f, model.RoomReading, 4))

	expired := 0
	for _, typ := range f.events.types() {
		if typ == queue.EventBookingExpired {
			expired++
		}
	}
	assert.Equal(t, 4, expired)
}

func TestReaper_RunSweepsOnTick(t *testing.T) {
	f := newFixture(t, true)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	req := aliRequest(9)
	req.Duration = model.DurationOneHour
	_, err := f.reservations.Reserve(context.Background(), req)
	require.NoError(t, err)

	later := f.clock.Add(2 * time.Hour)
	r := &Reaper{
		Enabled: true, Interval: 5 * time.Millisecond, Bookings: f.bookings, Location: tz,
		Notifier: f.hub, Log: zap.NewNop(), Now: func() time.Time { return later },
	}
	done := make(chan struct{})
	go func() {
		r.Run(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool { return !occupied(t, f, model.RoomReading, 9) }, time.Second, 5*time.Millisecond)
	cancel()
	<-done
}
