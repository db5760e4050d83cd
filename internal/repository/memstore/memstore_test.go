package memstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/armhub-seatdesk/internal/model"
	"github.com/iliyamo/armhub-seatdesk/internal/repository"
)

func TestBookings_ClaimKeyIsUniqueWhileLive(t *testing.T) {
	ctx := context.Background()
	s := NewBookings()
	claim := "reading_5"

	require.NoError(t, s.Create(ctx, model.Booking{ID: "a", Room: model.RoomReading, SeatID: 5, ClaimKey: &claim}))
	assert.ErrorIs(t, s.Create(ctx, model.Booking{ID: "b", Room: model.RoomReading, SeatID: 5, ClaimKey: &claim}),
		repository.ErrSeatTaken)

	// unclaimed inserts never collide
	require.NoError(t, s.Create(ctx, model.Booking{ID: "c", Room: model.RoomReading, SeatID: 5}))

	require.NoError(t, s.Delete(ctx, "a"))
	assert.ErrorIs(t, s.Delete(ctx, "a"), repository.ErrNotFound)
	require.NoError(t, s.Create(ctx, model.Booking{ID: "d", Room: model.RoomReading, SeatID: 5, ClaimKey: &claim}))
}

func TestBookings_ListNewestFirst(t *testing.T) {
	ctx := context.Background()
	s := NewBookings()
	require.NoError(t, s.Create(ctx, model.Booking{ID: "old", Room: model.RoomReading, CreatedAt: 1, RequesterName: "Ali"}))
	require.NoError(t, s.Create(ctx, model.Booking{ID: "new", Room: model.RoomElectronic, CreatedAt: 3, RequesterName: "Ali"}))
	require.NoError(t, s.Create(ctx, model.Booking{ID: "mid", Room: model.RoomReading, CreatedAt: 2, RequesterName: "Vali"}))

	all, err := s.List(ctx, repository.BookingFilter{})
	require.NoError(t, err)
	assert.Equal(t, []string{"new", "mid", "old"}, ids(all))

	reading, err := s.List(ctx, repository.BookingFilter{Room: model.RoomReading})
	require.NoError(t, err)
	assert.Equal(t, []string{"mid", "old"}, ids(reading))

	mine, err := s.List(ctx, repository.BookingFilter{RequesterName: "Ali"})
	require.NoError(t, err)
	assert.Equal(t, []string{"new", "old"}, ids(mine))
}

func TestSeatMetadata_ReplaceAndCopy(t *testing.T) {
	ctx := context.Background()
	s := NewSeatMetadata()
	key := model.SeatKey{Room: model.RoomElectronic, Number: 3}

	features := []string{"Lamp"}
	require.NoError(t, s.Put(ctx, model.SeatMetadata{Key: key, Description: "Near window", Features: features}))
	features[0] = "mutated"

	all, err := s.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Lamp"}, all[key].Features)

	require.NoError(t, s.Put(ctx, model.SeatMetadata{Key: key, Description: "Corner"}))
	all, err = s.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Corner", all[key].Description)
	assert.Empty(t, all[key].Features)

	require.NoError(t, s.Delete(ctx, key))
	assert.ErrorIs(t, s.Delete(ctx, key), repository.ErrNotFound)
}

func TestUsers(t *testing.T) {
	ctx := context.Background()
	s := NewUsers()
	id, err := s.Create(ctx, " Head@ArmHub.uz", "hash", model.RoleAdmin)
	require.NoError(t, err)

	_, err = s.Create(ctx, "head@armhub.uz", "hash", model.RoleStaff)
	assert.ErrorIs(t, err, repository.ErrEmailExists)

	u, err := s.GetByEmail(ctx, "HEAD@armhub.uz")
	require.NoError(t, err)
	assert.Equal(t, id, u.ID)
	assert.True(t, u.IsActive)

	_, err = s.GetByID(ctx, 99)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func ids(bs []model.Booking) []string {
	out := make([]string, len(bs))
	for i, b := range bs {
		out[i] = b.ID
	}
	return out
}
