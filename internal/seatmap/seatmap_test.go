package seatmap

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/armhub-seatdesk/internal/model"
)

func TestProject_EmptyRoomIsAllFree(t *testing.T) {
	views := Project(model.RoomReading, 30, nil, nil)
	require.Len(t, views, 30)
	for i, v := range views {
		assert.Equal(t, i+1, v.Number)
		assert.False(t, v.Occupied)
		assert.Nil(t, v.Metadata)
	}
	assert.Equal(t, Summary{Room: model.RoomReading, Total: 30, Occupied: 0, Free: 30}, Summarize(model.RoomReading, views))
}

func TestProject_OccupancyMatchesBookings(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for round := 0; round < 50; round++ {
		var bookings []model.Booking
		want := map[model.SeatKey]bool{}
		for i := 0; i < rng.Intn(40); i++ {
			room := model.Rooms[rng.Intn(len(model.Rooms))]
			seat := 1 + rng.Intn(30)
			bookings = append(bookings, model.Booking{ID: "b", Room: room, SeatID: seat})
			want[model.SeatKey{Room: room, Number: seat}] = true
		}

		for _, room := range model.Rooms {
			capacity := model.DefaultCapacities().Of(room)
			views := Project(room, capacity, bookings, nil)
			require.Len(t, views, capacity)
			for _, v := range views {
				assert.Equal(t, want[model.SeatKey{Room: room, Number: v.Number}], v.Occupied,
					"round %d room %s seat %d", round, room, v.Number)
			}
		}
	}
}

func TestProject_IgnoresOtherRoomsAndOutOfRange(t *testing.T) {
	bookings := []model.Booking{
		{ID: "a", Room: model.RoomElectronic, SeatID: 5},
		{ID: "b", Room: model.RoomReading, SeatID: 0},
		{ID: "c", Room: model.RoomReading, SeatID: 31},
	}
	views := Project(model.RoomReading, 30, bookings, nil)
	assert.Equal(t, 0, Summarize(model.RoomReading, views).Occupied)
}

func TestProject_DoubleBookedSeatListsEveryBooking(t *testing.T) {
	bookings := []model.Booking{
		{ID: "first", Room: model.RoomReading, SeatID: 5},
		{ID: "second", Room: model.RoomReading, SeatID: 5},
	}
	views := Project(model.RoomReading, 30, bookings, nil)
	assert.True(t, views[4].Occupied)
	assert.Equal(t, []string{"first", "second"}, views[4].BookingIDs)
	assert.Equal(t, 1, Summarize(model.RoomReading, views).Occupied)
}

func TestProject_AttachesMetadataOfSameRoomOnly(t *testing.T) {
	md := map[model.SeatKey]model.SeatMetadata{
		{Room: model.RoomElectronic, Number: 3}: {
			Key: model.SeatKey{Room: model.RoomElectronic, Number: 3}, Description: "Near window",
			Features: []string{"Power outlet", "Lamp"},
		},
	}
	views := Project(model.RoomElectronic, 18, nil, md)
	require.NotNil(t, views[2].Metadata)
	assert.Equal(t, "Near window", views[2].Metadata.Description)
	assert.False(t, views[2].Occupied)

	reading := Project(model.RoomReading, 30, nil, md)
	assert.Nil(t, reading[2].Metadata)
}
