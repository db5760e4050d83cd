package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeatKey(t *testing.T) {
	caps := DefaultCapacities()

	k := SeatKey{Room: RoomReading, Number: 5}
	assert.Equal(t, "reading_5", k.String())
	assert.NoError(t, k.Validate(caps))

	parsed, err := ParseSeatKey("electronic_18")
	require.NoError(t, err)
	assert.Equal(t, SeatKey{Room: RoomElectronic, Number: 18}, parsed)
	assert.NoError(t, parsed.Validate(caps))

	assert.Error(t, SeatKey{Room: RoomElectronic, Number: 19}.Validate(caps))
	assert.Error(t, SeatKey{Room: RoomReading, Number: 0}.Validate(caps))
	assert.Error(t, SeatKey{Room: "lobby", Number: 1}.Validate(caps))

	for _, bad := range []string{"", "reading", "reading_", "_5", "lobby_5", "reading_x", "reading_-1"} {
		_, err := ParseSeatKey(bad)
		assert.Error(t, err, bad)
	}
}

func TestParseRoomType(t *testing.T) {
	r, err := ParseRoomType(" Reading ")
	require.NoError(t, err)
	assert.Equal(t, RoomReading, r)

	_, err = ParseRoomType("cafeteria")
	assert.Error(t, err)
}

func TestDurationExpiresAt(t *testing.T) {
	loc := time.FixedZone("UZT", 5*3600)
	created := time.Date(2026, 3, 10, 14, 20, 0, 0, loc)

	tests := []struct {
		d    Duration
		want time.Time
	}{
		{DurationOneHour, created.Add(time.Hour)},
		{DurationTwoHours, created.Add(2 * time.Hour)},
		{DurationThreeHours, created.Add(3 * time.Hour)},
		{DurationFullDay, time.Date(2026, 3, 11, 0, 0, 0, 0, loc)},
	}
	for _, tt := range tests {
		t.Run(string(tt.d), func(t *testing.T) {
			assert.True(t, tt.d.Valid())
			assert.True(t, tt.want.Equal(tt.d.ExpiresAt(created)))
		})
	}
	assert.False(t, Duration("5 hours").Valid())
	assert.Equal(t, DurationTwoHours, DefaultDuration)
}

func TestParseFeatures(t *testing.T) {
	assert.Equal(t, []string{"Power outlet", "Lamp"}, ParseFeatures("Power outlet, Lamp"))
	assert.Equal(t, []string{"a", "b"}, ParseFeatures(" a ,, b , "))
	assert.Equal(t, []string{}, ParseFeatures(""))
	assert.Equal(t, []string{}, ParseFeatures(" , ,"))
}
