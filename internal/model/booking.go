package model

import "time"

// Duration is the requester-selected length of a booking.  It is stored
// as its label and is informational unless the expiry reaper is enabled.
type Duration string

const (
	DurationOneHour    Duration = "1 hour"
	DurationTwoHours   Duration = "2 hours"
	DurationThreeHours Duration = "3 hours"
	DurationFullDay    Duration = "full day"
)

// DefaultDuration is preselected on the reservation form.
const DefaultDuration = DurationTwoHours

// Durations lists the selectable labels in form order.
var Durations = []Duration{DurationOneHour, DurationTwoHours, DurationThreeHours, DurationFullDay}

// Valid reports whether d is one of the selectable labels.
func (d Duration) Valid() bool {
	for _, v := range Durations {
		if d == v {
			return true
		}
	}
	return false
}

// ExpiresAt returns the instant a booking created at created would lapse.
// A full-day booking lapses at midnight following its creation, in the
// location of created.
func (d Duration) ExpiresAt(created time.Time) time.Time {
	switch d {
	case DurationOneHour:
		return created.Add(time.Hour)
	case DurationThreeHours:
		return created.Add(3 * time.Hour)
	case DurationFullDay:
		y, m, day := created.Date()
		return time.Date(y, m, day+1, 0, 0, 0, 0, created.Location())
	default:
		return created.Add(2 * time.Hour)
	}
}

// Booking is one active claim on a seat slot.  It mirrors a row of the
// room_bookings table.
//
// Fields:
//
//	ID              – opaque identifier assigned on creation.
//	SeatID          – seat number, 1..capacity(Room).
//	Room            – room containing the seat.
//	RequesterName   – free-text name of the requester.
//	RequesterGroup  – student group or library card id.
//	RequesterPhone  – contact phone.
//	StartTime       – HH:MM wall clock at creation, display only.
//	Duration        – selected duration label.
//	CreatedAt       – creation instant in epoch milliseconds.
//	CancelTokenHash – SHA-256 hex of the self-cancel token.
//	ClaimKey        – serialized SeatKey when the claim guard is on, nil otherwise.
type Booking struct {
	ID              string   `json:"id"`
	SeatID          int      `json:"seat_id"`
	Room            RoomType `json:"room_type"`
	RequesterName   string   `json:"requester_name"`
	RequesterGroup  string   `json:"requester_group"`
	RequesterPhone  string   `json:"requester_phone"`
	StartTime       string   `json:"start_time"`
	Duration        Duration `json:"duration"`
	CreatedAt       int64    `json:"created_at"`
	CancelTokenHash string   `json:"-"`
	ClaimKey        *string  `json:"-"`
}

// Key returns the seat slot the booking claims.
func (b Booking) Key() SeatKey {
	return SeatKey{Room: b.Room, Number: b.SeatID}
}

// Created returns CreatedAt as a time in loc.
func (b Booking) Created(loc *time.Location) time.Time {
	return time.UnixMilli(b.CreatedAt).In(loc)
}
