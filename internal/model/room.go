package model

import (
	"fmt"
	"strconv"
	"strings"
)

// RoomType names one of the library rooms whose seats can be booked.
type RoomType string

const (
	RoomReading    RoomType = "reading"
	RoomElectronic RoomType = "electronic"
)

// Rooms lists every room in display order.
var Rooms = []RoomType{RoomReading, RoomElectronic}

// Valid reports whether r is a known room.
func (r RoomType) Valid() bool {
	return r == RoomReading || r == RoomElectronic
}

// ParseRoomType normalizes s and validates it as a room name.
func ParseRoomType(s string) (RoomType, error) {
	r := RoomType(strings.ToLower(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", fmt.Errorf("unknown room type %q", s)
	}
	return r, nil
}

// Capacities maps each room to its number of seats.  Seats are numbered
// 1..capacity; there is no catalog of physical seats beyond this count.
type Capacities map[RoomType]int

// DefaultCapacities is the deployment default: 30 reading-room seats and
// 18 electronic-room seats.
func DefaultCapacities() Capacities {
	return Capacities{RoomReading: 30, RoomElectronic: 18}
}

// Of returns the capacity of r, zero for unknown rooms.
func (c Capacities) Of(r RoomType) int { return c[r] }

// SeatKey addresses one seat slot.  It is the structured form of the
// "{room}_{number}" string used as the seat_metadata primary key and as the
// booking claim key.
type SeatKey struct {
	Room   RoomType `json:"room"`
	Number int      `json:"number"`
}

// String encodes the key for storage.
func (k SeatKey) String() string {
	return string(k.Room) + "_" + strconv.Itoa(k.Number)
}

// Validate checks that the key addresses an existing seat.
func (k SeatKey) Validate(caps Capacities) error {
	if !k.Room.Valid() {
		return fmt.Errorf("unknown room type %q", k.Room)
	}
	if k.Number < 1 || k.Number > caps.Of(k.Room) {
		return fmt.Errorf("seat %d out of range 1..%d for room %s", k.Number, caps.Of(k.Room), k.Room)
	}
	return nil
}

// ParseSeatKey decodes a stored "{room}_{number}" key.  Range checks
// against a capacity are left to Validate.
func ParseSeatKey(s string) (SeatKey, error) {
	i := strings.LastIndexByte(s, '_')
	if i <= 0 || i == len(s)-1 {
		return SeatKey{}, fmt.Errorf("malformed seat key %q", s)
	}
	room, err := ParseRoomType(s[:i])
	if err != nil {
		return SeatKey{}, err
	}
	n, err := strconv.Atoi(s[i+1:])
	if err != nil || n < 1 {
		return SeatKey{}, fmt.Errorf("malformed seat number in key %q", s)
	}
	return SeatKey{Room: room, Number: n}, nil
}
