// Package seatmap derives the per-seat view of a room from the live
// bookings and the stored seat metadata.  Occupancy is never stored: a
// seat is occupied exactly when some booking references it.
package seatmap

import "github.com/iliyamo/armhub-seatdesk/internal/model"

// SeatView is one cell of the rendered seat grid.
type SeatView struct {
	Number     int                 `json:"number"`
	Occupied   bool                `json:"occupied"`
	BookingIDs []string            `json:"booking_ids,omitempty"` // more than one only after an unguarded race
	Metadata   *model.SeatMetadata `json:"metadata,omitempty"`
}

// Summary counts seats of a room by state.
type Summary struct {
	Room     model.RoomType `json:"room"`
	Total    int            `json:"total"`
	Occupied int            `json:"occupied"`
	Free     int            `json:"free"`
}

// Project returns capacity views, numbered 1..capacity.  Bookings of other
// rooms and bookings outside the range are ignored.
func Project(room model.RoomType, capacity int, bookings []model.Booking, metadata map[model.SeatKey]model.SeatMetadata) []SeatView {
	if capacity < 0 {
		capacity = 0
	}
	views := make([]SeatView, capacity)
	for i := range views {
		views[i].Number = i + 1
		if m, ok := metadata[model.SeatKey{Room: room, Number: i + 1}]; ok {
			m := m
			views[i].Metadata = &m
		}
	}
	for _, b := range bookings {
		if b.Room != room || b.SeatID < 1 || b.SeatID > capacity {
			continue
		}
		v := &views[b.SeatID-1]
		v.Occupied = true
		v.BookingIDs = append(v.BookingIDs, b.ID)
	}
	return views
}

// Summarize counts the views of room.
func Summarize(room model.RoomType, views []SeatView) Summary {
	s := Summary{Room: room, Total: len(views)}
	for _, v := range views {
		if v.Occupied {
			s.Occupied++
		}
	}
	s.Free = s.Total - s.Occupied
	return s
}
