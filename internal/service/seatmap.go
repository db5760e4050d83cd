package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/iliyamo/armhub-seatdesk/internal/failure"
	"github.com/iliyamo/armhub-seatdesk/internal/model"
	"github.com/iliyamo/armhub-seatdesk/internal/repository"
	"github.com/iliyamo/armhub-seatdesk/internal/seatmap"
)

// RoomMap is the full seat map of one room.
type RoomMap struct {
	Room     model.RoomType     `json:"room"`
	Capacity int                `json:"capacity"`
	Summary  seatmap.Summary    `json:"summary"`
	Seats    []seatmap.SeatView `json:"seats"`
}

// SeatMaps reads bookings and metadata and projects them per room.
type SeatMaps struct {
	Bookings   BookingStore
	Metadata   MetadataStore
	Capacities model.Capacities
	Log        *zap.Logger
}

// Map returns the current seat map of room.
func (s *SeatMaps) Map(ctx context.Context, room model.RoomType) (RoomMap, error) {
	if !room.Valid() {
		return RoomMap{}, failure.NotFound("room")
	}
	bookings, err := s.Bookings.List(ctx, repository.BookingFilter{Room: room})
	if err != nil {
		s.Log.Error("list bookings for seat map failed", zap.String("room", string(room)), zap.Error(err))
		return RoomMap{}, failure.Internal("could not load seat map")
	}
	md, err := s.Metadata.All(ctx)
	if err != nil {
		s.Log.Error("load metadata for seat map failed", zap.Error(err))
		return RoomMap{}, failure.Internal("could not load seat map")
	}
	capacity := s.Capacities.Of(room)
	views := seatmap.Project(room, capacity, bookings, md)
	return RoomMap{Room: room, Capacity: capacity, Summary: seatmap.Summarize(room, views), Seats: views}, nil
}

// Rooms returns the occupancy summary of every room.
func (s *SeatMaps) Rooms(ctx context.Context) ([]seatmap.Summary, error) {
	bookings, err := s.Bookings.List(ctx, repository.BookingFilter{})
	if err != nil {
		s.Log.Error("list bookings for rooms failed", zap.Error(err))
		return nil, failure.Internal("could not load rooms")
	}
	out := make([]seatmap.Summary, 0, len(model.Rooms))
	for _, room := range model.Rooms {
		views := seatmap.Project(room, s.Capacities.Of(room), bookings, nil)
		out = append(out, seatmap.Summarize(room, views))
	}
	return out, nil
}
