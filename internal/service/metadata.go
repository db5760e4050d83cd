package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/iliyamo/armhub-seatdesk/internal/auth"
	"github.com/iliyamo/armhub-seatdesk/internal/failure"
	"github.com/iliyamo/armhub-seatdesk/internal/live"
	"github.com/iliyamo/armhub-seatdesk/internal/model"
	"github.com/iliyamo/armhub-seatdesk/internal/repository"
	"github.com/iliyamo/armhub-seatdesk/internal/validator"
)

// SeatMetadataRequest is the admin edit form for one seat.
type SeatMetadataRequest struct {
	Description string `json:"description" validate:"max=1000"`
	Features    string `json:"features" validate:"max=1000"` // comma separated
}

// Metadata manages seat annotations.  Writes never touch bookings.
type Metadata struct {
	Store      MetadataStore
	Capacities model.Capacities
	Notifier   live.Notifier
	Log        *zap.Logger
}

// Put replaces the annotation of key with the given description and the
// parsed feature list.
func (s *Metadata) Put(ctx context.Context, actor auth.Capability, key model.SeatKey, req SeatMetadataRequest) (model.SeatMetadata, error) {
	if !actor.Admin {
		return model.SeatMetadata{}, failure.ForbiddenError
	}
	if err := key.Validate(s.Capacities); err != nil {
		return model.SeatMetadata{}, failure.BadRequest(err)
	}
	if err := validator.ValidateStruct(&req); err != nil {
		return model.SeatMetadata{}, err
	}

	m := model.SeatMetadata{
		Key:         key,
		Description: strings.TrimSpace(req.Description),
		Features:    model.ParseFeatures(req.Features),
	}
	if err := s.Store.Put(ctx, m); err != nil {
		s.Log.Error("save seat metadata failed", zap.String("seat", key.String()), zap.Error(err))
		return model.SeatMetadata{}, failure.Internal("could not save seat metadata")
	}
	s.Log.Info("seat metadata saved", zap.String("seat", key.String()), zap.Int("features", len(m.Features)))
	s.Notifier.Notify(ctx, key.Room)
	return m, nil
}

// Delete removes the annotation of key.
func (s *Metadata) Delete(ctx context.Context, actor auth.Capability, key model.SeatKey) error {
	if !actor.Admin {
		return failure.ForbiddenError
	}
	if err := key.Validate(s.Capacities); err != nil {
		return failure.BadRequest(err)
	}
	if err := s.Store.Delete(ctx, key); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return failure.NotFound("seat metadata")
		}
		s.Log.Error("delete seat metadata failed", zap.String("seat", key.String()), zap.Error(err))
		return failure.Internal("could not delete seat metadata")
	}
	s.Notifier.Notify(ctx, key.Room)
	return nil
}

// All returns every annotation keyed by seat.
func (s *Metadata) All(ctx context.Context) (map[model.SeatKey]model.SeatMetadata, error) {
	out, err := s.Store.All(ctx)
	if err != nil {
		s.Log.Error("load seat metadata failed", zap.Error(err))
		return nil, failure.Internal("could not load seat metadata")
	}
	return out, nil
}
