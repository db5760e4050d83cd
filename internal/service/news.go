package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/iliyamo/armhub-seatdesk/internal/auth"
	"github.com/iliyamo/armhub-seatdesk/internal/failure"
	"github.com/iliyamo/armhub-seatdesk/internal/model"
	"github.com/iliyamo/armhub-seatdesk/internal/repository"
	"github.com/iliyamo/armhub-seatdesk/internal/validator"
)

// NewsRequest is the announcement form.
type NewsRequest struct {
	Title   string `json:"title" validate:"notblank,max=200"`
	Content string `json:"content" validate:"notblank,max=5000"`
}

// News manages the seat desk announcements.
type News struct {
	Store NewsStore
	Log   *zap.Logger
	Now   func() time.Time
}

func (s *News) Create(ctx context.Context, actor auth.Capability, req NewsRequest) (model.RoomNews, error) {
	if !actor.Admin {
		return model.RoomNews{}, failure.ForbiddenError
	}
	req.Title = strings.TrimSpace(req.Title)
	req.Content = strings.TrimSpace(req.Content)
	if err := validator.ValidateStruct(&req); err != nil {
		return model.RoomNews{}, err
	}

	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	n := model.RoomNews{ID: uuid.NewString(), Title: req.Title, Content: req.Content, CreatedAt: now().UnixMilli()}
	if err := s.Store.Create(ctx, n); err != nil {
		s.Log.Error("save news failed", zap.Error(err))
		return model.RoomNews{}, failure.Internal("could not save announcement")
	}
	return n, nil
}

// List returns announcements newest first.
func (s *News) List(ctx context.Context) ([]model.RoomNews, error) {
	out, err := s.Store.List(ctx)
	if err != nil {
		s.Log.Error("list news failed", zap.Error(err))
		return nil, failure.Internal("could not list announcements")
	}
	return out, nil
}

func (s *News) Delete(ctx context.Context, actor auth.Capability, id string) error {
	if !actor.Admin {
		return failure.ForbiddenError
	}
	if err := s.Store.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return failure.NotFound("announcement")
		}
		s.Log.Error("delete news failed", zap.String("id", id), zap.Error(err))
		return failure.Internal("could not delete announcement")
	}
	return nil
}
