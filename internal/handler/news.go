package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/armhub-seatdesk/internal/auth"
	"github.com/iliyamo/armhub-seatdesk/internal/service"
	"github.com/iliyamo/armhub-seatdesk/internal/validator"
)

// Purger drops cached responses after a write.
type Purger interface {
	Purge(ctx context.Context)
}

// NewsHandler serves the seat desk announcements.
type NewsHandler struct {
	News  *service.News
	Cache Purger
}

func (h *NewsHandler) List(c echo.Context) error {
	out, err := h.News.List(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, list(out))
}

func (h *NewsHandler) Create(c echo.Context) error {
	var body service.NewsRequest
	if err := validator.Validate(c.Request().Body, &body); err != nil {
		return respondError(c, err)
	}
	ctx := c.Request().Context()
	n, err := h.News.Create(ctx, auth.FromContext(ctx), body)
	if err != nil {
		return respondError(c, err)
	}
	h.purge(ctx)
	return c.JSON(http.StatusCreated, n)
}

func (h *NewsHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	if err := h.News.Delete(ctx, auth.FromContext(ctx), c.Param("id")); err != nil {
		return respondError(c, err)
	}
	h.purge(ctx)
	return c.NoContent(http.StatusNoContent)
}

func (h *NewsHandler) purge(ctx context.Context) {
	if h.Cache != nil {
		h.Cache.Purge(ctx)
	}
}
