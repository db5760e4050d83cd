package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/armhub-seatdesk/internal/auth"
	"github.com/iliyamo/armhub-seatdesk/internal/failure"
	"github.com/iliyamo/armhub-seatdesk/internal/model"
	"github.com/iliyamo/armhub-seatdesk/internal/service"
	"github.com/iliyamo/armhub-seatdesk/internal/validator"
)

// AdminHandler serves the administrator tabs: active bookings, clearing
// and seat metadata.
type AdminHandler struct {
	Clearing *service.Clearing
	Metadata *service.Metadata
}

// ListBookings returns live bookings, newest first, optionally ?room=.
func (h *AdminHandler) ListBookings(c echo.Context) error {
	var room model.RoomType
	if q := c.QueryParam("room"); q != "" {
		r, err := model.ParseRoomType(q)
		if err != nil {
			return respondError(c, failure.BadRequest(err))
		}
		room = r
	}
	out, err := h.Clearing.ListActive(c.Request().Context(), auth.FromContext(c.Request().Context()), room)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, list(out))
}

type clearBody struct {
	ConfirmName string `json:"confirm_name" validate:"notblank"`
}

// ClearBooking frees a seat.  The body must repeat the requester's name.
func (h *AdminHandler) ClearBooking(c echo.Context) error {
	var body clearBody
	if err := validator.Validate(c.Request().Body, &body); err != nil {
		return respondError(c, err)
	}
	ctx := c.Request().Context()
	b, err := h.Clearing.Clear(ctx, auth.FromContext(ctx), c.Param("id"), body.ConfirmName)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"cleared": b})
}

// PutSeatMetadata replaces the annotation of :room/:seat.
func (h *AdminHandler) PutSeatMetadata(c echo.Context) error {
	key, err := seatParam(c)
	if err != nil {
		return respondError(c, err)
	}
	var body service.SeatMetadataRequest
	if err := validator.Validate(c.Request().Body, &body); err != nil {
		return respondError(c, err)
	}
	ctx := c.Request().Context()
	m, err := h.Metadata.Put(ctx, auth.FromContext(ctx), key, body)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, m)
}

// DeleteSeatMetadata removes the annotation of :room/:seat.
func (h *AdminHandler) DeleteSeatMetadata(c echo.Context) error {
	key, err := seatParam(c)
	if err != nil {
		return respondError(c, err)
	}
	ctx := c.Request().Context()
	if err := h.Metadata.Delete(ctx, auth.FromContext(ctx), key); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
