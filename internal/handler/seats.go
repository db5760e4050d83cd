package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/armhub-seatdesk/internal/failure"
	"github.com/iliyamo/armhub-seatdesk/internal/live"
	"github.com/iliyamo/armhub-seatdesk/internal/model"
	"github.com/iliyamo/armhub-seatdesk/internal/service"
	"github.com/iliyamo/armhub-seatdesk/internal/validator"
)

// SeatHandler serves the public seat map, the live stream and the
// requester booking endpoints.
type SeatHandler struct {
	Maps         *service.SeatMaps
	Reservations *service.Reservations
	Hub          *live.Hub
	Log          *zap.Logger
	Heartbeat    time.Duration // SSE keep-alive interval
}

// Rooms lists every room with its occupancy summary.
func (h *SeatHandler) Rooms(c echo.Context) error {
	rooms, err := h.Maps.Rooms(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, list(rooms))
}

// Map returns the seat map of :room.
func (h *SeatHandler) Map(c echo.Context) error {
	room, err := roomParam(c)
	if err != nil {
		return respondError(c, err)
	}
	m, err := h.Maps.Map(c.Request().Context(), room)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, m)
}

// Stream pushes the full seat map of :room as Server-Sent Events: once on
// connect and again after every change.  Comment lines keep idle
// connections open through proxies.
func (h *SeatHandler) Stream(c echo.Context) error {
	room, err := roomParam(c)
	if err != nil {
		return respondError(c, err)
	}
	ctx := c.Request().Context()
	sub := h.Hub.Subscribe(room)
	defer sub.Close()

	w := c.Response()
	w.Header().Set(echo.HeaderContentType, "text/event-stream")
	w.Header().Set(echo.HeaderCacheControl, "no-cache")
	w.Header().Set(echo.HeaderConnection, "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	send := func() error {
		m, err := h.Maps.Map(ctx, room)
		if err != nil {
			return writeEvent(w, "error", echo.Map{"error": failure.Message(err)})
		}
		return writeEvent(w, "seats", m)
	}
	if err := send(); err != nil {
		return nil
	}

	hb := h.Heartbeat
	if hb <= 0 {
		hb = 25 * time.Second
	}
	ticker := time.NewTicker(hb)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-sub.C:
			if err := send(); err != nil {
				h.Log.Debug("seat stream closed", zap.String("room", string(room)), zap.Error(err))
				return nil
			}
		case <-ticker.C:
			if _, err := fmt.Fprint(w, ": ping\n\n"); err != nil {
				return nil
			}
			w.Flush()
		}
	}
}

func writeEvent(w *echo.Response, event string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data); err != nil {
		return err
	}
	w.Flush()
	return nil
}

type reserveBody struct {
	Name     string         `json:"name"`
	Group    string         `json:"group"`
	Phone    string         `json:"phone"`
	Duration model.Duration `json:"duration"`
}

// Reserve books :seat in :room for the requester in the body.  The
// response carries the cancel token, shown only this once.
func (h *SeatHandler) Reserve(c echo.Context) error {
	key, err := seatParam(c)
	if err != nil {
		return respondError(c, err)
	}
	var body reserveBody
	if err := validator.Validate(c.Request().Body, &body); err != nil {
		return respondError(c, err)
	}
	res, err := h.Reservations.Reserve(c.Request().Context(), service.ReserveRequest{
		Room: key.Room, SeatID: key.Number,
		Name: body.Name, Group: body.Group, Phone: body.Phone, Duration: body.Duration,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, res)
}

// Cancel releases a booking when X-Cancel-Token matches it.
func (h *SeatHandler) Cancel(c echo.Context) error {
	token := c.Request().Header.Get("X-Cancel-Token")
	if token == "" {
		return respondError(c, failure.Unauthorized("X-Cancel-Token header is required"))
	}
	if err := h.Reservations.Cancel(c.Request().Context(), c.Param("id"), token); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Mine lists the bookings made under ?name=.
func (h *SeatHandler) Mine(c echo.Context) error {
	out, err := h.Reservations.ListByRequester(c.Request().Context(), c.QueryParam("name"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, list(out))
}
