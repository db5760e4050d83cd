package handler // handler defines the HTTP handlers of the seat desk API

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/armhub-seatdesk/internal/failure"
	"github.com/iliyamo/armhub-seatdesk/internal/model"
)

// respondError writes err as {"error": message} with the status carried by
// its failure.  Plain errors become a generic 500.
func respondError(c echo.Context, err error) error {
	return c.JSON(failure.GetCode(err), echo.Map{"error": failure.Message(err)})
}

// roomParam reads the :room path parameter.
func roomParam(c echo.Context) (model.RoomType, error) {
	room, err := model.ParseRoomType(c.Param("room"))
	if err != nil {
		return "", failure.NotFound("room")
	}
	return room, nil
}

// seatParam reads :room and :seat into a seat key.  Range checks are left
// to the workflows, which know the configured capacities.
func seatParam(c echo.Context) (model.SeatKey, error) {
	room, err := roomParam(c)
	if err != nil {
		return model.SeatKey{}, err
	}
	n, err := strconv.Atoi(c.Param("seat"))
	if err != nil || n < 1 {
		return model.SeatKey{}, failure.BadRequestFromString("seat must be a positive number")
	}
	return model.SeatKey{Room: room, Number: n}, nil
}

// list wraps a slice so that empty results still encode as {"items": []}.
func list[T any](items []T) echo.Map {
	if items == nil {
		items = []T{}
	}
	return echo.Map{"items": items}
}
