package router // router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/armhub-seatdesk/internal/handler"
	"github.com/iliyamo/armhub-seatdesk/internal/middleware"
)

// Deps carries everything the routes need.  RateLimit and NewsCache may be
// nil, in which case the routes are registered without them.
type Deps struct {
	JWTSecret string
	Log       *zap.Logger
	DB        handler.Pinger

	Auth  *handler.AuthHandler
	Seats *handler.SeatHandler
	Admin *handler.AdminHandler
	News  *handler.NewsHandler

	RateLimit echo.MiddlewareFunc
	NewsCache echo.MiddlewareFunc
}

// Register wires the public, staff and admin routes onto e.
func Register(e *echo.Echo, d Deps) {
	if d.Log != nil {
		e.Use(middleware.RequestLogger(d.Log))
	}

	e.GET("/healthz", handler.Health(d.DB))

	v1 := e.Group("/v1")
	v1.GET("/rooms", d.Seats.Rooms)
	v1.GET("/rooms/:room/seats", d.Seats.Map)
	v1.GET("/rooms/:room/seats/stream", d.Seats.Stream)
	// Requesters are anonymous; a staff token only changes the rate limit key.
	reserve := append([]echo.MiddlewareFunc{middleware.OptionalJWT(d.JWTSecret)}, optional(d.RateLimit)...)
	v1.POST("/rooms/:room/seats/:seat/bookings", d.Seats.Reserve, reserve...)
	v1.DELETE("/bookings/:id", d.Seats.Cancel)
	v1.GET("/bookings/mine", d.Seats.Mine)
	v1.GET("/news", d.News.List, optional(d.NewsCache)...)
	v1.POST("/auth/login", d.Auth.Login)

	// Staff and admin routes share the /v1 prefix with public ones, so
	// their middleware is attached per route rather than per group.
	authed := middleware.JWTAuth(d.JWTSecret)
	admin := []echo.MiddlewareFunc{authed, middleware.RequireAdmin()}

	v1.GET("/me", d.Auth.Me, authed)
	v1.GET("/admin/bookings", d.Admin.ListBookings, admin...)
	v1.DELETE("/admin/bookings/:id", d.Admin.ClearBooking, admin...)
	v1.PUT("/admin/seats/:room/:seat/metadata", d.Admin.PutSeatMetadata, admin...)
	v1.DELETE("/admin/seats/:room/:seat/metadata", d.Admin.DeleteSeatMetadata, admin...)
	v1.POST("/news", d.News.Create, admin...)
	v1.DELETE("/news/:id", d.News.Delete, admin...)
}

func optional(mw echo.MiddlewareFunc) []echo.MiddlewareFunc {
	if mw == nil {
		return nil
	}
	return []echo.MiddlewareFunc{mw}
}
