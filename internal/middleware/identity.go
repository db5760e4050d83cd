package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/armhub-seatdesk/internal/auth"
)

// subject identifies the caller for rate limit keys: the staff user id
// when authenticated, "anon" otherwise.
func subject(c echo.Context) string {
	return auth.FromContext(c.Request().Context()).Subject()
}
