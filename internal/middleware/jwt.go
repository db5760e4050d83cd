package middleware // middleware provides shared request processing for handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/armhub-seatdesk/internal/auth"
	"github.com/iliyamo/armhub-seatdesk/internal/utils"
)

// JWTAuth validates a Bearer access token and stores the resulting
// capability in the request context.  It is the only place roles are read
// from claims; handlers and workflows use auth.FromContext.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, ok := bearer(c)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			claims, err := utils.ParseAccessToken(secret, raw)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}
			setCapability(c, auth.New(claims.UserID, claims.Email, claims.Role))
			return next(c)
		}
	}
}

// OptionalJWT resolves a capability when a valid token is present and
// lets anonymous requests through unchanged.
func OptionalJWT(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if raw, ok := bearer(c); ok {
				if claims, err := utils.ParseAccessToken(secret, raw); err == nil {
					setCapability(c, auth.New(claims.UserID, claims.Email, claims.Role))
				}
			}
			return next(c)
		}
	}
}

func bearer(c echo.Context) (string, bool) {
	h := c.Request().Header.Get(echo.HeaderAuthorization)
	if !strings.HasPrefix(h, "Bearer ") {
		return "", false
	}
	raw := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	return raw, raw != ""
}

func setCapability(c echo.Context, cp auth.Capability) {
	req := c.Request()
	c.SetRequest(req.WithContext(auth.WithCapability(req.Context(), cp)))
}
