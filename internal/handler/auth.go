package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/armhub-seatdesk/internal/auth"
	"github.com/iliyamo/armhub-seatdesk/internal/service"
	"github.com/iliyamo/armhub-seatdesk/internal/validator"
)

// AuthHandler serves staff login and identity.
type AuthHandler struct {
	Staff *service.Staff
}

func NewAuthHandler(s *service.Staff) *AuthHandler { return &AuthHandler{Staff: s} }

// Login verifies email and password and returns an access token.
func (h *AuthHandler) Login(c echo.Context) error {
	var req service.LoginRequest
	if err := validator.Validate(c.Request().Body, &req); err != nil {
		return respondError(c, err)
	}
	res, err := h.Staff.Login(c.Request().Context(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

// Me returns the capability resolved for the caller.
func (h *AuthHandler) Me(c echo.Context) error {
	return c.JSON(http.StatusOK, auth.FromContext(c.Request().Context()))
}
