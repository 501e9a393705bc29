package server

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"todoapi/internal/service"
)

// serviceError maps service-layer errors to HTTP responses. notFound is
// the message for ErrNotFound, which covers both absent resources and
// resources owned by someone else. Anything unrecognized is logged and
// answered with a generic 500.
func serviceError(c echo.Context, err error, notFound string) error {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": ve.Msg})
	case errors.Is(err, service.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": notFound})
	case errors.Is(err, service.ErrInvalidCredentials):
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid email or password"})
	case errors.Is(err, service.ErrEmailTaken):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Email already registered"})
	case errors.Is(err, service.ErrInvalidResetCode):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid or expired reset code"})
	default:
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal server error"})
	}
}
