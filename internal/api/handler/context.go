package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/dmm-municipal/dmm-api/internal/api/middleware"
	"github.com/dmm-municipal/dmm-api/internal/core/domain"
)

// currentUser returns the user stored by the auth middleware. Routes that
// reach a handler without one are misconfigured, so this is a 401.
func currentUser(c echo.Context) (*domain.User, error) {
	u := middleware.CurrentUser(c)
	if u == nil {
		return nil, domain.ErrTokenRequired
	}
	return u, nil
}

// pathID parses a positive integer path parameter.
func pathID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.NewValidationError("Identificador no válido: %s", name)
	}
	return id, nil
}

// bindAndValidate binds the request into req and runs the registered validator.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return domain.NewValidationError("Datos de la solicitud no válidos")
	}
	if err := c.Validate(req); err != nil {
		return err
	}
	return nil
}
