package middleware

import (
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/dmm-municipal/dmm-api/internal/api/metrics"
	"github.com/dmm-municipal/dmm-api/internal/core/domain"
)

// RequireRoles rejects the request with 403 unless the authenticated user's
// role is in allowed. It must run after Auth.
func RequireRoles(allowed ...domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := CurrentUser(c)
			if user == nil {
				return domain.ErrTokenRequired
			}
			if err := domain.RequireRole(user, allowed...); err != nil {
				if errors.Is(err, domain.ErrForbidden) {
					metrics.AuthorizationDeniedTotal.WithLabelValues(user.Role.String()).Inc()
				}
				return err
			}
			return next(c)
		}
	}
}
