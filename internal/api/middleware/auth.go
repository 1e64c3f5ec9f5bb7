package middleware

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/dmm-municipal/dmm-api/internal/core/domain"
)

// UserKey is the echo context key holding the authenticated *domain.User.
const UserKey = "user"

// SessionCookie carries the session token.
const SessionCookie = "token"

// Authenticator resolves a session token to its user.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*domain.User, error)
}

// Auth reads the session token from the cookie (or a Bearer header), resolves
// the user and stores it in the context.
func Auth(authn Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, err := authn.Authenticate(c.Request().Context(), sessionToken(c))
			if err != nil {
				return err
			}
			c.Set(UserKey, user)
			return next(c)
		}
	}
}

// CurrentUser returns the user stored by Auth, or nil.
func CurrentUser(c echo.Context) *domain.User {
	u, _ := c.Get(UserKey).(*domain.User)
	return u
}

func sessionToken(c echo.Context) string {
	if cookie, err := c.Cookie(SessionCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	parts := strings.SplitN(header, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}
