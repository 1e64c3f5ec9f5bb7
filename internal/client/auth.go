package client

import (
	"context"
	"net/http"

	"github.com/dmm-municipal/dmm-api/internal/core/domain"
)

// Login stores the session cookie in the jar and returns the user.
func (c *Client) Login(ctx context.Context, username, password string) (*domain.User, error) {
	env, err := c.do(ctx, http.MethodPost, "/auth/login", map[string]string{
		"usuario":    username,
		"contrasena": password,
	})
	if err != nil {
		return nil, err
	}
	return env.User, nil
}

func (c *Client) Logout(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodPost, "/auth/logout", nil)
	return err
}

// Me returns the user the session belongs to.
func (c *Client) Me(ctx context.Context) (*domain.User, error) {
	env, err := c.do(ctx, http.MethodGet, "/auth/me", nil)
	if err != nil {
		return nil, err
	}
	return env.User, nil
}
