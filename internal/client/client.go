// Package client is a typed HTTP client for the DMM API. It keeps the session
// cookie in a jar and implements the reconcile Gateway and Loader.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/net/publicsuffix"

	"github.com/dmm-municipal/dmm-api/internal/core/domain"
)

const defaultTimeout = 30 * time.Second

type Client struct {
	base              *url.URL
	http              *http.Client
	log               zerolog.Logger
	onUnauthenticated func()
}

type Option func(*Client)

// WithHTTPClient replaces the underlying client. Its Jar, when nil, is set.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithUnauthenticatedHandler registers fn to run whenever the API answers 401.
func WithUnauthenticatedHandler(fn func()) Option {
	return func(c *Client) { c.onUnauthenticated = fn }
}

func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) { c.log = log }
}

// New returns a client for the API rooted at baseURL (for example
// "http://localhost:5000/api").
func New(baseURL string, opts ...Option) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute", baseURL)
	}

	c := &Client{base: base, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		c.http = &http.Client{Timeout: defaultTimeout}
	}
	if c.http.Jar == nil {
		jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
		if err != nil {
			return nil, fmt.Errorf("cookie jar: %w", err)
		}
		c.http.Jar = jar
	}
	return c, nil
}

// APIError is a non-2xx answer carrying the response envelope.
type APIError struct {
	Status  int
	Code    string
	Message string
	Field   string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: %d %s", e.Status, http.StatusText(e.Status))
	}
	return fmt.Sprintf("api: %d %s", e.Status, e.Message)
}

// Is maps the status to the domain error it stands for.
func (e *APIError) Is(target error) bool {
	switch e.Status {
	case http.StatusBadRequest:
		return target == domain.ErrValidation
	case http.StatusUnauthorized:
		return target == domain.ErrUnauthenticated
	case http.StatusForbidden:
		return target == domain.ErrForbidden
	case http.StatusNotFound:
		return target == domain.ErrNotFound
	case http.StatusConflict:
		return target == domain.ErrDuplicate
	default:
		return e.Status >= http.StatusInternalServerError && target == domain.ErrUpstream
	}
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	User    *domain.User    `json:"user"`
	Error   string          `json:"error"`
	Field   string          `json:"field"`
}

// do sends one request and decodes the envelope. A 401 runs the
// unauthenticated handler before returning.
func (c *Client) do(ctx context.Context, method, path string, body any) (*envelope, error) {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base.String()+path, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w: %w", method, path, domain.ErrUpstream, err)
	}
	defer resp.Body.Close()

	c.log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("api call")

	var env envelope
	decodeErr := json.NewDecoder(resp.Body).Decode(&env)
	if errors.Is(decodeErr, io.EOF) {
		decodeErr = nil
	}

	// Error bodies from a proxy in front of the API are not envelopes; the
	// status alone still decides the error.
	if resp.StatusCode >= http.StatusBadRequest {
		if decodeErr != nil {
			env = envelope{}
		}
		if resp.StatusCode == http.StatusUnauthorized && c.onUnauthenticated != nil {
			c.onUnauthenticated()
		}
		return nil, &APIError{Status: resp.StatusCode, Code: env.Error, Message: env.Message, Field: env.Field}
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("decode %s %s: %w", method, path, decodeErr)
	}
	return &env, nil
}

func decodeData[T any](env *envelope) (T, error) {
	var out T
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return out, nil
	}
	if err := json.Unmarshal(env.Data, &out); err != nil {
		return out, fmt.Errorf("decode data: %w", err)
	}
	return out, nil
}
