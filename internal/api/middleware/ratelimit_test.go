package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
)

func TestRateLimit_RejectsOverLimit(t *testing.T) {
	e := echo.New()
	e.Use(RateLimit(2, time.Minute, nil))
	e.GET("/", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	do := func(addr string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec
	}

	for i := 0; i < 2; i++ {
		if rec := do("10.0.0.1:5000"); rec.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, rec.Code)
		}
	}

	rec := do("10.0.0.1:5000")
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Fatalf("expected Retry-After header")
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if body["success"] != false || body["error"] != "RATE_LIMITED" || body["message"] != rateLimitedMessage {
		t.Fatalf("unexpected body: %v", body)
	}

	if rec := do("10.0.0.2:5000"); rec.Code != http.StatusOK {
		t.Fatalf("other clients keep their own window, got %d", rec.Code)
	}
}
