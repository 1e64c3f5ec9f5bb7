package middleware

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/httprate"
	"github.com/labstack/echo/v4"

	"github.com/dmm-municipal/dmm-api/internal/api/metrics"
)

const rateLimitedMessage = "Demasiadas solicitudes, intenta de nuevo en un momento"

// RateLimit limits each client address to limit requests per sliding window.
// A nil counter keeps the window in process memory.
func RateLimit(limit int, window time.Duration, counter httprate.LimitCounter) echo.MiddlewareFunc {
	opts := []httprate.Option{
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			metrics.RateLimitedTotal.Inc()
			if w.Header().Get("Retry-After") == "" {
				w.Header().Set("Retry-After", strconv.Itoa(int(window.Seconds())))
			}
			w.Header().Set(echo.HeaderContentType, echo.MIMEApplicationJSONCharsetUTF8)
			w.WriteHeader(http.StatusTooManyRequests)
			_ = json.NewEncoder(w).Encode(map[string]any{
				"success": false,
				"message": rateLimitedMessage,
				"error":   "RATE_LIMITED",
			})
		}),
	}
	if counter != nil {
		opts = append(opts, httprate.WithLimitCounter(counter))
	}
	return echo.WrapMiddleware(httprate.Limit(limit, window, opts...))
}
