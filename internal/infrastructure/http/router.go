package http

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/dmm-municipal/dmm-api/internal/infrastructure/http/handlers"
)

// ServerOptions configures the base server.
type ServerOptions struct {
	ErrorHandler echo.HTTPErrorHandler
	Middleware   []echo.MiddlewareFunc
	Checks       map[string]handlers.Check
	// Registry receives the request metrics. Nil uses the default registry.
	Registry *prometheus.Registry
}

// NewServer builds the Echo instance with global middleware, metrics and the
// health probes registered. API routes are added by the caller.
func NewServer(opts ServerOptions) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	if opts.ErrorHandler != nil {
		e.HTTPErrorHandler = opts.ErrorHandler
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	promConfig := echoprometheus.MiddlewareConfig{Namespace: "dmm"}
	metricsHandler := echoprometheus.NewHandler()
	if opts.Registry != nil {
		promConfig.Registerer = opts.Registry
		metricsHandler = echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: opts.Registry})
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(promConfig))
	e.Use(opts.Middleware...)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	readinessHandler := handlers.NewReadinessHandler(opts.Checks)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/api/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", metricsHandler)

	return e
}
