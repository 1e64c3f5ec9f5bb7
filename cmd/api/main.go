// Command api serves the DMM case-management HTTP API.
//
// @title        DMM API
// @version      1.0
// @description  Case management for beneficiaries, projects, trainings and sectors.
// @BasePath     /api
package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/httprate"
	"github.com/rs/zerolog"

	"github.com/dmm-municipal/dmm-api/internal/api"
	"github.com/dmm-municipal/dmm-api/internal/api/handler"
	"github.com/dmm-municipal/dmm-api/internal/api/metrics"
	"github.com/dmm-municipal/dmm-api/internal/core/service"
	"github.com/dmm-municipal/dmm-api/internal/infrastructure/db/mongo"
	"github.com/dmm-municipal/dmm-api/internal/infrastructure/db/mysql"
	"github.com/dmm-municipal/dmm-api/internal/infrastructure/db/redis"
	"github.com/dmm-municipal/dmm-api/internal/infrastructure/http/handlers"
	"github.com/dmm-municipal/dmm-api/internal/infrastructure/queue"
	"github.com/dmm-municipal/dmm-api/internal/infrastructure/storage/r2"
	"github.com/dmm-municipal/dmm-api/internal/pkg/config"
	"github.com/dmm-municipal/dmm-api/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.Production(),
		Service: "dmm-api",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	checks := make(map[string]handlers.Check)

	// --- Credential store ---
	db, err := mysql.Connect(ctx, mysql.Config{
		Host:         cfg.DB.Server,
		Port:         cfg.DB.Port,
		User:         cfg.DB.User,
		Password:     cfg.DB.Password,
		Database:     cfg.DB.Name,
		MaxOpenConns: cfg.DB.MaxOpenConns,
		IdleTimeout:  cfg.DB.IdleTimeout,
		Timeout:      cfg.DB.CallTimeout,
	})
	if err != nil {
		return err
	}
	defer db.Close()
	log.Info().Str("host", cfg.DB.Server).Str("database", cfg.DB.Name).Msg("mysql connected")

	exec := mysql.NewExecutor(db,
		mysql.WithTimeout(cfg.DB.CallTimeout),
		mysql.WithObserver(func(procedure string, elapsed time.Duration, err error) {
			outcome := "ok"
			if err != nil {
				outcome = "error"
			}
			metrics.ProcedureDuration.WithLabelValues(procedure, outcome).Observe(elapsed.Seconds())
		}),
	)
	checks["mysql"] = exec.Ping

	// --- Document store ---
	docs, err := r2.New(r2.Config{
		Endpoint:        cfg.R2.Endpoint,
		AccessKeyID:     cfg.R2.AccessKeyID,
		SecretAccessKey: cfg.R2.SecretAccessKey,
		Bucket:          cfg.R2.Bucket,
	})
	if err != nil {
		return err
	}
	checks["r2"] = docs.Ping

	// --- Rate-limit counter (optional) ---
	var counter httprate.LimitCounter
	if cfg.Redis.Addr != "" {
		rdb, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err != nil {
			return err
		}
		defer rdb.Close()
		counter = redis.NewLimitCounter(rdb, log)
		checks["redis"] = redis.Ping(rdb)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("redis connected, rate limit shared")
	} else {
		log.Warn().Msg("REDIS_ADDR not set, rate limit kept in memory")
	}

	// --- Audit trail (optional) ---
	audit := service.NopRecorder()
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()
	var dispatcher *queue.Dispatcher
	if cfg.Mongo.URI != "" {
		client, mdb, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return err
		}
		defer func() {
			if err := mongo.Disconnect(client, shutdownTimeout); err != nil {
				log.Warn().Err(err).Msg("mongo disconnect")
			}
		}()
		auditRepo := mongo.NewAuditRepository(mdb)
		if err := auditRepo.EnsureIndexes(ctx); err != nil {
			log.Warn().Err(err).Msg("audit indexes not ensured")
		}
		checks["mongodb"] = auditRepo.Ping

		dispatcher = queue.NewDispatcher(cfg.AuditWorkers, auditRepo, log)
		dispatcher.OnDrop(metrics.AuditDroppedTotal.Inc)
		dispatcher.Start(workerCtx)
		audit = dispatcher
		log.Info().Int("workers", cfg.AuditWorkers).Msg("audit trail enabled")
	} else {
		log.Warn().Msg("MONGO_URI not set, audit trail disabled")
	}

	// --- Services ---
	authService := service.NewAuthService(mysql.NewUserRepository(exec), audit, cfg.JWTSecret, cfg.TokenTTL, log)
	e := api.NewRouter(api.Deps{
		Log:            log,
		Auth:           authService,
		Beneficiarias:  service.NewBeneficiariaService(mysql.NewBeneficiariaRepository(exec), docs, audit, log),
		Proyectos:      service.NewProyectoService(mysql.NewProyectoRepository(exec), audit, log),
		Capacitaciones: service.NewCapacitacionService(mysql.NewCapacitacionRepository(exec), audit, log),
		Sectores:       service.NewSectorService(mysql.NewSectorRepository(exec), audit, log),
		Dashboard:      service.NewDashboardService(mysql.NewDashboardRepository(exec), log),
		Assignments:    service.NewAssignmentService(mysql.NewAssignmentRepository(exec), audit, log),
		Cookie:         handler.CookieOptions{Secure: cfg.Production(), TTL: authService.TokenTTL()},
		FrontendURL:    cfg.FrontendURL,
		Production:     cfg.Production(),
		RateLimit:      cfg.RateLimit,
		RateWindow:     cfg.RateWindow,
		LimitCounter:   counter,
		Checks:         checks,
	})

	srv := &http.Server{
		Addr:              net.JoinHostPort("", cfg.Port),
		Handler:           e,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}

	if dispatcher != nil {
		stopWorkers()
		dispatcher.Wait()
	}
	return nil
}
