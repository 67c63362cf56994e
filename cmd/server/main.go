package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/garrettladley/synthonia/internal/mcp"
	"github.com/garrettladley/synthonia/internal/metrics"
	"github.com/garrettladley/synthonia/internal/migrations/postgres"
	xredis "github.com/garrettladley/synthonia/internal/redis"
	"github.com/garrettladley/synthonia/internal/repository"
	"github.com/garrettladley/synthonia/internal/server"
	"github.com/garrettladley/synthonia/internal/server/handler"
	"github.com/garrettladley/synthonia/internal/service/auth"
	"github.com/garrettladley/synthonia/internal/service/jump"
	"github.com/garrettladley/synthonia/internal/service/overview"
	"github.com/garrettladley/synthonia/internal/service/spravato"
	"github.com/garrettladley/synthonia/internal/service/training"
	"github.com/garrettladley/synthonia/internal/service/user"
	"github.com/garrettladley/synthonia/internal/service/wellness"
	"github.com/garrettladley/synthonia/internal/storage"
	"github.com/garrettladley/synthonia/internal/xhttp/middleware"
	"github.com/garrettladley/synthonia/internal/xslog"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	keyPort        = "port"
	keyGracePeriod = "grace_period"
	keyMigrations  = "migrations"

	drainGracePeriod = 2 * time.Second
	shutdownTimeout  = 30 * time.Second
)

func main() {
	_ = godotenv.Load()

	logger := xslog.NewLoggerFromEnv(os.Stdout)
	slog.SetDefault(logger)

	ctx := context.Background()
	if err := run(ctx, logger); err != nil {
		logger.ErrorContext(ctx, "fatal error", xslog.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger) error {
	cfg, err := server.ReadConfig()
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}

	pool, err := initPostgres(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize postgres: %w", err)
	}
	defer pool.Close()

	backend, err := initBackend(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize storage backend: %w", err)
	}
	defer func() {
		if err := backend.Close(); err != nil {
			logger.ErrorContext(ctx, "failed to close backend", xslog.Error(err))
		}
	}()

	m, reg := initMetrics(ctx, cfg, logger)

	// Database layer
	repo := repository.New(pool)

	// Services
	authService, err := auth.NewPassword(repo.Users, backend, backend, auth.LogMailer{}, auth.Config{
		SessionTTL: cfg.Auth.SessionTTL,
		ResetTTL:   cfg.Auth.ResetTTL,
		ResetURL:   cfg.Auth.ResetURL,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize auth service: %w", err)
	}
	wellnessService := wellness.NewJournal(repo.DailyMetrics)
	trainingService := training.NewTracker(repo.Training)
	spravatoService := spravato.NewTracker(repo.Spravato)

	h := server.NewHandler(server.Options{
		Logger: logger,
		Services: server.Services{
			Auth:     authService,
			Users:    user.NewStore(repo.Users),
			Wellness: wellnessService,
			Training: trainingService,
			Spravato: spravatoService,
			Jump:     jump.NewTracker(repo.Jumps),
			Overview: overview.NewAggregator(wellnessService, trainingService, spravatoService),
		},
		RateLimiter: backend,
		Metrics:     m,
		Registry:    reg,
		MCP:         mcp.NewServer(m).HTTPHandler(),
		Health: map[string]handler.Pinger{
			"postgres": pool,
			"storage":  backend,
		},
		CORSOrigins: middleware.ParseOrigins(cfg.CORS.Origins),
	})

	drainer := server.NewDrainer(drainGracePeriod)

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      0, // disabled for streaming MCP responses
		IdleTimeout:       60 * time.Second,
		BaseContext: func(_ net.Listener) context.Context {
			return drainer.BaseContext()
		},
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.InfoContext(ctx, "starting server",
			xslog.Version(),
			slog.String(keyPort, cfg.Port))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.ErrorContext(ctx, "server error", xslog.Error(err))
		}
	}()

	<-done
	logger.InfoContext(ctx, "shutdown signal received, initiating graceful shutdown")

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	drainer.Drain(shutdownCtx)
	logger.InfoContext(ctx, "drain period complete, shutting down server",
		slog.Duration(keyGracePeriod, drainGracePeriod))

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	logger.InfoContext(ctx, "server stopped")
	return nil
}

func initPostgres(ctx context.Context, cfg server.Config, logger *slog.Logger) (*pgxpool.Pool, error) {
	logger.InfoContext(ctx, "initializing PostgreSQL")

	pool, err := pgxpool.New(ctx, cfg.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}

	applied, err := postgres.Apply(ctx, pool)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}
	if len(applied) > 0 {
		logger.InfoContext(ctx, "applied migrations", slog.Any(keyMigrations, applied))
	}

	return pool, nil
}

// initBackend prefers Redis so rate limits and sessions are shared across
// instances, falling back to process memory when REDIS_URL is unset.
func initBackend(ctx context.Context, cfg server.Config, logger *slog.Logger) (storage.Backend, error) {
	client, err := xredis.New(ctx, xredis.Config{URL: cfg.Redis.URL})
	switch {
	case errors.Is(err, xredis.ErrNotConfigured):
		if cfg.Env.IsProduction() {
			logger.WarnContext(ctx, "REDIS_URL not set in production; sessions will not survive restarts")
		}
		logger.InfoContext(ctx, "initializing in-memory backend")
		return storage.NewMemoryBackend(cfg.RateLimit.Limit, cfg.RateLimit.Burst), nil
	case err != nil:
		return nil, err
	}

	logger.InfoContext(ctx, "initializing Redis backend")
	return storage.NewRedisBackend(storage.RedisConfig{
		Client: client,
		Limit:  int(cfg.RateLimit.Limit),
		Window: time.Second,
	}), nil
}

func initMetrics(ctx context.Context, cfg server.Config, logger *slog.Logger) (*metrics.Manager, *prometheus.Registry) {
	if !cfg.Metrics.Enabled {
		logger.InfoContext(ctx, "metrics disabled")
		return nil, nil
	}
	reg := metrics.NewRegistry()
	return metrics.NewManager("synthonia", "server", reg), reg
}
