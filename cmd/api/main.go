// Package main is the entry point for the roamwyth API server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/roamwyth/backend/internal/config"
	"github.com/roamwyth/backend/internal/handler"
	"github.com/roamwyth/backend/internal/middleware"
	"github.com/roamwyth/backend/internal/repo"
	"github.com/roamwyth/backend/internal/service"
	"github.com/roamwyth/backend/migrations"
)

// maxBodyBytes caps JSON request bodies. Trip payloads are a few hundred bytes.
const maxBodyBytes = 64 << 10

func main() {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		// Use plain stderr before the logger is configured.
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	ctx := context.Background()

	// --- Database ---------------------------------------------------------
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to create database pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	slog.Info("database connection established")

	if err := migrate(ctx, pool); err != nil {
		slog.Error("failed to apply migrations", "error", err)
		os.Exit(1)
	}

	// --- Repositories -----------------------------------------------------
	tripRepo := repo.NewTripRepo(pool)
	participantRepo := repo.NewParticipantRepo(pool)
	palRepo := repo.NewPalRepo(pool)
	prefsStore := repo.NewPreferencesStore(pool)

	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			slog.Error("invalid REDIS_URL", "error", err)
			os.Exit(1)
		}
		rdb := redis.NewClient(opts)
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			// The cache falls through to Postgres on errors, so keep going.
			slog.Warn("redis unreachable, preferences cache degraded", "error", err)
		}
		prefsStore = repo.NewCachedPreferencesStore(prefsStore, rdb, cfg.PreferencesCacheTTL)
		slog.Info("preferences cache enabled", "ttl", cfg.PreferencesCacheTTL.String())
	}

	// --- Services ---------------------------------------------------------
	tripSvc := service.NewTripService(tripRepo, participantRepo)
	viewSvc := service.NewViewService(tripRepo, participantRepo, palRepo)
	palSvc := service.NewPalService(palRepo)
	calendarSvc := service.NewCalendarService(prefsStore, palRepo, viewSvc)
	prefsSvc := service.NewPreferencesService(prefsStore)

	// --- Metrics ----------------------------------------------------------
	metrics := middleware.NewMetrics(prometheus.DefaultRegisterer)
	statsCtx, stopStats := context.WithCancel(ctx)
	defer stopStats()
	go reportPoolStats(statsCtx, pool, metrics)

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID → RealIP → Logger → Recoverer.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(maxBodyBytes))
	r.Use(metrics.Handler)

	r.Handle("/metrics", promhttp.Handler())

	srvHandler := handler.NewServer(tripSvc, viewSvc, palSvc, calendarSvc, prefsSvc)
	r.Mount("/", srvHandler.Routes(middleware.NewAuthHandler([]byte(cfg.JWTSecret))))

	// --- HTTP Server ------------------------------------------------------
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// migrate applies pending migrations through a database/sql handle that
// borrows connections from the pool.
func migrate(ctx context.Context, pool *pgxpool.Pool) error {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	results, err := migrations.Up(ctx, db)
	if err != nil {
		return err
	}
	for _, res := range results {
		slog.Info("migration applied", "version", res.Source.Version, "duration", res.Duration.String())
	}
	return nil
}

// reportPoolStats publishes connection pool gauges every 15 seconds until ctx ends.
func reportPoolStats(ctx context.Context, pool *pgxpool.Pool, m *middleware.Metrics) {
	ticker := time.NewTicker(15 * time.Second)
	defer ticker.Stop()
	for {
		stat := pool.Stat()
		m.SetPoolStats(stat.TotalConns(), stat.IdleConns(), stat.AcquiredConns())
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
