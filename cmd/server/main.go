package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	"tour-planner-service/internal/adapters/cache"
	"tour-planner-service/internal/adapters/geocode"
	"tour-planner-service/internal/adapters/repositories"
	"tour-planner-service/internal/api"
	"tour-planner-service/internal/config"
	"tour-planner-service/internal/platform/db"
	"tour-planner-service/internal/platform/obs"
	"tour-planner-service/internal/ports"
	"tour-planner-service/internal/services"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

// main is the application composition root.
// It wires concrete adapters (Postgres, Redis, ORS) behind ports and starts the HTTP server.
func main() {
	if err := run(); err != nil {
		slog.Error("server failed", "err", err)
		os.Exit(1)
	}
}

func run() error {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found (using environment variables)")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := obs.NewLogger(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sqlDB, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer sqlDB.Close()
	slog.Info("database connection established")

	geocodeCache, closeCache, err := newGeocodeCache(ctx, cfg, sqlDB)
	if err != nil {
		return err
	}
	defer closeCache()

	// Start-address lookups are optional; without a key the API rejects start_address.
	var geocoder ports.Geocoder
	if cfg.ORSAPIKey != "" {
		g, err := geocode.NewORSGeocoder(cfg.ORSAPIKey, geocodeCache, geocode.WithCountry(cfg.GeocodeCountry))
		if err != nil {
			return err
		}
		geocoder = g
	} else {
		slog.Warn("ORS_API_KEY not set; start_address geocoding disabled")
	}

	planner := services.NewPlanner(
		services.NewScorer(services.DefaultScoringWeights()),
		services.NewRouteOptimizer(cfg.TwoOptMaxPasses, cfg.AverageSpeedKmh),
		cfg.DefaultPlaceCount,
		logger,
	)

	router := api.NewRouter(api.Deps{
		Places:      repositories.NewPostgresPlaceRepository(sqlDB),
		Routes:      repositories.NewPostgresRouteRepository(sqlDB),
		Geocoder:    geocoder,
		Planner:     planner,
		Dwell:       cfg.Dwell,
		CORSOrigins: cfg.CORSOrigins,
		Logger:      logger,
	})

	// Write timeout leaves room for a cold-cache geocode with retries.
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	slog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	slog.Info("server stopped")

	return nil
}

// newGeocodeCache prefers Redis when REDIS_URL is set and falls back to the
// geocode_cache table otherwise.
func newGeocodeCache(ctx context.Context, cfg config.Config, sqlDB *sql.DB) (ports.GeocodeCache, func(), error) {
	if cfg.RedisURL == "" {
		return cache.NewSQLGeocodeCache(sqlDB), func() {}, nil
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, nil, fmt.Errorf("parse REDIS_URL: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("ping redis: %w", err)
	}
	slog.Info("redis geocode cache enabled", "addr", opts.Addr)

	return cache.NewRedisGeocodeCache(client, cache.DefaultGeocodeTTL), func() { _ = client.Close() }, nil
}
