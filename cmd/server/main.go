package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"sleigh-route-service/internal/adapters/cache"
	"sleigh-route-service/internal/adapters/csvfile"
	"sleigh-route-service/internal/adapters/distance"
	"sleigh-route-service/internal/adapters/repositories"
	"sleigh-route-service/internal/api"
	"sleigh-route-service/internal/config"
	"sleigh-route-service/internal/platform/db"
	"sleigh-route-service/internal/platform/logger"
	"sleigh-route-service/internal/ports"
	"sleigh-route-service/internal/services"
)

// main is the application composition root.
// It wires concrete adapters (Postgres or CSV input, Redis or SQL distance
// cache, geodesic distances) behind ports and starts the HTTP server.
func main() {
	config.LoadDotEnv()
	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogPretty)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		repo          ports.InputRepository = csvfile.NewInputRepository(cfg.Input.ChildrenPath, cfg.Input.ArticlesPath, cfg.Input.SpecsPath)
		store         ports.PlanStore       = repositories.NewMemoryPlanStore()
		distanceCache ports.DistanceCache
		conn          *sql.DB
	)

	// Postgres, when configured, serves input, plans and the distance cache.
	if cfg.Storage.DatabaseURL != "" {
		var err error
		conn, err = db.Open(ctx, cfg.Storage.DatabaseURL)
		if err != nil {
			log.Fatal().Err(err).Msg("database unavailable")
		}
		defer conn.Close()

		if err := repositories.InitSchema(ctx, conn); err != nil {
			log.Fatal().Err(err).Msg("schema initialization failed")
		}
		repo = repositories.NewPostgresInputRepository(conn)
		store = repositories.NewPostgresPlanStore(conn)
		distanceCache = cache.NewSQLDistanceCache(conn)
	}

	// Redis takes over the distance cache when configured.
	var rdb *redis.Client
	if cfg.Storage.RedisURL != "" {
		var err error
		rdb, err = cache.OpenRedis(ctx, cfg.Storage.RedisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("redis unavailable")
		}
		defer rdb.Close()
		distanceCache = cache.NewRedisDistanceCache(rdb, cfg.Storage.DistanceCacheTTL)
	}

	var provider ports.DistanceProvider = distance.NewGeodesicDistanceProvider()
	if distanceCache != nil {
		provider = distance.NewCachedDistanceProvider(distance.NewGeodesicDistanceProvider(), distanceCache)
	}

	router := api.NewRouter(api.Deps{
		Repo:     repo,
		Provider: provider,
		Store:    store,
		Options: []services.Option{
			services.WithDepot(cfg.Planner.Depot),
			services.WithWindow(cfg.Planner.DeliveryWindow),
			services.WithWorkers(cfg.Planner.Workers),
			services.WithImprove(cfg.Planner.Improve),
			services.WithSkipUndeliverable(cfg.Planner.SkipUndeliverable),
			services.WithStrictWindow(cfg.Planner.StrictWindow),
		},
	})

	// Write timeout leaves room for planning large inputs on a cold cache.
	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown failed")
		}
	}()

	log.Info().
		Str("addr", srv.Addr).
		Bool("postgres", conn != nil).
		Bool("redis", rdb != nil).
		Msg("server listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("server failed")
	}
}
