package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/cafephin/dashboard-backend/api/routes"
	"github.com/cafephin/dashboard-backend/internal/insights"
	"github.com/cafephin/dashboard-backend/internal/locations"
	"github.com/cafephin/dashboard-backend/internal/reports"
	"github.com/cafephin/dashboard-backend/pkg/config"
	"github.com/cafephin/dashboard-backend/pkg/logger"
	"github.com/cafephin/dashboard-backend/pkg/metrics"
	"github.com/cafephin/dashboard-backend/pkg/redis"
	"github.com/cafephin/dashboard-backend/pkg/square"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "dashboard-api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "dashboard-api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	tz, err := time.LoadLocation(cfg.Store.Timezone)
	if err != nil {
		logg.Error(context.Background(), "invalid store timezone", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	upstreamMetrics := metrics.NewUpstreamMetrics(registry)

	var redisClient *redis.Client
	var redisPinger redis.Pinger
	var locationCache locations.Cache
	if cfg.Redis.Enabled() {
		redisClient, err = redis.New(context.Background(), cfg.Redis, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
		redisPinger = redisClient
		locationCache = redisClient
	} else {
		logg.Info(context.Background(), "redis not configured, location cache disabled")
	}

	squareClient, err := square.NewClient(context.Background(), cfg.Square, logg, square.WithMetrics(upstreamMetrics))
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap square client", err)
		os.Exit(1)
	}

	locationService := locations.NewService(squareClient, locationCache, cfg.Redis.LocationCacheTTL, logg)
	reportService := reports.NewService(squareClient, locationService, tz, logg)

	var generator insights.Generator
	if cfg.Insights.Enabled() {
		client, err := insights.NewClient(cfg.Insights, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap insights client", err)
			os.Exit(1)
		}
		generator = client
	} else {
		logg.Info(context.Background(), "insights model not configured, serving rule summaries")
	}
	insightService := insights.NewService(reportService, generator, logg)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":        cfg.App.Env,
		"square_env": cfg.Square.Environment(),
		"timezone":   cfg.Store.Timezone,
		"addr":       addr,
	})
	logg.Info(ctx, "starting dashboard api server")

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, redisPinger, registry, reportService, insightService),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "dashboard api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
