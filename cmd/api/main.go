package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/MrJigi/mechhive-assignment-app/api/controllers"
	"github.com/MrJigi/mechhive-assignment-app/api/routes"
	"github.com/MrJigi/mechhive-assignment-app/internal/catalog"
	"github.com/MrJigi/mechhive-assignment-app/pkg/config"
	"github.com/MrJigi/mechhive-assignment-app/pkg/logger"
	"github.com/MrJigi/mechhive-assignment-app/pkg/metrics"
	"github.com/MrJigi/mechhive-assignment-app/pkg/redis"
	"github.com/MrJigi/mechhive-assignment-app/pkg/upstream"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	registry := prometheus.NewRegistry()
	catalogMetrics := metrics.NewCatalogMetrics(registry)

	gateway := upstream.NewClient(cfg.Upstream)
	if !gateway.IsReady() {
		logg.Warn(context.Background(), "upstream credentials missing, serving the offline fallback catalog")
	}

	catalogService, err := catalog.NewService(catalog.ServiceParams{
		Gateway:          gateway,
		ProductsEndpoint: cfg.Upstream.ProductsEndpoint,
		PriceCeiling:     cfg.Catalog.PriceCeiling,
		Logger:           logg,
		Metrics:          catalogMetrics,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	var (
		listingCache controllers.ListingCache
		redisPinger  redis.Pinger
	)
	if cfg.Redis.Enabled() {
		redisClient, err := redis.New(context.Background(), cfg.Redis)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
		listingCache = redisClient
		redisPinger = redisClient
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, catalogService, listingCache, redisPinger, registry),
	}

	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-shutdownCtx.Done():
		logg.Info(ctx, "shutting down api server")
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(timeoutCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
		}
	}
}
