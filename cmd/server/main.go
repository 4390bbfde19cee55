package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"nbp-rate-service/internal/adapter/cache"
	httpRouter "nbp-rate-service/internal/adapter/http"
	"nbp-rate-service/internal/adapter/repository"
	"nbp-rate-service/internal/config"
	"nbp-rate-service/internal/domain/ports"
	"nbp-rate-service/internal/metrics"
	"nbp-rate-service/internal/service"
	"nbp-rate-service/pkg/logger"

	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	if len(os.Args) > 1 && (os.Args[1] == "-h" || os.Args[1] == "--help") {
		help, err := config.Help()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Println(help)
		return
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.NewLogger("info").Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	log := logger.NewLogger(cfg.Log.Level)
	log.Info("Starting NBP rate service")

	appMetrics := metrics.NewMetrics(prometheus.DefaultRegisterer)

	rateCache, closeCache, err := newRateCache(cfg.Cache, log, appMetrics)
	if err != nil {
		log.Error("Failed to initialise cache", "backend", cfg.Cache.Backend, "error", err)
		os.Exit(1)
	}
	defer closeCache()

	rateRepo := repository.NewNBPClient(
		cfg.NBP.BaseURL,
		cfg.NBP.Timeout,
		log,
		appMetrics,
	)

	rateService := service.NewRateService(rateRepo, rateCache, log)
	handler := httpRouter.NewHandler(rateService, log, appMetrics)

	router := httpRouter.NewRouter(handler, log, appMetrics, prometheus.DefaultGatherer)
	routes := router.SetupRoutes()

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      routes,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	ctx, cancelCleanup := context.WithCancel(context.Background())
	go cleanupCache(ctx, rateService, cfg.Cache.CleanupInterval, log)

	go func() {
		log.Info("Starting HTTP server", "port", cfg.Server.Port, "cache_backend", cfg.Cache.Backend)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	cancelCleanup()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
		closeCache()
		os.Exit(1)
	}

	log.Info("Server exited")
}

func newRateCache(cfg config.CacheConfig, log *logger.Logger, m *metrics.Metrics) (ports.RateCache, func(), error) {
	switch cfg.Backend {
	case config.CacheBackendRedis:
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		client, err := cache.ConnectRedis(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		log.Info("Redis connected")

		closeFn := func() {
			if err := client.Close(); err != nil {
				log.Error("Failed to close redis client", "error", err)
			}
		}
		return cache.NewRedisCache(client, cfg.TTL, log, m), closeFn, nil
	default:
		return cache.NewMemoryCache(cfg.TTL, log, m), func() {}, nil
	}
}

// cleanupCache periodically drops idle cache entries. It never fetches rates.
func cleanupCache(ctx context.Context, service ports.RateService, interval time.Duration, log *logger.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := service.ClearExpired(ctx); err != nil {
				log.Error("Failed to clear expired cache entries", "error", err)
			}
		case <-ctx.Done():
			log.Info("Stopping cache cleanup goroutine")
			return
		}
	}
}
