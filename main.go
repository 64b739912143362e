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

	"polygon-calculator/config"
	httpLayer "polygon-calculator/http"
	"polygon-calculator/repository"
	"polygon-calculator/service"
	"polygon-calculator/web"
)

func main() {
	config.InitLogger()
	cfg := config.Load()

	calculationRepo := repository.NewCalculationRepositoryMemory(cfg.HistorySize)

	var cache repository.CacheRepository
	if cfg.Redis.Addr != "" {
		redisCache := repository.NewRedisCache(cfg.Redis.Addr, cfg.Redis.CacheTTL)
		defer redisCache.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := redisCache.Ping(pingCtx); err != nil {
			slog.Warn("redis unreachable, results will not be cached until it recovers",
				"addr", cfg.Redis.Addr, "error", err)
		}
		cancel()
		cache = redisCache
	} else {
		cache = repository.NewMemoryCache(cfg.Redis.CacheTTL)
	}

	polygonService := service.NewPolygonService(calculationRepo, cache)

	metrics, err := httpLayer.NewMetrics(nil)
	if err != nil {
		slog.Error("failed to initialise metrics", "error", err)
		os.Exit(1)
	}

	polygonHandler := httpLayer.NewPolygonHandler(polygonService, metrics)

	ui, err := web.NewHandler("/api/calculate")
	if err != nil {
		slog.Error("failed to render form", "error", err)
		os.Exit(1)
	}

	rateLimiter := httpLayer.NewRateLimiter(cfg.RateLimit.Capacity, cfg.RateLimit.Window)
	defer rateLimiter.Stop()

	server := &http.Server{
		Addr: cfg.HTTPAddr,
		Handler: httpLayer.NewRouter(httpLayer.RouterConfig{
			Handler:     polygonHandler,
			RateLimiter: rateLimiter,
			Metrics:     metrics,
			UI:          ui,
		}),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("polygon calculator listening", "addr", cfg.HTTPAddr, "env", cfg.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		slog.Error("error starting server", "error", err)
		return
	case <-quit:
		slog.Info("shutting down server")
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("error during server shutdown", "error", err)
	}

	slog.Info("server exited")
}
