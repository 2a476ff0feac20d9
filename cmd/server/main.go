package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"proveedores/internal/config"
	"proveedores/internal/infra"
	"proveedores/internal/middleware"
	"proveedores/internal/repository"
	"proveedores/internal/router"

	"github.com/rs/zerolog/log"
)

const limiterPurgeInterval = 5 * time.Minute

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	// Structured logger — dev: pretty, prod: JSON
	infra.SetupLogger(cfg.Env, cfg.LogLevel)

	// Background tasks (schema setup retries, limiter purge) stop with ctx.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// An unreachable store is not fatal: requests answer 500 until it comes back.
	repo, err := repository.Open(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.StoreDriver).Msg("failed to configure store")
	}
	if err := repo.Ping(ctx); err != nil {
		log.Warn().Err(err).Str("driver", cfg.StoreDriver).Msg("store not reachable yet, serving anyway")
	}

	limiter := newLimiter(ctx, cfg)

	r := router.New(cfg, repo, limiter)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Str("driver", cfg.StoreDriver).Msgf("proveedores service listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout())
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
	cancel()

	if err := repo.Close(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("failed to close store")
	}
	log.Info().Msg("server exited")
}

// newLimiter shares counters through redis when REDIS_URL is set and
// reachable; otherwise each process counts on its own.
func newLimiter(ctx context.Context, cfg *config.Config) middleware.Limiter {
	if cfg.RateLimitPerMinute <= 0 {
		return nil
	}
	if cfg.RedisURL != "" {
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()
		rdb, err := infra.NewRedis(pingCtx, cfg.RedisURL)
		if err == nil {
			log.Info().Msg("rate limiter using redis")
			return middleware.NewRedisLimiter(rdb, cfg.RateLimitPerMinute, time.Minute)
		}
		log.Warn().Err(err).Msg("redis unavailable, rate limiter falls back to memory")
	}
	l := middleware.NewMemoryLimiter(cfg.RateLimitPerMinute, time.Minute)
	go l.RunPurge(ctx, limiterPurgeInterval)
	return l
}
