package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gatherly/eventsapi/internal/auth"
	"github.com/gatherly/eventsapi/internal/cache"
	"github.com/gatherly/eventsapi/internal/config"
	"github.com/gatherly/eventsapi/internal/db"
	apihttp "github.com/gatherly/eventsapi/internal/http"
	"github.com/gatherly/eventsapi/internal/http/handlers"
	"github.com/gatherly/eventsapi/internal/http/middlewares"
	"github.com/gatherly/eventsapi/internal/observability"
	"github.com/gatherly/eventsapi/internal/repo/postgres"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg := config.Load()

	log := observability.NewLogger(cfg.Env)
	slog.SetDefault(log)

	if cfg.JWTPrivateKey == "" {
		log.Error("FATAL: JWT_PRIVATE_KEY is not set")
		os.Exit(1)
	}

	if err := handlers.RegisterValidations(); err != nil {
		log.Error("FATAL: failed to register validations", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	// tracing is best effort; the API runs fine without a collector
	shutdownTracer, err := observability.InitTracer(ctx, "eventsapi", cfg.OTLPEndpoint)

	if err != nil {
		log.Warn("tracing disabled", "error", err)
		shutdownTracer = func(context.Context) error { return nil }
	}

	pool, err := db.NewPool(cfg.DBURL)

	if err != nil {
		log.Error("FATAL: failed to connect to database", "error", err)
		os.Exit(1)
	}

	defer pool.Close()

	if err := db.MigrateUp(cfg.DBURL); err != nil {
		log.Error("FATAL: failed to run migrations", "error", err)
		os.Exit(1)
	}

	seedCtx, cancelSeed := config.WithTimeout(10 * time.Second)

	if err := db.EnsureAdminUser(seedCtx, pool, cfg); err != nil {
		log.Error("FATAL: failed to seed admin user", "error", err)
		cancelSeed()
		os.Exit(1)
	}

	cancelSeed()

	reg := prometheus.NewRegistry()
	prom := observability.NewProm(reg)

	var listCache cache.Store

	if cfg.RedisAddr != "" {
		redisCache := cache.NewRedis(cache.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		}, 30*time.Second)

		pingCtx, cancelPing := config.WithTimeout(3 * time.Second)

		if err := redisCache.Ping(pingCtx); err != nil {
			log.Warn("redis unreachable, falling back to in-memory cache", "error", err)
			listCache = cache.New(30 * time.Second)
		} else {
			listCache = redisCache
			defer redisCache.Close()
		}

		cancelPing()
	} else {
		listCache = cache.New(30 * time.Second)
	}

	tokens := auth.NewManager(cfg.JWTPrivateKey, cfg.TokenTTL)

	eventsRepo := postgres.NewEventsRepo(pool, prom)
	usersRepo := postgres.NewUsersRepo(pool, prom)

	router := apihttp.NewRouter(apihttp.Deps{
		Config: cfg,
		Auth:   middlewares.NewAuthMiddleware(tokens),
		Events: handlers.NewEventsHandler(eventsRepo, listCache),
		Users:  handlers.NewUsersHandler(usersRepo, tokens),
		Login:  handlers.NewAuthHandler(usersRepo, tokens),
		Prom:   prom,
		Reg:    reg,
		DB:     pool,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)

	go func() {
		log.Info("server listening", "port", cfg.Port, "env", cfg.Env)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case sig := <-shutdownCh:
		log.Info("shutting down", "signal", sig.String())
	case err := <-errCh:
		log.Error("server error", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}

	if err := shutdownTracer(shutdownCtx); err != nil {
		log.Warn("tracer shutdown failed", "error", err)
	}

	log.Info("server stopped")
}
