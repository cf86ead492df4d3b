package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/users-generator-api/internal/api"
	"github.com/users-generator-api/internal/auth"
	"github.com/users-generator-api/internal/config"
	"github.com/users-generator-api/internal/database"
	"github.com/users-generator-api/internal/metrics"
	"github.com/users-generator-api/internal/repository"
	"github.com/users-generator-api/internal/service"
	"github.com/users-generator-api/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log := logger.New("info", "json")
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Format)
	log.Info().Msg("Starting users generator API server...")

	// Initialize database
	db, err := database.New(&cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to run database migrations")
	}

	// Token revocation lives in redis when configured so every instance
	// sees logouts
	var revocations auth.RevocationStore = auth.NewMemoryRevocations()
	if cfg.Redis.Addr != "" {
		rdb := auth.NewRedisRevocations(auth.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		err := rdb.Ping(pingCtx)
		cancel()
		if err != nil {
			log.Fatal().Err(err).Str("addr", cfg.Redis.Addr).Msg("Failed to connect to redis")
		}
		defer rdb.Close()
		revocations = rdb
		log.Info().Str("addr", cfg.Redis.Addr).Msg("Using redis for token revocation")
	}

	tokens := auth.NewManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, revocations)
	prom := metrics.New()

	repos := repository.New(db)
	services := service.NewServices(repos, tokens, prom, cfg, log)

	if cfg.Seed.Enabled {
		seedCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		err := services.User.SeedDefaults(seedCtx, cfg.Seed.Password)
		cancel()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to seed default users")
		}
	}

	router := api.NewRouter(services, db, prom, cfg, log)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.ReadTimeout,
	}

	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited gracefully")
}
