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

	"github.com/casaline/listing-portal/internal/api"
	"github.com/casaline/listing-portal/internal/core/domain"
	"github.com/casaline/listing-portal/internal/core/service"
	"github.com/casaline/listing-portal/internal/infrastructure/config"
	mongorepo "github.com/casaline/listing-portal/internal/infrastructure/db/mongo"
	redisrepo "github.com/casaline/listing-portal/internal/infrastructure/db/redis"
	"github.com/casaline/listing-portal/pkg/logger"
)

// @title        Listing Portal API
// @version      1.0
// @description  Multi-tenant real-estate listing portal: authorization, subscriptions, and quota entitlements.
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	cfg := config.Load(slog.Default())

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	client, db, err := mongorepo.Connect(ctx, mongorepo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Warn().Err(err).Msg("mongodb disconnect failed")
		}
	}()

	rdb, err := redisrepo.Connect(ctx, redisrepo.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Warn().Err(err).Msg("redis close failed")
		}
	}()

	if err := mongorepo.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("index creation failed")
	}

	if err := mongorepo.NewPlanRepository(db).Seed(ctx, domain.DefaultPlans(time.Now().UTC())); err != nil {
		log.Fatal().Err(err).Msg("plan catalog seed failed")
	}

	// Bootstrap administrator: approvals are impossible without one.
	authService := service.NewAuthService(
		mongorepo.NewUserRepository(db),
		mongorepo.NewProfileRepository(db),
		redisrepo.NewEntitlementCache(rdb, cfg.Entitlement.CacheTTL),
		cfg.JWTSecret,
		cfg.TokenTTL,
		log,
	)
	if err := authService.EnsureAdministrator(ctx, cfg.Admin.Email, cfg.Admin.Password); err != nil {
		log.Fatal().Err(err).Msg("administrator bootstrap failed")
	}

	e := api.NewRouter(db, rdb, cfg, log)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("listing portal started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("listing portal stopped")
}
