// Command api serves carrier rate quotes over HTTP.
//
// @title                       Carrier Rating API
// @version                     1.0
// @description                 Prices shipments against carrier rate cards and eligibility rules.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/99minutos/carrier-rating/internal/api"
	"github.com/99minutos/carrier-rating/internal/api/handler"
	"github.com/99minutos/carrier-rating/internal/core/rating"
	"github.com/99minutos/carrier-rating/internal/core/service"
	mongostore "github.com/99minutos/carrier-rating/internal/infrastructure/db/mongo"
	rediscache "github.com/99minutos/carrier-rating/internal/infrastructure/db/redis"
	"github.com/99minutos/carrier-rating/internal/pkg/config"
	"github.com/99minutos/carrier-rating/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "carrier-rating",
	})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET not set")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tables, err := config.LoadTables(cfg.Rating.TablesFile)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load rating tables")
	}

	mongoClient, db, err := mongostore.Connect(ctx, mongostore.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = mongoClient.Disconnect(disconnectCtx)
	}()

	rdb, err := rediscache.Connect(ctx, rediscache.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer rdb.Close()

	store := mongostore.NewCarrierRepository(db)
	if err := store.EnsureIndexes(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to ensure mongo indexes")
	}
	repo := rediscache.NewCachedCarrierRepository(store, rdb, cfg.Redis.CacheTTL, logger.Component("carrier_cache"))

	engine := rating.NewEngine(
		rating.WithTables(tables),
		rating.WithDefaultCurrency(cfg.Rating.DefaultCurrency),
	)
	svc := service.NewRatingService(repo, engine, cfg.Rating.ShopConcurrency, logger.Component("rating_service"))

	e := api.NewRouter(api.Dependencies{
		Service:      svc,
		Cache:        repo,
		Checks:       []handler.DependencyCheck{handler.MongoCheck(db), handler.RedisCheck(rdb)},
		JWTSecret:    cfg.JWTSecret,
		RateLimitRPS: cfg.Rating.RateLimitRPS,
		Logger:       logger.Component("http"),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           e,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("api listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server error")
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("api stopped")
}
