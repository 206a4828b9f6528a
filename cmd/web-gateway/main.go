package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/recipehub/web-gateway/docs"
	"github.com/recipehub/web-gateway/internal/api"
	"github.com/recipehub/web-gateway/internal/core/service"
	"github.com/recipehub/web-gateway/internal/gateway"
	mongodb "github.com/recipehub/web-gateway/internal/infrastructure/db/mongo"
	redisdb "github.com/recipehub/web-gateway/internal/infrastructure/db/redis"
	"github.com/recipehub/web-gateway/internal/infrastructure/queue"
	"github.com/recipehub/web-gateway/internal/pkg/config"
	"github.com/recipehub/web-gateway/pkg/logger"
)

// @title        RecipeHub Web Gateway API
// @version      1.0
// @description  Browser-facing gateway for the RecipeHub platform.
// @BasePath     /
func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() { _ = rdb.Close() }()

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() { _ = mongoClient.Disconnect(context.Background()) }()

	// Session audit pipeline: dedup in Redis, trail in Mongo, sharded
	// workers so each session's events stay ordered.
	auditRepo := mongodb.NewAuditRepository(db)
	auditSvc := service.NewAuditService(auditRepo, redisdb.NewDedupChecker(rdb), log)
	dispatcher := queue.NewDispatcher(cfg.AuditWorkers, auditSvc, log)
	dispatcher.Start(ctx)

	// Core session machinery: durable token store, backend gateway, session
	// service, and the revocation hook wiring them together.
	store := redisdb.NewSessionStore(rdb, cfg.SessionTTL)
	backend := gateway.New(cfg.Backend.URL, cfg.Backend.Timeout, store, log)
	sessions := service.NewSessionService(store, backend, dispatcher, cfg.IdentityTTL, log)
	backend.OnRevoked(sessions.HandleRevoked)

	codec := service.NewCookieCodec(cfg.SessionSecret, cfg.SessionTTL)

	e := api.NewRouter(log, backend, sessions, codec, auditRepo, rdb, db)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("backend", cfg.Backend.URL).Msg("web gateway started")

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
