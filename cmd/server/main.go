package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/taskboard/task-tracker/internal/api"
	"github.com/taskboard/task-tracker/internal/core/service"
	mongodb "github.com/taskboard/task-tracker/internal/infrastructure/db/mongo"
	redisdb "github.com/taskboard/task-tracker/internal/infrastructure/db/redis"
	"github.com/taskboard/task-tracker/internal/infrastructure/queue"
	"github.com/taskboard/task-tracker/internal/pkg/config"
	"github.com/taskboard/task-tracker/internal/token"
	"github.com/taskboard/task-tracker/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		logger.Init(logger.Options{})
		l := logger.Get()
		l.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if strings.TrimSpace(cfg.JWTSecret) == "" {
		log.Fatal().Msg("JWT_SECRET is required")
	}

	// --- Stores ---
	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb unavailable")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = client.Disconnect(disconnectCtx)
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis unavailable")
	}
	defer rdb.Close()

	userRepo := mongodb.NewUserRepository(db)
	taskRepo := mongodb.NewTaskRepository(db)

	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to create user indexes")
	}
	if err := taskRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to create task indexes")
	}

	// --- Purge pipeline ---
	purgeDedup := redisdb.NewPurgeDedup(rdb)
	dispatcher := queue.NewDispatcher(cfg.PurgeWorkers, taskRepo, purgeDedup, log)
	dispatcher.Start(ctx)

	// --- Services ---
	issuer := token.NewIssuer(cfg.JWTSecret, cfg.TokenTTL)
	authService := service.NewAuthService(userRepo, issuer)
	taskService := service.NewTaskService(taskRepo, log)
	userService := service.NewUserService(userRepo, dispatcher, log)

	e := api.NewRouter(api.Deps{
		Auth:     authService,
		Tasks:    taskService,
		Users:    userService,
		Verifier: issuer,
		Mongo:    db,
		Redis:    rdb,
		Log:      log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
