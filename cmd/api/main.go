package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/answerhub/forum-api/internal/api"
	"github.com/answerhub/forum-api/internal/core/service"
	"github.com/answerhub/forum-api/internal/infrastructure/config"
	mongodb "github.com/answerhub/forum-api/internal/infrastructure/db/mongo"
	redisdb "github.com/answerhub/forum-api/internal/infrastructure/db/redis"
	"github.com/answerhub/forum-api/internal/infrastructure/queue"
	"github.com/answerhub/forum-api/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		fallback := logger.Init(logger.Options{})
		fallback.Fatal().Err(err).Msg("configuration failed")
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := mongoClient.Disconnect(disconnectCtx); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect failed")
		}
	}()

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("index creation failed")
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	// --- Repositories ---
	userRepo := mongodb.NewUserRepository(db)
	sessionRepo := redisdb.NewCachedSessionRepository(
		mongodb.NewSessionRepository(db), rdb, cfg.SessionTTL, log)
	questionRepo := mongodb.NewQuestionRepository(db)
	answerRepo := mongodb.NewAnswerRepository(db)
	auditRepo := mongodb.NewAuditRepository(db)

	// --- Audit pipeline ---
	auditService := service.NewAuditService(auditRepo, redisdb.NewAuditDedup(rdb), log)
	dispatcher := queue.NewDispatcher(cfg.AuditWorkers, auditService, log)
	dispatcher.Start(ctx)

	// --- Core services ---
	authenticator := service.NewSessionAuthenticator(sessionRepo, userRepo)
	guard := service.NewAccessGuard()
	userService := service.NewUserService(
		userRepo, sessionRepo, authenticator, guard, dispatcher,
		cfg.JWTSecret, cfg.SessionTTL, log)
	questionService := service.NewQuestionService(
		questionRepo, userRepo, authenticator, guard, dispatcher, log)
	answerService := service.NewAnswerService(
		answerRepo, questionRepo, authenticator, guard, dispatcher, log)

	e := api.NewRouter(api.RouterConfig{
		Users:     userService,
		Questions: questionService,
		Answers:   answerService,
		DB:        db,
		Redis:     rdb,
		Logger:    log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
		os.Exit(1)
	}
}
