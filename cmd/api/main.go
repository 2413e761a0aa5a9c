package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/traveltracker/travel-log-api/internal/api"
	"github.com/traveltracker/travel-log-api/internal/infrastructure/assistant"
	"github.com/traveltracker/travel-log-api/internal/infrastructure/config"
	mongodb "github.com/traveltracker/travel-log-api/internal/infrastructure/db/mongo"
	redisdb "github.com/traveltracker/travel-log-api/internal/infrastructure/db/redis"
	"github.com/traveltracker/travel-log-api/internal/infrastructure/queue"
	"github.com/traveltracker/travel-log-api/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

func main() {
	// .env is a development convenience; real environments set variables directly.
	_ = godotenv.Overload()

	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		panic(err)
	}

	log := logger.Init(cfg.LogLevel, cfg.Env == "development", os.Stdout)
	log.Info().Str("env", cfg.Env).Str("port", cfg.Port).Msg("starting travel log API")

	// --- MongoDB ---
	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		if err := mongodb.Disconnect(client); err != nil {
			log.Error().Err(err).Msg("mongodb disconnect failed")
		}
	}()

	if err := ensureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("index creation failed")
	}
	if err := mongodb.NewLocationTypeRepository(db).Seed(ctx); err != nil {
		log.Fatal().Err(err).Msg("location type seeding failed")
	}

	// --- Redis ---
	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	// --- Assistant (optional) ---
	opts := api.Options{JWTSecret: cfg.JWTSecret}
	history := redisdb.NewConversationStore(rdb)

	workerCtx, stopWorkers := context.WithCancel(ctx)
	defer stopWorkers()

	if cfg.Assistant.Endpoint != "" {
		dispatcher := queue.NewDispatcher(0, history, log)
		dispatcher.Start(workerCtx)

		opts.Provider = assistant.NewClient(assistant.Config{
			Endpoint: cfg.Assistant.Endpoint,
			APIKey:   cfg.Assistant.APIKey,
			Model:    cfg.Assistant.Model,
		})
		opts.History = history
		opts.Recorder = dispatcher
	} else {
		log.Warn().Msg("ASSISTANT_ENDPOINT not set; assistant routes will answer 503")
	}

	e := api.NewRouter(db, rdb, opts)

	// --- Graceful shutdown ---
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		log.Info().Msg("shutting down")
		stopWorkers()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown error")
		}
	}()

	if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("server stopped")
	}
	log.Info().Msg("server stopped")
}

func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	if err := mongodb.NewLocationRepository(db).EnsureIndexes(ctx); err != nil {
		return err
	}
	if err := mongodb.NewLocationTypeRepository(db).EnsureIndexes(ctx); err != nil {
		return err
	}
	if err := mongodb.NewParkRepository(db).EnsureIndexes(ctx); err != nil {
		return err
	}
	return mongodb.NewUserRepository(db).EnsureIndexes(ctx)
}
