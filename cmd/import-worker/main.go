package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"school-admin-api/internal/config"
	"school-admin-api/internal/credential"
	"school-admin-api/internal/db"
	"school-admin-api/internal/logger"
	"school-admin-api/internal/queue"
	"school-admin-api/internal/repository"
	"school-admin-api/internal/service"
	"school-admin-api/internal/storage"
	"school-admin-api/internal/worker"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Initialize logger
	logger.Init(cfg.Logging.Level, cfg.Logging.Format)
	log := logger.Get()

	log.Info().Str("version", cfg.App.Version).Msg("Starting import worker")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	database, err := db.Open(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer database.Close(context.Background())

	repos := repository.New(database, credential.NewBcryptHasher(cfg.Security.BcryptCost))
	admin := service.NewAdmin(repos, cfg)

	redisClient, err := queue.NewRedisClient(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer redisClient.Close()

	s3Storage, err := storage.NewS3Storage(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize S3 storage")
	}

	importWorker := worker.NewImportWorker(cfg, admin, s3Storage, redisClient)

	consumerDone := make(chan struct{})
	go func() {
		defer close(consumerDone)
		if err := importWorker.Start(ctx); err != nil && ctx.Err() == nil {
			log.Fatal().Err(err).Msg("Import worker failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down import worker...")

	// Stop consuming first; the pool then finishes every job it accepted.
	cancel()
	<-consumerDone
	importWorker.Stop()

	log.Info().Msg("Import worker exited")
}
