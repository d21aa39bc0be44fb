package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"school-admin-api/internal/api"
	"school-admin-api/internal/config"
	"school-admin-api/internal/credential"
	"school-admin-api/internal/db"
	"school-admin-api/internal/logger"
	"school-admin-api/internal/queue"
	"school-admin-api/internal/repository"
	"school-admin-api/internal/service"
	"school-admin-api/internal/storage"
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

	log.Info().
		Str("version", cfg.App.Version).
		Str("driver", cfg.Database.Driver).
		Msg("Starting API server")

	ctx := context.Background()

	// Initialize database
	database, err := db.Open(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer database.Close(context.Background())

	repos := repository.New(database, credential.NewBcryptHasher(cfg.Security.BcryptCost))
	admin := service.NewAdmin(repos, cfg)

	// Object storage and the import queue are optional; without them the
	// upload routes answer 503.
	var files storage.Storage
	if cfg.StorageEnabled() {
		s3Storage, err := storage.NewS3Storage(cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize S3 storage")
		}
		files = s3Storage
	}

	var imports api.ImportQueue
	var redisClient *queue.RedisClient
	if cfg.RedisEnabled() {
		redisClient, err = queue.NewRedisClient(ctx, cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		defer redisClient.Close()
		imports = queue.NewProducer(redisClient, cfg)
	}

	handler := api.NewHandler(admin, files, imports, cfg)
	handler.AddHealthCheck("database", database.Ping)
	if redisClient != nil {
		handler.AddHealthCheck("redis", redisClient.Ping)
	}

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := api.NewRouter(handler)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("Starting HTTP server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
