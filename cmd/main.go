package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/satriahrh/speechsuite/adapters"
	"github.com/satriahrh/speechsuite/adapters/catalog"
	"github.com/satriahrh/speechsuite/adapters/mongo"
	"github.com/satriahrh/speechsuite/adapters/storage"
	"github.com/satriahrh/speechsuite/adapters/tts"
	"github.com/satriahrh/speechsuite/domain/repositories"
	"github.com/satriahrh/speechsuite/internal/api"
	"github.com/satriahrh/speechsuite/internal/auth"
	"github.com/satriahrh/speechsuite/internal/config"
	"github.com/satriahrh/speechsuite/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// Initialize adapters
	voices := catalog.New()

	backend, err := tts.NewBackend(cfg.Backend, cfg.EdgeTTSURL, logger)
	if err != nil {
		logger.Fatal("Failed to create synthesis backend", zap.Error(err))
	}

	store, err := storage.NewFileStore(cfg.AudioDir, cfg.MaxArtifacts, logger)
	if err != nil {
		logger.Fatal("Failed to open artifact store", zap.Error(err))
	}

	var history repositories.HistoryRepository = adapters.NewMemoryHistoryRepository(0)
	if cfg.MongoURI != "" {
		client, err := mongo.NewClient(context.Background(), cfg.MongoURI, cfg.MongoDatabase, logger)
		if err != nil {
			logger.Fatal("Failed to connect to MongoDB", zap.Error(err))
		}
		defer client.Close(context.Background())
		history = mongo.NewHistoryRepository(client.Database, logger)
	}

	var tokens *auth.TokenManager
	if cfg.APISecret != "" {
		tokens, err = auth.NewTokenManager(cfg.APISecret)
		if err != nil {
			logger.Fatal("Failed to create token manager", zap.Error(err))
		}
	}

	// Initialize usecase services
	synthesisService := usecase.NewSynthesisService(voices, backend, cfg.RequestTimeout(), cfg.MaxTextLength, logger)
	speechService := usecase.NewSpeechService(synthesisService, store, history, usecase.RetryPolicy{
		Retries: cfg.SynthesisRetries,
		Backoff: cfg.RetryBackoff,
	}, logger)

	cleanup := storage.NewCleanupService(store, cfg.MaxArtifactAge, cfg.CleanupInterval, logger)
	cleanup.Start()
	defer cleanup.Stop()

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(api.RequestLogger(logger))
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.BodyLimit("64K"))

	// Initialize API routes
	api.InitRoutes(e, api.NewHandler(speechService, voices, store, backend.Name(), api.Options{
		DefaultRate:   cfg.DefaultRate,
		DefaultVolume: cfg.DefaultVolume,
		StaticDir:     cfg.StaticDir,
		Tokens:        tokens,
	}, logger))

	// Graceful shutdown
	go func() {
		if err := e.Start(cfg.Address()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("shutting down the server", zap.Error(err))
		}
	}()

	logger.Info("Server started",
		zap.String("port", cfg.Port),
		zap.String("backend", backend.Name()),
		zap.String("audioDir", cfg.AudioDir),
		zap.Bool("auth", tokens != nil))

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("Server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}

func newLogger(level string) (*zap.Logger, error) {
	if level == "debug" {
		return zap.NewDevelopment()
	}

	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}

	zapCfg := zap.NewProductionConfig()
	zapCfg.Level = zap.NewAtomicLevelAt(lvl)
	return zapCfg.Build()
}
