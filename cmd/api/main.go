package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lookalike-labs/facematch/internal/api"
	"github.com/lookalike-labs/facematch/internal/config"
	"github.com/lookalike-labs/facematch/internal/database"
	"github.com/lookalike-labs/facematch/internal/face"
	"github.com/lookalike-labs/facematch/internal/gallery"
	"github.com/lookalike-labs/facematch/internal/match"
	"github.com/lookalike-labs/facematch/internal/repository"
	"github.com/lookalike-labs/facematch/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Environment)
	slog.SetDefault(logger)

	logger.Info("starting FaceMatch API",
		slog.String("environment", cfg.Environment),
		slog.String("provider", cfg.Provider),
		slog.Int("port", cfg.Port),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Embedding provider
	embedder, err := face.NewEmbedder(cfg)
	if err != nil {
		return fmt.Errorf("failed to create embedding provider: %w", err)
	}

	// Optional persistent embedding store; without DATABASE_URL embeddings
	// are recomputed on every reload.
	var store gallery.EmbeddingStore
	var pool *pgxpool.Pool
	if cfg.DatabaseURL != "" {
		pool, err = database.NewPgxPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer pool.Close()

		store = repository.NewEmbeddingRepository(pool)
		logger.Info("embedding store enabled")
	} else {
		logger.Info("no DATABASE_URL configured, embeddings will not be persisted")
	}

	// Gallery cache
	cache := gallery.New(cfg.GalleryDir, embedder, store, logger)
	if cfg.GalleryPreload {
		if err := cache.Populate(ctx, false); err != nil {
			return fmt.Errorf("failed to populate gallery: %w", err)
		}
	}

	// Matching pipeline
	ranker := match.NewRanker(logger)
	matchService := service.NewMatchService(cache, embedder, ranker, cfg.GalleryURLBase).
		WithTopK(cfg.TopK)

	// Setup router
	router := api.NewRouter(logger, &api.Dependencies{
		MatchService: matchService,
		Gallery:      cache,
		GalleryDir:   cfg.GalleryDir,
		GalleryPath:  cfg.GalleryURLBase,
	})
	router.Setup()

	// Start server in goroutine
	errChan := make(chan error, 1)
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Port)
		logger.Info("server listening", slog.String("addr", addr))
		if err := router.Listen(addr); err != nil {
			errChan <- err
		}
	}()

	// Wait for shutdown signal or error
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errChan:
		return fmt.Errorf("server error: %w", err)
	}

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	logger.Info("shutting down server...")
	if err := router.Shutdown(); err != nil {
		logger.Error("shutdown error", slog.Any("error", err))
	}

	<-shutdownCtx.Done()
	logger.Info("server stopped")

	return nil
}
