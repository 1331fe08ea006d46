// Package main is the entry point for the querykit API server.
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

	"querykit/internal/domain/example"
	v1 "querykit/internal/infrastructure/http/v1"
	"querykit/internal/infrastructure/storage/postgres"
	"querykit/internal/infrastructure/storage/postgres/converter"
	"querykit/internal/infrastructure/storage/postgres/criteria_repo"
	"querykit/pkg/logger"
)

const version = "0.1.0"

func main() {
	log, err := logger.New(logger.Config{
		Level:       getEnv("LOG_LEVEL", "info"),
		Development: getEnv("APP_ENV", "development") == "development",
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := logger.WithLogger(context.Background(), log)
	log.Infow("starting querykit server", "version", version)

	// --- Database ---
	poolCfg := postgres.DefaultPoolConfig(mustEnv("DATABASE_URL"))
	if maxConns := getEnvInt("DB_MAX_CONNS", 0); maxConns > 0 {
		poolCfg.MaxConns = int32(maxConns)
	}
	if minConns := getEnvInt("DB_MIN_CONNS", 0); minConns > 0 {
		poolCfg.MinConns = int32(minConns)
	}

	pool, err := postgres.NewPool(ctx, poolCfg)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()
	pool.LogStats(ctx)

	txManager := postgres.NewTxManager(pool).
		WithStatementTimeout(getEnvDuration("DB_STATEMENT_TIMEOUT", 30*time.Second))

	// --- Repositories and services ---
	exampleRepo := criteria_repo.NewExampleRepo(txManager, converter.New())
	exampleService := example.NewService(exampleRepo, txManager)

	metadataRegistry := setupMetadataRegistry()
	log.Infow("metadata registry initialized", "entities", len(metadataRegistry.List()))

	// --- Router ---
	router := v1.NewRouter(v1.RouterConfig{
		DB:               pool,
		Logger:           log,
		ExampleService:   exampleService,
		MetadataRegistry: metadataRegistry,
		Version:          version,
	})

	// --- HTTP Server ---
	port := getEnv("APP_PORT", "8080")
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("server starting", "port", port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}
