package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"nova-commerce/internal/config"
	"nova-commerce/internal/database"
	"nova-commerce/internal/logger"
	"nova-commerce/internal/server"
	"nova-commerce/internal/upload"

	"go.uber.org/zap"
)

const shutdownTimeout = 30 * time.Second

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.Server.Env)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting commerce back-office API",
		zap.String("env", cfg.Server.Env),
		zap.String("port", cfg.Server.Port),
	)

	db, err := database.New(cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	log.Info("Database health check", zap.Any("health", database.Health(db)))

	if err := database.RunMigrations(db, "migrations", log); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Reconcile the fixed category set
	if err := database.SeedCategories(context.Background(), db, log); err != nil {
		log.Fatal("Failed to seed categories", zap.Error(err))
	}

	uploads, err := upload.NewStore(cfg.Uploads.Dir, cfg.Server.PublicBaseURL, cfg.Uploads.PathPrefix)
	if err != nil {
		log.Fatal("Failed to prepare upload directory", zap.Error(err))
	}

	srv := server.NewServer(cfg, log, db, uploads)

	done := make(chan struct{})
	go awaitShutdown(srv, log, done)

	log.Info("Server listening", zap.String("addr", srv.Addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("HTTP server error", zap.Error(err))
	}

	<-done
	log.Info("Graceful shutdown complete")
}

// awaitShutdown blocks until SIGINT or SIGTERM, drains in-flight
// requests within shutdownTimeout, then releases server resources.
func awaitShutdown(srv *server.Server, log *zap.Logger, done chan<- struct{}) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	log.Info("Shutting down gracefully, press Ctrl+C again to force")
	stop()

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := srv.Close(); err != nil {
		log.Error("Error closing server resources", zap.Error(err))
	}

	close(done)
}
