package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/vedantmohite26/women-safety-analytics-SOS-safety/internal/api"
	"github.com/vedantmohite26/women-safety-analytics-SOS-safety/internal/config"
	"github.com/vedantmohite26/women-safety-analytics-SOS-safety/internal/logging"
	"github.com/vedantmohite26/women-safety-analytics-SOS-safety/internal/services"
)

func main() {
	// Setup structured logging
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	// Load configuration
	cfg := config.Load()

	// Set log level
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Warn().Str("level", cfg.LogLevel).Msg("Invalid log level, using info")
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	// Optionally tee logs into the embedded Logdy web viewer
	if cfg.LogdyEnabled {
		if w, _, err := logging.StartLogdy(cfg); err == nil {
			log.Logger = log.Output(io.MultiWriter(zerolog.ConsoleWriter{Out: os.Stderr}, w))
		} else {
			log.Warn().Err(err).Msg("Failed to start Logdy, continuing without it")
		}
	}

	log.Info().
		Str("service_id", cfg.ServiceID).
		Str("version", cfg.Version).
		Str("environment", cfg.Environment).
		Int("port", cfg.Port).
		Bool("detector_enabled", cfg.DetectorEnabled).
		Str("db_path", cfg.DBPath).
		Msg("Starting safety analytics service")

	// Wire services: store, detection adapter, messaging, alert feed
	container, err := services.NewServiceContainer(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize services")
	}

	server := api.NewServer(cfg, container)

	// Start server in goroutine
	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutdown signal received")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	if err := container.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Service shutdown failed")
	} else {
		log.Info().Msg("Shutdown complete")
	}
}
