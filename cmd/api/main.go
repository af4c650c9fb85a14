package main

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/user/parcel-service/internal/adapter/assessor"
	"github.com/user/parcel-service/internal/adapter/znet"
	"github.com/user/parcel-service/internal/delivery/http/handler"
	"github.com/user/parcel-service/internal/delivery/http/router"
	"github.com/user/parcel-service/internal/usecase"
	"github.com/user/parcel-service/pkg/config"
	"github.com/user/parcel-service/pkg/logger"
	"github.com/user/parcel-service/pkg/metrics"
)

func main() {
	// --- Configuration ---
	cfg := config.Load()

	// --- Logger ---
	logLevel := slog.LevelInfo
	if cfg.LogLevel == "debug" {
		logLevel = slog.LevelDebug
	}
	logger.Init(os.Stdout, logLevel)
	slog.Info("Logger initialized", "level", logLevel.String())

	// --- Metrics ---
	metrics.Init()
	slog.Info("Metrics initialized")

	// --- Upstream Clients ---
	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
	parcelRepo := assessor.NewClient(cfg.AssessorBaseURL, httpClient)
	zoningRepo := znet.NewClient(cfg.ZoningQueryURL, httpClient)

	// --- Use Cases ---
	parcels := usecase.NewParcelLookup(parcelRepo)
	zoning := usecase.NewZoningLookup(parcelRepo, zoningRepo)
	combos := usecase.NewComboLookup(parcels, zoning, cfg.BatchConcurrency)

	// --- HTTP Server ---
	apiHandler := handler.NewHandler(parcels, zoning, combos)
	httpRouter := router.New(apiHandler)

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      httpRouter,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	slog.Info("Starting server", "port", cfg.ServerPort)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("Could not listen on port", "port", cfg.ServerPort, "error", err)
		os.Exit(1)
	}
}
