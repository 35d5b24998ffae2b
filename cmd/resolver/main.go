package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/enterstudio/location-normalizer/internal/adapter/googlemaps"
	httpadapter "github.com/enterstudio/location-normalizer/internal/adapter/http"
	kafkaadapter "github.com/enterstudio/location-normalizer/internal/adapter/kafka"
	"github.com/enterstudio/location-normalizer/internal/adapter/tzlocal"
	"github.com/enterstudio/location-normalizer/internal/config"
	"github.com/enterstudio/location-normalizer/internal/domain"
	"github.com/enterstudio/location-normalizer/internal/observability"
	"github.com/enterstudio/location-normalizer/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	// Location resolution is feature-flagged via GOOGLE_MAPS_ENABLED /
	// GOOGLE_MAPS_API_KEY. Without it records pass through un-enriched.
	var resolver *domain.Resolver
	if cfg.GoogleMapsEnabled {
		keys := googlemaps.StaticKey(cfg.GoogleMapsAPIKey)
		client := googlemaps.NewClient(keys, cfg.GoogleMapsTimeout, logger, metrics)
		places := googlemaps.NewCachedPlaces(client, cfg.GoogleMapsCacheSize, metrics)

		var tzFallback domain.TimezoneFinder
		if cfg.TimezoneFallbackEnabled {
			finder, err := tzlocal.NewFinder()
			if err != nil {
				logger.Warn("offline timezone fallback unavailable", "error", err)
			} else {
				tzFallback = finder
			}
		}

		resolver = domain.NewResolver(places, tzFallback, logger)
		metrics.PlacesEnabled.Set(1)
		logger.Info("location resolution enabled",
			"cache_size", cfg.GoogleMapsCacheSize,
			"timeout", cfg.GoogleMapsTimeout,
			"timezone_fallback", tzFallback != nil)
	} else {
		logger.Info("location resolution disabled")
	}

	index := func(rec domain.EntityRecord) {
		logger.Debug("location updated", "kind", string(rec.Kind), "key", rec.Key)
	}

	reader := kafkaadapter.NewReader(cfg, logger)
	writer := kafkaadapter.NewWriter(cfg, logger)
	transformer := pipeline.NewTransformer(resolver, index, logger, metrics)

	p := pipeline.New(reader, transformer, writer, logger, metrics, cfg.BatchSize)

	srv := httpadapter.NewServer(cfg.HTTPAddr, p, resolver, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Start the normalization pipeline.
	go func() {
		if err := p.Run(ctx); err != nil {
			logger.Error("pipeline error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if err := reader.Close(); err != nil {
		logger.Error("kafka reader close error", "error", err)
	}
	if err := writer.Close(); err != nil {
		logger.Error("kafka writer close error", "error", err)
	}

	logger.Info("shutdown complete")
}
