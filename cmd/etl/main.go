package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/winds-aloft-etl/internal/adapter/aviationweather"
	httpadapter "github.com/couchcryptid/winds-aloft-etl/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/winds-aloft-etl/internal/adapter/kafka"
	"github.com/couchcryptid/winds-aloft-etl/internal/config"
	"github.com/couchcryptid/winds-aloft-etl/internal/domain"
	"github.com/couchcryptid/winds-aloft-etl/internal/forecast"
	"github.com/couchcryptid/winds-aloft-etl/internal/observability"
	"github.com/couchcryptid/winds-aloft-etl/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	source := aviationweather.NewClient(cfg.SourceURL, cfg.FetchTimeout, logger)
	decoder := domain.NewDecoder(cfg.TableLayout)
	transformer := pipeline.NewTransformer(decoder, logger, metrics)

	// Publishing is feature-flagged via KAFKA_ENABLED.
	var (
		loader pipeline.BatchLoader
		writer *kafkaadapter.Writer
	)
	if cfg.KafkaEnabled {
		writer = kafkaadapter.NewWriter(cfg, logger)
		loader = writer
		logger.Info("kafka publishing enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaSinkTopic)
	} else {
		loader = pipeline.NewLogLoader(logger)
		logger.Info("kafka publishing disabled")
	}

	p := pipeline.New(source, transformer, loader, logger, metrics, cfg.Schedule)
	svc := forecast.NewService(source, decoder)

	srv := httpadapter.NewServer(cfg.HTTPAddr, p, svc, metrics, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Start refresh pipeline.
	logger.Info("refresh schedule", "cron", cfg.RefreshSchedule, "layout", cfg.TableLayout.Name(), "source", cfg.SourceURL)
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
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
