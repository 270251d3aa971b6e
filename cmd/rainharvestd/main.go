// Command rainharvestd serves the rainwater harvest sizing API: the full
// simulation pipeline, the one-shot collection estimate, and the usual
// health/readiness/metrics endpoints. Completed results are optionally
// published to Kafka.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/couchcryptid/rainharvest/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/rainharvest/internal/adapter/kafka"
	"github.com/couchcryptid/rainharvest/internal/config"
	"github.com/couchcryptid/rainharvest/internal/observability"
	"github.com/couchcryptid/rainharvest/internal/simulation"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	// Result publishing is feature-flagged via KAFKA_ENABLED.
	var publisher simulation.ResultPublisher
	var writer *kafkaadapter.Writer
	if cfg.KafkaEnabled {
		writer = kafkaadapter.NewWriter(cfg, logger)
		publisher = writer
		metrics.PublishingEnabled.Set(1)
		logger.Info("kafka result publishing enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaSinkTopic)
	} else {
		logger.Info("kafka result publishing disabled")
	}

	engine := simulation.NewEngine(publisher, logger, metrics, cfg.SimulationDays)

	var sim simulation.Simulator = engine
	if cfg.SimulationCacheSize > 0 {
		sim = simulation.NewCachedSimulator(engine, cfg.SimulationCacheSize)
		logger.Info("seeded-result cache enabled", "size", cfg.SimulationCacheSize)
	}

	srv := httpadapter.NewServer(cfg.HTTPAddr, sim, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
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
