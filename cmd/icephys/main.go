// Command icephys derives sea-ice surface parameters (roughness length,
// surface heat capacity, albedo) from the N-ICE2015 campaign datasets and
// prints a summary report. Dataset locations and optional sinks are
// configured through environment variables or a .env file; see
// internal/config.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/polarmet/icephys/internal/adapter/httpserver"
	kafkaadapter "github.com/polarmet/icephys/internal/adapter/kafka"
	"github.com/polarmet/icephys/internal/adapter/sqlite"
	"github.com/polarmet/icephys/internal/analysis"
	"github.com/polarmet/icephys/internal/config"
	"github.com/polarmet/icephys/internal/observability"
	"github.com/polarmet/icephys/internal/report"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()
	analyzer := analysis.New(cfg, logger, metrics)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	result, err := analyzer.Run(ctx)
	if err != nil {
		logger.Error("analysis failed", "error", err)
		os.Exit(1)
	}

	report.Render(os.Stdout, result)

	if cfg.KafkaEnabled {
		publishReport(ctx, cfg, logger, analyzer)
	} else {
		logger.Info("kafka publication disabled")
	}

	if cfg.ArchivePath != "" {
		archiveReport(ctx, cfg, logger, analyzer)
	}

	if cfg.ServeAddr == "" {
		return
	}
	serve(ctx, cfg, logger, analyzer)
}

func publishReport(ctx context.Context, cfg *config.Config, logger *slog.Logger, analyzer *analysis.Analyzer) {
	writer := kafkaadapter.NewWriter(cfg, logger)
	defer func() {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}()
	if err := writer.Publish(ctx, analyzer.Report()); err != nil {
		logger.Error("kafka publish failed", "error", err)
	}
}

func archiveReport(ctx context.Context, cfg *config.Config, logger *slog.Logger, analyzer *analysis.Analyzer) {
	store, err := sqlite.Open(cfg.ArchivePath)
	if err != nil {
		logger.Error("archive open failed", "error", err)
		return
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("archive close error", "error", err)
		}
	}()
	if err := store.Archive(ctx, analyzer.Report()); err != nil {
		logger.Error("archive failed", "error", err)
		return
	}
	logger.Info("report archived", "path", cfg.ArchivePath)
}

// serve keeps /report and /metrics available until the process is signalled.
func serve(ctx context.Context, cfg *config.Config, logger *slog.Logger, analyzer *analysis.Analyzer) {
	srv := httpserver.New(cfg.ServeAddr, analyzer, logger)

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
	logger.Info("shutdown complete")
}
