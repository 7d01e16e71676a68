package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/angelmondragon/ledgertag/internal/adapters"
	"github.com/angelmondragon/ledgertag/internal/engine"
	"github.com/angelmondragon/ledgertag/pkg/config"
	"github.com/angelmondragon/ledgertag/pkg/logger"
	"github.com/angelmondragon/ledgertag/pkg/metrics"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "tagger"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "tagger",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx = logg.WithFields(ctx, map[string]any{
		"env":     cfg.App.Env,
		"dry_run": cfg.Engine.DryRun,
	})

	passMetrics := metrics.NewPassMetrics(prometheus.DefaultRegisterer)

	source, err := adapters.NewJSONFileSource(adapters.JSONFileSourceParams{
		Logger: logg,
		Path:   cfg.Source.SnapshotPath,
	})
	if err != nil {
		logg.Error(ctx, "failed to create snapshot source", err)
		os.Exit(1)
	}

	sink, err := adapters.NewLogSink(adapters.LogSinkParams{
		Logger: logg,
		DryRun: cfg.Engine.DryRun,
	})
	if err != nil {
		logg.Error(ctx, "failed to create update sink", err)
		os.Exit(1)
	}

	service, err := engine.NewService(engine.ServiceParams{
		Logger:  logg,
		Config:  cfg.Engine,
		Metrics: passMetrics,
	})
	if err != nil {
		logg.Error(ctx, "failed to create engine", err)
		os.Exit(1)
	}

	snapshot, err := source.Fetch(ctx)
	if err != nil {
		logg.Error(ctx, "failed to load snapshot", err)
		os.Exit(1)
	}

	result, err := service.Run(ctx, *snapshot)
	if err != nil {
		logg.Error(ctx, "reconciliation pass failed", err)
		os.Exit(1)
	}

	ctx = logg.WithRunID(ctx, result.RunID)
	failed := 0
	for _, applied := range sink.Apply(ctx, result.Updates) {
		if applied.Err != nil {
			failed++
		}
	}
	if failed > 0 {
		logg.Error(ctx, "some updates failed to apply", nil)
		os.Exit(1)
	}

	for _, prompt := range result.PromptQueue {
		promptCtx := logg.WithFields(ctx, map[string]any{
			"transaction_id": prompt.Transaction.ID,
			"order_id":       prompt.Update.OrderID,
		})
		logg.Warn(promptCtx, "transaction edited by hand, confirm retag before applying")
	}

	logg.Info(ctx, "tagger finished")
}
