// Package main provides the entry point for the HTTP server.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/festy23/querydsl_study/internal/config"
	dbConfig "github.com/festy23/querydsl_study/internal/database/config"
	"github.com/festy23/querydsl_study/internal/database/database"
	"github.com/festy23/querydsl_study/internal/database/migrate"
	"github.com/festy23/querydsl_study/internal/server"
	"github.com/festy23/querydsl_study/pkg/logger"
)

func main() {
	cfg := config.LoadFromEnv()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	sugar, err := logger.NewWithConfig(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer func() { _ = sugar.Sync() }()

	if err := run(cfg, sugar); err != nil {
		sugar.Errorw("Server stopped with error", "error", err)
		_ = sugar.Sync()
		os.Exit(1)
	}
}

func run(cfg config.Config, sugar *zap.SugaredLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := database.OptionsFromEnv()
	opts.SlowQueryThreshold = cfg.Logger.SlowQueryThreshold
	db, err := database.NewWithConfig(ctx, dbConfig.LoadConfigFromEnv(), opts, sugar)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(db); err != nil {
			sugar.Warnw("Failed to close database", "error", err)
		}
	}()

	if err := migrate.Migrate(db, sugar); err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	if sqlDB, err := db.DB(); err == nil {
		reg.MustRegister(collectors.NewDBStatsCollector(sqlDB, "querydsl"))
	}

	router := server.NewRouter(cfg, db, sugar, reg)
	return server.Run(ctx, cfg.Server, router, sugar)
}
