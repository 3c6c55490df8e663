// Package database opens and manages the PostgreSQL connection.
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/festy23/querydsl_study/internal/database/config"
	"github.com/festy23/querydsl_study/internal/database/pool"
	"github.com/festy23/querydsl_study/pkg/logger"
	"github.com/festy23/querydsl_study/pkg/retry"
)

// ErrNilDB is returned by helpers handed a nil connection.
var ErrNilDB = errors.New("database connection is nil")

// Options controls how a connection is established.
type Options struct {
	Retry              retry.Config
	Pool               pool.Config
	SlowQueryThreshold time.Duration
}

// OptionsFromEnv loads retry and pool settings from the environment.
func OptionsFromEnv() Options {
	return Options{
		Retry:              config.LoadRetryConfigFromEnv(),
		Pool:               pool.LoadPoolConfigFromEnv(),
		SlowQueryThreshold: logger.DefaultSlowQueryThreshold,
	}
}

// New connects using DB_* environment variables.
func New(ctx context.Context, log *zap.SugaredLogger) (*gorm.DB, error) {
	return NewWithConfig(ctx, config.LoadConfigFromEnv(), OptionsFromEnv(), log)
}

// NewWithConfig connects to PostgreSQL, retrying transient failures.
// Errors never carry the password.
func NewWithConfig(ctx context.Context, cfg config.Config, opts Options, log *zap.SugaredLogger) (*gorm.DB, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	db, err := Connect(ctx, postgres.Open(config.BuildDSN(cfg)), opts, log)
	if err != nil {
		return nil, config.SanitizeError(err, cfg)
	}

	log.Infow("Database connected", "host", cfg.Host, "port", cfg.Port, "database", cfg.DBName)
	return db, nil
}

// Connect opens dialector with retries and applies the pool settings.
func Connect(ctx context.Context, dialector gorm.Dialector, opts Options, log *zap.SugaredLogger) (*gorm.DB, error) {
	retryCfg := opts.Retry
	retryCfg.OnRetry = func(attempt int, err error, delay time.Duration) {
		log.Warnw("Database connection failed, retrying", "attempt", attempt, "delay", delay, "error", err)
	}

	gormCfg := &gorm.Config{
		Logger:         logger.NewGormLogger(log, opts.SlowQueryThreshold),
		TranslateError: true,
	}

	db, err := retry.DoWithResult(ctx, retryCfg, func() (*gorm.DB, error) {
		return gorm.Open(dialector, gormCfg)
	})
	if err != nil {
		return nil, err
	}

	if err := pool.SetupConnectionPool(db, opts.Pool); err != nil {
		_ = Close(db)
		return nil, fmt.Errorf("failed to setup connection pool: %w", err)
	}

	return db, nil
}

// HealthCheck verifies database connection availability.
func HealthCheck(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := underlying(db)
	if err != nil {
		return err
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}

// Close closes the connection; a nil db is a no-op.
func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := underlying(db)
	if err != nil {
		return err
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database connection: %w", err)
	}
	return nil
}

// GetStats returns connection pool statistics.
func GetStats(db *gorm.DB) (*sql.DBStats, error) {
	sqlDB, err := underlying(db)
	if err != nil {
		return nil, err
	}
	stats := sqlDB.Stats()
	return &stats, nil
}

func underlying(db *gorm.DB) (*sql.DB, error) {
	if db == nil {
		return nil, ErrNilDB
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB, nil
}
