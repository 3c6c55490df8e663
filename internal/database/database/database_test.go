package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/festy23/querydsl_study/internal/database/config"
	"github.com/festy23/querydsl_study/internal/database/pool"
	"github.com/festy23/querydsl_study/pkg/retry"
)

func testOptions() Options {
	return Options{
		Retry: retry.Config{
			MaxAttempts:  1,
			InitialDelay: time.Millisecond,
			MaxDelay:     time.Millisecond,
			Multiplier:   1,
		},
		Pool:               pool.Config{MaxOpenConns: 1, MaxIdleConns: 1},
		SlowQueryThreshold: time.Second,
	}
}

func openSQLite(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := Connect(context.Background(), sqlite.Open(":memory:"), testOptions(), zap.NewNop().Sugar())
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })
	return db
}

func TestConnect(t *testing.T) {
	t.Run("applies pool settings", func(t *testing.T) {
		db := openSQLite(t)

		stats, err := GetStats(db)
		require.NoError(t, err)
		assert.Equal(t, 1, stats.MaxOpenConnections)
	})

	t.Run("translates constraint errors", func(t *testing.T) {
		db := openSQLite(t)
		type shelf struct {
			ID   int64
			Name string `gorm:"uniqueIndex"`
		}
		require.NoError(t, db.AutoMigrate(&shelf{}))
		require.NoError(t, db.Create(&shelf{Name: "a"}).Error)

		err := db.Create(&shelf{Name: "a"}).Error

		assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
	})

	t.Run("invalid pool config", func(t *testing.T) {
		opts := testOptions()
		opts.Pool = pool.Config{}

		db, err := Connect(context.Background(), sqlite.Open(":memory:"), opts, zap.NewNop().Sugar())

		require.Error(t, err)
		assert.Nil(t, db)
		assert.Contains(t, err.Error(), "failed to setup connection pool")
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		db, err := Connect(ctx, sqlite.Open(":memory:"), testOptions(), zap.NewNop().Sugar())

		assert.ErrorIs(t, err, context.Canceled)
		assert.Nil(t, db)
	})
}

func TestNewWithConfig(t *testing.T) {
	t.Run("invalid config is rejected before dialing", func(t *testing.T) {
		db, err := NewWithConfig(context.Background(), config.Config{SSLMode: "disable"}, testOptions(), zap.NewNop().Sugar())

		require.Error(t, err)
		assert.Nil(t, db)
		assert.Contains(t, err.Error(), "missing DB_HOST")
	})

	t.Run("unreachable server error hides password", func(t *testing.T) {
		cfg := config.Config{
			Host:     "127.0.0.1",
			User:     "search",
			Password: "hunter2-secret",
			DBName:   "querydsl",
			Port:     "1",
			SSLMode:  "disable",
			TimeZone: "UTC",
		}

		db, err := NewWithConfig(context.Background(), cfg, testOptions(), zap.NewNop().Sugar())

		require.Error(t, err)
		assert.Nil(t, db)
		assert.Contains(t, err.Error(), "failed to connect to database")
		assert.NotContains(t, err.Error(), "hunter2-secret")
	})
}

func TestHealthCheck(t *testing.T) {
	t.Run("open connection", func(t *testing.T) {
		assert.NoError(t, HealthCheck(context.Background(), openSQLite(t)))
	})

	t.Run("nil connection", func(t *testing.T) {
		assert.ErrorIs(t, HealthCheck(context.Background(), nil), ErrNilDB)
	})

	t.Run("closed connection", func(t *testing.T) {
		db := openSQLite(t)
		require.NoError(t, Close(db))

		err := HealthCheck(context.Background(), db)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "database ping failed")
	})
}

func TestClose(t *testing.T) {
	assert.NoError(t, Close(nil))
	assert.NoError(t, Close(openSQLite(t)))
}

func TestGetStats(t *testing.T) {
	stats, err := GetStats(nil)

	assert.ErrorIs(t, err, ErrNilDB)
	assert.Nil(t, stats)
}
