package health

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	return db
}

func setupRouter(handler *Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler.RegisterRoutes(router)
	return router
}

func get(router http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestHandler_Ready(t *testing.T) {
	t.Run("healthy database", func(t *testing.T) {
		router := setupRouter(New(setupTestDB(t), zap.NewNop().Sugar()))

		for _, path := range []string{"/health", "/health/ready"} {
			w := get(router, path)

			require.Equal(t, http.StatusOK, w.Code, path)
			var resp Response
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, "ok", resp.Status)
			require.NotNil(t, resp.Pool)
			assert.Equal(t, 1, resp.Pool.MaxOpen)
		}
	})

	t.Run("closed database", func(t *testing.T) {
		db := setupTestDB(t)
		sqlDB, err := db.DB()
		require.NoError(t, err)
		require.NoError(t, sqlDB.Close())
		router := setupRouter(New(db, zap.NewNop().Sugar()))

		w := get(router, "/health/ready")

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.JSONEq(t, `{"status":"unhealthy"}`, w.Body.String())
	})

	t.Run("nil database", func(t *testing.T) {
		router := setupRouter(New(nil, zap.NewNop().Sugar()))

		assert.Equal(t, http.StatusServiceUnavailable, get(router, "/health").Code)
	})

	t.Run("concurrent checks", func(t *testing.T) {
		router := setupRouter(New(setupTestDB(t), zap.NewNop().Sugar()))

		results := make(chan int, 10)
		for range 10 {
			go func() { results <- get(router, "/health").Code }()
		}
		for range 10 {
			assert.Equal(t, http.StatusOK, <-results)
		}
	})
}

func TestHandler_Live(t *testing.T) {
	router := setupRouter(New(nil, zap.NewNop().Sugar()))

	w := get(router, "/health/live")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}
