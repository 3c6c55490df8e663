// Package server assembles the HTTP router and runs it with graceful shutdown.
package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/querydsl_study/internal/config"
	"github.com/festy23/querydsl_study/internal/health"
	memberRouter "github.com/festy23/querydsl_study/internal/member/router"
	"github.com/festy23/querydsl_study/internal/middleware"
	"github.com/festy23/querydsl_study/internal/observability"
	statisticsRouter "github.com/festy23/querydsl_study/internal/statistics/router"
	teamRouter "github.com/festy23/querydsl_study/internal/team/router"
)

const metricsNamespace = "querydsl"

// NewRouter wires middleware, probes, metrics and every module's routes.
// Metrics are registered with reg and served from reg when cfg.Server.MetricsPath is set.
func NewRouter(
	cfg config.Config,
	db *gorm.DB,
	logger *zap.SugaredLogger,
	reg *prometheus.Registry,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.Recovery(logger),
		middleware.Metrics(observability.NewHTTPMetrics(metricsNamespace, reg)),
	)

	health.New(db, logger).RegisterRoutes(r)
	if cfg.Server.MetricsPath != "" {
		r.GET(cfg.Server.MetricsPath, gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})))
	}

	queries := observability.NewMetrics(metricsNamespace, reg)
	memberRouter.RegisterRoutes(r, db, logger, queries, cfg.Pagination)
	teamRouter.RegisterRoutes(r, db, logger, queries)
	statisticsRouter.RegisterRoutes(r, db, logger, queries)

	return r
}

// Run serves handler until ctx is cancelled, then shuts down within cfg.ShutdownTimeout.
func Run(ctx context.Context, cfg config.ServerConfig, handler http.Handler, logger *zap.SugaredLogger) error {
	srv := &http.Server{
		Addr:         cfg.GetAddress(),
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infow("HTTP server listening", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Infow("Shutting down HTTP server", "timeout", cfg.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
