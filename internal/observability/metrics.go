// Package observability provides Prometheus metrics for store queries and HTTP traffic.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds query metrics. It satisfies query.Recorder.
type Metrics struct {
	// QueryDuration observes store round-trip latency in seconds, labeled by operation.
	QueryDuration *prometheus.HistogramVec

	// QueryErrors counts failed store round trips, labeled by operation.
	QueryErrors *prometheus.CounterVec

	// CountQueriesSkipped counts pages whose total was derived without a count query.
	CountQueriesSkipped *prometheus.CounterVec

	// BulkRowsAffected counts rows changed by bulk statements, labeled by operation.
	BulkRowsAffected *prometheus.CounterVec
}

// NewMetrics creates and registers query metrics under namespace with reg.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		QueryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "query_duration_seconds",
			Help:      "Duration of store queries in seconds.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"operation"}),
		QueryErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "query_errors_total",
			Help:      "Total number of failed store queries.",
		}, []string{"operation"}),
		CountQueriesSkipped: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "count_queries_skipped_total",
			Help:      "Total number of pages served without a count query.",
		}, []string{"operation"}),
		BulkRowsAffected: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "bulk_rows_affected_total",
			Help:      "Total number of rows changed by bulk statements.",
		}, []string{"operation"}),
	}
}

// ObserveQuery records one store round trip.
func (m *Metrics) ObserveQuery(operation string, duration time.Duration, err error) {
	m.QueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if err != nil {
		m.QueryErrors.WithLabelValues(operation).Inc()
	}
}

// CountSkipped records a page served without a count query.
func (m *Metrics) CountSkipped(operation string) {
	m.CountQueriesSkipped.WithLabelValues(operation).Inc()
}

// RowsAffected records rows changed by a bulk statement.
func (m *Metrics) RowsAffected(operation string, n int64) {
	m.BulkRowsAffected.WithLabelValues(operation).Add(float64(n))
}
