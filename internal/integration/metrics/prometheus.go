// Package metrics exposes pipeline and report activity to Prometheus.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/finance-tracker/pnl/internal/application/adapter"
	"github.com/finance-tracker/pnl/internal/domain/entity"
)

const namespace = "pnl"

// PrometheusMetrics implements adapter.ImportMetrics on its own registry.
type PrometheusMetrics struct {
	registry *prometheus.Registry

	recordsImported *prometheus.CounterVec
	rowsSkipped     *prometheus.CounterVec
	importDuration  *prometheus.HistogramVec
	sourceFetches   *prometheus.CounterVec
	fetchDuration   *prometheus.HistogramVec
	rollups         *prometheus.CounterVec
	rollupRecords   prometheus.Histogram
	rollupDuration  *prometheus.HistogramVec
}

var _ adapter.ImportMetrics = (*PrometheusMetrics)(nil)

// NewPrometheusMetrics creates the collectors on a fresh registry, so several
// instances can coexist in one process.
func NewPrometheusMetrics() *PrometheusMetrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &PrometheusMetrics{
		registry: reg,
		recordsImported: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "records_imported_total",
				Help:      "Total number of canonical records produced by imports",
			},
			[]string{"source"},
		),
		rowsSkipped: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rows_skipped_total",
				Help:      "Total number of raw rows dropped by the validity gate",
			},
			[]string{"source", "reason"},
		),
		importDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "import_duration_seconds",
				Help:      "Import transformation duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"source"},
		),
		sourceFetches: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "source_fetches_total",
				Help:      "Total number of external source fetches",
			},
			[]string{"source", "status"},
		),
		fetchDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "source_fetch_duration_seconds",
				Help:      "External source fetch duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"source"},
		),
		rollups: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rollups_total",
				Help:      "Total number of P&L rollups served",
			},
			[]string{"cache_hit"},
		),
		rollupRecords: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "rollup_records",
				Help:      "Number of records aggregated per rollup",
				Buckets:   prometheus.ExponentialBuckets(1, 10, 8),
			},
		),
		rollupDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "rollup_duration_seconds",
				Help:      "P&L rollup duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"cache_hit"},
		),
	}
}

func (m *PrometheusMetrics) ObserveImport(source entity.Source, imported, skipped int, duration time.Duration) {
	m.recordsImported.WithLabelValues(string(source)).Add(float64(imported))
	m.importDuration.WithLabelValues(string(source)).Observe(duration.Seconds())
}

func (m *PrometheusMetrics) ObserveSkippedRow(source entity.Source, reason string) {
	m.rowsSkipped.WithLabelValues(string(source), reason).Inc()
}

func (m *PrometheusMetrics) ObserveSourceFetch(source entity.Source, success bool, duration time.Duration) {
	status := "success"
	if !success {
		status = "failed"
	}
	m.sourceFetches.WithLabelValues(string(source), status).Inc()
	m.fetchDuration.WithLabelValues(string(source)).Observe(duration.Seconds())
}

func (m *PrometheusMetrics) ObserveRollup(cacheHit bool, records int, duration time.Duration) {
	hit := strconv.FormatBool(cacheHit)
	m.rollups.WithLabelValues(hit).Inc()
	m.rollupDuration.WithLabelValues(hit).Observe(duration.Seconds())
	if !cacheHit {
		m.rollupRecords.Observe(float64(records))
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *PrometheusMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry exposes the underlying registry for scraping in tests.
func (m *PrometheusMetrics) Registry() *prometheus.Registry {
	return m.registry
}
