// Package metrics provides prometheus collectors for catalog loading
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// CatalogMetrics contains Prometheus metrics for catalog loading
type CatalogMetrics struct {
	registry *prometheus.Registry

	queriesTotal      *prometheus.CounterVec
	queryDuration     *prometheus.HistogramVec
	rowsLoaded        *prometheus.GaugeVec
	rowsSkippedTotal  *prometheus.CounterVec
	cacheHitsTotal    *prometheus.CounterVec
	catalogVersion    prometheus.Gauge
	registryEntries   prometheus.Gauge
	auditFindingsLast *prometheus.GaugeVec

	collectors []prometheus.Collector
}

// NewCatalogMetrics creates and registers new catalog metrics
func NewCatalogMetrics(registry *prometheus.Registry) (*CatalogMetrics, error) {
	m := &CatalogMetrics{registry: registry}
	m.initMetrics()
	if err := registry.Register(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *CatalogMetrics) initMetrics() {
	m.queriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_queries_total",
			Help: "Total number of statements executed against the catalog",
		},
		[]string{"table", "status"},
	)

	m.queryDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "catalog_query_duration_seconds",
			Help:    "Time taken by catalog statements",
			Buckets: prometheus.ExponentialBuckets(BucketStart100us, BucketFactor2, BucketCount12),
		},
		[]string{"table"},
	)

	m.rowsLoaded = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "catalog_rows_loaded",
			Help: "Number of records held in the session cache per kind",
		},
		[]string{"kind"},
	)

	m.rowsSkippedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_rows_skipped_total",
			Help: "Rows skipped by tolerant loaders",
		},
		[]string{"kind", "reason"},
	)

	m.cacheHitsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_cache_hits_total",
			Help: "Loader calls served from the session cache",
		},
		[]string{"kind"},
	)

	m.catalogVersion = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "catalog_version",
		Help: "Raw version number read from the catalog",
	})

	m.registryEntries = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "catalog_registry_entries",
		Help: "Number of entity types in the registry",
	})

	m.auditFindingsLast = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "catalog_audit_findings",
			Help: "Findings reported by the last audit, per kind",
		},
		[]string{"kind"},
	)

	m.collectors = []prometheus.Collector{
		m.queriesTotal,
		m.queryDuration,
		m.rowsLoaded,
		m.rowsSkippedTotal,
		m.cacheHitsTotal,
		m.catalogVersion,
		m.registryEntries,
		m.auditFindingsLast,
	}
}

// Describe implements prometheus.Collector
func (m *CatalogMetrics) Describe(ch chan<- *prometheus.Desc) {
	for _, collector := range m.collectors {
		collector.Describe(ch)
	}
}

// Collect implements prometheus.Collector
func (m *CatalogMetrics) Collect(ch chan<- prometheus.Metric) {
	for _, collector := range m.collectors {
		collector.Collect(ch)
	}
}

// RecordQuery records one executed statement
func (m *CatalogMetrics) RecordQuery(table, status string, seconds float64) {
	m.queriesTotal.WithLabelValues(table, status).Inc()
	m.queryDuration.WithLabelValues(table).Observe(seconds)
}

// SetRowsLoaded records the size of a freshly loaded collection
func (m *CatalogMetrics) SetRowsLoaded(kind string, rows int) {
	m.rowsLoaded.WithLabelValues(kind).Set(float64(rows))
}

// RecordRowSkipped counts a row dropped by a tolerant loader
func (m *CatalogMetrics) RecordRowSkipped(kind, reason string) {
	m.rowsSkippedTotal.WithLabelValues(kind, reason).Inc()
}

// RecordCacheHit counts a loader call answered from the session cache
func (m *CatalogMetrics) RecordCacheHit(kind string) {
	m.cacheHitsTotal.WithLabelValues(kind).Inc()
}

// SetCatalogVersion records the raw version number and registry size
func (m *CatalogMetrics) SetCatalogVersion(version int64, registryEntries int) {
	m.catalogVersion.Set(float64(version))
	m.registryEntries.Set(float64(registryEntries))
}

// SetAuditFindings records the number of findings of one kind
func (m *CatalogMetrics) SetAuditFindings(kind string, count int) {
	m.auditFindingsLast.WithLabelValues(kind).Set(float64(count))
}

// WriteTextfile writes all metrics of the registry in the node_exporter
// textfile collector format.
func (m *CatalogMetrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
