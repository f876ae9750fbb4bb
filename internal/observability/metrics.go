package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestDuration tracks request duration
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "painel_dengue_request_duration_seconds",
			Help: "Duration of HTTP requests in seconds",
		},
		[]string{"path", "method", "status"},
	)

	// ActiveConnections tracks active connections
	ActiveConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "painel_dengue_active_connections",
			Help: "Number of active connections",
		},
	)

	// CacheHits tracks dashboard cache lookups by result (hit, miss, error)
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "painel_dengue_cache_hits_total",
			Help: "Number of dashboard cache lookups by result",
		},
		[]string{"result"},
	)

	// DashboardComputeDuration tracks the filter-and-aggregate pass
	DashboardComputeDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "painel_dengue_dashboard_compute_duration_seconds",
			Help:    "Duration of the dashboard filter and aggregate pass in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
		},
	)

	// DashboardFilteredRows tracks how many rows survive the filters
	DashboardFilteredRows = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "painel_dengue_dashboard_filtered_rows",
			Help:    "Number of case records left after applying the dashboard filters",
			Buckets: prometheus.ExponentialBuckets(1, 4, 10),
		},
	)

	// DatasetRows is the number of case records loaded at startup
	DatasetRows = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "painel_dengue_dataset_rows",
			Help: "Number of case records loaded in memory",
		},
	)

	// DatasetLoadDuration is the time spent loading the dataset
	DatasetLoadDuration = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "painel_dengue_dataset_load_duration_seconds",
			Help: "Time spent loading and enriching the dataset in seconds",
		},
	)

	// ChartRenders tracks chart renders by chart, format and status
	ChartRenders = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "painel_dengue_chart_renders_total",
			Help: "Number of rendered charts",
		},
		[]string{"chart", "format", "status"},
	)

	// Exports tracks spreadsheet exports by status
	Exports = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "painel_dengue_exports_total",
			Help: "Number of dashboard spreadsheet exports",
		},
		[]string{"status"},
	)

	// ImportedRows tracks rows written to MongoDB by the importer
	ImportedRows = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "painel_dengue_imported_rows_total",
			Help: "Number of case records written by the importer",
		},
		[]string{"status"},
	)
)
