package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector provides application metrics collection
// Each collector owns its registry so a run can be exported on its own
type Collector struct {
	registry *prometheus.Registry

	// Loader Metrics
	FilesDiscoveredTotal prometheus.Counter
	FilesSkippedTotal    *prometheus.CounterVec
	RecordsLoadedTotal   prometheus.Counter
	RowsDroppedTotal     *prometheus.CounterVec
	LoadDuration         prometheus.Histogram

	// Statistics Metrics
	AggregationDuration   *prometheus.HistogramVec
	ReportsGeneratedTotal *prometheus.CounterVec
}

// NewCollector creates a new metrics collector
func NewCollector(namespace string) *Collector {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Collector{
		registry: registry,

		FilesDiscoveredTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "files_discovered_total",
				Help:      "Total number of input files matching the requested city and year",
			},
		),

		FilesSkippedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "files_skipped_total",
				Help:      "Total number of input files skipped by reason",
			},
			[]string{"reason"},
		),

		RecordsLoadedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "records_loaded_total",
				Help:      "Total number of daily records loaded",
			},
		),

		RowsDroppedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rows_dropped_total",
				Help:      "Total number of data rows dropped during parsing by reason",
			},
			[]string{"reason"},
		),

		LoadDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "load_duration_seconds",
				Help:      "Duration of dataset loading in seconds",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2, 5},
			},
		),

		AggregationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "aggregation_duration_seconds",
				Help:      "Duration of report aggregation in seconds by operation",
				Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
			},
			[]string{"operation"},
		),

		ReportsGeneratedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "reports_generated_total",
				Help:      "Total number of reports generated by kind",
			},
			[]string{"kind"},
		),
	}
}

// Registry returns the registry backing the collector
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// WriteTextfile writes all collected metrics to path in the
// node exporter textfile format
func (c *Collector) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, c.registry)
}

// Timer provides timing functionality for operations
type Timer struct {
	start    time.Time
	observer prometheus.Observer
}

// NewTimer creates a new timer
func (c *Collector) NewTimer(histogram prometheus.Observer) *Timer {
	return &Timer{
		start:    time.Now(),
		observer: histogram,
	}
}

// ObserveDuration records the elapsed time since timer creation
func (t *Timer) ObserveDuration() time.Duration {
	duration := time.Since(t.start)
	if t.observer != nil {
		t.observer.Observe(duration.Seconds())
	}
	return duration
}

// RecordFileSkipped increments the skipped file counter
func (c *Collector) RecordFileSkipped(reason string) {
	c.FilesSkippedTotal.WithLabelValues(reason).Inc()
}

// RecordRowDropped increments the dropped row counter
func (c *Collector) RecordRowDropped(reason string) {
	c.RowsDroppedTotal.WithLabelValues(reason).Inc()
}

// RecordReport increments the generated report counter
func (c *Collector) RecordReport(kind string) {
	c.ReportsGeneratedTotal.WithLabelValues(kind).Inc()
}

// AggregationTimer starts a timer for one aggregation operation
func (c *Collector) AggregationTimer(operation string) *Timer {
	return c.NewTimer(c.AggregationDuration.WithLabelValues(operation))
}
