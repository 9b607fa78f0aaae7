// Package metrics exposes snapshots in Prometheus form.
package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"horizonx-probe/internal/core"
)

const namespace = "horizonx_probe"

// Exporter mirrors the latest snapshot into gauges. Metrics are exported
// when their value carries a sample: plain numbers and measured text such
// as byte sizes and percentages.
type Exporter struct {
	registry *prometheus.Registry

	CategorySeverity *prometheus.GaugeVec
	MetricValue      *prometheus.GaugeVec
	Duration         prometheus.Histogram
	Snapshots        prometheus.Counter
	Failures         prometheus.Counter
	LastSnapshot     prometheus.Gauge

	mu sync.Mutex
}

func NewExporter(registry *prometheus.Registry) *Exporter {
	e := &Exporter{
		registry: registry,
		CategorySeverity: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "category_severity",
			Help:      "Severity of each category in the latest snapshot (0 info, 1 warn, 2 critical).",
		}, []string{"category"}),
		MetricValue: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "metric_value",
			Help:      "Numeric metric values from the latest snapshot.",
		}, []string{"category", "metric"}),
		Duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "collection_duration_seconds",
			Help:      "Time taken to collect one snapshot.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5, 10},
		}),
		Snapshots: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "snapshots_total",
			Help:      "Total number of snapshots collected.",
		}),
		Failures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "snapshot_failures_total",
			Help:      "Total number of failed collections.",
		}),
		LastSnapshot: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_snapshot_timestamp_seconds",
			Help:      "Collection time of the latest snapshot.",
		}),
	}

	registry.MustRegister(
		e.CategorySeverity,
		e.MetricValue,
		e.Duration,
		e.Snapshots,
		e.Failures,
		e.LastSnapshot,
	)

	return e
}

// Observe replaces the exported state with snap.
func (e *Exporter) Observe(snap *core.Snapshot, took time.Duration) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.Snapshots.Inc()
	e.Duration.Observe(took.Seconds())
	e.LastSnapshot.Set(float64(snap.CollectedAt().Unix()))

	e.CategorySeverity.Reset()
	e.MetricValue.Reset()
	for _, cat := range snap.Categories() {
		e.CategorySeverity.WithLabelValues(cat.Key()).Set(float64(cat.Severity()))
		for _, m := range cat.Metrics() {
			sample, ok := m.Value.Sample()
			if !ok {
				continue
			}
			e.MetricValue.WithLabelValues(cat.Key(), m.Name).Set(sample)
		}
	}
}

func (e *Exporter) Fail() {
	e.Failures.Inc()
}

func (e *Exporter) Handler() http.Handler {
	return promhttp.HandlerFor(e.registry, promhttp.HandlerOpts{})
}
