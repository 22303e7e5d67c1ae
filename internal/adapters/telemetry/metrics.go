package telemetry

import (
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.trai.ch/dotbuild/internal/core/domain"
	"go.trai.ch/zerr"
)

// Target outcome label values.
const (
	StatusSucceeded = "succeeded"
	StatusFailed    = "failed"
)

// Metrics holds the Prometheus collectors of a run.
type Metrics struct {
	registry *prometheus.Registry
	duration *prometheus.HistogramVec
	total    *prometheus.CounterVec
}

// NewMetrics creates the collectors on a private registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "dotbuild_target_duration_seconds",
			Help:    "Duration of build targets in seconds.",
			Buckets: prometheus.ExponentialBuckets(0.1, 4, 8),
		}, []string{"target"}),
		total: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dotbuild_targets_total",
			Help: "Number of executed build targets by outcome.",
		}, []string{"status"}),
	}
	m.registry.MustRegister(m.duration, m.total)
	return m
}

// Registry exposes the registry the collectors are registered on.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Observe records one finished target.
func (m *Metrics) Observe(target string, d time.Duration, err error) {
	m.duration.WithLabelValues(target).Observe(d.Seconds())
	status := StatusSucceeded
	if err != nil {
		status = StatusFailed
	}
	m.total.WithLabelValues(status).Inc()
}

// WriteToTextfile writes the metrics in the Prometheus text format, for the node
// exporter textfile collector.
func (m *Metrics) WriteToTextfile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create metrics directory"), "path", path)
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write metrics"), "path", path)
	}
	return nil
}
