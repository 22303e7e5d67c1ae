package telemetry

import "github.com/prometheus/client_golang/prometheus"

// TargetsCounter exposes the outcome counter for testing.
func (m *Metrics) TargetsCounter(status string) prometheus.Counter {
	return m.total.WithLabelValues(status)
}
