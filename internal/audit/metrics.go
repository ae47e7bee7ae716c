package audit

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus metrics for the audit trail.
type Metrics struct {
	recorded       *prometheus.CounterVec
	recordFailures prometheus.Counter
}

// NewMetrics creates and registers the audit metrics.
func NewMetrics() *Metrics {
	return &Metrics{
		recorded: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "veridoc_audit_events_recorded_total",
			Help: "Total number of audit events recorded, by entity kind",
		}, []string{"entity"}),
		recordFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "veridoc_audit_record_failures_total",
			Help: "Total number of failed audit store writes",
		}),
	}
}

func (m *Metrics) IncRecorded(entity string) {
	m.recorded.WithLabelValues(entity).Inc()
}

func (m *Metrics) IncRecordFailures() {
	m.recordFailures.Inc()
}
