package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus metrics for document lifecycle operations.
type Metrics struct {
	DocumentsCreated  prometheus.Counter
	VersionsBumped    prometheus.Counter
	SignaturesApplied *prometheus.CounterVec
}

// NewMetrics creates and registers the document metrics.
func NewMetrics() *Metrics {
	return &Metrics{
		DocumentsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "veridoc_documents_created_total",
			Help: "Total number of documents created",
		}),
		VersionsBumped: promauto.NewCounter(prometheus.CounterOpts{
			Name: "veridoc_document_versions_total",
			Help: "Total number of document version bumps",
		}),
		SignaturesApplied: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "veridoc_signatures_applied_total",
			Help: "Total number of electronic signatures applied, by meaning",
		}, []string{"meaning"}),
	}
}
