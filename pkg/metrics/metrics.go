// Package metrics exposes prometheus instrumentation for the ingestion
// pipeline.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics bundles the pipeline's prometheus collectors.
type Metrics struct {
	IngestsTotal   *prometheus.CounterVec
	RowsParsed     prometheus.Counter
	RowsDropped    prometheus.Counter
	IngestDuration prometheus.Histogram
}

// New registers the collectors on the given registerer.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		IngestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "brenkeeper_ingests_total",
			Help: "Statement ingestions by detected format and outcome.",
		}, []string{"format", "outcome"}),
		RowsParsed: factory.NewCounter(prometheus.CounterOpts{
			Name: "brenkeeper_rows_parsed_total",
			Help: "Input rows that produced a canonical transaction.",
		}),
		RowsDropped: factory.NewCounter(prometheus.CounterOpts{
			Name: "brenkeeper_rows_dropped_total",
			Help: "Input rows dropped for unresolvable date, description, or amount.",
		}),
		IngestDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "brenkeeper_ingest_duration_seconds",
			Help:    "End-to-end duration of one statement ingestion.",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

// Default registers on the global prometheus registry.
func Default() *Metrics {
	return New(prometheus.DefaultRegisterer)
}

// Handler serves the default registry for scraping.
func Handler() http.Handler {
	return promhttp.Handler()
}
