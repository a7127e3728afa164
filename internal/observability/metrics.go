package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the service's prometheus collectors on a private registry so
// tests can create independent instances.
type Metrics struct {
	registry *prometheus.Registry

	AnalysesTotal    *prometheus.CounterVec
	RowsProcessed    prometheus.Counter
	RowsDropped      prometheus.Counter
	AnalysisDuration prometheus.Histogram
}

func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		AnalysesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "site_analysis",
			Name:      "analyses_total",
			Help:      "Completed analysis requests by outcome.",
		}, []string{"outcome"}),
		RowsProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "site_analysis",
			Name:      "rows_processed_total",
			Help:      "Rows that survived validation and were analyzed.",
		}),
		RowsDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "site_analysis",
			Name:      "rows_dropped_total",
			Help:      "Rows dropped during CSV validation.",
		}),
		AnalysisDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "site_analysis",
			Name:      "analysis_duration_seconds",
			Help:      "End to end analysis duration.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12),
		}),
	}

	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.AnalysesTotal,
		m.RowsProcessed,
		m.RowsDropped,
		m.AnalysisDuration,
	)

	return m
}

// Handler exposes the registry for the /metrics route.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
