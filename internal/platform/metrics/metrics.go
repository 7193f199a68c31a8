package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the service's Prometheus collectors. It satisfies the import,
// position and dictionary observers.
type Metrics struct {
	gatherer prometheus.Gatherer

	importRuns        *prometheus.CounterVec
	importRows        prometheus.Counter
	importDuration    prometheus.Histogram
	positionsAdded    prometheus.Counter
	dictionaryLookups *prometheus.CounterVec
}

// New registers the collectors on reg. Passing nil uses a private registry.
func New(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	factory := promauto.With(reg)

	return &Metrics{
		gatherer: reg,
		importRuns: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "person_import_runs_total",
			Help: "Total finished CSV import runs by outcome.",
		}, []string{"outcome"}),
		importRows: factory.NewCounter(prometheus.CounterOpts{
			Name: "person_import_rows_total",
			Help: "Total rows stored by CSV imports.",
		}),
		importDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "person_import_duration_seconds",
			Help:    "Duration of CSV import runs.",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 14),
		}),
		positionsAdded: factory.NewCounter(prometheus.CounterOpts{
			Name: "person_positions_added_total",
			Help: "Total employee positions added.",
		}),
		dictionaryLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "person_dictionary_lookups_total",
			Help: "Total dictionary-service calls by method and outcome.",
		}, []string{"method", "outcome"}),
	}
}

func (m *Metrics) RowImported() {
	m.importRows.Inc()
}

func (m *Metrics) RunFinished(outcome string, elapsed time.Duration) {
	m.importRuns.WithLabelValues(outcome).Inc()
	m.importDuration.Observe(elapsed.Seconds())
}

func (m *Metrics) PositionAdded() {
	m.positionsAdded.Inc()
}

func (m *Metrics) Lookup(method, outcome string) {
	m.dictionaryLookups.WithLabelValues(method, outcome).Inc()
}

// Handler exposes the registered collectors in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
