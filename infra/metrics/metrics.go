package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	Lookups        *prometheus.CounterVec
	LookupDuration prometheus.Histogram
	Exports        prometheus.Counter
	Upstream       *prometheus.CounterVec
}

func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		Lookups: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cotacao",
			Name:      "wizard_lookups_total",
			Help:      "Plate lookups issued by the quotation wizard, by outcome.",
		}, []string{"outcome"}),
		LookupDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "cotacao",
			Name:      "wizard_lookup_duration_seconds",
			Help:      "Time spent waiting for the plate lookup service.",
			Buckets:   prometheus.DefBuckets,
		}),
		Exports: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "cotacao",
			Name:      "proposal_exports_total",
			Help:      "Proposal PDFs generated.",
		}),
		Upstream: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cotacao",
			Name:      "placa_fipe_requests_total",
			Help:      "Requests answered by /api/consultar-placa, by outcome.",
		}, []string{"outcome"}),
	}
}

func (m *Metrics) ObserveLookup(outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.Lookups.WithLabelValues(outcome).Inc()
	m.LookupDuration.Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveExport() {
	if m == nil {
		return
	}
	m.Exports.Inc()
}

func (m *Metrics) ObserveUpstream(outcome string) {
	if m == nil {
		return
	}
	m.Upstream.WithLabelValues(outcome).Inc()
}
