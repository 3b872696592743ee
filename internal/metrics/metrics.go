// Package metrics exposes the orchestrator counters to prometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/dracma/presale/internal/domain"
)

const (
	namespace = "dracma"
	subsystem = "presale"
)

type Metrics struct {
	transitions *prometheus.CounterVec
	errors      *prometheus.CounterVec
	quotes      prometheus.Counter
	indexed     prometheus.Counter
}

// New registers the counters on reg
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "tx_transitions_total",
			Help:      "Counts flow step changes",
		}, []string{"operation", "step"}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "tx_errors_total",
			Help:      "Counts flows that ended in the error step",
		}, []string{"operation", "class"}),
		quotes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "quotes_total",
			Help:      "Counts purchase projections served",
		}),
		indexed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "indexed_purchases_total",
			Help:      "Counts TokensPurchased logs stored by the indexer",
		}),
	}
	reg.MustRegister(m.transitions, m.errors, m.quotes, m.indexed)
	return m
}

// ObserveTransition is subscribed to the event bus
func (m *Metrics) ObserveTransition(t domain.Transition) {
	m.transitions.WithLabelValues(string(t.Operation), string(t.To)).Inc()
	if t.To == domain.StepError {
		m.errors.WithLabelValues(string(t.Operation), string(t.State.ErrorClass)).Inc()
	}
}

func (m *Metrics) IncQuote() {
	m.quotes.Inc()
}

func (m *Metrics) AddIndexed(n int) {
	m.indexed.Add(float64(n))
}
