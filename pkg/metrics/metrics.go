package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	global *Metrics
	once   sync.Once
)

// Metrics holds the Prometheus collectors shared by the recognition pipeline.
//
//   - nlu_recognitions_total{outcome} - recognized, rejected, no_text, unavailable
//   - nlu_context_persistence_total{outcome} - not_required, saved, failed, skipped
//   - nlu_context_load_fallbacks_total - loads that degraded to an empty context
//   - nlu_routing_actions_total{action} - aborted, began_dialog, sent_answer, default_route
//   - nlu_engine_duration_seconds{engine} - engine latency
//   - nlu_engine_breaker_state{engine} - 0 closed, 1 half-open, 2 open
type Metrics struct {
	RecognitionsTotal    *prometheus.CounterVec
	PersistenceTotal     *prometheus.CounterVec
	ContextLoadFallbacks prometheus.Counter
	RoutingActionsTotal  *prometheus.CounterVec
	EngineDuration       *prometheus.HistogramVec
	EngineBreakerState   *prometheus.GaugeVec
}

// Get returns the process-wide collectors, registering them on first use.
func Get() *Metrics {
	once.Do(func() {
		global = &Metrics{
			RecognitionsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "nlu_recognitions_total",
					Help: "Total number of recognized turns by outcome",
				},
				[]string{"outcome"},
			),
			PersistenceTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "nlu_context_persistence_total",
					Help: "Total number of conversation context persistence outcomes",
				},
				[]string{"outcome"},
			),
			ContextLoadFallbacks: promauto.NewCounter(
				prometheus.CounterOpts{
					Name: "nlu_context_load_fallbacks_total",
					Help: "Total number of context loads that fell back to an empty context",
				},
			),
			RoutingActionsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "nlu_routing_actions_total",
					Help: "Total number of routing decisions by action",
				},
				[]string{"action"},
			),
			EngineDuration: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "nlu_engine_duration_seconds",
					Help:    "Recognition engine latency in seconds",
					Buckets: prometheus.DefBuckets,
				},
				[]string{"engine"},
			),
			EngineBreakerState: promauto.NewGaugeVec(
				prometheus.GaugeOpts{
					Name: "nlu_engine_breaker_state",
					Help: "Circuit breaker state per engine (0 closed, 1 half-open, 2 open)",
				},
				[]string{"engine"},
			),
		}
	})
	return global
}
