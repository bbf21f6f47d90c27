// Package observability holds the Prometheus instrumentation for the
// conversation engine.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles the engine's Prometheus collectors.
type Metrics struct {
	TurnsProcessed  prometheus.Counter
	TurnFailures    prometheus.Counter
	InsightsEmitted *prometheus.CounterVec
	StoreRetries    prometheus.Counter
	RenderFallbacks prometheus.Counter
	TurnDuration    prometheus.Histogram
}

// New creates the collectors and registers them with the given
// registerer. Pass nil to skip registration (useful in tests).
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		TurnsProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "canopy_turns_processed_total",
			Help: "Answers fully processed through the turn pipeline.",
		}),
		TurnFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "canopy_turn_failures_total",
			Help: "Turns that failed after exhausting retries.",
		}),
		InsightsEmitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "canopy_insights_emitted_total",
			Help: "Insights generated, by kind.",
		}, []string{"kind"}),
		StoreRetries: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "canopy_store_retries_total",
			Help: "Retried store operations.",
		}),
		RenderFallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "canopy_render_fallbacks_total",
			Help: "Turns where the renderer failed and the verbatim prompt was used.",
		}),
		TurnDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "canopy_turn_duration_seconds",
			Help:    "End-to-end turn processing time.",
			Buckets: prometheus.DefBuckets,
		}),
	}
	if reg != nil {
		reg.MustRegister(
			m.TurnsProcessed,
			m.TurnFailures,
			m.InsightsEmitted,
			m.StoreRetries,
			m.RenderFallbacks,
			m.TurnDuration,
		)
	}
	return m
}
