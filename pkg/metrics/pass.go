package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PassMetrics records outcomes of reconciliation passes.
type PassMetrics struct {
	duration       *prometheus.HistogramVec
	updatesEmitted *prometheus.CounterVec
	unmatched      *prometheus.CounterVec
	staleSkips     prometheus.Counter
	precisionRisk  prometheus.Counter
}

// NewPassMetrics registers the pass metrics on the provided registerer.
func NewPassMetrics(reg prometheus.Registerer) *PassMetrics {
	if reg == nil {
		return &PassMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "pass_duration_seconds",
		Help:    "Duration of reconciliation passes in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"outcome"})
	updatesEmitted := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "updates_emitted_total",
		Help: "Updates emitted, by kind.",
	}, []string{"kind"})
	unmatched := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "charges_unmatched_total",
		Help: "Charges that found no transaction, by reason.",
	}, []string{"reason"})
	staleSkips := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "stale_skips_total",
		Help: "Changed updates withheld because retagging is disabled.",
	})
	precisionRisk := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "precision_risk_orders_total",
		Help: "Orders whose items do not sum to the recorded total within tolerance.",
	})
	reg.MustRegister(duration, updatesEmitted, unmatched, staleSkips, precisionRisk)
	return &PassMetrics{
		duration:       duration,
		updatesEmitted: updatesEmitted,
		unmatched:      unmatched,
		staleSkips:     staleSkips,
		precisionRisk:  precisionRisk,
	}
}

// ObserveDuration records how long a pass took.
func (p *PassMetrics) ObserveDuration(outcome string, duration time.Duration) {
	if p == nil || p.duration == nil {
		return
	}
	p.duration.WithLabelValues(normalizeLabel(outcome)).Observe(duration.Seconds())
}

// IncUpdateEmitted counts one emitted update of the given kind.
func (p *PassMetrics) IncUpdateEmitted(kind string) {
	if p == nil || p.updatesEmitted == nil {
		return
	}
	p.updatesEmitted.WithLabelValues(normalizeLabel(kind)).Inc()
}

// IncUnmatched counts one unmatched charge by reason.
func (p *PassMetrics) IncUnmatched(reason string) {
	if p == nil || p.unmatched == nil {
		return
	}
	p.unmatched.WithLabelValues(normalizeLabel(reason)).Inc()
}

// IncStaleSkip counts one stale skip.
func (p *PassMetrics) IncStaleSkip() {
	if p == nil || p.staleSkips == nil {
		return
	}
	p.staleSkips.Inc()
}

// IncPrecisionRisk counts one precision-risk order.
func (p *PassMetrics) IncPrecisionRisk() {
	if p == nil || p.precisionRisk == nil {
		return
	}
	p.precisionRisk.Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
