// Package metrics exposes the Prometheus collectors of the assessment service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// turnsTotal counts accepted turns by the stage they were processed in
	turnsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "paibot_turns_total",
		Help: "Accepted assessment turns by stage",
	}, []string{"stage"})

	// turnErrors counts rejected turns by kind
	turnErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "paibot_turn_errors_total",
		Help: "Rejected assessment turns by error kind",
	}, []string{"kind"})

	// inferenceDuration tracks inference latency
	inferenceDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "paibot_inference_duration_seconds",
		Help:    "Inference call duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.25, 2, 8), // 250ms to ~32s
	})

	completedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "paibot_assessments_completed_total",
		Help: "Assessments that reached the complete stage",
	})

	recommendationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "paibot_recommendations_total",
		Help: "Recommendation result sets computed, by locale",
	}, []string{"locale"})
)

// Error kinds.
const (
	KindMalformed = "malformed"
	KindInference = "inference"
	KindComplete  = "complete"
	KindInternal  = "internal"
)

// Turn records an accepted turn.
func Turn(stage string, took time.Duration) {
	turnsTotal.WithLabelValues(stage).Inc()
	inferenceDuration.Observe(took.Seconds())
}

// TurnError records a rejected turn.
func TurnError(kind string, took time.Duration) {
	turnErrors.WithLabelValues(kind).Inc()
	if took > 0 {
		inferenceDuration.Observe(took.Seconds())
	}
}

// Completed records an assessment reaching the complete stage.
func Completed() { completedTotal.Inc() }

// Recommended records a computed recommendation set.
func Recommended(locale string) { recommendationsTotal.WithLabelValues(locale).Inc() }
