package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	authzDecisions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fitapp",
		Subsystem: "authz",
		Name:      "decisions_total",
		Help:      "Access gate decisions by resource kind, operation and outcome.",
	}, []string{"resource", "operation", "decision"})
	workoutPersistGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "fitapp",
		Subsystem: "persistence",
		Name:      "last_workout_persisted_timestamp_seconds",
		Help:      "Unix timestamp of the most recent workout write.",
	})
)

func init() {
	prometheus.MustRegister(authzDecisions, workoutPersistGauge)
}

// RecordAuthzDecision counts one access gate decision.
func RecordAuthzDecision(resource, operation, decision string) {
	authzDecisions.WithLabelValues(resource, operation, decision).Inc()
}

// RecordWorkoutPersisted updates the persistence watermark gauge.
func RecordWorkoutPersisted(ts time.Time) {
	if ts.IsZero() {
		return
	}
	workoutPersistGauge.Set(float64(ts.Unix()))
}
