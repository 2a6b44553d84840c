// Package metrics registers the Prometheus collectors the engine updates
// after every solve. The engine never starts an HTTP listener itself —
// an embedding process registers Registry() with its own /metrics handler.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Collectors groups the engine's Prometheus instruments.
type Collectors struct {
	SolvesTotal    *prometheus.CounterVec
	SolveDuration  prometheus.Histogram
	ObjectiveValue prometheus.Gauge
}

var (
	registry   = prometheus.NewRegistry()
	collectors = newCollectors()
)

func newCollectors() *Collectors {
	c := &Collectors{
		SolvesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "engine_solves_total",
			Help: "Total number of engine Solve calls, by terminal status.",
		}, []string{"status"}),
		SolveDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "engine_solve_duration_seconds",
			Help:    "Wall-clock duration of engine Solve calls.",
			Buckets: prometheus.DefBuckets,
		}),
		ObjectiveValue: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "engine_objective_value",
			Help: "Objective value of the most recent successful solve.",
		}),
	}
	registry.MustRegister(c.SolvesTotal, c.SolveDuration, c.ObjectiveValue)
	return c
}

// Registry returns the Prometheus registry the engine's collectors live
// in, for an embedding process to expose via its own HTTP handler.
func Registry() *prometheus.Registry {
	return registry
}

// RecordSolve updates the collectors after one engine run.
func RecordSolve(status string, duration time.Duration, objectiveValue float64, feasible bool) {
	collectors.SolvesTotal.WithLabelValues(status).Inc()
	collectors.SolveDuration.Observe(duration.Seconds())
	if feasible {
		collectors.ObjectiveValue.Set(objectiveValue)
	}
}
