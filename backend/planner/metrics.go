package planner

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for generationsTotal.
const (
	sourceRemote   = "remote"
	sourceFallback = "fallback"

	reasonOK           = "ok"
	reasonRemoteFailed = "remote_failed"
	reasonUnparseable  = "unparseable"
	reasonSchema       = "schema_mismatch"
)

var (
	generationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "travelplanner_generations_total",
			Help: "Plan generations by source and reason",
		},
		[]string{"source", "reason"},
	)

	generationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "travelplanner_generation_duration_seconds",
			Help:    "Duration of plan generations including fallback",
			Buckets: []float64{0.1, 0.5, 1, 5, 10, 30, 60, 90},
		},
		[]string{"source"},
	)
)
