// Package metrics defines the engine's Prometheus collectors. They are
// registered onto a caller-owned registry by the metrics server.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// RuleEvaluationsTotal counts rule evaluations by rule and outcome
	// (passed, blocked, skipped).
	RuleEvaluationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rule_engine_evaluations_total",
			Help: "Total number of rule evaluations",
		},
		[]string{"rule_id", "outcome"},
	)

	// EvaluationDuration observes per-rule evaluation latency by category.
	EvaluationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "rule_engine_evaluation_duration_seconds",
			Help:    "Rule evaluation latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"category"},
	)

	// ActionExecutionsTotal counts action executions by action and status.
	ActionExecutionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rule_engine_action_executions_total",
			Help: "Total number of action executions",
		},
		[]string{"action_id", "status"},
	)

	// ContinuousTicksTotal counts continuous-evaluation loop ticks.
	ContinuousTicksTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "rule_engine_continuous_ticks_total",
			Help: "Total number of continuous evaluation ticks",
		},
	)
)

// Register registers all engine collectors with the given registerer.
func Register(reg prometheus.Registerer) {
	reg.MustRegister(
		RuleEvaluationsTotal,
		EvaluationDuration,
		ActionExecutionsTotal,
		ContinuousTicksTotal,
	)
}
