package builtin

import (
	"context"

	"github.com/roshni-games/rule-engine/pkg/action"
	"github.com/roshni-games/rule-engine/pkg/metrics"
	"github.com/roshni-games/rule-engine/pkg/rule"
)

// RecordMetricActionType is the factory type string for the metric action.
const RecordMetricActionType = "record_metric"

// RecordMetricAction increments the action-execution counter for each
// passing rule outcome, labeled with this action's ID.
type RecordMetricAction struct {
	config action.Config
}

// NewRecordMetricAction creates a metric-recording action.
func NewRecordMetricAction(config action.Config) *RecordMetricAction {
	return &RecordMetricAction{config: config}
}

// ID implements Action.
func (a *RecordMetricAction) ID() string { return a.config.ID }

// Name implements Action.
func (a *RecordMetricAction) Name() string { return "Record Metric" }

// Config implements Action.
func (a *RecordMetricAction) Config() action.Config { return a.config }

// Execute implements Action.
func (a *RecordMetricAction) Execute(_ context.Context, _ string, _ rule.Result, _ *rule.Context) error {
	metrics.ActionExecutionsTotal.WithLabelValues(a.config.ID, "recorded").Inc()
	return nil
}
