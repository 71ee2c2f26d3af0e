// Package builtin provides the built-in action types and registers them
// with the action factory.
package builtin

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/roshni-games/rule-engine/pkg/action"
	"github.com/roshni-games/rule-engine/pkg/rule"
)

// LogActionType is the factory type string for the log action.
const LogActionType = "log"

// LogAction writes a structured log line for each passing rule outcome.
// Useful as the default action on gating rules whose decision is consumed
// elsewhere (navigation, business validation).
type LogAction struct {
	config action.Config
	level  logrus.Level
}

// NewLogAction creates a log action. The "level" parameter selects the log
// level (default info).
func NewLogAction(config action.Config) (*LogAction, error) {
	level, err := logrus.ParseLevel(config.GetParameterString("level", "info"))
	if err != nil {
		return nil, err
	}
	return &LogAction{config: config, level: level}, nil
}

// ID implements Action.
func (a *LogAction) ID() string { return a.config.ID }

// Name implements Action.
func (a *LogAction) Name() string { return "Log Outcome" }

// Config implements Action.
func (a *LogAction) Config() action.Config { return a.config }

// Execute implements Action.
func (a *LogAction) Execute(_ context.Context, ruleID string, res rule.Result, rctx *rule.Context) error {
	logrus.StandardLogger().WithFields(logrus.Fields{
		"rule_id": ruleID,
		"user_id": rctx.UserID,
		"reason":  res.Reason,
	}).Log(a.level, "rule passed")
	return nil
}
