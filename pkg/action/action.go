package action

import (
	"context"

	"github.com/roshni-games/rule-engine/pkg/rule"
)

// Action performs an operation in response to a passing rule outcome.
// Actions are registered in a Registry and run by the Executor.
type Action interface {
	// ID returns the unique action identifier.
	ID() string

	// Name returns the human-readable action name.
	Name() string

	// Execute performs the action for a rule that passed. It receives the
	// rule's result and the context the rule was evaluated against.
	Execute(ctx context.Context, ruleID string, res rule.Result, rctx *rule.Context) error

	// Config returns the action's configuration.
	Config() Config
}

// Result records the outcome of one action execution.
type Result struct {
	ActionID string
	RuleID   string
	Success  bool
	Err      error
	Attempts int
}

// NewResult creates a successful action result.
func NewResult(actionID, ruleID string, attempts int) *Result {
	return &Result{ActionID: actionID, RuleID: ruleID, Success: true, Attempts: attempts}
}

// NewError creates a failed action result.
func NewError(actionID, ruleID string, err error, attempts int) *Result {
	return &Result{ActionID: actionID, RuleID: ruleID, Err: err, Attempts: attempts}
}
