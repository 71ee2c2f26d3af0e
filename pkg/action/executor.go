package action

import (
	"context"
	"fmt"

	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"

	"github.com/roshni-games/rule-engine/pkg/rule"
)

// Executor runs actions in response to passing rule outcomes.
type Executor struct {
	registry *Registry
}

// NewExecutor creates a new action executor.
func NewExecutor(registry *Registry) *Executor {
	return &Executor{registry: registry}
}

// Execute runs a single action, honoring its retry configuration.
func (e *Executor) Execute(ctx context.Context, actionID, ruleID string, res rule.Result, rctx *rule.Context) (*Result, error) {
	act := e.registry.Get(actionID)
	if act == nil {
		return nil, fmt.Errorf("%w: %s", ErrActionNotFound, actionID)
	}
	if !act.Config().Enabled {
		return nil, fmt.Errorf("%w: %s", ErrActionDisabled, actionID)
	}

	logrus.Debugf("executing action %s for rule %s (user: %s)", actionID, ruleID, rctx.UserID)

	attempts := 0
	run := func() error {
		attempts++
		return act.Execute(ctx, ruleID, res, rctx)
	}

	var err error
	if retry := act.Config().Retry; retry != nil && retry.MaxAttempts > 1 {
		b := backoff.NewExponentialBackOff()
		if retry.Delay > 0 {
			b.InitialInterval = retry.Delay
		}
		policy := backoff.WithContext(backoff.WithMaxRetries(b, uint64(retry.MaxAttempts-1)), ctx)
		err = backoff.Retry(run, policy)
		if err != nil {
			err = fmt.Errorf("%w: %s: %v", ErrMaxRetriesExceeded, actionID, err)
		}
	} else {
		err = run()
	}

	if err != nil {
		logrus.Errorf("action %s failed after %d attempt(s): %v", actionID, attempts, err)
		return NewError(actionID, ruleID, err, attempts), err
	}

	logrus.Debugf("action %s completed", actionID)
	return NewResult(actionID, ruleID, attempts), nil
}

// ExecuteAll runs every listed action for a rule outcome. A failing action
// does not stop the batch: remaining actions are still attempted and the
// per-action results report what happened. The engine turns any failures
// into one batch-level error after all outcomes have been processed.
func (e *Executor) ExecuteAll(ctx context.Context, actionIDs []string, ruleID string, res rule.Result, rctx *rule.Context) []*Result {
	results := make([]*Result, 0, len(actionIDs))
	for _, actionID := range actionIDs {
		result, err := e.Execute(ctx, actionID, ruleID, res, rctx)
		if result == nil {
			result = NewError(actionID, ruleID, err, 0)
		}
		results = append(results, result)
	}
	return results
}

// GetRegistry returns the action registry used by this executor.
func (e *Executor) GetRegistry() *Registry {
	return e.registry
}
