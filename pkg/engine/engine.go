// Copyright (c) 2025 Roshni Games. All Rights Reserved.

// Package engine orchestrates rule evaluation: lookup, dispatch, latency
// measurement, statistics, action execution, and the continuous background
// evaluation loop.
package engine

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/roshni-games/rule-engine/pkg/action"
	"github.com/roshni-games/rule-engine/pkg/common"
	"github.com/roshni-games/rule-engine/pkg/metrics"
	"github.com/roshni-games/rule-engine/pkg/rule"
	"github.com/roshni-games/rule-engine/pkg/stats"
)

// Outcome pairs a rule's evaluation result with its identity and latency.
type Outcome struct {
	RuleID   string
	RuleName string
	Category string
	Result   rule.Result
	Duration time.Duration
}

// Engine evaluates rules from a registry and feeds outcomes to the
// statistics tracker. A single engine owns at most one continuous
// evaluation loop.
type Engine struct {
	registry *rule.Registry
	stats    *stats.Tracker
	executor *action.Executor
	log      *log.Entry

	closed atomic.Bool

	running atomic.Bool
	loopMu  sync.Mutex
	stopCh  chan struct{}
	loopWG  sync.WaitGroup

	subMu   sync.Mutex
	subs    map[int]chan Batch
	nextSub int
}

// Option configures an engine.
type Option func(*Engine)

// WithActionExecutor sets the executor used for post-pass actions.
func WithActionExecutor(executor *action.Executor) Option {
	return func(e *Engine) { e.executor = executor }
}

// WithStatsTracker sets the statistics tracker. Defaults to a fresh tracker.
func WithStatsTracker(tracker *stats.Tracker) Option {
	return func(e *Engine) { e.stats = tracker }
}

// WithLogger sets the engine logger.
func WithLogger(logger *log.Entry) Option {
	return func(e *Engine) { e.log = logger }
}

// New creates an engine over a registry.
func New(registry *rule.Registry, opts ...Option) *Engine {
	e := &Engine{
		registry: registry,
		stats:    stats.NewTracker(),
		log:      log.WithField("component", "engine"),
		subs:     make(map[int]chan Batch),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Registry returns the engine's rule registry.
func (e *Engine) Registry() *rule.Registry { return e.registry }

// Stats returns the engine's statistics tracker.
func (e *Engine) Stats() *stats.Tracker { return e.stats }

// EvaluateRule evaluates a single rule by ID. The rule is evaluated even if
// disabled; batch variants are the ones that honor the enabled bit. A panic
// inside the rule is converted into a blocking result, never propagated.
func (e *Engine) EvaluateRule(ctx context.Context, ruleID string, rctx *rule.Context) (rule.Result, error) {
	if e.closed.Load() {
		return rule.Result{}, ErrEngineClosed
	}

	r := e.registry.Get(ruleID)
	if r == nil {
		return rule.Result{}, fmt.Errorf("%w: %s", ErrRuleNotFound, ruleID)
	}

	scope := common.NewScope(ctx, "engine.evaluateRule")
	defer scope.Finish()
	scope.AddBaggage("rule_id", ruleID)

	outcome := e.evaluate(scope, r, rctx)
	return outcome.Result, nil
}

// EvaluateRules evaluates the given rule IDs in order. An unknown ID fails
// the whole call before any evaluation happens; disabled rules are omitted
// from the batch without being evaluated.
func (e *Engine) EvaluateRules(ctx context.Context, ruleIDs []string, rctx *rule.Context) ([]Outcome, error) {
	if e.closed.Load() {
		return nil, ErrEngineClosed
	}

	rules := make([]rule.Rule, 0, len(ruleIDs))
	for _, id := range ruleIDs {
		r := e.registry.Get(id)
		if r == nil {
			return nil, fmt.Errorf("%w: %s", ErrRuleNotFound, id)
		}
		if enabled, _ := e.registry.IsEnabled(id); !enabled {
			continue
		}
		rules = append(rules, r)
	}
	return e.evaluateBatch(ctx, rules, rctx), nil
}

// EvaluateAllRules evaluates every enabled rule in registration order.
func (e *Engine) EvaluateAllRules(ctx context.Context, rctx *rule.Context) ([]Outcome, error) {
	if e.closed.Load() {
		return nil, ErrEngineClosed
	}
	return e.evaluateBatch(ctx, e.registry.Enabled(), rctx), nil
}

// EvaluateRulesByCategory evaluates every enabled rule in a category, in
// registration order.
func (e *Engine) EvaluateRulesByCategory(ctx context.Context, category string, rctx *rule.Context) ([]Outcome, error) {
	if e.closed.Load() {
		return nil, ErrEngineClosed
	}
	return e.evaluateBatch(ctx, e.registry.GetByCategory(category), rctx), nil
}

func (e *Engine) evaluateBatch(ctx context.Context, rules []rule.Rule, rctx *rule.Context) []Outcome {
	scope := common.NewScope(ctx, "engine.evaluateBatch")
	defer scope.Finish()
	scope.SetAttributes("rule_count", len(rules))

	outcomes := make([]Outcome, 0, len(rules))
	for _, r := range rules {
		child := scope.NewChildScope("engine.evaluate")
		child.AddBaggage("rule_id", r.ID())
		outcomes = append(outcomes, e.evaluate(child, r, rctx))
		child.Finish()
	}
	return outcomes
}

func (e *Engine) evaluate(scope *common.Scope, r rule.Rule, rctx *rule.Context) Outcome {
	started := time.Now()
	res := e.evaluateSafely(scope, r, rctx)
	elapsed := time.Since(started)

	e.stats.Record(r.ID(), r.Category(), res, elapsed)
	metrics.RuleEvaluationsTotal.WithLabelValues(r.ID(), outcomeLabel(res)).Inc()
	metrics.EvaluationDuration.WithLabelValues(r.Category()).Observe(elapsed.Seconds())

	if res.Blocked {
		scope.TraceEvent("rule blocked: " + res.Reason)
		e.log.WithFields(log.Fields{
			"ruleId": r.ID(),
			"userId": rctx.UserID,
		}).Debugf("rule blocked: %s", res.Reason)
	}

	return Outcome{
		RuleID:   r.ID(),
		RuleName: r.Name(),
		Category: r.Category(),
		Result:   res,
		Duration: elapsed,
	}
}

// evaluateSafely converts a panicking rule into a blocking result. An
// erroring rule must never grant access.
func (e *Engine) evaluateSafely(scope *common.Scope, r rule.Rule, rctx *rule.Context) (res rule.Result) {
	defer func() {
		if rec := recover(); rec != nil {
			err := fmt.Errorf("evaluation error: %v", rec)
			scope.TraceError(err)
			e.log.WithField("ruleId", r.ID()).Errorf("rule panicked during evaluation: %v", rec)
			res = rule.Block(err.Error())
		}
	}()
	return r.Evaluate(scope.Ctx, rctx)
}

// ExecuteActions runs the declared actions of every passing outcome. All
// actions are attempted even when earlier ones fail; the failures are
// reported together in a single error.
func (e *Engine) ExecuteActions(ctx context.Context, outcomes []Outcome, rctx *rule.Context) error {
	if e.executor == nil {
		return nil
	}

	var failures []string
	for _, outcome := range outcomes {
		if !outcome.Result.Passed {
			continue
		}
		r := e.registry.Get(outcome.RuleID)
		if r == nil {
			continue
		}
		for _, result := range e.executor.ExecuteAll(ctx, r.Config().Actions, outcome.RuleID, outcome.Result, rctx) {
			if !result.Success {
				failures = append(failures, fmt.Sprintf("%s/%s: %v", outcome.RuleID, result.ActionID, result.Err))
			}
		}
	}
	if len(failures) > 0 {
		return fmt.Errorf("%w: %s", ErrActionExecutionFailed, strings.Join(failures, "; "))
	}
	return nil
}

// Shutdown stops the continuous evaluation loop, closes all subscriber
// streams, and rejects further evaluation calls.
func (e *Engine) Shutdown() {
	if !e.closed.CompareAndSwap(false, true) {
		return
	}
	e.StopContinuousEvaluation()

	e.subMu.Lock()
	for id, ch := range e.subs {
		close(ch)
		delete(e.subs, id)
	}
	e.subMu.Unlock()

	e.log.Info("engine shut down")
}

func outcomeLabel(res rule.Result) string {
	switch {
	case res.Skipped:
		return "skipped"
	case res.Passed:
		return "passed"
	default:
		return "blocked"
	}
}
