package builtin

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/roshni-games/rule-engine/pkg/rule"
)

const (
	// GameplayRuleType is the factory type string for gameplay rules.
	GameplayRuleType = "gameplay"

	// gameplayPassReason is the fixed success message for a gameplay rule
	// whose conditions all passed.
	gameplayPassReason = "all conditions passed"

	// DefaultEvaluationInterval is the default per-rule evaluation interval
	// hint for continuously evaluated gameplay rules.
	DefaultEvaluationInterval = 5 * time.Second
)

// GameplayRule is a composite rule: an ordered list of conditions combined
// with AND semantics. Evaluation short-circuits on the first failing
// condition and the result's reason carries that condition's own failure
// reason, so callers see the identifying detail (e.g. the missing
// permission name).
type GameplayRule struct {
	config     rule.Config
	conditions []rule.Condition

	continuous   bool
	evalInterval time.Duration
}

// NewGameplayRule creates a gameplay rule from configuration. Conditions
// come from the "conditions" parameter; "continuous_evaluation" and
// "evaluation_interval_ms" mark the rule for background re-evaluation.
func NewGameplayRule(config rule.Config, deps *rule.Dependencies) (*GameplayRule, error) {
	conditions, err := parseConditions(config, deps)
	if err != nil {
		return nil, fmt.Errorf("rule %s: %w", config.ID, err)
	}

	interval := DefaultEvaluationInterval
	if ms := config.GetInt("evaluation_interval_ms", 0); ms > 0 {
		interval = time.Duration(ms) * time.Millisecond
	}

	logrus.Debugf("creating gameplay rule %s with %d conditions", config.ID, len(conditions))

	return &GameplayRule{
		config:       config,
		conditions:   conditions,
		continuous:   config.GetBool("continuous_evaluation", false),
		evalInterval: interval,
	}, nil
}

// WithConditions replaces the rule's conditions, for programmatic
// construction. Returns the rule for chaining.
func (r *GameplayRule) WithConditions(conditions ...rule.Condition) *GameplayRule {
	r.conditions = conditions
	return r
}

// ID implements Rule.
func (r *GameplayRule) ID() string { return r.config.ID }

// Name implements Rule.
func (r *GameplayRule) Name() string { return r.config.Name }

// Category implements Rule.
func (r *GameplayRule) Category() string { return r.config.Category }

// Config implements Rule.
func (r *GameplayRule) Config() rule.Config { return r.config }

// Conditions returns the rule's ordered condition list.
func (r *GameplayRule) Conditions() []rule.Condition { return r.conditions }

// ContinuousEvaluation reports whether the rule is marked for background
// re-evaluation, and at which interval hint.
func (r *GameplayRule) ContinuousEvaluation() (bool, time.Duration) {
	return r.continuous, r.evalInterval
}

// Metadata implements Rule.
func (r *GameplayRule) Metadata() rule.Metadata {
	return rule.Metadata{
		"type":            rule.String(GameplayRuleType),
		"condition_count": rule.Int(len(r.conditions)),
		"continuous":      rule.Bool(r.continuous),
	}
}

// Validate implements Rule.
func (r *GameplayRule) Validate() error {
	if err := r.config.Validate(); err != nil {
		return err
	}
	if r.evalInterval <= 0 {
		return fmt.Errorf("rule %s has non-positive evaluation interval", r.config.ID)
	}
	return nil
}

// Evaluate implements Rule. Conditions are checked in order; the first
// failure blocks the rule with that condition's reason.
func (r *GameplayRule) Evaluate(ctx context.Context, rctx *rule.Context) rule.Result {
	for _, cond := range r.conditions {
		res := cond.Check(ctx, rctx)
		if !res.Passed {
			logrus.Debugf("rule %s blocked by %s condition: %s", r.config.ID, cond.Kind(), res.Reason)
			blocked := rule.Block(res.Reason).
				WithMetadata("failed_condition", rule.String(cond.Kind()))
			for k, v := range res.Metadata {
				blocked = blocked.WithMetadata(k, v)
			}
			if perm, ok := res.Metadata["required_permission"].AsString(); ok {
				blocked = blocked.WithRequiredPermissions(perm)
			}
			return blocked
		}
	}
	return rule.Pass(gameplayPassReason)
}
