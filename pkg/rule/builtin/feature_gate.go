package builtin

import (
	"context"
	"fmt"
	"strings"

	"github.com/roshni-games/rule-engine/pkg/gate"
	"github.com/roshni-games/rule-engine/pkg/rule"
)

// FeatureGateRuleType is the factory type string for feature gate rules.
const FeatureGateRuleType = "feature_gate"

// Gating strategies over a feature gate rule's gate list.
const (
	// StrategyAll passes only when every gate passes.
	StrategyAll = "ALL"
	// StrategyAny passes when at least one gate passes. All gates are
	// evaluated so the result metadata reports how many passed.
	StrategyAny = "ANY"
	// StrategyFirstMatch passes on the first passing gate and stops
	// evaluating the rest.
	StrategyFirstMatch = "FIRST_MATCH"
	// StrategyCustom delegates the decision to a gating function
	// registered on the dependencies container under the feature ID.
	StrategyCustom = "CUSTOM"
)

// FeatureGateRule decides whether a named feature is enabled for a context.
// A deterministic percentage rollout is applied first; the configured gates
// are then combined according to the gating strategy.
type FeatureGateRule struct {
	config    rule.Config
	featureID string
	strategy  string
	gates     []gate.FeatureGate
	rollout   *gate.PercentageFeatureGate
	custom    rule.CustomGatingFunc
	hasCustom bool
}

// NewFeatureGateRule creates a feature gate rule from configuration.
// Parameters: "feature_id" (defaults to the rule ID), "strategy",
// "rollout_percentage", "rollout_salt", "gates".
func NewFeatureGateRule(config rule.Config, deps *rule.Dependencies) (*FeatureGateRule, error) {
	r := &FeatureGateRule{
		config:    config,
		featureID: config.GetString("feature_id", config.ID),
		strategy:  strings.ToUpper(config.GetString("strategy", StrategyAll)),
	}

	percentage := config.GetFloat("rollout_percentage", 100)
	rollout, err := gate.NewPercentage(r.featureID, percentage, config.GetString("rollout_salt", ""))
	if err != nil {
		return nil, fmt.Errorf("rule %s: %w", config.ID, err)
	}
	r.rollout = rollout

	gates, err := parseGates(config, deps)
	if err != nil {
		return nil, fmt.Errorf("rule %s: %w", config.ID, err)
	}
	r.gates = gates

	if fn, ok := deps.CustomGating(r.featureID); ok {
		r.custom = fn
		r.hasCustom = true
	}
	return r, nil
}

// ID implements Rule.
func (r *FeatureGateRule) ID() string { return r.config.ID }

// Name implements Rule.
func (r *FeatureGateRule) Name() string { return r.config.Name }

// Category implements Rule.
func (r *FeatureGateRule) Category() string { return r.config.Category }

// Config implements Rule.
func (r *FeatureGateRule) Config() rule.Config { return r.config }

// FeatureID returns the feature this rule gates.
func (r *FeatureGateRule) FeatureID() string { return r.featureID }

// Metadata implements Rule.
func (r *FeatureGateRule) Metadata() rule.Metadata {
	return rule.Metadata{
		"type":               rule.String(FeatureGateRuleType),
		"feature_id":         rule.String(r.featureID),
		"strategy":           rule.String(r.strategy),
		"rollout_percentage": rule.Number(r.rollout.Percentage()),
	}
}

// Validate implements Rule.
func (r *FeatureGateRule) Validate() error {
	if err := r.config.Validate(); err != nil {
		return err
	}
	switch r.strategy {
	case StrategyAll, StrategyAny, StrategyFirstMatch:
	case StrategyCustom:
		if !r.hasCustom {
			return fmt.Errorf("rule %s uses CUSTOM gating but no gating function is registered for feature %s", r.config.ID, r.featureID)
		}
	default:
		return fmt.Errorf("rule %s has unknown gating strategy %q", r.config.ID, r.strategy)
	}
	return nil
}

// Evaluate implements Rule.
func (r *FeatureGateRule) Evaluate(ctx context.Context, rctx *rule.Context) rule.Result {
	rolled := r.rollout.Evaluate(rctx)
	if !rolled.Passed {
		res := rule.Block(fmt.Sprintf("feature %s is not in rollout", r.featureID))
		for k, v := range rolled.Metadata {
			res = res.WithMetadata(k, v)
		}
		return res.WithMetadata("feature_id", rule.String(r.featureID))
	}

	enabled, detail := r.applyStrategy(ctx, rctx)
	if !enabled {
		return rule.Block(fmt.Sprintf("feature %s is disabled: %s", r.featureID, detail)).
			WithMetadata("feature_id", rule.String(r.featureID)).
			WithMetadata("strategy", rule.String(r.strategy))
	}
	return rule.Pass(fmt.Sprintf("feature %s is enabled", r.featureID)).
		WithMetadata("feature_id", rule.String(r.featureID)).
		WithMetadata("strategy", rule.String(r.strategy))
}

// FeatureEnabled reports whether the feature is on for the context. It is a
// convenience wrapper over Evaluate for callers that only need the bit.
func (r *FeatureGateRule) FeatureEnabled(ctx context.Context, rctx *rule.Context) bool {
	return r.Evaluate(ctx, rctx).Passed
}

func (r *FeatureGateRule) applyStrategy(ctx context.Context, rctx *rule.Context) (bool, string) {
	if len(r.gates) == 0 && r.strategy != StrategyCustom {
		return true, ""
	}

	switch r.strategy {
	case StrategyAll:
		for i, g := range r.gates {
			if !g.Evaluate(rctx).Passed {
				return false, fmt.Sprintf("gate %d (%s) did not pass", i, g.Flag())
			}
		}
		return true, ""

	case StrategyAny, StrategyFirstMatch:
		passed := 0
		for _, g := range r.gates {
			if g.Evaluate(rctx).Passed {
				if r.strategy == StrategyFirstMatch {
					return true, ""
				}
				passed++
			}
		}
		if passed > 0 {
			return true, ""
		}
		return false, "no gate passed"

	case StrategyCustom:
		results := make([]rule.ConditionResult, 0, len(r.gates))
		for _, g := range r.gates {
			gr := g.Evaluate(rctx)
			results = append(results, rule.ConditionResult{
				Passed:   gr.Passed,
				Reason:   fmt.Sprintf("gate %s", g.Flag()),
				Metadata: gr.Metadata,
			})
		}
		if r.custom == nil {
			return false, "no custom gating function registered"
		}
		if r.custom(ctx, rctx, results) {
			return true, ""
		}
		return false, "custom gating function declined"

	default:
		return false, fmt.Sprintf("unknown strategy %s", r.strategy)
	}
}
