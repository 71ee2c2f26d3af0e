// Package navigation gates screen transitions with navigation-category
// rules.
package navigation

import (
	"context"

	"github.com/roshni-games/rule-engine/pkg/engine"
	"github.com/roshni-games/rule-engine/pkg/rule"
)

// CategoryNavigation is the rule category the guard evaluates.
const CategoryNavigation = "navigation"

// Decision is the outcome of a navigation check. When navigation is denied,
// Reason carries the blocking rule's human-readable explanation.
type Decision struct {
	Allowed     bool
	Destination string
	Reason      string
	BlockedBy   string
}

// Guard answers whether the user may navigate to a destination.
type Guard struct {
	engine *engine.Engine
}

// NewGuard creates a guard over an engine.
func NewGuard(eng *engine.Engine) *Guard {
	return &Guard{engine: eng}
}

// CanNavigateTo evaluates every enabled navigation rule against the context
// with the target destination attached. The first blocking rule denies the
// transition; skipped rules do not.
func (g *Guard) CanNavigateTo(ctx context.Context, destination string, rctx *rule.Context) (Decision, error) {
	target := rctx.WithMetadata("destination", rule.String(destination))

	outcomes, err := g.engine.EvaluateRulesByCategory(ctx, CategoryNavigation, target)
	if err != nil {
		return Decision{}, err
	}

	for _, outcome := range outcomes {
		if outcome.Result.Blocked {
			return Decision{
				Destination: destination,
				Reason:      outcome.Result.Reason,
				BlockedBy:   outcome.RuleID,
			}, nil
		}
	}
	return Decision{Allowed: true, Destination: destination}, nil
}

// FallbackDestinations returns the candidates the user may still navigate
// to, in the given order, for building an alternative-route suggestion when
// the preferred destination is blocked.
func (g *Guard) FallbackDestinations(ctx context.Context, candidates []string, rctx *rule.Context) ([]string, error) {
	allowed := make([]string, 0, len(candidates))
	for _, candidate := range candidates {
		decision, err := g.CanNavigateTo(ctx, candidate, rctx)
		if err != nil {
			return nil, err
		}
		if decision.Allowed {
			allowed = append(allowed, candidate)
		}
	}
	return allowed, nil
}
