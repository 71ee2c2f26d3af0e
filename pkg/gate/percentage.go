package gate

import (
	"github.com/roshni-games/rule-engine/pkg/rule"
)

// PercentageFeatureGate includes a deterministic fraction of the user
// population.
//
// Algorithm:
//  1. Hash(userID + flag + salt) -> bucket (0-99)
//  2. If bucket < percentage, the user is included
//
// Special cases:
//   - percentage 0: never passes
//   - percentage 100: always passes
//   - empty userID: never passes at partial rollout (no user context means
//     no stable bucket to assign)
type PercentageFeatureGate struct {
	flag       string
	percentage float64
	salt       string
}

// NewPercentage creates a percentage-rollout gate. The percentage must be in
// [0, 100]; the salt decorrelates bucketing across deployments.
func NewPercentage(flag string, percentage float64, salt string) (*PercentageFeatureGate, error) {
	if err := validatePercentage(percentage); err != nil {
		return nil, err
	}
	return &PercentageFeatureGate{flag: flag, percentage: percentage, salt: salt}, nil
}

// Flag implements FeatureGate.
func (g *PercentageFeatureGate) Flag() string { return g.flag }

// Percentage returns the configured rollout percentage.
func (g *PercentageFeatureGate) Percentage() float64 { return g.percentage }

// Evaluate implements FeatureGate.
func (g *PercentageFeatureGate) Evaluate(rctx *rule.Context) Result {
	metadata := rule.Metadata{
		"flag":       rule.String(g.flag),
		"percentage": rule.Number(g.percentage),
	}

	if g.percentage <= 0 {
		return Result{Metadata: metadata}
	}
	if g.percentage >= 100 {
		metadata["full_rollout"] = rule.Bool(true)
		return Result{Passed: true, Metadata: metadata}
	}

	userID := ""
	if rctx != nil {
		userID = rctx.UserID
	}
	bucket := Bucket(userID, g.flag, g.salt)
	if bucket < 0 {
		metadata["error"] = rule.String("no user context")
		return Result{Metadata: metadata}
	}

	metadata["bucket"] = rule.Int(bucket)
	return Result{
		Passed:   float64(bucket) < g.percentage,
		Metadata: metadata,
	}
}
