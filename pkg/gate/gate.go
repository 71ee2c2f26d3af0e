package gate

import (
	"errors"
	"fmt"

	"github.com/roshni-games/rule-engine/pkg/rule"
)

// ErrInvalidPercentage is returned when a rollout percentage is outside [0, 100].
var ErrInvalidPercentage = errors.New("rollout percentage must be between 0 and 100")

// Result is the outcome of a gate evaluation. Metadata carries diagnostic
// fields such as the resolved rollout bucket or segment.
type Result struct {
	Passed   bool
	Metadata rule.Metadata
}

// FeatureGate decides whether a named feature is on for a context.
type FeatureGate interface {
	// Flag returns the feature flag the gate controls.
	Flag() string

	// Evaluate resolves the gate against the context.
	Evaluate(rctx *rule.Context) Result
}

// SegmentResolver resolves the user segment for a context.
type SegmentResolver func(rctx *rule.Context) string

// SimpleFeatureGate passes iff the context's active feature-flag set
// contains the flag.
type SimpleFeatureGate struct {
	flag string
}

// NewSimple creates a simple on/off gate for a flag.
func NewSimple(flag string) *SimpleFeatureGate {
	return &SimpleFeatureGate{flag: flag}
}

// Flag implements FeatureGate.
func (g *SimpleFeatureGate) Flag() string { return g.flag }

// Evaluate implements FeatureGate.
func (g *SimpleFeatureGate) Evaluate(rctx *rule.Context) Result {
	return Result{
		Passed: rctx.HasFeature(g.flag),
		Metadata: rule.Metadata{
			"flag": rule.String(g.flag),
		},
	}
}

// UserSegmentFeatureGate passes iff the resolved segment for the context is
// in the allowed set.
type UserSegmentFeatureGate struct {
	flag     string
	allowed  map[string]bool
	resolver SegmentResolver
}

// NewUserSegment creates a segment-targeted gate. The resolver is caller
// supplied; a nil resolver means the gate never passes.
func NewUserSegment(flag string, allowedSegments []string, resolver SegmentResolver) *UserSegmentFeatureGate {
	allowed := make(map[string]bool, len(allowedSegments))
	for _, segment := range allowedSegments {
		allowed[segment] = true
	}
	return &UserSegmentFeatureGate{flag: flag, allowed: allowed, resolver: resolver}
}

// Flag implements FeatureGate.
func (g *UserSegmentFeatureGate) Flag() string { return g.flag }

// Evaluate implements FeatureGate.
func (g *UserSegmentFeatureGate) Evaluate(rctx *rule.Context) Result {
	if g.resolver == nil {
		return Result{Metadata: rule.Metadata{
			"flag":  rule.String(g.flag),
			"error": rule.String("no segment resolver configured"),
		}}
	}
	segment := g.resolver(rctx)
	return Result{
		Passed: g.allowed[segment],
		Metadata: rule.Metadata{
			"flag":             rule.String(g.flag),
			"resolved_segment": rule.String(segment),
		},
	}
}

// validatePercentage rejects values outside [0, 100].
func validatePercentage(percentage float64) error {
	if percentage < 0 || percentage > 100 {
		return fmt.Errorf("%w: got %v", ErrInvalidPercentage, percentage)
	}
	return nil
}
