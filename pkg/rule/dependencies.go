package rule

import "context"

// SegmentFunc resolves the user segment for a context (e.g. "beta_testers").
type SegmentFunc func(rctx *Context) string

// CustomGatingFunc decides a CUSTOM-strategy feature gate from the already
// evaluated gate results.
type CustomGatingFunc func(ctx context.Context, rctx *Context, results []ConditionResult) bool

// Dependencies holds the external collaborators rules may consult during
// evaluation. All I/O a rule needs lives behind these; Evaluate itself stays
// a pure function of context plus configuration.
//
// Fields can be nil; rules degrade gracefully (a nil PermissionChecker means
// direct set lookups only).
type Dependencies struct {
	Permissions  PermissionChecker
	Segments     SegmentFunc
	customGating map[string]CustomGatingFunc
}

// NewDependencies creates an empty dependencies container.
func NewDependencies() *Dependencies {
	return &Dependencies{}
}

// WithPermissionChecker sets the hierarchy-aware permission checker.
func (d *Dependencies) WithPermissionChecker(checker PermissionChecker) *Dependencies {
	d.Permissions = checker
	return d
}

// WithSegmentResolver sets the user segment resolver.
func (d *Dependencies) WithSegmentResolver(fn SegmentFunc) *Dependencies {
	d.Segments = fn
	return d
}

// WithCustomGating registers the gating function used by a CUSTOM-strategy
// feature gate for the given feature ID.
func (d *Dependencies) WithCustomGating(featureID string, fn CustomGatingFunc) *Dependencies {
	if d.customGating == nil {
		d.customGating = make(map[string]CustomGatingFunc)
	}
	d.customGating[featureID] = fn
	return d
}

// CustomGating returns the gating function registered for a feature ID.
func (d *Dependencies) CustomGating(featureID string) (CustomGatingFunc, bool) {
	if d == nil || d.customGating == nil {
		return nil, false
	}
	fn, ok := d.customGating[featureID]
	return fn, ok
}
