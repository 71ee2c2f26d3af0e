package rule

import (
	"context"
	"fmt"
)

// Condition is a single boolean predicate over a Context. Conditions are
// composed inside rules; a composite rule evaluates them with AND semantics
// and short-circuits on the first failure.
type Condition interface {
	// Kind returns the condition kind identifier (e.g. "permission").
	Kind() string

	// Check evaluates the condition against the context.
	Check(ctx context.Context, rctx *Context) ConditionResult
}

// ConditionResult is the outcome of a single condition check. The Reason of
// a failing check identifies the specific detail that failed (e.g. the
// missing permission name) so composite rules can surface it.
type ConditionResult struct {
	Passed   bool
	Reason   string
	Metadata Metadata
}

// PermissionChecker answers hierarchy-aware permission queries. The
// permission package's Resolver implements it; a nil checker degrades to a
// direct set lookup.
type PermissionChecker interface {
	HasPermission(held map[string]bool, required string) bool
}

// PermissionCondition passes when the user holds the required permission,
// directly or through the injected permission hierarchy.
type PermissionCondition struct {
	Required string
	Checker  PermissionChecker
}

// Kind implements Condition.
func (c *PermissionCondition) Kind() string { return "permission" }

// Check implements Condition.
func (c *PermissionCondition) Check(_ context.Context, rctx *Context) ConditionResult {
	held := rctx.Profile.Permissions

	has := held[c.Required]
	if !has && c.Checker != nil {
		has = c.Checker.HasPermission(held, c.Required)
	}

	if !has {
		return ConditionResult{
			Reason:   fmt.Sprintf("missing required permission: %s", c.Required),
			Metadata: Metadata{"required_permission": String(c.Required)},
		}
	}

	return ConditionResult{
		Passed:   true,
		Reason:   fmt.Sprintf("permission %s granted", c.Required),
		Metadata: Metadata{"required_permission": String(c.Required)},
	}
}

// FeatureFlagCondition passes when the context's feature-flag set contains
// the flag.
type FeatureFlagCondition struct {
	Flag string
}

// Kind implements Condition.
func (c *FeatureFlagCondition) Kind() string { return "feature_flag" }

// Check implements Condition.
func (c *FeatureFlagCondition) Check(_ context.Context, rctx *Context) ConditionResult {
	if !rctx.HasFeature(c.Flag) {
		return ConditionResult{
			Reason:   fmt.Sprintf("feature flag %s is not active", c.Flag),
			Metadata: Metadata{"feature_flag": String(c.Flag)},
		}
	}
	return ConditionResult{
		Passed:   true,
		Reason:   fmt.Sprintf("feature flag %s is active", c.Flag),
		Metadata: Metadata{"feature_flag": String(c.Flag)},
	}
}

// DeviceCondition checks device constraints. Nil fields are not enforced.
type DeviceCondition struct {
	RequiresTablet *bool
	MaxMemoryMB    *int
}

// Kind implements Condition.
func (c *DeviceCondition) Kind() string { return "device" }

// Check implements Condition.
func (c *DeviceCondition) Check(_ context.Context, rctx *Context) ConditionResult {
	if c.RequiresTablet != nil && *c.RequiresTablet && !rctx.Device.Tablet {
		return ConditionResult{
			Reason:   "device is not a tablet",
			Metadata: Metadata{"platform": String(rctx.Device.Platform)},
		}
	}
	if c.MaxMemoryMB != nil && rctx.Device.MemoryUsageMB > *c.MaxMemoryMB {
		return ConditionResult{
			Reason: fmt.Sprintf("memory usage %dMB exceeds limit %dMB", rctx.Device.MemoryUsageMB, *c.MaxMemoryMB),
			Metadata: Metadata{
				"memory_usage_mb": Int(rctx.Device.MemoryUsageMB),
				"memory_limit_mb": Int(*c.MaxMemoryMB),
			},
		}
	}
	return ConditionResult{Passed: true, Reason: "device constraints satisfied"}
}

// AppStateCondition checks application-level state requirements.
type AppStateCondition struct {
	RequiresNetwork        bool
	RequiresAuthentication bool
}

// Kind implements Condition.
func (c *AppStateCondition) Kind() string { return "app_state" }

// Check implements Condition.
func (c *AppStateCondition) Check(_ context.Context, rctx *Context) ConditionResult {
	if c.RequiresNetwork && !rctx.Device.NetworkAvailable {
		return ConditionResult{Reason: "network connection required"}
	}
	if c.RequiresAuthentication && !rctx.Profile.Authenticated {
		return ConditionResult{Reason: "authentication required"}
	}
	return ConditionResult{Passed: true, Reason: "app state requirements satisfied"}
}
