package builtin

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/roshni-games/rule-engine/pkg/rule"
)

// PermissionRuleType is the factory type string for permission rules.
const PermissionRuleType = "permission"

// PermissionRule blocks unless the user holds a required permission,
// directly, through the permission hierarchy, or via one of the configured
// alternatives.
type PermissionRule struct {
	config       rule.Config
	required     string
	alternatives []string
	denial       string
	checker      rule.PermissionChecker
}

// NewPermissionRule creates a permission rule from configuration.
// Parameters: "required" (mandatory), "alternatives", "denial_message".
func NewPermissionRule(config rule.Config, deps *rule.Dependencies) (*PermissionRule, error) {
	r := &PermissionRule{
		config:       config,
		required:     config.GetString("required", ""),
		alternatives: config.GetStringSlice("alternatives", nil),
		denial:       config.GetString("denial_message", ""),
	}
	if deps != nil {
		r.checker = deps.Permissions
	}
	return r, nil
}

// ID implements Rule.
func (r *PermissionRule) ID() string { return r.config.ID }

// Name implements Rule.
func (r *PermissionRule) Name() string { return r.config.Name }

// Category implements Rule.
func (r *PermissionRule) Category() string { return r.config.Category }

// Config implements Rule.
func (r *PermissionRule) Config() rule.Config { return r.config }

// Metadata implements Rule.
func (r *PermissionRule) Metadata() rule.Metadata {
	return rule.Metadata{
		"type":                rule.String(PermissionRuleType),
		"required_permission": rule.String(r.required),
	}
}

// Validate implements Rule.
func (r *PermissionRule) Validate() error {
	if err := r.config.Validate(); err != nil {
		return err
	}
	if r.required == "" {
		return fmt.Errorf("rule %s has no required permission", r.config.ID)
	}
	return nil
}

func (r *PermissionRule) has(rctx *rule.Context, name string) bool {
	if rctx.Profile.Permissions[name] {
		return true
	}
	if r.checker != nil {
		return r.checker.HasPermission(rctx.Profile.Permissions, name)
	}
	return false
}

// Evaluate implements Rule.
func (r *PermissionRule) Evaluate(_ context.Context, rctx *rule.Context) rule.Result {
	if r.has(rctx, r.required) {
		return rule.Pass(fmt.Sprintf("permission %s granted", r.required)).
			WithMetadata("granted_permission", rule.String(r.required))
	}

	for _, alt := range r.alternatives {
		if r.has(rctx, alt) {
			logrus.Debugf("rule %s satisfied via alternative permission %s", r.config.ID, alt)
			return rule.Pass(fmt.Sprintf("alternative permission %s granted", alt)).
				WithMetadata("granted_permission", rule.String(alt)).
				WithMetadata("alternative", rule.Bool(true))
		}
	}

	reason := r.denial
	if reason == "" {
		reason = fmt.Sprintf("missing required permission: %s", r.required)
	}
	return rule.Block(reason).
		WithRequiredPermissions(r.required).
		WithMetadata("required_permission", rule.String(r.required))
}
