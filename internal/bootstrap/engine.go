// Copyright (c) 2025 Roshni Games. All Rights Reserved.

package bootstrap

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/roshni-games/rule-engine/pkg/action"
	actionBuiltin "github.com/roshni-games/rule-engine/pkg/action/builtin"
	"github.com/roshni-games/rule-engine/pkg/engine"
	"github.com/roshni-games/rule-engine/pkg/permission"
	"github.com/roshni-games/rule-engine/pkg/rule"
	ruleBuiltin "github.com/roshni-games/rule-engine/pkg/rule/builtin"
)

// InitEngine builds a fully wired engine from a rule set: the permission
// hierarchy, the action registry and executor, and the rule registry. All
// registered rules are validated before the engine is returned.
func InitEngine(ruleSet *RuleSet) (*engine.Engine, *rule.Dependencies, error) {
	ruleBuiltin.RegisterBuiltinRules()
	actionBuiltin.RegisterBuiltinActions()

	if len(ruleSet.PermissionDefinitions) > 0 {
		catalog, err := permission.NewCatalog(ruleSet.PermissionDefinitions)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid permission definitions: %w", err)
		}
		if err := catalog.ValidateHierarchy(ruleSet.Permissions); err != nil {
			return nil, nil, fmt.Errorf("invalid permission hierarchy: %w", err)
		}
	}

	hierarchy, err := permission.NewHierarchy(ruleSet.Permissions)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build permission hierarchy: %w", err)
	}
	deps := rule.NewDependencies().WithPermissionChecker(permission.NewResolver(hierarchy))

	actionRegistry := action.NewRegistry()
	actions, errs := action.CreateAll(ruleSet.Actions)
	if len(errs) > 0 {
		return nil, nil, fmt.Errorf("failed to create actions: %v", errs)
	}
	for _, a := range actions {
		if err := actionRegistry.Register(a); err != nil {
			return nil, nil, fmt.Errorf("failed to register action: %w", err)
		}
	}
	logrus.Infof("registered %d actions", actionRegistry.Count())

	registry := rule.NewRegistry()
	rules, errs := rule.CreateAll(ruleSet.Rules, deps)
	if len(errs) > 0 {
		return nil, nil, fmt.Errorf("failed to create rules: %v", errs)
	}
	for _, r := range rules {
		if err := registry.Register(r); err != nil {
			return nil, nil, fmt.Errorf("failed to register rule: %w", err)
		}
	}
	logrus.Infof("registered %d rules", registry.Count())

	eng := engine.New(registry, engine.WithActionExecutor(action.NewExecutor(actionRegistry)))

	validation := eng.ValidateAllRules()
	if !validation.Valid {
		return nil, nil, fmt.Errorf("rule validation failed: %+v", validation.Rules)
	}
	for _, rv := range validation.Rules {
		for _, warning := range rv.Warnings {
			logrus.Warnf("rule %s: %s", rv.RuleID, warning)
		}
	}

	logrus.Infof("initialized rule engine")
	return eng, deps, nil
}
