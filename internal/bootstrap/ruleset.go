// Copyright (c) 2025 Roshni Games. All Rights Reserved.

package bootstrap

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/roshni-games/rule-engine/pkg/action"
	"github.com/roshni-games/rule-engine/pkg/permission"
	"github.com/roshni-games/rule-engine/pkg/rule"
)

// RuleSet is the complete YAML configuration of an engine: rules, actions,
// permission definitions, and the permission hierarchy.
type RuleSet struct {
	Rules                 []rule.Config           `yaml:"rules"`
	Actions               []action.Config         `yaml:"actions"`
	PermissionDefinitions []permission.Permission `yaml:"permission_definitions,omitempty"`
	Permissions           map[string][]string     `yaml:"permissions,omitempty"`
}

// LoadRuleSet loads a rule set from a YAML file. Supports environment
// variable expansion in the form ${VAR_NAME} or ${VAR_NAME:default}.
func LoadRuleSet(path string) (*RuleSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rule set file %s: %w", path, err)
	}

	expanded := expandEnvVars(string(data))

	var ruleSet RuleSet
	if err := yaml.Unmarshal([]byte(expanded), &ruleSet); err != nil {
		return nil, fmt.Errorf("failed to parse YAML rule set: %w", err)
	}

	if err := ruleSet.Validate(); err != nil {
		return nil, fmt.Errorf("invalid rule set: %w", err)
	}

	return &ruleSet, nil
}

// Validate validates the rule set for common errors.
func (s *RuleSet) Validate() error {
	ruleIDs := make(map[string]bool)
	for _, cfg := range s.Rules {
		if cfg.ID == "" {
			return fmt.Errorf("rule with empty ID found")
		}
		if ruleIDs[cfg.ID] {
			return fmt.Errorf("duplicate rule ID: %s", cfg.ID)
		}
		ruleIDs[cfg.ID] = true

		if cfg.Type == "" {
			return fmt.Errorf("rule %s has empty type", cfg.ID)
		}
	}

	actionIDs := make(map[string]bool)
	for _, cfg := range s.Actions {
		if cfg.ID == "" {
			return fmt.Errorf("action with empty ID found")
		}
		if actionIDs[cfg.ID] {
			return fmt.Errorf("duplicate action ID: %s", cfg.ID)
		}
		actionIDs[cfg.ID] = true

		if cfg.Type == "" {
			return fmt.Errorf("action %s has empty type", cfg.ID)
		}
	}

	for _, cfg := range s.Rules {
		for _, actionID := range cfg.Actions {
			if !actionIDs[actionID] {
				return fmt.Errorf("rule %s references unknown action: %s", cfg.ID, actionID)
			}
		}
	}

	return nil
}

// expandEnvVars expands environment variables in the format ${VAR} or ${VAR:default}.
func expandEnvVars(s string) string {
	return os.Expand(s, func(key string) string {
		parts := strings.SplitN(key, ":", 2)
		varName := parts[0]
		defaultValue := ""
		if len(parts) == 2 {
			defaultValue = parts[1]
		}

		value := os.Getenv(varName)
		if value == "" {
			return defaultValue
		}
		return value
	})
}
