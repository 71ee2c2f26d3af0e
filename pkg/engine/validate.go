// Copyright (c) 2025 Roshni Games. All Rights Reserved.

package engine

import "fmt"

// RuleValidation holds the validation findings for one rule.
type RuleValidation struct {
	RuleID   string   `json:"ruleId"`
	Errors   []string `json:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

// ValidationResult aggregates validation findings across the registry. The
// top-level Errors and Warnings repeat every per-rule finding prefixed with
// its rule ID, so callers can report all findings without walking Rules.
type ValidationResult struct {
	Valid    bool             `json:"valid"`
	Errors   []string         `json:"errors,omitempty"`
	Warnings []string         `json:"warnings,omitempty"`
	Rules    []RuleValidation `json:"rules"`
}

// ValidateAllRules runs every registered rule's own validation and collects
// errors and warnings per rule. An empty description is a warning, not an
// error.
func (e *Engine) ValidateAllRules() ValidationResult {
	result := ValidationResult{Valid: true}

	for _, r := range e.registry.GetAll() {
		rv := RuleValidation{RuleID: r.ID()}

		if err := r.Validate(); err != nil {
			rv.Errors = append(rv.Errors, err.Error())
		}
		if r.Config().Description == "" {
			rv.Warnings = append(rv.Warnings, "rule has no description")
		}

		for _, msg := range rv.Errors {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %s", rv.RuleID, msg))
		}
		for _, msg := range rv.Warnings {
			result.Warnings = append(result.Warnings, fmt.Sprintf("%s: %s", rv.RuleID, msg))
		}

		if len(rv.Errors) > 0 {
			result.Valid = false
		}
		result.Rules = append(result.Rules, rv)
	}
	return result
}
