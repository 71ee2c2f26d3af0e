// Copyright (c) 2025 Roshni Games. All Rights Reserved.

package engine

import (
	"fmt"
	"strings"
	"time"

	"github.com/roshni-games/rule-engine/pkg/rule"
)

// RegistryConfig is the serializable form of a registry's contents.
type RegistryConfig struct {
	Version    string        `json:"version" yaml:"version"`
	ExportedAt time.Time     `json:"exportedAt" yaml:"exportedAt"`
	Rules      []rule.Config `json:"rules" yaml:"rules"`
}

// ExportVersion is stamped on every exported payload.
const ExportVersion = "1"

// ExportRules serializes the registry's configuration, including the current
// enabled state of every rule, in registration order.
func (e *Engine) ExportRules() RegistryConfig {
	all := e.registry.GetAll()
	out := RegistryConfig{
		Version:    ExportVersion,
		ExportedAt: time.Now().UTC(),
		Rules:      make([]rule.Config, 0, len(all)),
	}
	for _, r := range all {
		cfg := r.Config()
		if enabled, err := e.registry.IsEnabled(r.ID()); err == nil {
			cfg.Enabled = enabled
		}
		out.Rules = append(out.Rules, cfg)
	}
	return out
}

// ImportRules replaces the registry's contents with the payload. The payload
// is validated against a staging registry first; if anything fails, the live
// registry is left untouched. A successful import is applied as one swap.
func (e *Engine) ImportRules(payload RegistryConfig, deps *rule.Dependencies) error {
	staging := rule.NewRegistry()

	var failures []string
	for _, cfg := range payload.Rules {
		r, err := rule.Create(cfg, deps)
		if err != nil {
			failures = append(failures, fmt.Sprintf("%s: %v", cfg.ID, err))
			continue
		}
		if err := staging.Register(r); err != nil {
			failures = append(failures, err.Error())
		}
	}
	if len(failures) > 0 {
		return fmt.Errorf("%w: %s", ErrValidationFailed, strings.Join(failures, "; "))
	}

	e.registry.ReplaceAll(staging)
	e.log.WithField("rules", len(payload.Rules)).Info("rule registry imported")
	return nil
}
