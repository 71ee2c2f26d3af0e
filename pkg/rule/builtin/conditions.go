// Package builtin provides the concrete rule variants and registers them
// with the rule factory: gameplay rules composed of conditions, permission
// rules, feature gates, content restrictions and parental controls.
package builtin

import (
	"fmt"

	"github.com/roshni-games/rule-engine/pkg/gate"
	"github.com/roshni-games/rule-engine/pkg/rule"
)

// parseConditions builds conditions from a rule's "conditions" parameter, a
// list of maps each carrying a "kind" plus kind-specific fields.
func parseConditions(cfg rule.Config, deps *rule.Dependencies) ([]rule.Condition, error) {
	defs := cfg.GetMapSlice("conditions")
	conditions := make([]rule.Condition, 0, len(defs))

	for i, def := range defs {
		kind := mapString(def, "kind", "")
		switch kind {
		case "permission":
			required := mapString(def, "required", "")
			if required == "" {
				return nil, fmt.Errorf("condition %d: permission condition needs a required permission", i)
			}
			cond := &rule.PermissionCondition{Required: required}
			if deps != nil {
				cond.Checker = deps.Permissions
			}
			conditions = append(conditions, cond)

		case "feature_flag":
			flag := mapString(def, "flag", "")
			if flag == "" {
				return nil, fmt.Errorf("condition %d: feature flag condition needs a flag", i)
			}
			conditions = append(conditions, &rule.FeatureFlagCondition{Flag: flag})

		case "device":
			cond := &rule.DeviceCondition{}
			if v, ok := def["requires_tablet"]; ok {
				if b, ok := v.(bool); ok {
					cond.RequiresTablet = &b
				}
			}
			if v, ok := mapInt(def, "max_memory_mb"); ok {
				cond.MaxMemoryMB = &v
			}
			conditions = append(conditions, cond)

		case "app_state":
			conditions = append(conditions, &rule.AppStateCondition{
				RequiresNetwork:        mapBool(def, "requires_network", false),
				RequiresAuthentication: mapBool(def, "requires_authentication", false),
			})

		default:
			return nil, fmt.Errorf("condition %d: unknown condition kind %q", i, kind)
		}
	}

	return conditions, nil
}

// parseGates builds feature gates from a rule's "gates" parameter.
func parseGates(cfg rule.Config, deps *rule.Dependencies) ([]gate.FeatureGate, error) {
	defs := cfg.GetMapSlice("gates")
	gates := make([]gate.FeatureGate, 0, len(defs))

	for i, def := range defs {
		kind := mapString(def, "kind", "simple")
		flag := mapString(def, "flag", "")
		if flag == "" {
			return nil, fmt.Errorf("gate %d: missing flag", i)
		}

		switch kind {
		case "simple":
			gates = append(gates, gate.NewSimple(flag))

		case "percentage":
			percentage, ok := mapFloat(def, "percentage")
			if !ok {
				return nil, fmt.Errorf("gate %d: percentage gate needs a percentage", i)
			}
			g, err := gate.NewPercentage(flag, percentage, mapString(def, "salt", ""))
			if err != nil {
				return nil, fmt.Errorf("gate %d: %w", i, err)
			}
			gates = append(gates, g)

		case "segment":
			segments := mapStringSlice(def, "segments")
			var resolver gate.SegmentResolver
			if deps != nil && deps.Segments != nil {
				resolver = gate.SegmentResolver(deps.Segments)
			}
			gates = append(gates, gate.NewUserSegment(flag, segments, resolver))

		default:
			return nil, fmt.Errorf("gate %d: unknown gate kind %q", i, kind)
		}
	}

	return gates, nil
}

func mapString(m map[string]interface{}, key, fallback string) string {
	if v, ok := m[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return fallback
}

func mapBool(m map[string]interface{}, key string, fallback bool) bool {
	if v, ok := m[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return fallback
}

func mapInt(m map[string]interface{}, key string) (int, bool) {
	if v, ok := m[key]; ok {
		switch n := v.(type) {
		case int:
			return n, true
		case int64:
			return int(n), true
		case float64:
			return int(n), true
		}
	}
	return 0, false
}

func mapFloat(m map[string]interface{}, key string) (float64, bool) {
	if v, ok := m[key]; ok {
		switch n := v.(type) {
		case float64:
			return n, true
		case int:
			return float64(n), true
		case int64:
			return float64(n), true
		}
	}
	return 0, false
}

func mapStringSlice(m map[string]interface{}, key string) []string {
	v, ok := m[key]
	if !ok {
		return nil
	}
	if strs, ok := v.([]string); ok {
		return strs
	}
	raw, ok := v.([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
