package builtin

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/roshni-games/rule-engine/pkg/rule"
)

func gameplayConfig(id string, params map[string]interface{}) rule.Config {
	return rule.Config{
		ID:         id,
		Name:       "Test " + id,
		Type:       GameplayRuleType,
		Category:   "navigation",
		Enabled:    true,
		Version:    1,
		Parameters: params,
	}
}

func TestGameplayRule_Evaluate(t *testing.T) {
	config := gameplayConfig("premium-zone", map[string]interface{}{
		"conditions": []interface{}{
			map[string]interface{}{"kind": "permission", "required": "basic_access"},
			map[string]interface{}{"kind": "app_state", "requires_network": true},
		},
	})

	r, err := NewGameplayRule(config, rule.NewDependencies())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	rctx := rule.NewContext("user-1")
	rctx.Profile.Permissions = rule.PermissionSet("basic_access")
	rctx.Device.NetworkAvailable = true

	res := r.Evaluate(context.Background(), rctx)
	if !res.Passed {
		t.Errorf("Expected pass, got blocked: %s", res.Reason)
	}
}

func TestGameplayRule_ShortCircuitReason(t *testing.T) {
	config := gameplayConfig("premium-zone", map[string]interface{}{
		"conditions": []interface{}{
			map[string]interface{}{"kind": "permission", "required": "basic_access"},
			map[string]interface{}{"kind": "app_state", "requires_network": true},
		},
	})

	r, err := NewGameplayRule(config, rule.NewDependencies())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	// No permissions: the first condition fails and its reason carries the
	// missing permission name.
	rctx := rule.NewContext("user-1")
	res := r.Evaluate(context.Background(), rctx)

	if !res.Blocked {
		t.Fatal("Expected blocked result")
	}
	if !strings.Contains(res.Reason, "basic_access") {
		t.Errorf("Expected reason to contain the missing permission, got %q", res.Reason)
	}
	if got := res.Metadata.GetString("failed_condition", ""); got != "permission" {
		t.Errorf("Expected failed_condition=permission, got %q", got)
	}
	if len(res.RequiredPermissions) != 1 || res.RequiredPermissions[0] != "basic_access" {
		t.Errorf("Expected required permissions [basic_access], got %v", res.RequiredPermissions)
	}
}

func TestGameplayRule_ContinuousSettings(t *testing.T) {
	config := gameplayConfig("bg-check", map[string]interface{}{
		"continuous_evaluation":  true,
		"evaluation_interval_ms": 1500,
	})

	r, err := NewGameplayRule(config, rule.NewDependencies())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	continuous, interval := r.ContinuousEvaluation()
	if !continuous {
		t.Error("Expected continuous evaluation to be on")
	}
	if interval != 1500*time.Millisecond {
		t.Errorf("Expected 1.5s interval, got %v", interval)
	}
}

func TestPermissionRule_Evaluate(t *testing.T) {
	config := rule.Config{
		ID:      "needs-basic",
		Name:    "Needs Basic Access",
		Type:    PermissionRuleType,
		Enabled: true,
		Version: 1,
		Parameters: map[string]interface{}{
			"required": "basic_access",
		},
	}

	r, err := NewPermissionRule(config, rule.NewDependencies())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	// Permission held: passes.
	rctx := rule.NewContext("user-1")
	rctx.Profile.Permissions = rule.PermissionSet("basic_access")
	if res := r.Evaluate(context.Background(), rctx); !res.Passed {
		t.Errorf("Expected pass, got: %s", res.Reason)
	}

	// Permission missing: blocks and the reason names the permission.
	rctx = rule.NewContext("user-1")
	res := r.Evaluate(context.Background(), rctx)
	if !res.Blocked {
		t.Fatal("Expected blocked result")
	}
	if !strings.Contains(res.Reason, "basic_access") {
		t.Errorf("Expected reason to contain permission name, got %q", res.Reason)
	}
}

func TestPermissionRule_Alternatives(t *testing.T) {
	config := rule.Config{
		ID:      "admin-or-system",
		Name:    "Admin Or System",
		Type:    PermissionRuleType,
		Enabled: true,
		Version: 1,
		Parameters: map[string]interface{}{
			"required":     "ADMINISTRATION",
			"alternatives": []interface{}{"SYSTEM"},
		},
	}

	r, err := NewPermissionRule(config, rule.NewDependencies())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	rctx := rule.NewContext("user-1")
	rctx.Profile.Permissions = rule.PermissionSet("SYSTEM")
	if res := r.Evaluate(context.Background(), rctx); !res.Passed {
		t.Errorf("Expected alternative permission to pass, got: %s", res.Reason)
	}
}

func TestPermissionRule_CustomDenialMessage(t *testing.T) {
	config := rule.Config{
		ID:      "locked",
		Name:    "Locked Area",
		Type:    PermissionRuleType,
		Enabled: true,
		Version: 1,
		Parameters: map[string]interface{}{
			"required":       "ADMINISTRATION",
			"denial_message": "this area is staff only",
		},
	}

	r, err := NewPermissionRule(config, rule.NewDependencies())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	res := r.Evaluate(context.Background(), rule.NewContext("user-1"))
	if res.Reason != "this area is staff only" {
		t.Errorf("Expected custom denial message, got %q", res.Reason)
	}
}

func TestFeatureGateRule_SimpleGate(t *testing.T) {
	config := rule.Config{
		ID:      "new-ui",
		Name:    "New UI",
		Type:    FeatureGateRuleType,
		Enabled: true,
		Version: 1,
		Parameters: map[string]interface{}{
			"feature_id": "new_ui",
			"gates": []interface{}{
				map[string]interface{}{"kind": "simple", "flag": "new_ui"},
			},
		},
	}

	r, err := NewFeatureGateRule(config, rule.NewDependencies())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	// No flags active: the feature is off.
	rctx := rule.NewContext("user-1")
	if r.FeatureEnabled(context.Background(), rctx) {
		t.Error("Expected feature to be disabled with no active flags")
	}

	rctx.FeatureFlags = map[string]bool{"new_ui": true}
	if !r.FeatureEnabled(context.Background(), rctx) {
		t.Error("Expected feature to be enabled with flag active")
	}
}

func TestFeatureGateRule_Strategies(t *testing.T) {
	gates := []interface{}{
		map[string]interface{}{"kind": "simple", "flag": "flag_a"},
		map[string]interface{}{"kind": "simple", "flag": "flag_b"},
	}

	tests := []struct {
		name     string
		strategy string
		flags    map[string]bool
		expect   bool
	}{
		{"ALL with both", "ALL", map[string]bool{"flag_a": true, "flag_b": true}, true},
		{"ALL with one", "ALL", map[string]bool{"flag_a": true}, false},
		{"ANY with one", "ANY", map[string]bool{"flag_b": true}, true},
		{"ANY with none", "ANY", map[string]bool{}, false},
		{"FIRST_MATCH with first", "FIRST_MATCH", map[string]bool{"flag_a": true}, true},
		{"FIRST_MATCH with none", "FIRST_MATCH", map[string]bool{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := rule.Config{
				ID:      "gated",
				Name:    "Gated Feature",
				Type:    FeatureGateRuleType,
				Enabled: true,
				Version: 1,
				Parameters: map[string]interface{}{
					"feature_id": "gated",
					"strategy":   tt.strategy,
					"gates":      gates,
				},
			}

			r, err := NewFeatureGateRule(config, rule.NewDependencies())
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}

			rctx := rule.NewContext("user-1")
			rctx.FeatureFlags = tt.flags
			if got := r.FeatureEnabled(context.Background(), rctx); got != tt.expect {
				t.Errorf("Expected enabled=%v, got %v", tt.expect, got)
			}
		})
	}
}

func TestFeatureGateRule_CustomStrategy(t *testing.T) {
	deps := rule.NewDependencies().WithCustomGating("vip_zone", func(_ context.Context, rctx *rule.Context, _ []rule.ConditionResult) bool {
		return rctx.Profile.Premium
	})

	config := rule.Config{
		ID:      "vip-zone",
		Name:    "VIP Zone",
		Type:    FeatureGateRuleType,
		Enabled: true,
		Version: 1,
		Parameters: map[string]interface{}{
			"feature_id": "vip_zone",
			"strategy":   "CUSTOM",
		},
	}

	r, err := NewFeatureGateRule(config, deps)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if err := r.Validate(); err != nil {
		t.Fatalf("Unexpected validation error: %v", err)
	}

	rctx := rule.NewContext("user-1")
	if r.FeatureEnabled(context.Background(), rctx) {
		t.Error("Expected custom gating to decline non-premium user")
	}
	rctx.Profile.Premium = true
	if !r.FeatureEnabled(context.Background(), rctx) {
		t.Error("Expected custom gating to accept premium user")
	}
}

func TestFeatureGateRule_Validate(t *testing.T) {
	// CUSTOM strategy without a registered function is invalid.
	config := rule.Config{
		ID:      "broken",
		Name:    "Broken Gate",
		Type:    FeatureGateRuleType,
		Enabled: true,
		Version: 1,
		Parameters: map[string]interface{}{
			"strategy": "CUSTOM",
		},
	}
	r, err := NewFeatureGateRule(config, rule.NewDependencies())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if err := r.Validate(); err == nil {
		t.Error("Expected validation error for CUSTOM without function")
	}

	// Rollout percentage outside [0,100] is rejected at construction.
	config.Parameters = map[string]interface{}{"rollout_percentage": 150}
	if _, err := NewFeatureGateRule(config, rule.NewDependencies()); err == nil {
		t.Error("Expected error for rollout percentage over 100")
	}
}

func TestFeatureGateRule_Rollout(t *testing.T) {
	config := rule.Config{
		ID:      "rollout",
		Name:    "Rollout",
		Type:    FeatureGateRuleType,
		Enabled: true,
		Version: 1,
		Parameters: map[string]interface{}{
			"feature_id":         "rollout",
			"rollout_percentage": 0,
		},
	}

	r, err := NewFeatureGateRule(config, rule.NewDependencies())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	res := r.Evaluate(context.Background(), rule.NewContext("user-1"))
	if !res.Blocked {
		t.Error("Expected 0% rollout to block every user")
	}
	if !strings.Contains(res.Reason, "rollout") {
		t.Errorf("Expected rollout reason, got %q", res.Reason)
	}
}

func TestContentRestrictionRule_Evaluate(t *testing.T) {
	config := rule.Config{
		ID:      "mature-pack",
		Name:    "Mature Pack",
		Type:    ContentRestrictionRuleType,
		Enabled: true,
		Version: 1,
		Parameters: map[string]interface{}{
			"content_id":                "mature-pack",
			"age_rating":                16,
			"requires_parental_consent": true,
		},
	}

	r, err := NewContentRestrictionRule(config, nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	// Under age: blocked.
	rctx := rule.NewContext("user-1")
	rctx.Profile.Age = 12
	if res := r.Evaluate(context.Background(), rctx); !res.Blocked {
		t.Error("Expected under-age user to be blocked")
	}

	// Old enough but no consent recorded: blocked.
	rctx.Profile.Age = 17
	if res := r.Evaluate(context.Background(), rctx); !res.Blocked {
		t.Error("Expected missing consent to block")
	}

	// Consent recorded: passes.
	consented := rctx.WithMetadata("parental_consent", rule.Bool(true))
	if res := r.Evaluate(context.Background(), consented); !res.Passed {
		t.Errorf("Expected pass with consent, got: %s", res.Reason)
	}
}

func TestParentalControlRule_Evaluate(t *testing.T) {
	config := rule.Config{
		ID:      "bedtime",
		Name:    "Bedtime Window",
		Type:    ParentalControlRuleType,
		Enabled: true,
		Version: 1,
		Parameters: map[string]interface{}{
			"control_type":        "time_window",
			"severity":            "high",
			"allow_override":      true,
			"window_start_minute": 7 * 60,
			"window_end_minute":   21 * 60,
		},
	}

	r, err := NewParentalControlRule(config, nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	// Controls off for this profile: skipped entirely.
	rctx := rule.NewContext("kid-1")
	res := r.Evaluate(context.Background(), rctx)
	if !res.Skipped {
		t.Error("Expected skip when parental controls are off")
	}

	// Inside the window: passes.
	rctx.Profile.ParentalControlsEnabled = true
	rctx.Timestamp = time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	if res := r.Evaluate(context.Background(), rctx); !res.Passed {
		t.Errorf("Expected pass inside window, got: %s", res.Reason)
	}

	// Outside the window: blocked.
	rctx.Timestamp = time.Date(2026, 8, 31, 23, 0, 0, 0, time.UTC)
	if res := r.Evaluate(context.Background(), rctx); !res.Blocked {
		t.Error("Expected block outside window")
	}

	// Parental override passes even outside the window.
	overridden := rctx.WithMetadata("parental_override", rule.Bool(true))
	if res := r.Evaluate(context.Background(), overridden); !res.Passed {
		t.Errorf("Expected override to pass, got: %s", res.Reason)
	}
}

func TestParentalControlRule_OvernightWindow(t *testing.T) {
	window := TimeWindow{Start: 21 * 60, End: 7 * 60}

	tests := []struct {
		hour   int
		inside bool
	}{
		{22, true},
		{2, true},
		{6, true},
		{7, false},
		{12, false},
		{20, false},
	}

	for _, tt := range tests {
		at := time.Date(2026, 8, 31, tt.hour, 0, 0, 0, time.UTC)
		if got := window.Contains(at); got != tt.inside {
			t.Errorf("Contains(%02d:00) = %v, expected %v", tt.hour, got, tt.inside)
		}
	}
}

func TestParentalControlRule_BlockedCategories(t *testing.T) {
	config := rule.Config{
		ID:      "no-horror",
		Name:    "No Horror",
		Type:    ParentalControlRuleType,
		Enabled: true,
		Version: 1,
		Parameters: map[string]interface{}{
			"control_type":       "content_filter",
			"blocked_categories": []interface{}{"horror", "gambling"},
		},
	}

	r, err := NewParentalControlRule(config, nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	rctx := rule.NewContext("kid-1")
	rctx.Profile.ParentalControlsEnabled = true
	rctx.Timestamp = time.Now()

	blocked := rctx.WithMetadata("content_category", rule.String("horror"))
	if res := r.Evaluate(context.Background(), blocked); !res.Blocked {
		t.Error("Expected blocked category to block")
	}

	allowed := rctx.WithMetadata("content_category", rule.String("puzzle"))
	if res := r.Evaluate(context.Background(), allowed); !res.Passed {
		t.Errorf("Expected allowed category to pass, got: %s", res.Reason)
	}
}
