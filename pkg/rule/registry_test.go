package rule

import (
	"context"
	"testing"
)

// testRule is a minimal Rule implementation for registry tests.
type testRule struct {
	config Config
	result Result
}

func newTestRule(id, category string, tags ...string) *testRule {
	return &testRule{
		config: Config{
			ID:       id,
			Name:     "Test " + id,
			Type:     "test",
			Category: category,
			Enabled:  true,
			Tags:     tags,
			Version:  1,
		},
		result: Pass("ok"),
	}
}

func (r *testRule) ID() string                                { return r.config.ID }
func (r *testRule) Name() string                              { return r.config.Name }
func (r *testRule) Category() string                          { return r.config.Category }
func (r *testRule) Evaluate(context.Context, *Context) Result { return r.result }
func (r *testRule) Validate() error                           { return r.config.Validate() }
func (r *testRule) Metadata() Metadata                        { return nil }
func (r *testRule) Config() Config                            { return r.config }

func TestRegistry_Register(t *testing.T) {
	registry := NewRegistry()

	if err := registry.Register(newTestRule("rule-1", "navigation")); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if registry.Count() != 1 {
		t.Errorf("Expected 1 rule, got %d", registry.Count())
	}

	// Duplicate IDs are rejected.
	if err := registry.Register(newTestRule("rule-1", "navigation")); err == nil {
		t.Error("Expected error registering duplicate rule ID")
	}

	// A rule failing validation is rejected.
	invalid := newTestRule("", "navigation")
	if err := registry.Register(invalid); err == nil {
		t.Error("Expected error registering invalid rule")
	}
}

func TestRegistry_Update(t *testing.T) {
	registry := NewRegistry()
	if err := registry.Register(newTestRule("rule-1", "navigation")); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	// Same version is rejected: versions must strictly increase.
	same := newTestRule("rule-1", "navigation")
	if err := registry.Update(same); err == nil {
		t.Error("Expected error updating with same version")
	}

	newer := newTestRule("rule-1", "navigation")
	newer.config.Version = 2
	if err := registry.Update(newer); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got := registry.Get("rule-1").Config().Version; got != 2 {
		t.Errorf("Expected version 2, got %d", got)
	}

	// Updating an unregistered rule fails.
	if err := registry.Update(newTestRule("rule-2", "navigation")); err == nil {
		t.Error("Expected error updating unregistered rule")
	}
}

func TestRegistry_Unregister(t *testing.T) {
	registry := NewRegistry()
	if err := registry.Register(newTestRule("rule-1", "navigation")); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if err := registry.Unregister("rule-1"); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if registry.Get("rule-1") != nil {
		t.Error("Expected rule to be gone after unregister")
	}
	if err := registry.Unregister("rule-1"); err == nil {
		t.Error("Expected error unregistering unknown rule")
	}
}

func TestRegistry_EnabledFiltering(t *testing.T) {
	registry := NewRegistry()
	for _, id := range []string{"a", "b", "c"} {
		if err := registry.Register(newTestRule(id, "navigation")); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
	}

	if err := registry.SetEnabled("b", false); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	enabled := registry.Enabled()
	if len(enabled) != 2 {
		t.Fatalf("Expected 2 enabled rules, got %d", len(enabled))
	}

	// Registration order is preserved.
	if enabled[0].ID() != "a" || enabled[1].ID() != "c" {
		t.Errorf("Expected [a c], got [%s %s]", enabled[0].ID(), enabled[1].ID())
	}

	if on, _ := registry.IsEnabled("b"); on {
		t.Error("Expected rule b to be disabled")
	}

	// GetAll still returns disabled rules.
	if len(registry.GetAll()) != 3 {
		t.Errorf("Expected GetAll to return 3 rules, got %d", len(registry.GetAll()))
	}
}

func TestRegistry_GetByCategoryAndTags(t *testing.T) {
	registry := NewRegistry()
	rules := []*testRule{
		newTestRule("nav-1", "navigation", "ui"),
		newTestRule("nav-2", "navigation", "premium"),
		newTestRule("content-1", "content", "ui", "premium"),
	}
	for _, r := range rules {
		if err := registry.Register(r); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
	}

	nav := registry.GetByCategory("navigation")
	if len(nav) != 2 {
		t.Errorf("Expected 2 navigation rules, got %d", len(nav))
	}

	// Any matching tag qualifies.
	tagged := registry.GetByTags("premium")
	if len(tagged) != 2 {
		t.Errorf("Expected 2 premium-tagged rules, got %d", len(tagged))
	}

	if err := registry.SetEnabled("nav-2", false); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(registry.GetByTags("premium")) != 1 {
		t.Error("Expected disabled rules to be excluded from tag lookup")
	}
}

func TestRegistry_ReplaceAll(t *testing.T) {
	registry := NewRegistry()
	if err := registry.Register(newTestRule("old", "navigation")); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	staging := NewRegistry()
	if err := staging.Register(newTestRule("new-1", "content")); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if err := staging.Register(newTestRule("new-2", "content")); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	registry.ReplaceAll(staging)

	if registry.Get("old") != nil {
		t.Error("Expected old rule to be gone after replace")
	}
	if registry.Count() != 2 {
		t.Errorf("Expected 2 rules after replace, got %d", registry.Count())
	}
}
