// Copyright (c) 2025 Roshni Games. All Rights Reserved.

package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"

	"github.com/roshni-games/rule-engine/internal/config"
	"github.com/roshni-games/rule-engine/pkg/engine"
	"github.com/roshni-games/rule-engine/pkg/rule"
	"github.com/roshni-games/rule-engine/pkg/store"
)

const testRuleSet = `
rules:
  - id: yaml-rule
    name: YAML Rule
    description: loaded from the rule set file
    type: permission
    category: navigation
    enabled: true
    version: 1
    parameters:
      required: basic_access
`

func testConfig(t *testing.T, mr *miniredis.Miniredis) *config.Config {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ruleset.yaml")
	if err := os.WriteFile(path, []byte(testRuleSet), 0o644); err != nil {
		t.Fatalf("Failed to write rule set file: %v", err)
	}
	return &config.Config{
		MetricsPort:          8080,
		RuleSetPath:          path,
		RuleSetKey:           "default",
		ContinuousIntervalMs: 5000,
		RedisEnabled:         true,
		RedisHost:            mr.Host(),
		RedisPort:            mr.Port(),
	}
}

func TestNew_RestoresStoredRuleSet(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	stored := engine.RegistryConfig{
		Version: engine.ExportVersion,
		Rules: []rule.Config{
			{
				ID:          "stored-rule",
				Name:        "Stored Rule",
				Description: "persisted on a previous shutdown",
				Type:        "permission",
				Category:    "navigation",
				Enabled:     true,
				Version:     2,
				Parameters:  map[string]interface{}{"required": "basic_access"},
			},
		},
	}
	if err := store.NewRedisConfigStore(client).Save(ctx, "default", stored); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	app, err := New(ctx, testConfig(t, mr))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	defer app.Engine().Shutdown()

	// The stored rule set replaces the YAML one wholesale.
	registry := app.Engine().Registry()
	if registry.Get("stored-rule") == nil {
		t.Error("Expected stored rule to be registered")
	}
	if registry.Get("yaml-rule") != nil {
		t.Error("Expected YAML rule to be replaced by the stored rule set")
	}
	if registry.Count() != 1 {
		t.Errorf("Expected 1 rule, got %d", registry.Count())
	}
}

func TestNew_NoStoredRuleSetKeepsYAML(t *testing.T) {
	mr := miniredis.RunT(t)

	app, err := New(context.Background(), testConfig(t, mr))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	defer app.Engine().Shutdown()

	if app.Engine().Registry().Get("yaml-rule") == nil {
		t.Error("Expected YAML rule to survive when the store is empty")
	}
}
