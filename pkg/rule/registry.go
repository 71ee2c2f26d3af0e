package rule

import (
	"fmt"
	"sync"
)

// Registry is a concurrency-safe store of registered rules keyed by ID.
// Iteration order is registration order, so batch evaluations are
// deterministic and tests can assert on output ordering.
//
// Rules are treated as immutable once registered: changing one means
// replacing it through Update, never mutating fields in place. Duplicate IDs
// are rejected at Register; replacement is spelled Update (or Unregister
// followed by Register).
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*registryEntry
	order   []string
}

type registryEntry struct {
	rule    Rule
	enabled bool
}

// NewRegistry creates a new empty rule registry.
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string]*registryEntry),
	}
}

// Register adds a rule to the registry. The rule is validated first; rules
// failing validation or reusing an existing ID are rejected.
func (r *Registry) Register(rule Rule) error {
	if err := rule.Validate(); err != nil {
		return fmt.Errorf("rule %s failed validation: %w", rule.ID(), err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[rule.ID()]; exists {
		return fmt.Errorf("rule %s already registered", rule.ID())
	}

	r.entries[rule.ID()] = &registryEntry{rule: rule, enabled: rule.Config().Enabled}
	r.order = append(r.order, rule.ID())
	return nil
}

// Update replaces an existing rule with a new version. The replacement must
// carry a strictly greater version number; this is the mutate-by-replace
// path that keeps versions monotonic.
func (r *Registry) Update(rule Rule) error {
	if err := rule.Validate(); err != nil {
		return fmt.Errorf("rule %s failed validation: %w", rule.ID(), err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.entries[rule.ID()]
	if !ok {
		return fmt.Errorf("rule %s not found", rule.ID())
	}
	if rule.Config().Version <= existing.rule.Config().Version {
		return fmt.Errorf("rule %s version %d is not greater than current version %d",
			rule.ID(), rule.Config().Version, existing.rule.Config().Version)
	}

	r.entries[rule.ID()] = &registryEntry{rule: rule, enabled: rule.Config().Enabled}
	return nil
}

// Unregister removes a rule from the registry.
func (r *Registry) Unregister(ruleID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[ruleID]; !exists {
		return fmt.Errorf("rule %s not found", ruleID)
	}

	delete(r.entries, ruleID)
	for i, id := range r.order {
		if id == ruleID {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// Get returns a rule by ID, or nil if it is not registered.
func (r *Registry) Get(ruleID string) Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if entry, ok := r.entries[ruleID]; ok {
		return entry.rule
	}
	return nil
}

// GetAll returns all registered rules, enabled or not, in registration order.
func (r *Registry) GetAll() []Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rules := make([]Rule, 0, len(r.order))
	for _, id := range r.order {
		rules = append(rules, r.entries[id].rule)
	}
	return rules
}

// Enabled returns enabled rules in registration order. The returned slice is
// a copy-on-read snapshot: evaluation over it never blocks registration.
func (r *Registry) Enabled() []Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rules := make([]Rule, 0, len(r.order))
	for _, id := range r.order {
		if entry := r.entries[id]; entry.enabled {
			rules = append(rules, entry.rule)
		}
	}
	return rules
}

// GetByCategory returns enabled rules with the given category, in
// registration order.
func (r *Registry) GetByCategory(category string) []Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matching []Rule
	for _, id := range r.order {
		entry := r.entries[id]
		if entry.enabled && entry.rule.Category() == category {
			matching = append(matching, entry.rule)
		}
	}
	return matching
}

// GetByTags returns enabled rules carrying any of the given tags, in
// registration order.
func (r *Registry) GetByTags(tags ...string) []Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matching []Rule
	for _, id := range r.order {
		entry := r.entries[id]
		if !entry.enabled {
			continue
		}
		cfg := entry.rule.Config()
		for _, tag := range tags {
			if cfg.HasTag(tag) {
				matching = append(matching, entry.rule)
				break
			}
		}
	}
	return matching
}

// SetEnabled toggles a rule without re-registering it.
func (r *Registry) SetEnabled(ruleID string, enabled bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.entries[ruleID]
	if !ok {
		return fmt.Errorf("rule %s not found", ruleID)
	}
	entry.enabled = enabled
	return nil
}

// IsEnabled reports whether a rule is currently enabled.
func (r *Registry) IsEnabled(ruleID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.entries[ruleID]
	if !ok {
		return false, fmt.Errorf("rule %s not found", ruleID)
	}
	return entry.enabled, nil
}

// Count returns the number of registered rules.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.entries)
}

// ReplaceAll swaps this registry's contents with those of src in one step.
// Import uses it to apply a fully validated staging registry as a single
// transaction.
func (r *Registry) ReplaceAll(src *Registry) {
	src.mu.RLock()
	entries := make(map[string]*registryEntry, len(src.entries))
	for id, entry := range src.entries {
		copied := *entry
		entries[id] = &copied
	}
	order := append([]string(nil), src.order...)
	src.mu.RUnlock()

	r.mu.Lock()
	r.entries = entries
	r.order = order
	r.mu.Unlock()
}
