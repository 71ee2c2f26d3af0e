package rule

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
)

// Factory is a function that creates a rule from a configuration.
// Dependencies carry the injected collaborators (permission hierarchy,
// segment resolution) a rule variant may need.
type Factory func(config Config, deps *Dependencies) (Rule, error)

var (
	factoriesMu sync.RWMutex
	factories   = make(map[string]Factory)
)

// RegisterType registers a factory for a rule type string. Packages
// providing rule variants call this from their init path; it is what lets
// import reconstruct concrete rules from serialized configurations.
func RegisterType(ruleType string, factory Factory) {
	factoriesMu.Lock()
	factories[ruleType] = factory
	factoriesMu.Unlock()
	logrus.Debugf("registered rule type: %s", ruleType)
}

// Create builds a rule instance from its configuration. Disabled rules are
// built too; whether a rule runs is the registry's enabled bit, not a
// construction-time decision.
func Create(config Config, deps *Dependencies) (Rule, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	factoriesMu.RLock()
	factory, exists := factories[config.Type]
	factoriesMu.RUnlock()
	if !exists {
		return nil, fmt.Errorf("unknown rule type: %s", config.Type)
	}

	return factory(config, deps)
}

// CreateAll builds rules for every configuration, collecting errors instead
// of stopping at the first failure.
func CreateAll(configs []Config, deps *Dependencies) ([]Rule, []error) {
	var rules []Rule
	var errs []error

	for _, config := range configs {
		r, err := Create(config, deps)
		if err != nil {
			errs = append(errs, fmt.Errorf("failed to create rule %s: %w", config.ID, err))
			continue
		}
		rules = append(rules, r)
	}

	return rules, errs
}
