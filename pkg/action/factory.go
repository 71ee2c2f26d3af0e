package action

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
)

// Factory is a function that creates an action from a configuration.
type Factory func(config Config) (Action, error)

var (
	factoriesMu sync.RWMutex
	factories   = make(map[string]Factory)
)

// RegisterType registers a factory for an action type string.
func RegisterType(actionType string, factory Factory) {
	factoriesMu.Lock()
	factories[actionType] = factory
	factoriesMu.Unlock()
	logrus.Debugf("registered action type: %s", actionType)
}

// Create builds an action instance from its configuration.
func Create(config Config) (Action, error) {
	if config.ID == "" {
		return nil, fmt.Errorf("%w: empty action id", ErrInvalidConfig)
	}
	if config.Type == "" {
		return nil, fmt.Errorf("%w: action %s has empty type", ErrInvalidConfig, config.ID)
	}

	factoriesMu.RLock()
	factory, exists := factories[config.Type]
	factoriesMu.RUnlock()
	if !exists {
		return nil, fmt.Errorf("unknown action type: %s", config.Type)
	}

	return factory(config)
}

// CreateAll builds actions for every configuration, collecting errors
// instead of stopping at the first failure.
func CreateAll(configs []Config) ([]Action, []error) {
	var actions []Action
	var errs []error

	for _, config := range configs {
		act, err := Create(config)
		if err != nil {
			errs = append(errs, fmt.Errorf("failed to create action %s: %w", config.ID, err))
			continue
		}
		actions = append(actions, act)
	}

	return actions, errs
}
