package builtin

import (
	"github.com/roshni-games/rule-engine/pkg/action"
)

// RegisterBuiltinActions registers all built-in action types with the factory.
func RegisterBuiltinActions() {
	action.RegisterType(LogActionType, func(config action.Config) (action.Action, error) {
		return NewLogAction(config)
	})

	action.RegisterType(RecordMetricActionType, func(config action.Config) (action.Action, error) {
		return NewRecordMetricAction(config), nil
	})
}
