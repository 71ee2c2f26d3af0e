package action

import "errors"

var (
	// ErrActionNotFound indicates a requested action is not in the registry.
	ErrActionNotFound = errors.New("action not found in registry")

	// ErrActionDisabled indicates an action is disabled in configuration.
	ErrActionDisabled = errors.New("action is disabled")

	// ErrInvalidConfig indicates an action's configuration is invalid.
	ErrInvalidConfig = errors.New("invalid action configuration")

	// ErrMaxRetriesExceeded indicates an action failed after all retry attempts.
	ErrMaxRetriesExceeded = errors.New("maximum retry attempts exceeded")
)
