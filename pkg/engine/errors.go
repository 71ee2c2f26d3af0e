// Copyright (c) 2025 Roshni Games. All Rights Reserved.

package engine

import "errors"

var (
	// ErrRuleNotFound indicates a referenced rule ID is absent from the registry.
	ErrRuleNotFound = errors.New("rule not found in registry")

	// ErrValidationFailed indicates a rule or import payload failed structural checks.
	ErrValidationFailed = errors.New("validation failed")

	// ErrAlreadyRunning indicates a continuous evaluation loop is already active.
	ErrAlreadyRunning = errors.New("continuous evaluation is already running")

	// ErrActionExecutionFailed indicates one or more post-pass actions failed.
	ErrActionExecutionFailed = errors.New("action execution failed")

	// ErrEngineClosed indicates the engine has been shut down.
	ErrEngineClosed = errors.New("engine is closed")
)
