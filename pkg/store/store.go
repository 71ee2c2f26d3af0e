// Copyright (c) 2025 Roshni Games. All Rights Reserved.

// Package store persists exported rule registry configurations.
package store

import (
	"context"
	"errors"

	"github.com/roshni-games/rule-engine/pkg/engine"
)

// ErrNotFound indicates no configuration is stored under the requested key.
var ErrNotFound = errors.New("configuration not found")

// ConfigStore saves and loads registry configurations, keyed by name so
// multiple rule sets (e.g. per game) can coexist.
type ConfigStore interface {
	Save(ctx context.Context, key string, cfg engine.RegistryConfig) error
	Load(ctx context.Context, key string) (engine.RegistryConfig, error)
	Delete(ctx context.Context, key string) error
}
