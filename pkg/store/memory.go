// Copyright (c) 2025 Roshni Games. All Rights Reserved.

package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/roshni-games/rule-engine/pkg/engine"
)

// MemoryConfigStore is an in-process ConfigStore for tests and single-node
// setups without Redis.
type MemoryConfigStore struct {
	mu      sync.RWMutex
	configs map[string]engine.RegistryConfig
}

// NewMemoryConfigStore creates an empty in-memory store.
func NewMemoryConfigStore() *MemoryConfigStore {
	return &MemoryConfigStore{configs: make(map[string]engine.RegistryConfig)}
}

// Save implements ConfigStore.
func (s *MemoryConfigStore) Save(_ context.Context, key string, cfg engine.RegistryConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.configs[key] = cfg
	return nil
}

// Load implements ConfigStore.
func (s *MemoryConfigStore) Load(_ context.Context, key string) (engine.RegistryConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cfg, ok := s.configs[key]
	if !ok {
		return engine.RegistryConfig{}, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	return cfg, nil
}

// Delete implements ConfigStore.
func (s *MemoryConfigStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.configs, key)
	return nil
}
