// Copyright (c) 2025 Roshni Games. All Rights Reserved.

package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	"github.com/roshni-games/rule-engine/pkg/engine"
)

const (
	// DefaultTTL is how long a stored configuration lives in Redis.
	DefaultTTL = 30 * 24 * time.Hour
	// KeyPrefix is the prefix for all rule configuration keys.
	KeyPrefix = "rule_engine:config:"
)

// ConnectRedis creates a Redis client and verifies connectivity with
// exponential backoff.
func ConnectRedis(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 5), ctx)
	err := backoff.Retry(func() error {
		if _, err := client.Ping(ctx).Result(); err != nil {
			logrus.Warnf("Redis connection to %s failed: %v, retrying...", addr, err)
			return err
		}
		return nil
	}, policy)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", addr, err)
	}

	logrus.Infof("connected to Redis at %s", addr)
	return client, nil
}

// RedisConfigStore persists registry configurations as JSON values in Redis.
type RedisConfigStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisConfigStore creates a store over an existing client.
func NewRedisConfigStore(client *redis.Client) *RedisConfigStore {
	return &RedisConfigStore{client: client, ttl: DefaultTTL}
}

func makeKey(key string) string {
	return KeyPrefix + key
}

// Save implements ConfigStore.
func (s *RedisConfigStore) Save(ctx context.Context, key string, cfg engine.RegistryConfig) error {
	data, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal configuration: %w", err)
	}

	if err := s.client.Set(ctx, makeKey(key), data, s.ttl).Err(); err != nil {
		logrus.Errorf("failed to save configuration %s: %v", key, err)
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	logrus.Infof("saved configuration %s (%d rules)", key, len(cfg.Rules))
	return nil
}

// Load implements ConfigStore.
func (s *RedisConfigStore) Load(ctx context.Context, key string) (engine.RegistryConfig, error) {
	data, err := s.client.Get(ctx, makeKey(key)).Result()
	if err == redis.Nil {
		return engine.RegistryConfig{}, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	if err != nil {
		logrus.Errorf("failed to load configuration %s: %v", key, err)
		return engine.RegistryConfig{}, fmt.Errorf("failed to load configuration: %w", err)
	}

	var cfg engine.RegistryConfig
	if err := json.Unmarshal([]byte(data), &cfg); err != nil {
		return engine.RegistryConfig{}, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	return cfg, nil
}

// Delete implements ConfigStore.
func (s *RedisConfigStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, makeKey(key)).Err(); err != nil {
		return fmt.Errorf("failed to delete configuration: %w", err)
	}
	return nil
}
