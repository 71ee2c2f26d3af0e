// Copyright (c) 2025 Roshni Games. All Rights Reserved.

package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Load reads configuration from environment variables. A .env file is
// loaded first when present (local development); in production the
// variables are injected directly.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logrus.Debugf("no .env file loaded: %v", err)
	} else {
		logrus.Infof("loaded environment variables from .env file")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config from environment: %w", err)
	}

	return cfg, nil
}

// Validate performs custom validation on the configuration.
func (c *Config) Validate() error {
	if c.MetricsPort < 1 || c.MetricsPort > 65535 {
		return fmt.Errorf("invalid METRICS_PORT: %d (must be 1-65535)", c.MetricsPort)
	}

	if c.ContinuousIntervalMs < 100 {
		return fmt.Errorf("invalid CONTINUOUS_EVALUATION_INTERVAL_MS: %d (must be at least 100)", c.ContinuousIntervalMs)
	}

	if c.RuleSetPath == "" {
		return fmt.Errorf("RULESET_PATH is required")
	}

	return nil
}
