// Copyright (c) 2025 Roshni Games. All Rights Reserved.

package config

// Config holds all application configuration loaded from environment
// variables, parsed with github.com/caarlos0/env.
type Config struct {
	// Server configuration
	MetricsPort int    `env:"METRICS_PORT" envDefault:"8080"`
	Environment string `env:"ENVIRONMENT" envDefault:"dev"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"RoshniRuleEngine"`

	// Rule set configuration
	RuleSetPath string `env:"RULESET_PATH" envDefault:"config/ruleset.yaml"`
	RuleSetKey  string `env:"RULESET_KEY" envDefault:"default"`

	// Continuous evaluation
	ContinuousEnabled    bool `env:"CONTINUOUS_EVALUATION_ENABLED" envDefault:"false"`
	ContinuousIntervalMs int  `env:"CONTINUOUS_EVALUATION_INTERVAL_MS" envDefault:"5000"`

	// Redis configuration, used to persist exported rule sets
	RedisEnabled  bool   `env:"REDIS_ENABLED" envDefault:"false"`
	RedisHost     string `env:"REDIS_HOST" envDefault:"localhost"`
	RedisPort     string `env:"REDIS_PORT" envDefault:"6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	// Telemetry configuration
	OtelEnabled     bool   `env:"OTEL_ENABLED" envDefault:"true"`
	OtelServiceName string `env:"OTEL_SERVICE_NAME" envDefault:"rule-engine"`
}
