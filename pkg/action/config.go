package action

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the base configuration for all actions, typically loaded from
// YAML rule-set files.
type Config struct {
	ID         string                 `yaml:"id" json:"id"`
	Name       string                 `yaml:"name" json:"name"`
	Type       string                 `yaml:"type" json:"type"` // e.g. "log", "record_metric"
	Enabled    bool                   `yaml:"enabled" json:"enabled"`
	Retry      *RetryConfig           `yaml:"retry,omitempty" json:"retry,omitempty"`
	Parameters map[string]interface{} `yaml:"parameters,omitempty" json:"parameters,omitempty"`
}

// RetryConfig defines retry behavior for failed actions.
type RetryConfig struct {
	MaxAttempts int           `yaml:"max_attempts" json:"max_attempts"`
	Delay       time.Duration `yaml:"-" json:"delay"`
}

// UnmarshalYAML parses the delay as a duration string such as "200ms".
func (r *RetryConfig) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		MaxAttempts int    `yaml:"max_attempts"`
		Delay       string `yaml:"delay"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}

	r.MaxAttempts = raw.MaxAttempts
	if raw.Delay != "" {
		delay, err := time.ParseDuration(raw.Delay)
		if err != nil {
			return fmt.Errorf("invalid retry delay %q: %w", raw.Delay, err)
		}
		r.Delay = delay
	}
	return nil
}

// GetParameterString retrieves a string parameter with a default.
func (c *Config) GetParameterString(key string, defaultValue string) string {
	if val, ok := c.Parameters[key]; ok {
		if strVal, ok := val.(string); ok {
			return strVal
		}
	}
	return defaultValue
}

// GetParameterInt retrieves an integer parameter with a default.
func (c *Config) GetParameterInt(key string, defaultValue int) int {
	if val, ok := c.Parameters[key]; ok {
		switch v := val.(type) {
		case int:
			return v
		case float64:
			return int(v)
		}
	}
	return defaultValue
}

// GetParameterBool retrieves a boolean parameter with a default.
func (c *Config) GetParameterBool(key string, defaultValue bool) bool {
	if val, ok := c.Parameters[key]; ok {
		if boolVal, ok := val.(bool); ok {
			return boolVal
		}
	}
	return defaultValue
}
