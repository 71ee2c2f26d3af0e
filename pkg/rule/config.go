package rule

import (
	"fmt"
	"time"
)

// Config is the serializable definition of a rule. It is what rule-set YAML
// files contain, what export produces and what import consumes; the factory
// turns a Config back into a concrete rule via its Type.
type Config struct {
	ID          string                 `yaml:"id" json:"id"`
	Name        string                 `yaml:"name" json:"name"`
	Description string                 `yaml:"description,omitempty" json:"description,omitempty"`
	Type        string                 `yaml:"type" json:"type"` // e.g. "gameplay", "permission"
	Category    string                 `yaml:"category" json:"category"`
	Enabled     bool                   `yaml:"enabled" json:"enabled"`
	Tags        []string               `yaml:"tags,omitempty" json:"tags,omitempty"`
	Priority    int                    `yaml:"priority" json:"priority"`
	Version     int                    `yaml:"version" json:"version"`
	CreatedAt   time.Time              `yaml:"created_at,omitempty" json:"created_at,omitempty"`
	ModifiedAt  time.Time              `yaml:"modified_at,omitempty" json:"modified_at,omitempty"`
	Actions     []string               `yaml:"actions,omitempty" json:"actions,omitempty"`
	Parameters  map[string]interface{} `yaml:"parameters,omitempty" json:"parameters,omitempty"`
}

// Validate checks the configuration's structural invariants.
func (c *Config) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("rule has empty id")
	}
	if c.Name == "" {
		return fmt.Errorf("rule %s has empty name", c.ID)
	}
	if c.Type == "" {
		return fmt.Errorf("rule %s has empty type", c.ID)
	}
	if c.Version < 0 {
		return fmt.Errorf("rule %s has negative version", c.ID)
	}
	return nil
}

// HasTag reports whether the config carries the given tag.
func (c *Config) HasTag(tag string) bool {
	for _, t := range c.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// GetInt retrieves an integer parameter with a default. YAML decodes whole
// numbers as int and JSON as float64; both are accepted.
func (c *Config) GetInt(key string, defaultValue int) int {
	if val, ok := c.Parameters[key]; ok {
		switch v := val.(type) {
		case int:
			return v
		case int64:
			return int(v)
		case float64:
			return int(v)
		}
	}
	return defaultValue
}

// GetFloat retrieves a float parameter with a default.
func (c *Config) GetFloat(key string, defaultValue float64) float64 {
	if val, ok := c.Parameters[key]; ok {
		switch v := val.(type) {
		case float64:
			return v
		case int:
			return float64(v)
		case int64:
			return float64(v)
		}
	}
	return defaultValue
}

// GetString retrieves a string parameter with a default.
func (c *Config) GetString(key string, defaultValue string) string {
	if val, ok := c.Parameters[key]; ok {
		if strVal, ok := val.(string); ok {
			return strVal
		}
	}
	return defaultValue
}

// GetBool retrieves a boolean parameter with a default.
func (c *Config) GetBool(key string, defaultValue bool) bool {
	if val, ok := c.Parameters[key]; ok {
		if boolVal, ok := val.(bool); ok {
			return boolVal
		}
	}
	return defaultValue
}

// GetStringSlice retrieves a string slice parameter with a default.
func (c *Config) GetStringSlice(key string, defaultValue []string) []string {
	if val, ok := c.Parameters[key]; ok {
		if sliceVal, ok := val.([]string); ok {
			return sliceVal
		}
		// YAML/JSON decode lists as []interface{}
		if interfaceSlice, ok := val.([]interface{}); ok {
			result := make([]string, 0, len(interfaceSlice))
			for _, item := range interfaceSlice {
				if str, ok := item.(string); ok {
					result = append(result, str)
				}
			}
			return result
		}
	}
	return defaultValue
}

// GetMapSlice retrieves a list of maps (e.g. condition or gate definitions).
func (c *Config) GetMapSlice(key string) []map[string]interface{} {
	val, ok := c.Parameters[key]
	if !ok {
		return nil
	}
	raw, ok := val.([]interface{})
	if !ok {
		return nil
	}
	result := make([]map[string]interface{}, 0, len(raw))
	for _, item := range raw {
		if m, ok := item.(map[string]interface{}); ok {
			result = append(result, m)
		}
	}
	return result
}
