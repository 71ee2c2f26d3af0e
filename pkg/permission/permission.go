package permission

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Category groups permissions by the area of the app they govern.
type Category string

const (
	CategoryGameplay         Category = "GAMEPLAY"
	CategoryContent          Category = "CONTENT"
	CategorySocial           Category = "SOCIAL"
	CategorySystem           Category = "SYSTEM"
	CategoryParentalControls Category = "PARENTAL_CONTROLS"
	CategoryAdministration   Category = "ADMINISTRATION"
)

// Level orders permissions by privilege. Higher levels outrank lower ones.
type Level int

const (
	LevelBasic Level = iota + 1
	LevelIntermediate
	LevelAdvanced
	LevelAdmin
	LevelSystem
)

// String returns the level name.
func (l Level) String() string {
	switch l {
	case LevelBasic:
		return "BASIC"
	case LevelIntermediate:
		return "INTERMEDIATE"
	case LevelAdvanced:
		return "ADVANCED"
	case LevelAdmin:
		return "ADMIN"
	case LevelSystem:
		return "SYSTEM"
	default:
		return "UNKNOWN"
	}
}

// AtLeast reports whether the level meets or exceeds the required level.
func (l Level) AtLeast(required Level) bool {
	return l >= required
}

// ParseLevel resolves a level name to its ordered value.
func ParseLevel(name string) (Level, error) {
	switch name {
	case "BASIC":
		return LevelBasic, nil
	case "INTERMEDIATE":
		return LevelIntermediate, nil
	case "ADVANCED":
		return LevelAdvanced, nil
	case "ADMIN":
		return LevelAdmin, nil
	case "SYSTEM":
		return LevelSystem, nil
	default:
		return 0, fmt.Errorf("unknown permission level: %q", name)
	}
}

// UnmarshalYAML accepts a level by name ("ADMIN") or by ordered value.
func (l *Level) UnmarshalYAML(value *yaml.Node) error {
	var n int
	if err := value.Decode(&n); err == nil {
		if n < int(LevelBasic) || n > int(LevelSystem) {
			return fmt.Errorf("permission level out of range: %d", n)
		}
		*l = Level(n)
		return nil
	}

	var name string
	if err := value.Decode(&name); err != nil {
		return fmt.Errorf("invalid permission level: %w", err)
	}
	parsed, err := ParseLevel(name)
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// Permission describes a named capability a user may hold.
type Permission struct {
	Name        string   `yaml:"name" json:"name"`
	Description string   `yaml:"description,omitempty" json:"description,omitempty"`
	Category    Category `yaml:"category" json:"category"`
	Level       Level    `yaml:"level" json:"level"`
}
