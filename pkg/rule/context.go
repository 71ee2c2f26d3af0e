package rule

import "time"

// Context is the immutable snapshot of user, device and game state supplied
// to every rule and condition evaluation. Build a fresh Context per
// evaluation; nothing in the engine mutates it and no rule may read hidden
// global state instead of it.
type Context struct {
	UserID    string
	GameID    string
	SessionID string
	Timestamp time.Time

	Device  DeviceInfo
	Profile UserProfile
	Game    GameState

	// FeatureFlags is the set of feature flags active for this user.
	FeatureFlags map[string]bool

	Metadata Metadata
}

// DeviceInfo describes the device the user is playing on.
type DeviceInfo struct {
	Platform         string
	Tablet           bool
	BatteryLevel     float64 // 0.0 - 1.0
	Locale           string
	MemoryUsageMB    int
	NetworkAvailable bool
}

// UserProfile carries the user's permissions and account attributes.
type UserProfile struct {
	Permissions             map[string]bool
	Age                     int
	Premium                 bool
	ParentalControlsEnabled bool
	Authenticated           bool
}

// GameState carries the player's progress within the current game.
type GameState struct {
	Level    int
	Score    int
	Progress float64 // 0.0 - 1.0
}

// NewContext creates a context for the given user with the current time.
func NewContext(userID string) *Context {
	return &Context{
		UserID:       userID,
		Timestamp:    time.Now(),
		FeatureFlags: make(map[string]bool),
		Profile:      UserProfile{Permissions: make(map[string]bool)},
		Metadata:     make(Metadata),
	}
}

// HasFeature reports whether the given feature flag is active in this context.
func (c *Context) HasFeature(flag string) bool {
	return c != nil && c.FeatureFlags[flag]
}

// HasPermission reports whether the user holds the permission directly.
// Hierarchy-aware checks go through a PermissionChecker instead.
func (c *Context) HasPermission(name string) bool {
	return c != nil && c.Profile.Permissions[name]
}

// WithMetadata returns a copy of the context with one metadata entry added.
// The original context is left untouched.
func (c *Context) WithMetadata(key string, value Value) *Context {
	clone := *c
	clone.Metadata = c.Metadata.Clone()
	if clone.Metadata == nil {
		clone.Metadata = make(Metadata, 1)
	}
	clone.Metadata[key] = value
	return &clone
}

// PermissionSet builds a permission set from names, for constructing profiles.
func PermissionSet(names ...string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, name := range names {
		set[name] = true
	}
	return set
}
