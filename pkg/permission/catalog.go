package permission

import "fmt"

// Catalog indexes permission definitions by name. It gives hierarchy edges a
// privilege level to validate against: an implication that escalates to a
// higher level would turn holding a weak permission into holding a strong
// one, so such hierarchies are rejected.
type Catalog map[string]Permission

// NewCatalog builds a catalog from definitions. Empty or duplicate names are
// rejected.
func NewCatalog(defs []Permission) (Catalog, error) {
	catalog := make(Catalog, len(defs))
	for _, def := range defs {
		if def.Name == "" {
			return nil, fmt.Errorf("permission definition with empty name")
		}
		if _, exists := catalog[def.Name]; exists {
			return nil, fmt.Errorf("duplicate permission definition: %s", def.Name)
		}
		catalog[def.Name] = def
	}
	return catalog, nil
}

// Get returns the definition for a permission name.
func (c Catalog) Get(name string) (Permission, bool) {
	def, ok := c[name]
	return def, ok
}

// ValidateHierarchy checks implication edges against the catalog: every
// referenced permission must be defined, and a permission may only imply
// permissions at or below its own level.
func (c Catalog) ValidateHierarchy(direct map[string][]string) error {
	for holder, implied := range direct {
		holderDef, ok := c[holder]
		if !ok {
			return fmt.Errorf("hierarchy references undefined permission: %s", holder)
		}
		for _, name := range implied {
			impliedDef, ok := c[name]
			if !ok {
				return fmt.Errorf("hierarchy references undefined permission: %s", name)
			}
			if !holderDef.Level.AtLeast(impliedDef.Level) {
				return fmt.Errorf("permission %s (%s) cannot imply higher-level %s (%s)",
					holder, holderDef.Level, name, impliedDef.Level)
			}
		}
	}
	return nil
}
