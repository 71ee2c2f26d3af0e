package permission

import (
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"
)

// Hierarchy resolves permission implications. It is built once from direct
// implication edges (permission name -> names it directly implies), rejected
// if the edges contain a cycle, and stores the full transitive closure so
// reachability queries are a single set lookup afterward.
//
// "admin implies moderator, moderator implies user" therefore means a holder
// of admin satisfies a requirement of user without any per-query graph walk.
type Hierarchy struct {
	closure map[string]map[string]bool
}

// NewHierarchy builds a hierarchy from direct implication edges. An error is
// returned if the edges form a cycle; an invalid hierarchy is never silently
// accepted.
func NewHierarchy(direct map[string][]string) (*Hierarchy, error) {
	if err := detectCycle(direct); err != nil {
		return nil, err
	}

	closure := make(map[string]map[string]bool, len(direct))
	for name := range direct {
		reach := make(map[string]bool)
		collectReachable(name, direct, reach)
		closure[name] = reach
	}

	logrus.Debugf("built permission hierarchy: %d roots", len(closure))
	return &Hierarchy{closure: closure}, nil
}

// detectCycle runs a three-color depth-first search over the edges.
func detectCycle(direct map[string][]string) error {
	const (
		white = 0 // unvisited
		gray  = 1 // on the current path
		black = 2 // done
	)
	colors := make(map[string]int, len(direct))

	var visit func(name string) error
	visit = func(name string) error {
		switch colors[name] {
		case gray:
			return fmt.Errorf("permission hierarchy contains a cycle through %q", name)
		case black:
			return nil
		}
		colors[name] = gray
		for _, implied := range direct[name] {
			if err := visit(implied); err != nil {
				return err
			}
		}
		colors[name] = black
		return nil
	}

	// Sort roots so a cyclic input always reports the same permission.
	roots := make([]string, 0, len(direct))
	for name := range direct {
		roots = append(roots, name)
	}
	sort.Strings(roots)

	for _, name := range roots {
		if err := visit(name); err != nil {
			return err
		}
	}
	return nil
}

// collectReachable accumulates every permission reachable from name.
func collectReachable(name string, direct map[string][]string, reach map[string]bool) {
	for _, implied := range direct[name] {
		if reach[implied] {
			continue
		}
		reach[implied] = true
		collectReachable(implied, direct, reach)
	}
}

// Implies reports whether holding `holder` satisfies `required` through the
// hierarchy (not counting holding it directly).
func (h *Hierarchy) Implies(holder, required string) bool {
	return h != nil && h.closure[holder][required]
}

// Implied returns every permission implied by the given one, sorted.
func (h *Hierarchy) Implied(name string) []string {
	if h == nil {
		return nil
	}
	reach := h.closure[name]
	out := make([]string, 0, len(reach))
	for implied := range reach {
		out = append(out, implied)
	}
	sort.Strings(out)
	return out
}

// Resolver answers permission queries against a hierarchy. It implements
// the rule package's PermissionChecker contract.
type Resolver struct {
	hierarchy *Hierarchy
}

// NewResolver creates a resolver over the given hierarchy. A nil hierarchy
// degrades to direct lookups only.
func NewResolver(hierarchy *Hierarchy) *Resolver {
	return &Resolver{hierarchy: hierarchy}
}

// HasPermission reports whether the held permission set satisfies the
// required permission, directly or through any held permission's closure.
func (r *Resolver) HasPermission(held map[string]bool, required string) bool {
	if held[required] {
		return true
	}
	if r == nil || r.hierarchy == nil {
		return false
	}
	for name, ok := range held {
		if ok && r.hierarchy.Implies(name, required) {
			return true
		}
	}
	return false
}
