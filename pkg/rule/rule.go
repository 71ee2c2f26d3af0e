package rule

import (
	"context"
)

// Rule is a named, versioned unit of policy. Implementations are registered
// in a Registry and evaluated by the engine.
//
// Evaluate must be a pure function of the context and the rule's own
// configuration: no I/O and no hidden global state. Anything external a rule
// needs (permission hierarchy, segment resolution) is injected through
// Dependencies at construction time.
type Rule interface {
	// ID returns the unique rule identifier.
	ID() string

	// Name returns the human-readable rule name.
	Name() string

	// Category returns the rule category (e.g. "navigation", "business").
	Category() string

	// Evaluate checks the rule against the given context snapshot.
	Evaluate(ctx context.Context, rctx *Context) Result

	// Validate checks the rule's configuration for structural errors.
	// Rules that fail validation are rejected at registration.
	Validate() error

	// Metadata returns descriptive rule metadata for diagnostics.
	Metadata() Metadata

	// Config returns the rule's serializable configuration.
	Config() Config
}

// Result is the outcome of a single rule evaluation. It is a tri-state:
// passed, blocked, or skipped. Build Results only through Pass, Block and
// Skip so that Passed == !Blocked holds for the two determinate states and
// "skipped" stays a distinct outcome rather than something inferred.
type Result struct {
	Passed  bool
	Blocked bool
	Skipped bool

	// Reason is the human-readable explanation for the outcome. For a
	// blocked composite rule it carries the first failing condition's own
	// failure reason.
	Reason string

	// RequiredPermissions lists permissions whose absence caused a block.
	RequiredPermissions []string

	Metadata Metadata
}

// Pass creates a passing result.
func Pass(reason string) Result {
	return Result{Passed: true, Reason: reason, Metadata: make(Metadata)}
}

// Block creates a blocking result.
func Block(reason string) Result {
	return Result{Blocked: true, Reason: reason, Metadata: make(Metadata)}
}

// Skip creates an indeterminate result: the rule did not apply to this
// context. Skipped results count as neither passed nor failed.
func Skip(reason string) Result {
	return Result{Skipped: true, Reason: reason, Metadata: make(Metadata)}
}

// WithMetadata adds a metadata entry and returns the result for chaining.
func (r Result) WithMetadata(key string, value Value) Result {
	if r.Metadata == nil {
		r.Metadata = make(Metadata, 1)
	}
	r.Metadata[key] = value
	return r
}

// WithRequiredPermissions records the permissions whose absence caused a
// block and returns the result for chaining.
func (r Result) WithRequiredPermissions(names ...string) Result {
	r.RequiredPermissions = append(r.RequiredPermissions, names...)
	return r
}
