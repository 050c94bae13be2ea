// Package coerce implements the type-directed coercion engine of spec
// §4.6–§4.11: two-mode (strict/lenient) primitive, container, struct,
// enum, and union coercion, the fuzzy field matcher, and circular
// reference / depth-limit defense via an immutable-under-recursion
// Context.
package coerce

import (
	"log/slog"

	"go.jacobcolvin.com/flexparse/flexconstraint"
	"go.jacobcolvin.com/flexparse/flexvalue"
)

// DefaultMaxDepth is the default coercion depth cap (§3, §5).
const DefaultMaxDepth = 100

// Option configures a Context, following this repository's functional
// option convention (see magicschema.Option, flexparser.Option).
type Option func(*Context)

// WithMaxDepth overrides the coercion depth cap (default DefaultMaxDepth,
// §3, §5).
func WithMaxDepth(n int) Option {
	return func(c *Context) {
		if n > 0 {
			c.maxDepth = n
		}
	}
}

// WithLogger sets the logger used for constraint-assertion-failure
// diagnostics. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(c *Context) { c.log = l }
}

// WithConstraints registers named constraints keyed by field path
// (ctx.Scope() + "." + field), consulted by CoerceAny's generic struct
// coercion, which — unlike registered StructDef.Fields — has no other way
// to learn a field's constraints (§D.1).
func WithConstraints(byPath map[string][]flexconstraint.Constraint) Option {
	return func(c *Context) { c.constraintsByPath = byPath }
}

// visitedKey identifies one (type name, structural value) pair in a
// Context's visited set (§3: "two disjoint visited sets (type_name,
// value)").
type visitedKey struct {
	typeName string
	valueKey string
}

// Context carries per-call coercion state. It is immutable under
// recursion: [Context.Descend] returns a new Context with one more visited
// pair and the depth counter incremented, leaving the receiver untouched,
// matching spec §3's "functional" visitor discipline ("descent returns a
// new context; the caller's context is untouched").
type Context struct {
	strictVisited  map[visitedKey]bool
	lenientVisited map[visitedKey]bool
	depth          int
	maxDepth       int
	scope          []string

	transformations []flexvalue.Transformation
	constraints     []flexconstraint.Result

	log               *slog.Logger
	constraintsByPath map[string][]flexconstraint.Constraint
}

// New returns a root Context with DefaultMaxDepth and slog.Default(),
// adjusted by opts.
func New(opts ...Option) *Context {
	c := &Context{
		strictVisited:  map[visitedKey]bool{},
		lenientVisited: map[visitedKey]bool{},
		maxDepth:       DefaultMaxDepth,
		scope:          []string{"<root>"},
		log:            slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// ConstraintsFor returns the constraints registered (via WithConstraints)
// for the field path c.Scope()+"."+field.
func (c *Context) ConstraintsFor(field string) []flexconstraint.Constraint {
	return c.constraintsByPath[c.Scope()+"."+field]
}

// Logger returns the configured logger.
func (c *Context) Logger() *slog.Logger { return c.log }

// Scope renders the current scope trail, e.g. "<root>.user.address" (§3).
func (c *Context) Scope() string {
	out := c.scope[0]
	for _, s := range c.scope[1:] {
		out += "." + s
	}

	return out
}

// DepthExceeded reports whether c's depth has reached its cap (§4.8 "Cycle
// defense", §8.7).
func (c *Context) DepthExceeded() bool { return c.depth >= c.maxDepth }

// Visited reports whether (typeName, value) is already in the visited set
// for the given mode.
func (c *Context) Visited(strict bool, typeName string, value flexvalue.JSONValue) bool {
	set := c.setFor(strict)
	return set[visitedKey{typeName: typeName, valueKey: value.Key()}]
}

func (c *Context) setFor(strict bool) map[visitedKey]bool {
	if strict {
		return c.strictVisited
	}

	return c.lenientVisited
}

func cloneSet(m map[visitedKey]bool) map[visitedKey]bool {
	out := make(map[visitedKey]bool, len(m)+1)
	for k := range m {
		out[k] = true
	}

	return out
}

// Descend returns a new Context with (typeName, value) inserted into the
// visited set for the given mode, the depth counter incremented, and field
// appended to the scope trail. The receiver is left unmodified.
func (c *Context) Descend(strict bool, typeName, field string, value flexvalue.JSONValue) *Context {
	next := &Context{
		strictVisited:  cloneSet(c.strictVisited),
		lenientVisited: cloneSet(c.lenientVisited),
		depth:          c.depth + 1,
		maxDepth:       c.maxDepth,
		scope:          append(append([]string(nil), c.scope...), field),

		transformations: append([]flexvalue.Transformation(nil), c.transformations...),
		constraints:     append([]flexconstraint.Result(nil), c.constraints...),

		log:               c.log,
		constraintsByPath: c.constraintsByPath,
	}

	next.setFor(strict)[visitedKey{typeName: typeName, valueKey: value.Key()}] = true

	return next
}

// Record appends a transformation to this context's accumulator.
func (c *Context) Record(t flexvalue.Transformation) {
	c.transformations = append(c.transformations, t)
}

// Transformations returns the accumulated transformation log.
func (c *Context) Transformations() []flexvalue.Transformation {
	return c.transformations
}

// RecordConstraint appends a constraint validation result.
func (c *Context) RecordConstraint(r flexconstraint.Result) {
	c.constraints = append(c.constraints, r)
}

// ConstraintResults returns the accumulated constraint validation log.
func (c *Context) ConstraintResults() []flexconstraint.Result {
	return c.constraints
}

// Depth returns the current nesting depth.
func (c *Context) Depth() int { return c.depth }
