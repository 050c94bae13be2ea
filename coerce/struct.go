package coerce

import (
	"fmt"

	"go.jacobcolvin.com/flexparse/flexconstraint"
	"go.jacobcolvin.com/flexparse/flexvalue"
)

// Field is one declared field of a StructDef (§4.8's "struct's declarative
// field list").
type Field struct {
	Name        string
	Required    bool
	Aliases     []string
	Constraints []flexconstraint.Constraint

	// TryCoerce is the strict per-field dispatcher; Coerce is the lenient
	// one. Both box the coerced value as `any` — the generated (or
	// hand-registered) adapter knows how to unbox it into the concrete
	// struct field.
	TryCoerce func(flexvalue.JSONValue) (any, bool)
	Coerce    func(*Context, flexvalue.JSONValue) (any, error)
}

// StructDef describes a target struct type for object coercion (§4.8): its
// name (for cycle detection and error messages), its fields in declaration
// order, and an Assemble closure that builds the final `any` from the
// per-field values this package produces.
type StructDef struct {
	TypeName                 string
	Fields                   []Field
	AllowSubstringFieldMatch bool
	Assemble                 func(values map[string]any) (any, error)
}

// TryStruct is the strict struct pass of §4.8 ("try_cast"): only applicable
// to object values; every field must be present by exact key match, every
// field's strict coercion must succeed, and the object must have no extra
// keys. Records no transformations.
func TryStruct(def StructDef, v flexvalue.JSONValue) (any, bool) {
	if v.Kind != flexvalue.KindObject || v.Object == nil {
		return nil, false
	}

	if v.Object.Len() != len(def.Fields) {
		return nil, false
	}

	values := make(map[string]any, len(def.Fields))

	for _, f := range def.Fields {
		raw, ok := v.Object.Get(f.Name)
		if !ok {
			return nil, false
		}

		val, ok := f.TryCoerce(raw)
		if !ok {
			return nil, false
		}

		values[f.Name] = val
	}

	out, err := def.Assemble(values)
	if err != nil {
		return nil, false
	}

	return out, true
}

// Struct is the lenient object-coercion algorithm of §4.8, covering cycle
// defense, array-to-struct positional assignment, single-field implied-key
// coercion, and object-to-struct field-matcher-based assignment, in that
// order — matching the "BAML two-mode" dispatch spec.md describes (strict
// first at the caller, via TryStruct; this is the fallback).
func Struct(ctx *Context, def StructDef, v flexvalue.JSONValue) (any, error) {
	if ctx.Visited(false, def.TypeName, v) {
		return nil, &CircularReferenceError{TypeName: def.TypeName}
	}

	if ctx.DepthExceeded() {
		return nil, &DepthLimitError{Depth: ctx.Depth(), Max: ctx.maxDepth}
	}

	next := ctx.Descend(false, def.TypeName, def.TypeName, v)

	var (
		out any
		err error
	)

	switch {
	case v.Kind == flexvalue.KindArray:
		out, err = structFromArray(next, def, v.Array)
	case len(def.Fields) == 1 && v.Kind != flexvalue.KindObject:
		out, err = structFromSingleField(next, def, v)
	case v.Kind == flexvalue.KindObject:
		out, err = structFromObject(next, def, v)
	default:
		return nil, &TypeMismatchError{Expected: def.TypeName, Found: v.Kind.String()}
	}

	if err != nil {
		return nil, err
	}

	ctx.transformations = next.transformations
	ctx.constraints = next.constraints

	return out, nil
}

// structFromArray implements §4.8's array-to-struct coercion: positional
// assignment when the target has N fields with R required, R <= N, and the
// array length >= R.
func structFromArray(ctx *Context, def StructDef, items []flexvalue.JSONValue) (any, error) {
	required := 0

	for _, f := range def.Fields {
		if f.Required {
			required++
		}
	}

	if len(items) < required {
		return nil, &MissingFieldError{Field: fmt.Sprintf("%s: need >= %d positional values, got %d", def.TypeName, required, len(items))}
	}

	values := make(map[string]any, len(def.Fields))

	for i, f := range def.Fields {
		if i >= len(items) {
			if !f.Required {
				ctx.Record(flexvalue.DefaultValueInserted(f.Name))
				continue
			}

			return nil, &MissingFieldError{Field: f.Name}
		}

		val, err := f.Coerce(ctx, items[i])
		if err != nil {
			if !f.Required {
				ctx.Record(flexvalue.DefaultButHadUnparseableValue(f.Name, "", err.Error()))
				continue
			}

			return nil, err
		}

		if err := checkConstraints(ctx, f, val); err != nil {
			return nil, err
		}

		ctx.Record(flexvalue.FirstMatch(i, len(def.Fields)))

		values[f.Name] = val
	}

	return def.Assemble(values)
}

// structFromSingleField implements §4.8's single-field implicit-key
// coercion: the whole non-object value is attempted for the target's one
// field.
func structFromSingleField(ctx *Context, def StructDef, v flexvalue.JSONValue) (any, error) {
	f := def.Fields[0]

	val, err := f.Coerce(ctx, v)
	if err != nil {
		return nil, err
	}

	if err := checkConstraints(ctx, f, val); err != nil {
		return nil, err
	}

	ctx.Record(flexvalue.ImpliedKey(f.Name))

	return def.Assemble(map[string]any{f.Name: val})
}

// structFromObject implements §4.8's object-to-struct lenient matching via
// the field matcher (§4.9), then records ExtraKey for every unconsumed
// object key.
func structFromObject(ctx *Context, def StructDef, v flexvalue.JSONValue) (any, error) {
	keys := v.Object.Keys()
	consumed := make(map[string]bool, len(keys))

	values := make(map[string]any, len(def.Fields))

	for _, f := range def.Fields {
		candidates := append([]string{f.Name}, f.Aliases...)

		var (
			foundKey string
			found    bool
		)

		for _, name := range candidates {
			if k, _, ok := MatchField(name, keys, def.AllowSubstringFieldMatch); ok {
				foundKey, found = k, true
				break
			}
		}

		if !found {
			if !f.Required {
				ctx.Record(flexvalue.DefaultValueInserted(f.Name))
				continue
			}

			return nil, &MissingFieldError{Field: f.Name}
		}

		if foundKey != f.Name {
			ctx.Record(flexvalue.FieldNameCaseChanged(foundKey, f.Name))
		}

		consumed[foundKey] = true

		raw, _ := v.Object.Get(foundKey)

		val, err := f.Coerce(ctx, raw)
		if err != nil {
			if !f.Required {
				ctx.Record(flexvalue.DefaultValueInserted(f.Name))
				continue
			}

			return nil, err
		}

		if err := checkConstraints(ctx, f, val); err != nil {
			return nil, err
		}

		values[f.Name] = val
	}

	for _, k := range keys {
		if !consumed[k] {
			ctx.Record(flexvalue.ExtraKey(k))
		}
	}

	return def.Assemble(values)
}

// checkConstraints evaluates f's declared constraints against val (§D.1). A
// failing Assert aborts the branch; a failing Check is recorded and
// coercion proceeds.
func checkConstraints(ctx *Context, f Field, val any) error {
	for _, c := range f.Constraints {
		r := flexconstraint.Evaluate(c, val)
		ctx.RecordConstraint(r)
		ctx.Record(flexvalue.ConstraintChecked(c.Name, r.Passed, c.Level == flexconstraint.Assert))

		if !r.Passed && c.Level == flexconstraint.Assert {
			ctx.log.Warn("constraint assertion failed", "constraint", c.Name, "scope", ctx.Scope())

			return fmt.Errorf("%w: %s", ErrInvalidValue, r.Error())
		}
	}

	return nil
}
