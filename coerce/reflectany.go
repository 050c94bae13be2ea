package coerce

import (
	"fmt"
	"reflect"
	"strings"

	"go.jacobcolvin.com/flexparse/flexvalue"
)

// CoerceAny is the generic, reflect-based deserializer of SPEC_FULL.md §D.3
// (the "Generic Serde-style" entry point of spec §4.12): it walks an
// arbitrary Go struct type applying the same primitive/container/struct
// algorithms the registered LlmDeserialize adapters use, for callers who
// did not register target with the dispatch table. Best-effort and slower
// than a registered adapter, per spec §4.12.
func CoerceAny(ctx *Context, v flexvalue.JSONValue, target reflect.Type) (reflect.Value, error) {
	for target.Kind() == reflect.Pointer {
		target = target.Elem()
	}

	switch target.Kind() {
	case reflect.String:
		s, err := String(ctx, v)
		if err != nil {
			return reflect.Value{}, err
		}

		return reflect.ValueOf(s).Convert(target), nil

	case reflect.Bool:
		b, err := Bool(ctx, v)
		if err != nil {
			return reflect.Value{}, err
		}

		return reflect.ValueOf(b).Convert(target), nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, err := Int(ctx, v)
		if err != nil {
			return reflect.Value{}, err
		}

		out := reflect.New(target).Elem()
		out.SetInt(i)

		return out, nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		i, err := Int(ctx, v)
		if err != nil {
			return reflect.Value{}, err
		}

		out := reflect.New(target).Elem()
		out.SetUint(uint64(i))

		return out, nil

	case reflect.Float32, reflect.Float64:
		f, err := Float(ctx, v)
		if err != nil {
			return reflect.Value{}, err
		}

		out := reflect.New(target).Elem()
		out.SetFloat(f)

		return out, nil

	case reflect.Slice:
		return coerceAnySlice(ctx, v, target)

	case reflect.Map:
		return coerceAnyMap(ctx, v, target)

	case reflect.Struct:
		return coerceAnyStruct(ctx, v, target)

	default:
		return reflect.Value{}, &TypeMismatchError{Expected: target.String(), Found: v.Kind.String()}
	}
}

func coerceAnySlice(ctx *Context, v flexvalue.JSONValue, target reflect.Type) (reflect.Value, error) {
	elemType := target.Elem()

	var items []flexvalue.JSONValue

	switch v.Kind {
	case flexvalue.KindArray:
		items = v.Array
	default:
		ctx.Record(flexvalue.SingleToArray())
		items = []flexvalue.JSONValue{v}
	}

	out := reflect.MakeSlice(target, 0, len(items))

	for i, item := range items {
		ev, err := CoerceAny(ctx, item, elemType)
		if err != nil {
			ctx.Record(flexvalue.ArrayItemParseError(i, err.Error()))
			continue
		}

		out = reflect.Append(out, ev)
	}

	return out, nil
}

func coerceAnyMap(ctx *Context, v flexvalue.JSONValue, target reflect.Type) (reflect.Value, error) {
	if v.Kind != flexvalue.KindObject || v.Object == nil {
		return reflect.Value{}, &TypeMismatchError{Expected: target.String(), Found: v.Kind.String()}
	}

	valType := target.Elem()
	out := reflect.MakeMapWithSize(target, v.Object.Len())

	for _, k := range v.Object.Keys() {
		raw, _ := v.Object.Get(k)

		ev, err := CoerceAny(ctx, raw, valType)
		if err != nil {
			continue
		}

		out.SetMapIndex(reflect.ValueOf(k), ev)
	}

	return out, nil
}

// coerceAnyStruct applies the §4.8 field-matcher algorithm generically,
// using each exported field's Go name (or its `json` tag name, if present)
// as the expected field name.
func coerceAnyStruct(ctx *Context, v flexvalue.JSONValue, target reflect.Type) (reflect.Value, error) {
	if ctx.Visited(false, target.String(), v) {
		return reflect.Value{}, &CircularReferenceError{TypeName: target.String()}
	}

	if ctx.DepthExceeded() {
		return reflect.Value{}, &DepthLimitError{Depth: ctx.Depth(), Max: ctx.maxDepth}
	}

	if v.Kind != flexvalue.KindObject || v.Object == nil {
		return reflect.Value{}, &TypeMismatchError{Expected: target.String(), Found: v.Kind.String()}
	}

	next := ctx.Descend(false, target.String(), target.Name(), v)

	out := reflect.New(target).Elem()
	keys := v.Object.Keys()
	consumed := make(map[string]bool, len(keys))

	for i := 0; i < target.NumField(); i++ {
		sf := target.Field(i)
		if sf.PkgPath != "" {
			continue
		}

		name, optional := jsonFieldName(sf)

		k, _, ok := MatchField(name, keys, false)
		if !ok {
			continue
		}

		if k != name {
			next.Record(flexvalue.FieldNameCaseChanged(k, name))
		}

		consumed[k] = true

		raw, _ := v.Object.Get(k)

		fieldType := sf.Type
		for fieldType.Kind() == reflect.Pointer {
			fieldType = fieldType.Elem()
		}

		fv, err := CoerceAny(next, raw, fieldType)
		if err != nil {
			if optional {
				next.Record(flexvalue.DefaultValueInserted(name))
				continue
			}

			return reflect.Value{}, err
		}

		if err := checkConstraints(next, Field{Name: name, Constraints: next.ConstraintsFor(name)}, fv.Interface()); err != nil {
			return reflect.Value{}, err
		}

		if sf.Type.Kind() == reflect.Pointer {
			ptr := reflect.New(fieldType)
			ptr.Elem().Set(fv)
			out.Field(i).Set(ptr)
		} else {
			out.Field(i).Set(fv)
		}
	}

	for _, k := range keys {
		if !consumed[k] {
			next.Record(flexvalue.ExtraKey(k))
		}
	}

	ctx.transformations = next.transformations
	ctx.constraints = next.constraints

	return out, nil
}

func jsonFieldName(sf reflect.StructField) (name string, optional bool) {
	tag := sf.Tag.Get("json")
	parts := strings.Split(tag, ",")

	for _, p := range parts[1:] {
		if p == "omitempty" {
			optional = true
		}
	}

	if parts[0] != "" && parts[0] != "-" {
		return parts[0], optional
	}

	return sf.Name, optional
}

// NameOf is a small helper used by the root flexparse package to render a
// reflect.Type for error messages without importing reflect itself.
func NameOf(t reflect.Type) string {
	return fmt.Sprintf("%s.%s", t.PkgPath(), t.Name())
}
