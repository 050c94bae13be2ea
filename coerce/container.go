package coerce

import (
	"fmt"

	"go.jacobcolvin.com/flexparse/flexvalue"
)

// ElemCoercer coerces a single JSONValue to T, in either mode. Struct- and
// primitive-coercion call sites pass closures built from TryInt/Int, a
// registered dispatch entry, or a nested call into CoerceAny.
type ElemCoercer[T any] struct {
	Try     func(flexvalue.JSONValue) (T, bool)
	Lenient func(*Context, flexvalue.JSONValue) (T, error)
}

// TrySlice is strict []T coercion (§4.7): value must be Array; every
// element must coerce strictly.
func TrySlice[T any](v flexvalue.JSONValue, elem ElemCoercer[T]) ([]T, bool) {
	if v.Kind != flexvalue.KindArray {
		return nil, false
	}

	out := make([]T, 0, len(v.Array))

	for _, e := range v.Array {
		t, ok := elem.Try(e)
		if !ok {
			return nil, false
		}

		out = append(out, t)
	}

	return out, true
}

// Slice is lenient []T coercion (§4.7): array elements coerced leniently;
// per-element failures are recorded via ArrayItemParseError and skipped
// rather than aborting the whole slice. A non-array value is wrapped in a
// 1-element slice with SingleToArray recorded.
func Slice[T any](ctx *Context, v flexvalue.JSONValue, elem ElemCoercer[T]) ([]T, error) {
	if v.Kind != flexvalue.KindArray {
		ctx.Record(flexvalue.SingleToArray())

		t, err := elem.Lenient(ctx, v)
		if err != nil {
			return nil, err
		}

		return []T{t}, nil
	}

	out := make([]T, 0, len(v.Array))

	for i, e := range v.Array {
		t, err := elem.Lenient(ctx, e)
		if err != nil {
			ctx.Record(flexvalue.ArrayItemParseError(i, err.Error()))
			continue
		}

		out = append(out, t)
	}

	if len(out) == 0 && len(v.Array) > 0 {
		return nil, &TypeMismatchError{
			Expected: "at least one parseable element",
			Found:    fmt.Sprintf("%d elements, none parsed", len(v.Array)),
		}
	}

	return out, nil
}

// TryMap is strict map[K]V coercion (§4.7): value must be Object; every key
// and value coerces strictly. Keys are preserved verbatim (never passed
// through the field matcher or case-normalized).
func TryMap[V any](v flexvalue.JSONValue, val ElemCoercer[V]) (map[string]V, bool) {
	if v.Kind != flexvalue.KindObject || v.Object == nil {
		return nil, false
	}

	out := make(map[string]V, v.Object.Len())

	for _, k := range v.Object.Keys() {
		raw, _ := v.Object.Get(k)

		t, ok := val.Try(raw)
		if !ok {
			return nil, false
		}

		out[k] = t
	}

	return out, true
}

// Map is lenient map[K]V coercion (§4.7): iterate entries, skip entries
// whose value fails, retain successful ones. Keys are preserved verbatim.
func Map[V any](ctx *Context, v flexvalue.JSONValue, val ElemCoercer[V]) (map[string]V, error) {
	if v.Kind != flexvalue.KindObject || v.Object == nil {
		return nil, &TypeMismatchError{Expected: "object", Found: v.Kind.String()}
	}

	out := make(map[string]V, v.Object.Len())

	for _, k := range v.Object.Keys() {
		raw, _ := v.Object.Get(k)

		t, err := val.Lenient(ctx, raw)
		if err != nil {
			continue
		}

		out[k] = t
	}

	return out, nil
}
