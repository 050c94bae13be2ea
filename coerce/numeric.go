package coerce

import (
	"reflect"

	"golang.org/x/exp/constraints"

	"go.jacobcolvin.com/flexparse/flexvalue"
)

// Numeric is the lenient numeric coercion entry point for hand-registered
// adapters (flexparse.Register) whose field type is some concrete Go
// integer or float kind. It dispatches to Int or Float (§4.6) and converts
// the result to T, written generically over golang.org/x/exp/constraints
// the way generic numeric code in the ecosystem is, instead of
// hand-duplicating one branch per int/int8/.../float32/float64 — the same
// motivation coerce.CoerceAny has for going through reflect.Kind instead.
func Numeric[T constraints.Integer | constraints.Float](ctx *Context, v flexvalue.JSONValue) (T, error) {
	var zero T

	if isFloatKind[T]() {
		f, err := Float(ctx, v)
		if err != nil {
			return zero, err
		}

		return T(f), nil
	}

	i, err := Int(ctx, v)
	if err != nil {
		return zero, err
	}

	return T(i), nil
}

// TryNumeric is the strict counterpart of Numeric.
func TryNumeric[T constraints.Integer | constraints.Float](v flexvalue.JSONValue) (T, bool) {
	var zero T

	if isFloatKind[T]() {
		f, ok := TryFloat(v)
		if !ok {
			return zero, false
		}

		return T(f), true
	}

	i, ok := TryInt(v)
	if !ok {
		return zero, false
	}

	return T(i), true
}

func isFloatKind[T constraints.Integer | constraints.Float]() bool {
	switch reflect.TypeFor[T]().Kind() {
	case reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}
