package coerce_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/flexparse/coerce"
	"go.jacobcolvin.com/flexparse/flexvalue"
)

type point struct {
	X int64
	Y int64
}

func pointDef() coerce.StructDef {
	intField := func(name string, required bool) coerce.Field {
		return coerce.Field{
			Name:     name,
			Required: required,
			TryCoerce: func(v flexvalue.JSONValue) (any, bool) {
				return coerce.TryInt(v)
			},
			Coerce: func(ctx *coerce.Context, v flexvalue.JSONValue) (any, error) {
				return coerce.Int(ctx, v)
			},
		}
	}

	return coerce.StructDef{
		TypeName: "point",
		Fields:   []coerce.Field{intField("X", true), intField("Y", true)},
		Assemble: func(values map[string]any) (any, error) {
			p := point{}
			if x, ok := values["X"].(int64); ok {
				p.X = x
			}

			if y, ok := values["Y"].(int64); ok {
				p.Y = y
			}

			return p, nil
		},
	}
}

func obj(kvs ...any) flexvalue.JSONValue {
	m := flexvalue.NewOrderedMap()
	for i := 0; i+1 < len(kvs); i += 2 {
		m.Set(kvs[i].(string), kvs[i+1].(flexvalue.JSONValue))
	}

	return flexvalue.Obj(m)
}

func TestTryStruct(t *testing.T) {
	t.Parallel()

	def := pointDef()

	v := obj("X", flexvalue.Int(1), "Y", flexvalue.Int(2))

	out, ok := coerce.TryStruct(def, v)
	require.True(t, ok)
	assert.Equal(t, point{X: 1, Y: 2}, out)
}

func TestTryStruct_rejectsExtraKeys(t *testing.T) {
	t.Parallel()

	def := pointDef()
	v := obj("X", flexvalue.Int(1), "Y", flexvalue.Int(2), "Z", flexvalue.Int(3))

	_, ok := coerce.TryStruct(def, v)
	assert.False(t, ok)
}

func TestStruct_arrayPositional(t *testing.T) {
	t.Parallel()

	def := pointDef()
	ctx := coerce.New()

	out, err := coerce.Struct(ctx, def, flexvalue.Arr(flexvalue.Int(3), flexvalue.Int(4)))
	require.NoError(t, err)
	assert.Equal(t, point{X: 3, Y: 4}, out)
}

func TestStruct_fieldMatcherWithCaseMismatch(t *testing.T) {
	t.Parallel()

	def := pointDef()
	ctx := coerce.New()

	v := obj("x", flexvalue.Int(5), "y", flexvalue.Int(6))

	out, err := coerce.Struct(ctx, def, v)
	require.NoError(t, err)
	assert.Equal(t, point{X: 5, Y: 6}, out)
}

func TestStruct_missingRequiredField(t *testing.T) {
	t.Parallel()

	def := pointDef()
	ctx := coerce.New()

	v := obj("X", flexvalue.Int(1))

	_, err := coerce.Struct(ctx, def, v)
	require.Error(t, err)
}

// selfDef is a recursive StructDef whose one field naively recoerces the
// *same* value against itself, simulating a buggy adapter that fails to
// descend into a sub-value. coerce.Struct must detect the repeated
// (type, value) pair and fail with CircularReferenceError rather than
// recursing until the stack (or the depth limit) gives out.
func selfDef() coerce.StructDef {
	return coerce.StructDef{
		TypeName: "self",
		Fields: []coerce.Field{
			{
				Name:     "Self",
				Required: true,
				TryCoerce: func(flexvalue.JSONValue) (any, bool) {
					return nil, false
				},
				Coerce: func(ctx *coerce.Context, v flexvalue.JSONValue) (any, error) {
					return coerce.Struct(ctx, selfDef(), v)
				},
			},
		},
		Assemble: func(values map[string]any) (any, error) {
			return values, nil
		},
	}
}

func TestStruct_circularReferenceDefense(t *testing.T) {
	t.Parallel()

	ctx := coerce.New()

	v := obj("Self", flexvalue.Int(1))

	_, err := coerce.Struct(ctx, selfDef(), v)
	require.Error(t, err)

	var circErr *coerce.CircularReferenceError
	assert.ErrorAs(t, err, &circErr)
}
