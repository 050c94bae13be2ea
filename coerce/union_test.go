package coerce_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/flexparse/coerce"
	"go.jacobcolvin.com/flexparse/flexvalue"
)

func intOrStringVariants() []coerce.Variant {
	return []coerce.Variant{
		{
			Name: "Int",
			TryCoerce: func(v flexvalue.JSONValue) (any, bool) {
				return coerce.TryInt(v)
			},
			Coerce: func(ctx *coerce.Context, v flexvalue.JSONValue) (any, error) {
				return coerce.Int(ctx, v)
			},
		},
		{
			Name: "String",
			TryCoerce: func(v flexvalue.JSONValue) (any, bool) {
				return coerce.TryString(v)
			},
			Coerce: func(ctx *coerce.Context, v flexvalue.JSONValue) (any, error) {
				return coerce.String(ctx, v)
			},
		},
	}
}

func TestUnion_strictPass(t *testing.T) {
	t.Parallel()

	ctx := coerce.New()

	val, name, err := coerce.Union(ctx, flexvalue.Int(5), intOrStringVariants())
	require.NoError(t, err)
	assert.Equal(t, "Int", name)
	assert.Equal(t, int64(5), val)
}

func TestUnion_lenientPicksLowerScore(t *testing.T) {
	t.Parallel()

	variants := []coerce.Variant{
		{
			Name: "Int",
			TryCoerce: func(v flexvalue.JSONValue) (any, bool) {
				return coerce.TryInt(v)
			},
			Coerce: func(ctx *coerce.Context, v flexvalue.JSONValue) (any, error) {
				return coerce.Int(ctx, v)
			},
		},
		{
			Name: "Bool",
			TryCoerce: func(v flexvalue.JSONValue) (any, bool) {
				return coerce.TryBool(v)
			},
			Coerce: func(ctx *coerce.Context, v flexvalue.JSONValue) (any, error) {
				return coerce.Bool(ctx, v)
			},
		},
	}

	ctx := coerce.New()

	// Neither variant strictly matches a float; Bool's float->bool branch
	// records no transformation while Int's float->int branch records
	// FloatToInt, so Bool must win the lenient pass on score alone.
	val, name, err := coerce.Union(ctx, flexvalue.Float(2.5), variants)
	require.NoError(t, err)
	assert.Equal(t, "Bool", name)
	assert.Equal(t, true, val)
}

func TestUnion_noMatch(t *testing.T) {
	t.Parallel()

	ctx := coerce.New()

	variants := []coerce.Variant{
		{
			Name: "Int",
			TryCoerce: func(v flexvalue.JSONValue) (any, bool) {
				return coerce.TryInt(v)
			},
			Coerce: func(ctx *coerce.Context, v flexvalue.JSONValue) (any, error) {
				return coerce.Int(ctx, v)
			},
		},
	}

	_, _, err := coerce.Union(ctx, flexvalue.Null(), variants)
	require.Error(t, err)
}
