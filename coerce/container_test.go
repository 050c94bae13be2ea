package coerce_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/flexparse/coerce"
	"go.jacobcolvin.com/flexparse/flexvalue"
)

func intElem() coerce.ElemCoercer[int64] {
	return coerce.ElemCoercer[int64]{
		Try: func(v flexvalue.JSONValue) (int64, bool) {
			return coerce.TryInt(v)
		},
		Lenient: func(ctx *coerce.Context, v flexvalue.JSONValue) (int64, error) {
			return coerce.Int(ctx, v)
		},
	}
}

func TestTrySlice(t *testing.T) {
	t.Parallel()

	got, ok := coerce.TrySlice(flexvalue.Arr(flexvalue.Int(1), flexvalue.Int(2)), intElem())
	require.True(t, ok)
	assert.Equal(t, []int64{1, 2}, got)

	_, ok = coerce.TrySlice(flexvalue.Arr(flexvalue.String("1")), intElem())
	assert.False(t, ok, "strict slice coercion must not coerce string elements")
}

func TestSlice_wrapsNonArray(t *testing.T) {
	t.Parallel()

	ctx := coerce.New()

	got, err := coerce.Slice(ctx, flexvalue.Int(5), intElem())
	require.NoError(t, err)
	assert.Equal(t, []int64{5}, got)
}

func TestSlice_skipsUnparseableElements(t *testing.T) {
	t.Parallel()

	ctx := coerce.New()

	v := flexvalue.Arr(flexvalue.Int(1), flexvalue.String("not a number"), flexvalue.Int(3))

	got, err := coerce.Slice(ctx, v, intElem())
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 3}, got)
}

func TestSlice_errorsWhenNoElementParses(t *testing.T) {
	t.Parallel()

	ctx := coerce.New()

	v := flexvalue.Arr(flexvalue.String("not a number"), flexvalue.String("also not a number"))

	_, err := coerce.Slice(ctx, v, intElem())
	require.Error(t, err, "a non-empty array where every element fails to parse must error, not silently return an empty slice")
}

func TestMap(t *testing.T) {
	t.Parallel()

	ctx := coerce.New()

	m := flexvalue.NewOrderedMap()
	m.Set("a", flexvalue.Int(1))
	m.Set("b", flexvalue.Int(2))

	got, err := coerce.Map(ctx, flexvalue.Obj(m), intElem())
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"a": 1, "b": 2}, got)
}
