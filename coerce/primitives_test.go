package coerce_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/flexparse/coerce"
	"go.jacobcolvin.com/flexparse/flexvalue"
)

func TestInt(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input flexvalue.JSONValue
		want  int64
	}{
		"exact int":            {input: flexvalue.Int(42), want: 42},
		"float rounds":         {input: flexvalue.Float(2.6), want: 3},
		"numeric string":       {input: flexvalue.String("42"), want: 42},
		"currency string":      {input: flexvalue.String("$1,234"), want: 1234},
		"percent string":       {input: flexvalue.String("50%"), want: 50},
		"fraction string":      {input: flexvalue.String("3/2"), want: 2},
		"single-elem array":    {input: flexvalue.Arr(flexvalue.Int(7)), want: 7},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			ctx := coerce.New()

			got, err := coerce.Int(ctx, tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestInt_numericStringRecordsStringToNumber(t *testing.T) {
	t.Parallel()

	ctx := coerce.New()

	got, err := coerce.Int(ctx, flexvalue.String("25"))
	require.NoError(t, err)
	assert.Equal(t, int64(25), got)

	transformations := ctx.Transformations()
	require.Len(t, transformations, 1)
	assert.Equal(t, flexvalue.TransformStringToNumber, transformations[0].Kind)
}

func TestInt_errors(t *testing.T) {
	t.Parallel()

	ctx := coerce.New()

	_, err := coerce.Int(ctx, flexvalue.String("not a number"))
	require.Error(t, err)
}

func TestTryInt(t *testing.T) {
	t.Parallel()

	_, ok := coerce.TryInt(flexvalue.String("42"))
	assert.False(t, ok, "strict int must not coerce a string")

	v, ok := coerce.TryInt(flexvalue.Int(9))
	assert.True(t, ok)
	assert.Equal(t, int64(9), v)
}

func TestBool(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input flexvalue.JSONValue
		want  bool
	}{
		"exact true":    {input: flexvalue.Bool(true), want: true},
		"string true":   {input: flexvalue.String("true"), want: true},
		"string False":  {input: flexvalue.String("False"), want: false},
		"nonzero int":   {input: flexvalue.Int(1), want: true},
		"zero float":    {input: flexvalue.Float(0), want: false},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			ctx := coerce.New()

			got, err := coerce.Bool(ctx, tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestString(t *testing.T) {
	t.Parallel()

	ctx := coerce.New()

	got, err := coerce.String(ctx, flexvalue.Int(42))
	require.NoError(t, err)
	assert.Equal(t, "42", got)

	ctx2 := coerce.New()
	_, err = coerce.String(ctx2, flexvalue.Null())
	require.Error(t, err)
}
