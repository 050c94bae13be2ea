package jsonstrategy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/flexparse/flexvalue"
	"go.jacobcolvin.com/flexparse/jsonstrategy"
)

func TestRawPrimitive(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input    string
		wantKind flexvalue.JSONKind
	}{
		"bool true":          {input: "true", wantKind: flexvalue.KindBool},
		"bool false case":    {input: "FALSE", wantKind: flexvalue.KindBool},
		"plain integer":      {input: "42", wantKind: flexvalue.KindInt},
		"comma grouped":      {input: "1,234", wantKind: flexvalue.KindInt},
		"currency float":     {input: "$19.99", wantKind: flexvalue.KindFloat},
		"fraction":           {input: "3/4", wantKind: flexvalue.KindFloat},
		"unambiguous prose":  {input: "The answer is true, I promise", wantKind: flexvalue.KindBool},
		"bare string":        {input: "hello world", wantKind: flexvalue.KindString},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			fv, ok := jsonstrategy.RawPrimitive(tc.input)
			require.True(t, ok)
			assert.Equal(t, tc.wantKind, fv.Value.Kind)
		})
	}
}

func TestRawPrimitive_rejectsStructural(t *testing.T) {
	t.Parallel()

	_, ok := jsonstrategy.RawPrimitive(`{"a": 1}`)
	assert.False(t, ok)

	_, ok = jsonstrategy.RawPrimitive(`[1, 2]`)
	assert.False(t, ok)
}

func TestRawPrimitive_ambiguousBoolFallsBackToString(t *testing.T) {
	t.Parallel()

	// Both "true" and "false" appear, so the extraction must not guess and
	// instead falls through to the whole-input string case.
	fv, ok := jsonstrategy.RawPrimitive("it's either true or false")
	require.True(t, ok)
	assert.Equal(t, flexvalue.KindString, fv.Value.Kind)
}
