package jsonfix_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go.jacobcolvin.com/flexparse/jsonfix"
)

func TestTrailingCommas(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input      string
		want       string
		wantChange bool
	}{
		"object trailing comma": {
			input:      `{"a": 1,}`,
			want:       `{"a": 1}`,
			wantChange: true,
		},
		"array trailing comma": {
			input:      `[1, 2,]`,
			want:       `[1, 2]`,
			wantChange: true,
		},
		"comma inside string untouched": {
			input:      `{"a": "1,"}`,
			want:       `{"a": "1,"}`,
			wantChange: false,
		},
		"no trailing comma": {
			input:      `{"a": 1}`,
			want:       `{"a": 1}`,
			wantChange: false,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, changed := jsonfix.TrailingCommas(tc.input)
			assert.Equal(t, tc.wantChange, changed)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestSmartQuotes(t *testing.T) {
	t.Parallel()

	got, changed := jsonfix.SmartQuotes(`{“a”: ‘b’}`)
	assert.True(t, changed)
	assert.Equal(t, `{"a": 'b'}`, got)
}

func TestUnquotedKeys(t *testing.T) {
	t.Parallel()

	got, changed := jsonfix.UnquotedKeys(`{a: 1, b: 2}`)
	assert.True(t, changed)
	assert.Equal(t, `{"a": 1, "b": 2}`, got)
}

func TestSingleQuotes(t *testing.T) {
	t.Parallel()

	got, changed := jsonfix.SingleQuotes(`{'a': 'b'}`)
	assert.True(t, changed)
	assert.Equal(t, `{"a": "b"}`, got)
}
