package jsonstrict_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/flexparse/flexvalue"
	"go.jacobcolvin.com/flexparse/jsonstrict"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input   string
		want    flexvalue.JSONValue
		wantErr bool
	}{
		"object preserves key order": {
			input: `{"b": 1, "a": 2}`,
			want: flexvalue.Obj(func() *flexvalue.OrderedMap {
				m := flexvalue.NewOrderedMap()
				m.Set("b", flexvalue.Int(1))
				m.Set("a", flexvalue.Int(2))
				return m
			}()),
		},
		"integer stays integer": {
			input: `42`,
			want:  flexvalue.Int(42),
		},
		"float stays float": {
			input: `4.2`,
			want:  flexvalue.Float(4.2),
		},
		"trailing data rejected": {
			input:   `{}  garbage`,
			wantErr: true,
		},
		"malformed rejected": {
			input:   `{"a":}`,
			wantErr: true,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := jsonstrict.Parse(tc.input)
			if tc.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.True(t, tc.want.Equal(got), "got %#v, want %#v", got, tc.want)
		})
	}
}

func TestParseSequence(t *testing.T) {
	t.Parallel()

	got, err := jsonstrict.ParseSequence(`{"a":1} {"b":2}`)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}
