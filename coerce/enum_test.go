package coerce_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/flexparse/coerce"
	"go.jacobcolvin.com/flexparse/flexvalue"
)

func TestEnum(t *testing.T) {
	t.Parallel()

	variants := []coerce.EnumVariant{
		{Name: "RED", Description: "the color red"},
		{Name: "GREEN"},
		{Name: "BLUE"},
	}

	tcs := map[string]struct {
		input flexvalue.JSONValue
		want  string
	}{
		"exact":                {input: flexvalue.String("RED"), want: "RED"},
		"description match":    {input: flexvalue.String("the color red"), want: "RED"},
		"case insensitive":     {input: flexvalue.String("green"), want: "GREEN"},
		"punctuation tolerant": {input: flexvalue.String("BLUE!"), want: "BLUE"},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			ctx := coerce.New()

			got, err := coerce.Enum(ctx, tc.input, "Color", variants)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestEnum_unknownVariant(t *testing.T) {
	t.Parallel()

	ctx := coerce.New()
	variants := []coerce.EnumVariant{{Name: "RED"}, {Name: "GREEN"}}

	_, err := coerce.Enum(ctx, flexvalue.String("purple"), "Color", variants)
	require.Error(t, err)
}
