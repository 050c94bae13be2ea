package coerce_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/flexparse/coerce"
	"go.jacobcolvin.com/flexparse/flexvalue"
)

type widget struct {
	Name  string  `json:"name"`
	Count int     `json:"count"`
	Tags  []string `json:"tags"`
}

func TestCoerceAny_struct(t *testing.T) {
	t.Parallel()

	ctx := coerce.New()

	v := obj("name", flexvalue.String("gizmo"), "count", flexvalue.String("3"), "tags",
		flexvalue.Arr(flexvalue.String("a"), flexvalue.String("b")))

	out, err := coerce.CoerceAny(ctx, v, reflect.TypeFor[widget]())
	require.NoError(t, err)

	w := out.Interface().(widget)
	assert.Equal(t, "gizmo", w.Name)
	assert.Equal(t, 3, w.Count)
	assert.Equal(t, []string{"a", "b"}, w.Tags)
}

func TestCoerceAny_primitiveKinds(t *testing.T) {
	t.Parallel()

	ctx := coerce.New()

	out, err := coerce.CoerceAny(ctx, flexvalue.String("42"), reflect.TypeFor[int64]())
	require.NoError(t, err)
	assert.Equal(t, int64(42), out.Interface())
}
