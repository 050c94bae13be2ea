package jsonstrategy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/flexparse/flexvalue"
	"go.jacobcolvin.com/flexparse/jsonstrategy"
)

func TestYAML_mapping(t *testing.T) {
	t.Parallel()

	fv, ok := jsonstrategy.YAML("name: Ada\nage: 28\n")
	require.True(t, ok)

	assert.Equal(t, flexvalue.SourceYAML, fv.Source.Kind)
	assert.Equal(t, flexvalue.KindObject, fv.Value.Kind)

	name, ok := fv.Value.Object.Get("name")
	require.True(t, ok)
	assert.Equal(t, "Ada", name.String)

	age, ok := fv.Value.Object.Get("age")
	require.True(t, ok)
	assert.Equal(t, int64(28), age.Int)
}

func TestYAML_rejectsJSONLead(t *testing.T) {
	t.Parallel()

	_, ok := jsonstrategy.YAML(`{"name": "Ada"}`)
	assert.False(t, ok, "input that already looks like JSON must not be claimed by the YAML strategy")
}

func TestYAML_rejectsSingleKeyValueLine(t *testing.T) {
	t.Parallel()

	_, ok := jsonstrategy.YAML("just one line: value")
	assert.False(t, ok, "looksLikeYAML requires at least two key: value lines")
}

func TestYAML_nestedSequence(t *testing.T) {
	t.Parallel()

	fv, ok := jsonstrategy.YAML("fruits:\n  - apple\n  - pear\ncount: 2\n")
	require.True(t, ok)

	fruits, ok := fv.Value.Object.Get("fruits")
	require.True(t, ok)
	assert.Equal(t, flexvalue.KindArray, fruits.Kind)
	assert.Len(t, fruits.Array, 2)
	assert.Equal(t, "apple", fruits.Array[0].String)
}
