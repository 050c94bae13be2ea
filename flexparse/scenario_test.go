package flexparse_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/flexparse/flexparse"
	"go.jacobcolvin.com/flexparse/flexvalue"
)

// Scenario B (§8): a well-formed JSON object whose age field arrives as a
// numeric string rather than a number. The strict pass must reject every
// candidate (TryInt never accepts a string) before the lenient pass
// coerces it, recording exactly one StringToNumber transformation.
func TestParseLLM_scenarioB_stringifiedAge(t *testing.T) {
	t.Parallel()

	input := `{"Name": "Ada Lovelace", "Age": "25"}`

	u, candidates, err := flexparse.ParseLLMWithCandidates[User](input)
	require.NoError(t, err)

	assert.Equal(t, "Ada Lovelace", u.Name)
	assert.Equal(t, 25, u.Age)
	assert.Nil(t, u.Email)

	require.NotEmpty(t, candidates)

	winner := candidates[0]

	var stringToNumberCount int

	for _, tr := range winner.Transformations {
		if tr.Kind == flexvalue.TransformStringToNumber {
			stringToNumberCount++
		}
	}

	assert.Equal(t, 1, stringToNumberCount, "age:\"25\"->25 must record exactly one StringToNumber transformation")
}
