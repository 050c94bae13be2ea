package flexconstraint_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go.jacobcolvin.com/flexparse/flexconstraint"
)

func TestEvaluate(t *testing.T) {
	t.Parallel()

	positive := flexconstraint.Constraint{
		Level: flexconstraint.Assert,
		Name:  "positive",
		Func: func(v any) bool {
			n, ok := v.(int64)
			return ok && n > 0
		},
	}

	pass := flexconstraint.Evaluate(positive, int64(5))
	assert.True(t, pass.Passed)

	fail := flexconstraint.Evaluate(positive, int64(-1))
	assert.False(t, fail.Passed)
	assert.Contains(t, fail.Error(), "positive")
	assert.Contains(t, fail.Error(), "assert")
}

func TestLevelString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "check", flexconstraint.Check.String())
	assert.Equal(t, "assert", flexconstraint.Assert.String())
}
