package flexscore_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go.jacobcolvin.com/flexparse/flexscore"
	"go.jacobcolvin.com/flexparse/flexvalue"
)

func TestScore(t *testing.T) {
	t.Parallel()

	direct := flexvalue.New(flexvalue.Int(1), flexvalue.Direct())
	assert.Equal(t, 0, flexscore.Score(direct))

	heuristic := flexvalue.New(flexvalue.Int(1), flexvalue.Heuristic("brace-scan"))
	assert.Equal(t, 50, flexscore.Score(heuristic))

	fixed := flexvalue.New(flexvalue.Int(1), flexvalue.Fixed(flexvalue.FixTrailingCommas, flexvalue.FixSingleQuotes))
	// base 20 + trailing-comma penalty 1 + single-quote penalty 2 = 23
	// source base, plus the confidence-decay term: Fixed starts at 0.9
	// confidence, contributing floor((1-0.9)*100) = 9 (not 10, since 0.9
	// has no exact float64 representation).
	assert.Equal(t, 32, flexscore.Score(fixed))
}

func TestRankCandidates_ordersByScoreThenInsertion(t *testing.T) {
	t.Parallel()

	a := flexvalue.New(flexvalue.Int(1), flexvalue.Heuristic("x"))
	b := flexvalue.New(flexvalue.Int(2), flexvalue.Direct())
	c := flexvalue.New(flexvalue.Int(3), flexvalue.Direct())

	ranked := flexscore.RankCandidates([]*flexvalue.FlexValue{a, b, c})

	assert.Equal(t, b, ranked[0].Value, "direct candidates (score 0) sort before heuristic (score 50)")
	assert.Equal(t, c, ranked[1].Value, "equal-score candidates keep insertion order")
	assert.Equal(t, a, ranked[2].Value)
}

func TestBestCandidate(t *testing.T) {
	t.Parallel()

	assert.Nil(t, flexscore.BestCandidate(nil))

	only := flexvalue.New(flexvalue.Int(1), flexvalue.Direct())
	assert.Equal(t, only, flexscore.BestCandidate([]*flexvalue.FlexValue{only}))
}
