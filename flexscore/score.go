// Package flexscore ranks flexvalue.FlexValue candidates by an integer
// penalty: source base score plus the penalty of every recorded
// transformation plus a confidence-decay term, lower is better (spec §7).
package flexscore

import (
	"math"
	"sort"

	"go.jacobcolvin.com/flexparse/flexvalue"
)

// Score implements "Candidate score = source_base + Σ(transformation
// penalties) + floor((1 - confidence) * 100)" from spec §7. This is the
// default, non-recursive scoring path used throughout the pipeline.
func Score(fv *flexvalue.FlexValue) int {
	total := fv.Source.BaseScore()

	for _, t := range fv.Transformations {
		total += t.Penalty()
	}

	total += int(math.Floor((1 - fv.Confidence) * 100))

	return total
}

// ScoreRecursive implements the opt-in alternate scoring mode mentioned in
// spec §7 ("Recursive variant multiplies transformation sum by
// 10^(max_transformation_depth)"). The reference implementation
// (tryparse::scoring::score_candidate_recursive) treats this as a distinct
// function from the default scorer rather than folding the multiplier into
// Score, so it is kept separate here too — Score is what every caller in
// this module uses unless they explicitly opt into depth-weighted scoring.
func ScoreRecursive(fv *flexvalue.FlexValue) int {
	base := fv.Source.BaseScore()

	var transformSum int
	for _, t := range fv.Transformations {
		transformSum += t.Penalty()
	}

	multiplier := math.Pow(10, float64(fv.MaxTransformationDepth))
	penalty := int(math.Floor(float64(transformSum)*multiplier)) + base
	penalty += int(math.Floor((1 - fv.Confidence) * 100))

	return penalty
}

// Ranked pairs a candidate with its computed score, preserving the
// insertion order needed for stable tie-breaking.
type Ranked struct {
	Value *flexvalue.FlexValue
	Score int
}

// RankCandidates sorts candidates by ascending score, breaking ties by
// original insertion order (stable sort), per spec §5 ("Candidates are
// ranked by (score, insertion order); ties resolve by insertion order")
// and the stability property of §8.9.
func RankCandidates(candidates []*flexvalue.FlexValue) []Ranked {
	ranked := make([]Ranked, len(candidates))
	for i, c := range candidates {
		ranked[i] = Ranked{Value: c, Score: Score(c)}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score < ranked[j].Score
	})

	return ranked
}

// BestCandidate returns the lowest-scoring candidate, or nil if candidates
// is empty.
func BestCandidate(candidates []*flexvalue.FlexValue) *flexvalue.FlexValue {
	ranked := RankCandidates(candidates)
	if len(ranked) == 0 {
		return nil
	}

	return ranked[0].Value
}
