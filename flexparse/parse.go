// Package flexparse is the public entry point of the forgiving structured
// data extractor: parse messy LLM output into a ranked set of candidate
// values (flexparser, flexvalue, flexscore) and coerce the best one into a
// caller's target Go type (coerce), either via reflection (Parse) or via a
// hand-registered adapter realizing the derive-macro contract (ParseLLM;
// see Register).
package flexparse

import (
	"fmt"
	"reflect"

	"go.jacobcolvin.com/flexparse/coerce"
	"go.jacobcolvin.com/flexparse/flexparser"
	"go.jacobcolvin.com/flexparse/flexscore"
	"go.jacobcolvin.com/flexparse/flexvalue"
)

var defaultParser = flexparser.New()

// Parse runs the generic, reflect-based deserializer (spec §4.12's
// "Generic Serde-style" entry point) against text and returns a T.
func Parse[T any](text string) (T, error) {
	var zero T

	v, _, err := ParseWithCandidates[T](text)
	if err != nil {
		return zero, err
	}

	return v, nil
}

// ParseWithCandidates is Parse plus the full ranked candidate list, for
// callers that want to inspect what else was extracted (spec §6
// parse_with_candidates).
func ParseWithCandidates[T any](text string) (T, []*flexvalue.FlexValue, error) {
	var zero T

	candidates := defaultParser.Parse(text)
	if len(candidates) == 0 {
		return zero, nil, ErrNoCandidates
	}

	ranked := flexscore.RankCandidates(candidates)

	target := reflect.TypeFor[T]()

	var lastErr error

	for _, r := range ranked {
		ctx := coerce.New()

		out, err := coerce.CoerceAny(ctx, r.Value.Value, target)
		if err != nil {
			lastErr = err
			continue
		}

		return out.Interface().(T), toFlexValues(ranked), nil
	}

	if lastErr == nil {
		lastErr = ErrDeserializeFailed
	}

	return zero, toFlexValues(ranked), fmt.Errorf("%w: %v", ErrDeserializeFailed, lastErr)
}

// ParseLLM runs the registered LlmDeserialize adapter for T (spec §4.12's
// parse_llm): strict pass over every ranked candidate first, then a
// lenient pass, returning the first success.
func ParseLLM[T any](text string) (T, error) {
	var zero T

	v, _, err := ParseLLMWithCandidates[T](text)
	if err != nil {
		return zero, err
	}

	return v, nil
}

// ParseLLMWithCandidates is ParseLLM plus the ranked candidate list.
func ParseLLMWithCandidates[T any](text string) (T, []*flexvalue.FlexValue, error) {
	var zero T

	a, ok := lookup(reflect.TypeFor[T]())
	if !ok {
		return zero, nil, fmt.Errorf("%w: %s", ErrNotRegistered, reflect.TypeFor[T]().String())
	}

	candidates := defaultParser.Parse(text)
	if len(candidates) == 0 {
		return zero, nil, ErrNoCandidates
	}

	ranked := flexscore.RankCandidates(candidates)

	// First pass: strict, across every candidate in rank order, so a
	// MultiJsonArray candidate can win for []T before a SingleToArray wrap
	// would fire in the lenient pass (§4.12).
	for _, r := range ranked {
		if val, ok := a.try(r.Value.Value, coerce.New()); ok {
			return val.(T), toFlexValues(ranked), nil
		}
	}

	// Second pass: lenient, across every candidate in rank order.
	var lastErr error

	for _, r := range ranked {
		ctx := coerce.New()

		val, err := a.deser(r.Value.Value, ctx)
		if err != nil {
			lastErr = err
			continue
		}

		r.Value.Transformations = append(r.Value.Transformations, ctx.Transformations()...)

		return val.(T), toFlexValues(ranked), nil
	}

	if lastErr == nil {
		lastErr = ErrDeserializeFailed
	}

	return zero, toFlexValues(ranked), fmt.Errorf("%w: %v", ErrDeserializeFailed, lastErr)
}

func toFlexValues(ranked []flexscore.Ranked) []*flexvalue.FlexValue {
	out := make([]*flexvalue.FlexValue, 0, len(ranked))
	for _, r := range ranked {
		out = append(out, r.Value)
	}

	return out
}
