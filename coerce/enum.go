package coerce

import (
	"strconv"
	"strings"

	"go.jacobcolvin.com/flexparse/flexvalue"
)

// EnumVariant is one candidate of an enum coercion target (§4.10).
type EnumVariant struct {
	Name        string
	Description string
}

// matchStrings returns the canonical name and, if present, the description
// and combined "Name: Description" forms to compare the input against.
func (v EnumVariant) matchStrings() []string {
	out := []string{v.Name}

	if v.Description != "" {
		out = append(out, v.Description, v.Name+": "+v.Description)
	}

	return out
}

// Enum implements §4.10: given a value and a set of variants, coerce to the
// matching variant name. Numbers and bools are stringified and retried.
// ctx is threaded through for signature consistency with every other
// lenient coercer (Int, Float, Struct, ...) and for the depth/cycle checks
// a future recursive variant type would need; the match rules themselves
// record no transformation, matching the original deserializer, which
// returns a bare variant name regardless of which rule matched.
func Enum(ctx *Context, v flexvalue.JSONValue, enumName string, variants []EnumVariant) (string, error) {
	var input string

	switch v.Kind {
	case flexvalue.KindString:
		input = v.String
	case flexvalue.KindInt:
		input = strconv.FormatInt(v.Int, 10)
	case flexvalue.KindFloat:
		input = strconv.FormatFloat(v.Float, 'g', -1, 64)
	case flexvalue.KindBool:
		input = strconv.FormatBool(v.Bool)
	default:
		return "", &UnknownVariantError{EnumName: enumName, Input: v.Kind.String()}
	}

	if name, ok := matchEnum(input, variants); ok {
		return name, nil
	}

	return "", &UnknownVariantError{EnumName: enumName, Input: input}
}

func matchEnum(input string, variants []EnumVariant) (string, bool) {
	// 1. exact match.
	for _, va := range variants {
		for _, m := range va.matchStrings() {
			if m == input {
				return va.Name, true
			}
		}
	}

	// 2. accent-stripped exact match.
	accentIn := stripAccents(input)

	for _, va := range variants {
		for _, m := range va.matchStrings() {
			if stripAccents(m) == accentIn {
				return va.Name, true
			}
		}
	}

	// 3. punctuation-stripped exact match.
	punctIn := stripPunctuation(input)

	for _, va := range variants {
		for _, m := range va.matchStrings() {
			if stripPunctuation(m) == punctIn {
				return va.Name, true
			}
		}
	}

	// 4. punctuation-stripped, case-insensitive exact match.
	lowerPunctIn := strings.ToLower(punctIn)

	for _, va := range variants {
		for _, m := range va.matchStrings() {
			if strings.ToLower(stripPunctuation(m)) == lowerPunctIn {
				return va.Name, true
			}
		}
	}

	// 5. substring: longest variant match-string appearing in the input
	// wins; failing that, shortest match-string containing the input wins;
	// ties go to the first-declared variant.
	if name, ok := matchEnumSubstring(input, variants); ok {
		return name, true
	}

	// 6. Levenshtein, accept iff distance <= floor(len(input)/3).
	return matchEnumLevenshtein(input, variants)
}

func matchEnumSubstring(input string, variants []EnumVariant) (string, bool) {
	lowerIn := strings.ToLower(input)

	bestLen := -1
	bestName := ""

	for _, va := range variants {
		for _, m := range va.matchStrings() {
			lowerM := strings.ToLower(m)
			if lowerM == "" {
				continue
			}

			if strings.Contains(lowerIn, lowerM) && len(lowerM) > bestLen {
				bestLen = len(lowerM)
				bestName = va.Name
			}
		}
	}

	if bestLen >= 0 {
		return bestName, true
	}

	shortestLen := -1
	shortestName := ""

	for _, va := range variants {
		for _, m := range va.matchStrings() {
			lowerM := strings.ToLower(m)
			if lowerM == "" {
				continue
			}

			if strings.Contains(lowerM, lowerIn) && (shortestLen < 0 || len(lowerM) < shortestLen) {
				shortestLen = len(lowerM)
				shortestName = va.Name
			}
		}
	}

	if shortestLen >= 0 {
		return shortestName, true
	}

	return "", false
}

func matchEnumLevenshtein(input string, variants []EnumVariant) (string, bool) {
	bestDist := -1
	bestName := ""

	for _, va := range variants {
		for _, m := range va.matchStrings() {
			d := levenshtein(strings.ToLower(input), strings.ToLower(m))
			if bestDist < 0 || d < bestDist {
				bestDist = d
				bestName = va.Name
			}
		}
	}

	if bestDist < 0 {
		return "", false
	}

	if bestDist <= len(input)/3 {
		return bestName, true
	}

	return "", false
}

// levenshtein computes the classic edit-distance dynamic program.
func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	prev := make([]int, len(rb)+1)
	cur := make([]int, len(rb)+1)

	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		cur[0] = i

		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}

			del := prev[j] + 1
			ins := cur[j-1] + 1
			sub := prev[j-1] + cost

			cur[j] = min3(del, ins, sub)
		}

		prev, cur = cur, prev
	}

	return prev[len(rb)]
}

func min3(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}

	if c < m {
		m = c
	}

	return m
}
