package coerce

import "go.jacobcolvin.com/flexparse/flexvalue"

// Variant is one arm of a union coercion target (§4.11).
type Variant struct {
	Name      string
	TryCoerce func(flexvalue.JSONValue) (any, bool)
	Coerce    func(*Context, flexvalue.JSONValue) (any, error)
	// IsList marks "list-typed" variants for the tie-break heuristics.
	IsList bool
}

type unionCandidate struct {
	variant Variant
	value   any
	score   int
	trans   []flexvalue.Transformation
}

// Union implements §4.11: strict pass over every variant first (zero-score
// candidates), then — if none matched — a lenient pass scored by summed
// transformation penalties; ties among survivors are broken by the ordered
// heuristics of §4.11 step 4.
func Union(ctx *Context, v flexvalue.JSONValue, variants []Variant) (any, string, error) {
	for _, va := range variants {
		if val, ok := va.TryCoerce(v); ok {
			ctx.Record(flexvalue.UnionMatch(indexOf(variants, va), []string{va.Name}))
			return val, va.Name, nil
		}
	}

	var candidates []unionCandidate

	names := make([]string, 0, len(variants))

	for _, va := range variants {
		sub := ctx.Descend(false, "union:"+va.Name, va.Name, v)
		sub.transformations = nil

		val, err := va.Coerce(sub, v)
		if err != nil {
			continue
		}

		score := 0
		for _, t := range sub.transformations {
			score += t.Penalty()
		}

		candidates = append(candidates, unionCandidate{variant: va, value: val, score: score, trans: sub.transformations})
		names = append(names, va.Name)
	}

	if len(candidates) == 0 {
		return nil, "", &UnknownVariantError{EnumName: "union", Input: v.Kind.String()}
	}

	best := pickUnionWinner(candidates)

	for _, t := range best.trans {
		ctx.Record(t)
	}

	ctx.Record(flexvalue.UnionMatch(indexOf(variants, best.variant), names))

	return best.value, best.variant.Name, nil
}

func indexOf(variants []Variant, v Variant) int {
	for i, va := range variants {
		if va.Name == v.Name {
			return i
		}
	}

	return -1
}

// pickUnionWinner sorts candidates by score ascending and applies the
// ordered tie-break heuristics of §4.11 step 4.
func pickUnionWinner(candidates []unionCandidate) unionCandidate {
	best := candidates[0]

	for _, c := range candidates[1:] {
		if better(c, best) {
			best = c
		}
	}

	return best
}

// better reports whether a should win over b under §4.11's ordered
// heuristics, applied only when scores tie; a strictly lower score always
// wins outright.
func better(a, b unionCandidate) bool {
	if a.score != b.score {
		return a.score < b.score
	}

	if a.variant.IsList && b.variant.IsList {
		aSingle, bSingle := hasKind(a.trans, flexvalue.TransformSingleToArray), hasKind(b.trans, flexvalue.TransformSingleToArray)
		if aSingle != bSingle {
			return !aSingle
		}

		aMd, bMd := hasKind(a.trans, flexvalue.TransformObjectFromMarkdown), hasKind(b.trans, flexvalue.TransformObjectFromMarkdown)
		if aMd != bMd {
			return !aMd
		}

		aErrs, bErrs := countKind(a.trans, flexvalue.TransformArrayItemParseError), countKind(b.trans, flexvalue.TransformArrayItemParseError)
		if aErrs != bErrs {
			return aErrs < bErrs
		}
	}

	aImplied, bImplied := hasKind(a.trans, flexvalue.TransformImpliedKey), hasKind(b.trans, flexvalue.TransformImpliedKey)
	if aImplied != bImplied {
		return !aImplied
	}

	aSubstantive, bSubstantive := hasSubstantive(a.trans), hasSubstantive(b.trans)
	if aSubstantive != bSubstantive {
		return aSubstantive
	}

	aStr, bStr := hasKind(a.trans, flexvalue.TransformJSONToString), hasKind(b.trans, flexvalue.TransformJSONToString)
	if aStr != bStr {
		return !aStr
	}

	return false
}

func hasKind(ts []flexvalue.Transformation, k flexvalue.TransformKind) bool {
	return countKind(ts, k) > 0
}

func countKind(ts []flexvalue.Transformation, k flexvalue.TransformKind) int {
	n := 0

	for _, t := range ts {
		if t.Kind == k {
			n++
		}
	}

	return n
}

func hasSubstantive(ts []flexvalue.Transformation) bool {
	for _, t := range ts {
		switch t.Kind {
		case flexvalue.TransformStringToNumber, flexvalue.TransformFloatToInt, flexvalue.TransformFieldNameCaseChanged:
			return true
		}
	}

	return false
}
