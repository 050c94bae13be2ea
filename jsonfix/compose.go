package jsonfix

import "go.jacobcolvin.com/flexparse/flexvalue"

// sequences is the small set of two- and three-repair sequences known to
// co-occur in the wild, tried before falling back to the full canonical
// chain (§4.3 "Composition").
var sequences = [][]flexvalue.JSONFix{
	{flexvalue.FixSmartQuotes, flexvalue.FixSingleQuotes},
	{flexvalue.FixTrailingCommas, flexvalue.FixSingleQuotes},
	{flexvalue.FixUnquotedKeys, flexvalue.FixTrailingCommas},
	{flexvalue.FixComments, flexvalue.FixTrailingCommas},
	{flexvalue.FixMissingCommas, flexvalue.FixUnquotedKeys},
	{flexvalue.FixUnquotedKeys, flexvalue.FixUnquotedValues},
	{flexvalue.FixUnquotedKeys, flexvalue.FixSingleQuotes},
	{flexvalue.FixSmartQuotes, flexvalue.FixUnquotedKeys, flexvalue.FixTrailingCommas},
}

func byFix(fix flexvalue.JSONFix) RepairFunc {
	for _, r := range Repairs {
		if r.Fix == fix {
			return r.Func
		}
	}

	return nil
}

// applyChain runs each fix in order against s, accumulating the fixes that
// actually changed something. Returns the final text and the subset of
// fixes that applied (in application order, possibly empty).
func applyChain(s string, chain []flexvalue.JSONFix) (string, []flexvalue.JSONFix) {
	var applied []flexvalue.JSONFix

	for _, fix := range chain {
		fn := byFix(fix)
		if fn == nil {
			continue
		}

		next, changed := fn(s)
		if changed {
			s = next
			applied = append(applied, fix)
		}
	}

	return s, applied
}

// Attempt is one candidate repair result: the text after applying a
// combination of fixes, and which fixes were actually applied.
type Attempt struct {
	Text  string
	Fixes []flexvalue.JSONFix
}

// Attempts generates, in priority order, every repair combination the
// orchestrator should try against s: each repair alone, then the known
// co-occurring sequences, bounded by attemptCap, then (if attemptCap
// permits one more try) the full canonical chain of every repair in
// declaration order (§4.3).
func Attempts(s string, attemptCap int) []Attempt {
	var attempts []Attempt

	seen := map[string]bool{}

	add := func(chain []flexvalue.JSONFix) {
		if len(attempts) >= attemptCap {
			return
		}

		text, applied := applyChain(s, chain)
		if len(applied) == 0 {
			return
		}

		if seen[text] {
			return
		}

		seen[text] = true
		attempts = append(attempts, Attempt{Text: text, Fixes: applied})
	}

	for _, r := range Repairs {
		add([]flexvalue.JSONFix{r.Fix})
	}

	for _, seq := range sequences {
		add(seq)
	}

	if len(attempts) < attemptCap {
		full := make([]flexvalue.JSONFix, len(Repairs))
		for i, r := range Repairs {
			full[i] = r.Fix
		}

		add(full)
	}

	return attempts
}
