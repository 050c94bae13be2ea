// Package jsonstrategy implements the full-input strategies of spec §4.4:
// DirectJSON, StateMachineTolerant, RawPrimitive, MultipleObjects, and YAML.
// Each strategy is a pure function of the raw input that either produces
// zero or more flexvalue.FlexValue candidates.
package jsonstrategy

import (
	"strings"

	"go.jacobcolvin.com/flexparse/flexvalue"
	"go.jacobcolvin.com/flexparse/jsonstrict"
)

// Priority values match spec §4.5's table. flexparser does not reference
// these constants; its strategy tiers repeat the same numbers as literals.
const (
	PriorityMultipleObjects = 0
	PriorityDirectJSON      = 1
	PriorityMarkdown        = 2
	PriorityYAML            = 3
	PriorityJSONFixer       = 3
	PriorityHeuristic       = 4
	PriorityRawPrimitive    = 5
	PriorityStateMachine    = 15
)

// directJSONLeadBytes are the characters DirectJSON treats as plausible
// first characters of a JSON value (§4.4 DirectJSON).
const directJSONLeadBytes = `{["-+.0123456789tfn`

// DirectJSON is the fast path: trim the input and, if the first character
// looks like the start of a JSON value, attempt a strict parse (§4.4).
func DirectJSON(input string) (*flexvalue.FlexValue, bool) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return nil, false
	}

	if !strings.ContainsRune(directJSONLeadBytes, rune(trimmed[0])) {
		return nil, false
	}

	val, err := jsonstrict.Parse(trimmed)
	if err != nil {
		return nil, false
	}

	return flexvalue.New(val, flexvalue.Direct()), true
}
