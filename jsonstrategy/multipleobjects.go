package jsonstrategy

import (
	"go.jacobcolvin.com/flexparse/flexvalue"
	"go.jacobcolvin.com/flexparse/jsonextract"
	"go.jacobcolvin.com/flexparse/jsonstrict"
)

// MultipleObjects locates every top-level balanced object/array substring
// (the same matcher as heuristic extraction) and parses each with strict
// JSON. If two or more parse, it emits a single MultiJsonArray candidate
// whose value is the array of them (§4.4 MultipleObjects). This strategy
// must run before DirectJSON, since DirectJSON would otherwise consume
// only the first object.
func MultipleObjects(input string) (*flexvalue.FlexValue, bool) {
	spans := jsonextract.Heuristic(input)

	var values []flexvalue.JSONValue

	for _, s := range spans {
		v, err := jsonstrict.Parse(s.Content)
		if err != nil {
			continue
		}

		values = append(values, v)
	}

	if len(values) < 2 {
		return nil, false
	}

	return flexvalue.New(flexvalue.Arr(values...), flexvalue.MultiJSONArray()), true
}
