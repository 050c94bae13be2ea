package flexvalue

import "encoding/json"

// confidenceDecay is multiplied into FlexValue.Confidence each time a
// transformation is recorded (§3).
const confidenceDecay = 0.95

// FlexValue is a candidate value together with everything needed to rank
// and explain it: where it came from, what was done to it, and how much
// trust remains in the result (§3).
type FlexValue struct {
	Value                    JSONValue
	Source                   Source
	Transformations          []Transformation
	Confidence               float64
	MaxTransformationDepth   int
}

// New wraps value with source, setting the starting confidence per §3:
// 1.0 for Direct, 0.9 for anything reached via a repair (Fixed).
func New(value JSONValue, source Source) *FlexValue {
	confidence := 1.0
	if source.Kind == SourceFixed {
		confidence = 0.9
	}

	return &FlexValue{Value: value, Source: source, Confidence: confidence}
}

// AddTransformation records t, decaying confidence by 0.95 and advancing
// MaxTransformationDepth to depth if depth is larger (§3, property 2 of §8).
func (fv *FlexValue) AddTransformation(t Transformation, depth int) {
	fv.Transformations = append(fv.Transformations, t)
	fv.Confidence *= confidenceDecay

	if depth > fv.MaxTransformationDepth {
		fv.MaxTransformationDepth = depth
	}
}

// Equal compares two FlexValues by Value only, matching §3's "equality and
// hashing consider only value."
func (fv *FlexValue) Equal(o *FlexValue) bool {
	if fv == nil || o == nil {
		return fv == o
	}

	return fv.Value.Equal(o.Value)
}

// Key returns a string usable as a map key for circular-reference visited
// sets that compare FlexValues by Value only.
func (fv *FlexValue) Key() string { return fv.Value.structuralKey() }

// Clone returns a value-identical FlexValue whose Transformations slice is
// independent of fv's (so downstream mutation by one candidate branch
// cannot leak into a sibling branch).
func (fv *FlexValue) Clone() *FlexValue {
	if fv == nil {
		return nil
	}

	out := *fv
	out.Transformations = append([]Transformation(nil), fv.Transformations...)

	return &out
}

// diagnostic is the JSON shape described in spec §6 ("FlexValue diagnostic
// JSON"): source, confidence, score, transformations, transformation_count,
// max_transformation_depth.
type diagnostic struct {
	Source                 sourceJSON            `json:"source"`
	Confidence             float64                `json:"confidence"`
	Score                  int                    `json:"score"`
	Transformations        []transformationJSON   `json:"transformations"`
	TransformationCount    int                    `json:"transformation_count"`
	MaxTransformationDepth int                    `json:"max_transformation_depth"`
}

type sourceJSON struct {
	Type    string `json:"type"`
	Lang    string `json:"lang,omitempty"`
	Fixes   []string `json:"fixes,omitempty"`
	Index   *int   `json:"index,omitempty"`
	Pattern string `json:"pattern,omitempty"`
}

type transformationJSON struct {
	Type    string `json:"type"`
	Penalty int    `json:"penalty"`
	Payload map[string]any `json:"payload,omitempty"`
}

// DiagnosticJSON renders fv as the self-describing debug structure callers
// use to inspect what happened during a parse (§6), given its score (the
// caller supplies this since scoring lives in package flexscore to avoid an
// import cycle).
func (fv *FlexValue) DiagnosticJSON(score int) ([]byte, error) {
	d := diagnostic{
		Confidence:             fv.Confidence,
		Score:                  score,
		TransformationCount:    len(fv.Transformations),
		MaxTransformationDepth: fv.MaxTransformationDepth,
	}

	d.Source = sourceJSON{Type: fv.Source.String()}

	switch fv.Source.Kind {
	case SourceMarkdown:
		d.Source.Lang = fv.Source.Lang
	case SourceFixed:
		for _, f := range fv.Source.Fixes {
			d.Source.Fixes = append(d.Source.Fixes, f.String())
		}
	case SourceMultiJSON:
		idx := fv.Source.Index
		d.Source.Index = &idx
	case SourceHeuristic:
		d.Source.Pattern = fv.Source.Pattern
	}

	for _, t := range fv.Transformations {
		tj := transformationJSON{Type: t.Kind.String(), Penalty: t.Penalty()}

		payload := map[string]any{}

		switch t.Kind {
		case TransformFieldNameCaseChanged:
			payload["from"] = t.From
			payload["to"] = t.To
		case TransformDefaultValueInserted, TransformImpliedKey, TransformExtraKey:
			payload["field"] = t.Field
		case TransformArrayItemParseError:
			payload["index"] = t.Index
			payload["error"] = t.Err
		case TransformUnionMatch:
			payload["index"] = t.Index
			payload["candidates"] = t.Candidates
		case TransformFirstMatch:
			payload["index"] = t.Index
			payload["total"] = t.Total
		case TransformDefaultButHadUnparseableValue:
			payload["field"] = t.Field
			payload["value"] = t.RawValue
			payload["error"] = t.Err
		case TransformConstraintChecked:
			payload["name"] = t.ConstraintName
			payload["passed"] = t.Passed
			payload["is_assert"] = t.IsAssert
		case TransformObjectFromMarkdown:
			payload["score"] = t.Score
		}

		if len(payload) > 0 {
			tj.Payload = payload
		}

		d.Transformations = append(d.Transformations, tj)
	}

	return json.Marshal(d)
}
