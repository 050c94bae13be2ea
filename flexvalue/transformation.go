package flexvalue

import "fmt"

// TransformKind discriminates the variants of [Transformation].
type TransformKind int

const (
	TransformStringToNumber TransformKind = iota
	TransformFloatToInt
	TransformSingleToArray
	TransformFieldNameCaseChanged
	TransformDefaultValueInserted
	TransformExtraKey
	TransformImpliedKey
	TransformJSONToString
	TransformArrayItemParseError
	TransformUnionMatch
	TransformFirstMatch
	TransformDefaultButHadUnparseableValue
	TransformSubstringMatch
	TransformStrippedNonAlphaNumeric
	TransformConstraintChecked
	TransformObjectFromMarkdown
	TransformExtractedFromMarkdown
	TransformJSONRepaired
)

// Transformation records one modification applied during coercion (§3).
// Only the fields relevant to Kind are populated.
type Transformation struct {
	Kind TransformKind

	// FieldNameCaseChanged
	From string
	To   string

	// DefaultValueInserted, ImpliedKey, ExtraKey, DefaultButHadUnparseableValue
	Field string

	// ArrayItemParseError, FirstMatch, UnionMatch
	Index int
	Total int

	// ArrayItemParseError, DefaultButHadUnparseableValue
	Err string

	// DefaultButHadUnparseableValue
	RawValue string

	// UnionMatch
	Candidates []string

	// ConstraintChecked
	ConstraintName string
	Passed         bool
	IsAssert       bool

	// ObjectFromMarkdown
	Score int

	// JSONRepaired
	Fixes []JSONFix
}

func StringToNumber() Transformation { return Transformation{Kind: TransformStringToNumber} }
func FloatToInt() Transformation      { return Transformation{Kind: TransformFloatToInt} }
func SingleToArray() Transformation   { return Transformation{Kind: TransformSingleToArray} }

func FieldNameCaseChanged(from, to string) Transformation {
	return Transformation{Kind: TransformFieldNameCaseChanged, From: from, To: to}
}

func DefaultValueInserted(field string) Transformation {
	return Transformation{Kind: TransformDefaultValueInserted, Field: field}
}

func ExtraKey(key string) Transformation {
	return Transformation{Kind: TransformExtraKey, Field: key}
}

func ImpliedKey(field string) Transformation {
	return Transformation{Kind: TransformImpliedKey, Field: field}
}

func JSONToString() Transformation { return Transformation{Kind: TransformJSONToString} }

func ArrayItemParseError(index int, err string) Transformation {
	return Transformation{Kind: TransformArrayItemParseError, Index: index, Err: err}
}

func UnionMatch(index int, candidates []string) Transformation {
	return Transformation{Kind: TransformUnionMatch, Index: index, Candidates: candidates}
}

func FirstMatch(index, total int) Transformation {
	return Transformation{Kind: TransformFirstMatch, Index: index, Total: total}
}

func DefaultButHadUnparseableValue(field, rawValue, err string) Transformation {
	return Transformation{
		Kind: TransformDefaultButHadUnparseableValue, Field: field, RawValue: rawValue, Err: err,
	}
}

func SubstringMatch() Transformation         { return Transformation{Kind: TransformSubstringMatch} }
func StrippedNonAlphaNumeric() Transformation { return Transformation{Kind: TransformStrippedNonAlphaNumeric} }

func ConstraintChecked(name string, passed, isAssert bool) Transformation {
	return Transformation{Kind: TransformConstraintChecked, ConstraintName: name, Passed: passed, IsAssert: isAssert}
}

func ObjectFromMarkdown(score int) Transformation {
	return Transformation{Kind: TransformObjectFromMarkdown, Score: score}
}

func ExtractedFromMarkdown() Transformation { return Transformation{Kind: TransformExtractedFromMarkdown} }

func JSONRepaired(fixes ...JSONFix) Transformation {
	return Transformation{Kind: TransformJSONRepaired, Fixes: fixes}
}

// Penalty implements the "Transformation penalties" table in spec §7.
func (t Transformation) Penalty() int {
	switch t.Kind {
	case TransformExtractedFromMarkdown, TransformJSONRepaired, TransformUnionMatch:
		return 0
	case TransformFirstMatch:
		return 1
	case TransformStringToNumber, TransformJSONToString, TransformSubstringMatch,
		TransformDefaultButHadUnparseableValue:
		return 2
	case TransformFloatToInt, TransformStrippedNonAlphaNumeric:
		return 3
	case TransformFieldNameCaseChanged:
		return 4
	case TransformSingleToArray:
		return 5
	case TransformImpliedKey:
		return 8
	case TransformExtraKey:
		return 10
	case TransformArrayItemParseError:
		return 1 + t.Index
	case TransformDefaultValueInserted:
		return 50
	case TransformConstraintChecked:
		if t.Passed {
			return 0
		}

		if t.IsAssert {
			return 100
		}

		return 10
	default:
		return 0
	}
}

func (t TransformKind) String() string {
	switch t {
	case TransformStringToNumber:
		return "string_to_number"
	case TransformFloatToInt:
		return "float_to_int"
	case TransformSingleToArray:
		return "single_to_array"
	case TransformFieldNameCaseChanged:
		return "field_name_case_changed"
	case TransformDefaultValueInserted:
		return "default_value_inserted"
	case TransformExtraKey:
		return "extra_key"
	case TransformImpliedKey:
		return "implied_key"
	case TransformJSONToString:
		return "json_to_string"
	case TransformArrayItemParseError:
		return "array_item_parse_error"
	case TransformUnionMatch:
		return "union_match"
	case TransformFirstMatch:
		return "first_match"
	case TransformDefaultButHadUnparseableValue:
		return "default_but_had_unparseable_value"
	case TransformSubstringMatch:
		return "substring_match"
	case TransformStrippedNonAlphaNumeric:
		return "stripped_non_alpha_numeric"
	case TransformConstraintChecked:
		return "constraint_checked"
	case TransformObjectFromMarkdown:
		return "object_from_markdown"
	case TransformExtractedFromMarkdown:
		return "extracted_from_markdown"
	case TransformJSONRepaired:
		return "json_repaired"
	default:
		return "unknown"
	}
}

func (t Transformation) String() string {
	switch t.Kind {
	case TransformFieldNameCaseChanged:
		return fmt.Sprintf("field_name_case_changed(%s->%s)", t.From, t.To)
	case TransformDefaultValueInserted, TransformImpliedKey:
		return fmt.Sprintf("%s(%s)", t.Kind, t.Field)
	case TransformExtraKey:
		return fmt.Sprintf("extra_key(%s)", t.Field)
	case TransformArrayItemParseError:
		return fmt.Sprintf("array_item_parse_error(%d: %s)", t.Index, t.Err)
	case TransformUnionMatch:
		return fmt.Sprintf("union_match(%d of %v)", t.Index, t.Candidates)
	case TransformFirstMatch:
		return fmt.Sprintf("first_match(%d/%d)", t.Index, t.Total)
	case TransformDefaultButHadUnparseableValue:
		return fmt.Sprintf("default_but_had_unparseable_value(%s: %s)", t.Field, t.Err)
	case TransformConstraintChecked:
		return fmt.Sprintf("constraint_checked(%s passed=%t assert=%t)", t.ConstraintName, t.Passed, t.IsAssert)
	case TransformObjectFromMarkdown:
		return fmt.Sprintf("object_from_markdown(score=%d)", t.Score)
	default:
		return t.Kind.String()
	}
}
