package flexvalue

// SourceKind discriminates the variants of [Source].
type SourceKind int

const (
	SourceDirect SourceKind = iota
	SourceMarkdown
	SourceFixed
	SourceMultiJSON
	SourceMultiJSONArray
	SourceHeuristic
	SourceYAML
)

// Source records how a FlexValue's text was obtained from the raw input.
// Variants are disjoint (§3); only the fields relevant to Kind are
// meaningful.
type Source struct {
	Kind SourceKind

	// Markdown
	Lang string // empty means no language tag was present

	// Fixed
	Fixes []JSONFix

	// MultiJSON
	Index int

	// Heuristic
	Pattern string

	// Markdown scoring heuristic (§D.4 of SPEC_FULL.md); advisory only,
	// never gates success or failure.
	MarkdownScore int
}

func Direct() Source { return Source{Kind: SourceDirect} }

func Markdown(lang string) Source { return Source{Kind: SourceMarkdown, Lang: lang} }

func Fixed(fixes ...JSONFix) Source { return Source{Kind: SourceFixed, Fixes: fixes} }

func MultiJSON(index int) Source { return Source{Kind: SourceMultiJSON, Index: index} }

func MultiJSONArray() Source { return Source{Kind: SourceMultiJSONArray} }

func Heuristic(pattern string) Source { return Source{Kind: SourceHeuristic, Pattern: pattern} }

func YAML() Source { return Source{Kind: SourceYAML} }

// BaseScore implements the "Source base scores" table in spec §7.
func (s Source) BaseScore() int {
	switch s.Kind {
	case SourceDirect:
		return 0
	case SourceMarkdown:
		return 10
	case SourceYAML:
		return 15
	case SourceFixed:
		total := 20
		for _, f := range s.Fixes {
			total += f.Penalty()
		}

		return total
	case SourceMultiJSONArray:
		return 25
	case SourceMultiJSON:
		return 30
	case SourceHeuristic:
		return 50
	default:
		return 0
	}
}

func (s Source) String() string {
	switch s.Kind {
	case SourceDirect:
		return "direct"
	case SourceMarkdown:
		return "markdown"
	case SourceFixed:
		return "fixed"
	case SourceMultiJSON:
		return "multi_json"
	case SourceMultiJSONArray:
		return "multi_json_array"
	case SourceHeuristic:
		return "heuristic"
	case SourceYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

// JSONFix is a closed enum naming a repair applied to raw text to make it
// parse as JSON (§3, §4.3).
type JSONFix int

const (
	FixUnquotedKeys JSONFix = iota
	FixTrailingCommas
	FixSingleQuotes
	FixMissingCommas
	FixUnclosedBraces
	FixComments
	FixSmartQuotes
	FixDoubleEscaped
	FixTemplateLiterals
	FixHexNumbers
	FixUnescapedNewlines
	FixJavaScriptFunctions
	FixTripleQuotedStrings
	FixUnquotedValues
	FixFieldNormalization
)

// Penalty implements the "Fix-type penalties" table in spec §7.
func (f JSONFix) Penalty() int {
	switch f {
	case FixTrailingCommas, FixComments, FixSmartQuotes, FixDoubleEscaped,
		FixTemplateLiterals, FixUnescapedNewlines, FixJavaScriptFunctions:
		return 1
	case FixSingleQuotes, FixUnquotedKeys, FixHexNumbers, FixTripleQuotedStrings:
		return 2
	case FixMissingCommas, FixUnclosedBraces:
		return 3
	case FixFieldNormalization:
		return 4
	case FixUnquotedValues:
		return 5
	default:
		return 0
	}
}

func (f JSONFix) String() string {
	switch f {
	case FixUnquotedKeys:
		return "unquoted_keys"
	case FixTrailingCommas:
		return "trailing_commas"
	case FixSingleQuotes:
		return "single_quotes"
	case FixMissingCommas:
		return "missing_commas"
	case FixUnclosedBraces:
		return "unclosed_braces"
	case FixComments:
		return "comments"
	case FixSmartQuotes:
		return "smart_quotes"
	case FixDoubleEscaped:
		return "double_escaped"
	case FixTemplateLiterals:
		return "template_literals"
	case FixHexNumbers:
		return "hex_numbers"
	case FixUnescapedNewlines:
		return "unescaped_newlines"
	case FixJavaScriptFunctions:
		return "javascript_functions"
	case FixTripleQuotedStrings:
		return "triple_quoted_strings"
	case FixUnquotedValues:
		return "unquoted_values"
	case FixFieldNormalization:
		return "field_normalization"
	default:
		return "unknown"
	}
}
