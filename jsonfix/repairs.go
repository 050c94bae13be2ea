package jsonfix

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"go.jacobcolvin.com/flexparse/flexvalue"
)

// RepairFunc is a pure string-to-string repair: it returns the modified
// text and true only when it actually changed something (spec §4.3: "a
// pure str → Option<(str, JsonFix)>").
type RepairFunc func(s string) (string, bool)

// Repairs maps every JsonFix except FixFieldNormalization (which has no
// implementation) to its implementation, in the canonical order spec
// §4.3's final fallback chain applies them.
var Repairs = []struct {
	Fix  flexvalue.JSONFix
	Func RepairFunc
}{
	{flexvalue.FixSmartQuotes, SmartQuotes},
	{flexvalue.FixComments, Comments},
	{flexvalue.FixUnquotedKeys, UnquotedKeys},
	{flexvalue.FixSingleQuotes, SingleQuotes},
	{flexvalue.FixHexNumbers, HexNumbers},
	{flexvalue.FixTripleQuotedStrings, TripleQuotedStrings},
	{flexvalue.FixTemplateLiterals, TemplateLiterals},
	{flexvalue.FixDoubleEscaped, DoubleEscaped},
	{flexvalue.FixJavaScriptFunctions, JavaScriptFunctions},
	{flexvalue.FixUnescapedNewlines, UnescapedNewlines},
	{flexvalue.FixMissingCommas, MissingCommas},
	{flexvalue.FixTrailingCommas, TrailingCommas},
	{flexvalue.FixUnclosedBraces, UnclosedBraces},
	{flexvalue.FixUnquotedValues, UnquotedValues},
}

// stringScanner tracks whether position i in a byte slice sits inside a
// JSON string literal, supporting both '"' and '\'' delimiters with '\'
// escaping, as most repairs need this to avoid touching string content.
type stringScanner struct {
	inString bool
	quote    byte
	escaped  bool
}

func (s *stringScanner) advance(c byte) (wasInString bool) {
	wasInString = s.inString

	if s.inString {
		if s.escaped {
			s.escaped = false
			return wasInString
		}

		switch c {
		case '\\':
			s.escaped = true
		case s.quote:
			s.inString = false
		}

		return wasInString
	}

	if c == '"' || c == '\'' {
		s.inString = true
		s.quote = c
	}

	return wasInString
}

// TrailingCommas drops commas whose next non-whitespace character is '}'
// or ']' (§4.3 TrailingCommas).
func TrailingCommas(s string) (string, bool) {
	b := []byte(s)

	var out []byte

	scan := &stringScanner{}
	changed := false

	for i := 0; i < len(b); i++ {
		c := b[i]
		wasInString := scan.advance(c)

		if !wasInString && c == ',' {
			j := i + 1
			for j < len(b) && isSpace(b[j]) {
				j++
			}

			if j < len(b) && (b[j] == '}' || b[j] == ']') {
				changed = true
				continue
			}
		}

		out = append(out, c)
	}

	if !changed {
		return s, false
	}

	return string(out), true
}

// SmartQuotes replaces curly quote characters with their ASCII
// counterparts (§4.3 SmartQuotes).
func SmartQuotes(s string) (string, bool) {
	replacer := strings.NewReplacer(
		"“", `"`, "”", `"`, "„", `"`, "‟", `"`,
		"‘", "'", "’", "'", "‚", "'", "‛", "'",
	)

	out := replacer.Replace(s)

	return out, out != s
}

// Comments strips `// ...` to end of line and `/* ... */` block comments,
// respecting string state (§4.3 Comments).
func Comments(s string) (string, bool) {
	b := []byte(s)

	var out []byte

	scan := &stringScanner{}
	changed := false

	for i := 0; i < len(b); i++ {
		wasInString := scan.advance(b[i])

		if !wasInString && !scan.inString && b[i] == '/' && i+1 < len(b) {
			if b[i+1] == '/' {
				j := i
				for j < len(b) && b[j] != '\n' {
					j++
				}

				i = j - 1
				changed = true

				continue
			}

			if b[i+1] == '*' {
				j := i + 2
				for j+1 < len(b) && !(b[j] == '*' && b[j+1] == '/') {
					j++
				}

				i = j + 1
				changed = true

				continue
			}
		}

		out = append(out, b[i])
	}

	if !changed {
		return s, false
	}

	return string(out), true
}

var identStartRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*`)

// UnquotedKeys wraps bare identifiers in double quotes when they appear
// after '{' or ',' and are followed (over whitespace) by ':' (§4.3
// UnquotedKeys).
func UnquotedKeys(s string) (string, bool) {
	b := []byte(s)

	var out strings.Builder

	scan := &stringScanner{}
	changed := false
	expectKey := false

	for i := 0; i < len(b); i++ {
		c := b[i]
		wasInString := scan.advance(c)

		if wasInString || scan.inString {
			out.WriteByte(c)
			continue
		}

		if c == '{' || c == ',' {
			out.WriteByte(c)
			expectKey = true

			continue
		}

		if expectKey && isSpace(c) {
			out.WriteByte(c)
			continue
		}

		if expectKey {
			expectKey = false

			if loc := identStartRe.FindString(string(b[i:])); loc != "" {
				j := i + len(loc)

				k := j
				for k < len(b) && isSpace(b[k]) {
					k++
				}

				if k < len(b) && b[k] == ':' {
					out.WriteByte('"')
					out.WriteString(loc)
					out.WriteByte('"')
					i = j - 1
					changed = true

					continue
				}
			}
		}

		out.WriteByte(c)
	}

	if !changed {
		return s, false
	}

	return out.String(), true
}

// isDelimiterSingleQuote implements §4.3's SingleQuotes heuristic: a '\''
// is a string delimiter (rather than an apostrophe) when it is outside any
// double-quoted string and either the previous non-space character is one
// of `:[{,` or the next non-space character is one of `}],:`.
func isDelimiterSingleQuote(b []byte, i int) bool {
	prev := byte(0)
	for j := i - 1; j >= 0; j-- {
		if !isSpace(b[j]) {
			prev = b[j]
			break
		}
	}

	next := byte(0)
	for j := i + 1; j < len(b); j++ {
		if !isSpace(b[j]) {
			next = b[j]
			break
		}
	}

	if strings.IndexByte(":[{,", prev) >= 0 {
		return true
	}

	if strings.IndexByte("}],:", next) >= 0 {
		return true
	}

	return false
}

// SingleQuotes converts delimiter single quotes to double quotes, leaving
// apostrophes alone (§4.3 SingleQuotes; the heuristic is an explicitly
// flagged open question in spec §9 — this implements the documented
// observed heuristic as-is without tightening it).
func SingleQuotes(s string) (string, bool) {
	b := []byte(s)

	var out []byte

	inDouble := false
	inSingleString := false
	changed := false

	for i := 0; i < len(b); i++ {
		c := b[i]

		if inDouble {
			out = append(out, c)

			if c == '\\' && i+1 < len(b) {
				i++
				out = append(out, b[i])

				continue
			}

			if c == '"' {
				inDouble = false
			}

			continue
		}

		if inSingleString {
			if c == '\\' && i+1 < len(b) {
				out = append(out, c, b[i+1])
				i++

				continue
			}

			if c == '\'' && isDelimiterSingleQuote(b, i) {
				out = append(out, '"')
				inSingleString = false
				changed = true

				continue
			}

			out = append(out, c)

			continue
		}

		if c == '"' {
			inDouble = true
			out = append(out, c)

			continue
		}

		if c == '\'' && isDelimiterSingleQuote(b, i) {
			out = append(out, '"')
			inSingleString = true
			changed = true

			continue
		}

		out = append(out, c)
	}

	if !changed {
		return s, false
	}

	return string(out), true
}

// MissingCommas inserts a comma between two adjacent JSON tokens when a
// closing quote/brace/bracket is followed directly (no separator, only
// whitespace) by another opener/quote (§4.3 MissingCommas).
func MissingCommas(s string) (string, bool) {
	b := []byte(s)

	var out []byte

	scan := &stringScanner{}
	changed := false

	for i := 0; i < len(b); i++ {
		c := b[i]
		wasInString := scan.advance(c)

		out = append(out, c)

		if wasInString && !scan.inString && strings.IndexByte("\"'}]", c) >= 0 {
			j := i + 1
			for j < len(b) && isSpace(b[j]) {
				j++
			}

			if j < len(b) && strings.IndexByte("\"'{[", b[j]) >= 0 {
				out = append(out, ',')
				changed = true
			}
		} else if !scan.inString && (c == '}' || c == ']') {
			j := i + 1
			for j < len(b) && isSpace(b[j]) {
				j++
			}

			if j < len(b) && strings.IndexByte("\"'{[", b[j]) >= 0 {
				out = append(out, ',')
				changed = true
			}
		}
	}

	if !changed {
		return s, false
	}

	return string(out), true
}

// UnclosedBraces pre-scans for unclosed '{'/'[' and an unterminated
// string, then appends the missing closers: brackets before braces, and a
// terminating '"' first if a string was left open (§4.3 UnclosedBraces).
func UnclosedBraces(s string) (string, bool) {
	b := []byte(s)

	var stack []byte

	scan := &stringScanner{}

	for i := 0; i < len(b); i++ {
		c := b[i]
		wasInString := scan.advance(c)

		if wasInString || scan.inString {
			continue
		}

		switch c {
		case '{':
			stack = append(stack, '}')
		case '[':
			stack = append(stack, ']')
		case '}', ']':
			if len(stack) > 0 && stack[len(stack)-1] == c {
				stack = stack[:len(stack)-1]
			}
		}
	}

	if len(stack) == 0 && !scan.inString {
		return s, false
	}

	var out strings.Builder

	out.Write(b)

	if scan.inString {
		out.WriteByte('"')
	}

	brackets, braces := 0, 0

	for _, c := range stack {
		if c == ']' {
			brackets++
		} else {
			braces++
		}
	}

	for i := len(stack) - 1; i >= 0; i-- {
		if stack[i] == ']' {
			out.WriteByte(']')
		}
	}

	for i := len(stack) - 1; i >= 0; i-- {
		if stack[i] == '}' {
			out.WriteByte('}')
		}
	}

	_ = brackets
	_ = braces

	return out.String(), true
}

// DoubleEscaped handles the case where the entire input is itself a JSON
// string containing escaped JSON (§4.3 DoubleEscaped): if the trimmed
// input looks like `"{\"...}"` or `"[\"...]"`, parse it as a JSON string
// and, if the resulting contents is itself valid-looking JSON (starts with
// { or [ and ends with the matching close), unwrap to it.
func DoubleEscaped(s string) (string, bool) {
	trimmed := strings.TrimSpace(s)
	if len(trimmed) < 2 || trimmed[0] != '"' || trimmed[len(trimmed)-1] != '"' {
		return s, false
	}

	inner, err := strconv.Unquote(trimmed)
	if err != nil {
		return s, false
	}

	innerTrimmed := strings.TrimSpace(inner)
	if len(innerTrimmed) < 2 {
		return s, false
	}

	first, last := innerTrimmed[0], innerTrimmed[len(innerTrimmed)-1]
	if (first == '{' && last == '}') || (first == '[' && last == ']') {
		return innerTrimmed, true
	}

	return s, false
}

// TemplateLiterals strips the backticks when the trimmed input both starts
// and ends with one, or else blanket-replaces backticks with double quotes
// (§4.3 TemplateLiterals). The interior is not checked here; JSON
// validation happens when the repaired candidate is re-parsed by the
// orchestrator.
func TemplateLiterals(s string) (string, bool) {
	trimmed := strings.TrimSpace(s)

	if len(trimmed) >= 2 && trimmed[0] == '`' && trimmed[len(trimmed)-1] == '`' {
		inner := trimmed[1 : len(trimmed)-1]
		return inner, true
	}

	if strings.Contains(s, "`") {
		return strings.ReplaceAll(s, "`", `"`), true
	}

	return s, false
}

var hexRe = regexp.MustCompile(`0[xX][0-9A-Fa-f]+`)

// HexNumbers replaces hex-literal tokens outside strings with their
// decimal equivalent (§4.3 HexNumbers).
func HexNumbers(s string) (string, bool) {
	b := []byte(s)

	scan := &stringScanner{}
	inStringMask := make([]bool, len(b))

	for i, c := range b {
		inStringMask[i] = scan.advance(c) || scan.inString
	}

	changed := false

	out := hexRe.ReplaceAllStringFunc(s, func(match string) string {
		idx := strings.Index(s, match)
		if idx >= 0 && idx < len(inStringMask) && inStringMask[idx] {
			return match
		}

		n, err := strconv.ParseInt(match[2:], 16, 64)
		if err != nil {
			return match
		}

		changed = true

		return strconv.FormatInt(n, 10)
	})

	if !changed {
		return s, false
	}

	return out, true
}

// UnescapedNewlines replaces raw newlines/carriage returns inside string
// bodies with their escape sequences (§4.3 UnescapedNewlines).
func UnescapedNewlines(s string) (string, bool) {
	b := []byte(s)

	var out []byte

	scan := &stringScanner{}
	changed := false

	for i := 0; i < len(b); i++ {
		c := b[i]
		wasInString := scan.advance(c)

		if wasInString && (c == '\n' || c == '\r') {
			if c == '\n' {
				out = append(out, '\\', 'n')
			} else {
				out = append(out, '\\', 'r')
			}

			changed = true

			continue
		}

		out = append(out, c)
	}

	if !changed {
		return s, false
	}

	return string(out), true
}

// JavaScriptFunctions drops any line whose non-string portion contains the
// keyword "function", then cleans up a trailing comma left dangling
// (§4.3 JavaScriptFunctions).
func JavaScriptFunctions(s string) (string, bool) {
	lines := strings.Split(s, "\n")

	var kept []string

	changed := false

	for _, line := range lines {
		nonString := stripStringBodies(line)

		if strings.Contains(nonString, "function") {
			changed = true
			continue
		}

		kept = append(kept, line)
	}

	if !changed {
		return s, false
	}

	out := strings.Join(kept, "\n")
	out, _ = TrailingCommas(out)

	return out, true
}

func stripStringBodies(line string) string {
	var out strings.Builder

	scan := &stringScanner{}

	for i := 0; i < len(line); i++ {
		c := line[i]
		wasInString := scan.advance(c)

		if !wasInString && !scan.inString {
			out.WriteByte(c)
		}
	}

	return out.String()
}

// TripleQuotedStrings replaces `"""..."""` with a single JSON string,
// escaping interior newlines and quotes (§4.3 TripleQuotedStrings).
func TripleQuotedStrings(s string) (string, bool) {
	const delim = `"""`

	idx := strings.Index(s, delim)
	if idx < 0 {
		return s, false
	}

	changed := false

	var out strings.Builder

	rest := s

	for {
		start := strings.Index(rest, delim)
		if start < 0 {
			out.WriteString(rest)
			break
		}

		out.WriteString(rest[:start])

		afterStart := rest[start+len(delim):]

		end := strings.Index(afterStart, delim)
		if end < 0 {
			out.WriteString(rest[start:])
			break
		}

		body := afterStart[:end]
		escaped := strings.ReplaceAll(body, `\`, `\\`)
		escaped = strings.ReplaceAll(escaped, `"`, `\"`)
		escaped = strings.ReplaceAll(escaped, "\n", `\n`)
		escaped = strings.ReplaceAll(escaped, "\r", `\r`)

		out.WriteByte('"')
		out.WriteString(escaped)
		out.WriteByte('"')

		changed = true
		rest = afterStart[end+len(delim):]
	}

	if !changed {
		return s, false
	}

	return out.String(), true
}

// unquotedValueRunEnd finds the end of a bare value run, stopping at the
// first unescaped ',', '}', ']', or newline.
func unquotedValueRunEnd(b []byte, start int) int {
	i := start
	for i < len(b) {
		c := b[i]
		if c == ',' || c == '}' || c == ']' || c == '\n' {
			break
		}

		i++
	}

	for i > start && isSpace(b[i-1]) {
		i--
	}

	return i
}

// UnquotedValues wraps a bare value run following ':' in quotes when the
// run's first character is not a quote, digit, sign, or the start of
// true/false/null/{/[ (§4.3 UnquotedValues, the highest-risk repair).
func UnquotedValues(s string) (string, bool) {
	b := []byte(s)

	var out []byte

	scan := &stringScanner{}
	changed := false

	for i := 0; i < len(b); i++ {
		c := b[i]
		wasInString := scan.advance(c)

		out = append(out, c)

		if wasInString || scan.inString || c != ':' {
			continue
		}

		j := i + 1
		for j < len(b) && isSpace(b[j]) {
			j++
			out = append(out, b[j-1])
		}

		if j >= len(b) {
			continue
		}

		first := b[j]
		if first == '"' || first == '\'' || first == '{' || first == '[' ||
			(first >= '0' && first <= '9') || first == '-' || first == '+' ||
			unicode.IsSpace(rune(first)) {
			continue
		}

		if strings.HasPrefix(string(b[j:]), "true") || strings.HasPrefix(string(b[j:]), "false") ||
			strings.HasPrefix(string(b[j:]), "null") {
			continue
		}

		end := unquotedValueRunEnd(b, j)
		if end <= j {
			continue
		}

		out = append(out, '"')
		out = append(out, b[j:end]...)
		out = append(out, '"')
		i = end - 1
		changed = true
	}

	if !changed {
		return s, false
	}

	return string(out), true
}
