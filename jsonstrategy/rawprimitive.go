package jsonstrategy

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"go.jacobcolvin.com/flexparse/flexvalue"
)

// numberRe matches the comma/currency/percent/fraction-tolerant number
// shape described in §4.6: an optional sign, optional currency symbol,
// digit groups with optional thousands commas, optional decimal part,
// optional exponent, optional trailing percent.
var numberRe = regexp.MustCompile(`^([-+]?)\p{Sc}?(?:\d+(?:,\d+)*(?:\.\d+)?|\d+\.\d+|\d+|\.\d+)(?:[eE][-+]?\d+)?%?$`)

var fractionRe = regexp.MustCompile(`^([-+]?\d+)\s*/\s*(\d+)$`)

// RawPrimitive handles bare (non-{, non-[, non-") inputs that contain
// neither '{' nor '[': try bool, then number (including comma-grouped and
// fraction forms), then fall back to treating the whole input as a string.
// It also tries to extract an unambiguous bool from surrounding prose
// (§4.4 RawPrimitive).
func RawPrimitive(input string) (*flexvalue.FlexValue, bool) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return nil, false
	}

	if trimmed[0] == '{' || trimmed[0] == '[' || trimmed[0] == '"' {
		return nil, false
	}

	if strings.ContainsAny(trimmed, "{[") {
		return nil, false
	}

	lower := strings.ToLower(trimmed)
	if lower == "true" {
		return flexvalue.New(flexvalue.Bool(true), flexvalue.Direct()), true
	}

	if lower == "false" {
		return flexvalue.New(flexvalue.Bool(false), flexvalue.Direct()), true
	}

	if fv, ok := parseFraction(trimmed); ok {
		return fv, true
	}

	if fv, ok := parseCommaCurrencyNumber(trimmed); ok {
		return fv, true
	}

	if fv, ok := extractUnambiguousBool(trimmed); ok {
		return fv, true
	}

	return flexvalue.New(flexvalue.String(trimmed), flexvalue.Direct()), true
}

func parseFraction(s string) (*flexvalue.FlexValue, bool) {
	m := fractionRe.FindStringSubmatch(s)
	if m == nil {
		return nil, false
	}

	num, err1 := strconv.ParseFloat(m[1], 64)
	den, err2 := strconv.ParseFloat(m[2], 64)

	if err1 != nil || err2 != nil || den == 0 {
		return nil, false
	}

	return flexvalue.New(flexvalue.Float(num/den), flexvalue.Direct()), true
}

func parseCommaCurrencyNumber(s string) (*flexvalue.FlexValue, bool) {
	if !numberRe.MatchString(s) {
		return nil, false
	}

	cleaned := stripCurrencySymbols(s)
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.TrimSuffix(cleaned, "%")

	if f, err := strconv.ParseFloat(cleaned, 64); err == nil {
		if i, err2 := strconv.ParseInt(cleaned, 10, 64); err2 == nil && !strings.ContainsAny(cleaned, ".eE") {
			return flexvalue.New(flexvalue.Int(i), flexvalue.Direct()), true
		}

		return flexvalue.New(flexvalue.Float(f), flexvalue.Direct()), true
	}

	return nil, false
}

func stripCurrencySymbols(s string) string {
	var b strings.Builder

	for _, r := range s {
		if unicode.Is(unicode.Sc, r) {
			continue
		}

		b.WriteRune(r)
	}

	return b.String()
}

// extractUnambiguousBool extracts a bool from prose containing "true" or
// "false" as whole words, only when exactly one of the two appears and
// does not appear more than once (§4.4 RawPrimitive, last sentence).
func extractUnambiguousBool(s string) (*flexvalue.FlexValue, bool) {
	lower := strings.ToLower(s)

	trueCount := countWord(lower, "true")
	falseCount := countWord(lower, "false")

	if trueCount == 1 && falseCount == 0 {
		return flexvalue.New(flexvalue.Bool(true), flexvalue.Direct()), true
	}

	if falseCount == 1 && trueCount == 0 {
		return flexvalue.New(flexvalue.Bool(false), flexvalue.Direct()), true
	}

	return nil, false
}

func countWord(s, word string) int {
	count := 0
	idx := 0

	for {
		i := strings.Index(s[idx:], word)
		if i < 0 {
			break
		}

		pos := idx + i

		before := byte(' ')
		if pos > 0 {
			before = s[pos-1]
		}

		after := byte(' ')
		if pos+len(word) < len(s) {
			after = s[pos+len(word)]
		}

		if !isWordByte(before) && !isWordByte(after) {
			count++
		}

		idx = pos + len(word)
	}

	return count
}

func isWordByte(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
