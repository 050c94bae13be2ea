package coerce

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// snakeCase implements spec §4.9 rule 2: lowercase upper letters and
// precede them with '_'; treat '-' and '.' as '_'.
func snakeCase(s string) string {
	var b strings.Builder

	for i, r := range s {
		switch {
		case r == '-' || r == '.':
			b.WriteByte('_')
		case unicode.IsUpper(r):
			if i > 0 {
				b.WriteByte('_')
			}

			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(r)
		}
	}

	return b.String()
}

// camelCase implements spec §4.9 rule 2: strip '_' and uppercase the
// following letter.
func camelCase(s string) string {
	var b strings.Builder

	upperNext := false

	for _, r := range s {
		if r == '_' || r == '-' || r == '.' {
			upperNext = true
			continue
		}

		if upperNext {
			b.WriteRune(unicode.ToUpper(r))
			upperNext = false

			continue
		}

		b.WriteRune(r)
	}

	return b.String()
}

// accentStripper removes combining marks after NFKD normalization, using
// golang.org/x/text/unicode/norm and golang.org/x/text/runes — the same
// approach this repository's teacher packages use for Unicode handling
// rather than a hand-rolled diacritic table.
var accentStripper = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

var ligatures = strings.NewReplacer(
	"ß", "ss",
	"æ", "ae",
	"œ", "oe",
	"ø", "o",
	"Æ", "AE",
	"Œ", "OE",
	"Ø", "O",
)

// stripAccents implements spec §4.9 rule 3: remove combining marks after
// NFKD, expanding the named ligatures first (NFKD alone does not decompose
// them).
func stripAccents(s string) string {
	expanded := ligatures.Replace(s)

	out, _, err := transform.String(accentStripper, expanded)
	if err != nil {
		return expanded
	}

	return out
}

// stripPunctuation implements spec §4.9 rule 4: keep alphanumerics, '-',
// '_'.
func stripPunctuation(s string) string {
	var b strings.Builder

	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_' {
			b.WriteRune(r)
		}
	}

	return b.String()
}
