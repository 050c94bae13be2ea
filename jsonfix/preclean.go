// Package jsonfix implements the pre-cleaner (spec §4.1) and fourteen of
// the fifteen JsonFix repair strategies (all but FieldNormalization) plus
// their composition (spec §4.3).
package jsonfix

import "strings"

// invisibleRunes are the zero-width/bidi control characters spec §4.1.2
// says must be stripped wherever they occur, including inside strings,
// since "these are never semantically significant."
var invisibleRunes = map[rune]bool{
	'​': true, '‌': true, '‍': true, '‎': true, '‏': true,
	'‪': true, '‫': true, '‬': true, '‭': true, '‮': true,
	'﻿': true,
}

// StripInvisible removes zero-width and bidi control characters (§4.1.2).
func StripInvisible(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	for _, r := range s {
		if invisibleRunes[r] {
			continue
		}

		b.WriteRune(r)
	}

	return b.String()
}

// StripGratuitousBackslashes replaces `\"` with `"` outside of JSON string
// values, tracking string state with a character-level scanner so legitimate
// escaped quotes inside strings survive (§4.1.3).
func StripGratuitousBackslashes(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	inString := false
	quote := byte(0)

	runes := []byte(s)
	for i := 0; i < len(runes); i++ {
		c := runes[i]

		if inString {
			if c == '\\' && i+1 < len(runes) {
				b.WriteByte(c)
				b.WriteByte(runes[i+1])
				i++

				continue
			}

			if c == quote {
				inString = false
			}

			b.WriteByte(c)

			continue
		}

		if c == '"' || c == '\'' {
			inString = true
			quote = c
			b.WriteByte(c)

			continue
		}

		// Outside a string: a backslash immediately followed by a quote
		// that is not itself escaped is gratuitous noise.
		if c == '\\' && i+1 < len(runes) && runes[i+1] == '"' {
			b.WriteByte('"')
			i++

			continue
		}

		b.WriteByte(c)
	}

	return b.String()
}

// maxNestingDepth is the brace/bracket depth beyond which ExtractDeepNesting
// engages (§4.1.1, default per spec §5).
const maxNestingDepth = 50

// ExtractDeepNesting counts maximum brace/bracket depth outside of strings
// and, if it exceeds maxNestingDepth, strips matching leading openers and
// trailing closers until the interior begins with '{' or '[' and ends with
// the matching close. This defends against stack-overflow bombs like
// `{{{...{"k":1}...}}}` (§4.1.1, scenario F of §8).
func ExtractDeepNesting(s string) (string, bool) {
	depth, maxDepth := 0, 0
	inString := false
	quote := byte(0)
	escaped := false

	b := []byte(s)
	for _, c := range b {
		if inString {
			if escaped {
				escaped = false
				continue
			}

			switch c {
			case '\\':
				escaped = true
			case quote:
				inString = false
			}

			continue
		}

		switch c {
		case '"', '\'':
			inString = true
			quote = c
		case '{', '[':
			depth++
			if depth > maxDepth {
				maxDepth = depth
			}
		case '}', ']':
			depth--
		}
	}

	if maxDepth <= maxNestingDepth {
		return s, false
	}

	start, end := 0, len(b)

	for start < end && (b[start] == '{' || b[start] == '[' || isSpace(b[start])) {
		if b[start] == '{' || b[start] == '[' {
			break
		}

		start++
	}

	// Strip leading openers until we reach a point where stripping one
	// more would leave content that no longer itself starts with { or [.
	for start+1 < end && (b[start] == '{' || b[start] == '[') && (b[start+1] == '{' || b[start+1] == '[') {
		start++
	}

	for end > start && isSpace(b[end-1]) {
		end--
	}

	for end > start+1 && (b[end-1] == '}' || b[end-1] == ']') && (b[end-2] == '}' || b[end-2] == ']') {
		end--
	}

	return string(b[start:end]), true
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// Preclean runs the full pre-cleaning pipeline in the order spec §4.1
// lists: deep-nesting extraction, then invisible-character removal, then
// gratuitous-backslash removal. It returns the cleaned text and whether
// deep-nesting extraction fired.
func Preclean(s string) (string, bool) {
	s, extracted := ExtractDeepNesting(s)
	s = StripInvisible(s)
	s = StripGratuitousBackslashes(s)

	return s, extracted
}
