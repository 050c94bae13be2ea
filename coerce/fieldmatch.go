package coerce

import "strings"

// MatchField implements the field matcher of spec §4.9: given an expected
// field name and an object's key set (in order), return the first key
// satisfying the earliest-matching rule, and which rule matched (numbered
// 1 to 6). allowSubstring gates rule 6, which spec marks as optional
// ("only if substring matching is enabled for the matcher").
func MatchField(expected string, keys []string, allowSubstring bool) (key string, rule int, ok bool) {
	// Rule 1: exact match.
	for _, k := range keys {
		if k == expected {
			return k, 1, true
		}
	}

	// Rule 2: snake_case/camelCase equivalence, checked both directions.
	snakeE, camelE := snakeCase(expected), camelCase(expected)

	for _, k := range keys {
		snakeK, camelK := snakeCase(k), camelCase(k)

		if k == snakeE || k == camelE || snakeK == expected || snakeK == snakeE ||
			camelK == expected || camelK == camelE {
			return k, 2, true
		}
	}

	// Rule 3: accent-stripped equality.
	accentE := stripAccents(expected)

	for _, k := range keys {
		if stripAccents(k) == accentE {
			return k, 3, true
		}
	}

	// Rule 4: punctuation-stripped equality.
	punctE := stripPunctuation(expected)

	for _, k := range keys {
		if stripPunctuation(k) == punctE {
			return k, 4, true
		}
	}

	// Rule 5: punctuation-stripped, lowercased equality.
	lowerPunctE := strings.ToLower(punctE)

	for _, k := range keys {
		if strings.ToLower(stripPunctuation(k)) == lowerPunctE {
			return k, 5, true
		}
	}

	// Rule 6: optional substring match, either direction, case-insensitive.
	if allowSubstring {
		lowerE := strings.ToLower(expected)

		for _, k := range keys {
			lowerK := strings.ToLower(k)
			if strings.Contains(lowerE, lowerK) || strings.Contains(lowerK, lowerE) {
				return k, 6, true
			}
		}
	}

	return "", -1, false
}
