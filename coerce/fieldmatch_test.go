package coerce_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go.jacobcolvin.com/flexparse/coerce"
)

func TestMatchField(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		expected       string
		keys           []string
		allowSubstring bool
		wantKey        string
		wantRule       int
		wantOK         bool
	}{
		"exact match": {
			expected: "name", keys: []string{"name", "age"},
			wantKey: "name", wantRule: 1, wantOK: true,
		},
		"snake to camel": {
			expected: "firstName", keys: []string{"first_name"},
			wantKey: "first_name", wantRule: 2, wantOK: true,
		},
		"camel to snake": {
			expected: "first_name", keys: []string{"firstName"},
			wantKey: "firstName", wantRule: 2, wantOK: true,
		},
		"accent stripped": {
			expected: "resume", keys: []string{"résumé"},
			wantKey: "résumé", wantRule: 3, wantOK: true,
		},
		"punctuation stripped": {
			expected: "phone number", keys: []string{"phonenumber"},
			wantKey: "phonenumber", wantRule: 4, wantOK: true,
		},
		"case insensitive": {
			expected: "email", keys: []string{"EMAIL"},
			wantKey: "EMAIL", wantRule: 5, wantOK: true,
		},
		"substring requires opt-in": {
			expected: "email", keys: []string{"primaryEmailAddress"},
			allowSubstring: false, wantOK: false,
		},
		"substring when enabled": {
			expected: "email", keys: []string{"primaryemailaddress"},
			allowSubstring: true, wantRule: 6, wantOK: true, wantKey: "primaryemailaddress",
		},
		"no match": {
			expected: "missing", keys: []string{"a", "b"},
			wantOK: false,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			key, rule, ok := coerce.MatchField(tc.expected, tc.keys, tc.allowSubstring)
			assert.Equal(t, tc.wantOK, ok)

			if tc.wantOK {
				assert.Equal(t, tc.wantKey, key)
				assert.Equal(t, tc.wantRule, rule)
			}
		})
	}
}
