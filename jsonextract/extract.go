// Package jsonextract implements the candidate extractors of spec §4.2:
// direct, balanced-brace heuristic, and markdown fenced-block.
package jsonextract

import (
	"regexp"
	"sort"
	"strings"
)

// MaxInputSize is the heuristic extractor's DoS guard (§4.2, §5): inputs
// larger than this are rejected outright.
const MaxInputSize = 1 << 20 // 1 MiB

// MaxCandidates caps how many heuristic spans are returned (§4.2).
const MaxCandidates = 20

// Candidate is a substring extracted from the input, annotated with how it
// was found.
type Candidate struct {
	Content string
	Pattern string // "object" or "array", for Heuristic candidates
	Lang    string // language tag, for Markdown candidates; empty if absent
}

// Direct returns the trimmed input as a single candidate, if non-empty
// (§4.2 Direct, priority 1).
func Direct(input string) []Candidate {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return nil
	}

	return []Candidate{{Content: trimmed}}
}

type span struct {
	start, end int
	kind       byte // '{' or '['
}

// Heuristic scans for balanced {...} and [...] spans, tracking string
// state (both '"' and '\'' as delimiters, with '\' escaping inside
// strings). Spans are sorted by start, ties preferring the longest; any
// span overlapping an already-kept (longer, earlier) span is discarded.
// Capped at MaxCandidates; inputs over MaxInputSize are rejected (§4.2).
func Heuristic(input string) []Candidate {
	if len(input) > MaxInputSize {
		return nil
	}

	b := []byte(input)

	var spans []span

	var stack []int // indices into an opener stack, paired with kind via parallel slice
	var kinds []byte

	inString := false
	quote := byte(0)
	escaped := false

	for i := 0; i < len(b); i++ {
		c := b[i]

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
			stack = append(stack, i)
			kinds = append(kinds, c)
		case '}', ']':
			want := byte('{')
			if c == ']' {
				want = '['
			}

			for len(stack) > 0 {
				top := len(stack) - 1
				startIdx := stack[top]
				k := kinds[top]
				stack = stack[:top]
				kinds = kinds[:top]

				if k == want {
					spans = append(spans, span{start: startIdx, end: i + 1, kind: k})
					break
				}
			}
		}
	}

	sort.SliceStable(spans, func(i, j int) bool {
		if spans[i].start != spans[j].start {
			return spans[i].start < spans[j].start
		}

		return (spans[i].end - spans[i].start) > (spans[j].end - spans[j].start)
	})

	var kept []span

	overlaps := func(a, b span) bool {
		return a.start < b.end && b.start < a.end
	}

	for _, s := range spans {
		keep := true

		for _, k := range kept {
			if overlaps(s, k) {
				keep = false
				break
			}
		}

		if keep {
			kept = append(kept, s)
		}
	}

	sort.SliceStable(kept, func(i, j int) bool { return kept[i].start < kept[j].start })

	var out []Candidate

	for _, s := range kept {
		if len(out) >= MaxCandidates {
			break
		}

		pattern := "object"
		if s.kind == '[' {
			pattern = "array"
		}

		out = append(out, Candidate{Content: string(b[s.start:s.end]), Pattern: pattern})
	}

	return out
}

var fenceRe = regexp.MustCompile("(?s)```([A-Za-z0-9_+-]*)\\s*\\n(.*?)```")

// Markdown finds fenced code blocks and emits each block's body with its
// language tag (§4.2 Markdown fence).
func Markdown(input string) []Candidate {
	matches := fenceRe.FindAllStringSubmatch(input, -1)

	var out []Candidate

	for _, m := range matches {
		out = append(out, Candidate{Content: strings.TrimSpace(m[2]), Lang: m[1]})
	}

	return out
}
