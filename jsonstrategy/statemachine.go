package jsonstrategy

import (
	"strings"

	"go.jacobcolvin.com/flexparse/flexvalue"
	"go.jacobcolvin.com/flexparse/jsonstrict"
)

// frameKind mirrors spec §4.4's explicit stack of (container, context)
// frames: container is Object or Array.
type frameKind byte

const (
	frameObject frameKind = '{'
	frameArray  frameKind = '['
)

// StateMachineTolerant walks the input character by character with an
// explicit container stack, tracking in-string and escape flags. It
// splits the input into top-level fragments (each time the stack empties
// after having been non-empty), and on EOF with a non-empty stack it
// synthesizes the missing closers for the final fragment before
// re-attempting a strict parse of every completed fragment. Multiple
// concatenated root-level values produce multiple candidates (§4.4
// StateMachineTolerant).
func StateMachineTolerant(input string) []*flexvalue.FlexValue {
	b := []byte(input)

	var stack []frameKind

	inString := false
	quote := byte(0)
	escaped := false

	fragStart := -1

	var fragments []string

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
			if fragStart < 0 && len(stack) == 0 {
				// a bare top-level string isn't a container fragment;
				// handled by other strategies.
				continue
			}

			inString = true
			quote = c
		case '{', '[':
			if fragStart < 0 {
				fragStart = i
			}

			stack = append(stack, frameKind(c))
		case '}', ']':
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}

			if len(stack) == 0 && fragStart >= 0 {
				fragments = append(fragments, string(b[fragStart:i+1]))
				fragStart = -1
			}
		}
	}

	if fragStart >= 0 && len(stack) > 0 {
		var closers strings.Builder

		if inString {
			closers.WriteByte('"')
		}

		for i := len(stack) - 1; i >= 0; i-- {
			if stack[i] == frameArray {
				closers.WriteByte(']')
			}
		}

		for i := len(stack) - 1; i >= 0; i-- {
			if stack[i] == frameObject {
				closers.WriteByte('}')
			}
		}

		fragments = append(fragments, string(b[fragStart:])+closers.String())
	}

	var out []*flexvalue.FlexValue

	for _, frag := range fragments {
		v, err := jsonstrict.Parse(frag)
		if err != nil {
			continue
		}

		out = append(out, flexvalue.New(v, flexvalue.Heuristic("state_machine")))
	}

	return out
}
