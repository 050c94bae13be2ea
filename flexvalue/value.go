// Package flexvalue defines the tagged value tree and provenance metadata
// that flow between the extraction and coercion stages of flexparse.
//
// A [FlexValue] is a [JSONValue] plus everything the rest of the pipeline
// needs to rank it against other candidates and explain, after the fact,
// what had to be changed to make it fit a target type: where it came from
// ([Source]), what repairs were applied to the raw text ([JSONFix], carried
// inside a Fixed source), what coercions were applied to the tree
// ([Transformation]), and a confidence score that decays every time one of
// those modifications happens.
package flexvalue

import (
	"sort"
	"strconv"
	"strings"
)

// JSONKind discriminates the variants of [JSONValue].
type JSONKind int

const (
	KindNull JSONKind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindArray
	KindObject
)

func (k JSONKind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "integer"
	case KindFloat:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// JSONValue is a tagged JSON tree that preserves the integer/float
// distinction a plain any-typed decode would erase. Zero value is Null.
type JSONValue struct {
	Kind JSONKind

	Bool   bool
	Int    int64
	Float  float64
	String string
	Array  []JSONValue
	Object *OrderedMap
}

// Null returns the JSON null value.
func Null() JSONValue { return JSONValue{Kind: KindNull} }

// Bool returns a boolean JSON value.
func Bool(b bool) JSONValue { return JSONValue{Kind: KindBool, Bool: b} }

// Int returns an integer JSON value.
func Int(i int64) JSONValue { return JSONValue{Kind: KindInt, Int: i} }

// Float returns a floating point JSON value.
func Float(f float64) JSONValue { return JSONValue{Kind: KindFloat, Float: f} }

// String returns a string JSON value.
func String(s string) JSONValue { return JSONValue{Kind: KindString, String: s} }

// Arr returns an array JSON value.
func Arr(vs ...JSONValue) JSONValue { return JSONValue{Kind: KindArray, Array: vs} }

// Obj returns an object JSON value wrapping m. Use [NewOrderedMap] to build
// m when insertion order must be preserved (it always should be: spec
// requires "Keys are preserved verbatim").
func Obj(m *OrderedMap) JSONValue { return JSONValue{Kind: KindObject, Object: m} }

func (v JSONValue) IsNull() bool { return v.Kind == KindNull }

// Equal reports deep structural equality. FlexValue equality/hashing
// considers only Value (§3), so isomorphic fragments collapse for the
// purposes of the circular-reference visited set; this is that comparison.
func (v JSONValue) Equal(o JSONValue) bool {
	if v.Kind != o.Kind {
		return false
	}

	switch v.Kind {
	case KindNull:
		return true
	case KindBool:
		return v.Bool == o.Bool
	case KindInt:
		return v.Int == o.Int
	case KindFloat:
		return v.Float == o.Float
	case KindString:
		return v.String == o.String
	case KindArray:
		if len(v.Array) != len(o.Array) {
			return false
		}

		for i := range v.Array {
			if !v.Array[i].Equal(o.Array[i]) {
				return false
			}
		}

		return true
	case KindObject:
		return v.Object.Equal(o.Object)
	default:
		return false
	}
}

// structuralKey renders a value into a string suitable as a circular
// reference visited-set key. It is not meant to be a canonical or
// round-trippable encoding; it only needs to be injective enough in
// practice to detect true structural repetition.
func (v JSONValue) structuralKey() string {
	var sb sliceBuilder

	v.writeKey(&sb)

	return string(sb)
}

// Key exposes structuralKey for use as a circular-reference visited-set key
// outside this package (coerce.Context tracks (type_name, value) pairs
// against raw JSONValues, not only FlexValues).
func (v JSONValue) Key() string { return v.structuralKey() }

type sliceBuilder []byte

func (v JSONValue) writeKey(sb *sliceBuilder) {
	switch v.Kind {
	case KindNull:
		*sb = append(*sb, "n"...)
	case KindBool:
		if v.Bool {
			*sb = append(*sb, "bt"...)
		} else {
			*sb = append(*sb, "bf"...)
		}
	case KindInt:
		*sb = append(*sb, "i"...)
		*sb = appendInt(*sb, v.Int)
	case KindFloat:
		*sb = append(*sb, "f"...)
		*sb = appendInt(*sb, int64(v.Float*1e6))
	case KindString:
		*sb = append(*sb, "s"...)
		*sb = append(*sb, v.String...)
	case KindArray:
		*sb = append(*sb, '[')

		for _, e := range v.Array {
			e.writeKey(sb)
			*sb = append(*sb, ',')
		}

		*sb = append(*sb, ']')
	case KindObject:
		*sb = append(*sb, '{')

		if v.Object != nil {
			keys := append([]string(nil), v.Object.Keys()...)
			sort.Strings(keys)

			for _, k := range keys {
				val, _ := v.Object.Get(k)
				*sb = append(*sb, k...)
				*sb = append(*sb, ':')
				val.writeKey(sb)
				*sb = append(*sb, ',')
			}
		}

		*sb = append(*sb, '}')
	}
}

// MarshalJSONCompact renders v as compact JSON text, preserving object key
// order. Used by lenient string coercion's JsonToString branch (§4.6),
// which needs a deterministic textual form rather than a round-trippable
// one.
func (v JSONValue) MarshalJSONCompact() ([]byte, error) {
	var b strings.Builder

	v.writeJSON(&b)

	return []byte(b.String()), nil
}

func (v JSONValue) writeJSON(b *strings.Builder) {
	switch v.Kind {
	case KindNull:
		b.WriteString("null")
	case KindBool:
		b.WriteString(strconv.FormatBool(v.Bool))
	case KindInt:
		b.WriteString(strconv.FormatInt(v.Int, 10))
	case KindFloat:
		b.WriteString(strconv.FormatFloat(v.Float, 'g', -1, 64))
	case KindString:
		b.WriteString(strconv.Quote(v.String))
	case KindArray:
		b.WriteByte('[')

		for i, e := range v.Array {
			if i > 0 {
				b.WriteByte(',')
			}

			e.writeJSON(b)
		}

		b.WriteByte(']')
	case KindObject:
		b.WriteByte('{')

		if v.Object != nil {
			for i, k := range v.Object.Keys() {
				if i > 0 {
					b.WriteByte(',')
				}

				val, _ := v.Object.Get(k)
				b.WriteString(strconv.Quote(k))
				b.WriteByte(':')
				val.writeJSON(b)
			}
		}

		b.WriteByte('}')
	}
}

func appendInt(b []byte, n int64) []byte {
	if n == 0 {
		return append(b, '0')
	}

	if n < 0 {
		b = append(b, '-')
		n = -n
	}

	var tmp [20]byte

	i := len(tmp)
	for n > 0 {
		i--
		tmp[i] = byte('0' + n%10)
		n /= 10
	}

	return append(b, tmp[i:]...)
}
