// Package jsonstrict provides the one strict, order-preserving JSON parser
// every other flexparse package builds on. The standard library's
// encoding/json erases object key order and the int/float distinction that
// spec.md's JsonValue model requires ("Number preserves integer vs. float
// distinction"), so this package drives encoding/json's token-level
// decoder (json.Decoder.Token) itself and assembles a
// flexvalue.OrderedMap-backed tree on top of it, rather than hand-rolling a
// full JSON lexer: the tokenizing and escape handling is still the
// standard library's, only the tree shape differs.
package jsonstrict

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"go.jacobcolvin.com/flexparse/flexvalue"
)

// ErrTrailingData is returned when the input contains more than one JSON
// value (used by the direct-JSON strategy to reject "{}  garbage").
var ErrTrailingData = errors.New("jsonstrict: trailing data after JSON value")

// Parse parses s as a single strict JSON value, preserving object key order
// and the integer/float distinction. It returns ErrTrailingData if anything
// but whitespace follows the value.
func Parse(s string) (flexvalue.JSONValue, error) {
	dec := json.NewDecoder(bytes.NewReader([]byte(s)))
	dec.UseNumber()

	val, err := decodeValue(dec)
	if err != nil {
		return flexvalue.JSONValue{}, err
	}

	if dec.More() {
		return flexvalue.JSONValue{}, ErrTrailingData
	}

	// Drain to confirm nothing but whitespace/EOF remains.
	var extra json.RawMessage
	if err := dec.Decode(&extra); err != nil && !errors.Is(err, io.EOF) {
		return flexvalue.JSONValue{}, ErrTrailingData
	} else if err == nil {
		return flexvalue.JSONValue{}, ErrTrailingData
	}

	return val, nil
}

// ParseSequence parses as many consecutive whitespace-separated JSON
// values as it can from s, stopping at the first parse error. The
// MultipleObjects and state-machine strategies do not use it; they call
// Parse on each extracted fragment.
func ParseSequence(s string) ([]flexvalue.JSONValue, error) {
	dec := json.NewDecoder(bytes.NewReader([]byte(s)))
	dec.UseNumber()

	var values []flexvalue.JSONValue

	for {
		if !dec.More() {
			break
		}

		v, err := decodeValue(dec)
		if err != nil {
			if len(values) == 0 {
				return nil, err
			}

			break
		}

		values = append(values, v)
	}

	return values, nil
}

func decodeValue(dec *json.Decoder) (flexvalue.JSONValue, error) {
	tok, err := dec.Token()
	if err != nil {
		return flexvalue.JSONValue{}, err
	}

	return decodeToken(dec, tok)
}

func decodeToken(dec *json.Decoder, tok json.Token) (flexvalue.JSONValue, error) {
	switch t := tok.(type) {
	case nil:
		return flexvalue.Null(), nil
	case bool:
		return flexvalue.Bool(t), nil
	case json.Number:
		return numberValue(t), nil
	case string:
		return flexvalue.String(t), nil
	case json.Delim:
		switch t {
		case '[':
			return decodeArray(dec)
		case '{':
			return decodeObject(dec)
		default:
			return flexvalue.JSONValue{}, fmt.Errorf("jsonstrict: unexpected delimiter %q", t)
		}
	default:
		return flexvalue.JSONValue{}, fmt.Errorf("jsonstrict: unexpected token %v", tok)
	}
}

func numberValue(n json.Number) flexvalue.JSONValue {
	s := n.String()

	isFloat := false

	for _, c := range s {
		if c == '.' || c == 'e' || c == 'E' {
			isFloat = true
			break
		}
	}

	if !isFloat {
		if i, err := n.Int64(); err == nil {
			return flexvalue.Int(i)
		}
	}

	f, _ := n.Float64()

	return flexvalue.Float(f)
}

func decodeArray(dec *json.Decoder) (flexvalue.JSONValue, error) {
	var elems []flexvalue.JSONValue

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return flexvalue.JSONValue{}, err
		}

		v, err := decodeToken(dec, tok)
		if err != nil {
			return flexvalue.JSONValue{}, err
		}

		elems = append(elems, v)
	}

	// consume ']'
	if _, err := dec.Token(); err != nil {
		return flexvalue.JSONValue{}, err
	}

	return flexvalue.Arr(elems...), nil
}

func decodeObject(dec *json.Decoder) (flexvalue.JSONValue, error) {
	m := flexvalue.NewOrderedMap()

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return flexvalue.JSONValue{}, err
		}

		key, ok := keyTok.(string)
		if !ok {
			return flexvalue.JSONValue{}, fmt.Errorf("jsonstrict: non-string object key %v", keyTok)
		}

		valTok, err := dec.Token()
		if err != nil {
			return flexvalue.JSONValue{}, err
		}

		v, err := decodeToken(dec, valTok)
		if err != nil {
			return flexvalue.JSONValue{}, err
		}

		m.Set(key, v) // last-wins on duplicate keys (§9 Open Question)
	}

	// consume '}'
	if _, err := dec.Token(); err != nil {
		return flexvalue.JSONValue{}, err
	}

	return flexvalue.Obj(m), nil
}
