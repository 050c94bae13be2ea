package coerce

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"go.jacobcolvin.com/flexparse/flexvalue"
)

// numberRe mirrors jsonstrategy.RawPrimitive's comma/currency/percent
// tolerant number shape (§4.6).
var numberRe = regexp.MustCompile(`^([-+]?)\p{Sc}?(?:\d+(?:,\d+)*(?:\.\d+)?|\d+\.\d+|\d+|\.\d+)(?:[eE][-+]?\d+)?%?$`)

var fractionRe = regexp.MustCompile(`^([-+]?\d+)\s*/\s*(\d+)$`)

func stripCurrency(s string) string {
	var b strings.Builder

	for _, r := range s {
		if unicode.Is(unicode.Sc, r) {
			continue
		}

		b.WriteRune(r)
	}

	return b.String()
}

// TryInt is the strict int coercion of §4.6: succeeds only for an exact
// Number(int) match.
func TryInt(v flexvalue.JSONValue) (int64, bool) {
	if v.Kind == flexvalue.KindInt {
		return v.Int, true
	}

	return 0, false
}

// Int is the lenient int coercion of §4.6.
func Int(ctx *Context, v flexvalue.JSONValue) (int64, error) {
	switch v.Kind {
	case flexvalue.KindInt:
		return v.Int, nil
	case flexvalue.KindFloat:
		ctx.Record(flexvalue.FloatToInt())
		return int64(v.Float + copysign(0.5, v.Float)), nil
	case flexvalue.KindString:
		return intFromString(ctx, v.String)
	case flexvalue.KindArray:
		if len(v.Array) == 1 {
			ctx.Record(flexvalue.SingleToArray())
			return Int(ctx, v.Array[0])
		}

		return 0, &TypeMismatchError{Expected: "int", Found: "array"}
	default:
		return 0, &TypeMismatchError{Expected: "int", Found: v.Kind.String()}
	}
}

func copysign(m, sign float64) float64 {
	if sign < 0 {
		return -m
	}

	return m
}

func intFromString(ctx *Context, s string) (int64, error) {
	trimmed := strings.TrimSpace(s)

	if i, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
		ctx.Record(flexvalue.StringToNumber())
		return i, nil
	}

	if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
		ctx.Record(flexvalue.FloatToInt())
		return int64(f + copysign(0.5, f)), nil
	}

	if m := fractionRe.FindStringSubmatch(trimmed); m != nil {
		num, err1 := strconv.ParseFloat(m[1], 64)
		den, err2 := strconv.ParseFloat(m[2], 64)

		if err1 == nil && err2 == nil && den != 0 {
			ctx.Record(flexvalue.FloatToInt())
			f := num / den

			return int64(f + copysign(0.5, f)), nil
		}
	}

	if numberRe.MatchString(trimmed) {
		cleaned := strings.TrimSuffix(strings.ReplaceAll(stripCurrency(trimmed), ",", ""), "%")
		if i, err := strconv.ParseInt(cleaned, 10, 64); err == nil {
			ctx.Record(flexvalue.FloatToInt())
			return i, nil
		}

		if f, err := strconv.ParseFloat(cleaned, 64); err == nil {
			ctx.Record(flexvalue.FloatToInt())
			return int64(f + copysign(0.5, f)), nil
		}
	}

	return 0, &TypeMismatchError{Expected: "int", Found: "string"}
}

// TryFloat is the strict float coercion of §4.6.
func TryFloat(v flexvalue.JSONValue) (float64, bool) {
	if v.Kind == flexvalue.KindFloat {
		return v.Float, true
	}

	return 0, false
}

// Float is the lenient float coercion of §4.6: analogous to Int, without
// the rounding branch.
func Float(ctx *Context, v flexvalue.JSONValue) (float64, error) {
	switch v.Kind {
	case flexvalue.KindFloat:
		return v.Float, nil
	case flexvalue.KindInt:
		return float64(v.Int), nil
	case flexvalue.KindString:
		return floatFromString(ctx, v.String)
	case flexvalue.KindArray:
		if len(v.Array) == 1 {
			ctx.Record(flexvalue.SingleToArray())
			return Float(ctx, v.Array[0])
		}

		return 0, &TypeMismatchError{Expected: "float", Found: "array"}
	default:
		return 0, &TypeMismatchError{Expected: "float", Found: v.Kind.String()}
	}
}

func floatFromString(ctx *Context, s string) (float64, error) {
	trimmed := strings.TrimSpace(s)

	if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
		ctx.Record(flexvalue.StringToNumber())
		return f, nil
	}

	if m := fractionRe.FindStringSubmatch(trimmed); m != nil {
		num, err1 := strconv.ParseFloat(m[1], 64)
		den, err2 := strconv.ParseFloat(m[2], 64)

		if err1 == nil && err2 == nil && den != 0 {
			ctx.Record(flexvalue.StringToNumber())
			return num / den, nil
		}
	}

	if numberRe.MatchString(trimmed) {
		cleaned := strings.TrimSuffix(strings.ReplaceAll(stripCurrency(trimmed), ",", ""), "%")
		if f, err := strconv.ParseFloat(cleaned, 64); err == nil {
			ctx.Record(flexvalue.StringToNumber())
			return f, nil
		}
	}

	return 0, &TypeMismatchError{Expected: "float", Found: "string"}
}

// TryBool is the strict bool coercion of §4.6.
func TryBool(v flexvalue.JSONValue) (bool, bool) {
	if v.Kind == flexvalue.KindBool {
		return v.Bool, true
	}

	return false, false
}

// Bool is the lenient bool coercion of §4.6.
func Bool(ctx *Context, v flexvalue.JSONValue) (bool, error) {
	switch v.Kind {
	case flexvalue.KindBool:
		return v.Bool, nil
	case flexvalue.KindString:
		switch strings.ToLower(strings.TrimSpace(v.String)) {
		case "true":
			return true, nil
		case "false":
			return false, nil
		default:
			return false, &TypeMismatchError{Expected: "bool", Found: "string"}
		}
	case flexvalue.KindInt:
		return v.Int != 0, nil
	case flexvalue.KindFloat:
		return v.Float != 0, nil
	case flexvalue.KindArray:
		if len(v.Array) == 1 {
			ctx.Record(flexvalue.SingleToArray())
			return Bool(ctx, v.Array[0])
		}

		return false, &TypeMismatchError{Expected: "bool", Found: "array"}
	default:
		return false, &TypeMismatchError{Expected: "bool", Found: v.Kind.String()}
	}
}

// TryString is the strict string coercion of §4.6.
func TryString(v flexvalue.JSONValue) (string, bool) {
	if v.Kind == flexvalue.KindString {
		return v.String, true
	}

	return "", false
}

// String is the lenient string coercion of §4.6: any primitive
// stringifies; objects and arrays stringify via their JSON rendering with
// JsonToString recorded.
func String(ctx *Context, v flexvalue.JSONValue) (string, error) {
	switch v.Kind {
	case flexvalue.KindString:
		return v.String, nil
	case flexvalue.KindBool:
		return strconv.FormatBool(v.Bool), nil
	case flexvalue.KindInt:
		return strconv.FormatInt(v.Int, 10), nil
	case flexvalue.KindFloat:
		return strconv.FormatFloat(v.Float, 'g', -1, 64), nil
	case flexvalue.KindNull:
		return "", &TypeMismatchError{Expected: "string", Found: "null"}
	default:
		ctx.Record(flexvalue.JSONToString())

		b, err := v.MarshalJSONCompact()
		if err != nil {
			return "", &TypeMismatchError{Expected: "string", Found: v.Kind.String()}
		}

		return string(b), nil
	}
}
