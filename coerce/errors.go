package coerce

import (
	"errors"
	"fmt"
)

// Sentinel error kinds from spec §7's DeserializeFailed sub-variants.
// Strict-mode callers never surface these — a strict failure is reported
// as (_, false) — but lenient mode wraps them for the required-field,
// required-variant, and depth/cycle paths that must propagate.
var (
	ErrTypeMismatch      = errors.New("type mismatch")
	ErrMissingField      = errors.New("missing field")
	ErrInvalidValue      = errors.New("invalid value")
	ErrUnknownVariant    = errors.New("unknown variant")
	ErrDepthLimit        = errors.New("depth limit exceeded")
	ErrCircularReference = errors.New("circular reference")
)

// TypeMismatchError carries the expected/found detail for ErrTypeMismatch.
type TypeMismatchError struct {
	Expected string
	Found    string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("%v: expected %s, found %s", ErrTypeMismatch, e.Expected, e.Found)
}

func (e *TypeMismatchError) Unwrap() error { return ErrTypeMismatch }

// MissingFieldError carries the field name for ErrMissingField.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%v: %s", ErrMissingField, e.Field)
}

func (e *MissingFieldError) Unwrap() error { return ErrMissingField }

// UnknownVariantError carries the enum name and rejected input.
type UnknownVariantError struct {
	EnumName string
	Input    string
}

func (e *UnknownVariantError) Error() string {
	return fmt.Sprintf("%v: %s has no variant matching %q", ErrUnknownVariant, e.EnumName, e.Input)
}

func (e *UnknownVariantError) Unwrap() error { return ErrUnknownVariant }

// DepthLimitError carries the depth reached and the configured cap.
type DepthLimitError struct {
	Depth int
	Max   int
}

func (e *DepthLimitError) Error() string {
	return fmt.Sprintf("%v: %d exceeds max %d", ErrDepthLimit, e.Depth, e.Max)
}

func (e *DepthLimitError) Unwrap() error { return ErrDepthLimit }

// CircularReferenceError carries the recursive type name.
type CircularReferenceError struct {
	TypeName string
}

func (e *CircularReferenceError) Error() string {
	return fmt.Sprintf("%v: %s", ErrCircularReference, e.TypeName)
}

func (e *CircularReferenceError) Unwrap() error { return ErrCircularReference }
