package flexparse

import (
	"errors"
	"fmt"
)

// Sentinel error kinds from spec §7's top-level error taxonomy.
var (
	// ErrNoCandidates means every parser strategy returned empty (§7).
	ErrNoCandidates = errors.New("flexparse: no candidates extracted")
	// ErrAllStrategiesFailed means every parser strategy errored outright.
	ErrAllStrategiesFailed = errors.New("flexparse: all strategies failed")
	// ErrDeserializeFailed means coercion exhausted every ranked candidate.
	ErrDeserializeFailed = errors.New("flexparse: deserialization failed for all candidates")
	// ErrInvalidConfig is a construction-time configuration error.
	ErrInvalidConfig = errors.New("flexparse: invalid configuration")
	// ErrNotRegistered means ParseLLM was called for a type with no
	// Register call (§D.2's dispatch-table realization of the
	// derive-macro contract).
	ErrNotRegistered = errors.New("flexparse: type not registered")
)

// StrategyError records one strategy's failure, carried by
// ErrAllStrategiesFailed (§7 AllStrategiesFailed{attempts}).
type StrategyError struct {
	Strategy string
	Err      error
}

func (e StrategyError) Error() string {
	return fmt.Sprintf("%s: %v", e.Strategy, e.Err)
}

// AllStrategiesFailedError wraps ErrAllStrategiesFailed with the
// per-strategy diagnostic list.
type AllStrategiesFailedError struct {
	Attempts []StrategyError
}

func (e *AllStrategiesFailedError) Error() string {
	return fmt.Sprintf("%v (%d attempts)", ErrAllStrategiesFailed, len(e.Attempts))
}

func (e *AllStrategiesFailedError) Unwrap() error { return ErrAllStrategiesFailed }
