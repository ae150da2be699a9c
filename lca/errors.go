/*
errors.go - Centralized error types for the value layer

PURPOSE:
  Sentinel errors shared by every package of the engine. Packages wrap
  these with context (fmt.Errorf("%w: ...")) or structured error types
  whose Unwrap returns one of them.

USAGE:
  if errors.Is(err, lca.ErrNotFound) {
      // repository had no record
  }

SEE ALSO:
  - conversion/errors.go: ConversionError, UnconvertibleUnitsError
  - benchmark/errors.go: MissingTotalEnergyError
*/
package lca

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidUnit is returned when a unit string cannot be parsed.
	ErrInvalidUnit = errors.New("invalid unit")

	// ErrUnknownModule is returned for module names outside the known set.
	ErrUnknownModule = errors.New("unknown life-cycle module")

	// ErrUnknownIndicator is returned for indicator idents outside the vocabulary.
	ErrUnknownIndicator = errors.New("unknown indicator")

	// ErrDivisionByZero is returned by indicator arithmetic on a zero divisor.
	ErrDivisionByZero = errors.New("division by zero")

	// ErrInvalidArgument is returned for malformed input.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotFound is returned by repositories when a record does not exist.
	ErrNotFound = errors.New("not found")
)

// =============================================================================
// STRUCTURED ERRORS
// =============================================================================

// NotFoundError names the missing record.
type NotFoundError struct {
	Kind string // e.g. "benchmark version", "process life cycle"
	Key  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.Key)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsNotFound returns true if the error indicates a missing record.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsClientError returns true if the error is due to invalid input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidUnit) ||
		errors.Is(err, ErrUnknownModule) ||
		errors.Is(err, ErrUnknownIndicator) ||
		errors.Is(err, ErrInvalidArgument)
}
