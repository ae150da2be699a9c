package conversion

import (
	"errors"
	"fmt"

	"github.com/IWUGERMANY/elca-sub014/lca"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrNoConversion is returned when no conversion between two units is
	// available for a process config. Callers usually warn and skip the process.
	ErrNoConversion = errors.New("no conversion available")

	// ErrUnknownConversion is returned when convert is called on a
	// placeholder (required but undefined) conversion.
	ErrUnknownConversion = errors.New("conversion is not known")

	// ErrZeroFactor is returned when inverting a conversion with factor 0.
	ErrZeroFactor = errors.New("conversion factor is zero")

	// ErrSameUnit is returned when a conversion is built between equal units.
	ErrSameUnit = errors.New("conversion units must differ")

	// ErrUnitMismatch is returned when a quantity's unit does not match the
	// conversion's source unit.
	ErrUnitMismatch = errors.New("quantity unit does not match conversion")
)

// =============================================================================
// STRUCTURED ERRORS
// =============================================================================

// ConversionError reports a missing conversion for a process config.
// It is recoverable: the caller decides whether to skip or warn.
type ConversionError struct {
	ProcessConfigID lca.ProcessConfigID
	From            lca.Unit
	To              lca.Unit
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("process config %d: no conversion from %s to %s", e.ProcessConfigID, e.From, e.To)
}

func (e *ConversionError) Unwrap() error {
	return ErrNoConversion
}

// UnconvertibleUnitsError is raised by Convert on a conversion whose factor
// is unknown. Reaching it is a programming error: callers must check IsKnown.
type UnconvertibleUnitsError struct {
	From lca.Unit
	To   lca.Unit
}

func (e *UnconvertibleUnitsError) Error() string {
	return fmt.Sprintf("cannot convert %s to %s: conversion is required but not defined", e.From, e.To)
}

func (e *UnconvertibleUnitsError) Unwrap() error {
	return ErrUnknownConversion
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsConversionError returns true if err reports a missing conversion.
func IsConversionError(err error) bool {
	return errors.Is(err, ErrNoConversion)
}
