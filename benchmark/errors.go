package benchmark

import (
	"errors"
	"fmt"

	"github.com/IWUGERMANY/elca-sub014/lca"
)

// =============================================================================
// SENTINEL ERRORS
// =============================================================================

var (
	// ErrMissingTotalPrimaryEnergy is returned when a renewable primary energy
	// indicator is scored without a usable pet total.
	ErrMissingTotalPrimaryEnergy = errors.New("missing total primary energy (pet)")

	// ErrMissingReferenceValues is returned when a version uses the reference
	// model but carries no reference construction values.
	ErrMissingReferenceValues = errors.New("missing reference values")

	// ErrInvalidThreshold is returned for threshold points that cannot be used.
	ErrInvalidThreshold = errors.New("invalid threshold")
)

// =============================================================================
// STRUCTURED ERRORS
// =============================================================================

// MissingTotalEnergyError names the renewable indicator that was skipped.
type MissingTotalEnergyError struct {
	Ident lca.IndicatorIdent
}

func (e *MissingTotalEnergyError) Error() string {
	return fmt.Sprintf("cannot score %s: pet total is missing or zero", e.Ident)
}

func (e *MissingTotalEnergyError) Unwrap() error {
	return ErrMissingTotalPrimaryEnergy
}
