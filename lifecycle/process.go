// Package lifecycle models the processes that make up the life cycle of a
// process config and the per-module usage flags that decide which modules
// feed construction, maintenance, energy demand and totals.
package lifecycle

import (
	"github.com/IWUGERMANY/elca-sub014/lca"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =============================================================================
// PROCESS - One life-cycle module of a process config
// =============================================================================

// Process is read-only once loaded.
type Process struct {
	ID   lca.ProcessID
	UUID uuid.UUID // dataset uuid in the process db
	Name string

	Module lca.Module

	// QuantitativeReference is the amount the indicator values refer to,
	// e.g. 1 kg or 1 m2.
	QuantitativeReference lca.Quantity

	// ModuleRatio scales the contribution of this module (1 = full).
	// A zero ratio switches the module off.
	ModuleRatio decimal.Decimal

	Indicators *lca.IndicatorSet
}

// NewProcess returns a process with a module ratio of 1.
func NewProcess(id lca.ProcessID, name string, module lca.Module, ref lca.Quantity, indicators ...lca.IndicatorValue) Process {
	return Process{
		ID:                    id,
		Name:                  name,
		Module:                module,
		QuantitativeReference: ref,
		ModuleRatio:           decimal.NewFromInt(1),
		Indicators:            lca.NewIndicatorSet(indicators...),
	}
}

func (p Process) Stage() lca.Stage { return p.Module.Stage() }

func (p Process) IsUsage() bool { return p.Module.IsUsage() }

func (p Process) Unit() lca.Unit { return p.QuantitativeReference.Unit }
