/*
lifecycle.go - All processes of one process config in one process db

PURPOSE:
  A ProcessLifeCycle groups the processes (production, usage, end of life,
  recycling) of a process config together with the conversions stored for
  it. Every query is a pure function of those two collections.

REQUIRED VS ADDITIONAL CONVERSIONS:
  The non-usage processes of a life cycle may be referenced to different
  units (A1-3 per piece, C3 per kg). To combine them, a conversion between
  every pair of those units must exist. The first unit encountered is the
  pivot; for every other unit the life cycle needs a pivot -> unit
  conversion (or its inverse). Missing ones are reported as required
  placeholders. All other stored conversions are "additional".

  Usage processes are excluded: energy and water processes are tracked in
  kWh or m3 on purpose and are never converted to the material unit.

QUANTITATIVE REFERENCE:
  Taken from the first production process. Some configs (per-kWh
  processes) define it only on a usage process, so the unqualified lookup
  falls back to usage processes.

CONCURRENCY:
  The Converter is built lazily once per life cycle. Construct one life
  cycle per use case rather than sharing a process-wide instance.

SEE ALSO:
  - conversion/converter.go: Resolution rules
  - usage.go: Which modules count towards totals
*/
package lifecycle

import (
	"fmt"
	"sort"
	"sync"

	"github.com/IWUGERMANY/elca-sub014/conversion"
	"github.com/IWUGERMANY/elca-sub014/lca"
)

// =============================================================================
// PROCESS LIFE CYCLE
// =============================================================================

type ProcessLifeCycle struct {
	id          lca.ProcessLifeCycleID
	processes   []Process
	conversions *conversion.Set

	converterOnce sync.Once
	converter     *conversion.Converter
}

// New builds a life cycle. Process order is kept; it decides the pivot
// unit for RequiredConversions.
func New(id lca.ProcessLifeCycleID, processes []Process, conversions []conversion.Conversion) *ProcessLifeCycle {
	return &ProcessLifeCycle{
		id:          id,
		processes:   append([]Process(nil), processes...),
		conversions: conversion.NewSet(conversions...),
	}
}

func (l *ProcessLifeCycle) ID() lca.ProcessLifeCycleID           { return l.id }
func (l *ProcessLifeCycle) ProcessConfigID() lca.ProcessConfigID { return l.id.ProcessConfigID }
func (l *ProcessLifeCycle) ProcessDbID() lca.ProcessDbID         { return l.id.ProcessDbID }
func (l *ProcessLifeCycle) Conversions() *conversion.Set         { return l.conversions }

// Processes returns a copy of the processes in load order.
func (l *ProcessLifeCycle) Processes() []Process {
	return append([]Process(nil), l.processes...)
}

// Converter returns the (non-transitive) converter over the stored
// conversions.
func (l *ProcessLifeCycle) Converter() *conversion.Converter {
	l.converterOnce.Do(func() {
		l.converter = conversion.NewConverter(l.id.ProcessConfigID, l.conversions)
	})
	return l.converter
}

func (l *ProcessLifeCycle) ProcessesByStage(stage lca.Stage) []Process {
	var result []Process
	for _, p := range l.processes {
		if p.Stage() == stage {
			result = append(result, p)
		}
	}
	return result
}

func (l *ProcessLifeCycle) ProductionProcesses() []Process {
	return l.ProcessesByStage(lca.StageProduction)
}

func (l *ProcessLifeCycle) UsageProcesses() []Process {
	return l.ProcessesByStage(lca.StageUsage)
}

func (l *ProcessLifeCycle) EndOfLifeProcesses() []Process {
	return l.ProcessesByStage(lca.StageEndOfLife)
}

func (l *ProcessLifeCycle) RecyclingProcesses() []Process {
	return l.ProcessesByStage(lca.StageRecycling)
}

// QuantitativeReference returns the reference quantity of the first
// production process, falling back to the first usage process.
func (l *ProcessLifeCycle) QuantitativeReference() (lca.Quantity, bool) {
	if q, ok := l.QuantitativeReferenceForStage(lca.StageProduction); ok {
		return q, true
	}
	return l.QuantitativeReferenceForStage(lca.StageUsage)
}

// QuantitativeReferenceForStage looks only at the given stage; there is no
// fallback.
func (l *ProcessLifeCycle) QuantitativeReferenceForStage(stage lca.Stage) (lca.Quantity, bool) {
	for _, p := range l.processes {
		if p.Stage() == stage {
			return p.QuantitativeReference, true
		}
	}
	return lca.Quantity{}, false
}

// RequiredUnits returns the distinct reference units of all non-usage
// processes in the order they are first encountered.
func (l *ProcessLifeCycle) RequiredUnits() []lca.Unit {
	seen := make(map[lca.Unit]bool)
	var units []lca.Unit
	for _, p := range l.processes {
		if p.IsUsage() || p.Unit().IsZero() {
			continue
		}
		if !seen[p.Unit()] {
			seen[p.Unit()] = true
			units = append(units, p.Unit())
		}
	}
	return units
}

// RequiredConversions returns, for every required unit after the pivot,
// the stored pivot -> unit conversion, else the stored unit -> pivot
// conversion, else a required placeholder pivot -> unit.
func (l *ProcessLifeCycle) RequiredConversions() *conversion.Set {
	units := l.RequiredUnits()
	result := &conversion.Set{}
	if len(units) < 2 {
		return result
	}

	converter := l.Converter()
	pivot := units[0]
	for _, unit := range units[1:] {
		if conv, ok := converter.Find(pivot, unit); ok && conv.IsKnown() {
			result.Add(conv)
			continue
		}
		if conv, ok := converter.Find(unit, pivot); ok && conv.IsKnown() {
			result.Add(conv)
			continue
		}
		result.Add(conversion.Required(pivot, unit))
	}
	return result
}

// MissingConversions returns the required placeholders only.
func (l *ProcessLifeCycle) MissingConversions() []conversion.Conversion {
	var missing []conversion.Conversion
	for _, c := range l.RequiredConversions().Slice() {
		if !c.IsKnown() {
			missing = append(missing, c)
		}
	}
	return missing
}

// AdditionalConversions returns the stored conversions not covered by
// RequiredConversions, in either direction.
func (l *ProcessLifeCycle) AdditionalConversions() *conversion.Set {
	return l.conversions.Without(l.RequiredConversions())
}

// =============================================================================
// COMPONENT INDICATORS - Indicator values for a concrete quantity
// =============================================================================

// ComponentResult holds per-module indicator values for one element
// component. Warnings carry the processes that had to be skipped.
type ComponentResult struct {
	Modules  map[lca.Module]*lca.IndicatorSet
	Warnings []error
}

// ModulesInOrder returns the modules with results in canonical order.
func (r ComponentResult) ModulesInOrder() []lca.Module {
	modules := make([]lca.Module, 0, len(r.Modules))
	for m := range r.Modules {
		modules = append(modules, m)
	}
	sort.Slice(modules, func(i, j int) bool { return modules[i].Less(modules[j]) })
	return modules
}

// ComponentIndicators scales every non-usage process to quantity q:
// value * indicator / reference * moduleRatio. A nil converter uses the
// life cycle's own. Processes that cannot be converted are skipped and
// reported in Warnings.
func (l *ProcessLifeCycle) ComponentIndicators(q lca.Quantity, converter *conversion.Converter) ComponentResult {
	if converter == nil {
		converter = l.Converter()
	}
	result := ComponentResult{Modules: make(map[lca.Module]*lca.IndicatorSet)}

	for _, p := range l.processes {
		if p.IsUsage() {
			continue
		}
		ref := p.QuantitativeReference
		if ref.Value.IsZero() {
			result.Warnings = append(result.Warnings,
				fmt.Errorf("%w: process %d has a zero quantitative reference", lca.ErrInvalidArgument, p.ID))
			continue
		}
		amount, err := converter.Convert(q.Value, q.Unit, ref.Unit)
		if err != nil {
			result.Warnings = append(result.Warnings, err)
			continue
		}

		factor := amount.Div(ref.Value).Mul(p.ModuleRatio)
		scaled := p.Indicators.MultiplyBy(factor)

		if existing, ok := result.Modules[p.Module]; ok {
			result.Modules[p.Module] = existing.Add(scaled)
		} else {
			result.Modules[p.Module] = scaled
		}
	}
	return result
}
