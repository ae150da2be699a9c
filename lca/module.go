package lca

import (
	"fmt"
	"strings"
)

// =============================================================================
// STAGE - Coarse grouping of modules
// =============================================================================

type Stage string

const (
	StageProduction  Stage = "prod"
	StageUsage       Stage = "op"
	StageEndOfLife   Stage = "eol"
	StageRecycling   Stage = "rec"
	StageMaintenance Stage = "maint"
)

// stageOrder is the reporting order of stages.
var stageOrder = map[Stage]int{
	StageProduction:  0,
	StageMaintenance: 1,
	StageUsage:       2,
	StageEndOfLife:   3,
	StageRecycling:   4,
}

// Less orders stages production, maintenance, usage, end of life, recycling.
func (s Stage) Less(other Stage) bool { return stageOrder[s] < stageOrder[other] }

// =============================================================================
// MODULE - EN 15804 life-cycle module
// =============================================================================

// Module is a sub-phase of a building life cycle. Both the EN 15804
// nomenclature (A1-3, B6, C3, D, ...) and the legacy phase names
// (prod, maint, op, eol, rec) are modules.
type Module string

const (
	ModuleA1  Module = "A1"
	ModuleA2  Module = "A2"
	ModuleA3  Module = "A3"
	ModuleA13 Module = "A1-3"
	ModuleA4  Module = "A4"
	ModuleA5  Module = "A5"
	ModuleB1  Module = "B1"
	ModuleB2  Module = "B2"
	ModuleB3  Module = "B3"
	ModuleB4  Module = "B4"
	ModuleB5  Module = "B5"
	ModuleB6  Module = "B6"
	ModuleB7  Module = "B7"
	ModuleC1  Module = "C1"
	ModuleC2  Module = "C2"
	ModuleC3  Module = "C3"
	ModuleC4  Module = "C4"
	ModuleD   Module = "D"

	// Legacy (pre EN 15804) phases
	ModuleProduction  Module = "prod"
	ModuleMaintenance Module = "maint"
	ModuleOperation   Module = "op"
	ModuleEndOfLife   Module = "eol"
	ModuleRecycling   Module = "rec"
)

// moduleStages maps every known module onto its stage. The slice order is
// the canonical module order.
var moduleStages = []struct {
	module Module
	stage  Stage
}{
	{ModuleProduction, StageProduction},
	{ModuleA1, StageProduction},
	{ModuleA2, StageProduction},
	{ModuleA3, StageProduction},
	{ModuleA13, StageProduction},
	{ModuleA4, StageProduction},
	{ModuleA5, StageProduction},
	{ModuleMaintenance, StageMaintenance},
	{ModuleOperation, StageUsage},
	{ModuleB1, StageUsage},
	{ModuleB2, StageUsage},
	{ModuleB3, StageUsage},
	{ModuleB4, StageUsage},
	{ModuleB5, StageUsage},
	{ModuleB6, StageUsage},
	{ModuleB7, StageUsage},
	{ModuleEndOfLife, StageEndOfLife},
	{ModuleC1, StageEndOfLife},
	{ModuleC2, StageEndOfLife},
	{ModuleC3, StageEndOfLife},
	{ModuleC4, StageEndOfLife},
	{ModuleRecycling, StageRecycling},
	{ModuleD, StageRecycling},
}

var (
	stageByModule = make(map[Module]Stage, len(moduleStages))
	moduleIndex   = make(map[Module]int, len(moduleStages))
	moduleByLower = make(map[string]Module, len(moduleStages))
)

func init() {
	for i, ms := range moduleStages {
		stageByModule[ms.module] = ms.stage
		moduleIndex[ms.module] = i
		moduleByLower[strings.ToLower(string(ms.module))] = ms.module
	}
	moduleByLower["a13"] = ModuleA13
}

// ParseModule accepts module names case-insensitively.
func ParseModule(s string) (Module, error) {
	if m, ok := moduleByLower[strings.ToLower(strings.TrimSpace(s))]; ok {
		return m, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownModule, s)
}

// AllModules returns the known modules in canonical order.
func AllModules() []Module {
	result := make([]Module, len(moduleStages))
	for i, ms := range moduleStages {
		result[i] = ms.module
	}
	return result
}

func (m Module) String() string { return string(m) }

// Stage returns the stage this module belongs to. Unknown modules report
// the empty stage.
func (m Module) Stage() Stage { return stageByModule[m] }

func (m Module) IsKnown() bool { _, ok := stageByModule[m]; return ok }

func (m Module) IsProduction() bool  { return m.Stage() == StageProduction }
func (m Module) IsUsage() bool       { return m.Stage() == StageUsage }
func (m Module) IsEndOfLife() bool   { return m.Stage() == StageEndOfLife }
func (m Module) IsRecycling() bool   { return m.Stage() == StageRecycling }
func (m Module) IsMaintenance() bool { return m.Stage() == StageMaintenance }

// IsEN15804 reports whether the module uses EN 15804 naming.
func (m Module) IsEN15804() bool {
	switch m {
	case ModuleProduction, ModuleMaintenance, ModuleOperation, ModuleEndOfLife, ModuleRecycling:
		return false
	}
	return m.IsKnown()
}

// Less orders modules canonically; unknown modules sort last by name.
func (m Module) Less(other Module) bool {
	i, iok := moduleIndex[m]
	j, jok := moduleIndex[other]
	switch {
	case iok && jok:
		return i < j
	case iok:
		return true
	case jok:
		return false
	default:
		return m < other
	}
}
