/*
usage.go - Which life-cycle modules are applied where

PURPOSE:
  A benchmark version (or a project overriding it) decides per module
  whether its results count for construction, maintenance and energy
  demand. A module counts towards the totals when any of the three flags
  is set. The benchmark only sees indicator totals of those modules.

DEFAULT POLICY:
  A module without an explicit entry is not applied anywhere, except the
  maintenance module, which defaults to applied in construction.

SYNTHETIC STAGE:
  StagesAppliedInTotal reports the maintenance stage whenever any module
  is flagged for maintenance, even though maintenance flags sit on
  modules of other stages.

EXAMPLE:
  usages := lifecycle.NewLifeCycleUsages(
      lifecycle.LifeCycleUsage{Module: lca.ModuleA13, AppliedInConstruction: true},
      lifecycle.LifeCycleUsage{Module: lca.ModuleB4, AppliedInMaintenance: true},
      lifecycle.LifeCycleUsage{Module: lca.ModuleB6, AppliedInEnergyDemand: true},
  )
  usages.ModuleIsAppliedInTotals(lca.ModuleB6) // true
*/
package lifecycle

import (
	"sort"

	"github.com/IWUGERMANY/elca-sub014/lca"
)

// =============================================================================
// LIFE CYCLE USAGE
// =============================================================================

type LifeCycleUsage struct {
	Module                lca.Module
	AppliedInConstruction bool
	AppliedInMaintenance  bool
	AppliedInEnergyDemand bool
}

// AppliedInTotals is true if any flag is set.
func (u LifeCycleUsage) AppliedInTotals() bool {
	return u.AppliedInConstruction || u.AppliedInMaintenance || u.AppliedInEnergyDemand
}

// DefaultUsage is the usage of a module that has no explicit entry.
func DefaultUsage(m lca.Module) LifeCycleUsage {
	return LifeCycleUsage{Module: m, AppliedInConstruction: m.IsMaintenance()}
}

// =============================================================================
// LIFE CYCLE USAGES
// =============================================================================

// LifeCycleUsages is immutable after construction.
type LifeCycleUsages struct {
	usages map[lca.Module]LifeCycleUsage
}

// NewLifeCycleUsages keeps the last entry per module.
func NewLifeCycleUsages(usages ...LifeCycleUsage) *LifeCycleUsages {
	l := &LifeCycleUsages{usages: make(map[lca.Module]LifeCycleUsage, len(usages))}
	for _, u := range usages {
		l.usages[u.Module] = u
	}
	return l
}

// Usage returns the configured usage of m, or its default.
func (l *LifeCycleUsages) Usage(m lca.Module) LifeCycleUsage {
	if l != nil {
		if u, ok := l.usages[m]; ok {
			return u
		}
	}
	return DefaultUsage(m)
}

// IsConfigured reports whether m has an explicit entry.
func (l *LifeCycleUsages) IsConfigured(m lca.Module) bool {
	if l == nil {
		return false
	}
	_, ok := l.usages[m]
	return ok
}

// Usages returns the explicit entries in canonical module order.
func (l *LifeCycleUsages) Usages() []LifeCycleUsage {
	var result []LifeCycleUsage
	for _, m := range l.configuredModules() {
		result = append(result, l.usages[m])
	}
	return result
}

func (l *LifeCycleUsages) ModuleIsAppliedInConstruction(m lca.Module) bool {
	return l.Usage(m).AppliedInConstruction
}

func (l *LifeCycleUsages) ModuleIsAppliedInMaintenance(m lca.Module) bool {
	return l.Usage(m).AppliedInMaintenance
}

func (l *LifeCycleUsages) ModuleIsAppliedInEnergyDemand(m lca.Module) bool {
	return l.Usage(m).AppliedInEnergyDemand
}

func (l *LifeCycleUsages) ModuleIsAppliedInTotals(m lca.Module) bool {
	return l.Usage(m).AppliedInTotals()
}

func (l *LifeCycleUsages) ModulesAppliedInTotal() []lca.Module {
	return l.modulesWhere(LifeCycleUsage.AppliedInTotals)
}

func (l *LifeCycleUsages) ModulesAppliedInConstruction() []lca.Module {
	return l.modulesWhere(func(u LifeCycleUsage) bool { return u.AppliedInConstruction })
}

func (l *LifeCycleUsages) ModulesAppliedInMaintenance() []lca.Module {
	return l.modulesWhere(func(u LifeCycleUsage) bool { return u.AppliedInMaintenance })
}

func (l *LifeCycleUsages) ModulesAppliedInEnergyDemand() []lca.Module {
	return l.modulesWhere(func(u LifeCycleUsage) bool { return u.AppliedInEnergyDemand })
}

// ModulesAppliedInEol returns end-of-life modules that count towards totals.
func (l *LifeCycleUsages) ModulesAppliedInEol() []lca.Module {
	return l.modulesWhere(func(u LifeCycleUsage) bool {
		return u.Module.IsEndOfLife() && u.AppliedInTotals()
	})
}

// StagesAppliedInTotal returns the stages of all modules applied in totals,
// plus the maintenance stage if any module is flagged for maintenance.
func (l *LifeCycleUsages) StagesAppliedInTotal() []lca.Stage {
	seen := make(map[lca.Stage]bool)
	var stages []lca.Stage
	add := func(s lca.Stage) {
		if s != "" && !seen[s] {
			seen[s] = true
			stages = append(stages, s)
		}
	}
	for _, m := range l.ModulesAppliedInTotal() {
		add(m.Stage())
	}
	if len(l.ModulesAppliedInMaintenance()) > 0 {
		add(lca.StageMaintenance)
	}
	sort.SliceStable(stages, func(i, j int) bool { return stages[i].Less(stages[j]) })
	return stages
}

// HasStageRec reports whether a recycling module (D, rec) is applied in
// construction or maintenance.
func (l *LifeCycleUsages) HasStageRec() bool {
	for _, m := range l.allModules() {
		if !m.IsRecycling() {
			continue
		}
		u := l.Usage(m)
		if u.AppliedInConstruction || u.AppliedInMaintenance {
			return true
		}
	}
	return false
}

// IsDefault reports whether every explicit entry equals the default policy,
// i.e. the set behaves exactly like an empty configuration.
func (l *LifeCycleUsages) IsDefault() bool {
	if l == nil {
		return true
	}
	for m, u := range l.usages {
		if u != DefaultUsage(m) {
			return false
		}
	}
	return true
}

func (l *LifeCycleUsages) modulesWhere(pred func(LifeCycleUsage) bool) []lca.Module {
	var result []lca.Module
	for _, m := range l.allModules() {
		if pred(l.Usage(m)) {
			result = append(result, m)
		}
	}
	return result
}

// allModules is every known module plus any configured unknown module, in
// canonical order.
func (l *LifeCycleUsages) allModules() []lca.Module {
	modules := lca.AllModules()
	for _, m := range l.configuredModules() {
		if !m.IsKnown() {
			modules = append(modules, m)
		}
	}
	return modules
}

func (l *LifeCycleUsages) configuredModules() []lca.Module {
	if l == nil {
		return nil
	}
	modules := make([]lca.Module, 0, len(l.usages))
	for m := range l.usages {
		modules = append(modules, m)
	}
	sort.Slice(modules, func(i, j int) bool { return modules[i].Less(modules[j]) })
	return modules
}
