package factory

import (
	"fmt"
	"sort"

	"github.com/IWUGERMANY/elca-sub014/lca"
	"github.com/IWUGERMANY/elca-sub014/lifecycle"
)

// =============================================================================
// PROJECT USAGES
// =============================================================================

// ProjectUsagesJSON overrides the life-cycle usages of one project:
//
//	kind: project_life_cycle_usages
//	project_id: 12
//	life_cycle_usages:
//	  - {module: B6, energy_demand: true}
type ProjectUsagesJSON struct {
	Kind      string      `json:"kind" yaml:"kind"`
	ProjectID int64       `json:"project_id" yaml:"project_id"`
	Usages    []UsageJSON `json:"life_cycle_usages" yaml:"life_cycle_usages"`
}

// ProjectUsages is a parsed ProjectUsagesJSON.
type ProjectUsages struct {
	ProjectID lca.ProjectID
	Usages    *lifecycle.LifeCycleUsages
}

func (f *Factory) ParseProjectUsages(data []byte, format Format) (*ProjectUsages, error) {
	var pj ProjectUsagesJSON
	if err := decode(data, format, &pj); err != nil {
		return nil, err
	}
	if pj.ProjectID <= 0 {
		return nil, fmt.Errorf("%w: project_id must be positive", lca.ErrInvalidArgument)
	}
	usages, err := parseUsages(pj.Usages)
	if err != nil {
		return nil, err
	}
	return &ProjectUsages{ProjectID: lca.ProjectID(pj.ProjectID), Usages: usages}, nil
}

func parseUsages(ujs []UsageJSON) (*lifecycle.LifeCycleUsages, error) {
	usages := make([]lifecycle.LifeCycleUsage, 0, len(ujs))
	for _, uj := range ujs {
		module, err := lca.ParseModule(uj.Module)
		if err != nil {
			return nil, fmt.Errorf("life cycle usages: %w", err)
		}
		usages = append(usages, lifecycle.LifeCycleUsage{
			Module:                module,
			AppliedInConstruction: uj.Construction,
			AppliedInMaintenance:  uj.Maintenance,
			AppliedInEnergyDemand: uj.EnergyDemand,
		})
	}
	return lifecycle.NewLifeCycleUsages(usages...), nil
}

func usagesToJSON(usages *lifecycle.LifeCycleUsages) []UsageJSON {
	var ujs []UsageJSON
	for _, u := range usages.Usages() {
		ujs = append(ujs, UsageJSON{
			Module:       u.Module.String(),
			Construction: u.AppliedInConstruction,
			Maintenance:  u.AppliedInMaintenance,
			EnergyDemand: u.AppliedInEnergyDemand,
		})
	}
	return ujs
}

// =============================================================================
// PER-MODULE VALUES
// =============================================================================

// ParseModuleValues parses module -> ident -> value, the per-module LCA
// results of a building:
//
//	{"A1-3": {"gwp": 310.2}, "B6": {"gwp": 1200}}
func (f *Factory) ParseModuleValues(data []byte, format Format) (map[lca.Module]*lca.IndicatorSet, error) {
	var raw map[string]map[string]*float64
	if err := decode(data, format, &raw); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(raw))
	for name := range raw {
		names = append(names, name)
	}
	sort.Strings(names)

	result := make(map[lca.Module]*lca.IndicatorSet, len(raw))
	for _, name := range names {
		module, err := lca.ParseModule(name)
		if err != nil {
			return nil, err
		}
		set, err := parseIndicatorMap(raw[name])
		if err != nil {
			return nil, fmt.Errorf("module %s: %w", module, err)
		}
		if existing, ok := result[module]; ok {
			set = existing.Add(set)
		}
		result[module] = set
	}
	return result, nil
}
