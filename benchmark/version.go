/*
version.go - Benchmark versions

PURPOSE:
  A benchmark version bundles everything needed to score a building:
  thresholds, the life-cycle usages that decide which modules feed the
  totals, optional reference-model values and the groups used to
  summarize scores.

METHOD SELECTION:
  UseReferenceModel == false  -> FixedValuesCalculator on the totals
  UseReferenceModel == true   -> RefValueCalculator, totals normalized by
                                 RefConstruction + reference energy values

SEE ALSO:
  - fixed.go, refvalue.go: The two methods
  - group.go: Score groups and captions
  - lifecycle/usage.go: Module usage flags
*/
package benchmark

import (
	"fmt"

	"github.com/IWUGERMANY/elca-sub014/lca"
	"github.com/IWUGERMANY/elca-sub014/lifecycle"
)

// Method names the benchmark method of a version.
type Method string

const (
	MethodFixedValues    Method = "fixed"
	MethodReferenceModel Method = "reference"
)

// =============================================================================
// VERSION
// =============================================================================

type Version struct {
	ID                lca.BenchmarkVersionID
	Name              string
	ProcessDbID       lca.ProcessDbID
	UseReferenceModel bool

	Thresholds *ThresholdSet
	Usages     *lifecycle.LifeCycleUsages

	// Reference model values, used when UseReferenceModel is set.
	// RefEnergy is the default; projects may pass their own.
	RefConstruction *lca.IndicatorSet
	RefEnergy       *lca.IndicatorSet

	Groups []Group
}

func (v *Version) Method() Method {
	if v.UseReferenceModel {
		return MethodReferenceModel
	}
	return MethodFixedValues
}

// Compute scores totals with the version's method and default reference
// energy values.
func (v *Version) Compute(totals *lca.IndicatorSet) (*Result, error) {
	return v.ComputeWithRefEnergy(totals, v.RefEnergy)
}

// ComputeWithRefEnergy is Compute with project-specific reference energy
// values.
func (v *Version) ComputeWithRefEnergy(totals, refEnergy *lca.IndicatorSet) (*Result, error) {
	if !v.UseReferenceModel {
		return NewFixedValuesCalculator(v.Thresholds).Compute(totals), nil
	}
	if v.RefConstruction.Len() == 0 {
		return nil, fmt.Errorf("benchmark version %d: %w", v.ID, ErrMissingReferenceValues)
	}
	return NewRefValueCalculator(v.Thresholds, v.RefConstruction).Compute(totals, refEnergy), nil
}

// EvaluateGroups evaluates every group of the version against result.
func (v *Version) EvaluateGroups(result *Result) []GroupResult {
	results := make([]GroupResult, 0, len(v.Groups))
	for _, g := range v.Groups {
		results = append(results, g.Evaluate(result))
	}
	return results
}

// Validate checks the thresholds and the reference values.
func (v *Version) Validate() error {
	if err := v.Thresholds.Validate(); err != nil {
		return fmt.Errorf("benchmark version %d: %w", v.ID, err)
	}
	if v.UseReferenceModel && v.RefConstruction.Len() == 0 {
		return fmt.Errorf("benchmark version %d: %w", v.ID, ErrMissingReferenceValues)
	}
	for _, g := range v.Groups {
		if err := g.Validate(); err != nil {
			return fmt.Errorf("benchmark version %d: %w", v.ID, err)
		}
	}
	return nil
}
