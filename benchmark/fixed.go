/*
fixed.go - Scoring indicator values against fixed thresholds

PURPOSE:
  FixedValuesCalculator scores every indicator of a value set against the
  curve registered for it and derives the composite primary-energy score.

RENEWABLE PRIMARY ENERGY:
  pe_em, pere, perm and pert are not scored on their raw value. Their share
  of the total primary energy is scored instead:

    share = value / pet * 100

  When pet is absent, null or zero the indicator is skipped and recorded in
  Result.Skipped with a *MissingTotalEnergyError. Other indicators are not
  affected.

COMPOSITE "pe":
  EN 15804 sets (curves for pert or penrt):
    pe = min(100, score(pet) + score(pert) + score(penrt))
    computed if pet and pert scores exist, a missing penrt counts as 0
  Legacy sets:
    pe = min(100, score(pet) + score(pe_em))
    computed if both scores exist
*/
package benchmark

import (
	"github.com/IWUGERMANY/elca-sub014/lca"
	"github.com/shopspring/decimal"
)

var (
	hundred = decimal.NewFromInt(100)
)

// =============================================================================
// FIXED VALUES CALCULATOR
// =============================================================================

type FixedValuesCalculator struct {
	thresholds *ThresholdSet
}

func NewFixedValuesCalculator(thresholds *ThresholdSet) *FixedValuesCalculator {
	if thresholds == nil {
		thresholds = NewThresholdSet()
	}
	return &FixedValuesCalculator{thresholds: thresholds}
}

func (c *FixedValuesCalculator) Thresholds() *ThresholdSet { return c.thresholds }

// Compute scores values. It never fails; unscorable indicators end up
// null in Result.Scores or in Result.Skipped.
func (c *FixedValuesCalculator) Compute(values *lca.IndicatorSet) *Result {
	result := newResult(c.thresholds.IsEN15804Compliant())
	pet, hasPet := values.Get(lca.IndicatorPET)

	for _, v := range values.Values() {
		// "pe" is derived below, never scored from input.
		if v.Ident == lca.IndicatorPE {
			continue
		}
		interpolator := NewLinearScoreInterpolator(c.thresholds.Get(v.Ident))

		if !v.Ident.IsRenewablePrimaryEnergy() {
			result.setScore(v.Ident, interpolator.ComputeIndicatorScore(v))
			continue
		}

		if !hasPet || pet.IsZero() {
			result.Skipped[v.Ident] = &MissingTotalEnergyError{Ident: v.Ident}
			continue
		}
		share, err := v.DivideBy(pet.Decimal())
		if err != nil {
			result.Skipped[v.Ident] = &MissingTotalEnergyError{Ident: v.Ident}
			continue
		}
		result.setScore(v.Ident, interpolator.ComputeIndicatorScore(share.MultiplyBy(hundred)))
	}

	result.PrimaryEnergy = c.primaryEnergy(result)
	return result
}

func (c *FixedValuesCalculator) primaryEnergy(r *Result) decimal.NullDecimal {
	petScore, ok := r.Score(lca.IndicatorPET)
	if !ok {
		return decimal.NullDecimal{}
	}

	if r.EN15804Compliant {
		pertScore, ok := r.Score(lca.IndicatorPERT)
		if !ok {
			return decimal.NullDecimal{}
		}
		penrtScore, _ := r.Score(lca.IndicatorPENRT) // zero if missing
		return decimal.NewNullDecimal(decimal.Min(hundred, petScore.Add(pertScore).Add(penrtScore)))
	}

	peEmScore, ok := r.Score(lca.IndicatorPEEm)
	if !ok {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(decimal.Min(hundred, petScore.Add(peEmScore)))
}
