package benchmark

import (
	"github.com/IWUGERMANY/elca-sub014/lca"
)

// =============================================================================
// REFERENCE VALUE CALCULATOR
// =============================================================================

// RefValueCalculator normalizes totals against a reference building before
// scoring them with fixed thresholds:
//
//	normalized = total / (refConstruction + refEnergy)
//
// An indicator whose total, reference construction value or reference
// energy value is missing or zero is left out of the normalized set.
type RefValueCalculator struct {
	fixed           *FixedValuesCalculator
	refConstruction *lca.IndicatorSet
}

func NewRefValueCalculator(thresholds *ThresholdSet, refConstruction *lca.IndicatorSet) *RefValueCalculator {
	return &RefValueCalculator{
		fixed:           NewFixedValuesCalculator(thresholds),
		refConstruction: refConstruction,
	}
}

// Compute normalizes totals with refEnergy (the final energy values of the
// reference model) and scores the result.
func (c *RefValueCalculator) Compute(totals, refEnergy *lca.IndicatorSet) *Result {
	return c.fixed.Compute(c.Normalize(totals, refEnergy))
}

// Normalize returns the normalized indicator set without scoring it.
func (c *RefValueCalculator) Normalize(totals, refEnergy *lca.IndicatorSet) *lca.IndicatorSet {
	normalized := &lca.IndicatorSet{}
	for _, total := range totals.Values() {
		construction, ok := c.refConstruction.Get(total.Ident)
		if !ok || construction.IsZero() || total.IsZero() {
			continue
		}
		energy, ok := refEnergy.Get(total.Ident)
		if !ok || energy.IsZero() {
			continue
		}
		divided, err := total.DivideBy(construction.Decimal().Add(energy.Decimal()))
		if err != nil {
			continue
		}
		normalized.Put(divided)
	}
	return normalized
}
