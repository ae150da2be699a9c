package lifecycle

import (
	"fmt"
	"sort"

	"github.com/IWUGERMANY/elca-sub014/lca"
	"github.com/shopspring/decimal"
)

// =============================================================================
// TOTALS - Benchmark input from per-module results
// =============================================================================

// TotalsOptions normalizes totals to values per m2 net floor space and year.
// Zero fields leave the totals unnormalized.
type TotalsOptions struct {
	NetFloorSpace decimal.Decimal // m2
	LifeTime      decimal.Decimal // years
}

// AggregateTotals sums the indicator sets of every module applied in
// totals, in canonical module order, and applies TotalsOptions.
func AggregateTotals(perModule map[lca.Module]*lca.IndicatorSet, usages *LifeCycleUsages, opts TotalsOptions) (*lca.IndicatorSet, error) {
	modules := make([]lca.Module, 0, len(perModule))
	for m := range perModule {
		modules = append(modules, m)
	}
	sort.Slice(modules, func(i, j int) bool { return modules[i].Less(modules[j]) })

	totals := &lca.IndicatorSet{}
	for _, m := range modules {
		if !usages.ModuleIsAppliedInTotals(m) {
			continue
		}
		totals = totals.Add(perModule[m])
	}

	divisor := decimal.NewFromInt(1)
	if opts.NetFloorSpace.IsNegative() || opts.LifeTime.IsNegative() {
		return nil, fmt.Errorf("%w: negative floor space or life time", lca.ErrInvalidArgument)
	}
	if !opts.NetFloorSpace.IsZero() {
		divisor = divisor.Mul(opts.NetFloorSpace)
	}
	if !opts.LifeTime.IsZero() {
		divisor = divisor.Mul(opts.LifeTime)
	}
	return totals.DivideBy(divisor)
}
