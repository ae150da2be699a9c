package benchmark

import (
	"fmt"
	"sort"

	"github.com/IWUGERMANY/elca-sub014/lca"
	"github.com/shopspring/decimal"
)

// =============================================================================
// GROUPS - Weighted summaries of indicator scores
// =============================================================================

// GroupMember weights one indicator score inside a group. The ident may be
// "pe" to refer to the composite primary-energy score.
type GroupMember struct {
	Ident  lca.IndicatorIdent
	Weight decimal.Decimal
}

// Caption labels group scores at or above MinScore.
type Caption struct {
	MinScore decimal.Decimal
	Caption  string
}

type Group struct {
	Name     string
	Members  []GroupMember
	Captions []Caption
}

type GroupResult struct {
	Name    string
	Score   decimal.NullDecimal
	Caption string
}

// Evaluate returns the weighted mean of the member scores present in r.
// Members without a score count neither in the sum nor in the weights.
// The caption is the one with the highest MinScore not above the score.
func (g Group) Evaluate(r *Result) GroupResult {
	out := GroupResult{Name: g.Name}

	sum, weights := decimal.Zero, decimal.Zero
	for _, m := range g.Members {
		score, ok := r.Score(m.Ident)
		if !ok {
			continue
		}
		sum = sum.Add(score.Mul(m.Weight))
		weights = weights.Add(m.Weight)
	}
	if weights.IsZero() {
		return out
	}
	score := sum.Div(weights)
	out.Score = decimal.NewNullDecimal(score)

	captions := append([]Caption(nil), g.Captions...)
	sort.SliceStable(captions, func(i, j int) bool { return captions[i].MinScore.LessThan(captions[j].MinScore) })
	for _, c := range captions {
		if c.MinScore.GreaterThan(score) {
			break
		}
		out.Caption = c.Caption
	}
	return out
}

func (g Group) Validate() error {
	for _, m := range g.Members {
		if m.Weight.IsNegative() {
			return fmt.Errorf("%w: group %q member %s has negative weight", lca.ErrInvalidArgument, g.Name, m.Ident)
		}
	}
	return nil
}
