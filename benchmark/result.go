package benchmark

import (
	"github.com/IWUGERMANY/elca-sub014/lca"
	"github.com/shopspring/decimal"
)

// =============================================================================
// RESULT
// =============================================================================

// Result holds the scores of one benchmark computation.
//
// Scores keeps one entry per scored indicator in input order; a null entry
// means "no benchmark available" for that indicator. PrimaryEnergy is the
// composite "pe" score and is only valid when its inputs were present.
// Skipped lists indicators that could not be scored at all.
type Result struct {
	Scores           map[lca.IndicatorIdent]decimal.NullDecimal
	PrimaryEnergy    decimal.NullDecimal
	EN15804Compliant bool
	Skipped          map[lca.IndicatorIdent]error

	order []lca.IndicatorIdent
}

func newResult(compliant bool) *Result {
	return &Result{
		Scores:           make(map[lca.IndicatorIdent]decimal.NullDecimal),
		EN15804Compliant: compliant,
		Skipped:          make(map[lca.IndicatorIdent]error),
	}
}

func (r *Result) setScore(ident lca.IndicatorIdent, score decimal.NullDecimal) {
	if _, exists := r.Scores[ident]; !exists {
		r.order = append(r.order, ident)
	}
	r.Scores[ident] = score
}

// Idents returns the scored idents in input order, without "pe".
func (r *Result) Idents() []lca.IndicatorIdent {
	return append([]lca.IndicatorIdent(nil), r.order...)
}

// Score returns the score for ident. The "pe" ident resolves to the
// composite. The bool is false when no valid score exists.
func (r *Result) Score(ident lca.IndicatorIdent) (decimal.Decimal, bool) {
	if ident == lca.IndicatorPE {
		return r.PrimaryEnergy.Decimal, r.PrimaryEnergy.Valid
	}
	s, ok := r.Scores[ident]
	if !ok || !s.Valid {
		return decimal.Zero, false
	}
	return s.Decimal, true
}

// HasPrimaryEnergy reports whether the composite "pe" score was computed.
func (r *Result) HasPrimaryEnergy() bool { return r.PrimaryEnergy.Valid }

// ToMap flattens the result into ident -> score. Null scores map to nil.
// The "pe" key is present only when the composite was computed.
func (r *Result) ToMap() map[string]*float64 {
	m := make(map[string]*float64, len(r.Scores)+1)
	for ident, s := range r.Scores {
		m[ident.String()] = nullToFloat(s)
	}
	if r.PrimaryEnergy.Valid {
		m[lca.IndicatorPE.String()] = nullToFloat(r.PrimaryEnergy)
	}
	return m
}

func nullToFloat(d decimal.NullDecimal) *float64 {
	if !d.Valid {
		return nil
	}
	f, _ := d.Decimal.Float64()
	return &f
}
