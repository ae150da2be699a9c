/*
indicator.go - Environmental indicator identity and values

PURPOSE:
  Every LCA result is a set of indicator values: global warming potential,
  ozone depletion, the primary-energy family, and so on. Benchmarks score
  these values; life cycles produce them per module.

PRIMARY ENERGY:
  Two generations of the standard name primary energy differently.
  Legacy:    pe_em (renewable), pe_n_em (non-renewable), pet (total)
  EN 15804:  pere, perm, pert (renewable)
             penre, penrm, penrt (non-renewable)
  The pseudo indicator "pe" is the composite primary-energy score and is
  never a measured value.

NULL VALUES:
  An IndicatorValue may be null (no value computed). Arithmetic on a null
  value yields a null value.

SEE ALSO:
  - benchmark/fixed.go: Renewable share scoring and the "pe" composite
  - lifecycle/totals.go: Aggregation of per-module indicator sets
*/
package lca

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// =============================================================================
// INDICATOR IDENT
// =============================================================================

type IndicatorIdent string

const (
	IndicatorGWP   IndicatorIdent = "gwp"
	IndicatorODP   IndicatorIdent = "odp"
	IndicatorPOCP  IndicatorIdent = "pocp"
	IndicatorAP    IndicatorIdent = "ap"
	IndicatorEP    IndicatorIdent = "ep"
	IndicatorADP   IndicatorIdent = "adp"
	IndicatorADPE  IndicatorIdent = "adpe"
	IndicatorADPF  IndicatorIdent = "adpf"
	IndicatorPET   IndicatorIdent = "pet"
	IndicatorPERE  IndicatorIdent = "pere"
	IndicatorPERM  IndicatorIdent = "perm"
	IndicatorPERT  IndicatorIdent = "pert"
	IndicatorPENRE IndicatorIdent = "penre"
	IndicatorPENRM IndicatorIdent = "penrm"
	IndicatorPENRT IndicatorIdent = "penrt"
	IndicatorPEEm  IndicatorIdent = "pe_em"
	IndicatorPENEm IndicatorIdent = "pe_n_em"

	// IndicatorPE is the composite primary-energy score.
	IndicatorPE IndicatorIdent = "pe"
)

var (
	renewablePrimaryEnergy = map[IndicatorIdent]bool{
		IndicatorPEEm: true,
		IndicatorPERE: true,
		IndicatorPERM: true,
		IndicatorPERT: true,
	}
	nonRenewablePrimaryEnergy = map[IndicatorIdent]bool{
		IndicatorPENEm: true,
		IndicatorPENRE: true,
		IndicatorPENRM: true,
		IndicatorPENRT: true,
	}
	knownIndicators = map[IndicatorIdent]bool{
		IndicatorGWP: true, IndicatorODP: true, IndicatorPOCP: true, IndicatorAP: true,
		IndicatorEP: true, IndicatorADP: true, IndicatorADPE: true, IndicatorADPF: true,
		IndicatorPET: true, IndicatorPE: true,
	}
	indicatorAliases = map[string]IndicatorIdent{
		"peem":   IndicatorPEEm,
		"penem":  IndicatorPENEm,
		"pe_nem": IndicatorPENEm,
	}
)

func init() {
	for i := range renewablePrimaryEnergy {
		knownIndicators[i] = true
	}
	for i := range nonRenewablePrimaryEnergy {
		knownIndicators[i] = true
	}
}

// ParseIndicatorIdent accepts the canonical idents and the camel-cased
// spellings used by older exports (peEm, peNEm).
func ParseIndicatorIdent(s string) (IndicatorIdent, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if alias, ok := indicatorAliases[key]; ok {
		return alias, nil
	}
	ident := IndicatorIdent(key)
	if !knownIndicators[ident] {
		return "", fmt.Errorf("%w: %q", ErrUnknownIndicator, s)
	}
	return ident, nil
}

func (i IndicatorIdent) String() string { return string(i) }

func (i IndicatorIdent) IsKnown() bool { return knownIndicators[i] }

// IsRenewablePrimaryEnergy reports membership in {pe_em, pere, perm, pert}.
func (i IndicatorIdent) IsRenewablePrimaryEnergy() bool { return renewablePrimaryEnergy[i] }

// IsNonRenewablePrimaryEnergy reports membership in {pe_n_em, penre, penrm, penrt}.
func (i IndicatorIdent) IsNonRenewablePrimaryEnergy() bool { return nonRenewablePrimaryEnergy[i] }

func (i IndicatorIdent) IsPrimaryEnergy() bool {
	return i == IndicatorPET || i == IndicatorPE ||
		i.IsRenewablePrimaryEnergy() || i.IsNonRenewablePrimaryEnergy()
}

// IsEN15804 reports whether the ident belongs to the EN 15804 primary
// energy vocabulary.
func (i IndicatorIdent) IsEN15804() bool {
	switch i {
	case IndicatorPERE, IndicatorPERM, IndicatorPERT, IndicatorPENRE, IndicatorPENRM, IndicatorPENRT:
		return true
	}
	return false
}

// =============================================================================
// INDICATOR VALUE
// =============================================================================

// IndicatorValue is the value of one indicator. Value.Valid is false for a
// null value.
type IndicatorValue struct {
	Ident IndicatorIdent
	Value decimal.NullDecimal
}

func NewIndicatorValue(ident IndicatorIdent, value float64) IndicatorValue {
	return IndicatorValue{Ident: ident, Value: decimal.NewNullDecimal(decimal.NewFromFloat(value))}
}

func NewIndicatorValueFromDecimal(ident IndicatorIdent, value decimal.Decimal) IndicatorValue {
	return IndicatorValue{Ident: ident, Value: decimal.NewNullDecimal(value)}
}

func NullIndicatorValue(ident IndicatorIdent) IndicatorValue {
	return IndicatorValue{Ident: ident}
}

func (v IndicatorValue) IsNull() bool { return !v.Value.Valid }

// IsZero is true for null values and for values equal to zero.
func (v IndicatorValue) IsZero() bool { return !v.Value.Valid || v.Value.Decimal.IsZero() }

// Decimal returns the value, or zero for a null value.
func (v IndicatorValue) Decimal() decimal.Decimal {
	if !v.Value.Valid {
		return decimal.Zero
	}
	return v.Value.Decimal
}

// Float64 returns the value and whether it is non-null.
func (v IndicatorValue) Float64() (float64, bool) {
	if !v.Value.Valid {
		return 0, false
	}
	f, _ := v.Value.Decimal.Float64()
	return f, true
}

// Add sums two values. A null operand is treated as absent: null + x = x.
// Only null + null stays null.
func (v IndicatorValue) Add(other IndicatorValue) IndicatorValue {
	switch {
	case !v.Value.Valid && !other.Value.Valid:
		return NullIndicatorValue(v.Ident)
	case !v.Value.Valid:
		return NewIndicatorValueFromDecimal(v.Ident, other.Value.Decimal)
	case !other.Value.Valid:
		return v
	}
	return NewIndicatorValueFromDecimal(v.Ident, v.Value.Decimal.Add(other.Value.Decimal))
}

func (v IndicatorValue) MultiplyBy(f decimal.Decimal) IndicatorValue {
	if !v.Value.Valid {
		return v
	}
	return NewIndicatorValueFromDecimal(v.Ident, v.Value.Decimal.Mul(f))
}

// DivideBy fails with ErrDivisionByZero for a zero divisor.
func (v IndicatorValue) DivideBy(d decimal.Decimal) (IndicatorValue, error) {
	if d.IsZero() {
		return IndicatorValue{}, fmt.Errorf("%w: %s", ErrDivisionByZero, v.Ident)
	}
	if !v.Value.Valid {
		return v, nil
	}
	return NewIndicatorValueFromDecimal(v.Ident, v.Value.Decimal.Div(d)), nil
}

func (v IndicatorValue) String() string {
	if !v.Value.Valid {
		return fmt.Sprintf("%s=null", v.Ident)
	}
	return fmt.Sprintf("%s=%s", v.Ident, v.Value.Decimal.String())
}

// =============================================================================
// INDICATOR SET - Insertion-ordered values keyed by ident
// =============================================================================

// IndicatorSet holds at most one value per ident and remembers the order in
// which idents were first put. The zero value is ready to use.
type IndicatorSet struct {
	order  []IndicatorIdent
	values map[IndicatorIdent]IndicatorValue
}

func NewIndicatorSet(values ...IndicatorValue) *IndicatorSet {
	s := &IndicatorSet{}
	for _, v := range values {
		s.Put(v)
	}
	return s
}

// Put stores v, replacing any value with the same ident.
func (s *IndicatorSet) Put(v IndicatorValue) {
	if s.values == nil {
		s.values = make(map[IndicatorIdent]IndicatorValue)
	}
	if _, exists := s.values[v.Ident]; !exists {
		s.order = append(s.order, v.Ident)
	}
	s.values[v.Ident] = v
}

func (s *IndicatorSet) Get(ident IndicatorIdent) (IndicatorValue, bool) {
	if s == nil {
		return IndicatorValue{}, false
	}
	v, ok := s.values[ident]
	return v, ok
}

func (s *IndicatorSet) Has(ident IndicatorIdent) bool {
	_, ok := s.Get(ident)
	return ok
}

func (s *IndicatorSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.order)
}

// Idents returns the idents in insertion order.
func (s *IndicatorSet) Idents() []IndicatorIdent {
	if s == nil {
		return nil
	}
	return append([]IndicatorIdent(nil), s.order...)
}

// Values returns the values in insertion order.
func (s *IndicatorSet) Values() []IndicatorValue {
	if s == nil {
		return nil
	}
	result := make([]IndicatorValue, 0, len(s.order))
	for _, ident := range s.order {
		result = append(result, s.values[ident])
	}
	return result
}

// Add returns a new set holding the ident-wise sum of s and other.
func (s *IndicatorSet) Add(other *IndicatorSet) *IndicatorSet {
	result := NewIndicatorSet(s.Values()...)
	for _, v := range other.Values() {
		if existing, ok := result.Get(v.Ident); ok {
			result.Put(existing.Add(v))
		} else {
			result.Put(v)
		}
	}
	return result
}

// MultiplyBy returns a new set with every value multiplied by f.
func (s *IndicatorSet) MultiplyBy(f decimal.Decimal) *IndicatorSet {
	result := &IndicatorSet{}
	for _, v := range s.Values() {
		result.Put(v.MultiplyBy(f))
	}
	return result
}

// DivideBy returns a new set with every value divided by d.
func (s *IndicatorSet) DivideBy(d decimal.Decimal) (*IndicatorSet, error) {
	result := &IndicatorSet{}
	for _, v := range s.Values() {
		divided, err := v.DivideBy(d)
		if err != nil {
			return nil, err
		}
		result.Put(divided)
	}
	return result, nil
}
