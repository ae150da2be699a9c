/*
thresholds.go - Scoring curves per indicator

PURPOSE:
  A NamedScoreThresholds is one piecewise-linear scoring curve: a list of
  (score, value) points registered for an indicator of a benchmark version.
  A ThresholdSet holds the curves of one benchmark version keyed by
  indicator ident.

ORDERING:
  Points are kept sorted by threshold value ascending (ties by score) at
  construction, so interpolation never has to sort.

  Typical "lower is better" curve (gwp, kg CO2-eq per m2 and year):

    score  100 ----*
                    \
    score   50 ------*
                      \
    score    0 --------*
               10     50     100   value

EN 15804:
  A threshold set is EN 15804 compliant when it carries a curve for pert or
  penrt. The composite "pe" score is built differently for the two
  generations (see fixed.go).
*/
package benchmark

import (
	"fmt"
	"sort"

	"github.com/IWUGERMANY/elca-sub014/lca"
	"github.com/shopspring/decimal"
)

// =============================================================================
// THRESHOLD POINT
// =============================================================================

// Threshold is a single (score, value) point of a scoring curve.
type Threshold struct {
	Score decimal.Decimal
	Value decimal.Decimal
}

// Point is a float64 convenience constructor.
func Point(score, value float64) Threshold {
	return Threshold{Score: decimal.NewFromFloat(score), Value: decimal.NewFromFloat(value)}
}

// =============================================================================
// NAMED SCORE THRESHOLDS
// =============================================================================

type NamedScoreThresholds struct {
	name   string
	points []Threshold
}

func NewNamedScoreThresholds(name string, points ...Threshold) NamedScoreThresholds {
	sorted := append([]Threshold(nil), points...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if c := sorted[i].Value.Cmp(sorted[j].Value); c != 0 {
			return c < 0
		}
		return sorted[i].Score.LessThan(sorted[j].Score)
	})
	return NamedScoreThresholds{name: name, points: sorted}
}

// FromScoreMap builds thresholds from a score -> value table, the shape in
// which curves are usually written down.
func FromScoreMap(name string, byScore map[float64]float64) NamedScoreThresholds {
	points := make([]Threshold, 0, len(byScore))
	for score, value := range byScore {
		points = append(points, Point(score, value))
	}
	return NewNamedScoreThresholds(name, points...)
}

func (t NamedScoreThresholds) Name() string  { return t.name }
func (t NamedScoreThresholds) IsEmpty() bool { return len(t.points) == 0 }
func (t NamedScoreThresholds) Len() int      { return len(t.points) }

// Points returns the points in ascending value order.
func (t NamedScoreThresholds) Points() []Threshold {
	return append([]Threshold(nil), t.points...)
}

// MinScore returns the lowest score of the curve.
func (t NamedScoreThresholds) MinScore() (decimal.Decimal, bool) {
	p, ok := t.minScorePoint()
	return p.Score, ok
}

// MaxScore returns the highest score of the curve.
func (t NamedScoreThresholds) MaxScore() (decimal.Decimal, bool) {
	p, ok := t.maxScorePoint()
	return p.Score, ok
}

// MinScoreValue returns the threshold value registered for the lowest score.
func (t NamedScoreThresholds) MinScoreValue() (decimal.Decimal, bool) {
	p, ok := t.minScorePoint()
	return p.Value, ok
}

// MaxScoreValue returns the threshold value registered for the highest score.
func (t NamedScoreThresholds) MaxScoreValue() (decimal.Decimal, bool) {
	p, ok := t.maxScorePoint()
	return p.Value, ok
}

func (t NamedScoreThresholds) minScorePoint() (Threshold, bool) {
	if t.IsEmpty() {
		return Threshold{}, false
	}
	best := t.points[0]
	for _, p := range t.points[1:] {
		if p.Score.LessThan(best.Score) {
			best = p
		}
	}
	return best, true
}

func (t NamedScoreThresholds) maxScorePoint() (Threshold, bool) {
	if t.IsEmpty() {
		return Threshold{}, false
	}
	best := t.points[0]
	for _, p := range t.points[1:] {
		if p.Score.GreaterThan(best.Score) {
			best = p
		}
	}
	return best, true
}

// Validate rejects negative scores and duplicate scores.
func (t NamedScoreThresholds) Validate() error {
	seen := make(map[string]bool, len(t.points))
	for _, p := range t.points {
		if p.Score.IsNegative() {
			return fmt.Errorf("%w: %s has negative score %s", ErrInvalidThreshold, t.name, p.Score)
		}
		key := p.Score.String()
		if seen[key] {
			return fmt.Errorf("%w: %s has score %s twice", ErrInvalidThreshold, t.name, key)
		}
		seen[key] = true
	}
	return nil
}

// =============================================================================
// THRESHOLD SET
// =============================================================================

// ThresholdSet holds one curve per indicator ident, in insertion order.
// The zero value is an empty set.
type ThresholdSet struct {
	order  []lca.IndicatorIdent
	curves map[lca.IndicatorIdent]NamedScoreThresholds
}

func NewThresholdSet() *ThresholdSet {
	return &ThresholdSet{curves: make(map[lca.IndicatorIdent]NamedScoreThresholds)}
}

// Put registers thresholds for ident, replacing any existing curve.
func (s *ThresholdSet) Put(ident lca.IndicatorIdent, t NamedScoreThresholds) {
	if s.curves == nil {
		s.curves = make(map[lca.IndicatorIdent]NamedScoreThresholds)
	}
	if _, exists := s.curves[ident]; !exists {
		s.order = append(s.order, ident)
	}
	s.curves[ident] = t
}

// Get returns the curve for ident, or an empty curve named after it.
func (s *ThresholdSet) Get(ident lca.IndicatorIdent) NamedScoreThresholds {
	if s != nil {
		if t, ok := s.curves[ident]; ok {
			return t
		}
	}
	return NamedScoreThresholds{name: ident.String()}
}

func (s *ThresholdSet) Has(ident lca.IndicatorIdent) bool {
	if s == nil {
		return false
	}
	t, ok := s.curves[ident]
	return ok && !t.IsEmpty()
}

func (s *ThresholdSet) Idents() []lca.IndicatorIdent {
	if s == nil {
		return nil
	}
	return append([]lca.IndicatorIdent(nil), s.order...)
}

func (s *ThresholdSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.order)
}

// IsEN15804Compliant reports whether the set carries pert or penrt curves.
func (s *ThresholdSet) IsEN15804Compliant() bool {
	return s.Has(lca.IndicatorPERT) || s.Has(lca.IndicatorPENRT)
}

// Validate runs NamedScoreThresholds.Validate on every curve.
func (s *ThresholdSet) Validate() error {
	for _, ident := range s.Idents() {
		if err := s.curves[ident].Validate(); err != nil {
			return err
		}
	}
	return nil
}
