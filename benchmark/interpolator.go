package benchmark

import (
	"github.com/IWUGERMANY/elca-sub014/lca"
	"github.com/shopspring/decimal"
)

// =============================================================================
// LINEAR SCORE INTERPOLATOR
// =============================================================================

// LinearScoreInterpolator maps an observed value onto a scoring curve.
//
// Points are walked in ascending value order. A value falls into the bracket
// (previous, current]: the upper bound is inclusive, so a value equal to a
// threshold takes exactly that threshold's score. Values at or below the
// first point take its score, values above the last point take the last
// score. Nothing is extrapolated.
type LinearScoreInterpolator struct {
	thresholds NamedScoreThresholds
}

func NewLinearScoreInterpolator(t NamedScoreThresholds) LinearScoreInterpolator {
	return LinearScoreInterpolator{thresholds: t}
}

func (i LinearScoreInterpolator) Thresholds() NamedScoreThresholds { return i.thresholds }

// ComputeScore returns a null score when the curve is empty.
func (i LinearScoreInterpolator) ComputeScore(value decimal.Decimal) decimal.NullDecimal {
	points := i.thresholds.points
	if len(points) == 0 {
		return decimal.NullDecimal{}
	}

	first, last := points[0], points[len(points)-1]
	if value.LessThan(first.Value) {
		return decimal.NewNullDecimal(first.Score)
	}
	if value.GreaterThan(last.Value) {
		return decimal.NewNullDecimal(last.Score)
	}

	for idx, p := range points {
		if value.GreaterThan(p.Value) {
			continue
		}
		if idx == 0 {
			return decimal.NewNullDecimal(p.Score)
		}
		// value > prev.Value here, so the bracket has a non-zero width
		prev := points[idx-1]
		slope := p.Score.Sub(prev.Score).Div(p.Value.Sub(prev.Value))
		return decimal.NewNullDecimal(prev.Score.Add(value.Sub(prev.Value).Mul(slope)))
	}
	return decimal.NewNullDecimal(last.Score)
}

// ComputeIndicatorScore scores an indicator value; null values score null.
func (i LinearScoreInterpolator) ComputeIndicatorScore(v lca.IndicatorValue) decimal.NullDecimal {
	if v.IsNull() {
		return decimal.NullDecimal{}
	}
	return i.ComputeScore(v.Value.Decimal)
}
