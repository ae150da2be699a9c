package benchmark_test

import (
	"testing"

	"github.com/IWUGERMANY/elca-sub014/benchmark"
	"github.com/IWUGERMANY/elca-sub014/lca"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func d(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f)
}

func assertScore(t *testing.T, want float64, got decimal.NullDecimal) {
	t.Helper()
	require.True(t, got.Valid, "expected a score, got null")
	assert.Equal(t, want, got.Decimal.InexactFloat64())
}

// gwpCurve is "lower is better": 10 -> 100, 50 -> 50, 100 -> 0.
func gwpCurve() benchmark.NamedScoreThresholds {
	return benchmark.FromScoreMap("gwp", map[float64]float64{100: 10, 50: 50, 0: 100})
}

// =============================================================================
// NAMED SCORE THRESHOLDS
// =============================================================================

func TestNamedScoreThresholds_SortedByValue(t *testing.T) {
	th := gwpCurve()

	points := th.Points()
	require.Len(t, points, 3)
	assert.Equal(t, 10.0, points[0].Value.InexactFloat64())
	assert.Equal(t, 50.0, points[1].Value.InexactFloat64())
	assert.Equal(t, 100.0, points[2].Value.InexactFloat64())
}

func TestNamedScoreThresholds_MinMax(t *testing.T) {
	th := gwpCurve()

	minScore, ok := th.MinScore()
	require.True(t, ok)
	assert.Equal(t, 0.0, minScore.InexactFloat64())

	minValue, _ := th.MinScoreValue()
	assert.Equal(t, 100.0, minValue.InexactFloat64())

	maxScore, _ := th.MaxScore()
	assert.Equal(t, 100.0, maxScore.InexactFloat64())

	maxValue, _ := th.MaxScoreValue()
	assert.Equal(t, 10.0, maxValue.InexactFloat64())
}

func TestNamedScoreThresholds_Empty(t *testing.T) {
	th := benchmark.NewNamedScoreThresholds("odp")

	assert.True(t, th.IsEmpty())
	_, ok := th.MinScore()
	assert.False(t, ok)
	_, ok = th.MaxScoreValue()
	assert.False(t, ok)
}

func TestNamedScoreThresholds_ValidateRejectsDuplicateScore(t *testing.T) {
	th := benchmark.NewNamedScoreThresholds("gwp", benchmark.Point(50, 10), benchmark.Point(50, 20))

	err := th.Validate()
	assert.ErrorIs(t, err, benchmark.ErrInvalidThreshold)
}

func TestThresholdSet_EN15804Compliance(t *testing.T) {
	legacy := benchmark.NewThresholdSet()
	legacy.Put(lca.IndicatorPET, benchmark.FromScoreMap("pet", map[float64]float64{100: 100, 0: 200}))
	legacy.Put(lca.IndicatorPEEm, benchmark.FromScoreMap("pe_em", map[float64]float64{0: 0, 100: 50}))
	assert.False(t, legacy.IsEN15804Compliant())

	compliant := benchmark.NewThresholdSet()
	compliant.Put(lca.IndicatorPENRT, benchmark.FromScoreMap("penrt", map[float64]float64{100: 50}))
	assert.True(t, compliant.IsEN15804Compliant())

	// an empty curve does not count
	emptyCurve := benchmark.NewThresholdSet()
	emptyCurve.Put(lca.IndicatorPERT, benchmark.NewNamedScoreThresholds("pert"))
	assert.False(t, emptyCurve.IsEN15804Compliant())
}

// =============================================================================
// LINEAR SCORE INTERPOLATOR
// =============================================================================

func TestInterpolator_LowestValueTakesItsScore(t *testing.T) {
	// GIVEN: thresholds {100: 10, 50: 50, 0: 100} (score -> value)
	// WHEN: scoring the value 10
	// THEN: the score is 100

	i := benchmark.NewLinearScoreInterpolator(gwpCurve())
	assertScore(t, 100, i.ComputeScore(d(10)))
}

func TestInterpolator_Clamping(t *testing.T) {
	i := benchmark.NewLinearScoreInterpolator(gwpCurve())

	for _, v := range []float64{-5, 0, 3, 9.999} {
		assertScore(t, 100, i.ComputeScore(d(v)))
	}
	for _, v := range []float64{100.001, 150, 1e6} {
		assertScore(t, 0, i.ComputeScore(d(v)))
	}
}

func TestInterpolator_BoundaryIsInclusive(t *testing.T) {
	// GIVEN: a value exactly equal to a threshold
	// THEN: that threshold's score, not one interpolated from the bracket above

	i := benchmark.NewLinearScoreInterpolator(gwpCurve())
	assertScore(t, 50, i.ComputeScore(d(50)))
	assertScore(t, 0, i.ComputeScore(d(100)))
}

func TestInterpolator_LinearBetweenPoints(t *testing.T) {
	i := benchmark.NewLinearScoreInterpolator(gwpCurve())

	assertScore(t, 75, i.ComputeScore(d(30)))
	assertScore(t, 25, i.ComputeScore(d(75)))
}

func TestInterpolator_IncreasingCurveClampsToMinAndMaxScore(t *testing.T) {
	// GIVEN: a "higher is better" curve 10 -> 0, 50 -> 100
	th := benchmark.FromScoreMap("pert", map[float64]float64{0: 10, 100: 50})
	i := benchmark.NewLinearScoreInterpolator(th)

	minScore, _ := th.MinScore()
	maxScore, _ := th.MaxScore()

	assertScore(t, minScore.InexactFloat64(), i.ComputeScore(d(1)))
	assertScore(t, maxScore.InexactFloat64(), i.ComputeScore(d(80)))
	assertScore(t, 50, i.ComputeScore(d(30)))
}

func TestInterpolator_EmptyThresholdsGiveNull(t *testing.T) {
	i := benchmark.NewLinearScoreInterpolator(benchmark.NewNamedScoreThresholds("gwp"))

	assert.False(t, i.ComputeScore(d(42)).Valid)
}

func TestInterpolator_NullValueGivesNull(t *testing.T) {
	i := benchmark.NewLinearScoreInterpolator(gwpCurve())

	assert.False(t, i.ComputeIndicatorScore(lca.NullIndicatorValue(lca.IndicatorGWP)).Valid)
	assertScore(t, 75, i.ComputeIndicatorScore(lca.NewIndicatorValue(lca.IndicatorGWP, 30)))
}
