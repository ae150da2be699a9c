package lifecycle_test

import (
	"testing"

	"github.com/IWUGERMANY/elca-sub014/conversion"
	"github.com/IWUGERMANY/elca-sub014/lca"
	"github.com/IWUGERMANY/elca-sub014/lifecycle"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

var testID = lca.ProcessLifeCycleID{ProcessConfigID: 42, ProcessDbID: 1}

func process(id int64, module lca.Module, unit lca.Unit, indicators ...lca.IndicatorValue) lifecycle.Process {
	return lifecycle.NewProcess(lca.ProcessID(id), string(module), module, lca.NewQuantity(1, unit), indicators...)
}

func gwp(v float64) lca.IndicatorValue {
	return lca.NewIndicatorValue(lca.IndicatorGWP, v)
}

func gwpOf(t *testing.T, set *lca.IndicatorSet) float64 {
	t.Helper()
	v, ok := set.Get(lca.IndicatorGWP)
	require.True(t, ok)
	f, ok := v.Float64()
	require.True(t, ok)
	return f
}

// =============================================================================
// REQUIRED / ADDITIONAL CONVERSIONS
// =============================================================================

func TestRequiredUnits_ExcludeUsageAndKeepOrder(t *testing.T) {
	lc := lifecycle.New(testID, []lifecycle.Process{
		process(1, lca.ModuleC3, lca.UnitKilogram),
		process(2, lca.ModuleB6, lca.UnitKilowattHour),
		process(3, lca.ModuleA13, lca.UnitPiece),
		process(4, lca.ModuleD, lca.UnitKilogram),
	}, nil)

	assert.Equal(t, []lca.Unit{lca.UnitKilogram, lca.UnitPiece}, lc.RequiredUnits())
}

func TestRequiredConversions_EmptyForSingleUnit(t *testing.T) {
	lc := lifecycle.New(testID, []lifecycle.Process{
		process(1, lca.ModuleA13, lca.UnitKilogram),
		process(2, lca.ModuleC3, lca.UnitKilogram),
		process(3, lca.ModuleB6, lca.UnitKilowattHour),
	}, nil)

	assert.True(t, lc.RequiredConversions().IsEmpty())
	assert.Empty(t, lc.MissingConversions())
}

func TestRequiredConversions_PlaceholderWhenMissing(t *testing.T) {
	// GIVEN: A1-3 in pieces, C3 in kg, no stored conversions
	// WHEN: asking for the required conversions
	// THEN: one required placeholder piece -> kg

	lc := lifecycle.New(testID, []lifecycle.Process{
		process(1, lca.ModuleA13, lca.UnitPiece),
		process(2, lca.ModuleC3, lca.UnitKilogram),
	}, nil)

	required := lc.RequiredConversions().Slice()

	require.Len(t, required, 1)
	assert.Equal(t, lca.UnitPiece, required[0].From())
	assert.Equal(t, lca.UnitKilogram, required[0].To())
	assert.False(t, required[0].IsKnown())
	assert.Len(t, lc.MissingConversions(), 1)
}

func TestRequiredConversions_InverseStoredConversionIsReturnedAsIs(t *testing.T) {
	lc := lifecycle.New(testID, []lifecycle.Process{
		process(1, lca.ModuleA13, lca.UnitKilogram),
		process(2, lca.ModuleC3, lca.UnitCubicMetre),
	}, []conversion.Conversion{
		conversion.Linear(lca.UnitCubicMetre, lca.UnitKilogram, 500),
	})

	required := lc.RequiredConversions().Slice()

	require.Len(t, required, 1)
	assert.Equal(t, lca.UnitCubicMetre, required[0].From())
	assert.True(t, required[0].IsKnown())
	assert.Empty(t, lc.MissingConversions())
}

func TestAdditionalConversions(t *testing.T) {
	// GIVEN: stored piece -> kg (2) and m3 -> kg (3), required units {m3, kg}
	// WHEN: asking for the additional conversions
	// THEN: only piece -> kg; m3 -> kg is required

	lc := lifecycle.New(testID, []lifecycle.Process{
		process(1, lca.ModuleA13, lca.UnitCubicMetre),
		process(2, lca.ModuleC3, lca.UnitKilogram),
	}, []conversion.Conversion{
		conversion.Linear(lca.UnitPiece, lca.UnitKilogram, 2),
		conversion.Linear(lca.UnitCubicMetre, lca.UnitKilogram, 3),
	})

	additional := lc.AdditionalConversions().Slice()

	require.Len(t, additional, 1)
	assert.Equal(t, lca.UnitPiece, additional[0].From())
	assert.Equal(t, lca.UnitKilogram, additional[0].To())
}

// =============================================================================
// QUANTITATIVE REFERENCE
// =============================================================================

func TestQuantitativeReference_FallsBackToUsage(t *testing.T) {
	lc := lifecycle.New(testID, []lifecycle.Process{
		process(1, lca.ModuleB6, lca.UnitKilowattHour),
	}, nil)

	q, ok := lc.QuantitativeReference()
	require.True(t, ok)
	assert.Equal(t, lca.UnitKilowattHour, q.Unit)

	_, ok = lc.QuantitativeReferenceForStage(lca.StageProduction)
	assert.False(t, ok, "an explicit stage has no fallback")
}

func TestQuantitativeReference_PrefersProduction(t *testing.T) {
	lc := lifecycle.New(testID, []lifecycle.Process{
		process(1, lca.ModuleB6, lca.UnitKilowattHour),
		process(2, lca.ModuleA13, lca.UnitSquareMetre),
	}, nil)

	q, ok := lc.QuantitativeReference()
	require.True(t, ok)
	assert.Equal(t, lca.UnitSquareMetre, q.Unit)
	assert.Len(t, lc.UsageProcesses(), 1)
	assert.Len(t, lc.ProductionProcesses(), 1)
}

// =============================================================================
// COMPONENT INDICATORS
// =============================================================================

func TestComponentIndicators(t *testing.T) {
	// GIVEN: A1-3 per m3 (gwp 100), C3 per kg (gwp 2, ratio 0.5), D per piece
	//        without a conversion, and m3 -> kg = 500
	// WHEN: computing indicators for 2 m3
	// THEN: A1-3 = 200, C3 = 1000 kg * 2 * 0.5 = 1000, D is skipped with a warning

	c3 := process(2, lca.ModuleC3, lca.UnitKilogram, gwp(2))
	c3.ModuleRatio = decimal.NewFromFloat(0.5)

	lc := lifecycle.New(testID, []lifecycle.Process{
		process(1, lca.ModuleA13, lca.UnitCubicMetre, gwp(100)),
		c3,
		process(3, lca.ModuleD, lca.UnitPiece, gwp(-5)),
		process(4, lca.ModuleB6, lca.UnitKilowattHour, gwp(1)),
	}, []conversion.Conversion{
		conversion.Linear(lca.UnitCubicMetre, lca.UnitKilogram, 500),
	})

	result := lc.ComponentIndicators(lca.NewQuantity(2, lca.UnitCubicMetre), nil)

	assert.Equal(t, []lca.Module{lca.ModuleA13, lca.ModuleC3}, result.ModulesInOrder())
	assert.Equal(t, 200.0, gwpOf(t, result.Modules[lca.ModuleA13]))
	assert.Equal(t, 1000.0, gwpOf(t, result.Modules[lca.ModuleC3]))

	require.Len(t, result.Warnings, 1)
	var convErr *conversion.ConversionError
	require.ErrorAs(t, result.Warnings[0], &convErr)
	assert.Equal(t, lca.ProcessConfigID(42), convErr.ProcessConfigID)
}

func TestComponentIndicators_ZeroRatioSwitchesModuleOff(t *testing.T) {
	a13 := process(1, lca.ModuleA13, lca.UnitKilogram, gwp(3))
	a13.ModuleRatio = decimal.Zero
	lc := lifecycle.New(testID, []lifecycle.Process{a13}, nil)

	result := lc.ComponentIndicators(lca.NewQuantity(10, lca.UnitKilogram), nil)

	assert.Equal(t, 0.0, gwpOf(t, result.Modules[lca.ModuleA13]))
}

func TestComponentIndicators_TransitiveConverter(t *testing.T) {
	lc := lifecycle.New(testID, []lifecycle.Process{
		process(1, lca.ModuleA13, lca.UnitKilogram, gwp(1)),
	}, []conversion.Conversion{
		conversion.Linear(lca.UnitSquareMetre, lca.UnitCubicMetre, 0.2),
		conversion.Linear(lca.UnitCubicMetre, lca.UnitKilogram, 500),
	})

	plain := lc.ComponentIndicators(lca.NewQuantity(1, lca.UnitSquareMetre), nil)
	assert.Len(t, plain.Warnings, 1)

	transitive := conversion.NewConverter(lc.ProcessConfigID(), lc.Conversions(), conversion.WithTransitive())
	result := lc.ComponentIndicators(lca.NewQuantity(1, lca.UnitSquareMetre), transitive)
	assert.Empty(t, result.Warnings)
	assert.Equal(t, 100.0, gwpOf(t, result.Modules[lca.ModuleA13]))
}
