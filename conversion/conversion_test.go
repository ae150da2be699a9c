package conversion_test

import (
	"testing"

	"github.com/IWUGERMANY/elca-sub014/conversion"
	"github.com/IWUGERMANY/elca-sub014/lca"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f)
}

// =============================================================================
// CONVERSION VARIANTS
// =============================================================================

func TestLinear_Convert(t *testing.T) {
	c := conversion.Linear(lca.UnitCubicMetre, lca.UnitKilogram, 500)

	v, err := c.Convert(d(2))
	require.NoError(t, err)
	assert.True(t, d(1000).Equal(v))
	assert.True(t, c.IsKnown())
	assert.Equal(t, conversion.KindLinear, c.Kind())
}

func TestLinear_InvertRoundTrip(t *testing.T) {
	c := conversion.Linear(lca.UnitPiece, lca.UnitKilogram, 4)

	inv, err := c.Invert()
	require.NoError(t, err)
	assert.Equal(t, lca.UnitKilogram, inv.From())
	assert.Equal(t, lca.UnitPiece, inv.To())
	factor, _ := inv.Factor()
	assert.True(t, d(0.25).Equal(factor))

	back, err := inv.Invert()
	require.NoError(t, err)
	assert.True(t, c.Equal(back))
}

func TestLinear_InvertZeroFactorFails(t *testing.T) {
	c := conversion.Linear(lca.UnitPiece, lca.UnitKilogram, 0)

	_, err := c.Invert()
	assert.ErrorIs(t, err, conversion.ErrZeroFactor)
}

func TestImported_KeepsType(t *testing.T) {
	c := conversion.Imported(lca.UnitCubicMetre, lca.UnitKilogram, 2400, conversion.TypeGrossDensity)

	inv, err := c.Invert()
	require.NoError(t, err)
	assert.True(t, inv.IsImported())
	assert.Equal(t, conversion.TypeGrossDensity, inv.Type())
}

func TestRequired_IsNotConvertible(t *testing.T) {
	c := conversion.Required(lca.UnitPiece, lca.UnitKilogram)

	assert.False(t, c.IsKnown())
	_, ok := c.Factor()
	assert.False(t, ok)

	_, err := c.Convert(d(1))
	var unconvertible *conversion.UnconvertibleUnitsError
	require.ErrorAs(t, err, &unconvertible)
	assert.Equal(t, lca.UnitPiece, unconvertible.From)
	assert.ErrorIs(t, err, conversion.ErrUnknownConversion)

	assert.Panics(t, func() { c.MustConvert(d(1)) })

	inv, err := c.Invert()
	require.NoError(t, err)
	assert.False(t, inv.IsKnown())
}

func TestNewLinear_RejectsEqualOrEmptyUnits(t *testing.T) {
	_, err := conversion.NewLinear(lca.UnitKilogram, lca.UnitKilogram, d(1))
	assert.ErrorIs(t, err, conversion.ErrSameUnit)

	_, err = conversion.NewRequired("", lca.UnitKilogram)
	assert.ErrorIs(t, err, lca.ErrInvalidUnit)
}

func TestConvertQuantity_ChecksUnit(t *testing.T) {
	c := conversion.Linear(lca.UnitCubicMetre, lca.UnitKilogram, 500)

	q, err := c.ConvertQuantity(lca.NewQuantity(0.5, lca.UnitCubicMetre))
	require.NoError(t, err)
	assert.True(t, q.Equal(lca.NewQuantity(250, lca.UnitKilogram)))

	_, err = c.ConvertQuantity(lca.NewQuantity(1, lca.UnitPiece))
	assert.ErrorIs(t, err, conversion.ErrUnitMismatch)
}

// =============================================================================
// SET
// =============================================================================

func TestSet_DeduplicatesPairs(t *testing.T) {
	// GIVEN: two conversions for the same (from, to) pair
	// WHEN: adding both
	// THEN: the set keeps only the first

	set := conversion.NewSet()
	assert.True(t, set.Add(conversion.Linear(lca.UnitPiece, lca.UnitKilogram, 2)))
	assert.False(t, set.Add(conversion.Linear(lca.UnitPiece, lca.UnitKilogram, 3)))

	require.Equal(t, 1, set.Len())
	c, _ := set.Find(lca.UnitPiece, lca.UnitKilogram)
	factor, _ := c.Factor()
	assert.True(t, d(2).Equal(factor))
}

func TestSet_KnownReplacesPlaceholder(t *testing.T) {
	set := conversion.NewSet(conversion.Required(lca.UnitPiece, lca.UnitKilogram))

	assert.True(t, set.Add(conversion.Linear(lca.UnitPiece, lca.UnitKilogram, 2)))

	require.Equal(t, 1, set.Len())
	c, _ := set.Find(lca.UnitPiece, lca.UnitKilogram)
	assert.True(t, c.IsKnown())
}

func TestSet_HasConsidersInverse(t *testing.T) {
	set := conversion.NewSet(conversion.Linear(lca.UnitPiece, lca.UnitKilogram, 2))

	assert.True(t, set.Has(lca.UnitKilogram, lca.UnitPiece))
	assert.False(t, set.HasExact(lca.UnitKilogram, lca.UnitPiece))
	assert.True(t, set.HasExact(lca.UnitPiece, lca.UnitKilogram))
}

func TestSet_FilterAndWithout(t *testing.T) {
	set := conversion.NewSet(
		conversion.Linear(lca.UnitPiece, lca.UnitKilogram, 2),
		conversion.Linear(lca.UnitCubicMetre, lca.UnitKilogram, 3),
		conversion.Linear(lca.UnitSquareMetre, lca.UnitCubicMetre, 0.2),
	)

	assert.Equal(t, 2, set.FilterByUnit(lca.UnitCubicMetre).Len())

	// the other set stores the pair in the opposite direction
	rest := set.Without(conversion.NewSet(conversion.Required(lca.UnitKilogram, lca.UnitCubicMetre)))
	assert.Equal(t, 2, rest.Len())
	assert.False(t, rest.HasExact(lca.UnitCubicMetre, lca.UnitKilogram))

	assert.Equal(t, []lca.Unit{lca.UnitPiece, lca.UnitKilogram, lca.UnitCubicMetre, lca.UnitSquareMetre}, set.Units())
}
