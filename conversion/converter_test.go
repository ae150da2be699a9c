package conversion_test

import (
	"testing"

	"github.com/IWUGERMANY/elca-sub014/conversion"
	"github.com/IWUGERMANY/elca-sub014/lca"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConverter_IdentityNeedsNoConversion(t *testing.T) {
	converter := conversion.NewConverter(1, nil)

	for _, u := range []lca.Unit{lca.UnitKilogram, lca.UnitPiece, lca.Unit("bundle")} {
		v, err := converter.Convert(d(42.5), u, u)
		require.NoError(t, err)
		assert.True(t, d(42.5).Equal(v))
	}
}

func TestConverter_ExactAndInverse(t *testing.T) {
	converter := conversion.NewConverter(1, conversion.NewSet(
		conversion.Linear(lca.UnitCubicMetre, lca.UnitKilogram, 500),
	))

	v, err := converter.Convert(d(2), lca.UnitCubicMetre, lca.UnitKilogram)
	require.NoError(t, err)
	assert.True(t, d(1000).Equal(v))

	v, err = converter.Convert(d(1000), lca.UnitKilogram, lca.UnitCubicMetre)
	require.NoError(t, err)
	assert.True(t, d(2).Equal(v))

	assert.True(t, converter.Has(lca.UnitKilogram, lca.UnitCubicMetre))
	assert.False(t, converter.HasExact(lca.UnitKilogram, lca.UnitCubicMetre))
}

func TestConverter_MissingConversion(t *testing.T) {
	// GIVEN: a converter without a piece <-> kg conversion
	// WHEN: converting pieces to kg
	// THEN: a ConversionError carrying the process config and units

	converter := conversion.NewConverter(77, conversion.NewSet(
		conversion.Required(lca.UnitPiece, lca.UnitKilogram),
	))

	_, err := converter.Convert(d(1), lca.UnitPiece, lca.UnitKilogram)

	var convErr *conversion.ConversionError
	require.ErrorAs(t, err, &convErr)
	assert.Equal(t, lca.ProcessConfigID(77), convErr.ProcessConfigID)
	assert.Equal(t, lca.UnitPiece, convErr.From)
	assert.Equal(t, lca.UnitKilogram, convErr.To)
	assert.True(t, conversion.IsConversionError(err))
	assert.False(t, converter.CanConvert(lca.UnitPiece, lca.UnitKilogram))
}

func TestConverter_TransitiveIsOptIn(t *testing.T) {
	// GIVEN: m2 -> m3 (0.2) and m3 -> kg (500)
	set := conversion.NewSet(
		conversion.Linear(lca.UnitSquareMetre, lca.UnitCubicMetre, 0.2),
		conversion.Linear(lca.UnitCubicMetre, lca.UnitKilogram, 500),
	)

	direct := conversion.NewConverter(1, set)
	_, err := direct.Convert(d(1), lca.UnitSquareMetre, lca.UnitKilogram)
	assert.True(t, conversion.IsConversionError(err))

	transitive := conversion.NewConverter(1, set, conversion.WithTransitive())
	require.True(t, transitive.IsTransitive())

	v, err := transitive.Convert(d(3), lca.UnitSquareMetre, lca.UnitKilogram)
	require.NoError(t, err)
	assert.True(t, d(300).Equal(v))

	// and backwards through both inverses
	v, err = transitive.Convert(d(300), lca.UnitKilogram, lca.UnitSquareMetre)
	require.NoError(t, err)
	assert.True(t, d(3).Equal(v))
}

func TestConverter_TransitiveIgnoresPlaceholders(t *testing.T) {
	set := conversion.NewSet(
		conversion.Required(lca.UnitPiece, lca.UnitCubicMetre),
		conversion.Linear(lca.UnitCubicMetre, lca.UnitKilogram, 500),
	)
	converter := conversion.NewConverter(1, set, conversion.WithTransitive())

	assert.False(t, converter.CanConvert(lca.UnitPiece, lca.UnitKilogram))
}

func TestConverter_TransitivePrefersFewestSteps(t *testing.T) {
	// GIVEN: m2 -> m3 -> kg (x100) and the longer m2 -> m -> t -> kg (x200)
	// WHEN: converting 1 m2 to kg
	// THEN: the two-step chain is used

	set := conversion.NewSet(
		conversion.Linear(lca.UnitSquareMetre, lca.UnitCubicMetre, 0.2),
		conversion.Linear(lca.UnitCubicMetre, lca.UnitKilogram, 500),
		conversion.Linear(lca.UnitSquareMetre, lca.UnitMetre, 2),
		conversion.Linear(lca.UnitMetre, lca.UnitMetricTon, 0.1),
		conversion.Linear(lca.UnitMetricTon, lca.UnitKilogram, 1000),
	)
	converter := conversion.NewConverter(1, set, conversion.WithTransitive())

	v, err := converter.Convert(d(1), lca.UnitSquareMetre, lca.UnitKilogram)
	require.NoError(t, err)
	assert.True(t, d(100).Equal(v))
}

func TestConverter_ConvertQuantity(t *testing.T) {
	converter := conversion.NewConverter(1, conversion.NewSet(
		conversion.Linear(lca.UnitPiece, lca.UnitKilogram, 2.5),
	))

	q, err := converter.ConvertQuantity(lca.NewQuantity(4, lca.UnitPiece), lca.UnitKilogram)
	require.NoError(t, err)
	assert.True(t, q.Equal(lca.NewQuantity(10, lca.UnitKilogram)))
}
