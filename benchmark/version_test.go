package benchmark_test

import (
	"testing"

	"github.com/IWUGERMANY/elca-sub014/benchmark"
	"github.com/IWUGERMANY/elca-sub014/lca"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersion_MethodSelection(t *testing.T) {
	fixed := &benchmark.Version{ID: 1, Thresholds: en15804Thresholds()}
	assert.Equal(t, benchmark.MethodFixedValues, fixed.Method())

	result, err := fixed.Compute(values(lca.IndicatorGWP, 30.0))
	require.NoError(t, err)
	assertScore(t, 75, result.Scores[lca.IndicatorGWP])

	ref := &benchmark.Version{
		ID:                2,
		UseReferenceModel: true,
		Thresholds:        en15804Thresholds(),
		RefConstruction:   values(lca.IndicatorGWP, 10.0),
		RefEnergy:         values(lca.IndicatorGWP, 20.0),
	}
	assert.Equal(t, benchmark.MethodReferenceModel, ref.Method())

	// 900 / (10 + 20) = 30
	result, err = ref.Compute(values(lca.IndicatorGWP, 900.0))
	require.NoError(t, err)
	assertScore(t, 75, result.Scores[lca.IndicatorGWP])
}

func TestVersion_ProjectRefEnergyOverridesDefault(t *testing.T) {
	ref := &benchmark.Version{
		UseReferenceModel: true,
		Thresholds:        en15804Thresholds(),
		RefConstruction:   values(lca.IndicatorGWP, 10.0),
		RefEnergy:         values(lca.IndicatorGWP, 20.0),
	}

	// 900 / (10 + 80) = 10
	result, err := ref.ComputeWithRefEnergy(values(lca.IndicatorGWP, 900.0), values(lca.IndicatorGWP, 80.0))
	require.NoError(t, err)
	assertScore(t, 100, result.Scores[lca.IndicatorGWP])
}

func TestVersion_ReferenceModelRequiresReferenceValues(t *testing.T) {
	v := &benchmark.Version{ID: 7, UseReferenceModel: true, Thresholds: en15804Thresholds()}

	_, err := v.Compute(values(lca.IndicatorGWP, 1.0))
	assert.ErrorIs(t, err, benchmark.ErrMissingReferenceValues)
	assert.ErrorIs(t, v.Validate(), benchmark.ErrMissingReferenceValues)
}

// =============================================================================
// GROUPS
// =============================================================================

func testGroup() benchmark.Group {
	return benchmark.Group{
		Name: "environment",
		Members: []benchmark.GroupMember{
			{Ident: lca.IndicatorGWP, Weight: decimal.NewFromInt(2)},
			{Ident: lca.IndicatorODP, Weight: decimal.NewFromInt(1)},
			{Ident: lca.IndicatorAP, Weight: decimal.NewFromInt(1)},
		},
		Captions: []benchmark.Caption{
			{MinScore: decimal.NewFromInt(90), Caption: "excellent"},
			{MinScore: decimal.Zero, Caption: "poor"},
			{MinScore: decimal.NewFromInt(60), Caption: "good"},
		},
	}
}

func TestGroup_WeightedMeanOverPresentMembers(t *testing.T) {
	// GIVEN: gwp 80 (weight 2), odp 50 (weight 1), ap missing (weight 1)
	// WHEN: evaluating the group
	// THEN: (160 + 50) / 3 = 70, captioned "good"

	result := &benchmark.Result{Scores: map[lca.IndicatorIdent]decimal.NullDecimal{
		lca.IndicatorGWP: decimal.NewNullDecimal(decimal.NewFromInt(80)),
		lca.IndicatorODP: decimal.NewNullDecimal(decimal.NewFromInt(50)),
		lca.IndicatorAP:  {},
	}}

	out := testGroup().Evaluate(result)

	assertScore(t, 70, out.Score)
	assert.Equal(t, "good", out.Caption)
}

func TestGroup_CompositeMember(t *testing.T) {
	g := benchmark.Group{
		Name:     "energy",
		Members:  []benchmark.GroupMember{{Ident: lca.IndicatorPE, Weight: decimal.NewFromInt(1)}},
		Captions: []benchmark.Caption{{MinScore: decimal.NewFromInt(95), Caption: "top"}},
	}
	result := &benchmark.Result{PrimaryEnergy: decimal.NewNullDecimal(decimal.NewFromInt(100))}

	out := g.Evaluate(result)

	assertScore(t, 100, out.Score)
	assert.Equal(t, "top", out.Caption)
}

func TestGroup_NoScoresGiveNull(t *testing.T) {
	out := testGroup().Evaluate(&benchmark.Result{})

	assert.False(t, out.Score.Valid)
	assert.Empty(t, out.Caption)
}

func TestGroup_ValidateRejectsNegativeWeight(t *testing.T) {
	g := benchmark.Group{Name: "bad", Members: []benchmark.GroupMember{{Ident: lca.IndicatorGWP, Weight: decimal.NewFromInt(-1)}}}

	assert.ErrorIs(t, g.Validate(), lca.ErrInvalidArgument)
}
