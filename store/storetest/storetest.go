// Package storetest holds the behaviour every store.Store must share. The
// memory and sqlite packages run it against their own implementation.
package storetest

import (
	"context"
	"testing"

	"github.com/IWUGERMANY/elca-sub014/benchmark"
	"github.com/IWUGERMANY/elca-sub014/conversion"
	"github.com/IWUGERMANY/elca-sub014/lca"
	"github.com/IWUGERMANY/elca-sub014/lifecycle"
	"github.com/IWUGERMANY/elca-sub014/store"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Factory returns a fresh, empty store.
type Factory func(t *testing.T) store.Store

// Run runs the shared store tests.
func Run(t *testing.T, newStore Factory) {
	t.Run("VersionRoundTrip", func(t *testing.T) { testVersionRoundTrip(t, newStore(t)) })
	t.Run("VersionReplace", func(t *testing.T) { testVersionReplace(t, newStore(t)) })
	t.Run("VersionNotFound", func(t *testing.T) { testVersionNotFound(t, newStore(t)) })
	t.Run("ListVersionsOrdered", func(t *testing.T) { testListVersions(t, newStore(t)) })
	t.Run("LifeCycleRoundTrip", func(t *testing.T) { testLifeCycleRoundTrip(t, newStore(t)) })
	t.Run("LifeCycleNotFound", func(t *testing.T) { testLifeCycleNotFound(t, newStore(t)) })
	t.Run("ListLifeCycles", func(t *testing.T) { testListLifeCycles(t, newStore(t)) })
	t.Run("ProjectUsages", func(t *testing.T) { testProjectUsages(t, newStore(t)) })
}

// =============================================================================
// FIXTURES
// =============================================================================

// Version returns a reference-model version with thresholds, usages,
// reference values and one group.
func Version(id lca.BenchmarkVersionID) *benchmark.Version {
	thresholds := benchmark.NewThresholdSet()
	thresholds.Put(lca.IndicatorGWP, benchmark.NewNamedScoreThresholds("gwp",
		benchmark.Point(100, 10), benchmark.Point(50, 50), benchmark.Point(0, 100)))
	thresholds.Put(lca.IndicatorPERT, benchmark.NewNamedScoreThresholds("pert",
		benchmark.Point(0, 0.1), benchmark.Point(100, 0.5)))

	return &benchmark.Version{
		ID:                id,
		Name:              "BNB 2015",
		ProcessDbID:       7,
		UseReferenceModel: true,
		Thresholds:        thresholds,
		Usages: lifecycle.NewLifeCycleUsages(
			lifecycle.LifeCycleUsage{Module: lca.ModuleA13, AppliedInConstruction: true},
			lifecycle.LifeCycleUsage{Module: lca.ModuleB6, AppliedInEnergyDemand: true},
		),
		RefConstruction: lca.NewIndicatorSet(
			lca.NewIndicatorValue(lca.IndicatorGWP, 9.4),
			lca.NullIndicatorValue(lca.IndicatorODP),
		),
		RefEnergy: lca.NewIndicatorSet(lca.NewIndicatorValue(lca.IndicatorGWP, 14.5)),
		Groups: []benchmark.Group{{
			Name: "Ecology",
			Members: []benchmark.GroupMember{
				{Ident: lca.IndicatorGWP, Weight: decimal.NewFromInt(2)},
				{Ident: lca.IndicatorPE, Weight: decimal.NewFromInt(1)},
			},
			Captions: []benchmark.Caption{{MinScore: decimal.NewFromInt(80), Caption: "gold"}},
		}},
	}
}

// LifeCycle returns a life cycle whose processes use two reference units and
// carries one linear and one required conversion.
func LifeCycle(id lca.ProcessLifeCycleID) *lifecycle.ProcessLifeCycle {
	a13 := lifecycle.NewProcess(1, "Concrete production", lca.ModuleA13, lca.NewQuantity(1, lca.UnitCubicMetre),
		lca.NewIndicatorValue(lca.IndicatorGWP, 250.5),
		lca.NullIndicatorValue(lca.IndicatorPERT),
	)
	a13.UUID = uuid.MustParse("0c1f9b6a-3a34-4a4e-8f1c-2f0c5c0a1b2d")

	c3 := lifecycle.NewProcess(2, "Concrete recycling", lca.ModuleC3, lca.NewQuantity(1, lca.UnitKilogram),
		lca.NewIndicatorValue(lca.IndicatorGWP, 0.01))
	c3.ModuleRatio = decimal.RequireFromString("0.5")

	return lifecycle.New(id, []lifecycle.Process{a13, c3}, []conversion.Conversion{
		conversion.Linear(lca.UnitCubicMetre, lca.UnitKilogram, 2400),
		conversion.Required(lca.UnitCubicMetre, lca.UnitSquareMetre),
	})
}

// =============================================================================
// VERSIONS
// =============================================================================

func testVersionRoundTrip(t *testing.T, s store.Store) {
	ctx := context.Background()
	want := Version(1)

	// GIVEN a saved version
	require.NoError(t, s.SaveVersion(ctx, want))

	// WHEN it is loaded
	got, err := s.GetVersion(ctx, 1)
	require.NoError(t, err)

	// THEN every part survives
	assert.Equal(t, want.Name, got.Name)
	assert.Equal(t, want.ProcessDbID, got.ProcessDbID)
	assert.True(t, got.UseReferenceModel)
	assert.Equal(t, benchmark.MethodReferenceModel, got.Method())
	assert.True(t, got.Thresholds.IsEN15804Compliant())

	assert.Equal(t, want.Thresholds.Idents(), got.Thresholds.Idents())
	gwp := got.Thresholds.Get(lca.IndicatorGWP).Points()
	require.Len(t, gwp, 3)
	assert.Equal(t, "10", gwp[0].Value.String())
	assert.Equal(t, "100", gwp[0].Score.String())

	assert.True(t, got.Usages.ModuleIsAppliedInConstruction(lca.ModuleA13))
	assert.True(t, got.Usages.ModuleIsAppliedInEnergyDemand(lca.ModuleB6))
	assert.False(t, got.Usages.ModuleIsAppliedInConstruction(lca.ModuleB6))

	refGWP, ok := got.RefConstruction.Get(lca.IndicatorGWP)
	require.True(t, ok)
	assert.Equal(t, "9.4", refGWP.Decimal().String())
	refODP, ok := got.RefConstruction.Get(lca.IndicatorODP)
	require.True(t, ok)
	assert.True(t, refODP.IsNull())
	assert.Equal(t, 1, got.RefEnergy.Len())

	require.Len(t, got.Groups, 1)
	assert.Equal(t, "Ecology", got.Groups[0].Name)
	require.Len(t, got.Groups[0].Members, 2)
	assert.Equal(t, lca.IndicatorPE, got.Groups[0].Members[1].Ident)
	assert.Equal(t, "2", got.Groups[0].Members[0].Weight.String())
	assert.Equal(t, "gold", got.Groups[0].Captions[0].Caption)
}

func testVersionReplace(t *testing.T, s store.Store) {
	ctx := context.Background()
	require.NoError(t, s.SaveVersion(ctx, Version(1)))

	// GIVEN a second save with fewer thresholds
	replaced := Version(1)
	replaced.Name = "BNB 2019"
	replaced.UseReferenceModel = false
	replaced.Thresholds = benchmark.NewThresholdSet()
	replaced.Thresholds.Put(lca.IndicatorGWP, benchmark.NewNamedScoreThresholds("gwp", benchmark.Point(100, 20)))
	require.NoError(t, s.SaveVersion(ctx, replaced))

	// THEN the old children are gone
	got, err := s.GetVersion(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "BNB 2019", got.Name)
	assert.False(t, got.UseReferenceModel)
	assert.Equal(t, []lca.IndicatorIdent{lca.IndicatorGWP}, got.Thresholds.Idents())
	assert.Equal(t, 1, got.Thresholds.Get(lca.IndicatorGWP).Len())
}

func testVersionNotFound(t *testing.T, s store.Store) {
	_, err := s.GetVersion(context.Background(), 99)
	assert.ErrorIs(t, err, lca.ErrNotFound)
}

func testListVersions(t *testing.T, s store.Store) {
	ctx := context.Background()
	require.NoError(t, s.SaveVersion(ctx, Version(3)))
	require.NoError(t, s.SaveVersion(ctx, Version(1)))

	versions, err := s.ListVersions(ctx)
	require.NoError(t, err)
	require.Len(t, versions, 2)
	assert.Equal(t, lca.BenchmarkVersionID(1), versions[0].ID)
	assert.Equal(t, lca.BenchmarkVersionID(3), versions[1].ID)
}

// =============================================================================
// LIFE CYCLES
// =============================================================================

func testLifeCycleRoundTrip(t *testing.T, s store.Store) {
	ctx := context.Background()
	id := lca.ProcessLifeCycleID{ProcessConfigID: 42, ProcessDbID: 7}

	// GIVEN a saved life cycle
	require.NoError(t, s.SaveLifeCycle(ctx, LifeCycle(id)))

	// WHEN it is loaded
	got, err := s.GetLifeCycle(ctx, id)
	require.NoError(t, err)

	// THEN processes keep their order and values
	assert.Equal(t, id, got.ID())
	processes := got.Processes()
	require.Len(t, processes, 2)
	assert.Equal(t, lca.ModuleA13, processes[0].Module)
	assert.Equal(t, lca.UnitCubicMetre, processes[0].Unit())
	assert.Equal(t, "0c1f9b6a-3a34-4a4e-8f1c-2f0c5c0a1b2d", processes[0].UUID.String())
	assert.Equal(t, "0.5", processes[1].ModuleRatio.String())

	gwp, ok := processes[0].Indicators.Get(lca.IndicatorGWP)
	require.True(t, ok)
	assert.Equal(t, "250.5", gwp.Decimal().String())
	pert, ok := processes[0].Indicators.Get(lca.IndicatorPERT)
	require.True(t, ok)
	assert.True(t, pert.IsNull())

	// AND conversions keep their kind
	assert.Equal(t, 2, got.Conversions().Len())
	c, ok := got.Conversions().Find(lca.UnitCubicMetre, lca.UnitKilogram)
	require.True(t, ok)
	factor, ok := c.Factor()
	require.True(t, ok)
	assert.Equal(t, "2400", factor.String())
	required, ok := got.Conversions().Find(lca.UnitCubicMetre, lca.UnitSquareMetre)
	require.True(t, ok)
	assert.Equal(t, conversion.KindRequired, required.Kind())
	assert.Equal(t, []lca.Unit{lca.UnitCubicMetre, lca.UnitKilogram}, got.RequiredUnits())
}

func testLifeCycleNotFound(t *testing.T, s store.Store) {
	_, err := s.GetLifeCycle(context.Background(), lca.ProcessLifeCycleID{ProcessConfigID: 1, ProcessDbID: 1})
	assert.True(t, lca.IsNotFound(err))
}

func testListLifeCycles(t *testing.T, s store.Store) {
	ctx := context.Background()
	second := lca.ProcessLifeCycleID{ProcessConfigID: 42, ProcessDbID: 8}
	first := lca.ProcessLifeCycleID{ProcessConfigID: 42, ProcessDbID: 7}
	require.NoError(t, s.SaveLifeCycle(ctx, LifeCycle(second)))
	require.NoError(t, s.SaveLifeCycle(ctx, LifeCycle(first)))
	// saving twice replaces
	require.NoError(t, s.SaveLifeCycle(ctx, LifeCycle(first)))

	ids, err := s.ListLifeCycles(ctx)
	require.NoError(t, err)
	assert.Equal(t, []lca.ProcessLifeCycleID{first, second}, ids)

	lc, err := s.GetLifeCycle(ctx, first)
	require.NoError(t, err)
	assert.Len(t, lc.Processes(), 2)
}

// =============================================================================
// PROJECTS
// =============================================================================

func testProjectUsages(t *testing.T, s store.Store) {
	ctx := context.Background()

	_, err := s.GetProjectUsages(ctx, 5)
	assert.ErrorIs(t, err, lca.ErrNotFound)

	// GIVEN a project that counts B6 in construction
	usages := lifecycle.NewLifeCycleUsages(
		lifecycle.LifeCycleUsage{Module: lca.ModuleB6, AppliedInConstruction: true},
	)
	require.NoError(t, s.SaveProjectUsages(ctx, 5, usages))

	// THEN the override is returned
	got, err := s.GetProjectUsages(ctx, 5)
	require.NoError(t, err)
	assert.True(t, got.ModuleIsAppliedInConstruction(lca.ModuleB6))
	assert.True(t, got.IsConfigured(lca.ModuleB6))
	assert.False(t, got.IsConfigured(lca.ModuleA13))
}
