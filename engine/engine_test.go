package engine_test

import (
	"context"
	"testing"

	"github.com/IWUGERMANY/elca-sub014/benchmark"
	"github.com/IWUGERMANY/elca-sub014/conversion"
	"github.com/IWUGERMANY/elca-sub014/engine"
	"github.com/IWUGERMANY/elca-sub014/factory"
	"github.com/IWUGERMANY/elca-sub014/lca"
	"github.com/IWUGERMANY/elca-sub014/lifecycle"
	"github.com/IWUGERMANY/elca-sub014/store/memory"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

var lifeCycleID = lca.ProcessLifeCycleID{ProcessConfigID: 42, ProcessDbID: 7}

// gwp scores 100 at 10, 50 at 50 and 0 at 100.
func gwpThresholds() *benchmark.ThresholdSet {
	set := benchmark.NewThresholdSet()
	set.Put(lca.IndicatorGWP, benchmark.NewNamedScoreThresholds("gwp",
		benchmark.Point(100, 10), benchmark.Point(50, 50), benchmark.Point(0, 100)))
	return set
}

func fixedVersion(id lca.BenchmarkVersionID) *benchmark.Version {
	return &benchmark.Version{
		ID:         id,
		Name:       "fixed",
		Thresholds: gwpThresholds(),
		Usages: lifecycle.NewLifeCycleUsages(
			lifecycle.LifeCycleUsage{Module: lca.ModuleA13, AppliedInConstruction: true},
		),
		Groups: []benchmark.Group{{
			Name:     "Ecology",
			Members:  []benchmark.GroupMember{{Ident: lca.IndicatorGWP, Weight: decimal.NewFromInt(1)}},
			Captions: []benchmark.Caption{{MinScore: decimal.NewFromInt(50), Caption: "ok"}},
		}},
	}
}

func referenceVersion(id lca.BenchmarkVersionID) *benchmark.Version {
	v := fixedVersion(id)
	v.Name = "reference"
	v.UseReferenceModel = true
	v.RefConstruction = lca.NewIndicatorSet(gwp(10))
	v.RefEnergy = lca.NewIndicatorSet(gwp(10))
	return v
}

func gwp(v float64) lca.IndicatorValue {
	return lca.NewIndicatorValue(lca.IndicatorGWP, v)
}

func scoreOf(t *testing.T, r *engine.Report, ident lca.IndicatorIdent) float64 {
	t.Helper()
	s, ok := r.Result.Score(ident)
	require.True(t, ok, "no score for %s", ident)
	f, _ := s.Float64()
	return f
}

func newEngine(t *testing.T, opts ...engine.Option) (*engine.Engine, *memory.Memory, *test.Hook) {
	t.Helper()
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	s := memory.New()
	ctx := context.Background()
	require.NoError(t, s.SaveVersion(ctx, fixedVersion(1)))
	require.NoError(t, s.SaveVersion(ctx, referenceVersion(2)))
	return engine.New(s, append([]engine.Option{engine.WithLogger(logger)}, opts...)...), s, hook
}

// =============================================================================
// SCORE
// =============================================================================

func TestScore_FixedValuesFromTotals(t *testing.T) {
	e, _, _ := newEngine(t)

	report, err := e.Score(context.Background(), engine.ScoreRequest{
		VersionID: 1,
		Totals:    lca.NewIndicatorSet(gwp(30)),
	})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, report.ID)
	assert.Equal(t, benchmark.MethodFixedValues, report.Method)
	assert.InDelta(t, 75, scoreOf(t, report, lca.IndicatorGWP), 1e-9)

	require.Len(t, report.Groups, 1)
	assert.Equal(t, "ok", report.Groups[0].Caption)
}

func TestScore_AggregatesPerModuleWithVersionUsages(t *testing.T) {
	e, _, _ := newEngine(t)

	// GIVEN A1-3 counts in construction but B6 is not applied
	report, err := e.Score(context.Background(), engine.ScoreRequest{
		VersionID: 1,
		PerModule: map[lca.Module]*lca.IndicatorSet{
			lca.ModuleA13: lca.NewIndicatorSet(gwp(20)),
			lca.ModuleB6:  lca.NewIndicatorSet(gwp(100)),
		},
	})
	require.NoError(t, err)

	// THEN only A1-3 feeds the totals
	total, ok := report.Totals.Get(lca.IndicatorGWP)
	require.True(t, ok)
	assert.Equal(t, "20", total.Decimal().String())
	assert.InDelta(t, 87.5, scoreOf(t, report, lca.IndicatorGWP), 1e-9)
}

func TestScore_ProjectUsagesOverrideVersion(t *testing.T) {
	e, s, _ := newEngine(t)
	ctx := context.Background()

	// GIVEN a project that only counts B6
	require.NoError(t, s.SaveProjectUsages(ctx, 9, lifecycle.NewLifeCycleUsages(
		lifecycle.LifeCycleUsage{Module: lca.ModuleB6, AppliedInEnergyDemand: true},
	)))

	report, err := e.Score(ctx, engine.ScoreRequest{
		VersionID: 1,
		ProjectID: 9,
		PerModule: map[lca.Module]*lca.IndicatorSet{
			lca.ModuleA13: lca.NewIndicatorSet(gwp(20)),
			lca.ModuleB6:  lca.NewIndicatorSet(gwp(100)),
		},
	})
	require.NoError(t, err)

	assert.InDelta(t, 0, scoreOf(t, report, lca.IndicatorGWP), 1e-9)
	assert.Equal(t, lca.ProjectID(9), report.ProjectID)
}

func TestScore_ProjectWithoutUsagesFallsBackToVersion(t *testing.T) {
	e, _, _ := newEngine(t)

	report, err := e.Score(context.Background(), engine.ScoreRequest{
		VersionID: 1,
		ProjectID: 77,
		PerModule: map[lca.Module]*lca.IndicatorSet{lca.ModuleA13: lca.NewIndicatorSet(gwp(20))},
	})
	require.NoError(t, err)
	assert.InDelta(t, 87.5, scoreOf(t, report, lca.IndicatorGWP), 1e-9)
}

func TestScore_ReferenceModel(t *testing.T) {
	e, _, _ := newEngine(t)
	ctx := context.Background()

	// 600 / (10 + 10) = 30
	report, err := e.Score(ctx, engine.ScoreRequest{VersionID: 2, Totals: lca.NewIndicatorSet(gwp(600))})
	require.NoError(t, err)
	assert.Equal(t, benchmark.MethodReferenceModel, report.Method)
	assert.InDelta(t, 75, scoreOf(t, report, lca.IndicatorGWP), 1e-9)

	// 600 / (10 + 20) = 20
	report, err = e.Score(ctx, engine.ScoreRequest{
		VersionID: 2,
		Totals:    lca.NewIndicatorSet(gwp(600)),
		RefEnergy: lca.NewIndicatorSet(gwp(20)),
	})
	require.NoError(t, err)
	assert.InDelta(t, 87.5, scoreOf(t, report, lca.IndicatorGWP), 1e-9)
}

func TestScore_SkippedRenewableIsLogged(t *testing.T) {
	e, _, hook := newEngine(t)

	// GIVEN pert without pet
	report, err := e.Score(context.Background(), engine.ScoreRequest{
		VersionID: 1,
		Totals:    lca.NewIndicatorSet(lca.NewIndicatorValue(lca.IndicatorPERT, 5)),
	})
	require.NoError(t, err)

	assert.ErrorIs(t, report.Result.Skipped[lca.IndicatorPERT], benchmark.ErrMissingTotalPrimaryEnergy)
	var warned bool
	for _, entry := range hook.AllEntries() {
		if entry.Level == logrus.WarnLevel && entry.Data["indicator"] == lca.IndicatorPERT {
			warned = true
		}
	}
	assert.True(t, warned)
}

func TestScore_Errors(t *testing.T) {
	e, _, _ := newEngine(t)
	ctx := context.Background()

	_, err := e.Score(ctx, engine.ScoreRequest{VersionID: 99, Totals: lca.NewIndicatorSet(gwp(1))})
	assert.ErrorIs(t, err, lca.ErrNotFound)

	_, err = e.Score(ctx, engine.ScoreRequest{VersionID: 1})
	assert.ErrorIs(t, err, lca.ErrInvalidArgument)

	_, err = e.Score(ctx, engine.ScoreRequest{
		VersionID: 1,
		Totals:    lca.NewIndicatorSet(gwp(1)),
		PerModule: map[lca.Module]*lca.IndicatorSet{},
	})
	assert.ErrorIs(t, err, lca.ErrInvalidArgument)
}

func TestReport_ToJSON(t *testing.T) {
	e, _, _ := newEngine(t)

	report, err := e.Score(context.Background(), engine.ScoreRequest{
		VersionID: 1,
		Totals:    lca.NewIndicatorSet(gwp(30), lca.NullIndicatorValue(lca.IndicatorODP)),
	})
	require.NoError(t, err)

	out := report.ToJSON()
	assert.Equal(t, report.ID.String(), out.ID)
	assert.Equal(t, "fixed", out.Method)
	require.NotNil(t, out.Scores["gwp"])
	assert.InDelta(t, 75, *out.Scores["gwp"], 1e-9)
	assert.Nil(t, out.Scores["odp"])
	assert.Nil(t, out.Totals["odp"])
	require.Len(t, out.Groups, 1)
	assert.Equal(t, "ok", out.Groups[0].Caption)
}

// =============================================================================
// BATCH
// =============================================================================

func TestScoreBatch_KeepsOrderAndCollectsErrors(t *testing.T) {
	e, _, _ := newEngine(t, engine.WithWorkers(2))

	variants := []engine.Variant{
		{Name: "timber", Request: engine.ScoreRequest{Totals: lca.NewIndicatorSet(gwp(10))}},
		{Name: "broken", Request: engine.ScoreRequest{}},
		{Name: "concrete", Request: engine.ScoreRequest{Totals: lca.NewIndicatorSet(gwp(100))}},
	}

	results, err := e.ScoreBatch(context.Background(), 1, variants)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, "timber", results[0].Name)
	require.NoError(t, results[0].Err)
	assert.InDelta(t, 100, scoreOf(t, results[0].Report, lca.IndicatorGWP), 1e-9)

	assert.Equal(t, "broken", results[1].Name)
	assert.ErrorIs(t, results[1].Err, lca.ErrInvalidArgument)

	require.NoError(t, results[2].Err)
	assert.Equal(t, lca.BenchmarkVersionID(1), results[2].Report.VersionID)
	assert.InDelta(t, 0, scoreOf(t, results[2].Report, lca.IndicatorGWP), 1e-9)
}

func TestScoreBatch_CancelledContext(t *testing.T) {
	e, _, _ := newEngine(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := e.ScoreBatch(ctx, 1, []engine.Variant{
		{Name: "a", Request: engine.ScoreRequest{Totals: lca.NewIndicatorSet(gwp(10))}},
	})
	assert.ErrorIs(t, err, context.Canceled)
	require.Len(t, results, 1)
	assert.Error(t, results[0].Err)
}

func TestScoreBatch_UnknownVersion(t *testing.T) {
	e, _, _ := newEngine(t)
	_, err := e.ScoreBatch(context.Background(), 99, nil)
	assert.ErrorIs(t, err, lca.ErrNotFound)
}

// =============================================================================
// LIFE CYCLES
// =============================================================================

func concreteLifeCycle() *lifecycle.ProcessLifeCycle {
	a13 := lifecycle.NewProcess(1, "Concrete", lca.ModuleA13, lca.NewQuantity(1, lca.UnitCubicMetre), gwp(250))
	c3 := lifecycle.NewProcess(2, "Crushing", lca.ModuleC3, lca.NewQuantity(1, lca.UnitKilogram), gwp(0.01))
	c3.ModuleRatio = decimal.RequireFromString("0.5")
	c4 := lifecycle.NewProcess(3, "Landfill", lca.ModuleC4, lca.NewQuantity(1, lca.UnitSquareMetre), gwp(1))
	return lifecycle.New(lifeCycleID, []lifecycle.Process{a13, c3, c4}, []conversion.Conversion{
		conversion.Linear(lca.UnitCubicMetre, lca.UnitKilogram, 2400),
		conversion.Linear(lca.UnitKilogram, lca.UnitMetricTon, 0.001),
	})
}

func TestConvert(t *testing.T) {
	e, s, _ := newEngine(t)
	ctx := context.Background()
	require.NoError(t, s.SaveLifeCycle(ctx, concreteLifeCycle()))

	q, err := e.Convert(ctx, lifeCycleID, lca.NewQuantity(2, lca.UnitCubicMetre), lca.UnitKilogram)
	require.NoError(t, err)
	assert.Equal(t, lca.UnitKilogram, q.Unit)
	assert.InDelta(t, 4800, q.Float64(), 1e-9)

	// inverse direction
	q, err = e.Convert(ctx, lifeCycleID, lca.NewQuantity(4800, lca.UnitKilogram), lca.UnitCubicMetre)
	require.NoError(t, err)
	assert.InDelta(t, 2, q.Float64(), 1e-9)

	// m3 -> t needs two steps
	_, err = e.Convert(ctx, lifeCycleID, lca.NewQuantity(1, lca.UnitCubicMetre), lca.UnitMetricTon)
	assert.True(t, conversion.IsConversionError(err))
}

func TestConvert_Transitive(t *testing.T) {
	e, s, _ := newEngine(t, engine.WithTransitiveConversions(true))
	ctx := context.Background()
	require.NoError(t, s.SaveLifeCycle(ctx, concreteLifeCycle()))

	q, err := e.Convert(ctx, lifeCycleID, lca.NewQuantity(1, lca.UnitCubicMetre), lca.UnitMetricTon)
	require.NoError(t, err)
	assert.InDelta(t, 2.4, q.Float64(), 1e-9)
}

func TestComponentIndicators_SkipsMissingConversions(t *testing.T) {
	e, s, hook := newEngine(t)
	ctx := context.Background()
	require.NoError(t, s.SaveLifeCycle(ctx, concreteLifeCycle()))

	// WHEN 2 m3 of concrete are built in
	result, err := e.ComponentIndicators(ctx, lifeCycleID, lca.NewQuantity(2, lca.UnitCubicMetre))
	require.NoError(t, err)

	// THEN A1-3 scales by 2, C3 by 4800 kg * 0.5, C4 (m2) is skipped
	a13, ok := result.Modules[lca.ModuleA13].Get(lca.IndicatorGWP)
	require.True(t, ok)
	f, _ := a13.Float64()
	assert.InDelta(t, 500, f, 1e-9)

	c3, ok := result.Modules[lca.ModuleC3].Get(lca.IndicatorGWP)
	require.True(t, ok)
	f, _ = c3.Float64()
	assert.InDelta(t, 24, f, 1e-9)

	assert.NotContains(t, result.Modules, lca.ModuleC4)
	require.Len(t, result.Warnings, 1)
	assert.True(t, conversion.IsConversionError(result.Warnings[0]))
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
}

func TestComponentIndicators_UnknownLifeCycle(t *testing.T) {
	e, _, _ := newEngine(t)
	_, err := e.ComponentIndicators(context.Background(), lifeCycleID, lca.NewQuantity(1, lca.UnitKilogram))
	assert.True(t, lca.IsNotFound(err))
}

// =============================================================================
// IMPORT
// =============================================================================

func TestImport_VersionAndLifeCycle(t *testing.T) {
	e, s, _ := newEngine(t)
	ctx := context.Background()

	doc, err := e.Import(ctx, []byte(`
kind: benchmark_version
id: 5
name: BNB 2024
thresholds:
  - indicator: gwp
    points:
      - {score: 100, value: 10}
      - {score: 0, value: 100}
`), factory.FormatYAML)
	require.NoError(t, err)
	require.NotNil(t, doc.Version)

	v, err := s.GetVersion(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, "BNB 2024", v.Name)

	doc, err = e.Import(ctx, []byte(`{
		"kind": "process_life_cycle",
		"process_config_id": 3,
		"process_db_id": 1,
		"processes": [
			{"id": 1, "name": "Brick", "module": "A1-3", "ref_value": 1, "ref_unit": "m3", "indicators": {"gwp": 120}},
			{"id": 2, "name": "Brick disposal", "module": "C4", "ref_value": 1, "ref_unit": "kg", "indicators": {"gwp": 0.02}}
		]
	}`), factory.FormatJSON)
	require.NoError(t, err)
	require.NotNil(t, doc.LifeCycle)
	assert.Len(t, doc.LifeCycle.MissingConversions(), 1)

	ids, err := s.ListLifeCycles(ctx)
	require.NoError(t, err)
	assert.Contains(t, ids, lca.ProcessLifeCycleID{ProcessConfigID: 3, ProcessDbID: 1})
}

func TestImport_UnknownKind(t *testing.T) {
	e, _, _ := newEngine(t)
	_, err := e.Import(context.Background(), []byte(`{"kind": "invoice"}`), factory.FormatJSON)
	assert.ErrorIs(t, err, lca.ErrInvalidArgument)
}
