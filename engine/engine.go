/*
engine.go - Scoring and conversion service

PURPOSE:
  Ties the pure packages to a store: loads benchmark versions and process
  life cycles, picks the benchmark method, aggregates totals and scores
  them. The CLI talks to nothing else.

FLOW (Score):
  1. Load the benchmark version
  2. Resolve usages: project override, else the version's own
  3. Totals: given directly, or aggregated from per-module results
  4. Compute with the version's method (fixed values / reference model)
  5. Evaluate groups, wrap everything in a Report

WARNINGS:
  Skipped indicators and missing conversions are logged at warn level and
  returned to the caller; they never abort a computation.

SEE ALSO:
  - batch.go: Concurrent scoring of variants
  - benchmark/version.go: Method selection
  - lifecycle/totals.go: Totals aggregation
*/
package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/IWUGERMANY/elca-sub014/benchmark"
	"github.com/IWUGERMANY/elca-sub014/conversion"
	"github.com/IWUGERMANY/elca-sub014/factory"
	"github.com/IWUGERMANY/elca-sub014/lca"
	"github.com/IWUGERMANY/elca-sub014/lifecycle"
	"github.com/IWUGERMANY/elca-sub014/store"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Engine is safe for concurrent use if its store is.
type Engine struct {
	store      store.Store
	log        logrus.FieldLogger
	factory    *factory.Factory
	workers    int
	transitive bool
	now        func() time.Time
}

type Option func(*Engine)

func WithLogger(l logrus.FieldLogger) Option {
	return func(e *Engine) { e.log = l }
}

// WithWorkers bounds ScoreBatch concurrency.
func WithWorkers(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.workers = n
		}
	}
}

// WithTransitiveConversions lets Convert and ComponentIndicators chain
// known conversions.
func WithTransitiveConversions(on bool) Option {
	return func(e *Engine) { e.transitive = on }
}

func New(s store.Store, opts ...Option) *Engine {
	e := &Engine{
		store:   s,
		log:     logrus.StandardLogger(),
		factory: factory.New(),
		workers: 4,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) Store() store.Store { return e.store }

// =============================================================================
// IMPORT
// =============================================================================

// Import parses a definition document and saves what it contains.
func (e *Engine) Import(ctx context.Context, data []byte, format factory.Format) (*factory.Document, error) {
	doc, err := e.factory.ParseDocument(data, format)
	if err != nil {
		return nil, err
	}

	switch {
	case doc.Version != nil:
		if err := e.store.SaveVersion(ctx, doc.Version); err != nil {
			return nil, err
		}
		e.log.WithFields(logrus.Fields{
			"version":    doc.Version.ID,
			"method":     doc.Version.Method(),
			"thresholds": doc.Version.Thresholds.Len(),
		}).Info("imported benchmark version")
	case doc.LifeCycle != nil:
		if err := e.store.SaveLifeCycle(ctx, doc.LifeCycle); err != nil {
			return nil, err
		}
		missing := doc.LifeCycle.MissingConversions()
		e.log.WithFields(logrus.Fields{
			"life_cycle":          doc.LifeCycle.ID().String(),
			"processes":           len(doc.LifeCycle.Processes()),
			"missing_conversions": len(missing),
		}).Info("imported process life cycle")
		for _, c := range missing {
			e.log.WithField("life_cycle", doc.LifeCycle.ID().String()).Warnf("missing conversion %s", c)
		}
	case doc.ProjectUsages != nil:
		pu := doc.ProjectUsages
		if err := e.store.SaveProjectUsages(ctx, pu.ProjectID, pu.Usages); err != nil {
			return nil, err
		}
		e.log.WithFields(logrus.Fields{
			"project": pu.ProjectID,
			"modules": len(pu.Usages.Usages()),
		}).Info("imported project life cycle usages")
	}
	return doc, nil
}

// =============================================================================
// SCORING
// =============================================================================

// ScoreRequest carries the inputs of one benchmark computation. Exactly one
// of Totals and PerModule must be set.
type ScoreRequest struct {
	VersionID lca.BenchmarkVersionID

	// Totals are ready-made benchmark inputs.
	Totals *lca.IndicatorSet

	// PerModule results are summed over the modules the usages apply,
	// then normalized with TotalsOptions.
	PerModule     map[lca.Module]*lca.IndicatorSet
	TotalsOptions lifecycle.TotalsOptions

	// ProjectID, when non-zero, selects project usages over the version's.
	ProjectID lca.ProjectID

	// RefEnergy overrides the version's reference energy values.
	RefEnergy *lca.IndicatorSet
}

// Score runs one benchmark computation.
func (e *Engine) Score(ctx context.Context, req ScoreRequest) (*Report, error) {
	version, err := e.store.GetVersion(ctx, req.VersionID)
	if err != nil {
		return nil, err
	}
	return e.scoreVersion(ctx, version, req)
}

func (e *Engine) scoreVersion(ctx context.Context, version *benchmark.Version, req ScoreRequest) (*Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if (req.Totals == nil) == (req.PerModule == nil) {
		return nil, fmt.Errorf("%w: exactly one of totals and per-module results is required", lca.ErrInvalidArgument)
	}

	log := e.log.WithFields(logrus.Fields{"version": version.ID, "method": version.Method()})

	usages, err := e.usagesFor(ctx, version, req.ProjectID)
	if err != nil {
		return nil, err
	}

	totals := req.Totals
	if req.PerModule != nil {
		totals, err = lifecycle.AggregateTotals(req.PerModule, usages, req.TotalsOptions)
		if err != nil {
			return nil, err
		}
	}

	refEnergy := version.RefEnergy
	if req.RefEnergy != nil {
		refEnergy = req.RefEnergy
	}

	result, err := version.ComputeWithRefEnergy(totals, refEnergy)
	if err != nil {
		return nil, err
	}
	for ident, reason := range result.Skipped {
		log.WithField("indicator", ident).Warnf("indicator not scored: %v", reason)
	}

	report := &Report{
		ID:          uuid.New(),
		VersionID:   version.ID,
		VersionName: version.Name,
		Method:      version.Method(),
		ProjectID:   req.ProjectID,
		Totals:      totals,
		Result:      result,
		Groups:      version.EvaluateGroups(result),
		CreatedAt:   e.now().UTC(),
	}
	log.WithFields(logrus.Fields{
		"report":  report.ID,
		"scores":  len(result.Scores),
		"skipped": len(result.Skipped),
	}).Debug("scored")
	return report, nil
}

// usagesFor returns the project's usages when it has any, else the
// version's.
func (e *Engine) usagesFor(ctx context.Context, version *benchmark.Version, project lca.ProjectID) (*lifecycle.LifeCycleUsages, error) {
	if project == 0 {
		return version.Usages, nil
	}
	usages, err := e.store.GetProjectUsages(ctx, project)
	if errors.Is(err, lca.ErrNotFound) {
		return version.Usages, nil
	}
	if err != nil {
		return nil, err
	}
	return usages, nil
}

// =============================================================================
// LIFE CYCLES AND CONVERSIONS
// =============================================================================

// LifeCycle loads a process life cycle.
func (e *Engine) LifeCycle(ctx context.Context, id lca.ProcessLifeCycleID) (*lifecycle.ProcessLifeCycle, error) {
	return e.store.GetLifeCycle(ctx, id)
}

// Converter returns a converter over the life cycle's conversions, honouring
// the engine's transitive setting.
func (e *Engine) Converter(ctx context.Context, id lca.ProcessLifeCycleID) (*conversion.Converter, error) {
	lc, err := e.store.GetLifeCycle(ctx, id)
	if err != nil {
		return nil, err
	}
	return e.converterFor(lc), nil
}

func (e *Engine) converterFor(lc *lifecycle.ProcessLifeCycle) *conversion.Converter {
	if !e.transitive {
		return lc.Converter()
	}
	return conversion.NewConverter(lc.ProcessConfigID(), lc.Conversions(), conversion.WithTransitive())
}

// Convert converts q into unit to within a life cycle.
func (e *Engine) Convert(ctx context.Context, id lca.ProcessLifeCycleID, q lca.Quantity, to lca.Unit) (lca.Quantity, error) {
	converter, err := e.Converter(ctx, id)
	if err != nil {
		return lca.Quantity{}, err
	}
	return converter.ConvertQuantity(q, to)
}

// ComponentIndicators scales a life cycle's processes to quantity q.
// Processes without a usable conversion are logged and skipped.
func (e *Engine) ComponentIndicators(ctx context.Context, id lca.ProcessLifeCycleID, q lca.Quantity) (lifecycle.ComponentResult, error) {
	lc, err := e.store.GetLifeCycle(ctx, id)
	if err != nil {
		return lifecycle.ComponentResult{}, err
	}
	result := lc.ComponentIndicators(q, e.converterFor(lc))
	for _, w := range result.Warnings {
		e.log.WithFields(logrus.Fields{
			"life_cycle": id.String(),
			"quantity":   q.String(),
		}).Warn(w.Error())
	}
	return result, nil
}
