package engine

import (
	"context"

	"github.com/IWUGERMANY/elca-sub014/lca"
	"github.com/sirupsen/logrus"
	"github.com/sourcegraph/conc/pool"
)

// =============================================================================
// BATCH SCORING - Many variants against one benchmark version
// =============================================================================

// Variant is one design alternative of a building. Its request's VersionID
// is ignored; ScoreBatch scores every variant against the same version.
type Variant struct {
	Name    string
	Request ScoreRequest
}

// VariantResult holds either a report or the error of one variant.
type VariantResult struct {
	Name   string
	Report *Report
	Err    error
}

// ScoreBatch scores variants concurrently, at most WithWorkers at a time.
// Results keep the order of variants. A failing variant does not stop the
// others; only a missing version or a cancelled context fails the batch.
func (e *Engine) ScoreBatch(ctx context.Context, versionID lca.BenchmarkVersionID, variants []Variant) ([]VariantResult, error) {
	version, err := e.store.GetVersion(ctx, versionID)
	if err != nil {
		return nil, err
	}

	results := make([]VariantResult, len(variants))
	p := pool.New().WithMaxGoroutines(e.workers).WithContext(ctx)
	for i, v := range variants {
		i, v := i, v
		p.Go(func(ctx context.Context) error {
			results[i].Name = v.Name
			req := v.Request
			req.VersionID = versionID
			results[i].Report, results[i].Err = e.scoreVersion(ctx, version, req)
			return nil
		})
	}
	// tasks never fail, the error is the context's
	_ = p.Wait()

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			e.log.WithFields(logrus.Fields{"variant": r.Name, "version": versionID}).Warnf("variant not scored: %v", r.Err)
		}
	}
	e.log.WithFields(logrus.Fields{
		"version":  versionID,
		"variants": len(variants),
		"failed":   failed,
	}).Info("batch scored")
	return results, ctx.Err()
}
