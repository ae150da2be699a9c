package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/IWUGERMANY/elca-sub014/engine"
	"github.com/IWUGERMANY/elca-sub014/factory"
	"github.com/IWUGERMANY/elca-sub014/lca"
	"github.com/IWUGERMANY/elca-sub014/lifecycle"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var scoreFlags struct {
	version    int64
	totals     []string
	modules    string
	floorSpace float64
	lifeTime   float64
	project    int64
	refEnergy  string
}

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score a building against a benchmark version",
	Long: `Score computes benchmark scores for indicator totals.

Totals are given either as a map of indicator to value (--totals) or as
per-module results (--modules), which are summed over the modules the
benchmark version (or the project, with --project) applies and divided by
net floor space and life time when given.

Passing --totals more than once scores every file as a variant, in
parallel, and prints them side by side.`,
	Args: cobra.NoArgs,
	RunE: runScore,
}

func init() {
	f := scoreCmd.Flags()
	f.Int64Var(&scoreFlags.version, "version", 0, "benchmark version ID (default benchmark.version)")
	f.StringArrayVar(&scoreFlags.totals, "totals", nil, "indicator totals file (repeatable)")
	f.StringVar(&scoreFlags.modules, "modules", "", "per-module results file")
	f.Float64Var(&scoreFlags.floorSpace, "floor-space", 0, "net floor space in m2 for --modules")
	f.Float64Var(&scoreFlags.lifeTime, "lifetime", 0, "reference life time in years for --modules")
	f.Int64Var(&scoreFlags.project, "project", 0, "project whose life-cycle usages apply")
	f.StringVar(&scoreFlags.refEnergy, "ref-energy", "", "reference energy values file for the reference model")
}

func runScore(cmd *cobra.Command, _ []string) error {
	versionID := lca.BenchmarkVersionID(scoreFlags.version)
	if versionID == 0 {
		versionID = lca.BenchmarkVersionID(cfg.Benchmark.Version)
	}
	if versionID == 0 {
		return errors.New("no benchmark version: pass --version or set benchmark.version")
	}
	if len(scoreFlags.totals) == 0 && scoreFlags.modules == "" {
		return errors.New("pass --totals or --modules")
	}
	if len(scoreFlags.totals) > 0 && scoreFlags.modules != "" {
		return errors.New("--totals and --modules are mutually exclusive")
	}

	f := factory.New()
	base := engine.ScoreRequest{
		VersionID: versionID,
		ProjectID: lca.ProjectID(scoreFlags.project),
	}
	if scoreFlags.refEnergy != "" {
		refEnergy, err := readIndicatorValues(f, scoreFlags.refEnergy)
		if err != nil {
			return err
		}
		base.RefEnergy = refEnergy
	}

	e, closeStore, err := openEngine()
	if err != nil {
		return err
	}
	defer closeStore()
	p := printer(cmd)

	if scoreFlags.modules != "" {
		data, err := os.ReadFile(scoreFlags.modules)
		if err != nil {
			return err
		}
		req := base
		if req.PerModule, err = f.ParseModuleValues(data, factory.FormatFromPath(scoreFlags.modules)); err != nil {
			return fmt.Errorf("%s: %w", scoreFlags.modules, err)
		}
		req.TotalsOptions = lifecycle.TotalsOptions{
			NetFloorSpace: decimal.NewFromFloat(scoreFlags.floorSpace),
			LifeTime:      decimal.NewFromFloat(scoreFlags.lifeTime),
		}
		report, err := e.Score(cmd.Context(), req)
		if err != nil {
			return err
		}
		return p.Report(report)
	}

	if len(scoreFlags.totals) == 1 {
		req := base
		if req.Totals, err = readIndicatorValues(f, scoreFlags.totals[0]); err != nil {
			return err
		}
		report, err := e.Score(cmd.Context(), req)
		if err != nil {
			return err
		}
		return p.Report(report)
	}

	variants := make([]engine.Variant, 0, len(scoreFlags.totals))
	for _, path := range scoreFlags.totals {
		req := base
		if req.Totals, err = readIndicatorValues(f, path); err != nil {
			return err
		}
		variants = append(variants, engine.Variant{Name: filepath.Base(path), Request: req})
	}
	results, err := e.ScoreBatch(cmd.Context(), versionID, variants)
	if err != nil {
		return err
	}
	return p.Batch(results)
}

func readIndicatorValues(f *factory.Factory, path string) (*lca.IndicatorSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	set, err := f.ParseIndicatorValues(data, factory.FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return set, nil
}
