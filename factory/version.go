package factory

import (
	"fmt"

	"github.com/IWUGERMANY/elca-sub014/benchmark"
	"github.com/IWUGERMANY/elca-sub014/lca"
	"github.com/shopspring/decimal"
)

// =============================================================================
// BENCHMARK VERSION SCHEMA
// =============================================================================
//
//	kind: benchmark_version
//	id: 3
//	name: BNB-BN 2015
//	use_reference_model: false
//	thresholds:
//	  - indicator: gwp
//	    points:
//	      - {score: 100, value: 10}
//	      - {score: 0, value: 100}
//	life_cycle_usages:
//	  - {module: A1-3, construction: true}
//	  - {module: B6, energy_demand: true}
//	groups:
//	  - name: Environment
//	    members: [{indicator: gwp, weight: 2}, {indicator: odp}]
//	    captions: [{min_score: 0, caption: poor}, {min_score: 60, caption: good}]

// VersionJSON is the JSON/YAML representation of a benchmark version.
type VersionJSON struct {
	Kind              string              `json:"kind" yaml:"kind"`
	ID                int64               `json:"id" yaml:"id"`
	Name              string              `json:"name" yaml:"name"`
	ProcessDbID       int64               `json:"process_db_id,omitempty" yaml:"process_db_id,omitempty"`
	UseReferenceModel bool                `json:"use_reference_model,omitempty" yaml:"use_reference_model,omitempty"`
	Thresholds        []ThresholdsJSON    `json:"thresholds" yaml:"thresholds"`
	Usages            []UsageJSON         `json:"life_cycle_usages,omitempty" yaml:"life_cycle_usages,omitempty"`
	RefConstruction   map[string]*float64 `json:"ref_construction,omitempty" yaml:"ref_construction,omitempty"`
	RefEnergy         map[string]*float64 `json:"ref_energy,omitempty" yaml:"ref_energy,omitempty"`
	Groups            []GroupJSON         `json:"groups,omitempty" yaml:"groups,omitempty"`
}

// ThresholdsJSON is the scoring curve of one indicator.
type ThresholdsJSON struct {
	Indicator string      `json:"indicator" yaml:"indicator"`
	Points    []PointJSON `json:"points" yaml:"points"`
}

type PointJSON struct {
	Score float64 `json:"score" yaml:"score"`
	Value float64 `json:"value" yaml:"value"`
}

// UsageJSON holds the usage flags of one module.
type UsageJSON struct {
	Module       string `json:"module" yaml:"module"`
	Construction bool   `json:"construction,omitempty" yaml:"construction,omitempty"`
	Maintenance  bool   `json:"maintenance,omitempty" yaml:"maintenance,omitempty"`
	EnergyDemand bool   `json:"energy_demand,omitempty" yaml:"energy_demand,omitempty"`
}

type GroupJSON struct {
	Name     string            `json:"name" yaml:"name"`
	Members  []GroupMemberJSON `json:"members" yaml:"members"`
	Captions []CaptionJSON     `json:"captions,omitempty" yaml:"captions,omitempty"`
}

type GroupMemberJSON struct {
	Indicator string   `json:"indicator" yaml:"indicator"`
	Weight    *float64 `json:"weight,omitempty" yaml:"weight,omitempty"` // default 1
}

type CaptionJSON struct {
	MinScore float64 `json:"min_score" yaml:"min_score"`
	Caption  string  `json:"caption" yaml:"caption"`
}

// =============================================================================
// CONVERSION
// =============================================================================

// ParseVersion parses and validates a benchmark version document.
func (f *Factory) ParseVersion(data []byte, format Format) (*benchmark.Version, error) {
	var vj VersionJSON
	if err := decode(data, format, &vj); err != nil {
		return nil, err
	}
	return f.VersionFromJSON(vj)
}

// VersionFromJSON converts VersionJSON to a benchmark.Version.
func (f *Factory) VersionFromJSON(vj VersionJSON) (*benchmark.Version, error) {
	v := &benchmark.Version{
		ID:                lca.BenchmarkVersionID(vj.ID),
		Name:              vj.Name,
		ProcessDbID:       lca.ProcessDbID(vj.ProcessDbID),
		UseReferenceModel: vj.UseReferenceModel,
		Thresholds:        benchmark.NewThresholdSet(),
	}

	for _, tj := range vj.Thresholds {
		ident, err := lca.ParseIndicatorIdent(tj.Indicator)
		if err != nil {
			return nil, fmt.Errorf("thresholds: %w", err)
		}
		points := make([]benchmark.Threshold, 0, len(tj.Points))
		for _, p := range tj.Points {
			if err := finite("thresholds "+tj.Indicator, p.Score, p.Value); err != nil {
				return nil, err
			}
			points = append(points, benchmark.Point(p.Score, p.Value))
		}
		v.Thresholds.Put(ident, benchmark.NewNamedScoreThresholds(ident.String(), points...))
	}

	var err error
	if v.Usages, err = parseUsages(vj.Usages); err != nil {
		return nil, err
	}
	if v.RefConstruction, err = parseIndicatorMap(vj.RefConstruction); err != nil {
		return nil, fmt.Errorf("ref_construction: %w", err)
	}
	if v.RefEnergy, err = parseIndicatorMap(vj.RefEnergy); err != nil {
		return nil, fmt.Errorf("ref_energy: %w", err)
	}

	for _, gj := range vj.Groups {
		g, err := parseGroup(gj)
		if err != nil {
			return nil, err
		}
		v.Groups = append(v.Groups, g)
	}

	if err := v.Validate(); err != nil {
		return nil, err
	}
	return v, nil
}

// VersionToJSON converts a benchmark.Version to VersionJSON.
func (f *Factory) VersionToJSON(v *benchmark.Version) VersionJSON {
	vj := VersionJSON{
		Kind:              KindBenchmarkVersion,
		ID:                int64(v.ID),
		Name:              v.Name,
		ProcessDbID:       int64(v.ProcessDbID),
		UseReferenceModel: v.UseReferenceModel,
		RefConstruction:   indicatorMap(v.RefConstruction),
		RefEnergy:         indicatorMap(v.RefEnergy),
	}

	for _, ident := range v.Thresholds.Idents() {
		tj := ThresholdsJSON{Indicator: ident.String()}
		for _, p := range v.Thresholds.Get(ident).Points() {
			tj.Points = append(tj.Points, PointJSON{Score: p.Score.InexactFloat64(), Value: p.Value.InexactFloat64()})
		}
		vj.Thresholds = append(vj.Thresholds, tj)
	}

	vj.Usages = usagesToJSON(v.Usages)

	for _, g := range v.Groups {
		gj := GroupJSON{Name: g.Name}
		for _, m := range g.Members {
			w := m.Weight.InexactFloat64()
			gj.Members = append(gj.Members, GroupMemberJSON{Indicator: m.Ident.String(), Weight: &w})
		}
		for _, c := range g.Captions {
			gj.Captions = append(gj.Captions, CaptionJSON{MinScore: c.MinScore.InexactFloat64(), Caption: c.Caption})
		}
		vj.Groups = append(vj.Groups, gj)
	}

	return vj
}

func parseGroup(gj GroupJSON) (benchmark.Group, error) {
	g := benchmark.Group{Name: gj.Name}
	for _, mj := range gj.Members {
		ident, err := lca.ParseIndicatorIdent(mj.Indicator)
		if err != nil {
			return benchmark.Group{}, fmt.Errorf("group %q: %w", gj.Name, err)
		}
		weight := decimal.NewFromInt(1)
		if mj.Weight != nil {
			if err := finite("group "+gj.Name+" weight", *mj.Weight); err != nil {
				return benchmark.Group{}, err
			}
			weight = decimal.NewFromFloat(*mj.Weight)
		}
		g.Members = append(g.Members, benchmark.GroupMember{Ident: ident, Weight: weight})
	}
	for _, cj := range gj.Captions {
		if err := finite("group "+gj.Name+" min_score", cj.MinScore); err != nil {
			return benchmark.Group{}, err
		}
		g.Captions = append(g.Captions, benchmark.Caption{
			MinScore: decimal.NewFromFloat(cj.MinScore),
			Caption:  cj.Caption,
		})
	}
	return g, nil
}
