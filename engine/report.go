package engine

import (
	"time"

	"github.com/IWUGERMANY/elca-sub014/benchmark"
	"github.com/IWUGERMANY/elca-sub014/lca"
	"github.com/google/uuid"
)

// =============================================================================
// REPORT - Outcome of one scoring run
// =============================================================================

type Report struct {
	ID          uuid.UUID
	VersionID   lca.BenchmarkVersionID
	VersionName string
	Method      benchmark.Method
	ProjectID   lca.ProjectID

	// Totals are the values that were scored, after aggregation.
	Totals *lca.IndicatorSet
	Result *benchmark.Result
	Groups []benchmark.GroupResult

	CreatedAt time.Time
}

// ReportJSON is the wire shape of a Report.
type ReportJSON struct {
	ID               string              `json:"id"`
	VersionID        int64               `json:"version_id"`
	VersionName      string              `json:"version_name"`
	Method           string              `json:"method"`
	ProjectID        int64               `json:"project_id,omitempty"`
	EN15804Compliant bool                `json:"en15804_compliant"`
	Totals           map[string]*float64 `json:"totals"`
	Scores           map[string]*float64 `json:"scores"`
	Skipped          map[string]string   `json:"skipped,omitempty"`
	Groups           []GroupJSON         `json:"groups,omitempty"`
	CreatedAt        string              `json:"created_at"`
}

type GroupJSON struct {
	Name    string   `json:"name"`
	Score   *float64 `json:"score"`
	Caption string   `json:"caption,omitempty"`
}

func (r *Report) ToJSON() ReportJSON {
	out := ReportJSON{
		ID:               r.ID.String(),
		VersionID:        int64(r.VersionID),
		VersionName:      r.VersionName,
		Method:           string(r.Method),
		ProjectID:        int64(r.ProjectID),
		EN15804Compliant: r.Result.EN15804Compliant,
		Totals:           make(map[string]*float64, r.Totals.Len()),
		Scores:           r.Result.ToMap(),
		CreatedAt:        r.CreatedAt.Format(time.RFC3339),
	}
	for _, v := range r.Totals.Values() {
		if f, ok := v.Float64(); ok {
			out.Totals[v.Ident.String()] = &f
		} else {
			out.Totals[v.Ident.String()] = nil
		}
	}
	if len(r.Result.Skipped) > 0 {
		out.Skipped = make(map[string]string, len(r.Result.Skipped))
		for ident, err := range r.Result.Skipped {
			out.Skipped[ident.String()] = err.Error()
		}
	}
	for _, g := range r.Groups {
		gj := GroupJSON{Name: g.Name, Caption: g.Caption}
		if g.Score.Valid {
			f, _ := g.Score.Decimal.Float64()
			gj.Score = &f
		}
		out.Groups = append(out.Groups, gj)
	}
	return out
}
