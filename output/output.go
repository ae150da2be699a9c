/*
Package output renders engine results for the terminal.

FORMATS:
  table: aligned tables (tablewriter), scores colored by band
  json:  indented JSON of the same data

SCORE BANDS (table format, colored):
  >= 80  green
  >= 50  yellow
  <  50  red
  null   "-"
*/
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/IWUGERMANY/elca-sub014/benchmark"
	"github.com/IWUGERMANY/elca-sub014/conversion"
	"github.com/IWUGERMANY/elca-sub014/engine"
	"github.com/IWUGERMANY/elca-sub014/lca"
	"github.com/IWUGERMANY/elca-sub014/lifecycle"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/shopspring/decimal"
)

type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
)

// ParseFormat defaults to table.
func ParseFormat(s string) Format {
	if strings.EqualFold(s, "json") {
		return FormatJSON
	}
	return FormatTable
}

// =============================================================================
// TABLE
// =============================================================================

type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
}

func (t *Table) Render(w io.Writer, colored bool) error {
	if t.Title != "" {
		if colored {
			color.New(color.Bold).Fprintln(w, t.Title)
		} else {
			fmt.Fprintln(w, t.Title)
		}
		fmt.Fprintln(w, strings.Repeat("=", len(t.Title)))
	}

	table := tablewriter.NewTable(w,
		tablewriter.WithConfig(tablewriter.Config{
			Header: tw.CellConfig{
				Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
				Formatting: tw.CellFormatting{AutoFormat: tw.On},
			},
			Row: tw.CellConfig{
				Alignment: tw.CellAlignment{Global: tw.AlignLeft},
			},
		}),
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.Border{Left: tw.Off, Right: tw.Off, Top: tw.Off, Bottom: tw.Off},
			Settings: tw.Settings{
				Separators: tw.Separators{BetweenColumns: tw.Off},
			},
		}),
	)
	table.Header(t.Headers)
	for _, row := range t.Rows {
		if err := table.Append(row); err != nil {
			return err
		}
	}
	if err := table.Render(); err != nil {
		return err
	}
	fmt.Fprintln(w)
	return nil
}

// =============================================================================
// PRINTER
// =============================================================================

// Printer writes results in one format.
type Printer struct {
	w       io.Writer
	format  Format
	colored bool
}

func NewPrinter(w io.Writer, format Format, colored bool) *Printer {
	return &Printer{w: w, format: format, colored: colored}
}

func (p *Printer) writeJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(p.w, string(data))
	return err
}

// Report prints one scoring run.
func (p *Printer) Report(r *engine.Report) error {
	if p.format == FormatJSON {
		return p.writeJSON(r.ToJSON())
	}

	title := fmt.Sprintf("Benchmark %d %s (%s)", r.VersionID, r.VersionName, r.Method)
	scores := &Table{Title: title, Headers: []string{"Indicator", "Value", "Score"}}
	for _, ident := range r.Result.Idents() {
		value := "-"
		if v, ok := r.Totals.Get(ident); ok && !v.IsNull() {
			value = v.Decimal().StringFixed(4)
		}
		scores.Rows = append(scores.Rows, []string{ident.String(), value, p.score(r.Result.Scores[ident])})
	}
	if r.Result.HasPrimaryEnergy() {
		scores.Rows = append(scores.Rows, []string{lca.IndicatorPE.String(), "", p.score(r.Result.PrimaryEnergy)})
	}
	for _, ident := range sortedSkipped(r.Result) {
		scores.Rows = append(scores.Rows, []string{ident.String(), "", p.warn("skipped: " + r.Result.Skipped[ident].Error())})
	}
	if err := scores.Render(p.w, p.colored); err != nil {
		return err
	}

	if len(r.Groups) > 0 {
		groups := &Table{Headers: []string{"Group", "Score", "Caption"}}
		for _, g := range r.Groups {
			groups.Rows = append(groups.Rows, []string{g.Name, p.score(g.Score), g.Caption})
		}
		if err := groups.Render(p.w, p.colored); err != nil {
			return err
		}
	}
	fmt.Fprintf(p.w, "report %s\n", r.ID)
	return nil
}

// Batch prints one row per variant.
func (p *Printer) Batch(results []engine.VariantResult) error {
	if p.format == FormatJSON {
		type variantJSON struct {
			Name   string             `json:"name"`
			Report *engine.ReportJSON `json:"report,omitempty"`
			Error  string             `json:"error,omitempty"`
		}
		out := make([]variantJSON, 0, len(results))
		for _, r := range results {
			vj := variantJSON{Name: r.Name}
			if r.Err != nil {
				vj.Error = r.Err.Error()
			} else {
				rj := r.Report.ToJSON()
				vj.Report = &rj
			}
			out = append(out, vj)
		}
		return p.writeJSON(out)
	}

	var idents []lca.IndicatorIdent
	seen := make(map[lca.IndicatorIdent]bool)
	for _, r := range results {
		if r.Report == nil {
			continue
		}
		for _, ident := range r.Report.Result.Idents() {
			if !seen[ident] {
				seen[ident] = true
				idents = append(idents, ident)
			}
		}
	}

	headers := []string{"Variant"}
	for _, ident := range idents {
		headers = append(headers, ident.String())
	}
	headers = append(headers, lca.IndicatorPE.String())
	table := &Table{Title: "Variants", Headers: headers}
	for _, r := range results {
		row := []string{r.Name}
		if r.Err != nil {
			row = append(row, p.warn(r.Err.Error()))
			for len(row) < len(headers) {
				row = append(row, "")
			}
			table.Rows = append(table.Rows, row)
			continue
		}
		for _, ident := range idents {
			row = append(row, p.score(r.Report.Result.Scores[ident]))
		}
		row = append(row, p.score(r.Report.Result.PrimaryEnergy))
		table.Rows = append(table.Rows, row)
	}
	return table.Render(p.w, p.colored)
}

// LifeCycle prints processes and the conversions they need.
func (p *Printer) LifeCycle(lc *lifecycle.ProcessLifeCycle) error {
	required := lc.RequiredConversions()
	additional := lc.AdditionalConversions()

	if p.format == FormatJSON {
		return p.writeJSON(map[string]any{
			"id":                     lc.ID().String(),
			"required_units":         unitStrings(lc.RequiredUnits()),
			"required_conversions":   conversionStrings(required.Slice()),
			"missing_conversions":    conversionStrings(lc.MissingConversions()),
			"additional_conversions": conversionStrings(additional.Slice()),
		})
	}

	processes := &Table{
		Title:   "Life cycle " + lc.ID().String(),
		Headers: []string{"ID", "Module", "Stage", "Name", "Reference", "Ratio"},
	}
	for _, proc := range lc.Processes() {
		processes.Rows = append(processes.Rows, []string{
			fmt.Sprint(proc.ID), proc.Module.String(), string(proc.Stage()), proc.Name,
			proc.QuantitativeReference.String(), proc.ModuleRatio.String(),
		})
	}
	if err := processes.Render(p.w, p.colored); err != nil {
		return err
	}

	conversions := &Table{Headers: []string{"Conversion", "Kind", "Status"}}
	for _, c := range required.Slice() {
		status := "ok"
		if !c.IsKnown() {
			status = p.warn("missing")
		}
		conversions.Rows = append(conversions.Rows, []string{c.String(), string(c.Kind()), status})
	}
	for _, c := range additional.Slice() {
		conversions.Rows = append(conversions.Rows, []string{c.String(), string(c.Kind()), "additional"})
	}
	return conversions.Render(p.w, p.colored)
}

// Conversion prints a converted quantity.
func (p *Printer) Conversion(from, to lca.Quantity) error {
	if p.format == FormatJSON {
		return p.writeJSON(map[string]any{
			"from": map[string]any{"value": from.Float64(), "unit": from.Unit.String()},
			"to":   map[string]any{"value": to.Float64(), "unit": to.Unit.String()},
		})
	}
	_, err := fmt.Fprintf(p.w, "%s = %s\n", from, to)
	return err
}

// Components prints per-module indicator values of an element component.
func (p *Printer) Components(q lca.Quantity, result lifecycle.ComponentResult) error {
	if p.format == FormatJSON {
		modules := make(map[string]map[string]*float64, len(result.Modules))
		for m, set := range result.Modules {
			values := make(map[string]*float64, set.Len())
			for _, v := range set.Values() {
				if f, ok := v.Float64(); ok {
					values[v.Ident.String()] = &f
				} else {
					values[v.Ident.String()] = nil
				}
			}
			modules[m.String()] = values
		}
		var warnings []string
		for _, w := range result.Warnings {
			warnings = append(warnings, w.Error())
		}
		return p.writeJSON(map[string]any{"quantity": q.String(), "modules": modules, "warnings": warnings})
	}

	table := &Table{Title: "Component " + q.String(), Headers: []string{"Module", "Indicator", "Value"}}
	for _, m := range result.ModulesInOrder() {
		for _, v := range result.Modules[m].Values() {
			value := "-"
			if !v.IsNull() {
				value = v.Decimal().StringFixed(4)
			}
			table.Rows = append(table.Rows, []string{m.String(), v.Ident.String(), value})
		}
	}
	if err := table.Render(p.w, p.colored); err != nil {
		return err
	}
	for _, w := range result.Warnings {
		fmt.Fprintln(p.w, p.warn(w.Error()))
	}
	return nil
}

// Versions lists benchmark versions.
func (p *Printer) Versions(versions []*benchmark.Version) error {
	if p.format == FormatJSON {
		type versionJSON struct {
			ID         int64  `json:"id"`
			Name       string `json:"name"`
			Method     string `json:"method"`
			Thresholds int    `json:"thresholds"`
			EN15804    bool   `json:"en15804"`
		}
		out := make([]versionJSON, 0, len(versions))
		for _, v := range versions {
			out = append(out, versionJSON{int64(v.ID), v.Name, string(v.Method()), v.Thresholds.Len(), v.Thresholds.IsEN15804Compliant()})
		}
		return p.writeJSON(out)
	}

	table := &Table{Title: "Benchmark versions", Headers: []string{"ID", "Name", "Method", "Thresholds", "EN 15804"}}
	for _, v := range versions {
		table.Rows = append(table.Rows, []string{
			fmt.Sprint(v.ID), v.Name, string(v.Method()),
			fmt.Sprint(v.Thresholds.Len()), fmt.Sprint(v.Thresholds.IsEN15804Compliant()),
		})
	}
	return table.Render(p.w, p.colored)
}

// LifeCycles lists stored life cycle IDs.
func (p *Printer) LifeCycles(ids []lca.ProcessLifeCycleID) error {
	if p.format == FormatJSON {
		out := make([]string, 0, len(ids))
		for _, id := range ids {
			out = append(out, id.String())
		}
		return p.writeJSON(out)
	}
	table := &Table{Title: "Process life cycles", Headers: []string{"Process config", "Process db"}}
	for _, id := range ids {
		table.Rows = append(table.Rows, []string{fmt.Sprint(id.ProcessConfigID), fmt.Sprint(id.ProcessDbID)})
	}
	return table.Render(p.w, p.colored)
}

// =============================================================================
// HELPERS
// =============================================================================

var (
	good = decimal.NewFromInt(80)
	fair = decimal.NewFromInt(50)
)

func (p *Printer) score(s decimal.NullDecimal) string {
	if !s.Valid {
		return "-"
	}
	text := s.Decimal.StringFixed(2)
	if !p.colored {
		return text
	}
	switch {
	case s.Decimal.GreaterThanOrEqual(good):
		return color.GreenString(text)
	case s.Decimal.GreaterThanOrEqual(fair):
		return color.YellowString(text)
	default:
		return color.RedString(text)
	}
}

func (p *Printer) warn(text string) string {
	if p.colored {
		return color.YellowString(text)
	}
	return text
}

func sortedSkipped(r *benchmark.Result) []lca.IndicatorIdent {
	idents := make([]lca.IndicatorIdent, 0, len(r.Skipped))
	for ident := range r.Skipped {
		idents = append(idents, ident)
	}
	sort.Slice(idents, func(i, j int) bool { return idents[i] < idents[j] })
	return idents
}

func unitStrings(units []lca.Unit) []string {
	out := make([]string, 0, len(units))
	for _, u := range units {
		out = append(out, u.String())
	}
	return out
}

func conversionStrings(cs []conversion.Conversion) []string {
	out := make([]string, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.String())
	}
	return out
}
