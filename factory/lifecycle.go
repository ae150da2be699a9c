package factory

import (
	"fmt"

	"github.com/IWUGERMANY/elca-sub014/conversion"
	"github.com/IWUGERMANY/elca-sub014/lca"
	"github.com/IWUGERMANY/elca-sub014/lifecycle"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =============================================================================
// PROCESS LIFE CYCLE SCHEMA
// =============================================================================
//
//	{
//	  "kind": "process_life_cycle",
//	  "process_config_id": 42,
//	  "process_db_id": 1,
//	  "processes": [
//	    {"id": 1, "uuid": "…", "name": "Concrete C30/37", "module": "A1-3",
//	     "ref_value": 1, "ref_unit": "m3", "indicators": {"gwp": 220.5}},
//	    {"id": 2, "module": "C3", "ref_value": 1, "ref_unit": "kg", "ratio": 0.5,
//	     "indicators": {"gwp": 0.01}}
//	  ],
//	  "conversions": [
//	    {"from": "m3", "to": "kg", "factor": 2400, "type": "gross_density"},
//	    {"from": "piece", "to": "kg"}
//	  ]
//	}
//
// A conversion without a factor is a required placeholder; one with a type
// is an imported conversion.

// LifeCycleJSON is the JSON/YAML representation of a process life cycle.
type LifeCycleJSON struct {
	Kind            string           `json:"kind" yaml:"kind"`
	ProcessConfigID int64            `json:"process_config_id" yaml:"process_config_id"`
	ProcessDbID     int64            `json:"process_db_id" yaml:"process_db_id"`
	Processes       []ProcessJSON    `json:"processes" yaml:"processes"`
	Conversions     []ConversionJSON `json:"conversions,omitempty" yaml:"conversions,omitempty"`
}

type ProcessJSON struct {
	ID         int64               `json:"id" yaml:"id"`
	UUID       string              `json:"uuid,omitempty" yaml:"uuid,omitempty"`
	Name       string              `json:"name,omitempty" yaml:"name,omitempty"`
	Module     string              `json:"module" yaml:"module"`
	RefValue   float64             `json:"ref_value" yaml:"ref_value"`
	RefUnit    string              `json:"ref_unit" yaml:"ref_unit"`
	Ratio      *float64            `json:"ratio,omitempty" yaml:"ratio,omitempty"` // default 1
	Indicators map[string]*float64 `json:"indicators,omitempty" yaml:"indicators,omitempty"`
}

type ConversionJSON struct {
	From   string   `json:"from" yaml:"from"`
	To     string   `json:"to" yaml:"to"`
	Factor *float64 `json:"factor,omitempty" yaml:"factor,omitempty"`
	Type   string   `json:"type,omitempty" yaml:"type,omitempty"`
}

// =============================================================================
// CONVERSION
// =============================================================================

// ParseLifeCycle parses a process life cycle document.
func (f *Factory) ParseLifeCycle(data []byte, format Format) (*lifecycle.ProcessLifeCycle, error) {
	var lj LifeCycleJSON
	if err := decode(data, format, &lj); err != nil {
		return nil, err
	}
	return f.LifeCycleFromJSON(lj)
}

// LifeCycleFromJSON converts LifeCycleJSON, keeping process order.
func (f *Factory) LifeCycleFromJSON(lj LifeCycleJSON) (*lifecycle.ProcessLifeCycle, error) {
	id := lca.ProcessLifeCycleID{
		ProcessConfigID: lca.ProcessConfigID(lj.ProcessConfigID),
		ProcessDbID:     lca.ProcessDbID(lj.ProcessDbID),
	}

	processes := make([]lifecycle.Process, 0, len(lj.Processes))
	for _, pj := range lj.Processes {
		p, err := ParseProcess(pj)
		if err != nil {
			return nil, fmt.Errorf("process config %d: %w", lj.ProcessConfigID, err)
		}
		processes = append(processes, p)
	}

	conversions := make([]conversion.Conversion, 0, len(lj.Conversions))
	for _, cj := range lj.Conversions {
		c, err := ParseConversion(cj)
		if err != nil {
			return nil, fmt.Errorf("process config %d: %w", lj.ProcessConfigID, err)
		}
		conversions = append(conversions, c)
	}

	return lifecycle.New(id, processes, conversions), nil
}

// LifeCycleToJSON converts a ProcessLifeCycle to LifeCycleJSON.
func (f *Factory) LifeCycleToJSON(lc *lifecycle.ProcessLifeCycle) LifeCycleJSON {
	lj := LifeCycleJSON{
		Kind:            KindProcessLifeCycle,
		ProcessConfigID: int64(lc.ProcessConfigID()),
		ProcessDbID:     int64(lc.ProcessDbID()),
	}
	for _, p := range lc.Processes() {
		ratio := p.ModuleRatio.InexactFloat64()
		pj := ProcessJSON{
			ID:         int64(p.ID),
			Name:       p.Name,
			Module:     p.Module.String(),
			RefValue:   p.QuantitativeReference.Float64(),
			RefUnit:    p.Unit().String(),
			Ratio:      &ratio,
			Indicators: indicatorMap(p.Indicators),
		}
		if p.UUID != uuid.Nil {
			pj.UUID = p.UUID.String()
		}
		lj.Processes = append(lj.Processes, pj)
	}
	for _, c := range lc.Conversions().Slice() {
		cj := ConversionJSON{From: c.From().String(), To: c.To().String(), Type: string(c.Type())}
		if factor, ok := c.Factor(); ok {
			v := factor.InexactFloat64()
			cj.Factor = &v
		}
		lj.Conversions = append(lj.Conversions, cj)
	}
	return lj
}

// ParseProcess converts one process entry.
func ParseProcess(pj ProcessJSON) (lifecycle.Process, error) {
	module, err := lca.ParseModule(pj.Module)
	if err != nil {
		return lifecycle.Process{}, fmt.Errorf("process %d: %w", pj.ID, err)
	}
	unit, err := lca.ParseUnit(pj.RefUnit)
	if err != nil {
		return lifecycle.Process{}, fmt.Errorf("process %d: %w", pj.ID, err)
	}
	indicators, err := parseIndicatorMap(pj.Indicators)
	if err != nil {
		return lifecycle.Process{}, fmt.Errorf("process %d: %w", pj.ID, err)
	}

	if err := finite(fmt.Sprintf("process %d ref_value", pj.ID), pj.RefValue); err != nil {
		return lifecycle.Process{}, err
	}
	p := lifecycle.NewProcess(lca.ProcessID(pj.ID), pj.Name, module, lca.NewQuantity(pj.RefValue, unit), indicators.Values()...)
	if pj.Ratio != nil {
		if err := finite(fmt.Sprintf("process %d ratio", pj.ID), *pj.Ratio); err != nil {
			return lifecycle.Process{}, err
		}
		p.ModuleRatio = decimal.NewFromFloat(*pj.Ratio)
	}
	if pj.UUID != "" {
		if p.UUID, err = uuid.Parse(pj.UUID); err != nil {
			return lifecycle.Process{}, fmt.Errorf("process %d: %w: uuid %q", pj.ID, lca.ErrInvalidArgument, pj.UUID)
		}
	}
	return p, nil
}

// ParseConversion picks the variant: no factor -> required, a type ->
// imported, otherwise linear.
func ParseConversion(cj ConversionJSON) (conversion.Conversion, error) {
	from, err := lca.ParseUnit(cj.From)
	if err != nil {
		return conversion.Conversion{}, err
	}
	to, err := lca.ParseUnit(cj.To)
	if err != nil {
		return conversion.Conversion{}, err
	}
	if cj.Factor != nil {
		if err := finite("conversion "+cj.From+" -> "+cj.To, *cj.Factor); err != nil {
			return conversion.Conversion{}, err
		}
	}
	switch {
	case cj.Factor == nil:
		return conversion.NewRequired(from, to)
	case cj.Type != "":
		return conversion.NewImported(from, to, decimal.NewFromFloat(*cj.Factor), conversion.Type(cj.Type))
	default:
		return conversion.NewLinear(from, to, decimal.NewFromFloat(*cj.Factor))
	}
}
