/*
Package lca provides the value types shared by the benchmark and conversion engine.

PURPOSE:
  This package contains the vocabulary every other package speaks: units,
  quantities, identifiers, life-cycle modules and stages, and environmental
  indicator values. It has no knowledge of conversions, processes or
  benchmarks; those live in their own packages and build on these types.

KEY CONCEPTS IN THIS FILE (types.go):
  - Unit: A measurement unit (kg, m3, m2, m, piece, kWh, MJ, t*km)
  - Quantity: A value with a unit (e.g., 12.5 m3)
  - Identifiers: Type-safe ids for process dbs, configs, processes, versions

DESIGN PRINCIPLES:
  1. Immutability: Quantities and indicator values are never modified in place
  2. Precision: Uses decimal.Decimal, conversion factors chain without drift
  3. Type Safety: Distinct id types prevent mixing a config id with a db id

USAGE:
  q := lca.NewQuantity(12.5, lca.UnitCubicMetre)
  id := lca.ProcessLifeCycleID{ProcessConfigID: 42, ProcessDbID: 7}

SEE ALSO:
  - module.go: Life-cycle modules and stages
  - indicator.go: Indicator idents and values
  - errors.go: Sentinel and structured errors
*/
package lca

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// =============================================================================
// UNIT
// =============================================================================

// Unit is a measurement unit. Equality is by value.
type Unit string

const (
	UnitKilogram        Unit = "kg"
	UnitCubicMetre      Unit = "m3"
	UnitSquareMetre     Unit = "m2"
	UnitMetre           Unit = "m"
	UnitPiece           Unit = "piece"
	UnitKilowattHour    Unit = "kWh"
	UnitMegajoule       Unit = "MJ"
	UnitTonneKilometre  Unit = "t*km"
	UnitMetricTon       Unit = "t"
	UnitLitre           Unit = "l"
	UnitSquareMetreYear Unit = "m2*a"
)

var unitAliases = map[string]Unit{
	"kg":    UnitKilogram,
	"m3":    UnitCubicMetre,
	"m³":    UnitCubicMetre,
	"m2":    UnitSquareMetre,
	"m²":    UnitSquareMetre,
	"m":     UnitMetre,
	"piece": UnitPiece,
	"pcs":   UnitPiece,
	"stück": UnitPiece,
	"stk":   UnitPiece,
	"kwh":   UnitKilowattHour,
	"mj":    UnitMegajoule,
	"t*km":  UnitTonneKilometre,
	"t·km":  UnitTonneKilometre,
	"tkm":   UnitTonneKilometre,
	"t":     UnitMetricTon,
	"l":     UnitLitre,
	"m2*a":  UnitSquareMetreYear,
	"m2a":   UnitSquareMetreYear,
}

// ParseUnit maps the spellings found in imported datasets onto a Unit.
// Unknown, non-empty spellings are kept verbatim; only the empty string fails.
func ParseUnit(s string) (Unit, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return "", fmt.Errorf("%w: empty unit", ErrInvalidUnit)
	}
	if u, ok := unitAliases[strings.ToLower(trimmed)]; ok {
		return u, nil
	}
	return Unit(trimmed), nil
}

// MustParseUnit is ParseUnit for literals in tests and presets.
func MustParseUnit(s string) Unit {
	u, err := ParseUnit(s)
	if err != nil {
		panic(err)
	}
	return u
}

func (u Unit) String() string         { return string(u) }
func (u Unit) Equals(other Unit) bool { return u == other }
func (u Unit) IsZero() bool           { return u == "" }

// =============================================================================
// QUANTITY - Value with unit
// =============================================================================

type Quantity struct {
	Value decimal.Decimal
	Unit  Unit
}

func NewQuantity(value float64, unit Unit) Quantity {
	return Quantity{Value: decimal.NewFromFloat(value), Unit: unit}
}

func NewQuantityFromDecimal(value decimal.Decimal, unit Unit) Quantity {
	return Quantity{Value: value, Unit: unit}
}

func (q Quantity) Mul(s decimal.Decimal) Quantity {
	return Quantity{Value: q.Value.Mul(s), Unit: q.Unit}
}

func (q Quantity) WithValue(v decimal.Decimal) Quantity { return Quantity{Value: v, Unit: q.Unit} }
func (q Quantity) IsZero() bool                         { return q.Value.IsZero() }
func (q Quantity) Float64() float64                     { f, _ := q.Value.Float64(); return f }

// Equal compares value and unit.
func (q Quantity) Equal(other Quantity) bool {
	return q.Unit == other.Unit && q.Value.Equal(other.Value)
}

func (q Quantity) String() string {
	return fmt.Sprintf("%s %s", q.Value.String(), q.Unit)
}

// =============================================================================
// IDENTIFIERS
// =============================================================================

type ProcessDbID int64
type ProcessConfigID int64
type ProcessID int64
type BenchmarkVersionID int64
type ProjectID int64

// ProcessLifeCycleID identifies the life cycle of one process config inside
// one process database.
type ProcessLifeCycleID struct {
	ProcessConfigID ProcessConfigID
	ProcessDbID     ProcessDbID
}

func (id ProcessLifeCycleID) String() string {
	return fmt.Sprintf("%d@%d", id.ProcessConfigID, id.ProcessDbID)
}
