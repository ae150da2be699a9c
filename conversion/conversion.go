/*
Package conversion resolves unit conversions for process configs.

PURPOSE:
  Quantities of building components are entered in whatever unit is
  natural (m3 of concrete, pieces of windows), but the processes that
  describe their life cycle are referenced to a fixed unit (kg, m2).
  This package models the conversion rules between units and answers
  "how many kg is one m3 of this material".

KEY CONCEPTS IN THIS FILE (conversion.go):
  - Conversion: A directed rule from one unit to another
  - Kind: linear (user registered), imported (from a process db),
    required (placeholder: needed, but no factor known)
  - Type: Origin of an imported conversion (gross density, layer thickness)

CONVENTION:
  to = from * factor
  e.g. Conversion{From: m3, To: kg, Factor: 2400} for concrete.

INVARIANTS:
  - From and To differ. Identity is handled by the Converter, never stored.
  - A required conversion has no factor; Convert on it fails with
    UnconvertibleUnitsError and MustConvert panics.

SEE ALSO:
  - set.go: Deduplicated collections of conversions
  - converter.go: Resolution with identity, inversion and transitive lookup
*/
package conversion

import (
	"fmt"

	"github.com/IWUGERMANY/elca-sub014/lca"
	"github.com/shopspring/decimal"
)

// =============================================================================
// KIND - Conversion variants
// =============================================================================

type Kind string

const (
	KindLinear   Kind = "linear"
	KindImported Kind = "imported"
	KindRequired Kind = "required"
)

// Type tags an imported conversion with what the factor represents.
type Type string

const (
	TypeNone           Type = ""
	TypeProduction     Type = "production"
	TypeGrossDensity   Type = "gross_density"
	TypeBulkDensity    Type = "bulk_density"
	TypeLayerThickness Type = "layer_thickness"
	TypeAreaDensity    Type = "area_density"
	TypeLinearDensity  Type = "linear_density"
	TypeProductiveness Type = "productiveness"
)

// =============================================================================
// CONVERSION
// =============================================================================

// Conversion is a sum type over the three variants. The zero value is not
// a valid conversion; use the constructors.
type Conversion struct {
	kind   Kind
	from   lca.Unit
	to     lca.Unit
	factor decimal.Decimal
	typ    Type
}

// NewLinear builds a user-registered conversion.
func NewLinear(from, to lca.Unit, factor decimal.Decimal) (Conversion, error) {
	if err := validateUnits(from, to); err != nil {
		return Conversion{}, err
	}
	return Conversion{kind: KindLinear, from: from, to: to, factor: factor}, nil
}

// NewImported builds a conversion that came with a process db import.
func NewImported(from, to lca.Unit, factor decimal.Decimal, typ Type) (Conversion, error) {
	if err := validateUnits(from, to); err != nil {
		return Conversion{}, err
	}
	return Conversion{kind: KindImported, from: from, to: to, factor: factor, typ: typ}, nil
}

// NewRequired builds a placeholder for a conversion that is needed but
// not defined yet.
func NewRequired(from, to lca.Unit) (Conversion, error) {
	if err := validateUnits(from, to); err != nil {
		return Conversion{}, err
	}
	return Conversion{kind: KindRequired, from: from, to: to}, nil
}

// Linear is NewLinear for literals; it panics on invalid units.
func Linear(from, to lca.Unit, factor float64) Conversion {
	c, err := NewLinear(from, to, decimal.NewFromFloat(factor))
	if err != nil {
		panic(err)
	}
	return c
}

// Imported is NewImported for literals; it panics on invalid units.
func Imported(from, to lca.Unit, factor float64, typ Type) Conversion {
	c, err := NewImported(from, to, decimal.NewFromFloat(factor), typ)
	if err != nil {
		panic(err)
	}
	return c
}

// Required is NewRequired for literals; it panics on invalid units.
func Required(from, to lca.Unit) Conversion {
	c, err := NewRequired(from, to)
	if err != nil {
		panic(err)
	}
	return c
}

// identity is only ever produced by the Converter.
func identity(u lca.Unit) Conversion {
	return Conversion{kind: KindLinear, from: u, to: u, factor: decimal.NewFromInt(1)}
}

func validateUnits(from, to lca.Unit) error {
	if from.IsZero() || to.IsZero() {
		return fmt.Errorf("%w: empty unit in conversion %q -> %q", lca.ErrInvalidUnit, from, to)
	}
	if from.Equals(to) {
		return fmt.Errorf("%w: %s", ErrSameUnit, from)
	}
	return nil
}

func (c Conversion) Kind() Kind                     { return c.kind }
func (c Conversion) From() lca.Unit                 { return c.from }
func (c Conversion) To() lca.Unit                   { return c.to }
func (c Conversion) Type() Type                     { return c.typ }
func (c Conversion) IsKnown() bool                  { return c.kind == KindLinear || c.kind == KindImported }
func (c Conversion) IsImported() bool               { return c.kind == KindImported }
func (c Conversion) IsIdentity() bool               { return c.from.Equals(c.to) }
func (c Conversion) key() pairKey                   { return pairKey{from: c.from, to: c.to} }
func (c Conversion) Matches(from, to lca.Unit) bool { return c.from.Equals(from) && c.to.Equals(to) }

// Factor returns the multiplicative factor and whether it is known.
func (c Conversion) Factor() (decimal.Decimal, bool) {
	if !c.IsKnown() {
		return decimal.Zero, false
	}
	return c.factor, true
}

// Convert returns value * factor.
func (c Conversion) Convert(value decimal.Decimal) (decimal.Decimal, error) {
	if !c.IsKnown() {
		return decimal.Zero, &UnconvertibleUnitsError{From: c.from, To: c.to}
	}
	return value.Mul(c.factor), nil
}

// MustConvert is Convert for callers that already checked IsKnown.
func (c Conversion) MustConvert(value decimal.Decimal) decimal.Decimal {
	v, err := c.Convert(value)
	if err != nil {
		panic(err)
	}
	return v
}

// ConvertQuantity converts q, whose unit must be c.From().
func (c Conversion) ConvertQuantity(q lca.Quantity) (lca.Quantity, error) {
	if !q.Unit.Equals(c.from) {
		return lca.Quantity{}, fmt.Errorf("%w: have %s, conversion expects %s", ErrUnitMismatch, q.Unit, c.from)
	}
	v, err := c.Convert(q.Value)
	if err != nil {
		return lca.Quantity{}, err
	}
	return lca.NewQuantityFromDecimal(v, c.to), nil
}

// Invert swaps the units and replaces the factor by 1/factor. A required
// conversion inverts to a required conversion.
func (c Conversion) Invert() (Conversion, error) {
	inv := Conversion{kind: c.kind, from: c.to, to: c.from, typ: c.typ}
	if !c.IsKnown() {
		return inv, nil
	}
	if c.factor.IsZero() {
		return Conversion{}, fmt.Errorf("%w: %s -> %s", ErrZeroFactor, c.from, c.to)
	}
	inv.factor = decimal.NewFromInt(1).Div(c.factor)
	return inv, nil
}

// Equal compares variant, units, factor and type.
func (c Conversion) Equal(other Conversion) bool {
	return c.kind == other.kind &&
		c.from == other.from &&
		c.to == other.to &&
		c.typ == other.typ &&
		c.factor.Equal(other.factor)
}

func (c Conversion) String() string {
	switch c.kind {
	case KindRequired:
		return fmt.Sprintf("%s -> %s (required)", c.from, c.to)
	case KindImported:
		return fmt.Sprintf("%s -> %s x %s (imported %s)", c.from, c.to, c.factor.String(), c.typ)
	}
	return fmt.Sprintf("%s -> %s x %s", c.from, c.to, c.factor.String())
}

// pairKey is the direction-sensitive (from, to) identity of a conversion.
type pairKey struct {
	from, to lca.Unit
}

func (k pairKey) inverse() pairKey { return pairKey{from: k.to, to: k.from} }

// undirected returns the key with units in lexical order.
func (k pairKey) undirected() pairKey {
	if k.to < k.from {
		return k.inverse()
	}
	return k
}
