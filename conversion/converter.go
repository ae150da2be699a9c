/*
converter.go - Conversion resolution for one process config

PURPOSE:
  A Converter answers "can a quantity in unit A be expressed in unit B for
  this process config" and performs the conversion.

RESOLUTION ORDER:
  1. Identity:   A == B returns the quantity unchanged, no lookup
  2. Exact:      a known A -> B conversion
  3. Inverse:    a known B -> A conversion, inverted on demand
  4. Transitive: (opt-in) a chain A -> X -> ... -> B over known conversions,
                 shortest chain first
  5. Otherwise:  *ConversionError{ProcessConfigID, A, B}

  Required (placeholder) conversions never take part in resolution.

TRANSITIVE LOOKUP:
  Units are nodes of a directed graph; every known conversion adds an edge
  in both directions (the reverse edge carries 1/factor). The graph is
  built once per Converter on first use.

SEE ALSO:
  - conversion.go: Conversion variants
  - lifecycle/lifecycle.go: Owns a Converter per process life cycle
*/
package conversion

import (
	"sync"

	"github.com/IWUGERMANY/elca-sub014/lca"
	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"
)

// =============================================================================
// CONVERTER
// =============================================================================

type Converter struct {
	processConfigID lca.ProcessConfigID
	conversions     *Set
	transitive      bool

	graphOnce sync.Once
	graph     *unitGraph
}

// Option configures a Converter.
type Option func(*Converter)

// WithTransitive enables resolution through intermediate units.
func WithTransitive() Option {
	return func(c *Converter) { c.transitive = true }
}

func NewConverter(processConfigID lca.ProcessConfigID, conversions *Set, opts ...Option) *Converter {
	if conversions == nil {
		conversions = &Set{}
	}
	c := &Converter{processConfigID: processConfigID, conversions: conversions}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Converter) ProcessConfigID() lca.ProcessConfigID { return c.processConfigID }
func (c *Converter) Conversions() *Set                    { return c.conversions }
func (c *Converter) IsTransitive() bool                   { return c.transitive }

// Find returns the stored conversion for exactly from -> to.
func (c *Converter) Find(from, to lca.Unit) (Conversion, bool) {
	return c.conversions.Find(from, to)
}

// Has reports whether from -> to is stored in either direction.
func (c *Converter) Has(from, to lca.Unit) bool {
	return c.conversions.Has(from, to)
}

// HasExact reports whether exactly from -> to is stored.
func (c *Converter) HasExact(from, to lca.Unit) bool {
	return c.conversions.HasExact(from, to)
}

// Resolve returns a known conversion from -> to following the resolution
// order above.
func (c *Converter) Resolve(from, to lca.Unit) (Conversion, error) {
	if from.Equals(to) {
		return identity(from), nil
	}
	if conv, ok := c.conversions.Find(from, to); ok && conv.IsKnown() {
		return conv, nil
	}
	if conv, ok := c.conversions.Find(to, from); ok && conv.IsKnown() {
		if inv, err := conv.Invert(); err == nil {
			return inv, nil
		}
	}
	if c.transitive {
		if conv, ok := c.unitGraph().resolve(from, to); ok {
			return conv, nil
		}
	}
	return Conversion{}, &ConversionError{ProcessConfigID: c.processConfigID, From: from, To: to}
}

// CanConvert reports whether Resolve would succeed.
func (c *Converter) CanConvert(from, to lca.Unit) bool {
	_, err := c.Resolve(from, to)
	return err == nil
}

// Convert converts value from one unit to another. Equal units return the
// value unchanged, even if the unit occurs in no conversion.
func (c *Converter) Convert(value decimal.Decimal, from, to lca.Unit) (decimal.Decimal, error) {
	if from.Equals(to) {
		return value, nil
	}
	conv, err := c.Resolve(from, to)
	if err != nil {
		return decimal.Zero, err
	}
	return conv.Convert(value)
}

// ConvertQuantity converts q into unit to.
func (c *Converter) ConvertQuantity(q lca.Quantity, to lca.Unit) (lca.Quantity, error) {
	v, err := c.Convert(q.Value, q.Unit, to)
	if err != nil {
		return lca.Quantity{}, err
	}
	return lca.NewQuantityFromDecimal(v, to), nil
}

func (c *Converter) unitGraph() *unitGraph {
	c.graphOnce.Do(func() {
		c.graph = newUnitGraph(c.conversions)
	})
	return c.graph
}

// =============================================================================
// UNIT GRAPH - gonum representation for transitive lookup
// =============================================================================

type unitGraph struct {
	directed *simple.DirectedGraph
	unitToID map[lca.Unit]int64
	idToUnit map[int64]lca.Unit
	factors  map[pairKey]decimal.Decimal
}

func newUnitGraph(conversions *Set) *unitGraph {
	g := &unitGraph{
		directed: simple.NewDirectedGraph(),
		unitToID: make(map[lca.Unit]int64),
		idToUnit: make(map[int64]lca.Unit),
		factors:  make(map[pairKey]decimal.Decimal),
	}
	for _, conv := range conversions.Slice() {
		factor, ok := conv.Factor()
		if !ok || factor.IsZero() {
			continue
		}
		g.addEdge(conv.From(), conv.To(), factor)
		if _, exists := g.factors[conv.key().inverse()]; !exists {
			g.addEdge(conv.To(), conv.From(), decimal.NewFromInt(1).Div(factor))
		}
	}
	return g
}

func (g *unitGraph) node(u lca.Unit) simple.Node {
	id, ok := g.unitToID[u]
	if !ok {
		id = int64(len(g.unitToID))
		g.unitToID[u] = id
		g.idToUnit[id] = u
		g.directed.AddNode(simple.Node(id))
	}
	return simple.Node(id)
}

func (g *unitGraph) addEdge(from, to lca.Unit, factor decimal.Decimal) {
	f, t := g.node(from), g.node(to)
	g.directed.SetEdge(g.directed.NewEdge(f, t))
	g.factors[pairKey{from: from, to: to}] = factor
}

// resolve composes the factors along the shortest path from -> to.
func (g *unitGraph) resolve(from, to lca.Unit) (Conversion, bool) {
	fromID, fromOK := g.unitToID[from]
	toID, toOK := g.unitToID[to]
	if !fromOK || !toOK {
		return Conversion{}, false
	}
	shortest := path.DijkstraFrom(simple.Node(fromID), g.directed)
	nodes, _ := shortest.To(toID)
	if len(nodes) < 2 {
		return Conversion{}, false
	}
	factor := decimal.NewFromInt(1)
	for i := 1; i < len(nodes); i++ {
		step := pairKey{from: g.idToUnit[nodes[i-1].ID()], to: g.idToUnit[nodes[i].ID()]}
		factor = factor.Mul(g.factors[step])
	}
	return Conversion{kind: KindLinear, from: from, to: to, factor: factor}, true
}
