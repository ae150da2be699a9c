package conversion

import "github.com/IWUGERMANY/elca-sub014/lca"

// =============================================================================
// SET - Deduplicated collection of conversions
// =============================================================================

// Set holds at most one conversion per (from, to) pair, in insertion order.
// The zero value is an empty set ready to use.
type Set struct {
	items []Conversion
	index map[pairKey]int
}

func NewSet(conversions ...Conversion) *Set {
	s := &Set{}
	for _, c := range conversions {
		s.Add(c)
	}
	return s
}

// Add stores c unless a conversion for the same (from, to) pair exists.
// The one exception: a known conversion replaces a required placeholder.
// Reports whether the set changed.
func (s *Set) Add(c Conversion) bool {
	if s.index == nil {
		s.index = make(map[pairKey]int)
	}
	if i, exists := s.index[c.key()]; exists {
		if !s.items[i].IsKnown() && c.IsKnown() {
			s.items[i] = c
			return true
		}
		return false
	}
	s.index[c.key()] = len(s.items)
	s.items = append(s.items, c)
	return true
}

// Find returns the conversion for exactly from -> to. Callers that accept
// the reverse direction try Find(to, from) and invert.
func (s *Set) Find(from, to lca.Unit) (Conversion, bool) {
	if s == nil {
		return Conversion{}, false
	}
	i, ok := s.index[pairKey{from: from, to: to}]
	if !ok {
		return Conversion{}, false
	}
	return s.items[i], true
}

// HasExact reports whether from -> to is stored.
func (s *Set) HasExact(from, to lca.Unit) bool {
	_, ok := s.Find(from, to)
	return ok
}

// Has reports whether from -> to or to -> from is stored.
func (s *Set) Has(from, to lca.Unit) bool {
	return s.HasExact(from, to) || s.HasExact(to, from)
}

// FilterByUnit returns the conversions that start or end in u.
func (s *Set) FilterByUnit(u lca.Unit) *Set {
	result := &Set{}
	for _, c := range s.Slice() {
		if c.From().Equals(u) || c.To().Equals(u) {
			result.Add(c)
		}
	}
	return result
}

// Known returns only conversions with a factor.
func (s *Set) Known() *Set {
	result := &Set{}
	for _, c := range s.Slice() {
		if c.IsKnown() {
			result.Add(c)
		}
	}
	return result
}

// Without returns the conversions of s whose unit pair, in either
// direction, does not occur in other.
func (s *Set) Without(other *Set) *Set {
	exclude := make(map[pairKey]bool, other.Len())
	for _, c := range other.Slice() {
		exclude[c.key().undirected()] = true
	}
	result := &Set{}
	for _, c := range s.Slice() {
		if !exclude[c.key().undirected()] {
			result.Add(c)
		}
	}
	return result
}

// Units returns every unit occurring in the set, in first-seen order.
func (s *Set) Units() []lca.Unit {
	seen := make(map[lca.Unit]bool)
	var result []lca.Unit
	for _, c := range s.Slice() {
		for _, u := range []lca.Unit{c.From(), c.To()} {
			if !seen[u] {
				seen[u] = true
				result = append(result, u)
			}
		}
	}
	return result
}

func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.items)
}

func (s *Set) IsEmpty() bool { return s.Len() == 0 }

// Slice returns a copy of the conversions in insertion order.
func (s *Set) Slice() []Conversion {
	if s == nil {
		return nil
	}
	return append([]Conversion(nil), s.items...)
}
