package symbolic

import (
	"fmt"
	"math/big"

	"github.com/dalzilio/rudd"
)

// Set is an immutable symbolic subset of the state×color space of one Graph.
// Two sets are equal exactly when they denote the same subset, independent
// of how their diagrams were built. All operations return fresh sets and
// never modify their operands.
//
// Sets from different graphs must not be mixed; doing so panics.
type Set struct {
	g    *Graph
	node rudd.Node
}

// Graph returns the graph this set belongs to.
func (s *Set) Graph() *Graph { return s.g }

func (s *Set) sibling(o *Set) {
	if s.g != o.g {
		panic("symbolic: sets belong to different graphs")
	}
}

// Union returns s ∪ o.
func (s *Set) Union(o *Set) *Set {
	s.sibling(o)
	return s.g.wrap(s.g.bdd.Apply(s.node, o.node, rudd.OPor))
}

// Intersect returns s ∩ o.
func (s *Set) Intersect(o *Set) *Set {
	s.sibling(o)
	return s.g.wrap(s.g.bdd.Apply(s.node, o.node, rudd.OPand))
}

// Minus returns s \ o.
func (s *Set) Minus(o *Set) *Set {
	s.sibling(o)
	return s.g.wrap(s.g.bdd.Apply(s.node, o.node, rudd.OPdiff))
}

// IsEmpty reports whether the set has no elements.
func (s *Set) IsEmpty() bool {
	return s.g.bdd.Equal(s.node, s.g.bdd.False())
}

// IsSubset reports whether every element of s is in o.
func (s *Set) IsSubset(o *Set) bool {
	return s.Minus(o).IsEmpty()
}

// Equal reports whether the two sets denote the same subset.
func (s *Set) Equal(o *Set) bool {
	s.sibling(o)
	return s.g.bdd.Equal(s.node, o.node)
}

// Cardinality returns the exact number of vertex-color pairs in the set.
func (s *Set) Cardinality() *big.Int {
	count := s.g.bdd.Satcount(s.node)
	if count == nil {
		return big.NewInt(0)
	}
	// Primed levels are unconstrained in every set; divide them back out.
	return new(big.Int).Rsh(count, uint(s.g.n))
}

// ApproxCardinality returns the cardinality as a float64, losing precision
// for astronomically large sets. Useful for logging and progress reporting.
func (s *Set) ApproxCardinality() float64 {
	f, _ := new(big.Float).SetInt(s.Cardinality()).Float64()
	return f
}

// NodeCount returns the number of BDD nodes in the set's representation,
// a measure of symbolic (not semantic) size.
func (s *Set) NodeCount() int {
	count := 0
	_ = s.g.bdd.Allnodes(func(id, level, low, high int) error {
		count++
		return nil
	}, s.node)
	return count
}

// Colors projects the set onto its color dimension: all colors for which
// the set contains at least one vertex.
func (s *Set) Colors() *Set {
	return s.g.wrap(s.g.bdd.Exist(s.node, s.g.stateCube))
}

// CountColors returns the exact number of colors in a color set (or in the
// color projection of a vertex set).
func (s *Set) CountColors() *big.Int {
	count := s.g.bdd.Satcount(s.Colors().node)
	if count == nil {
		return big.NewInt(0)
	}
	return new(big.Int).Rsh(count, uint(2*s.g.n))
}

// IntersectColors restricts the set to the colors present in c.
func (s *Set) IntersectColors(c *Set) *Set {
	return s.Intersect(c)
}

// String describes the set for logs: exact element count and symbolic size.
func (s *Set) String() string {
	return fmt.Sprintf("elements=%s nodes=%d", s.Cardinality(), s.NodeCount())
}
