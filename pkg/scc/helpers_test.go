package scc

import (
	"math/bits"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aretw0/symscc/pkg/symbolic"
)

// edge is one asynchronous transition between two states given as bit
// patterns, variable 0 being the most significant bit. The two states must
// differ in exactly one bit.
type edge struct {
	from, to uint
}

func bitOf(state uint, numVars, v int) bool {
	return state&(1<<(numVars-1-v)) != 0
}

// graphFromEdges builds a transition system containing exactly the given
// edges. Self-loops (from == to) are attached to variable 0.
func graphFromEdges(t *testing.T, numVars int, edges []edge) *symbolic.Graph {
	t.Helper()
	g, err := symbolic.NewTransitionSystem(numVars, 0, func(g *symbolic.Graph, i int) *symbolic.Set {
		rel := g.Empty()
		for _, e := range edges {
			diff := e.from ^ e.to
			if e.from != e.to {
				require.Equal(t, 1, bits.OnesCount(diff), "edge %03b->%03b must flip one variable", e.from, e.to)
			}
			if e.from == e.to {
				if i != 0 {
					continue
				}
			} else if !bitOf(diff, numVars, i) {
				continue
			}
			cube := g.NextLit(i, bitOf(e.to, numVars, i))
			for v := 0; v < numVars; v++ {
				cube = cube.Intersect(g.Lit(v, bitOf(e.from, numVars, v)))
			}
			rel = rel.Union(cube)
		}
		return rel
	})
	require.NoError(t, err)
	return g
}

// stateSet returns the set holding exactly the given states, for all colors.
func stateSet(g *symbolic.Graph, numVars int, states ...uint) *symbolic.Set {
	res := g.Empty()
	for _, s := range states {
		cube := g.Unit()
		for v := 0; v < numVars; v++ {
			cube = cube.Intersect(g.Lit(v, bitOf(s, numVars, v)))
		}
		res = res.Union(cube)
	}
	return res
}

// requirePartition asserts that got and want contain the same sets, in any
// order.
func requirePartition(t *testing.T, got, want []*symbolic.Set) {
	t.Helper()
	require.Len(t, got, len(want))
	for _, w := range want {
		found := false
		for _, g := range got {
			if g.Equal(w) {
				found = true
				break
			}
		}
		require.True(t, found, "missing component %v", w)
	}
}
