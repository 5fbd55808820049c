package symbolic

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/symscc/pkg/model"
)

// oscillator is the two-variable network a <- !b, b <- a, whose asynchronous
// transition graph is the four-cycle 00 -> 10 -> 11 -> 01 -> 00.
func oscillator(t *testing.T) *Graph {
	t.Helper()
	net, err := model.ParseBNet(strings.NewReader("a, !b\nb, a\n"))
	require.NoError(t, err)
	g, err := NewGraph(net)
	require.NoError(t, err)
	return g
}

// state returns the singleton set for the given variable values.
func state(g *Graph, values ...bool) *Set {
	s := g.Unit()
	for i, v := range values {
		s = s.Intersect(g.Lit(i, v))
	}
	return s
}

func TestNewGraph(t *testing.T) {
	t.Run("dimensions", func(t *testing.T) {
		g := oscillator(t)
		assert.Equal(t, 2, g.NumVars())
		assert.Equal(t, 0, g.NumParams())
		assert.Equal(t, []string{"a", "b"}, g.VariableNames())
		assert.Equal(t, 1, g.VariableIndex("b"))
		assert.Equal(t, -1, g.VariableIndex("c"))
	})

	t.Run("rejects incomplete networks", func(t *testing.T) {
		net, err := model.NewNetwork([]string{"a"})
		require.NoError(t, err)
		_, err = NewGraph(net)
		assert.Error(t, err)
	})

	t.Run("parameters become colors", func(t *testing.T) {
		net, err := model.ParseBNet(strings.NewReader("a, p | !a\n"))
		require.NoError(t, err)
		g, err := NewGraph(net)
		require.NoError(t, err)
		assert.Equal(t, 1, g.NumParams())
		assert.Equal(t, int64(2), g.Unit().CountColors().Int64())
	})
}

func TestVarImages(t *testing.T) {
	g := oscillator(t)
	s00 := state(g, false, false)
	s10 := state(g, true, false)
	s11 := state(g, true, true)

	t.Run("post follows one update", func(t *testing.T) {
		// From 00 only a can fire (target !b = 1).
		assert.True(t, g.VarPost(0, s00).Equal(s10))
		assert.True(t, g.VarPost(1, s00).IsEmpty())
	})

	t.Run("pre inverts post", func(t *testing.T) {
		assert.True(t, g.VarPre(0, s10).Equal(s00))
		assert.True(t, g.VarPre(1, s11).Equal(s10))
	})

	t.Run("full step", func(t *testing.T) {
		assert.True(t, g.Post(s00).Equal(s10))
		assert.True(t, g.Pre(s10).Equal(s00))
	})

	t.Run("out variants exclude the set", func(t *testing.T) {
		both := s00.Union(s10)
		assert.True(t, g.VarPostOut(0, both).IsEmpty())
		assert.True(t, g.VarPostOut(1, both).Equal(s11))
	})

	t.Run("within variants stay in the set", func(t *testing.T) {
		both := s00.Union(s10)
		assert.True(t, g.VarCanPostWithin(0, both).Equal(s00))
		assert.True(t, g.VarCanPreWithin(0, both).Equal(s10))
		assert.True(t, g.VarCanPostOut(1, both).Equal(s10))
	})
}

func TestSetAlgebra(t *testing.T) {
	g := oscillator(t)
	s00 := state(g, false, false)
	s10 := state(g, true, false)

	t.Run("cardinality", func(t *testing.T) {
		assert.Equal(t, int64(4), g.Unit().Cardinality().Int64())
		assert.Equal(t, int64(1), s00.Cardinality().Int64())
		assert.Equal(t, int64(2), s00.Union(s10).Cardinality().Int64())
		assert.Equal(t, int64(0), g.Empty().Cardinality().Int64())
	})

	t.Run("subset and equality", func(t *testing.T) {
		assert.True(t, s00.IsSubset(g.Unit()))
		assert.False(t, g.Unit().IsSubset(s00))
		assert.True(t, s00.Union(s10).Minus(s10).Equal(s00))
	})

	t.Run("empty checks", func(t *testing.T) {
		assert.True(t, g.Empty().IsEmpty())
		assert.False(t, g.Unit().IsEmpty())
		assert.True(t, s00.Intersect(s10).IsEmpty())
	})

	t.Run("mixing graphs panics", func(t *testing.T) {
		other := oscillator(t)
		assert.Panics(t, func() { s00.Union(other.Unit()) })
	})
}

func TestPickVertex(t *testing.T) {
	g := oscillator(t)

	t.Run("picks one vertex", func(t *testing.T) {
		picked := g.Unit().PickVertex()
		assert.Equal(t, int64(1), picked.Cardinality().Int64())
		assert.True(t, picked.IsSubset(g.Unit()))
	})

	t.Run("empty set yields nothing", func(t *testing.T) {
		assert.True(t, g.Empty().PickVertex().IsEmpty())
	})

	t.Run("deterministic", func(t *testing.T) {
		s := state(g, true, false).Union(state(g, true, true))
		assert.True(t, s.PickVertex().Equal(s.PickVertex()))
	})

	t.Run("one vertex per color", func(t *testing.T) {
		net, err := model.ParseBNet(strings.NewReader("a, p | !a\n"))
		require.NoError(t, err)
		pg, err := NewGraph(net)
		require.NoError(t, err)
		picked := pg.Unit().PickVertex()
		assert.Equal(t, int64(2), picked.Cardinality().Int64())
		assert.Equal(t, int64(2), picked.CountColors().Int64())
	})
}

func TestSelfLoops(t *testing.T) {
	t.Run("boolean networks have none", func(t *testing.T) {
		g := oscillator(t)
		assert.True(t, g.SelfLoops().IsEmpty())
	})

	t.Run("transition systems may have them", func(t *testing.T) {
		g, err := NewTransitionSystem(1, 0, func(g *Graph, i int) *Set {
			return g.Lit(0, true).Intersect(g.NextLit(0, true))
		})
		require.NoError(t, err)
		assert.True(t, g.SelfLoops().Equal(g.Lit(0, true)))
	})
}

func TestWithMaxNodes(t *testing.T) {
	// A graph without transitions needs only a handful of nodes, so the cap
	// is breached by set construction alone.
	capped := func(t *testing.T) *Graph {
		t.Helper()
		g, err := NewTransitionSystem(3, 0, func(g *Graph, i int) *Set {
			return g.Empty()
		}, WithMaxNodes(64))
		require.NoError(t, err)
		return g
	}

	// exhaust builds every minterm over the state and primed levels, which
	// allocates well over a hundred distinct nodes.
	exhaust := func(g *Graph) {
		for s := 0; s < 64; s++ {
			set := g.Unit()
			for i := 0; i < 3; i++ {
				set = set.Intersect(g.Lit(i, s&(1<<i) != 0))
				set = set.Intersect(g.NextLit(i, s&(8<<i) != 0))
			}
		}
	}

	t.Run("fresh graph reports no error", func(t *testing.T) {
		g := capped(t)
		assert.NoError(t, g.Err())
	})

	t.Run("breaching the cap surfaces an error", func(t *testing.T) {
		g := capped(t)
		exhaust(g)
		assert.Error(t, g.Err())
	})

	t.Run("the error is sticky", func(t *testing.T) {
		g := capped(t)
		exhaust(g)
		first := g.Err()
		require.Error(t, first)
		assert.Equal(t, first, g.Err())
	})

	t.Run("cap below the variable nodes fails construction", func(t *testing.T) {
		_, err := NewTransitionSystem(3, 0, func(g *Graph, i int) *Set {
			return g.Empty()
		}, WithMaxNodes(4))
		assert.Error(t, err)
	})
}

func TestColors(t *testing.T) {
	net, err := model.ParseBNet(strings.NewReader("a, (p & a) | (!p & !a)\n"))
	require.NoError(t, err)
	g, err := NewGraph(net)
	require.NoError(t, err)

	// Under !p the single variable oscillates; under p nothing moves.
	moving := g.Pre(g.Unit())
	assert.True(t, moving.Colors().Equal(g.ParamLit(0, false)))
	assert.Equal(t, int64(1), moving.CountColors().Int64())

	t.Run("intersect colors", func(t *testing.T) {
		onlyP := g.Unit().IntersectColors(g.ParamLit(0, true))
		assert.Equal(t, int64(2), onlyP.Cardinality().Int64())
		assert.Equal(t, int64(1), onlyP.CountColors().Int64())
	})
}
