package scc

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrim(t *testing.T) {
	// A chain feeding a two-cycle, with a dangling exit.
	g := graphFromEdges(t, 3, []edge{
		{0b000, 0b001}, {0b001, 0b011},
		{0b011, 0b111}, {0b111, 0b011},
		{0b111, 0b101},
	})
	ctx := context.Background()
	cycle := stateSet(g, 3, 0b011, 0b111)

	t.Run("none returns the universe untouched", func(t *testing.T) {
		got, err := Trim(ctx, g, TrimNone, g.Unit())
		require.NoError(t, err)
		assert.True(t, got.Equal(g.Unit()))
	})

	t.Run("both strips everything outside the cycle", func(t *testing.T) {
		got, err := Trim(ctx, g, TrimBoth, g.Unit())
		require.NoError(t, err)
		assert.True(t, got.Equal(cycle))
	})

	t.Run("sources keep sinks", func(t *testing.T) {
		got, err := Trim(ctx, g, TrimSources, g.Unit())
		require.NoError(t, err)
		// The entry chain is peeled but the exit state stays reachable.
		assert.True(t, cycle.IsSubset(got))
		assert.False(t, stateSet(g, 3, 0b000).IsSubset(got))
	})

	t.Run("sinks keep sources", func(t *testing.T) {
		got, err := Trim(ctx, g, TrimSinks, g.Unit())
		require.NoError(t, err)
		assert.True(t, cycle.IsSubset(got))
		assert.True(t, stateSet(g, 3, 0b000).IsSubset(got))
	})

	t.Run("idempotent", func(t *testing.T) {
		once, err := Trim(ctx, g, TrimBoth, g.Unit())
		require.NoError(t, err)
		twice, err := Trim(ctx, g, TrimBoth, once)
		require.NoError(t, err)
		assert.True(t, once.Equal(twice))
	})

	t.Run("self-loop has successor and predecessor", func(t *testing.T) {
		looped := graphFromEdges(t, 1, []edge{{0b1, 0b1}})
		got, err := Trim(ctx, looped, TrimBoth, looped.Unit())
		require.NoError(t, err)
		assert.True(t, got.Equal(stateSet(looped, 1, 0b1)))
	})

	t.Run("acyclic universe trims to empty", func(t *testing.T) {
		acyclic := graphFromEdges(t, 2, []edge{{0b00, 0b10}, {0b10, 0b11}})
		got, err := Trim(ctx, acyclic, TrimBoth, acyclic.Unit())
		require.NoError(t, err)
		assert.True(t, got.IsEmpty())
	})
}

func TestTrimCancellation(t *testing.T) {
	g := graphFromEdges(t, 3, []edge{
		{0b000, 0b001}, {0b001, 0b011}, {0b011, 0b111},
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Trim(ctx, g, TrimBoth, g.Unit())
	assert.ErrorIs(t, err, ErrCancelled)
}
