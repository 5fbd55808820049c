package scc

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReachStrategiesAgree(t *testing.T) {
	g := graphFromEdges(t, 3, []edge{
		{0b000, 0b010}, {0b001, 0b011},
		{0b010, 0b110}, {0b011, 0b111},
		{0b110, 0b111}, {0b111, 0b110},
	})
	seed := stateSet(g, 3, 0b000)
	ctx := context.Background()

	bySaturation, err := ForwardReach(ctx, g, Saturation, seed, g.Unit())
	require.NoError(t, err)
	byBFS, err := ForwardReach(ctx, g, BFS, seed, g.Unit())
	require.NoError(t, err)

	assert.True(t, bySaturation.Equal(byBFS))
	assert.True(t, bySaturation.Equal(stateSet(g, 3, 0b000, 0b010, 0b110, 0b111)))
}

func TestBackwardReach(t *testing.T) {
	g := graphFromEdges(t, 3, []edge{
		{0b000, 0b010}, {0b001, 0b011},
		{0b010, 0b110}, {0b011, 0b111},
		{0b110, 0b111}, {0b111, 0b110},
	})
	// Everything drains into the {110,111} cycle.
	basin, err := BackwardReach(context.Background(), g, Saturation, stateSet(g, 3, 0b110), g.Unit())
	require.NoError(t, err)
	assert.True(t, basin.Equal(stateSet(g, 3, 0b000, 0b001, 0b010, 0b011, 0b110, 0b111)))
}

func TestReachStaysInUniverse(t *testing.T) {
	g := graphFromEdges(t, 3, []edge{
		{0b000, 0b100}, {0b100, 0b110}, {0b110, 0b111},
	})
	within := stateSet(g, 3, 0b000, 0b100)
	got, err := ForwardReach(context.Background(), g, Saturation, stateSet(g, 3, 0b000), within)
	require.NoError(t, err)
	assert.True(t, got.Equal(within))
}

func TestReachSeedOutsideUniverse(t *testing.T) {
	g := graphFromEdges(t, 2, []edge{{0b00, 0b10}, {0b10, 0b00}})
	within := stateSet(g, 2, 0b01, 0b11)
	got, err := ForwardReach(context.Background(), g, Saturation, stateSet(g, 2, 0b00), within)
	require.NoError(t, err)
	assert.True(t, got.IsEmpty())
}

func TestReachCancellation(t *testing.T) {
	g := graphFromEdges(t, 3, []edge{
		{0b000, 0b100}, {0b100, 0b110}, {0b110, 0b111},
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := ForwardReach(ctx, g, Saturation, stateSet(g, 3, 0b000), g.Unit())
	assert.ErrorIs(t, err, ErrCancelled)
}
