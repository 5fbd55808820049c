package scc

import (
	"context"

	"github.com/aretw0/symscc/pkg/symbolic"
)

// Direction selects whether a reachability computation follows transitions
// forwards or backwards.
type Direction int

const (
	Forward Direction = iota
	Backward
)

func (d Direction) String() string {
	if d == Backward {
		return "backward"
	}
	return "forward"
}

// ParseDirection converts a flag value into a Direction.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "forward", "fwd":
		return Forward, nil
	case "backward", "bwd":
		return Backward, nil
	}
	return 0, &ConfigError{Option: "direction", Reason: "unknown value " + s}
}

// reachability is a resumable reachability fixpoint restricted to a
// universe. Each call to step performs one bounded unit of work.
type reachability struct {
	g        *symbolic.Graph
	dir      Direction
	strategy Strategy
	within   *symbolic.Set
	set      *symbolic.Set
	done     bool
}

func newReachability(g *symbolic.Graph, dir Direction, strategy Strategy, seed, within *symbolic.Set) *reachability {
	return &reachability{
		g:        g,
		dir:      dir,
		strategy: strategy,
		within:   within,
		set:      seed.Intersect(within),
	}
}

func (r *reachability) varImage(i int, s *symbolic.Set) *symbolic.Set {
	if r.dir == Backward {
		return r.g.VarPre(i, s)
	}
	return r.g.VarPost(i, s)
}

// step advances the fixpoint by one micro-step and reports whether it is
// complete. Under saturation a step is one scan for a variable with a
// non-empty frontier; under BFS it is one full image layer.
func (r *reachability) step() bool {
	if r.done {
		return true
	}
	switch r.strategy {
	case BFS:
		layer := r.g.Empty()
		for i := r.g.NumVars() - 1; i >= 0; i-- {
			layer = layer.Union(r.varImage(i, r.set))
		}
		layer = layer.Intersect(r.within).Minus(r.set)
		if layer.IsEmpty() {
			r.done = true
		} else {
			r.set = r.set.Union(layer)
		}
	default:
		for i := r.g.NumVars() - 1; i >= 0; i-- {
			frontier := r.varImage(i, r.set).Intersect(r.within).Minus(r.set)
			if !frontier.IsEmpty() {
				r.set = r.set.Union(frontier)
				return false
			}
		}
		r.done = true
	}
	return r.done
}

func (r *reachability) result() *symbolic.Set { return r.set }

// Reach computes the set of states reachable from seed inside within,
// following transitions in the given direction. It honors cancellation
// between micro-steps.
func Reach(ctx context.Context, g *symbolic.Graph, dir Direction, strategy Strategy, seed, within *symbolic.Set) (*symbolic.Set, error) {
	if within == nil {
		within = g.Unit()
	}
	r := newReachability(g, dir, strategy, seed, within)
	for !r.step() {
		if ctx.Err() != nil {
			return nil, ErrCancelled
		}
	}
	if err := g.Err(); err != nil {
		return nil, &GraphError{Op: "reachability", Err: err}
	}
	return r.result(), nil
}

// ForwardReach computes the forward reachable set of seed inside within.
func ForwardReach(ctx context.Context, g *symbolic.Graph, strategy Strategy, seed, within *symbolic.Set) (*symbolic.Set, error) {
	return Reach(ctx, g, Forward, strategy, seed, within)
}

// BackwardReach computes the backward reachable set of seed inside within.
func BackwardReach(ctx context.Context, g *symbolic.Graph, strategy Strategy, seed, within *symbolic.Set) (*symbolic.Set, error) {
	return Reach(ctx, g, Backward, strategy, seed, within)
}
