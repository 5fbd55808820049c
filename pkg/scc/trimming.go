package scc

import (
	"context"
	"fmt"

	"github.com/aretw0/symscc/pkg/symbolic"
)

// TrimMode selects which trivial states trimming removes before each pivot
// selection.
type TrimMode int

const (
	// TrimNone disables trimming.
	TrimNone TrimMode = iota
	// TrimSinks removes states with no successor inside the universe.
	TrimSinks
	// TrimSources removes states with no predecessor inside the universe.
	TrimSources
	// TrimBoth removes sources first, falling back to sinks once no source
	// remains, until neither pass removes anything.
	TrimBoth
)

func (m TrimMode) String() string {
	switch m {
	case TrimNone:
		return "none"
	case TrimSinks:
		return "sinks"
	case TrimSources:
		return "sources"
	case TrimBoth:
		return "both"
	}
	return fmt.Sprintf("trim(%d)", int(m))
}

// ParseTrimMode converts a flag value into a TrimMode.
func ParseTrimMode(s string) (TrimMode, error) {
	switch s {
	case "none":
		return TrimNone, nil
	case "sinks":
		return TrimSinks, nil
	case "sources":
		return TrimSources, nil
	case "both":
		return TrimBoth, nil
	}
	return 0, &ConfigError{Option: "trim", Reason: fmt.Sprintf("unknown value %q", s)}
}

// trimming is a resumable removal of relative sinks and sources from a
// universe. A state in no cycle cannot lie in a non-trivial component, so
// peeling such states shrinks the search space without changing the result.
type trimming struct {
	g    *symbolic.Graph
	mode TrimMode
	set  *symbolic.Set
	done bool
}

func newTrimming(g *symbolic.Graph, mode TrimMode, universe *symbolic.Set) *trimming {
	return &trimming{g: g, mode: mode, set: universe, done: mode == TrimNone}
}

// relativeSources returns the states of the current set that no transition
// inside the set can reach.
func (t *trimming) relativeSources() *symbolic.Set {
	reached := t.g.Empty()
	for i := 0; i < t.g.NumVars(); i++ {
		reached = reached.Union(t.g.VarCanPreWithin(i, t.set))
	}
	return t.set.Minus(reached)
}

// relativeSinks returns the states of the current set with no successor
// inside the set.
func (t *trimming) relativeSinks() *symbolic.Set {
	canStep := t.g.Empty()
	for i := 0; i < t.g.NumVars(); i++ {
		canStep = canStep.Union(t.g.VarCanPostWithin(i, t.set))
	}
	return t.set.Minus(canStep)
}

func (t *trimming) removable() *symbolic.Set {
	if t.mode == TrimSources || t.mode == TrimBoth {
		if rem := t.relativeSources(); !rem.IsEmpty() {
			return rem
		}
	}
	if t.mode == TrimSinks || t.mode == TrimBoth {
		return t.relativeSinks()
	}
	return t.g.Empty()
}

// step performs one removal pass and reports whether the fixpoint is
// reached.
func (t *trimming) step() bool {
	if t.done {
		return true
	}
	rem := t.removable()
	if rem.IsEmpty() {
		t.done = true
	} else {
		t.set = t.set.Minus(rem)
	}
	return t.done
}

func (t *trimming) result() *symbolic.Set { return t.set }

// Trim removes relative sinks and sources from universe until a fixed
// point, per the given mode. It honors cancellation between passes.
func Trim(ctx context.Context, g *symbolic.Graph, mode TrimMode, universe *symbolic.Set) (*symbolic.Set, error) {
	t := newTrimming(g, mode, universe)
	for !t.step() {
		if ctx.Err() != nil {
			return nil, ErrCancelled
		}
	}
	if err := g.Err(); err != nil {
		return nil, &GraphError{Op: "trimming", Err: err}
	}
	return t.result(), nil
}
