package scc

import (
	"github.com/aretw0/symscc/pkg/symbolic"
)

// retainLongLived keeps the set only for colors under which no single
// variable update can leave it. The filter is per color and all-or-nothing:
// if any state of the set can escape under some color, the whole set is
// dropped for that color.
func retainLongLived(g *symbolic.Graph, set *symbolic.Set) *symbolic.Set {
	if set.IsEmpty() {
		return set
	}
	for i := 0; i < g.NumVars(); i++ {
		// Shortcut: if one variable lets every state escape, no color of the
		// set can be long-lived.
		if g.VarCanPostOut(i, set).Equal(set) {
			return g.Empty()
		}
	}
	safe := set.Colors()
	for i := 0; i < g.NumVars(); i++ {
		stays := set.Minus(g.VarCanPostOut(i, set))
		safe = safe.Intersect(stays.Colors())
		if safe.IsEmpty() {
			return g.Empty()
		}
	}
	return set.IntersectColors(safe)
}

// RetainLongLived exposes the long-lived filter for callers that want to
// prune an arbitrary set without running a full decomposition.
func RetainLongLived(g *symbolic.Graph, set *symbolic.Set) *symbolic.Set {
	return retainLongLived(g, set)
}
