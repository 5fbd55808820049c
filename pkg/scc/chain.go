package scc

import (
	"log/slog"

	"github.com/aretw0/symscc/pkg/symbolic"
)

// chain implements iterative chain decomposition. Instead of splitting each
// universe three ways, it computes the full backward basin of a pivot, then
// the component inside that basin, and requeues the two remainders together
// with pivot hints: frontier states adjacent to the found component, so the
// next pivot continues the same chain and the intermediate diagrams stay
// close to already-explored regions.
type chain struct {
	g       *symbolic.Graph
	cfg     Config
	log     *slog.Logger
	pending []chainItem
	cur     *chainInFlight
}

// chainItem is one queued universe with an optional pivot hint. An empty
// hint means the pivot is picked from the whole trimmed universe.
type chainItem struct {
	universe *symbolic.Set
	hint     *symbolic.Set
}

// chainInFlight carries the phases of the item currently being decomposed.
type chainInFlight struct {
	trim       *trimming
	universe   *symbolic.Set
	hint       *symbolic.Set
	pivot      *symbolic.Set
	basinReach *reachability
	basin      *symbolic.Set
	sccReach   *reachability
}

func newChain(g *symbolic.Graph, cfg Config, universe *symbolic.Set) *chain {
	a := &chain{g: g, cfg: cfg, log: cfg.log()}
	if !universe.IsEmpty() {
		a.pending = append(a.pending, chainItem{universe: universe, hint: g.Empty()})
	}
	return a
}

func (a *chain) step() (*symbolic.Set, bool, error) {
	if a.cur == nil {
		return a.popItem()
	}
	it := a.cur
	if it.trim != nil {
		return a.finishTrim(it)
	}
	if it.basinReach != nil {
		if !it.basinReach.step() {
			return nil, false, nil
		}
		it.basin = it.basinReach.result()
		it.basinReach = nil
		it.sccReach = newReachability(a.g, Forward, a.cfg.strategy, it.pivot, it.basin)
		return nil, false, nil
	}
	if !it.sccReach.step() {
		return nil, false, nil
	}
	return a.finishItem(it)
}

func (a *chain) popItem() (*symbolic.Set, bool, error) {
	if len(a.pending) == 0 {
		return nil, true, nil
	}
	// LIFO order keeps the walk on the chain started by the last component.
	last := len(a.pending) - 1
	item := a.pending[last]
	a.pending = a.pending[:last]

	universe := item.universe
	if a.cfg.longLived {
		// Pruning short-lived states early shrinks the universe before any
		// reachability runs; the final per-component filter still applies.
		universe = retainLongLived(a.g, universe)
		if universe.IsEmpty() {
			a.log.Debug("universe has no long-lived states", "pending", len(a.pending))
			return nil, false, nil
		}
	}
	a.log.Debug("processing universe", "pending", len(a.pending), "universe", universe)
	a.cur = &chainInFlight{
		trim:     newTrimming(a.g, a.cfg.trim, universe),
		universe: universe,
		hint:     item.hint,
	}
	return nil, false, nil
}

func (a *chain) finishTrim(it *chainInFlight) (*symbolic.Set, bool, error) {
	if !it.trim.step() {
		return nil, false, nil
	}
	trimmed := it.trim.result()
	it.trim = nil
	if trimmed.IsEmpty() {
		a.cur = nil
		return nil, false, nil
	}
	if a.cfg.longLived {
		// Trimming can expose fresh escape routes, so filter again.
		trimmed = retainLongLived(a.g, trimmed)
		if trimmed.IsEmpty() {
			a.cur = nil
			return nil, false, nil
		}
	}

	hint := it.hint.Intersect(trimmed)
	if hint.IsEmpty() {
		// The hinted frontier was trimmed away; follow the trimmed states'
		// successors back into the universe to stay on the chain.
		removed := it.universe.Minus(trimmed)
		for i := a.g.NumVars() - 1; i >= 0; i-- {
			h := a.g.VarPost(i, removed).Intersect(trimmed)
			if !h.IsEmpty() {
				hint = h
				break
			}
		}
	}
	it.universe = trimmed
	if hint.IsEmpty() {
		it.pivot = trimmed.PickVertex()
	} else {
		it.pivot = hint.PickVertex()
	}
	it.basinReach = newReachability(a.g, Backward, a.cfg.strategy, it.pivot, trimmed)
	return nil, false, nil
}

func (a *chain) finishItem(it *chainInFlight) (*symbolic.Set, bool, error) {
	scc := it.sccReach.result()

	restBasin := it.basin.Minus(scc)
	if !restBasin.IsEmpty() {
		hint := a.g.Empty()
		for i := a.g.NumVars() - 1; i >= 0; i-- {
			h := a.g.VarPreOut(i, scc).Intersect(restBasin)
			if !h.IsEmpty() {
				hint = h
				break
			}
		}
		a.pending = append(a.pending, chainItem{universe: restBasin, hint: hint})
	}

	restUniverse := it.universe.Minus(it.basin)
	if !restUniverse.IsEmpty() {
		hint := a.g.Empty()
		for i := a.g.NumVars() - 1; i >= 0; i-- {
			h := a.g.VarPostOut(i, scc).Intersect(restUniverse)
			if !h.IsEmpty() {
				hint = h
				break
			}
		}
		a.pending = append(a.pending, chainItem{universe: restUniverse, hint: hint})
	}
	a.cur = nil

	scc = nontrivial(a.g, scc)
	if scc.IsEmpty() {
		return nil, false, nil
	}
	return scc, false, nil
}
