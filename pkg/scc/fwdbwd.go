package scc

import (
	"log/slog"
	"sort"

	"github.com/aretw0/symscc/pkg/symbolic"
)

// fwdBwd implements forward-backward SCC partitioning. Each pending
// universe is trimmed, a pivot is picked per color, and the forward and
// backward reachable sets of the pivot are interleaved; their intersection
// is one component, and the three remainders become new pending universes.
type fwdBwd struct {
	g        *symbolic.Graph
	cfg      Config
	strategy Strategy
	log      *slog.Logger
	pending  []*symbolic.Set
	cur      *fwdBwdItem
}

// fwdBwdItem carries the in-flight phases for one pending universe.
type fwdBwdItem struct {
	trim     *trimming
	universe *symbolic.Set
	fwd, bwd *reachability
}

func newFwdBwd(g *symbolic.Graph, cfg Config, universe *symbolic.Set, strategy Strategy) *fwdBwd {
	a := &fwdBwd{g: g, cfg: cfg, strategy: strategy, log: cfg.log()}
	if !universe.IsEmpty() {
		a.pending = append(a.pending, universe)
	}
	return a
}

func (a *fwdBwd) step() (*symbolic.Set, bool, error) {
	if a.cur == nil {
		if len(a.pending) == 0 {
			return nil, true, nil
		}
		// Process symbolically small universes first; they finish fast and
		// keep the worklist from accumulating huge diagrams.
		sort.Slice(a.pending, func(i, j int) bool {
			return a.pending[i].NodeCount() > a.pending[j].NodeCount()
		})
		last := len(a.pending) - 1
		todo := a.pending[last]
		a.pending = a.pending[:last]
		if a.cfg.longLived {
			// Pruning short-lived states early shrinks the universe before
			// any reachability runs; the final per-component filter still
			// applies.
			todo = retainLongLived(a.g, todo)
			if todo.IsEmpty() {
				a.log.Debug("universe has no long-lived states", "pending", len(a.pending))
				return nil, false, nil
			}
		}
		a.log.Debug("processing universe", "pending", len(a.pending), "universe", todo)
		a.cur = &fwdBwdItem{trim: newTrimming(a.g, a.cfg.trim, todo), universe: todo}
		return nil, false, nil
	}

	it := a.cur
	if it.trim != nil {
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
		it.universe = trimmed
		pivot := trimmed.PickVertex()
		it.bwd = newReachability(a.g, Backward, a.strategy, pivot, trimmed)
		it.fwd = newReachability(a.g, Forward, a.strategy, pivot, trimmed)
		return nil, false, nil
	}
	if !it.bwd.done {
		it.bwd.step()
		return nil, false, nil
	}
	if !it.fwd.done {
		it.fwd.step()
		return nil, false, nil
	}

	fwd, bwd := it.fwd.result(), it.bwd.result()
	scc := fwd.Intersect(bwd)
	for _, rest := range []*symbolic.Set{
		bwd.Minus(fwd),
		fwd.Minus(bwd),
		it.universe.Minus(fwd).Minus(bwd),
	} {
		if !rest.IsEmpty() {
			a.pending = append(a.pending, rest)
		}
	}
	a.cur = nil

	scc = nontrivial(a.g, scc)
	if scc.IsEmpty() {
		return nil, false, nil
	}
	return scc, false, nil
}
