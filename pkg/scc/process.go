package scc

import (
	"context"
	"fmt"

	"github.com/aretw0/symscc/pkg/symbolic"
)

// Status describes the lifecycle state of a Process.
type Status int

const (
	StatusRunning Status = iota
	StatusDone
	StatusCancelled
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusRunning:
		return "running"
	case StatusDone:
		return "done"
	case StatusCancelled:
		return "cancelled"
	case StatusFailed:
		return "failed"
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// stepper advances an algorithm by one bounded micro-step. A step may
// produce a finished result set, signal completion, or fail. Returning a
// nil set means the step made internal progress only.
type stepper interface {
	step() (out *symbolic.Set, done bool, err error)
}

// Process is a resumable, cancellable symbolic computation producing a lazy
// sequence of result sets. It is single-owner: methods must not be called
// concurrently. Once the status leaves StatusRunning it never changes
// again.
type Process struct {
	graph   *symbolic.Graph
	cfg     Config
	algo    stepper
	status  Status
	err     error
	emitted int
}

// NewProcess builds an SCC decomposition process over the graph per the
// configuration. No work happens until Next is called.
func NewProcess(g *symbolic.Graph, cfg Config) (*Process, error) {
	universe, err := processUniverse(g, cfg)
	if err != nil {
		return nil, err
	}
	var algo stepper
	switch cfg.algorithm {
	case FwdBwd:
		algo = newFwdBwd(g, cfg, universe, cfg.strategy)
	case FwdBwdBFS:
		algo = newFwdBwd(g, cfg, universe, BFS)
	case Chain:
		algo = newChain(g, cfg, universe)
	default:
		return nil, &ConfigError{Option: "algorithm", Reason: fmt.Sprintf("unknown value %d", int(cfg.algorithm))}
	}
	return &Process{graph: g, cfg: cfg, algo: algo, status: StatusRunning}, nil
}

// NewReachabilityProcess builds a process that computes the set of states
// reachable from seed in the given direction, restricted to the configured
// universe. The sequence yields exactly one set.
func NewReachabilityProcess(g *symbolic.Graph, cfg Config, dir Direction, seed *symbolic.Set) (*Process, error) {
	if seed == nil {
		return nil, &ConfigError{Option: "seed", Reason: "must not be nil"}
	}
	if seed.Graph() != g {
		return nil, &ConfigError{Option: "seed", Reason: "belongs to a different graph"}
	}
	universe, err := processUniverse(g, cfg)
	if err != nil {
		return nil, err
	}
	algo := &reachStepper{r: newReachability(g, dir, cfg.strategy, seed, universe)}
	return &Process{graph: g, cfg: cfg, algo: algo, status: StatusRunning}, nil
}

func processUniverse(g *symbolic.Graph, cfg Config) (*symbolic.Set, error) {
	if g == nil {
		return nil, &ConfigError{Option: "graph", Reason: "must not be nil"}
	}
	if cfg.universe == nil {
		return g.Unit(), nil
	}
	if cfg.universe.Graph() != g {
		return nil, &ConfigError{Option: "universe", Reason: "belongs to a different graph"}
	}
	return cfg.universe, nil
}

// Status returns the current lifecycle state.
func (p *Process) Status() Status { return p.status }

// Emitted returns how many result sets the process has produced so far.
func (p *Process) Emitted() int { return p.emitted }

// Err returns the terminal error of a cancelled or failed process, nil
// otherwise.
func (p *Process) Err() error { return p.err }

// Next advances the computation until the next result set is available and
// returns it. A (nil, nil) return means the sequence is exhausted. The
// context is consulted between micro-steps only, so every returned set is a
// complete, verified result even if cancellation follows immediately.
// After cancellation or failure the process stays terminal and Next keeps
// returning the same error.
func (p *Process) Next(ctx context.Context) (*symbolic.Set, error) {
	switch p.status {
	case StatusDone:
		return nil, nil
	case StatusCancelled, StatusFailed:
		return nil, p.err
	}
	log := p.cfg.log()
	for {
		if ctx.Err() != nil {
			p.status = StatusCancelled
			p.err = ErrCancelled
			log.Debug("computation cancelled", "emitted", p.emitted)
			return nil, p.err
		}
		out, done, err := p.algo.step()
		if err == nil {
			if gerr := p.graph.Err(); gerr != nil {
				err = &GraphError{Op: "step", Err: gerr}
			}
		}
		if err != nil {
			p.status = StatusFailed
			p.err = err
			log.Error("computation failed", "error", err)
			return nil, p.err
		}
		if done {
			p.status = StatusDone
			log.Debug("computation finished", "emitted", p.emitted)
			return nil, nil
		}
		if out == nil {
			continue
		}
		if p.cfg.longLived {
			out = retainLongLived(p.graph, out)
			if out.IsEmpty() {
				continue
			}
		}
		p.emitted++
		log.Info("result produced", "index", p.emitted, "set", out)
		if p.cfg.limit > 0 && p.emitted >= p.cfg.limit {
			p.status = StatusDone
			log.Debug("result limit reached", "limit", p.cfg.limit)
		}
		return out, nil
	}
}

// Run drains the sequence and returns every result set. On cancellation or
// failure it returns the sets produced so far together with the error.
func (p *Process) Run(ctx context.Context) ([]*symbolic.Set, error) {
	var results []*symbolic.Set
	for {
		out, err := p.Next(ctx)
		if err != nil {
			return results, err
		}
		if out == nil {
			return results, nil
		}
		results = append(results, out)
	}
}

// reachStepper adapts a reachability fixpoint to the stepper interface,
// emitting the fixpoint once and finishing on the following step.
type reachStepper struct {
	r       *reachability
	emitted bool
}

func (s *reachStepper) step() (*symbolic.Set, bool, error) {
	if s.emitted {
		return nil, true, nil
	}
	if s.r.step() {
		s.emitted = true
		return s.r.result(), false, nil
	}
	return nil, false, nil
}

// nontrivial keeps the component only for colors where it has more than one
// vertex, or a single vertex with a transition to itself.
func nontrivial(g *symbolic.Graph, scc *symbolic.Set) *symbolic.Set {
	if scc.IsEmpty() {
		return scc
	}
	multi := scc.Minus(scc.PickVertex()).Colors()
	looped := scc.Intersect(g.SelfLoops()).Colors()
	return scc.IntersectColors(multi.Union(looped))
}
