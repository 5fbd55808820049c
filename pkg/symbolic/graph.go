package symbolic

import (
	"errors"
	"fmt"

	"github.com/dalzilio/rudd"

	"github.com/aretw0/symscc/pkg/model"
)

type config struct {
	nodeSize  int
	cacheSize int
	maxNodes  int
}

// Option configures the BDD backing a Graph.
type Option func(*config)

// WithInitialNodes sets the initial BDD node table size.
func WithInitialNodes(size int) Option {
	return func(c *config) { c.nodeSize = size }
}

// WithCacheSize sets the initial BDD operation cache size.
func WithCacheSize(size int) Option {
	return func(c *config) { c.cacheSize = size }
}

// WithMaxNodes caps the total number of BDD nodes. Once the cap is reached,
// Err reports a graph error instead of letting the computation exhaust
// memory. The cap is enforced by the Graph itself; rudd accepts a
// Maxnodesize but does not report exhaustion of a capped table.
func WithMaxNodes(limit int) Option {
	return func(c *config) { c.maxNodes = limit }
}

// Graph is a colored transition graph over a symbolic state space. It is
// read-only after construction and safe for use by any number of Sets; the
// underlying BDD is not synchronized, so concurrent readers need external
// coordination if the BDD implementation requires it.
type Graph struct {
	bdd        *rudd.BDD
	maxNodes   int
	names      []string
	paramNames []string
	n          int // state variables
	k          int // parameters (colors)

	rel   []rudd.Node // transition relation of variable i, over levels 2i and 2i+1
	cubeX []rudd.Node
	cubeY []rudd.Node
	toX   []rudd.Replacer // level 2i+1 -> 2i
	toY   []rudd.Replacer // level 2i -> 2i+1

	stateCube rudd.Node // all state and primed levels, for color projection

	selfLoops *Set // lazily computed, see SelfLoops

	err error
}

// NewGraph compiles a Boolean network into its asynchronous transition
// graph. Each network parameter becomes one color variable.
func NewGraph(net *model.Network, opts ...Option) (*Graph, error) {
	if err := net.Validate(); err != nil {
		return nil, fmt.Errorf("invalid network: %w", err)
	}
	g, err := newRawGraph(net.Variables(), net.Parameters(), opts)
	if err != nil {
		return nil, err
	}
	for i := 0; i < g.n; i++ {
		f, err := g.compile(net.Update(i))
		if err != nil {
			return nil, err
		}
		xi := g.bdd.Ithvar(2 * i)
		yi := g.bdd.Ithvar(2*i + 1)
		// Variable i fires exactly when its update disagrees with its value,
		// and the transition flips it: (y_i <=> f_i) & (y_i xor x_i).
		g.rel[i] = g.bdd.And(g.bdd.Equiv(yi, f), g.bdd.Apply(xi, yi, rudd.OPxor))
	}
	if err := g.Err(); err != nil {
		return nil, err
	}
	return g, nil
}

// NewTransitionSystem builds a graph from arbitrary per-variable transition
// relations instead of Boolean update functions. The builder must return,
// for each variable i, a relation set expressed with Lit, NextLit and
// ParamLit; self-transitions are allowed. This is mainly useful for tests
// and for models that are not plain Boolean networks.
func NewTransitionSystem(numVars, numParams int, relation func(g *Graph, i int) *Set, opts ...Option) (*Graph, error) {
	if numVars <= 0 {
		return nil, errors.New("transition system needs at least one variable")
	}
	names := make([]string, numVars)
	for i := range names {
		names[i] = fmt.Sprintf("x%d", i)
	}
	params := make([]string, numParams)
	for j := range params {
		params[j] = fmt.Sprintf("p%d", j)
	}
	g, err := newRawGraph(names, params, opts)
	if err != nil {
		return nil, err
	}
	for i := 0; i < numVars; i++ {
		rel := relation(g, i)
		if rel == nil || rel.g != g {
			return nil, fmt.Errorf("relation builder returned an invalid set for variable %d", i)
		}
		g.rel[i] = rel.node
	}
	if err := g.Err(); err != nil {
		return nil, err
	}
	return g, nil
}

func newRawGraph(names, params []string, opts []Option) (*Graph, error) {
	cfg := config{nodeSize: 10_000, cacheSize: 10_000}
	for _, opt := range opts {
		opt(&cfg)
	}

	n, k := len(names), len(params)
	var bdd *rudd.BDD
	var err error
	if cfg.maxNodes > 0 {
		bdd, err = rudd.New(2*n+k,
			rudd.Nodesize(cfg.nodeSize), rudd.Cachesize(cfg.cacheSize), rudd.Maxnodesize(cfg.maxNodes))
	} else {
		bdd, err = rudd.New(2*n+k,
			rudd.Nodesize(cfg.nodeSize), rudd.Cachesize(cfg.cacheSize))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to initialize BDD: %w", err)
	}

	g := &Graph{
		bdd:        bdd,
		maxNodes:   cfg.maxNodes,
		names:      append([]string(nil), names...),
		paramNames: append([]string(nil), params...),
		n:          n,
		k:          k,
		rel:        make([]rudd.Node, n),
		cubeX:      make([]rudd.Node, n),
		cubeY:      make([]rudd.Node, n),
		toX:        make([]rudd.Replacer, n),
		toY:        make([]rudd.Replacer, n),
	}

	stateLevels := make([]int, 0, 2*n)
	for i := 0; i < n; i++ {
		g.cubeX[i] = bdd.Makeset([]int{2 * i})
		g.cubeY[i] = bdd.Makeset([]int{2*i + 1})
		if g.toX[i], err = bdd.NewReplacer([]int{2*i + 1}, []int{2 * i}); err != nil {
			return nil, fmt.Errorf("failed to build replacer: %w", err)
		}
		if g.toY[i], err = bdd.NewReplacer([]int{2 * i}, []int{2*i + 1}); err != nil {
			return nil, fmt.Errorf("failed to build replacer: %w", err)
		}
		stateLevels = append(stateLevels, 2*i, 2*i+1)
	}
	g.stateCube = bdd.Makeset(stateLevels)
	return g, nil
}

func (g *Graph) compile(e model.Expr) (rudd.Node, error) {
	switch x := e.(type) {
	case model.Ident:
		for i, name := range g.names {
			if name == x.Name {
				return g.bdd.Ithvar(2 * i), nil
			}
		}
		for j, name := range g.paramNames {
			if name == x.Name {
				return g.bdd.Ithvar(2*g.n + j), nil
			}
		}
		return nil, fmt.Errorf("unknown identifier %q", x.Name)
	case model.Const:
		return g.bdd.From(x.Value), nil
	case model.Not:
		inner, err := g.compile(x.Inner)
		if err != nil {
			return nil, err
		}
		return g.bdd.Not(inner), nil
	case model.Bin:
		left, err := g.compile(x.Left)
		if err != nil {
			return nil, err
		}
		right, err := g.compile(x.Right)
		if err != nil {
			return nil, err
		}
		var op rudd.Operator
		switch x.Op {
		case model.OpAnd:
			op = rudd.OPand
		case model.OpOr:
			op = rudd.OPor
		case model.OpXor:
			op = rudd.OPxor
		case model.OpImp:
			op = rudd.OPimp
		case model.OpIff:
			op = rudd.OPbiimp
		default:
			return nil, fmt.Errorf("unsupported operator %v", x.Op)
		}
		return g.bdd.Apply(left, right, op), nil
	}
	return nil, fmt.Errorf("unsupported expression %T", e)
}

// NumVars returns the number of state variables.
func (g *Graph) NumVars() int { return g.n }

// NumParams returns the number of parameters (color variables).
func (g *Graph) NumParams() int { return g.k }

// VariableNames returns the state variable names in index order.
func (g *Graph) VariableNames() []string {
	return append([]string(nil), g.names...)
}

// VariableIndex returns the index of the named state variable, or -1.
func (g *Graph) VariableIndex(name string) int {
	for i, n := range g.names {
		if n == name {
			return i
		}
	}
	return -1
}

// Err reports the sticky error state of the graph. Once an error is
// observed (for example, the node cap was hit), all derived sets are suspect
// and the graph should be discarded.
func (g *Graph) Err() error {
	if g.err != nil {
		return g.err
	}
	if msg := g.bdd.Error(); msg != "" {
		g.err = errors.New(msg)
		return g.err
	}
	if g.maxNodes > 0 && g.nodeCount() >= g.maxNodes {
		g.err = fmt.Errorf("BDD reached the configured cap of %d nodes", g.maxNodes)
	}
	return g.err
}

// nodeCount counts the allocated nodes of the backing BDD. rudd silently
// keeps running when a capped table fills up, so the cap is checked here
// instead of relying on the BDD's own error state.
func (g *Graph) nodeCount() int {
	count := 0
	_ = g.bdd.Allnodes(func(id, level, low, high int) error {
		count++
		return nil
	})
	return count
}

func (g *Graph) wrap(n rudd.Node) *Set {
	return &Set{g: g, node: n}
}

// Unit returns the full state×color space.
func (g *Graph) Unit() *Set { return g.wrap(g.bdd.True()) }

// Empty returns the empty set.
func (g *Graph) Empty() *Set { return g.wrap(g.bdd.False()) }

// Lit returns the set of vertices where state variable i has the given
// value.
func (g *Graph) Lit(i int, value bool) *Set {
	if value {
		return g.wrap(g.bdd.Ithvar(2 * i))
	}
	return g.wrap(g.bdd.NIthvar(2 * i))
}

// NextLit returns the primed ("next value") literal of state variable i.
// It only makes sense inside relation sets passed to NewTransitionSystem.
func (g *Graph) NextLit(i int, value bool) *Set {
	if value {
		return g.wrap(g.bdd.Ithvar(2*i + 1))
	}
	return g.wrap(g.bdd.NIthvar(2*i + 1))
}

// ParamLit returns the set of colors where parameter j has the given value.
func (g *Graph) ParamLit(j int, value bool) *Set {
	if value {
		return g.wrap(g.bdd.Ithvar(2*g.n + j))
	}
	return g.wrap(g.bdd.NIthvar(2*g.n + j))
}

// VarPost returns the states reachable from s by updating variable i once.
func (g *Graph) VarPost(i int, s *Set) *Set {
	step := g.bdd.AppEx(s.node, g.rel[i], rudd.OPand, g.cubeX[i])
	return g.wrap(g.bdd.Replace(step, g.toX[i]))
}

// VarPre returns the states that reach s by updating variable i once.
func (g *Graph) VarPre(i int, s *Set) *Set {
	shifted := g.bdd.Replace(s.node, g.toY[i])
	return g.wrap(g.bdd.AppEx(shifted, g.rel[i], rudd.OPand, g.cubeY[i]))
}

// VarPostOut returns the variable-i successors of s that lie outside s.
func (g *Graph) VarPostOut(i int, s *Set) *Set {
	return g.VarPost(i, s).Minus(s)
}

// VarPreOut returns the variable-i predecessors of s that lie outside s.
func (g *Graph) VarPreOut(i int, s *Set) *Set {
	return g.VarPre(i, s).Minus(s)
}

// VarCanPostWithin returns the states of s whose variable-i successor is
// again in s.
func (g *Graph) VarCanPostWithin(i int, s *Set) *Set {
	return s.Intersect(g.VarPre(i, s))
}

// VarCanPreWithin returns the states of s that have a variable-i predecessor
// in s.
func (g *Graph) VarCanPreWithin(i int, s *Set) *Set {
	return s.Intersect(g.VarPost(i, s))
}

// VarCanPostOut returns the states of s that can leave s by updating
// variable i.
func (g *Graph) VarCanPostOut(i int, s *Set) *Set {
	return s.Intersect(g.VarPre(i, g.Unit().Minus(s)))
}

// Post returns the one-step successors of s under every variable.
func (g *Graph) Post(s *Set) *Set {
	res := g.Empty()
	for i := 0; i < g.n; i++ {
		res = res.Union(g.VarPost(i, s))
	}
	return res
}

// Pre returns the one-step predecessors of s under every variable.
func (g *Graph) Pre(s *Set) *Set {
	res := g.Empty()
	for i := 0; i < g.n; i++ {
		res = res.Union(g.VarPre(i, s))
	}
	return res
}

// SelfLoops returns the states that have a transition to themselves. For
// graphs compiled from a Boolean network this is always empty (a transition
// must flip its variable); transition systems may contain them.
func (g *Graph) SelfLoops() *Set {
	if g.selfLoops != nil {
		return g.selfLoops
	}
	res := g.Empty()
	for i := 0; i < g.n; i++ {
		same := g.bdd.Equiv(g.bdd.Ithvar(2*i), g.bdd.Ithvar(2*i+1))
		loop := g.bdd.AppEx(g.rel[i], same, rudd.OPand, g.cubeY[i])
		res = res.Union(g.wrap(loop))
	}
	g.selfLoops = res
	return res
}
