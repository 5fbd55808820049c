package symscc

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/aretw0/symscc/internal/logging"
	"github.com/aretw0/symscc/pkg/model"
	"github.com/aretw0/symscc/pkg/scc"
	"github.com/aretw0/symscc/pkg/symbolic"
)

// Version is the current release of the module.
var Version = "0.1.0"

// Engine is the high-level entry point for the library. It wraps a compiled
// symbolic transition graph and provides a simplified API for consumers;
// the pkg/... packages expose the full surface.
type Engine struct {
	graph     *symbolic.Graph
	logger    *slog.Logger
	graphOpts []symbolic.Option
	Name      string
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithGraphOptions forwards options to the underlying BDD, such as
// symbolic.WithMaxNodes.
func WithGraphOptions(opts ...symbolic.Option) Option {
	return func(e *Engine) {
		e.graphOpts = append(e.graphOpts, opts...)
	}
}

// New loads a Boolean network model from a file (".bnet" line format or
// YAML) and compiles it into its asynchronous symbolic transition graph.
func New(modelPath string, opts ...Option) (*Engine, error) {
	net, err := model.FromFile(modelPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load model: %w", err)
	}
	eng, err := FromNetwork(net, opts...)
	if err != nil {
		return nil, err
	}
	eng.Name = filepath.Base(modelPath)
	return eng, nil
}

// FromNetwork compiles an in-memory network built with pkg/model.
func FromNetwork(net *model.Network, opts ...Option) (*Engine, error) {
	eng := &Engine{}
	for _, opt := range opts {
		opt(eng)
	}
	if eng.logger == nil {
		eng.logger = logging.NewNop()
	}
	g, err := symbolic.NewGraph(net, eng.graphOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to compile model: %w", err)
	}
	eng.graph = g
	return eng, nil
}

// Graph returns the underlying symbolic transition graph.
func (e *Engine) Graph() *symbolic.Graph {
	return e.graph
}

// Components runs an SCC decomposition to completion and returns every
// non-trivial component. Configuration options are forwarded to the
// computation; the engine's logger applies unless overridden.
func (e *Engine) Components(ctx context.Context, opts ...scc.ConfigOption) ([]*symbolic.Set, error) {
	proc, err := e.ComponentProcess(opts...)
	if err != nil {
		return nil, err
	}
	return proc.Run(ctx)
}

// ComponentProcess builds the decomposition as a lazy process, letting the
// caller pull components one at a time with Next.
func (e *Engine) ComponentProcess(opts ...scc.ConfigOption) (*scc.Process, error) {
	cfg, err := scc.NewConfig(append([]scc.ConfigOption{scc.WithLogger(e.logger)}, opts...)...)
	if err != nil {
		return nil, err
	}
	return scc.NewProcess(e.graph, cfg)
}

// Reach computes the forward or backward reachable set of the seed states.
func (e *Engine) Reach(ctx context.Context, dir scc.Direction, seed *symbolic.Set, opts ...scc.ConfigOption) (*symbolic.Set, error) {
	cfg, err := scc.NewConfig(append([]scc.ConfigOption{scc.WithLogger(e.logger)}, opts...)...)
	if err != nil {
		return nil, err
	}
	proc, err := scc.NewReachabilityProcess(e.graph, cfg, dir, seed)
	if err != nil {
		return nil, err
	}
	set, err := proc.Next(ctx)
	if err != nil {
		return nil, err
	}
	return set, nil
}
