package scc

import (
	"fmt"
	"log/slog"

	"github.com/aretw0/symscc/internal/logging"
	"github.com/aretw0/symscc/pkg/symbolic"
)

// Algorithm selects the SCC decomposition algorithm.
type Algorithm int

const (
	// FwdBwd is the forward-backward partitioning algorithm with saturation
	// reachability.
	FwdBwd Algorithm = iota
	// FwdBwdBFS is forward-backward partitioning with plain breadth-first
	// reachability. Mostly useful as a baseline; saturation is usually faster.
	FwdBwdBFS
	// Chain is the iterative chain decomposition. It follows pivot hints
	// along basins, which keeps intermediate diagrams smaller on graphs with
	// long attractor chains.
	Chain
)

func (a Algorithm) String() string {
	switch a {
	case FwdBwd:
		return "fwd-bwd"
	case FwdBwdBFS:
		return "fwd-bwd-bfs"
	case Chain:
		return "chain"
	}
	return fmt.Sprintf("algorithm(%d)", int(a))
}

// ParseAlgorithm converts a flag value into an Algorithm.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch s {
	case "fwd-bwd":
		return FwdBwd, nil
	case "fwd-bwd-bfs":
		return FwdBwdBFS, nil
	case "chain":
		return Chain, nil
	}
	return 0, &ConfigError{Option: "algorithm", Reason: fmt.Sprintf("unknown value %q", s)}
}

// Strategy selects how reachability fixpoints are computed.
type Strategy int

const (
	// Saturation applies one variable at a time, restarting from the first
	// variable that yields progress. It tends to keep diagrams small.
	Saturation Strategy = iota
	// BFS adds the full one-step image on every iteration.
	BFS
)

func (s Strategy) String() string {
	switch s {
	case Saturation:
		return "saturation"
	case BFS:
		return "bfs"
	}
	return fmt.Sprintf("strategy(%d)", int(s))
}

// ParseStrategy converts a flag value into a Strategy.
func ParseStrategy(s string) (Strategy, error) {
	switch s {
	case "saturation":
		return Saturation, nil
	case "bfs":
		return BFS, nil
	}
	return 0, &ConfigError{Option: "strategy", Reason: fmt.Sprintf("unknown value %q", s)}
}

// Config carries the knobs shared by all Process kinds. Build one with
// NewConfig; the zero value is usable and equals NewConfig() with no
// options.
type Config struct {
	algorithm Algorithm
	strategy  Strategy
	trim      TrimMode
	longLived bool
	limit     int
	universe  *symbolic.Set
	logger    *slog.Logger
}

// ConfigOption adjusts one knob of a Config.
type ConfigOption func(*Config) error

// NewConfig builds a Config from options. Defaults: forward-backward
// algorithm, saturation reachability, trimming of both sinks and sources,
// no long-lived filter, no component limit, the full state space as
// universe, and no logging.
func NewConfig(opts ...ConfigOption) (Config, error) {
	cfg := Config{
		algorithm: FwdBwd,
		strategy:  Saturation,
		trim:      TrimBoth,
	}
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return Config{}, err
		}
	}
	return cfg, nil
}

// WithAlgorithm selects the decomposition algorithm.
func WithAlgorithm(a Algorithm) ConfigOption {
	return func(c *Config) error {
		switch a {
		case FwdBwd, FwdBwdBFS, Chain:
			c.algorithm = a
			return nil
		}
		return &ConfigError{Option: "algorithm", Reason: fmt.Sprintf("unknown value %d", int(a))}
	}
}

// WithStrategy selects the reachability strategy. FwdBwdBFS ignores it and
// always uses BFS.
func WithStrategy(s Strategy) ConfigOption {
	return func(c *Config) error {
		switch s {
		case Saturation, BFS:
			c.strategy = s
			return nil
		}
		return &ConfigError{Option: "strategy", Reason: fmt.Sprintf("unknown value %d", int(s))}
	}
}

// WithTrim selects which trimming passes run before each pivot selection.
func WithTrim(m TrimMode) ConfigOption {
	return func(c *Config) error {
		switch m {
		case TrimNone, TrimSinks, TrimSources, TrimBoth:
			c.trim = m
			return nil
		}
		return &ConfigError{Option: "trim", Reason: fmt.Sprintf("unknown value %d", int(m))}
	}
}

// WithLongLivedOnly drops components that any single variable update can
// escape. Colors are filtered individually: a component survives for
// exactly the colors under which it is long-lived.
func WithLongLivedOnly() ConfigOption {
	return func(c *Config) error {
		c.longLived = true
		return nil
	}
}

// WithLimit stops the computation after n components have been emitted.
// n must be positive; use no limit at all for an unbounded run.
func WithLimit(n int) ConfigOption {
	return func(c *Config) error {
		if n <= 0 {
			return &ConfigError{Option: "limit", Reason: "must be positive"}
		}
		c.limit = n
		return nil
	}
}

// WithUniverse restricts the computation to a subset of the state space.
func WithUniverse(universe *symbolic.Set) ConfigOption {
	return func(c *Config) error {
		if universe == nil {
			return &ConfigError{Option: "universe", Reason: "must not be nil"}
		}
		c.universe = universe
		return nil
	}
}

// WithLogger attaches a structured logger to the computation.
func WithLogger(logger *slog.Logger) ConfigOption {
	return func(c *Config) error {
		c.logger = logger
		return nil
	}
}

func (c Config) log() *slog.Logger {
	if c.logger == nil {
		return logging.NewNop()
	}
	return c.logger
}
