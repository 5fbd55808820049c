package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aretw0/symscc/pkg/scc"
)

// ReachOptions contains all the configuration for the reach command.
type ReachOptions struct {
	ModelPath string
	Direction string
	Strategy  string
	Seed      string
	MaxNodes  int
	Verbose   bool
	Out       io.Writer // defaults to os.Stdout
}

// ExecuteReach handles the reach command: it computes the forward or
// backward reachable set of the seed states and prints its size.
func ExecuteReach(opts ReachOptions) error {
	out := output(opts.Out)
	logger := createLogger(opts.Verbose)

	g, err := loadGraph(opts.ModelPath, opts.MaxNodes, logger)
	if err != nil {
		return err
	}

	direction, err := scc.ParseDirection(opts.Direction)
	if err != nil {
		return err
	}
	strategy, err := scc.ParseStrategy(opts.Strategy)
	if err != nil {
		return err
	}
	seed, err := parseSeed(g, opts.Seed)
	if err != nil {
		return err
	}

	cfg, err := scc.NewConfig(scc.WithStrategy(strategy), scc.WithLogger(logger))
	if err != nil {
		return err
	}
	proc, err := scc.NewReachabilityProcess(g, cfg, direction, seed)
	if err != nil {
		return err
	}

	sc := NewSignalContext(context.Background())
	defer sc.Cancel()

	set, err := proc.Next(sc)
	if err != nil {
		if errors.Is(err, scc.ErrCancelled) {
			fmt.Fprintln(out, "interrupted")
			return nil
		}
		return err
	}
	fmt.Fprintf(out, "%s reachable: %s states", direction, set.Cardinality())
	if g.NumParams() > 0 {
		fmt.Fprintf(out, " across %s colors", set.CountColors())
	}
	fmt.Fprintln(out)
	return nil
}
