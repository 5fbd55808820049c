package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aretw0/symscc/pkg/scc"
)

// RunOptions contains all the configuration for the default decomposition
// command.
type RunOptions struct {
	ModelPath string
	Algorithm string
	Strategy  string
	Trim      string
	LongLived bool
	Limit     int
	MaxNodes  int
	Verbose   bool
	Out       io.Writer // defaults to os.Stdout
}

// Execute handles the decomposition command: it loads the model, runs the
// configured algorithm and prints one line per non-trivial component.
func Execute(opts RunOptions) error {
	out := output(opts.Out)
	logger := createLogger(opts.Verbose)

	g, err := loadGraph(opts.ModelPath, opts.MaxNodes, logger)
	if err != nil {
		return err
	}

	algorithm, err := scc.ParseAlgorithm(opts.Algorithm)
	if err != nil {
		return err
	}
	strategy, err := scc.ParseStrategy(opts.Strategy)
	if err != nil {
		return err
	}
	trim, err := scc.ParseTrimMode(opts.Trim)
	if err != nil {
		return err
	}

	cfgOpts := []scc.ConfigOption{
		scc.WithAlgorithm(algorithm),
		scc.WithStrategy(strategy),
		scc.WithTrim(trim),
		scc.WithLogger(logger),
	}
	if opts.LongLived {
		cfgOpts = append(cfgOpts, scc.WithLongLivedOnly())
	}
	if opts.Limit > 0 {
		cfgOpts = append(cfgOpts, scc.WithLimit(opts.Limit))
	}
	cfg, err := scc.NewConfig(cfgOpts...)
	if err != nil {
		return err
	}

	proc, err := scc.NewProcess(g, cfg)
	if err != nil {
		return err
	}

	sc := NewSignalContext(context.Background())
	defer sc.Cancel()

	count := 0
	for {
		set, err := proc.Next(sc)
		if err != nil {
			if errors.Is(err, scc.ErrCancelled) {
				if sig := sc.Signal(); sig != nil {
					fmt.Fprintf(out, "interrupted by %v after %d component(s)\n", sig, count)
				} else {
					fmt.Fprintf(out, "interrupted after %d component(s)\n", count)
				}
				return nil
			}
			return err
		}
		if set == nil {
			break
		}
		count++
		fmt.Fprintf(out, "SCC #%d: %s states", count, set.Cardinality())
		if g.NumParams() > 0 {
			fmt.Fprintf(out, " across %s colors", set.CountColors())
		}
		fmt.Fprintln(out)
	}
	fmt.Fprintf(out, "found %d non-trivial component(s)\n", count)
	return nil
}
