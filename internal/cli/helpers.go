package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"sync"
	"syscall"

	"github.com/aretw0/symscc/internal/logging"
	"github.com/aretw0/symscc/pkg/model"
	"github.com/aretw0/symscc/pkg/symbolic"
)

// SignalContext wraps a context and captures the signal that cancelled it.
type SignalContext struct {
	context.Context
	Cancel func()
	start  sync.Once
	stop   sync.Once
	sigCh  chan os.Signal
	sigVal os.Signal
	mu     sync.Mutex
}

// NewSignalContext creates a context that is cancelled on SIGINT or SIGTERM.
// It acts as a drop-in replacement for signal.NotifyContext but allows
// retrieving the signal afterwards.
func NewSignalContext(parent context.Context) *SignalContext {
	ctx, cancel := context.WithCancel(parent)
	sc := &SignalContext{
		Context: ctx,
		Cancel:  cancel,
		sigCh:   make(chan os.Signal, 1),
	}

	sc.start.Do(func() {
		signal.Notify(sc.sigCh, os.Interrupt, syscall.SIGTERM)
		go func() {
			select {
			case sig := <-sc.sigCh:
				sc.mu.Lock()
				sc.sigVal = sig
				sc.mu.Unlock()
				sc.Cancel()
			case <-sc.Context.Done():
				// Context cancelled elsewhere
			}
			sc.stop.Do(func() {
				signal.Stop(sc.sigCh)
			})
		}()
	})

	return sc
}

// Signal returns the signal that caused the context to be cancelled, or nil.
func (sc *SignalContext) Signal() os.Signal {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.sigVal
}

// createLogger configures the application logger. Logs go to Stderr so the
// component listing on Stdout stays machine readable.
func createLogger(verbose bool) *slog.Logger {
	if verbose {
		return logging.New(slog.LevelDebug)
	}
	return logging.New(slog.LevelWarn)
}

func output(w io.Writer) io.Writer {
	if w == nil {
		return os.Stdout
	}
	return w
}

// loadGraph reads a model file and compiles it into its symbolic transition
// graph.
func loadGraph(modelPath string, maxNodes int, logger *slog.Logger) (*symbolic.Graph, error) {
	net, err := model.FromFile(modelPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load model: %w", err)
	}
	var opts []symbolic.Option
	if maxNodes > 0 {
		opts = append(opts, symbolic.WithMaxNodes(maxNodes))
	}
	g, err := symbolic.NewGraph(net, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to compile model: %w", err)
	}
	logger.Debug("model compiled",
		"variables", g.NumVars(), "parameters", g.NumParams(), "path", modelPath)
	return g, nil
}

// parseSeed turns a comma-separated list of "name=0|1" assignments into the
// set of states matching all of them. Unassigned variables stay free.
func parseSeed(g *symbolic.Graph, spec string) (*symbolic.Set, error) {
	if strings.TrimSpace(spec) == "" {
		return nil, fmt.Errorf("seed must assign at least one variable, e.g. \"a=1,b=0\"")
	}
	seed := g.Unit()
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, value, found := strings.Cut(part, "=")
		if !found {
			return nil, fmt.Errorf("invalid seed assignment %q, expected name=0 or name=1", part)
		}
		name = strings.TrimSpace(name)
		i := g.VariableIndex(name)
		if i < 0 {
			return nil, fmt.Errorf("unknown variable %q in seed", name)
		}
		v, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return nil, fmt.Errorf("invalid value for %q in seed: %w", name, err)
		}
		seed = seed.Intersect(g.Lit(i, v))
	}
	return seed, nil
}
