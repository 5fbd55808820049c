package scc

import (
	"errors"
	"fmt"
)

// ErrCancelled is returned by a Process whose context was cancelled before
// the computation finished. The components emitted before cancellation
// remain valid.
var ErrCancelled = errors.New("computation cancelled")

// ConfigError reports an invalid configuration option.
type ConfigError struct {
	Option string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration: %s: %s", e.Option, e.Reason)
}

// GraphError reports a failure of the underlying symbolic graph, typically
// the BDD node cap being exceeded. A Process that fails this way is
// terminal and its graph should be discarded.
type GraphError struct {
	Op  string
	Err error
}

func (e *GraphError) Error() string {
	return fmt.Sprintf("symbolic graph failure during %s: %v", e.Op, e.Err)
}

func (e *GraphError) Unwrap() error { return e.Err }
