// Package scc computes strongly connected components and reachable sets of
// symbolic colored transition graphs without enumerating states.
//
// Every long-running computation is wrapped in a Process: a single-owner
// state machine that advances in bounded micro-steps and produces its
// results as a lazy, pull-based sequence. Cancellation is cooperative: the
// supplied context is consulted between micro-steps, never inside a
// primitive set operation, so a cancelled run always ends with a valid
// prefix of fully verified components.
//
// Two decomposition algorithms are provided: the classic forward-backward
// partitioning (Algorithm FwdBwd, optionally with plain BFS reachability)
// and an iterative chain variant (Algorithm Chain) that follows pivot hints
// along basins to avoid re-exploring large regions. Both return the same
// partition into non-trivial components; the emission order differs.
package scc
