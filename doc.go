/*
Package symscc computes strongly connected components of asynchronous
Boolean networks, fully symbolically.

States, parameter valuations ("colors") and transition relations are all
represented as Binary Decision Diagrams, so models with dozens of variables
and astronomically many states stay tractable. Unknown identifiers in
update expressions become free parameters: every result set is indexed by
color, and a component may exist under some parameter valuations only.

# Layout

  - pkg/model: network models, the ".bnet" and YAML parsers and an
    expression builder API.
  - pkg/symbolic: the BDD-backed state space, sets and image operators.
  - pkg/scc: reachability, trimming and SCC decomposition, packaged as
    cancellable, lazily evaluated processes.

This root package ties them together behind a small facade.

# Usage

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/aretw0/symscc"
	)

	func main() {
		eng, err := symscc.New("model.bnet")
		if err != nil {
			log.Fatal(err)
		}

		// Pull components one at a time; Ctrl-C style cancellation via the
		// context keeps every component already returned valid.
		proc, err := eng.ComponentProcess()
		if err != nil {
			log.Fatal(err)
		}
		ctx := context.Background()
		for {
			set, err := proc.Next(ctx)
			if err != nil {
				log.Fatal(err)
			}
			if set == nil {
				break
			}
			fmt.Println("component:", set)
		}
	}
*/
package symscc
