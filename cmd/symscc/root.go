package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "symscc",
	Short: "symscc finds strongly connected components of Boolean networks",
	Long: `symscc computes the non-trivial strongly connected components of the
asynchronous transition graph of a Boolean network, fully symbolically.
Models are read from ".bnet" or YAML files; unknown identifiers in update
expressions become free parameters and results are reported per parameter
valuation ("color").`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging on stderr")
	rootCmd.PersistentFlags().Int("max-nodes", 0, "Cap on BDD nodes, 0 for unlimited")
}
