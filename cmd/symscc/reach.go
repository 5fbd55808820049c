package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/symscc/internal/cli"
)

// reachCmd represents the reach command
var reachCmd = &cobra.Command{
	Use:   "reach <model>",
	Short: "Compute the states reachable from a seed",
	Long: `Computes the forward or backward reachable set of the seed states in
the model's asynchronous transition graph. The seed is given as
comma-separated assignments, e.g. --seed "a=1,b=0"; unassigned variables
are left free.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		opts := cli.ReachOptions{ModelPath: args[0]}
		opts.Direction, _ = cmd.Flags().GetString("direction")
		opts.Strategy, _ = cmd.Flags().GetString("strategy")
		opts.Seed, _ = cmd.Flags().GetString("seed")
		opts.MaxNodes, _ = cmd.Flags().GetInt("max-nodes")
		opts.Verbose, _ = cmd.Flags().GetBool("verbose")

		if err := cli.ExecuteReach(opts); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(reachCmd)

	reachCmd.Flags().StringP("direction", "d", "forward", "Direction: forward or backward")
	reachCmd.Flags().String("strategy", "saturation", "Reachability strategy: saturation or bfs")
	reachCmd.Flags().StringP("seed", "s", "", "Seed states as name=0/1 assignments")
	_ = reachCmd.MarkFlagRequired("seed")
}
