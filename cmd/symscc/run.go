package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/symscc/internal/cli"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run <model>",
	Short: "Decompose a model into its non-trivial components",
	Long: `Runs the configured SCC decomposition over the model's asynchronous
transition graph and prints one line per non-trivial component as it is
found. Interrupting with Ctrl-C keeps the components printed so far.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		opts := cli.RunOptions{ModelPath: args[0]}
		opts.Algorithm, _ = cmd.Flags().GetString("algorithm")
		opts.Strategy, _ = cmd.Flags().GetString("strategy")
		opts.Trim, _ = cmd.Flags().GetString("trim")
		opts.LongLived, _ = cmd.Flags().GetBool("long-lived")
		opts.Limit, _ = cmd.Flags().GetInt("count")
		opts.MaxNodes, _ = cmd.Flags().GetInt("max-nodes")
		opts.Verbose, _ = cmd.Flags().GetBool("verbose")

		if err := cli.Execute(opts); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("algorithm", "a", "fwd-bwd", "Decomposition algorithm: fwd-bwd, fwd-bwd-bfs or chain")
	cmd.Flags().String("strategy", "saturation", "Reachability strategy: saturation or bfs")
	cmd.Flags().String("trim", "both", "Trimming before each pivot: none, sinks, sources or both")
	cmd.Flags().Bool("long-lived", false, "Keep only components no single update can escape")
	cmd.Flags().IntP("count", "n", 0, "Stop after this many components, 0 for all")
}

func init() {
	rootCmd.AddCommand(runCmd)
	addRunFlags(runCmd)

	// Make 'run' the default when a model path is given directly.
	rootCmd.Args = cobra.MaximumNArgs(1)
	rootCmd.Run = func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			_ = cmd.Help()
			return
		}
		runCmd.Run(cmd, args)
	}
	addRunFlags(rootCmd)
}
