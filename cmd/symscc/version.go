package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/symscc"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of symscc",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("symscc version %s\n", strings.TrimSpace(symscc.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
