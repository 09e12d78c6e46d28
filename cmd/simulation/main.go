package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0-dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "antcolony",
		Short: "Ant colony optimization for the travelling salesman problem",
		Long: `antcolony searches for short closed tours over a set of points with a
population of pheromone-following ants.

Points come from an instance file, are generated at random, or are placed
by hand in the interactive viewer.`,
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: info, debug or trace (overrides config)")
	rootCmd.PersistentFlags().String("points", "", "Path to a YAML instance file with the points to visit")
	rootCmd.PersistentFlags().Int("random-points", 0, "Number of random points to add inside the world bounds")
	rootCmd.PersistentFlags().Int64("seed", 0, "Random seed, 0 for a time-based seed (overrides config)")

	rootCmd.AddCommand(
		newVersionCmd(),
		newRunCmd(),
		newViewCmd(),
	)
	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "antcolony version %s\n", version)
		},
	}
}
