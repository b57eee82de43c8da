package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose    bool
	configFile string
)

var rootCmd = &cobra.Command{
	Use:   "boardsolid",
	Short: "boardsolid - PCB solid model reconstruction",
	Long: `boardsolid rebuilds the 3D solid model of a printed circuit board from
its circuit records: the board body, plated holes, pads, vias and copper
pours, each as a separate colored solid.

Examples:
  boardsolid build circuit.json -o out/     # Write one STL per part
  boardsolid validate circuit.json          # Report problems in the input
  boardsolid build - --config opts.yaml     # Read records from stdin`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "construction options file (yaml, toml or json)")
}
