package cmd

import (
	"fmt"

	"github.com/chazu/boardsolid/pkg/circuit"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <circuit.json>",
	Short: "Check circuit records without building geometry",
	Long: `Runs every validation tier over the input: structural errors that stop
a build, shape tags the builder does not support, and degenerate parameters
that make it skip an element.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	elements, err := readElements(args[0])
	if err != nil {
		return fmt.Errorf("error reading circuit: %w", err)
	}
	set := circuit.Partition(elements)
	res := circuit.ValidateAll(set)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%d records, %d of unmodelled types\n", set.Len()+set.Unknown, set.Unknown)
	for _, e := range res.Errors {
		fmt.Fprintf(out, "  %s\n", e.Error())
	}
	for _, w := range res.Warnings {
		fmt.Fprintf(out, "  %s\n", w)
	}
	if !res.OK() {
		return fmt.Errorf("%d validation errors", len(res.Errors))
	}
	fmt.Fprintln(out, "✓ input is valid")
	return nil
}
