package main

import (
	"fmt"

	"github.com/aretw0/autoplan/internal/validator"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [graph.json]",
	Short: "Check a graph for consistency",
	Long: `Reports duplicate IDs, missing triggers, dangling edges and unreachable nodes.
With --compiled it also requires the single leading trigger a compiled plan has.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		compiled, _ := cmd.Flags().GetBool("compiled")

		g, err := readGraph(cmd, firstArg(args))
		if err != nil {
			return err
		}
		check := validator.ValidateGraph
		if compiled {
			check = validator.ValidateCompiled
		}
		if err := check(g); err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Graph is valid! ✅")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().Bool("compiled", false, "Also require exactly one trigger, placed first")
}
