package main

import (
	"fmt"

	"github.com/aretw0/autoplan/internal/presentation/graph"
	"github.com/aretw0/autoplan/pkg/domain"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph [graph.json]",
	Short: "Export the graph visualization",
	Long: `Outputs a Mermaid diagram (graph TD) of a compiled graph, or of an
external workflow document with --external.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		external, _ := cmd.Flags().GetBool("external")
		highlight, _ := cmd.Flags().GetStringSlice("highlight")

		var g domain.Graph
		if external {
			doc, err := readDocument(cmd, firstArg(args))
			if err != nil {
				return err
			}
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			defer s.close()
			g = s.studio.ImportExternal(doc)
		} else {
			var err error
			if g, err = readGraph(cmd, firstArg(args)); err != nil {
				return err
			}
		}

		var overlay *graph.GraphOverlay
		if len(highlight) > 0 {
			overlay = &graph.GraphOverlay{Highlighted: highlight}
		}
		fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(g, overlay))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().Bool("external", false, "Input is an external workflow document")
	graphCmd.Flags().StringSlice("highlight", nil, "Node IDs to highlight")
}
