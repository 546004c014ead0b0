package main

import (
	"encoding/json"
	"fmt"

	"github.com/aretw0/autoplan/internal/cli"
	"github.com/aretw0/autoplan/pkg/compiler"
	"github.com/aretw0/autoplan/pkg/domain"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import [workflow.json]",
	Short: "Convert an external workflow document into a graph",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := readDocument(cmd, firstArg(args))
		if err != nil {
			return err
		}

		s, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer s.close()

		return cli.WriteJSON(cmd.OutOrStdout(), s.studio.ImportExternal(doc))
	},
}

var exportCmd = &cobra.Command{
	Use:   "export [graph.json]",
	Short: "Convert a graph into an external workflow document",
	Long: `Prints an n8n-compatible workflow document. Branch structure is not
preserved: every connection is emitted on the main output.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")

		g, err := readGraph(cmd, firstArg(args))
		if err != nil {
			return err
		}

		s, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer s.close()

		return cli.WriteJSON(cmd.OutOrStdout(), s.studio.ExportExternal(g, name))
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringP("name", "n", "", "Workflow name")
}

func readGraph(cmd *cobra.Command, path string) (domain.Graph, error) {
	data, err := cli.ReadInput(path, cmd.InOrStdin())
	if err != nil {
		return domain.Graph{}, err
	}
	return compiler.ParseGraph(data)
}

func readDocument(cmd *cobra.Command, path string) (domain.ExternalDocument, error) {
	data, err := cli.ReadInput(path, cmd.InOrStdin())
	if err != nil {
		return domain.ExternalDocument{}, err
	}
	var doc domain.ExternalDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return domain.ExternalDocument{}, fmt.Errorf("invalid workflow document: %w", err)
	}
	return doc, nil
}
