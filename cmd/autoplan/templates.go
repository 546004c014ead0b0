package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/aretw0/autoplan/internal/cli"
	"github.com/aretw0/autoplan/pkg/domain"
	"github.com/aretw0/autoplan/pkg/templates"
	"github.com/spf13/cobra"
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "Browse the workflow template library",
	Long:  `Searches, ranks and imports templates from the index given by --index.`,
}

var templatesSearchCmd = &cobra.Command{
	Use:   "search [terms...]",
	Short: "Search templates by text and facets",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := templates.SearchOptions{Query: strings.Join(args, " ")}
		opts.Category, _ = cmd.Flags().GetString("category")
		opts.Complexity, _ = cmd.Flags().GetString("complexity")
		opts.TriggerType, _ = cmd.Flags().GetString("trigger")
		opts.Service, _ = cmd.Flags().GetString("service")
		opts.Page, _ = cmd.Flags().GetInt("page")
		opts.PageSize, _ = cmd.Flags().GetInt("page-size")
		asJSON, _ := cmd.Flags().GetBool("json")

		s, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer s.close()

		res := s.studio.SearchTemplates(cmd.Context(), opts)
		if asJSON {
			return cli.WriteJSON(cmd.OutOrStdout(), res)
		}
		writeTemplateTable(cmd.OutOrStdout(), res.Templates)
		fmt.Fprintf(cmd.OutOrStdout(), "\nPage %d of %d (%d matches)\n", res.Page, res.TotalPages, res.Total)
		return nil
	},
}

var templatesFeaturedCmd = &cobra.Command{
	Use:   "featured",
	Short: "List featured templates",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		asJSON, _ := cmd.Flags().GetBool("json")

		s, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer s.close()

		list := s.studio.Templates().Featured(cmd.Context(), limit)
		if asJSON {
			return cli.WriteJSON(cmd.OutOrStdout(), list)
		}
		writeTemplateTable(cmd.OutOrStdout(), list)
		return nil
	},
}

var templatesRelatedCmd = &cobra.Command{
	Use:   "related <id>",
	Short: "List templates sharing services with a template",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		asJSON, _ := cmd.Flags().GetBool("json")

		s, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer s.close()

		lib := s.studio.Templates()
		t, err := lib.FindByID(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		list := lib.Related(cmd.Context(), t, limit)
		if asJSON {
			return cli.WriteJSON(cmd.OutOrStdout(), list)
		}
		writeTemplateTable(cmd.OutOrStdout(), list)
		return nil
	},
}

var templatesImportCmd = &cobra.Command{
	Use:   "import <id>",
	Short: "Import a template as a graph",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer s.close()

		g, err := s.studio.ImportTemplate(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return cli.WriteJSON(cmd.OutOrStdout(), g)
	},
}

func init() {
	rootCmd.AddCommand(templatesCmd)
	templatesCmd.AddCommand(templatesSearchCmd, templatesFeaturedCmd, templatesRelatedCmd, templatesImportCmd)

	templatesSearchCmd.Flags().String("category", "", "Exact category")
	templatesSearchCmd.Flags().String("complexity", "", "low, medium or high")
	templatesSearchCmd.Flags().String("trigger", "", "Trigger subtype (webhook, schedule, ...)")
	templatesSearchCmd.Flags().String("service", "", "Service name (substring)")
	templatesSearchCmd.Flags().Int("page", 1, "Page number")
	templatesSearchCmd.Flags().Int("page-size", templates.DefaultPageSize, "Results per page")

	templatesFeaturedCmd.Flags().Int("limit", 6, "Maximum number of templates (0 for all)")
	templatesRelatedCmd.Flags().Int("limit", 4, "Maximum number of templates (0 for all)")

	for _, c := range []*cobra.Command{templatesSearchCmd, templatesFeaturedCmd, templatesRelatedCmd} {
		c.Flags().Bool("json", false, "Print JSON instead of a table")
	}
}

func writeTemplateTable(w io.Writer, list []domain.TemplateEntry) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tCOMPLEXITY\tSERVICES")
	for _, t := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", t.ID, t.Name, t.Category, t.Complexity, strings.Join(t.Services, ", "))
	}
	tw.Flush()
}
