package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/autoplan/internal/cli"
	"github.com/aretw0/autoplan/internal/presentation/tui"
	"github.com/aretw0/autoplan/pkg/intent"
	"github.com/spf13/cobra"
)

var planCmd = &cobra.Command{
	Use:   "plan [prompt...]",
	Short: "Generate a plan from a natural-language request",
	Long: `Classifies the request and prints an editable, risk-annotated plan.
The prompt is read from stdin when no arguments are given.`,
	Example: `  autoplan plan "Order noise-cancelling headphones on Amazon"
  echo "Every Monday email me a summary of new GitHub issues" | autoplan plan --format json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")

		prompt := strings.Join(args, " ")
		if prompt == "" {
			data, err := cli.ReadInput("-", cmd.InOrStdin())
			if err != nil {
				return err
			}
			prompt = string(data)
		}

		prompt, err := intent.SanitizePrompt(prompt)
		if err != nil {
			return err
		}

		s, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer s.close()

		plan := s.studio.Generate(prompt)
		s.logger.Debug("plan generated", "category", plan.Category, "steps", len(plan.Steps))

		out := cmd.OutOrStdout()
		switch format {
		case cli.FormatJSON:
			return cli.WriteJSON(out, plan)
		case cli.FormatYAML:
			return cli.WriteYAML(out, plan)
		case cli.FormatMarkdown:
			return cli.WriteMarkdown(out, tui.PlanMarkdown(plan))
		default:
			return fmt.Errorf("unknown format %q: expected markdown, json or yaml", format)
		}
	},
}

func init() {
	rootCmd.AddCommand(planCmd)
	planCmd.Flags().StringP("format", "f", cli.FormatMarkdown, "Output format: markdown, json or yaml")
}
