package main

import (
	"github.com/aretw0/autoplan/internal/cli"
	"github.com/aretw0/autoplan/pkg/compiler"
	"github.com/spf13/cobra"
)

var compileCmd = &cobra.Command{
	Use:   "compile [plan.json]",
	Short: "Compile a plan into an executable graph",
	Long: `Reads a plan (as printed by 'autoplan plan --format json') and prints the
compiled graph as JSON. Reads stdin when no file is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		inputs, _ := cmd.Flags().GetStringToString("input")

		data, err := cli.ReadInput(firstArg(args), cmd.InOrStdin())
		if err != nil {
			return err
		}
		plan, err := compiler.ParsePlan(data)
		if err != nil {
			return err
		}

		s, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer s.close()

		values := make(map[string]any, len(inputs))
		for k, v := range inputs {
			values[k] = v
		}
		return cli.WriteJSON(cmd.OutOrStdout(), s.studio.Compile(plan, values))
	},
}

func init() {
	rootCmd.AddCommand(compileCmd)
	compileCmd.Flags().StringToStringP("input", "i", nil, "Input field values (key=value), repeatable")
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
