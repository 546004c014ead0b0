package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/aretw0/autoplan/internal/cli"
	"github.com/spf13/cobra"
)

var memoryCmd = &cobra.Command{
	Use:   "memory",
	Short: "Inspect and edit agent memory",
	Long: `Reads and writes the memory store configured by --redis or --memory-dir.
Without either, memory lives only for the duration of the command.`,
}

var memorySetCmd = &cobra.Command{
	Use:     "set <agent> <scope> <key> <value>",
	Short:   "Store a value (JSON, or a plain string)",
	Args:    cobra.ExactArgs(4),
	Example: `  autoplan memory set support-bot prefs language '"pt-BR"' --memory-dir .autoplan/memory`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ttl, _ := cmd.Flags().GetDuration("ttl")

		s, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer s.close()

		return s.studio.Memory().Write(cmd.Context(), args[0], args[1], args[2], parseValue(args[3]), ttl)
	},
}

var memoryGetCmd = &cobra.Command{
	Use:   "get <agent> <scope> <key>",
	Short: "Print a stored value as JSON",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer s.close()

		value, err := s.studio.Memory().Read(cmd.Context(), args[0], args[1], args[2])
		if err != nil {
			return err
		}
		return cli.WriteJSON(cmd.OutOrStdout(), value)
	},
}

var memorySearchCmd = &cobra.Command{
	Use:   "search <agent> <scope> [query]",
	Short: "List entries whose key or value contains query",
	Args:  cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")
		query := ""
		if len(args) == 3 {
			query = args[2]
		}

		s, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer s.close()

		entries, err := s.studio.Memory().Search(cmd.Context(), args[0], args[1], query)
		if err != nil {
			return err
		}
		if asJSON {
			return cli.WriteJSON(cmd.OutOrStdout(), entries)
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "KEY\tVALUE\tEXPIRES")
		for _, e := range entries {
			raw, _ := json.Marshal(e.Value)
			expires := "-"
			if e.ExpiresAt != nil {
				expires = e.ExpiresAt.Format("2006-01-02 15:04:05")
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\n", e.Key, raw, expires)
		}
		return tw.Flush()
	},
}

var memoryDeleteCmd = &cobra.Command{
	Use:   "delete <agent> <scope> <key>",
	Short: "Remove a stored value",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer s.close()

		return s.studio.Memory().Delete(cmd.Context(), args[0], args[1], args[2])
	},
}

func init() {
	rootCmd.AddCommand(memoryCmd)
	memoryCmd.AddCommand(memorySetCmd, memoryGetCmd, memorySearchCmd, memoryDeleteCmd)

	memorySetCmd.Flags().Duration("ttl", 0, "Expire the value after this long (0 keeps it)")
	memorySearchCmd.Flags().Bool("json", false, "Print JSON instead of a table")
}

// parseValue decodes raw as JSON, falling back to the literal string.
func parseValue(raw string) any {
	var v any
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &v); err != nil {
		return raw
	}
	return v
}
