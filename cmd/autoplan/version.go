package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/autoplan"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of autoplan",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "autoplan version %s\n", strings.TrimSpace(autoplan.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
