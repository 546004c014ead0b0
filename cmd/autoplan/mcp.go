package main

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/aretw0/autoplan/internal/cli"
	"github.com/aretw0/autoplan/pkg/adapters/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Starts autoplan as an MCP Server.
This allows AI agents to generate plans, compile and convert graphs,
search templates and keep memories as tools.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		transport, _ := cmd.Flags().GetString("transport")
		port, _ := cmd.Flags().GetInt("port")

		s, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer s.close()

		srv := mcp.NewServer(s.studio, mcp.WithLogger(s.logger))

		switch transport {
		case "stdio":
			// Ensure logs don't corrupt JSON-RPC on Stdout
			log.SetOutput(os.Stderr)
			s.logger.Info("Starting autoplan MCP Server (Stdio)...")
			if err := srv.ServeStdio(); err != nil {
				return fmt.Errorf("MCP server execution failed: %w", err)
			}
		case "sse":
			s.logger.Info("Starting autoplan MCP Server (SSE)", "port", port)

			ctx := cli.NewSignalContext(cmd.Context())
			defer ctx.Cancel()

			if err := srv.ServeSSE(ctx, port); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("MCP server execution failed: %w", err)
			}
			s.logger.Info("MCP Server stopped gracefully")
		default:
			return fmt.Errorf("unknown transport: %s. Supported: stdio, sse", transport)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)

	mcpCmd.Flags().String("transport", "stdio", "Transport protocol to use: 'stdio' or 'sse'")
	mcpCmd.Flags().Int("port", 8080, "Port to listen on (only for SSE)")
}
