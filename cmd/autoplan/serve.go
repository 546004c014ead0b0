package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/aretw0/autoplan"
	"github.com/aretw0/autoplan/internal/cli"
	httpAdapter "github.com/aretw0/autoplan/pkg/adapters/http"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  `Exposes plan generation, compilation, conversion, templates and agent memory as a JSON API over HTTP.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer s.close()

		addr := s.cfg.Server.Addr
		if cmd.Flags().Changed("addr") {
			addr, _ = cmd.Flags().GetString("addr")
		}

		if _, err := httpAdapter.Spec(cmd.Context()); err != nil {
			return err
		}

		handler := httpAdapter.NewHandler(s.studio,
			httpAdapter.WithLogger(s.logger),
			httpAdapter.WithRateLimit(s.cfg.Server.RateLimit, s.cfg.Server.RateBurst),
		)

		srv := &http.Server{
			Addr:    addr,
			Handler: handler,
		}

		// Warm the template index so the first request does not pay for it.
		idx := s.studio.Templates().LoadIndex(cmd.Context())
		s.logger.Info("Template index loaded", "workflows", idx.TotalWorkflows)

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			s.logger.Info("Starting autoplan server", "addr", srv.Addr, "version", autoplan.Version)
			serverErrors <- srv.ListenAndServe()
		}()

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()

		// Blocking main and waiting for shutdown.
		select {
		case err := <-serverErrors:
			return fmt.Errorf("server error: %w", err)

		case <-ctx.Done():
			cli.PrintSystemMessage("Start shutdown... Signal: %v", ctx.Signal())

			// Give outstanding requests a deadline for completion.
			timeout := s.cfg.Server.ShutdownTimeout
			shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()

			// Asking listener to shut down and shed load.
			if err := srv.Shutdown(shutdownCtx); err != nil {
				s.logger.Error("Graceful shutdown did not complete", "timeout", timeout, "error", err)
				if err := srv.Close(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return fmt.Errorf("error killing server: %w", err)
				}
			}
			cli.PrintSystemMessage("autoplan server stopped gracefully")
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("addr", "a", "", "Address to listen on (overrides config)")
}
