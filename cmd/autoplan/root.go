package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/autoplan"
	"github.com/aretw0/autoplan/internal/cli"
	"github.com/aretw0/autoplan/internal/config"
	"github.com/aretw0/autoplan/internal/logging"
	"github.com/aretw0/autoplan/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "autoplan",
	Short: "autoplan turns automation requests into reviewable plans and workflow graphs",
	Long: `autoplan generates risk-annotated plans from natural-language requests,
compiles them into executable node graphs, converts graphs to and from
n8n-style workflow documents, and searches a library of workflow templates.`,
	SilenceUsage: true,
	Run: func(cmd *cobra.Command, args []string) {
		if cli.IsTerminal(os.Stdout) {
			tui.PrintBanner(os.Stdout, autoplan.Version)
		}
		cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "Configuration file (default ./"+config.DefaultFile+" when present)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().String("index", "", "Template index: a JSON file path or an http(s) URL")
	rootCmd.PersistentFlags().String("redis", "", "Redis address for agent memory (default in-process)")
	rootCmd.PersistentFlags().String("memory-dir", "", "Directory for file-backed agent memory")
}

// loadConfig reads the configuration file and applies flag overrides.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}

	flags := map[string]*string{
		"log-level":  &cfg.LogLevel,
		"index":      &cfg.Index,
		"redis":      &cfg.Redis.Addr,
		"memory-dir": &cfg.Memory.Dir,
	}
	for name, dst := range flags {
		if cmd.Flags().Changed(name) {
			*dst, _ = cmd.Flags().GetString(name)
		}
	}
	return cfg, nil
}

// session bundles what a command needs to talk to the library.
type session struct {
	studio *autoplan.Studio
	cfg    config.Config
	logger *slog.Logger
	close  func() error
}

func openSession(cmd *cobra.Command) (*session, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	logger := logging.NewWithFormat(os.Stderr, cfg.LogFormat, cli.ParseLevel(cfg.LogLevel))

	studio, closeFn, err := cli.NewStudio(cmd.Context(), cfg, logger)
	if err != nil {
		return nil, err
	}
	return &session{studio: studio, cfg: cfg, logger: logger, close: closeFn}, nil
}
