// Package cli is the quizd command line: serve (default), migrate and seed.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/hrishav2004/Gamified-CS-Fundamentals/internal/config"
	"github.com/hrishav2004/Gamified-CS-Fundamentals/internal/logger"
)

// Execute runs the CLI.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:           "quizd",
		Short:         "Gamified CS fundamentals quiz server",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), loadConfig(dbPath))
		},
	}

	cmd.PersistentFlags().StringVar(&dbPath, "db", "", "SQLite database path (overrides DB_PATH)")
	cmd.AddCommand(newServeCmd(&dbPath))
	cmd.AddCommand(newMigrateCmd(&dbPath))
	cmd.AddCommand(newSeedCmd(&dbPath))
	return cmd
}

// loadConfig reads the environment and installs the default logger.
func loadConfig(dbPath string) config.Config {
	cfg := config.Load()
	if dbPath != "" {
		cfg.DBPath = dbPath
	}

	logger.SetDefault(logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	))
	return cfg
}
