package cli

import (
	"github.com/spf13/cobra"

	"github.com/hrishav2004/Gamified-CS-Fundamentals/internal/db"
	"github.com/hrishav2004/Gamified-CS-Fundamentals/internal/logger"
)

func newMigrateCmd(dbPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig(*dbPath)
			log := logger.Default()

			database, err := db.Open(cfg.DBPath)
			if err != nil {
				return err
			}
			defer database.Close()

			applied, err := db.AppliedMigrations(cmd.Context(), database.DB)
			if err != nil {
				return err
			}
			for _, v := range applied {
				log.Info("applied migration: %s", v)
			}
			return nil
		},
	}
}
