package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hrishav2004/Gamified-CS-Fundamentals/internal/db"
	"github.com/hrishav2004/Gamified-CS-Fundamentals/internal/repository/sqlite"
	"github.com/hrishav2004/Gamified-CS-Fundamentals/internal/seed"
)

func newSeedCmd(dbPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "seed <file.yaml>",
		Short: "Load questions and quizzes from a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig(*dbPath)

			f, err := seed.ParseFile(args[0])
			if err != nil {
				return err
			}

			database, err := db.Open(cfg.DBPath)
			if err != nil {
				return err
			}
			defer database.Close()

			res, err := seed.Apply(cmd.Context(), f, sqlite.NewQuestionRepository(database.DB), sqlite.NewQuizRepository(database.DB))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d questions and %d quizzes\n", res.Questions, res.Quizzes)
			return nil
		},
	}
}
