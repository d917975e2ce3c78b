package cli

import (
	"context"
	"fmt"
	"os"

	"ckad-trainer/internal/config"
	"ckad-trainer/internal/domain"
	"ckad-trainer/internal/infra/file"
	pgstore "ckad-trainer/internal/infra/postgres"
	"ckad-trainer/internal/infra/sqlite"
	"github.com/spf13/cobra"
)

// questionWriter is satisfied by the sqlite and postgres stores.
type questionWriter interface {
	SaveQuestions(ctx context.Context, bankID string, questions []domain.Question) error
}

// NewImportCmd copies a YAML bank into the configured database.
func NewImportCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "import <bank.yaml>",
		Short: "Import a YAML question bank into sqlite or postgres",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			logger, closeLog, err := newLogger(cfg, os.Stderr)
			if err != nil {
				return err
			}
			defer closeLog()

			id, questions, err := file.ReadBank(args[0])
			if err != nil {
				return err
			}
			bankID := flags.bank
			if bankID == "" {
				bankID = id
			}
			if bankID == "" {
				bankID = cfg.Quiz.Bank
			}

			ctx := cmd.Context()
			if cfg.Quiz.Source == config.SourcePostgres {
				if err := runMigrationsWithConfig(ctx, cfg, logger); err != nil {
					return err
				}
			}
			writer, closeWriter, err := openWriter(ctx, cfg)
			if err != nil {
				return err
			}
			defer closeWriter()

			if err := writer.SaveQuestions(ctx, bankID, questions); err != nil {
				return err
			}
			logger.Info("bank imported", "bank", bankID, "questions", len(questions), "source", cfg.Quiz.Source)
			return nil
		},
	}
}

func openWriter(ctx context.Context, cfg config.Config) (questionWriter, func(), error) {
	switch cfg.Quiz.Source {
	case config.SourceSQLite:
		store, err := sqlite.Open(cfg.SQLite.Path)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { _ = store.Close() }, nil
	case config.SourcePostgres:
		db := pgstore.OpenDB(cfg.Postgres.URL)
		if err := db.PingContext(ctx); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		return pgstore.NewQuestionStore(db), func() { _ = db.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("import needs quiz.source sqlite or postgres, got %q", cfg.Quiz.Source)
	}
}
