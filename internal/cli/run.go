package cli

import (
	"io"
	"os"
	"time"

	"ckad-trainer/internal/app"
	"ckad-trainer/internal/config"
	"ckad-trainer/internal/ui/tui"
	"github.com/spf13/cobra"
)

// NewRunCmd starts the terminal trainer.
func NewRunCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the quiz in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			// The UI owns the screen, so logs only go to log.file.
			logger, closeLog, err := newLogger(cfg, io.Discard)
			if err != nil {
				return err
			}
			defer closeLog()

			ctx := cmd.Context()
			repo, closeRepo, err := buildRepository(ctx, cfg)
			if err != nil {
				return err
			}
			defer closeRepo()

			trainer, err := app.NewTrainer(ctx, app.Bank(repo, cfg.Quiz.Bank), app.WithLogger(logger))
			if err != nil {
				logger.Error("trainer not started", "bank", cfg.Quiz.Bank, "err", err)
				return err
			}
			return tui.Run(ctx, trainer, os.Stdin, os.Stdout, tui.Options{
				NoColor:      flags.noColor || os.Getenv("NO_COLOR") != "",
				TickInterval: config.Duration(cfg.Quiz.Tick, 100*time.Millisecond),
			})
		},
	}
}
