package cli

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// flags shared by every subcommand; empty values defer to the config file.
type rootFlags struct {
	configPath string
	bank       string
	source     string
	noColor    bool
}

// Execute runs the CLI.
func Execute() error {
	// A .env file is optional; CONFIG_PATH and the config env overrides may live there.
	_ = godotenv.Load()
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	envConfig := os.Getenv("CONFIG_PATH")
	if envConfig == "" {
		envConfig = "config/config.yaml"
	}

	flags := &rootFlags{}
	runCmd := NewRunCmd(flags)

	cmd := &cobra.Command{
		Use:          "ckad-trainer",
		Short:        "Timed CKAD practice quizzes with graduated hints",
		SilenceUsage: true,
		RunE:         runCmd.RunE,
	}

	cmd.PersistentFlags().StringVar(&flags.configPath, "config", envConfig, "path to YAML config")
	cmd.PersistentFlags().StringVar(&flags.bank, "bank", "", "question bank id (overrides quiz.bank)")
	cmd.PersistentFlags().StringVar(&flags.source, "source", "", "question source: memory, file, sqlite or postgres (overrides quiz.source)")
	cmd.PersistentFlags().BoolVar(&flags.noColor, "no-color", false, "disable colors in the terminal trainer")
	cmd.AddCommand(runCmd)
	cmd.AddCommand(NewServeCmd(flags))
	cmd.AddCommand(NewMigrateCmd(flags))
	cmd.AddCommand(NewImportCmd(flags))
	return cmd
}
