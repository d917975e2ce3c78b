package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ckad-trainer/internal/config"
	transport "ckad-trainer/internal/transport/http"
	"github.com/spf13/cobra"
)

// NewServeCmd builds the CLI subcommand serving trainers over websockets.
func NewServeCmd(flags *rootFlags) *cobra.Command {
	var port string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the quiz trainer over websockets",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), flags, port)
		},
	}
	cmd.Flags().StringVar(&port, "port", "", "port to listen on (overrides server.port)")
	return cmd
}

func runServer(ctx context.Context, flags *rootFlags, portFlag string) error {
	cfg, err := loadConfig(flags)
	if err != nil {
		return err
	}
	logger, closeLog, err := newLogger(cfg, os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	if cfg.Quiz.Source == config.SourcePostgres {
		if err := runMigrationsWithConfig(ctx, cfg, logger); err != nil {
			return err
		}
	}

	repo, closeRepo, err := buildRepository(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeRepo()

	// Fail fast on a broken bank instead of on the first connection.
	if _, err := repo.GetQuestions(ctx, cfg.Quiz.Bank); err != nil {
		return err
	}

	wsHandler := transport.NewWSHandler(repo, cfg.Quiz.Bank,
		transport.WithTickInterval(config.Duration(cfg.Server.Tick, time.Second)),
		transport.WithLogger(logger),
	)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("/ws", wsHandler.ServeWS)

	server := &http.Server{
		Addr:              ":" + finalPort,
		Handler:           mux,
		ReadHeaderTimeout: 15 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("starting quiz trainer", "addr", server.Addr, "bank", cfg.Quiz.Bank, "source", cfg.Quiz.Source)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serveErr <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(stop)

	select {
	case <-stop:
		logger.Info("shutting down server...")
	case <-ctx.Done():
		logger.Info("context canceled, shutting down server...")
	case err := <-serveErr:
		logger.Error("failed to start server", "err", err)
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
