package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"ckad-trainer/internal/app"
	"ckad-trainer/internal/config"
	"ckad-trainer/internal/infra/file"
	"ckad-trainer/internal/infra/memory"
	pgloader "ckad-trainer/internal/infra/postgres"
	redisrepo "ckad-trainer/internal/infra/redis"
	"ckad-trainer/internal/infra/sqlite"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
)

// loadConfig reads the config file and applies command-line overrides.
func loadConfig(flags *rootFlags) (config.Config, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return cfg, err
	}
	if flags.bank != "" {
		cfg.Quiz.Bank = flags.bank
	}
	if flags.source != "" {
		cfg.Quiz.Source = flags.source
	}
	return cfg, cfg.Validate()
}

// buildRepository wires the configured loader behind a cache. The returned
// closer releases database and redis handles.
func buildRepository(ctx context.Context, cfg config.Config) (app.BankRepository, func(), error) {
	var closers []func()
	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	var loader memory.QuestionLoader
	switch cfg.Quiz.Source {
	case config.SourceFile:
		loader = file.NewLoader(cfg.Quiz.Dir)
	case config.SourceSQLite:
		store, err := sqlite.Open(cfg.SQLite.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite: %w", err)
		}
		closers = append(closers, func() { _ = store.Close() })
		loader = store
	case config.SourcePostgres:
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		closers = append(closers, pool.Close)
		loader = pgloader.NewQuestionLoader(pool)
	default:
		loader = memory.NewStaticLoader(memory.DefaultBanks())
	}

	cacheTTL := config.Duration(cfg.Quiz.CacheTTL, 10*time.Minute)
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		closers = append(closers, func() { _ = client.Close() })
		redisTTL := config.Duration(cfg.Redis.TTL, cacheTTL)
		return redisrepo.NewQuestionRepository(client, loader, redisTTL), closeAll, nil
	}
	return memory.NewQuestionRepository(loader, cacheTTL), closeAll, nil
}

// newLogger builds the process logger, writing to log.file when set and to
// fallback otherwise.
func newLogger(cfg config.Config, fallback io.Writer) (*slog.Logger, func(), error) {
	out := fallback
	closeFn := func() {}
	if cfg.Log.File != "" {
		f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		out = f
		closeFn = func() { _ = f.Close() }
	}
	handler := slog.NewTextHandler(out, &slog.HandlerOptions{Level: parseLevel(cfg.Log.Level)})
	return slog.New(handler), closeFn, nil
}

func parseLevel(raw string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(raw))); err != nil {
		return slog.LevelInfo
	}
	return level
}
