package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port string `yaml:"port" env:"PORT"`
		// Tick is how often websocket clients get a snapshot without input.
		Tick string `yaml:"tick" env:"SERVER_TICK"`
	} `yaml:"server"`
	Quiz struct {
		// Source selects the question backend: memory, file, sqlite or postgres.
		Source   string `yaml:"source" env:"QUIZ_SOURCE"`
		Bank     string `yaml:"bank" env:"QUIZ_BANK"`
		Dir      string `yaml:"dir" env:"QUIZ_DIR"`
		Tick     string `yaml:"tick" env:"QUIZ_TICK"`
		CacheTTL string `yaml:"cache_ttl" env:"QUIZ_CACHE_TTL"`
	} `yaml:"quiz"`
	Redis struct {
		Addr     string `yaml:"addr" env:"REDIS_ADDR"`
		Password string `yaml:"password" env:"REDIS_PASSWORD"`
		DB       int    `yaml:"db" env:"REDIS_DB"`
		TTL      string `yaml:"ttl" env:"REDIS_TTL"`
	} `yaml:"redis"`
	Postgres struct {
		URL string `yaml:"url" env:"POSTGRES_URL"`
	} `yaml:"postgres"`
	SQLite struct {
		Path string `yaml:"path" env:"SQLITE_PATH"`
	} `yaml:"sqlite"`
	Log struct {
		Level string `yaml:"level" env:"LOG_LEVEL"`
		File  string `yaml:"file" env:"LOG_FILE"`
	} `yaml:"log"`
}

const (
	SourceMemory   = "memory"
	SourceFile     = "file"
	SourceSQLite   = "sqlite"
	SourcePostgres = "postgres"
)

// Default returns the configuration used when no file is present.
func Default() Config {
	cfg := Config{}
	cfg.Server.Port = "8080"
	cfg.Server.Tick = "1s"
	cfg.Quiz.Source = SourceMemory
	cfg.Quiz.Bank = "ckad"
	cfg.Quiz.Dir = "questions"
	cfg.Quiz.Tick = "100ms"
	cfg.Quiz.CacheTTL = "10m"
	cfg.SQLite.Path = "questions.db"
	cfg.Log.Level = "info"
	return cfg
}

// Load reads YAML config from path on top of the defaults, then applies
// environment overrides. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return cfg, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config: %w", err)
		}
	}
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks the fields the trainer cannot run without.
func (c Config) Validate() error {
	switch c.Quiz.Source {
	case SourceMemory, SourceFile, SourceSQLite:
	case SourcePostgres:
		if c.Postgres.URL == "" {
			return fmt.Errorf("quiz source %q requires postgres.url", c.Quiz.Source)
		}
	default:
		return fmt.Errorf("unknown quiz source %q", c.Quiz.Source)
	}
	if c.Quiz.Bank == "" {
		return fmt.Errorf("quiz.bank must not be empty")
	}
	return nil
}

// Duration parses a duration string or returns the fallback if empty or invalid.
func Duration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}
