// Package config loads runtime settings for the xlcore command from the
// environment and an optional .env file.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	defaultMaxRows        = 10000
	defaultParallelism    = 1
	defaultUnzipSizeLimit = 1 << 30
)

const (
	envLogLevel       = "XLCORE_LOG_LEVEL"
	envLogFormat      = "XLCORE_LOG_FORMAT"
	envMaxRows        = "XLCORE_MAX_ROWS"
	envParallelism    = "XLCORE_PARALLELISM"
	envUnzipSizeLimit = "XLCORE_UNZIP_SIZE_LIMIT"
	envPassword       = "XLCORE_PASSWORD"
)

// Config holds the settings of the xlcore command. LogFormat is "text" or
// "json"; Password is optional.
type Config struct {
	LogLevel       string
	LogFormat      string
	MaxRows        int
	Parallelism    int
	UnzipSizeLimit int64
	Password       string
}

// Load reads .env (when present) and the XLCORE_* environment variables.
func Load(files ...string) (*Config, error) {
	// A missing .env is normal outside development.
	_ = godotenv.Load(files...)

	cfg := &Config{
		LogLevel:  strings.ToLower(getEnv(envLogLevel, "info")),
		LogFormat: strings.ToLower(getEnv(envLogFormat, "text")),
		Password:  os.Getenv(envPassword),
	}

	var err error
	if cfg.MaxRows, err = getEnvInt(envMaxRows, defaultMaxRows); err != nil {
		return nil, err
	}
	if cfg.Parallelism, err = getEnvInt(envParallelism, defaultParallelism); err != nil {
		return nil, err
	}
	limit, err := getEnvInt(envUnzipSizeLimit, defaultUnzipSizeLimit)
	if err != nil {
		return nil, err
	}
	cfg.UnzipSizeLimit = int64(limit)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("%s must be text or json, got %q", envLogFormat, c.LogFormat)
	}
	if c.MaxRows <= 0 {
		return fmt.Errorf("%s must be positive, got %d", envMaxRows, c.MaxRows)
	}
	if c.Parallelism <= 0 {
		return fmt.Errorf("%s must be positive, got %d", envParallelism, c.Parallelism)
	}
	if c.UnzipSizeLimit <= 0 {
		return fmt.Errorf("%s must be positive, got %d", envUnzipSizeLimit, c.UnzipSizeLimit)
	}
	return nil
}

// ParseLevel maps a level name to a slog.Level.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", level)
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	value, exists := os.LookupEnv(key)
	if !exists || strings.TrimSpace(value) == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}
