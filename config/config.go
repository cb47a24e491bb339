// Package config loads server configuration from the environment.
//
// A .env file in the working directory is loaded first when present;
// variables already set in the environment win over it. Command-line flags
// in cmd/server override both.
//
//	PORT=9090 LOG_FORMAT=json ./server
package config

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds every server setting.
type Config struct {
	Port            int           `env:"PORT" envDefault:"8080"`
	DBPath          string        `env:"DB_PATH" envDefault:"holidays.db"`
	DefaultLocale   string        `env:"DEFAULT_LOCALE" envDefault:"en_US"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat       string        `env:"LOG_FORMAT" envDefault:"text"`
	CORSOrigins     []string      `env:"CORS_ORIGINS" envSeparator:","`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`

	// Providers kept snapshotted by the scheduler; empty disables it.
	SnapshotProviders []string      `env:"SNAPSHOT_PROVIDERS" envSeparator:","`
	SnapshotInterval  time.Duration `env:"SNAPSHOT_INTERVAL" envDefault:"1h"`
}

// Load reads an optional .env file, then parses the environment.
func Load(envFiles ...string) (Config, error) {
	// The .env file is optional.
	_ = godotenv.Load(envFiles...)

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ParseFlags applies the -port and -db overrides from args and validates the
// result again.
func (c Config) ParseFlags(fs *flag.FlagSet, args []string) (Config, error) {
	fs.IntVar(&c.Port, "port", c.Port, "HTTP server port")
	fs.StringVar(&c.DBPath, "db", c.DBPath, "SQLite database path")
	if err := fs.Parse(args); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks value ranges env tags can't express.
func (c Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("%w: port %d out of range", ErrInvalidConfig, c.Port)
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log format %q (want text or json)", ErrInvalidConfig, c.LogFormat)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("%w: shutdown timeout must be positive", ErrInvalidConfig)
	}
	if len(c.SnapshotProviders) > 0 && c.SnapshotInterval <= 0 {
		return fmt.Errorf("%w: snapshot interval must be positive", ErrInvalidConfig)
	}
	return nil
}

// SlogLevel parses LogLevel.
func (c Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("%w: log level %q", ErrInvalidConfig, c.LogLevel)
	}
	return level, nil
}
