package config_test

import (
	"flag"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/holiday-engine/config"
)

var allKeys = []string{
	"PORT", "DB_PATH", "DEFAULT_LOCALE", "LOG_LEVEL", "LOG_FORMAT",
	"CORS_ORIGINS", "SHUTDOWN_TIMEOUT", "SNAPSHOT_PROVIDERS", "SNAPSHOT_INTERVAL",
}

// clearEnv unsets every config variable for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range allKeys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "holidays.db", cfg.DBPath)
	assert.Equal(t, "en_US", cfg.DefaultLocale)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Empty(t, cfg.CORSOrigins)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Empty(t, cfg.SnapshotProviders)
	assert.Equal(t, time.Hour, cfg.SnapshotInterval)

	level, err := cfg.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, level)
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("CORS_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("SHUTDOWN_TIMEOUT", "5s")
	t.Setenv("SNAPSHOT_PROVIDERS", "Ireland,Japan")
	t.Setenv("SNAPSHOT_INTERVAL", "15m")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.Equal(t, 5*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, []string{"Ireland", "Japan"}, cfg.SnapshotProviders)
	assert.Equal(t, 15*time.Minute, cfg.SnapshotInterval)

	level, err := cfg.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}

func TestLoad_EnvFile(t *testing.T) {
	// GIVEN: A .env file setting PORT and DB_PATH, and PORT in the environment
	// WHEN: Loading
	// THEN: The environment wins, the file fills the rest

	clearEnv(t)
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("PORT=7070\nDB_PATH=/var/lib/holidays.db\n"), 0o600))
	t.Setenv("PORT", "6060")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 6060, cfg.Port)
	assert.Equal(t, "/var/lib/holidays.db", cfg.DBPath)
}

func TestLoad_MissingEnvFileIsIgnored(t *testing.T) {
	clearEnv(t)
	_, err := config.Load(filepath.Join(t.TempDir(), "absent.env"))
	assert.NoError(t, err)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"port zero", map[string]string{"PORT": "0"}},
		{"port too large", map[string]string{"PORT": "70000"}},
		{"port not a number", map[string]string{"PORT": "http"}},
		{"unknown log format", map[string]string{"LOG_FORMAT": "xml"}},
		{"unknown log level", map[string]string{"LOG_LEVEL": "loud"}},
		{"zero shutdown timeout", map[string]string{"SHUTDOWN_TIMEOUT": "0s"}},
		{"bad duration", map[string]string{"SHUTDOWN_TIMEOUT": "soon"}},
		{"zero snapshot interval", map[string]string{"SNAPSHOT_PROVIDERS": "Ireland", "SNAPSHOT_INTERVAL": "0s"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := config.Load()
			assert.ErrorIs(t, err, config.ErrInvalidConfig)
		})
	}
}

func TestParseFlags(t *testing.T) {
	clearEnv(t)
	base, err := config.Load()
	require.NoError(t, err)

	newFlags := func() *flag.FlagSet {
		fs := flag.NewFlagSet("server", flag.ContinueOnError)
		fs.SetOutput(io.Discard)
		return fs
	}

	cfg, err := base.ParseFlags(newFlags(), []string{"-port=3000", "-db=:memory:"})
	require.NoError(t, err)
	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, ":memory:", cfg.DBPath)
	assert.Equal(t, 8080, base.Port, "the loaded config is left untouched")

	cfg, err = base.ParseFlags(newFlags(), nil)
	require.NoError(t, err)
	assert.Equal(t, base, cfg)

	tests := []struct {
		name string
		args []string
	}{
		{"port zero", []string{"-port=0"}},
		{"port too large", []string{"-port=70000"}},
		{"port not a number", []string{"-port=http"}},
		{"unknown flag", []string{"-verbose"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := base.ParseFlags(newFlags(), tt.args)
			assert.ErrorIs(t, err, config.ErrInvalidConfig)
		})
	}
}
