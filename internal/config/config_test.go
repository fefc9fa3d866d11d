package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sequentlabs/sequent/internal/config"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sequent.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: debug\n"), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, config.Default().DefaultBudget, cfg.DefaultBudget)
	assert.Equal(t, config.Default().HTTPAddr, cfg.HTTPAddr)
}

func TestLoad_FullFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sequent.yaml")
	body := "log_level: warn\ndefault_budget: 500\nhttp_addr: \":9000\"\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, uint64(500), cfg.DefaultBudget)
	assert.Equal(t, ":9000", cfg.HTTPAddr)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sequent.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: [unterminated"), 0o644))

	_, err := config.Load(path)
	assert.Error(t, err)
}

func TestSlogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, config.Config{LogLevel: "debug"}.SlogLevel())
	assert.Equal(t, slog.LevelWarn, config.Config{LogLevel: "warn"}.SlogLevel())
	assert.Equal(t, slog.LevelError, config.Config{LogLevel: "error"}.SlogLevel())
	assert.Equal(t, slog.LevelInfo, config.Config{LogLevel: "mystery"}.SlogLevel())
}
