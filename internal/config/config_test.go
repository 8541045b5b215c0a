package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cozy/blockedit/internal/config"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefaults(t *testing.T) {
	v := viper.New()
	config.SetDefaults(v)
	cfg, err := config.Load(v)
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Log.Console)
	assert.Equal(t, 1, cfg.Editor.ToolbarOffset)
	assert.Equal(t, 100, cfg.Editor.HistoryLimit)
	assert.Equal(t, "blockedit.yaml", cfg.Editor.Document)
}

func TestConfigFile(t *testing.T) {
	path := writeFile(t, "blockedit.yaml", `
log:
  file: /tmp/blockedit.log
  level: debug
editor:
  history_limit: 20
`)
	v := viper.New()
	require.NoError(t, config.Init(v, path))
	cfg, err := config.Load(v)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/blockedit.log", cfg.Log.File)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 20, cfg.Editor.HistoryLimit)
	// keeps the defaults of the missing keys
	assert.Equal(t, 1, cfg.Editor.ToolbarOffset)
}

func TestEnvironment(t *testing.T) {
	t.Setenv("BLOCKEDIT_EDITOR_TOOLBAR_OFFSET", "12")
	t.Setenv("BLOCKEDIT_LOG_CONSOLE", "true")
	v := viper.New()
	require.NoError(t, config.Init(v, writeFile(t, "c.yaml", "editor:\n  toolbar_offset: 5\n")))
	cfg, err := config.Load(v)
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.Editor.ToolbarOffset)
	assert.True(t, cfg.Log.Console)
}

func TestInvalidConfig(t *testing.T) {
	// fails on a missing file
	assert.Error(t, config.Init(viper.New(), filepath.Join(t.TempDir(), "missing.yaml")))

	// fails on a negative limit
	v := viper.New()
	config.SetDefaults(v)
	v.Set(config.KeyHistoryLimit, -1)
	_, err := config.Load(v)
	assert.Error(t, err)
}
