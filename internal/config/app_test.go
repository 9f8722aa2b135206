package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAppConfig_Defaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("ORAC_RUNTIME_PATH", "")

	cfg, err := ParseAppConfig()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, ".orac"), cfg.RuntimePath)
	assert.Equal(t, "assistant", cfg.DefaultMode)
	assert.Equal(t, 8*time.Second, cfg.TickInterval)
	assert.Equal(t, 1200*time.Millisecond, cfg.ThinkDelay)
	assert.Equal(t, 50, cfg.MemoryCapacity)
	assert.Equal(t, 20, cfg.ConversationCapacity)
	assert.Equal(t, StorageMemory, cfg.Storage)
	assert.Equal(t, ":memory:", cfg.DBDSN)
	assert.True(t, cfg.EnableTUI)
	assert.False(t, cfg.EnableTelegram)
	assert.False(t, cfg.IsSQLiteSelected())
}

func TestParseAppConfig_Overrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("ORAC_RUNTIME_PATH", dir)
	t.Setenv("ORAC_TICK_INTERVAL", "2s")
	t.Setenv("ORAC_THINK_DELAY", "0s")
	t.Setenv("ORAC_STORAGE", "sqlite")
	t.Setenv("ORAC_DEFAULT_MODE", "analyst")

	cfg, err := ParseAppConfig()
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.RuntimePath)
	assert.Equal(t, 2*time.Second, cfg.TickInterval)
	assert.Zero(t, cfg.ThinkDelay)
	assert.True(t, cfg.IsSQLiteSelected())
	assert.Equal(t, "analyst", cfg.DefaultMode)
	assert.Equal(t, filepath.Join(dir, "orac.log"), cfg.GetLogPath())
}

func TestParseAppConfig_InvalidDuration(t *testing.T) {
	t.Setenv("ORAC_TICK_INTERVAL", "soon")

	_, err := ParseAppConfig()
	assert.Error(t, err)
}
