package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sandevgo/orac/internal/config"
	"github.com/sandevgo/orac/internal/core"
	"github.com/sandevgo/orac/internal/service/oracle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T, storage string) *config.AppConfig {
	t.Helper()
	return &config.AppConfig{
		RuntimePath:          t.TempDir(),
		DefaultMode:          "strategist",
		TickInterval:         time.Second,
		MemoryCapacity:       50,
		ConversationCapacity: 20,
		Storage:              storage,
		DBDSN:                ":memory:",
		NetworkProbeInterval: time.Second,
	}
}

func TestNewStack_ProcessesQueries(t *testing.T) {
	for _, storage := range []string{config.StorageMemory, config.StorageSQLite} {
		t.Run(storage, func(t *testing.T) {
			ctx := context.Background()
			s, err := newStack(ctx, testConfig(t, storage), oracle.WithThinkDelay(0))
			require.NoError(t, err)
			t.Cleanup(func() {
				for _, svc := range s.services {
					_ = svc.Shutdown(ctx)
				}
			})

			assert.Equal(t, core.ModeStrategist, s.oracle.Mode())

			s.feed.Refresh(ctx)
			res, err := s.oracle.Process(ctx, "What's the current market outlook?")
			require.NoError(t, err)
			assert.Equal(t, core.ModeStrategist, res.Reply.Mode)

			items, err := s.oracle.Memory(ctx)
			require.NoError(t, err)
			assert.Len(t, items, 1)

			out, ok := s.router.Execute(ctx, "/mode analyst")
			assert.True(t, ok)
			assert.Contains(t, out, "analyst")
		})
	}
}

func TestNewStack_RejectsUnknownMode(t *testing.T) {
	cfg := testConfig(t, config.StorageMemory)
	cfg.DefaultMode = "oracle"

	_, err := newStack(context.Background(), cfg)
	assert.ErrorIs(t, err, core.ErrUnknownMode)
}

func TestInitEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, initEnv(dir), "a missing .env is not an error")

	t.Setenv("ORAC_TEST_VALUE", "")
	require.NoError(t, os.Unsetenv("ORAC_TEST_VALUE"))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("ORAC_TEST_VALUE=42\n"), 0600))

	require.NoError(t, initEnv(dir))
	assert.Equal(t, "42", os.Getenv("ORAC_TEST_VALUE"))
}
