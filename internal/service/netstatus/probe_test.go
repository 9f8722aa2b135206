package netstatus

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProbe_StartsOnline(t *testing.T) {
	p := NewWithCheck(func() bool { return false }, time.Minute)
	assert.True(t, p.Online())
}

func TestProbe_PublishesOnlyChanges(t *testing.T) {
	var up atomic.Bool
	up.Store(true)
	p := NewWithCheck(up.Load, time.Minute)
	ctx := context.Background()

	p.Poll(ctx)
	select {
	case <-p.Changes():
		t.Fatal("no change expected while still online")
	default:
	}

	up.Store(false)
	p.Poll(ctx)
	assert.False(t, p.Online())
	assert.False(t, <-p.Changes())

	up.Store(true)
	p.Poll(ctx)
	assert.True(t, <-p.Changes())
}

func TestProbe_LatestStateWins(t *testing.T) {
	var up atomic.Bool
	p := NewWithCheck(up.Load, time.Minute)
	ctx := context.Background()

	p.Poll(ctx) // offline
	up.Store(true)
	p.Poll(ctx) // online again, nobody read the first change

	assert.True(t, <-p.Changes())
	select {
	case <-p.Changes():
		t.Fatal("stale change left in channel")
	default:
	}
}

func TestProbe_StartPollsUntilCancelled(t *testing.T) {
	var calls atomic.Int32
	p := NewWithCheck(func() bool {
		calls.Add(1)
		return true
	}, 5*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- p.Start(ctx) }()

	require.Eventually(t, func() bool { return calls.Load() >= 3 }, time.Second, time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("probe did not stop")
	}
}
