package feed

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/sandevgo/orac/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed+1))
}

type stubGenerator struct {
	source core.Source
	status string
	err    error
	panics bool
	calls  int
}

func (g *stubGenerator) Source() core.Source { return g.source }

func (g *stubGenerator) Generate(now time.Time) (core.Snapshot, error) {
	g.calls++
	if g.panics {
		panic("generator exploded")
	}
	if g.err != nil {
		return core.Snapshot{}, g.err
	}
	return core.Snapshot{Source: g.source, Status: g.status, Timestamp: now}, nil
}

func TestFeed_InitialSnapshotsAreLoading(t *testing.T) {
	f := New(nil, time.Second)

	snaps := f.Snapshots()
	require.Len(t, snaps, 3)
	for i, src := range core.Sources {
		assert.Equal(t, src, snaps[i].Source)
		assert.Equal(t, core.StatusLoading, snaps[i].Status)
		assert.False(t, snaps[i].Loaded())
	}
}

func TestFeed_RefreshReplacesSnapshots(t *testing.T) {
	f := New(DefaultGenerators(newRand(1)), time.Second)
	f.Refresh(context.Background())

	market := f.snapshot(core.SourceMarket)
	require.True(t, market.Loaded())
	require.NotNil(t, market.Market)
	assert.Len(t, market.Market.Stocks, 5)
	assert.Contains(t, market.Status, "S&P 500: ")

	assert.True(t, f.snapshot(core.SourceWeather).Loaded())
	assert.True(t, f.snapshot(core.SourceNews).Loaded())

	select {
	case <-f.Updates():
	default:
		t.Fatal("expected an update signal")
	}
}

func TestFeed_FailingGeneratorKeepsPreviousSnapshot(t *testing.T) {
	weather := &stubGenerator{source: core.SourceWeather, status: "70°F, Sunny"}
	news := &stubGenerator{source: core.SourceNews, status: "headline"}
	f := New([]Generator{weather, news}, time.Second)

	f.Refresh(context.Background())
	first := f.snapshot(core.SourceWeather)
	require.Equal(t, "70°F, Sunny", first.Status)

	weather.err = errors.New("sensor offline")
	news.status = "second headline"
	f.Refresh(context.Background())

	assert.Equal(t, first, f.snapshot(core.SourceWeather))
	assert.Equal(t, "second headline", f.snapshot(core.SourceNews).Status)
}

func TestFeed_PanickingGeneratorIsContained(t *testing.T) {
	bad := &stubGenerator{source: core.SourceMarket, panics: true}
	good := &stubGenerator{source: core.SourceNews, status: "ok"}
	f := New([]Generator{bad, good}, time.Second)

	assert.NotPanics(t, func() { f.Refresh(context.Background()) })
	assert.Equal(t, core.StatusLoading, f.snapshot(core.SourceMarket).Status)
	assert.Equal(t, "ok", f.snapshot(core.SourceNews).Status)
}

func TestFeed_StartRefreshesImmediately(t *testing.T) {
	gen := &stubGenerator{source: core.SourceNews, status: "now"}
	f := New([]Generator{gen}, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- f.Start(ctx) }()

	select {
	case <-f.Updates():
	case <-time.After(2 * time.Second):
		t.Fatal("feed did not refresh on start")
	}
	assert.Equal(t, "now", f.snapshot(core.SourceNews).Status)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("feed did not stop")
	}
}

func TestFeed_UpdatesCoalesce(t *testing.T) {
	f := New(nil, time.Second)
	f.Refresh(context.Background())
	f.Refresh(context.Background())

	<-f.Updates()
	select {
	case <-f.Updates():
		t.Fatal("expected signals to coalesce")
	default:
	}
}
