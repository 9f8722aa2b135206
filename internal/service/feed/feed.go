package feed

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sandevgo/orac/internal/core"
	"github.com/sandevgo/orac/pkg/log"
)

const DefaultInterval = 8 * time.Second

// Feed owns the current snapshot of every source and refreshes them on a
// fixed interval. Each source is replaced wholesale; a failing generator
// leaves its previous snapshot in place.
type Feed struct {
	generators []Generator
	interval   time.Duration
	now        func() time.Time

	genMu     sync.Mutex
	mu        sync.RWMutex
	snapshots map[core.Source]core.Snapshot
	updates   chan struct{}
}

func New(generators []Generator, interval time.Duration) *Feed {
	if interval <= 0 {
		interval = DefaultInterval
	}

	snapshots := make(map[core.Source]core.Snapshot, len(core.Sources))
	for _, src := range core.Sources {
		snapshots[src] = core.Snapshot{Source: src, Status: core.StatusLoading}
	}

	return &Feed{
		generators: generators,
		interval:   interval,
		now:        time.Now,
		snapshots:  snapshots,
		updates:    make(chan struct{}, 1),
	}
}

func (f *Feed) Start(ctx context.Context) error {
	logger := log.FromCtx(ctx)
	logger.Info().Dur("interval", f.interval).Msg("starting data feed")

	f.Refresh(ctx)

	ticker := time.NewTicker(f.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			f.Refresh(ctx)
		}
	}
}

func (f *Feed) Shutdown(ctx context.Context) error {
	return nil
}

// Refresh regenerates every source once.
func (f *Feed) Refresh(ctx context.Context) {
	f.genMu.Lock()
	defer f.genMu.Unlock()

	logger := log.FromCtx(ctx)
	now := f.now()

	for _, g := range f.generators {
		snap, err := generate(g, now)
		if err != nil {
			logger.Error().Err(err).Str("source", string(g.Source())).Msg("data generation failed, keeping previous snapshot")
			continue
		}

		f.mu.Lock()
		f.snapshots[g.Source()] = snap
		f.mu.Unlock()
	}

	logger.Debug().Msg("data streams refreshed")

	select {
	case f.updates <- struct{}{}:
	default:
	}
}

func generate(g Generator, now time.Time) (snap core.Snapshot, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("generator %s panicked: %v", g.Source(), r)
		}
	}()
	return g.Generate(now)
}

func (f *Feed) snapshot(src core.Source) core.Snapshot {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.snapshots[src]
}

// Snapshots returns all sources in core.Sources order.
func (f *Feed) Snapshots() []core.Snapshot {
	f.mu.RLock()
	defer f.mu.RUnlock()

	out := make([]core.Snapshot, 0, len(core.Sources))
	for _, src := range core.Sources {
		out = append(out, f.snapshots[src])
	}
	return out
}

// Updates signals after each refresh. Signals coalesce when nobody listens.
func (f *Feed) Updates() <-chan struct{} {
	return f.updates
}
