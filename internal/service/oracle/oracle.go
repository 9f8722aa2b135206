package oracle

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sandevgo/orac/internal/core"
	"github.com/sandevgo/orac/internal/service/memory"
	"github.com/sandevgo/orac/pkg/log"
)

const DefaultThinkDelay = 1200 * time.Millisecond

// Streams exposes the current realtime snapshots.
type Streams interface {
	Snapshots() []core.Snapshot
}

// Result is everything one processed query produced.
type Result struct {
	Prediction core.Prediction    `json:"prediction"`
	Reply      core.Message       `json:"reply"`
	Context    []core.ContextItem `json:"context"`
	Memory     core.MemoryItem    `json:"memory"`
}

type Option func(*Oracle)

func WithThinkDelay(d time.Duration) Option {
	return func(o *Oracle) { o.thinkDelay = d }
}

func WithMode(m core.Mode) Option {
	return func(o *Oracle) { o.mode = m }
}

func WithRand(rnd *rand.Rand) Option {
	return func(o *Oracle) { o.synth = NewSynthesizer(rnd) }
}

func WithClock(now func() time.Time) Option {
	return func(o *Oracle) { o.now = now }
}

// Oracle runs the query pipeline: think, assemble context, predict, then
// record one memory item and one user/reply exchange. Queries are processed
// one at a time.
type Oracle struct {
	streams    Streams
	repo       core.InteractionRepository
	synth      *Synthesizer
	ids        *core.Sequence
	thinkDelay time.Duration
	now        func() time.Time

	procMu sync.Mutex
	busy   atomic.Bool

	mu         sync.RWMutex
	mode       core.Mode
	prediction *core.Prediction
	context    []core.ContextItem
}

func New(streams Streams, repo core.InteractionRepository, opts ...Option) *Oracle {
	o := &Oracle{
		streams:    streams,
		repo:       repo,
		synth:      NewSynthesizer(rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x0ac))),
		thinkDelay: DefaultThinkDelay,
		now:        time.Now,
		mode:       core.ModeAssistant,
	}
	for _, opt := range opts {
		opt(o)
	}
	o.ids = core.NewClockSequence(o.now)
	return o
}

// Process handles one query in the session mode. A blank query is rejected
// with core.ErrEmptyQuery before any state changes.
func (o *Oracle) Process(ctx context.Context, query string) (*Result, error) {
	return o.ProcessAs(ctx, "", query)
}

// ProcessAs handles one query in mode without changing the session mode. An
// empty mode means the session mode at the time the query runs.
func (o *Oracle) ProcessAs(ctx context.Context, mode core.Mode, query string) (*Result, error) {
	if strings.TrimSpace(query) == "" {
		return nil, core.ErrEmptyQuery
	}
	if mode != "" {
		parsed, err := core.ParseMode(string(mode))
		if err != nil {
			return nil, err
		}
		mode = parsed
	}

	o.procMu.Lock()
	defer o.procMu.Unlock()
	o.busy.Store(true)
	defer o.busy.Store(false)

	logger := log.FromCtx(ctx)
	started := o.now()
	if mode == "" {
		mode = o.Mode()
	}

	if err := o.think(ctx); err != nil {
		return nil, err
	}

	items, err := o.repo.ListMemory(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load memory: %w", err)
	}

	assembled := AssembleContext(query, o.streams.Snapshots(), items)
	prediction := o.synth.Predict(query, assembled, mode)

	now := o.now()
	item := core.MemoryItem{
		ID:          o.ids.Next(),
		Content:     query,
		Timestamp:   now,
		ContextSize: len(assembled),
		Mode:        mode,
		Tags:        memory.Tags(query),
	}
	userMsg := core.Message{Role: core.RoleUser, Content: query, Timestamp: now, Mode: mode}
	reply := core.Message{Role: core.RoleSystem, Content: Reply(mode, prediction), Timestamp: now, Mode: mode}

	o.mu.Lock()
	defer o.mu.Unlock()

	if err := o.repo.AddInteraction(ctx, item, userMsg, reply); err != nil {
		return nil, fmt.Errorf("failed to store interaction: %w", err)
	}
	o.prediction = &prediction
	o.context = assembled

	logger.Debug().
		Str("mode", string(mode)).
		Str("scenario", prediction.Scenario).
		Int("context", len(assembled)).
		Dur("elapsed", o.now().Sub(started)).
		Msg("query processed")

	return &Result{
		Prediction: prediction,
		Reply:      reply,
		Context:    assembled,
		Memory:     item,
	}, nil
}

func (o *Oracle) think(ctx context.Context) error {
	if o.thinkDelay <= 0 {
		return nil
	}
	timer := time.NewTimer(o.thinkDelay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (o *Oracle) Mode() core.Mode {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.mode
}

func (o *Oracle) SetMode(m core.Mode) error {
	parsed, err := core.ParseMode(string(m))
	if err != nil {
		return err
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	o.mode = parsed
	return nil
}

// Busy reports whether a query is currently being processed.
func (o *Oracle) Busy() bool {
	return o.busy.Load()
}

func (o *Oracle) Snapshots() []core.Snapshot {
	return o.streams.Snapshots()
}

// LatestPrediction returns nil until the first query completes.
func (o *Oracle) LatestPrediction() *core.Prediction {
	o.mu.RLock()
	defer o.mu.RUnlock()
	if o.prediction == nil {
		return nil
	}
	p := *o.prediction
	return &p
}

func (o *Oracle) LatestContext() []core.ContextItem {
	o.mu.RLock()
	defer o.mu.RUnlock()
	out := make([]core.ContextItem, len(o.context))
	copy(out, o.context)
	return out
}

func (o *Oracle) Memory(ctx context.Context) ([]core.MemoryItem, error) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.repo.ListMemory(ctx)
}

func (o *Oracle) Conversation(ctx context.Context) ([]core.Message, error) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.repo.ListMessages(ctx)
}

// Reset drops every piece of session state except the active mode.
func (o *Oracle) Reset(ctx context.Context) error {
	o.procMu.Lock()
	defer o.procMu.Unlock()
	o.mu.Lock()
	defer o.mu.Unlock()

	if err := o.repo.ResetMemory(ctx); err != nil {
		return fmt.Errorf("failed to reset memory: %w", err)
	}
	if err := o.repo.ResetConversation(ctx); err != nil {
		return fmt.Errorf("failed to reset conversation: %w", err)
	}
	o.prediction = nil
	o.context = nil
	return nil
}
