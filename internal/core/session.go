package core

import "context"

// Session is the query-independent surface of the oracle: mode, streams and
// the state left behind by earlier queries.
type Session interface {
	Mode() Mode
	SetMode(m Mode) error
	Snapshots() []Snapshot
	Memory(ctx context.Context) ([]MemoryItem, error)
	Conversation(ctx context.Context) ([]Message, error)
	LatestPrediction() *Prediction
	LatestContext() []ContextItem
	Reset(ctx context.Context) error
}
