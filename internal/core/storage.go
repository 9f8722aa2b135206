package core

import "context"

// MemoryRepository keeps the most recent memory items, oldest evicted first.
type MemoryRepository interface {
	AddMemory(ctx context.Context, item MemoryItem) error
	ListMemory(ctx context.Context) ([]MemoryItem, error)
	ResetMemory(ctx context.Context) error
}

// ConversationRepository keeps the most recent messages. A user message and
// its reply are stored together.
type ConversationRepository interface {
	AddExchange(ctx context.Context, user, reply Message) error
	ListMessages(ctx context.Context) ([]Message, error)
	ResetConversation(ctx context.Context) error
}

// InteractionRepository records everything one processed query leaves
// behind. AddInteraction stores the memory item and the exchange together or
// not at all.
type InteractionRepository interface {
	MemoryRepository
	ConversationRepository
	AddInteraction(ctx context.Context, item MemoryItem, user, reply Message) error
}
