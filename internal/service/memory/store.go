package memory

import (
	"context"
	"sync"

	"github.com/sandevgo/orac/internal/core"
	"github.com/sandevgo/orac/pkg/ring"
)

const (
	DefaultMemoryCapacity       = 50
	DefaultConversationCapacity = 20
)

// Store keeps memory items in process. Oldest items are dropped silently.
type Store struct {
	mu    sync.RWMutex
	items *ring.Ring[core.MemoryItem]
}

func NewStore(capacity int) *Store {
	if capacity <= 0 {
		capacity = DefaultMemoryCapacity
	}
	return &Store{items: ring.New[core.MemoryItem](capacity)}
}

func (s *Store) AddMemory(ctx context.Context, item core.MemoryItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items.Push(item)
	return nil
}

func (s *Store) ListMemory(ctx context.Context) ([]core.MemoryItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.items.Items(), nil
}

func (s *Store) ResetMemory(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items.Reset()
	return nil
}

// Conversation keeps the newest messages in process.
type Conversation struct {
	mu       sync.RWMutex
	messages *ring.Ring[core.Message]
}

func NewConversation(capacity int) *Conversation {
	if capacity <= 0 {
		capacity = DefaultConversationCapacity
	}
	return &Conversation{messages: ring.New[core.Message](capacity)}
}

func (c *Conversation) AddExchange(ctx context.Context, user, reply core.Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages.Push(user)
	c.messages.Push(reply)
	return nil
}

func (c *Conversation) ListMessages(ctx context.Context) ([]core.Message, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.messages.Items(), nil
}

func (c *Conversation) ResetConversation(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages.Reset()
	return nil
}

// Session pairs a Store and a Conversation so one query's records land
// together. AddInteraction takes both locks, memory first.
type Session struct {
	*Store
	*Conversation
}

func NewSession(memoryCapacity, conversationCapacity int) *Session {
	return &Session{
		Store:        NewStore(memoryCapacity),
		Conversation: NewConversation(conversationCapacity),
	}
}

func (s *Session) AddInteraction(ctx context.Context, item core.MemoryItem, user, reply core.Message) error {
	s.Store.mu.Lock()
	defer s.Store.mu.Unlock()
	s.Conversation.mu.Lock()
	defer s.Conversation.mu.Unlock()

	s.Store.items.Push(item)
	s.Conversation.messages.Push(user)
	s.Conversation.messages.Push(reply)
	return nil
}
