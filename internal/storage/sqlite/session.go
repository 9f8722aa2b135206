package sqlite

import (
	"context"
	"database/sql"

	"github.com/sandevgo/orac/internal/core"
)

// SessionRepo serves memory and conversation from one database and records
// a query's memory item and exchange in a single transaction.
type SessionRepo struct {
	*MemoryRepo
	*ConversationRepo
	db *sql.DB
}

func NewSessionRepo(db *sql.DB, memoryCapacity, conversationCapacity int) *SessionRepo {
	return &SessionRepo{
		MemoryRepo:       NewMemoryRepo(db, memoryCapacity),
		ConversationRepo: NewConversationRepo(db, conversationCapacity),
		db:               db,
	}
}

func (r *SessionRepo) AddInteraction(ctx context.Context, item core.MemoryItem, user, reply core.Message) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := r.MemoryRepo.insert(ctx, tx, item); err != nil {
		return err
	}
	if err := r.ConversationRepo.insert(ctx, tx, user, reply); err != nil {
		return err
	}
	return tx.Commit()
}
