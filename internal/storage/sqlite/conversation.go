package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sandevgo/orac/internal/core"
)

type ConversationRepo struct {
	db       *sql.DB
	capacity int
}

func NewConversationRepo(db *sql.DB, capacity int) *ConversationRepo {
	return &ConversationRepo{db: db, capacity: capacity}
}

// AddExchange stores the user message and its reply in one transaction and
// trims the oldest rows beyond capacity.
func (r *ConversationRepo) AddExchange(ctx context.Context, user, reply core.Message) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := r.insert(ctx, tx, user, reply); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *ConversationRepo) insert(ctx context.Context, tx *sql.Tx, user, reply core.Message) error {
	query := `INSERT INTO messages (role, content, created_at, mode) VALUES (?, ?, ?, ?)`
	for _, msg := range []core.Message{user, reply} {
		if _, err := tx.ExecContext(ctx, query, string(msg.Role), msg.Content, msg.Timestamp.UnixNano(), string(msg.Mode)); err != nil {
			return fmt.Errorf("failed to insert message: %w", err)
		}
	}

	if r.capacity > 0 {
		trim := `DELETE FROM messages WHERE id NOT IN (SELECT id FROM messages ORDER BY id DESC LIMIT ?)`
		if _, err := tx.ExecContext(ctx, trim, r.capacity); err != nil {
			return fmt.Errorf("failed to trim messages: %w", err)
		}
	}
	return nil
}

func (r *ConversationRepo) ListMessages(ctx context.Context) ([]core.Message, error) {
	query := `SELECT role, content, created_at, mode FROM messages ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query messages: %w", err)
	}
	defer rows.Close()

	messages := make([]core.Message, 0)
	for rows.Next() {
		var (
			msg     core.Message
			role    string
			mode    string
			created int64
		)
		if err := rows.Scan(&role, &msg.Content, &created, &mode); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		msg.Role = core.Role(role)
		msg.Mode = core.Mode(mode)
		msg.Timestamp = time.Unix(0, created)
		messages = append(messages, msg)
	}

	return messages, rows.Err()
}

func (r *ConversationRepo) ResetConversation(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM messages`); err != nil {
		return fmt.Errorf("failed to reset conversation: %w", err)
	}
	return nil
}
