package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sandevgo/orac/internal/core"
	"github.com/sandevgo/orac/pkg/log"
)

type MemoryRepo struct {
	db       *sql.DB
	capacity int
}

func NewMemoryRepo(db *sql.DB, capacity int) *MemoryRepo {
	return &MemoryRepo{db: db, capacity: capacity}
}

func (r *MemoryRepo) AddMemory(ctx context.Context, item core.MemoryItem) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := r.insert(ctx, tx, item); err != nil {
		return err
	}
	return tx.Commit()
}

// insert adds item and trims the oldest rows beyond capacity inside tx.
func (r *MemoryRepo) insert(ctx context.Context, tx *sql.Tx, item core.MemoryItem) error {
	tags, err := json.Marshal(item.Tags)
	if err != nil {
		return fmt.Errorf("failed to marshal tags: %w", err)
	}

	query := `INSERT INTO memory_items (id, content, created_at, context_size, mode, tags) VALUES (?, ?, ?, ?, ?, ?)`
	if _, err := tx.ExecContext(ctx, query,
		item.ID, item.Content, item.Timestamp.UnixNano(), item.ContextSize, string(item.Mode), string(tags),
	); err != nil {
		return fmt.Errorf("failed to insert memory item: %w", err)
	}

	if r.capacity > 0 {
		trim := `DELETE FROM memory_items WHERE id NOT IN (SELECT id FROM memory_items ORDER BY id DESC LIMIT ?)`
		if _, err := tx.ExecContext(ctx, trim, r.capacity); err != nil {
			return fmt.Errorf("failed to trim memory: %w", err)
		}
	}
	return nil
}

func (r *MemoryRepo) ListMemory(ctx context.Context) ([]core.MemoryItem, error) {
	query := `SELECT id, content, created_at, context_size, mode, tags FROM memory_items ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query memory: %w", err)
	}
	defer rows.Close()

	items := make([]core.MemoryItem, 0)
	for rows.Next() {
		var (
			item    core.MemoryItem
			created int64
			mode    string
			tags    sql.NullString
		)
		if err := rows.Scan(&item.ID, &item.Content, &created, &item.ContextSize, &mode, &tags); err != nil {
			return nil, fmt.Errorf("failed to scan memory item: %w", err)
		}
		item.Timestamp = time.Unix(0, created)
		item.Mode = core.Mode(mode)

		item.Tags = make([]string, 0)
		if tags.Valid && tags.String != "" && tags.String != "null" {
			if err := json.Unmarshal([]byte(tags.String), &item.Tags); err != nil {
				return nil, fmt.Errorf("failed to unmarshal tags: %w", err)
			}
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	log.FromCtx(ctx).Debug().Int("count", len(items)).Msg("loaded memory items")
	return items, nil
}

func (r *MemoryRepo) ResetMemory(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM memory_items`); err != nil {
		return fmt.Errorf("failed to reset memory: %w", err)
	}
	return nil
}
