package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/sandevgo/orac/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := NewDB(context.Background(), MemoryDSN)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestNewDB_RunsMigrations(t *testing.T) {
	db := openTestDB(t)

	for _, table := range []string{"memory_items", "messages"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		require.NoError(t, err, table)
		assert.Equal(t, table, name)
	}
}

func TestNewDB_FileDSNCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "orac.db")

	db, err := NewDB(context.Background(), path)
	require.NoError(t, err)
	defer db.Close()

	assert.FileExists(t, path)
}

func TestMemoryRepo_RoundTripAndTrim(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepo(openTestDB(t), 3)
	at := time.Date(2025, 1, 2, 9, 30, 0, 0, time.UTC)

	for i := 1; i <= 5; i++ {
		err := repo.AddMemory(ctx, core.MemoryItem{
			ID:          int64(1000 + i),
			Content:     fmt.Sprintf("query %d", i),
			Timestamp:   at.Add(time.Duration(i) * time.Second),
			ContextSize: i,
			Mode:        core.ModeAnalyst,
			Tags:        []string{"query"},
		})
		require.NoError(t, err)
	}

	items, err := repo.ListMemory(ctx)
	require.NoError(t, err)
	require.Len(t, items, 3)

	assert.Equal(t, int64(1003), items[0].ID)
	assert.Equal(t, "query 3", items[0].Content)
	assert.Equal(t, "query 5", items[2].Content)
	assert.True(t, items[2].Timestamp.Equal(at.Add(5*time.Second)))
	assert.Equal(t, 5, items[2].ContextSize)
	assert.Equal(t, core.ModeAnalyst, items[2].Mode)
	assert.Equal(t, []string{"query"}, items[2].Tags)
}

func TestMemoryRepo_NilTagsReadBackEmpty(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepo(openTestDB(t), 10)

	require.NoError(t, repo.AddMemory(ctx, core.MemoryItem{ID: 1, Content: "hi", Timestamp: time.Now(), Mode: core.ModeAssistant}))

	items, err := repo.ListMemory(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.NotNil(t, items[0].Tags)
	assert.Empty(t, items[0].Tags)
}

func TestMemoryRepo_DuplicateIDRejected(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepo(openTestDB(t), 10)
	item := core.MemoryItem{ID: 7, Content: "once", Timestamp: time.Now(), Mode: core.ModeAssistant}

	require.NoError(t, repo.AddMemory(ctx, item))
	assert.Error(t, repo.AddMemory(ctx, item))

	items, err := repo.ListMemory(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestMemoryRepo_Reset(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepo(openTestDB(t), 10)

	require.NoError(t, repo.AddMemory(ctx, core.MemoryItem{ID: 1, Content: "a", Timestamp: time.Now(), Mode: core.ModeAssistant}))
	require.NoError(t, repo.ResetMemory(ctx))

	items, err := repo.ListMemory(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestConversationRepo_PairsAndTrim(t *testing.T) {
	ctx := context.Background()
	repo := NewConversationRepo(openTestDB(t), 4)
	at := time.Date(2025, 1, 2, 9, 30, 0, 0, time.UTC)

	for i := 1; i <= 3; i++ {
		user := core.Message{Role: core.RoleUser, Content: fmt.Sprintf("q%d", i), Timestamp: at, Mode: core.ModeStrategist}
		reply := core.Message{Role: core.RoleSystem, Content: fmt.Sprintf("a%d", i), Timestamp: at, Mode: core.ModeStrategist}
		require.NoError(t, repo.AddExchange(ctx, user, reply))
	}

	msgs, err := repo.ListMessages(ctx)
	require.NoError(t, err)
	require.Len(t, msgs, 4)

	contents := make([]string, len(msgs))
	for i, m := range msgs {
		contents[i] = m.Content
	}
	assert.Equal(t, []string{"q2", "a2", "q3", "a3"}, contents)
	assert.Equal(t, core.RoleUser, msgs[0].Role)
	assert.Equal(t, core.RoleSystem, msgs[1].Role)
	assert.Equal(t, core.ModeStrategist, msgs[3].Mode)
	assert.True(t, msgs[3].Timestamp.Equal(at))

	require.NoError(t, repo.ResetConversation(ctx))
	msgs, err = repo.ListMessages(ctx)
	require.NoError(t, err)
	assert.Empty(t, msgs)
}

func TestRepos_SatisfyCoreInterfaces(t *testing.T) {
	db := openTestDB(t)

	var _ core.MemoryRepository = NewMemoryRepo(db, 1)
	var _ core.ConversationRepository = NewConversationRepo(db, 1)
	var _ core.InteractionRepository = NewSessionRepo(db, 1, 2)
}

func testInteraction(id int64, mode core.Mode) (core.MemoryItem, core.Message, core.Message) {
	at := time.Date(2025, 1, 2, 9, 30, int(id), 0, time.UTC)
	item := core.MemoryItem{ID: id, Content: fmt.Sprintf("m%d", id), Timestamp: at, Mode: mode}
	user := core.Message{Role: core.RoleUser, Content: fmt.Sprintf("q%d", id), Timestamp: at, Mode: mode}
	reply := core.Message{Role: core.RoleSystem, Content: fmt.Sprintf("a%d", id), Timestamp: at, Mode: mode}
	return item, user, reply
}

func TestSessionRepo_AddInteraction(t *testing.T) {
	ctx := context.Background()
	repo := NewSessionRepo(openTestDB(t), 2, 4)

	for i := int64(1); i <= 3; i++ {
		item, user, reply := testInteraction(i, core.ModeAnalyst)
		require.NoError(t, repo.AddInteraction(ctx, item, user, reply))
	}

	items, err := repo.ListMemory(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, int64(2), items[0].ID)
	assert.Equal(t, int64(3), items[1].ID)

	msgs, err := repo.ListMessages(ctx)
	require.NoError(t, err)
	require.Len(t, msgs, 4)
	assert.Equal(t, "q2", msgs[0].Content)
	assert.Equal(t, "a3", msgs[3].Content)
}

func TestSessionRepo_AddInteractionRollsBackMemory(t *testing.T) {
	ctx := context.Background()
	repo := NewSessionRepo(openTestDB(t), 10, 10)

	item, user, reply := testInteraction(1, core.ModeAssistant)
	reply.Role = "narrator"

	err := repo.AddInteraction(ctx, item, user, reply)
	require.Error(t, err)

	items, err := repo.ListMemory(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)

	msgs, err := repo.ListMessages(ctx)
	require.NoError(t, err)
	assert.Empty(t, msgs)
}

func TestSessionRepo_AddInteractionMissingTable(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	repo := NewSessionRepo(db, 10, 10)

	_, err := db.Exec(`DROP TABLE messages`)
	require.NoError(t, err)

	item, user, reply := testInteraction(1, core.ModeAssistant)
	require.Error(t, repo.AddInteraction(ctx, item, user, reply))

	items, err := repo.ListMemory(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}
