package sqlite

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDriverAppliesPragmas(t *testing.T) {
	db, err := sql.Open(DriverName, ":memory:")
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, db.Ping())

	var fk int
	require.NoError(t, db.QueryRow("PRAGMA foreign_keys").Scan(&fk))
	assert.Equal(t, 1, fk)

	var timeout int
	require.NoError(t, db.QueryRow("PRAGMA busy_timeout").Scan(&timeout))
	assert.Equal(t, 5000, timeout)
}

func TestInMemoryDatabaseIsPrivate(t *testing.T) {
	first, err := sql.Open(DriverName, ":memory:")
	require.NoError(t, err)
	defer first.Close()
	first.SetMaxOpenConns(1)

	_, err = first.Exec(`CREATE TABLE items (id INTEGER PRIMARY KEY, content TEXT)`)
	require.NoError(t, err)
	_, err = first.Exec(`INSERT INTO items (content) VALUES (?)`, "hello")
	require.NoError(t, err)

	var count int
	require.NoError(t, first.QueryRow(`SELECT COUNT(*) FROM items`).Scan(&count))
	assert.Equal(t, 1, count)

	second, err := sql.Open(DriverName, ":memory:")
	require.NoError(t, err)
	defer second.Close()

	err = second.QueryRow(`SELECT COUNT(*) FROM items`).Scan(&count)
	assert.Error(t, err, "a fresh in-memory database must not see other connections' tables")
}
