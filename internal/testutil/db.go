// Package testutil provides shared helpers for database-backed tests.
package testutil

import (
	"database/sql"
	"testing"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
	"github.com/stretchr/testify/require"
)

// Schema mirrors the programs migration so tests can run against an
// in-memory database without the migration machinery.
const Schema = `
CREATE TABLE programs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	guid TEXT NOT NULL UNIQUE,
	name TEXT NOT NULL UNIQUE,
	description TEXT,
	chain TEXT NOT NULL,
	created_at INTEGER NOT NULL,
	updated_at INTEGER NOT NULL
);
`

// NewTestDB creates an in-memory SQLite database with the programs schema.
// The caller is responsible for closing the database.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	_, err = db.Exec(Schema)
	require.NoError(t, err)
	return db
}
