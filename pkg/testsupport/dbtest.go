// Package testsupport provides helpers shared by storage integration tests.
package testsupport

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

// NewSQLiteMemoryDB opens a shared-cache in-memory SQLite database pinned to a
// single connection, so every query in a test observes the same schema and
// data instead of landing on a fresh empty database.
func NewSQLiteMemoryDB() (*sql.DB, error) {
	db, err := sql.Open("sqlite3", "file::memory:?cache=shared")
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	return db, nil
}
