package internal

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS transcripts (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL DEFAULT '',
	context    TEXT NOT NULL DEFAULT '',
	source     TEXT NOT NULL DEFAULT '',
	created_at TEXT NOT NULL DEFAULT '',
	updated_at TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS messages (
	transcript_id TEXT NOT NULL,
	position      INTEGER NOT NULL,
	id            TEXT NOT NULL,
	actor         TEXT NOT NULL,
	content       TEXT NOT NULL,
	timestamp     TEXT NOT NULL DEFAULT '',
	favorited     INTEGER NOT NULL DEFAULT 0,
	PRIMARY KEY (transcript_id, position)
);
CREATE INDEX IF NOT EXISTS idx_transcripts_updated ON transcripts(updated_at);
`

// OpenDatabase opens (creating if needed) a SQLite transcript database and applies the schema
func OpenDatabase(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// A single connection keeps ":memory:" databases coherent and serializes writers.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("schema migration failed: %w", err)
	}

	return db, nil
}
