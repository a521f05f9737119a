package internal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// SQLiteStore keeps transcripts in a SQLite database
type SQLiteStore struct {
	db   *sql.DB
	path string
}

var _ TranscriptStore = (*SQLiteStore)(nil)

// NewSQLiteStore opens or creates the database at path
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, &StorageError{Path: path, Op: "open", Err: err}
		}
	}
	db, err := OpenDatabase(path)
	if err != nil {
		return nil, &StorageError{Path: path, Op: "open", Err: err}
	}
	return &SQLiteStore{db: db, path: path}, nil
}

// Path returns the database location
func (s *SQLiteStore) Path() string {
	return s.path
}

// Save inserts or replaces a transcript and its messages
func (s *SQLiteStore) Save(ctx context.Context, session *Session) error {
	if session == nil || session.ID == "" {
		return &StorageError{Path: s.path, Op: "write", Err: errors.New("session has no ID")}
	}
	updatedAt := NormalizeTimestamp(session.Metadata.UpdatedAt)
	if updatedAt == "" {
		updatedAt = FormatTimestamp(time.Now())
	}
	createdAt := NormalizeTimestamp(session.Metadata.CreatedAt)
	if createdAt == "" {
		createdAt = updatedAt
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return &StorageError{Path: s.path, Op: "write", Err: err}
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO transcripts (id, name, context, source, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			context = excluded.context,
			source = excluded.source,
			updated_at = excluded.updated_at`,
		session.ID, session.Metadata.Name, session.Context, session.Source, createdAt, updatedAt)
	if err != nil {
		return &StorageError{Path: s.path, Op: "write", Err: fmt.Errorf("upsert transcript: %w", err)}
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM messages WHERE transcript_id = ?", session.ID); err != nil {
		return &StorageError{Path: s.path, Op: "write", Err: fmt.Errorf("clear messages: %w", err)}
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO messages (transcript_id, position, id, actor, content, timestamp, favorited)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return &StorageError{Path: s.path, Op: "write", Err: err}
	}
	defer stmt.Close()

	for i, msg := range session.Messages {
		fav := 0
		if msg.Favorited {
			fav = 1
		}
		if _, err := stmt.ExecContext(ctx, session.ID, i, msg.ID, msg.Actor, msg.Content, msg.Timestamp, fav); err != nil {
			return &StorageError{Path: s.path, Op: "write", Err: fmt.Errorf("insert message %d: %w", i, err)}
		}
	}

	if err := tx.Commit(); err != nil {
		return &StorageError{Path: s.path, Op: "write", Err: err}
	}
	LogDebug("Saved session %s (%d messages) to %s", session.ID, len(session.Messages), s.path)
	return nil
}

// Load returns the transcript with the given ID; a missing ID yields a NotFoundError
func (s *SQLiteStore) Load(ctx context.Context, id string) (*Session, error) {
	session := &Session{ID: id}
	row := s.db.QueryRowContext(ctx,
		"SELECT name, context, source, created_at, updated_at FROM transcripts WHERE id = ?", id)
	err := row.Scan(&session.Metadata.Name, &session.Context, &session.Source,
		&session.Metadata.CreatedAt, &session.Metadata.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &NotFoundError{ID: id}
	}
	if err != nil {
		return nil, &StorageError{Path: s.path, Op: "read", Err: err}
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, actor, content, timestamp, favorited
		FROM messages WHERE transcript_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, &StorageError{Path: s.path, Op: "read", Err: err}
	}
	defer rows.Close()

	session.Messages = make([]Message, 0)
	for rows.Next() {
		var msg Message
		var fav int
		if err := rows.Scan(&msg.ID, &msg.Actor, &msg.Content, &msg.Timestamp, &fav); err != nil {
			return nil, &StorageError{Path: s.path, Op: "read", Err: fmt.Errorf("scan failed: %w", err)}
		}
		msg.Favorited = fav != 0
		session.Messages = append(session.Messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, &StorageError{Path: s.path, Op: "read", Err: fmt.Errorf("rows iteration error: %w", err)}
	}
	session.Metadata.MessageCount = len(session.Messages)

	return session, nil
}

// List returns all transcripts, most recently updated first
func (s *SQLiteStore) List(ctx context.Context) ([]SessionSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT t.id, t.name, t.context, t.created_at, t.updated_at,
			(SELECT COUNT(*) FROM messages m WHERE m.transcript_id = t.id)
		FROM transcripts t
		ORDER BY t.updated_at DESC, t.id DESC`)
	if err != nil {
		return nil, &StorageError{Path: s.path, Op: "read", Err: fmt.Errorf("query failed: %w", err)}
	}
	defer rows.Close()

	var summaries []SessionSummary
	for rows.Next() {
		var sum SessionSummary
		if err := rows.Scan(&sum.ID, &sum.Name, &sum.Context, &sum.CreatedAt, &sum.UpdatedAt, &sum.MessageCount); err != nil {
			return nil, &StorageError{Path: s.path, Op: "read", Err: fmt.Errorf("scan failed: %w", err)}
		}
		summaries = append(summaries, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, &StorageError{Path: s.path, Op: "read", Err: fmt.Errorf("rows iteration error: %w", err)}
	}
	return summaries, nil
}

// Close closes the underlying database
func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
