package internal

import (
	"context"
	"path/filepath"
	"strings"
)

// TranscriptStore persists chat session transcripts.
// The chat core never touches it; durability is owned by the host.
type TranscriptStore interface {
	Save(ctx context.Context, session *Session) error
	Load(ctx context.Context, id string) (*Session, error)
	List(ctx context.Context) ([]SessionSummary, error)
	Close() error
}

// OpenStore picks a backend from the path: "*.db" / "*.sqlite" / ":memory:" open a
// SQLite database, anything else is treated as a file archive directory.
func OpenStore(path string) (TranscriptStore, error) {
	if path == "" {
		dir, err := DefaultDataDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(dir, "transcripts.db")
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return NewSQLiteStore(path)
	}
	if path == ":memory:" {
		return NewSQLiteStore(path)
	}
	return NewFileStore(path)
}
