package internal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// FileStore keeps transcripts as one JSON file per session plus a YAML index
type FileStore struct {
	dir string
}

var _ TranscriptStore = (*FileStore)(nil)

// ArchiveIndex is the YAML index of all archived sessions
type ArchiveIndex struct {
	Sessions  []SessionSummary `yaml:"sessions"`
	Version   string           `yaml:"version"`
	UpdatedAt time.Time        `yaml:"updated_at"`
}

const archiveVersion = "1.0"

// NewFileStore creates a file archive rooted at dir
func NewFileStore(dir string) (*FileStore, error) {
	fs := &FileStore{dir: dir}
	if err := fs.ensureDir(); err != nil {
		return nil, err
	}
	return fs, nil
}

func (fs *FileStore) ensureDir() error {
	if err := os.MkdirAll(fs.dir, 0755); err != nil {
		return &StorageError{Path: fs.dir, Op: "open", Err: err}
	}
	return nil
}

// Dir returns the archive directory
func (fs *FileStore) Dir() string {
	return fs.dir
}

// IndexPath returns the path to the session index YAML file
func (fs *FileStore) IndexPath() string {
	return filepath.Join(fs.dir, "sessions.yaml")
}

// SessionPath returns the path to a session's JSON file
func (fs *FileStore) SessionPath(sessionID string) string {
	return filepath.Join(fs.dir, fmt.Sprintf("session_%s.json", sessionID))
}

// checkSessionID rejects IDs that would resolve outside the archive directory
func checkSessionID(id string) error {
	if strings.ContainsAny(id, `/\`) || strings.Contains(id, "..") {
		return fmt.Errorf("%w: %q", ErrInvalidSessionID, id)
	}
	return nil
}

// LoadIndex loads the session index; a missing index is an empty one
func (fs *FileStore) LoadIndex() (*ArchiveIndex, error) {
	data, err := os.ReadFile(fs.IndexPath())
	if errors.Is(err, os.ErrNotExist) {
		return &ArchiveIndex{Version: archiveVersion}, nil
	}
	if err != nil {
		return nil, &StorageError{Path: fs.IndexPath(), Op: "read", Err: err}
	}

	var index ArchiveIndex
	if err := yaml.Unmarshal(data, &index); err != nil {
		return nil, &StorageError{Path: fs.IndexPath(), Op: "read", Err: fmt.Errorf("failed to unmarshal index: %w", err)}
	}
	return &index, nil
}

func (fs *FileStore) saveIndex(index *ArchiveIndex) error {
	index.Version = archiveVersion
	index.UpdatedAt = time.Now().UTC()
	data, err := yaml.Marshal(index)
	if err != nil {
		return &StorageError{Path: fs.IndexPath(), Op: "write", Err: fmt.Errorf("failed to marshal index: %w", err)}
	}
	if err := os.WriteFile(fs.IndexPath(), data, 0644); err != nil {
		return &StorageError{Path: fs.IndexPath(), Op: "write", Err: err}
	}
	return nil
}

// Save writes the session file and updates its index entry
func (fs *FileStore) Save(ctx context.Context, session *Session) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if session == nil || session.ID == "" {
		return &StorageError{Path: fs.dir, Op: "write", Err: errors.New("session has no ID")}
	}
	if err := fs.ensureDir(); err != nil {
		return err
	}

	if err := checkSessionID(session.ID); err != nil {
		return &StorageError{Path: fs.dir, Op: "write", Err: err}
	}

	stored := *session
	stored.Metadata.UpdatedAt = NormalizeTimestamp(stored.Metadata.UpdatedAt)
	stored.Metadata.CreatedAt = NormalizeTimestamp(stored.Metadata.CreatedAt)
	if stored.Metadata.UpdatedAt == "" {
		stored.Metadata.UpdatedAt = FormatTimestamp(time.Now())
	}
	if stored.Metadata.CreatedAt == "" {
		stored.Metadata.CreatedAt = stored.Metadata.UpdatedAt
	}
	stored.Metadata.MessageCount = len(stored.Messages)

	data, err := json.MarshalIndent(&stored, "", "  ")
	if err != nil {
		return &StorageError{Path: fs.SessionPath(stored.ID), Op: "write", Err: fmt.Errorf("failed to marshal session: %w", err)}
	}
	if err := os.WriteFile(fs.SessionPath(stored.ID), data, 0644); err != nil {
		return &StorageError{Path: fs.SessionPath(stored.ID), Op: "write", Err: err}
	}

	index, err := fs.LoadIndex()
	if err != nil {
		return err
	}

	entry := stored.Summary()
	found := false
	for i, existing := range index.Sessions {
		if existing.ID == entry.ID {
			entry.CreatedAt = existing.CreatedAt
			index.Sessions[i] = entry
			found = true
			break
		}
	}
	if !found {
		index.Sessions = append(index.Sessions, entry)
	}

	LogDebug("Archived session %s (%d messages) in %s", stored.ID, len(stored.Messages), fs.dir)
	return fs.saveIndex(index)
}

// Load reads a single session file
func (fs *FileStore) Load(ctx context.Context, id string) (*Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := checkSessionID(id); err != nil {
		return nil, &StorageError{Path: fs.dir, Op: "read", Err: err}
	}
	data, err := os.ReadFile(fs.SessionPath(id))
	if errors.Is(err, os.ErrNotExist) {
		return nil, &NotFoundError{ID: id}
	}
	if err != nil {
		return nil, &StorageError{Path: fs.SessionPath(id), Op: "read", Err: err}
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, &StorageError{Path: fs.SessionPath(id), Op: "read", Err: fmt.Errorf("failed to unmarshal session: %w", err)}
	}
	return &session, nil
}

// List returns the index entries, most recently updated first
func (fs *FileStore) List(ctx context.Context) ([]SessionSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	index, err := fs.LoadIndex()
	if err != nil {
		return nil, err
	}
	summaries := append([]SessionSummary(nil), index.Sessions...)
	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].UpdatedAt > summaries[j].UpdatedAt
	})
	return summaries, nil
}

// Clear removes every archived session and the index
func (fs *FileStore) Clear() error {
	index, err := fs.LoadIndex()
	if err == nil {
		for _, entry := range index.Sessions {
			_ = os.Remove(fs.SessionPath(entry.ID))
		}
	}

	if err := os.Remove(fs.IndexPath()); err != nil && !os.IsNotExist(err) {
		return &StorageError{Path: fs.IndexPath(), Op: "write", Err: err}
	}
	return nil
}

// Close is a no-op for the file archive
func (fs *FileStore) Close() error {
	return nil
}
