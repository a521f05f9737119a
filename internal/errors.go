package internal

import (
	"errors"
	"fmt"
)

// ErrSessionNotFound is returned by transcript stores when no transcript has the requested ID
var ErrSessionNotFound = errors.New("session not found")

// ErrInvalidSessionID is returned for IDs that cannot name a stored transcript
var ErrInvalidSessionID = errors.New("invalid session ID")

// StorageError represents errors accessing transcript storage
type StorageError struct {
	Path string
	Op   string // "open", "read", "write", "migrate"
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// ConfigError represents an invalid or unreadable widget configuration
type ConfigError struct {
	Path  string
	Field string // empty when the whole file is at fault
	Err   error
}

func (e *ConfigError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("config error %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("config error %s [%s]: %v", e.Path, e.Field, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NotFoundError reports a missing transcript and matches ErrSessionNotFound
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("session %s: %v", e.ID, ErrSessionNotFound)
}

func (e *NotFoundError) Unwrap() error {
	return ErrSessionNotFound
}

// ExportError represents errors during export
type ExportError struct {
	Format string
	Path   string
	Err    error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export error [%s] %s: %v", e.Format, e.Path, e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}
