package chat

import (
	"time"

	"github.com/google/uuid"
)

// Sender identifies who wrote a message.
type Sender string

const (
	SenderUser      Sender = "user"
	SenderAssistant Sender = "assistant"
)

// Valid reports whether s is one of the known senders.
func (s Sender) Valid() bool {
	return s == SenderUser || s == SenderAssistant
}

// Message is one entry of the session log.
type Message struct {
	ID        string
	Content   string
	Sender    Sender
	Timestamp time.Time
	Favorited bool
}

// ContextOption is one entry of the host's context catalog.
type ContextOption struct {
	Value string
	Label string
}

// NewID returns a time-ordered UUIDv7 string; later IDs sort after earlier ones.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
