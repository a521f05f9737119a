package chat

import (
	"time"
	"unicode/utf8"

	"github.com/iksnae/chat-session/internal"
)

const transcriptNameLength = 60

// Transcript converts the session to the persisted transcript model. The
// transcript is named after the first user message.
func (s *Store) Transcript(source string) *internal.Session {
	messages := make([]internal.Message, 0, len(s.messages))
	name := ""
	updated := s.createdAt
	for _, m := range s.messages {
		messages = append(messages, internal.Message{
			ID:        m.ID,
			Timestamp: formatTimestamp(m.Timestamp),
			Actor:     string(m.Sender),
			Content:   m.Content,
			Favorited: m.Favorited,
		})
		if name == "" && m.Sender == SenderUser {
			name = transcriptName(m.Content)
		}
		if m.Timestamp.After(updated) {
			updated = m.Timestamp
		}
	}

	return &internal.Session{
		ID:       s.id,
		Context:  s.activeContext,
		Source:   source,
		Messages: messages,
		Metadata: internal.Metadata{
			Name:         name,
			CreatedAt:    formatTimestamp(s.createdAt),
			UpdatedAt:    formatTimestamp(updated),
			MessageCount: len(messages),
		},
	}
}

// Transcript converts the controlled session to the persisted transcript model.
func (c *Controller) Transcript(source string) *internal.Session {
	return c.store.Transcript(source)
}

// SeedFromTranscript rebuilds a seed from a stored transcript so a session
// can be resumed. IDs, timestamps and favorites are kept; unparsable
// timestamps are left zero and filled in by NewStore.
func SeedFromTranscript(session *internal.Session, open bool) Seed {
	seed := Seed{
		ID:      session.ID,
		Context: session.Context,
		Open:    open,
	}
	seed.CreatedAt, _ = parseTimestamp(session.Metadata.CreatedAt)

	seed.Messages = make([]Message, 0, len(session.Messages))
	for _, m := range session.Messages {
		ts, err := parseTimestamp(m.Timestamp)
		if err != nil {
			internal.LogDebug("chat: message %s has invalid timestamp %q", m.ID, m.Timestamp)
		}
		seed.Messages = append(seed.Messages, Message{
			ID:        m.ID,
			Content:   m.Content,
			Sender:    Sender(m.Actor),
			Timestamp: ts,
			Favorited: m.Favorited,
		})
	}
	return seed
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return internal.FormatTimestamp(t)
}

func parseTimestamp(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339Nano, s)
}

func transcriptName(content string) string {
	if utf8.RuneCountInString(content) <= transcriptNameLength {
		return content
	}
	return string([]rune(content)[:transcriptNameLength-3]) + "..."
}
