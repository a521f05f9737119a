package internal

import "time"

// TimestampLayout is RFC 3339 with a fixed nine-digit fraction. Stored
// timestamps share one width, so they sort as strings in time order.
const TimestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

// FormatTimestamp formats t in UTC with TimestampLayout
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// NormalizeTimestamp rewrites an RFC 3339 timestamp in TimestampLayout.
// Empty and unparsable values are returned unchanged.
func NormalizeTimestamp(ts string) string {
	if ts == "" {
		return ts
	}
	t, err := time.Parse(time.RFC3339Nano, ts)
	if err != nil {
		return ts
	}
	return FormatTimestamp(t)
}

// Session represents a persisted chat session transcript
type Session struct {
	ID       string    `json:"id" yaml:"id"`
	Context  string    `json:"context,omitempty" yaml:"context,omitempty"` // active context tag when saved
	Source   string    `json:"source" yaml:"source"`                       // "widget", "scenario"
	Messages []Message `json:"messages" yaml:"messages"`
	Metadata Metadata  `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Message represents a single transcript message
type Message struct {
	ID        string `json:"id" yaml:"id"`
	Timestamp string `json:"timestamp,omitempty" yaml:"timestamp,omitempty"`
	Actor     string `json:"actor" yaml:"actor"` // "user", "assistant"
	Content   string `json:"content" yaml:"content"`
	Favorited bool   `json:"favorited,omitempty" yaml:"favorited,omitempty"`
}

// Metadata contains additional session information
type Metadata struct {
	Name         string `json:"name,omitempty" yaml:"name,omitempty"`
	CreatedAt    string `json:"created_at,omitempty" yaml:"created_at,omitempty"`
	UpdatedAt    string `json:"updated_at,omitempty" yaml:"updated_at,omitempty"`
	MessageCount int    `json:"message_count" yaml:"message_count"`
}

// SessionSummary is the listing view of a stored transcript
type SessionSummary struct {
	ID           string `json:"id" yaml:"id"`
	Name         string `json:"name,omitempty" yaml:"name,omitempty"`
	Context      string `json:"context,omitempty" yaml:"context,omitempty"`
	CreatedAt    string `json:"created_at,omitempty" yaml:"created_at,omitempty"`
	UpdatedAt    string `json:"updated_at,omitempty" yaml:"updated_at,omitempty"`
	MessageCount int    `json:"message_count" yaml:"message_count"`
}

// Summary returns the listing view of the session
func (s *Session) Summary() SessionSummary {
	return SessionSummary{
		ID:           s.ID,
		Name:         s.Metadata.Name,
		Context:      s.Context,
		CreatedAt:    s.Metadata.CreatedAt,
		UpdatedAt:    s.Metadata.UpdatedAt,
		MessageCount: len(s.Messages),
	}
}

// Favorites returns only the favorited messages, in transcript order
func (s *Session) Favorites() []Message {
	var favs []Message
	for _, msg := range s.Messages {
		if msg.Favorited {
			favs = append(favs, msg)
		}
	}
	return favs
}
