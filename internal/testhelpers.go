package internal

import (
	"time"
)

// CreateTestSession creates a test session with sample data
func CreateTestSession(id string) *Session {
	now := time.Now().UTC().Format(time.RFC3339)
	return &Session{
		ID:      id,
		Context: "jobs",
		Source:  "widget",
		Messages: []Message{
			{
				ID:        id + "-1",
				Actor:     "user",
				Content:   "Hello, how are you?",
				Timestamp: now,
			},
			{
				ID:        id + "-2",
				Actor:     "assistant",
				Content:   "I'm doing well, thank you!",
				Timestamp: now,
				Favorited: true,
			},
		},
		Metadata: Metadata{
			Name:         "Test Conversation",
			MessageCount: 2,
			CreatedAt:    now,
			UpdatedAt:    now,
		},
	}
}

// CreateTestSessionWithMessages creates a test session with custom messages
func CreateTestSessionWithMessages(id string, messages []Message) *Session {
	return &Session{
		ID:       id,
		Source:   "widget",
		Messages: messages,
		Metadata: Metadata{
			MessageCount: len(messages),
		},
	}
}
