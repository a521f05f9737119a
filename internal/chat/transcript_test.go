package chat

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iksnae/chat-session/internal"
)

func TestTranscript(t *testing.T) {
	store := NewStore(Seed{ID: "s-1", CreatedAt: testEpoch, Context: "jobs", Open: true}, testStoreOptions()...)
	c := NewController(store, Options{}, Callbacks{}, nil)
	c.Submit("Why did my job fail?")
	reply := c.ReceiveReply("It ran out of memory.")
	c.ToggleFavorite(reply.ID)

	got := c.Transcript("widget")

	want := &internal.Session{
		ID:      "s-1",
		Context: "jobs",
		Source:  "widget",
		Messages: []internal.Message{
			{ID: "msg-1", Timestamp: "2025-03-01T09:00:01.000000000Z", Actor: "user", Content: "Why did my job fail?"},
			{ID: "msg-2", Timestamp: "2025-03-01T09:00:02.000000000Z", Actor: "assistant", Content: "It ran out of memory.", Favorited: true},
		},
		Metadata: internal.Metadata{
			Name:         "Why did my job fail?",
			CreatedAt:    "2025-03-01T09:00:00.000000000Z",
			UpdatedAt:    "2025-03-01T09:00:02.000000000Z",
			MessageCount: 2,
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("transcript mismatch (-want +got):\n%s", diff)
	}
}

func TestTranscript_NameIsShortened(t *testing.T) {
	store := NewStore(Seed{Open: true})
	store.AppendMessage(SenderAssistant, "greeting")
	store.AppendMessage(SenderUser, strings.Repeat("a", 100))

	name := store.Transcript("widget").Metadata.Name
	assert.Len(t, name, transcriptNameLength)
	assert.True(t, strings.HasSuffix(name, "..."))
}

func TestSeedFromTranscript_RoundTrip(t *testing.T) {
	original := NewStore(Seed{ID: "s-2", CreatedAt: testEpoch, Context: "workflows"}, testStoreOptions()...)
	original.AppendMessage(SenderUser, "first")
	m := original.AppendMessage(SenderAssistant, "second")
	original.ToggleFavorite(m.ID)

	seed := SeedFromTranscript(original.Transcript("widget"), true)
	resumed := NewStore(seed)

	assert.Equal(t, "s-2", resumed.ID())
	assert.Equal(t, "workflows", resumed.ActiveContext())
	assert.True(t, resumed.IsOpen())
	assert.Zero(t, resumed.UnreadCount())
	assert.True(t, resumed.CreatedAt().Equal(testEpoch))
	if diff := cmp.Diff(original.Messages(), resumed.Messages()); diff != "" {
		t.Errorf("messages mismatch (-want +got):\n%s", diff)
	}
}

func TestSeedFromTranscript_BadTimestamp(t *testing.T) {
	session := internal.CreateTestSession("s-3")
	session.Messages[0].Timestamp = "yesterday"

	resumed := NewStore(SeedFromTranscript(session, false))
	msgs := resumed.Messages()
	require.Len(t, msgs, 2)
	assert.False(t, msgs[0].Timestamp.IsZero(), "filled in by the store")
	assert.WithinDuration(t, time.Now(), msgs[0].Timestamp, time.Minute)
	assert.True(t, msgs[1].Favorited)
}

func TestFromConfig(t *testing.T) {
	cfg := internal.DefaultConfig()
	cfg.InitiallyOpen = true
	cfg.MaxMessageLength = 10

	seed, opts := FromConfig(cfg)
	assert.Equal(t, "jobs", seed.Context)
	assert.True(t, seed.Open)
	assert.Empty(t, seed.ID)
	require.Len(t, seed.Messages, 1)
	assert.Equal(t, SenderAssistant, seed.Messages[0].Sender)

	assert.Equal(t, []ContextOption{{Value: "jobs", Label: "Jobs"}, {Value: "workflows", Label: "Workflows"}}, opts.Contexts)
	assert.Equal(t, cfg.Suggestions, opts.Suggestions)
	assert.Equal(t, 10, opts.MaxMessageLength)

	seed, _ = FromConfig(nil)
	assert.Equal(t, "jobs", seed.Context)
}
