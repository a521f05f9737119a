package chat

import (
	"sort"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStore_Seed(t *testing.T) {
	seedTime := testEpoch.Add(-time.Hour)
	store := NewStore(Seed{
		ID:      "session-1",
		Context: "jobs",
		Messages: []Message{
			{ID: "a", Sender: SenderAssistant, Content: "welcome", Timestamp: seedTime},
			{ID: "a", Sender: SenderUser, Content: "duplicate id"},
			{Sender: "bot", Content: "unknown sender"},
		},
	}, testStoreOptions()...)

	assert.Equal(t, "session-1", store.ID())
	assert.Equal(t, "jobs", store.ActiveContext())
	assert.False(t, store.IsOpen())
	assert.Zero(t, store.UnreadCount(), "seeded messages never count as unread")

	msgs := store.Messages()
	require.Len(t, msgs, 3)
	assert.Equal(t, "a", msgs[0].ID)
	assert.Equal(t, seedTime, msgs[0].Timestamp)
	assert.NotEqual(t, "a", msgs[1].ID, "duplicate id is regenerated")
	assert.False(t, msgs[1].Timestamp.IsZero())
	assert.Equal(t, SenderAssistant, msgs[2].Sender)
}

func TestNewStore_GeneratesIDAndCreatedAt(t *testing.T) {
	store := NewStore(Seed{})
	assert.NotEmpty(t, store.ID())
	assert.False(t, store.CreatedAt().IsZero())
	assert.Zero(t, store.Len())
}

func TestNewStore_SessionIDKeepsMessageSequence(t *testing.T) {
	store := NewStore(Seed{}, testStoreOptions()...)

	assert.NotEqual(t, "msg-1", store.ID())
	assert.Equal(t, "msg-1", store.AppendMessage(SenderUser, "first").ID)
	assert.Equal(t, "msg-2", store.AppendMessage(SenderAssistant, "second").ID)
}

func TestStore_AppendMessage(t *testing.T) {
	store := NewStore(Seed{Open: true}, testStoreOptions()...)

	m := store.AppendMessage(SenderUser, "hello")
	assert.Equal(t, "msg-1", m.ID)
	assert.Equal(t, SenderUser, m.Sender)
	assert.Equal(t, "hello", m.Content)
	assert.False(t, m.Favorited)
	assert.False(t, m.Timestamp.IsZero())

	got, ok := store.Message(m.ID)
	require.True(t, ok)
	assert.Equal(t, m, got)
}

func TestStore_UnreadAccounting(t *testing.T) {
	tests := []struct {
		name   string
		open   bool
		sender Sender
		want   int
	}{
		{"assistant while closed", false, SenderAssistant, 1},
		{"assistant while open", true, SenderAssistant, 0},
		{"user while closed", false, SenderUser, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewStore(Seed{Open: tt.open})
			store.AppendMessage(tt.sender, "x")
			assert.Equal(t, tt.want, store.UnreadCount())
		})
	}
}

func TestStore_SetOpenResetsUnread(t *testing.T) {
	store := NewStore(Seed{})
	for i := 0; i < 3; i++ {
		store.AppendMessage(SenderAssistant, "ping")
	}
	require.Equal(t, 3, store.UnreadCount())

	store.SetOpen(true)
	assert.Zero(t, store.UnreadCount())

	store.SetOpen(false)
	store.AppendMessage(SenderAssistant, "again")
	assert.Equal(t, 1, store.UnreadCount())
}

func TestStore_ToggleFavorite(t *testing.T) {
	store := NewStore(Seed{}, testStoreOptions()...)
	m := store.AppendMessage(SenderAssistant, "answer")

	fav, ok := store.ToggleFavorite(m.ID)
	require.True(t, ok)
	assert.True(t, fav)

	fav, ok = store.ToggleFavorite(m.ID)
	require.True(t, ok)
	assert.False(t, fav)

	before := store.Messages()
	_, ok = store.ToggleFavorite("ghost")
	assert.False(t, ok)
	assert.Empty(t, cmp.Diff(before, store.Messages()))
}

func TestStore_SetContextIsUnvalidated(t *testing.T) {
	store := NewStore(Seed{Context: "jobs"})
	store.SetContext("anything-at-all")
	assert.Equal(t, "anything-at-all", store.ActiveContext())
}

func TestStore_MessagesReturnsCopy(t *testing.T) {
	store := NewStore(Seed{})
	store.AppendMessage(SenderUser, "original")

	msgs := store.Messages()
	msgs[0].Content = "changed"
	assert.Equal(t, "original", store.Messages()[0].Content)
}

func TestStore_IDsSortInCreationOrder(t *testing.T) {
	store := NewStore(Seed{})
	var ids []string
	for i := 0; i < 50; i++ {
		ids = append(ids, store.AppendMessage(SenderUser, "m").ID)
	}
	assert.True(t, sort.StringsAreSorted(ids))
}

func TestStore_Subscribe(t *testing.T) {
	store := NewStore(Seed{Context: "jobs"})
	var views []View
	unsubscribe := store.Subscribe(func(v View) { views = append(views, v) })

	store.SetOpen(true)
	store.SetOpen(true) // no change, no notification
	store.AppendMessage(SenderUser, "hi")
	store.SetTyping(true)
	store.SetContext("workflows")

	want := []View{
		{Open: true, ActiveContext: "jobs"},
		{Open: true, MessageCount: 1, ActiveContext: "jobs"},
		{Open: true, MessageCount: 1, Typing: true, ActiveContext: "jobs"},
		{Open: true, MessageCount: 1, Typing: true, ActiveContext: "workflows"},
	}
	if diff := cmp.Diff(want, views); diff != "" {
		t.Errorf("views mismatch (-want +got):\n%s", diff)
	}

	unsubscribe()
	store.SetTyping(false)
	assert.Len(t, views, len(want))
}

func TestStore_UnsubscribeDuringNotify(t *testing.T) {
	store := NewStore(Seed{})
	calls := 0
	var unsubscribe func()
	unsubscribe = store.Subscribe(func(View) {
		calls++
		unsubscribe()
	})
	other := 0
	store.Subscribe(func(View) { other++ })

	store.SetOpen(true)
	store.SetOpen(false)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 2, other)
}
