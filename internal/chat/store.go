package chat

import (
	"time"
)

// View is the derived state the presentation layer recomputes after every
// mutation: the length of the message list, the typing banner, the badge.
type View struct {
	MessageCount  int
	Typing        bool
	Open          bool
	Unread        int
	ActiveContext string
}

// Seed is the host-supplied starting point of a session.
type Seed struct {
	ID        string // generated when empty
	CreatedAt time.Time
	Messages  []Message
	Context   string
	Open      bool
}

// StoreOption customizes a Store.
type StoreOption func(*Store)

// WithClock replaces time.Now for message timestamps.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator replaces NewID for message IDs. The session ID is not affected.
func WithIDGenerator(fn func() string) StoreOption {
	return func(s *Store) { s.newID = fn }
}

type observer struct {
	id int
	fn func(View)
}

// Store is the single source of truth for one session. It applies no
// business rules and never fails: unknown IDs are ignored.
type Store struct {
	id        string
	createdAt time.Time

	messages      []Message
	index         map[string]int
	open          bool
	typing        bool
	activeContext string
	unread        int

	observers  []observer
	observerID int

	now   func() time.Time
	newID func() string
}

// NewStore creates a session from seed. Seeded messages keep their ID and
// timestamp when they have one and never count as unread.
func NewStore(seed Seed, opts ...StoreOption) *Store {
	s := &Store{
		id:            seed.ID,
		createdAt:     seed.CreatedAt,
		index:         make(map[string]int, len(seed.Messages)),
		open:          seed.Open,
		activeContext: seed.Context,
		now:           time.Now,
		newID:         NewID,
	}
	for _, opt := range opts {
		opt(s)
	}
	// Session IDs never draw from the message ID sequence.
	if s.id == "" {
		s.id = NewID()
	}
	if s.createdAt.IsZero() {
		s.createdAt = s.now()
	}

	s.messages = make([]Message, 0, len(seed.Messages))
	for _, m := range seed.Messages {
		if _, dup := s.index[m.ID]; m.ID == "" || dup {
			m.ID = s.newID()
		}
		if m.Timestamp.IsZero() {
			m.Timestamp = s.now()
		}
		if !m.Sender.Valid() {
			m.Sender = SenderAssistant
		}
		s.index[m.ID] = len(s.messages)
		s.messages = append(s.messages, m)
	}
	return s
}

// ID returns the session ID.
func (s *Store) ID() string { return s.id }

// CreatedAt returns when the session was first created.
func (s *Store) CreatedAt() time.Time { return s.createdAt }

// AppendMessage adds a message with a fresh ID and the current time. An
// assistant message arriving while the panel is closed counts as unread.
func (s *Store) AppendMessage(sender Sender, content string) Message {
	m := Message{
		ID:        s.newID(),
		Content:   content,
		Sender:    sender,
		Timestamp: s.now(),
	}
	if _, dup := s.index[m.ID]; dup {
		m.ID = NewID()
	}
	s.index[m.ID] = len(s.messages)
	s.messages = append(s.messages, m)

	if sender == SenderAssistant && !s.open {
		s.unread++
	}
	s.notify()
	return m
}

// SetTyping sets the typing flag.
func (s *Store) SetTyping(typing bool) {
	if s.typing == typing {
		return
	}
	s.typing = typing
	s.notify()
}

// SetOpen sets the panel visibility. Opening clears the unread counter.
func (s *Store) SetOpen(open bool) {
	if s.open == open {
		return
	}
	s.open = open
	if open {
		s.unread = 0
	}
	s.notify()
}

// SetContext sets the active context tag without checking it against any catalog.
func (s *Store) SetContext(value string) {
	if s.activeContext == value {
		return
	}
	s.activeContext = value
	s.notify()
}

// ToggleFavorite flips the favorite flag of the message with the given ID and
// returns the new value. ok is false, and nothing changes, when the ID is unknown.
func (s *Store) ToggleFavorite(id string) (favorited bool, ok bool) {
	i, found := s.index[id]
	if !found {
		return false, false
	}
	s.messages[i].Favorited = !s.messages[i].Favorited
	s.notify()
	return s.messages[i].Favorited, true
}

// Message returns the message with the given ID.
func (s *Store) Message(id string) (Message, bool) {
	i, found := s.index[id]
	if !found {
		return Message{}, false
	}
	return s.messages[i], true
}

// Messages returns a copy of the log in insertion order.
func (s *Store) Messages() []Message {
	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Len returns the number of messages in the log.
func (s *Store) Len() int { return len(s.messages) }

func (s *Store) IsOpen() bool          { return s.open }
func (s *Store) IsTyping() bool        { return s.typing }
func (s *Store) ActiveContext() string { return s.activeContext }
func (s *Store) UnreadCount() int      { return s.unread }

// View returns the current derived state.
func (s *Store) View() View {
	return View{
		MessageCount:  len(s.messages),
		Typing:        s.typing,
		Open:          s.open,
		Unread:        s.unread,
		ActiveContext: s.activeContext,
	}
}

// Subscribe registers fn to receive the View after every mutation.
// Observers must not mutate the store.
func (s *Store) Subscribe(fn func(View)) (unsubscribe func()) {
	s.observerID++
	id := s.observerID
	s.observers = append(s.observers, observer{id: id, fn: fn})
	return func() {
		for i, o := range s.observers {
			if o.id == id {
				s.observers = append(s.observers[:i:i], s.observers[i+1:]...)
				return
			}
		}
	}
}

func (s *Store) notify() {
	if len(s.observers) == 0 {
		return
	}
	v := s.View()
	for _, o := range append([]observer(nil), s.observers...) {
		o.fn(v)
	}
}
