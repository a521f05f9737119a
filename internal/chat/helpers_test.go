package chat

import (
	"errors"
	"fmt"
	"time"
)

var testEpoch = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

// testStoreOptions make IDs and timestamps deterministic: msg-1, msg-2, ...
// one second apart starting at testEpoch.
func testStoreOptions() []StoreOption {
	var ids, ticks int
	return []StoreOption{
		WithIDGenerator(func() string {
			ids++
			return fmt.Sprintf("msg-%d", ids)
		}),
		WithClock(func() time.Time {
			ticks++
			return testEpoch.Add(time.Duration(ticks) * time.Second)
		}),
	}
}

type event struct {
	Name string
	Args []any
}

// recorder captures every host callback in call order.
type recorder struct {
	events []event
}

func (r *recorder) callbacks() Callbacks {
	return Callbacks{
		OnSendMessage: func(content, context string) {
			r.add("send", content, context)
		},
		OnToggle: func(open bool) {
			r.add("toggle", open)
		},
		OnCopyMessage: func(id, content string) {
			r.add("copy", id, content)
		},
		OnCopyError: func(id string, err error) {
			r.add("copy_error", id, err.Error())
		},
		OnToggleFavorite: func(id string, favorited bool) {
			r.add("favorite", id, favorited)
		},
		OnContextChange: func(context string) {
			r.add("context", context)
		},
		OnSuggestionClick: func(text string) {
			r.add("suggestion", text)
		},
	}
}

func (r *recorder) add(name string, args ...any) {
	r.events = append(r.events, event{Name: name, Args: args})
}

func (r *recorder) named(name string) []event {
	var out []event
	for _, e := range r.events {
		if e.Name == name {
			out = append(out, e)
		}
	}
	return out
}

type fakeClipboard struct {
	text string
	err  error
}

func (c *fakeClipboard) WriteText(text string) error {
	if c.err != nil {
		return c.err
	}
	c.text = text
	return nil
}

var errClipboardDenied = errors.New("permission denied")

func newTestController(seed Seed, opts Options) (*Controller, *recorder, *fakeClipboard) {
	rec := &recorder{}
	clip := &fakeClipboard{}
	store := NewStore(seed, testStoreOptions()...)
	return NewController(store, opts, rec.callbacks(), clip), rec, clip
}

// logOf reduces the message log to sender/content pairs for comparisons.
func logOf(s *Store) []Message {
	var out []Message
	for _, m := range s.Messages() {
		out = append(out, Message{Sender: m.Sender, Content: m.Content})
	}
	return out
}

// manualScheduler runs timers only when the test advances it.
type manualScheduler struct {
	now    time.Duration
	timers []*manualTimer
}

type manualTimer struct {
	at       time.Duration
	fn       func()
	canceled bool
	fired    bool
}

func (s *manualScheduler) AfterFunc(d time.Duration, fn func()) func() {
	t := &manualTimer{at: s.now + d, fn: fn}
	s.timers = append(s.timers, t)
	return func() { t.canceled = true }
}

func (s *manualScheduler) Advance(d time.Duration) {
	s.now += d
	for _, t := range s.timers {
		if !t.canceled && !t.fired && t.at <= s.now {
			t.fired = true
			t.fn()
		}
	}
}

func (s *manualScheduler) pending() int {
	n := 0
	for _, t := range s.timers {
		if !t.canceled && !t.fired {
			n++
		}
	}
	return n
}

// fireStale runs every timer callback regardless of cancellation, simulating
// a timer whose cancellation lost a race.
func (s *manualScheduler) fireStale() {
	for _, t := range s.timers {
		t.fn()
	}
}
