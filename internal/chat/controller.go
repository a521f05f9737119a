package chat

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/iksnae/chat-session/internal"
)

// ErrNoClipboard is reported through OnCopyError when the controller has no clipboard.
var ErrNoClipboard = errors.New("clipboard unavailable")

// Host callbacks. Any of them may be nil.
type (
	SendMessageFunc     func(content, context string)
	ToggleFunc          func(open bool)
	CopyMessageFunc     func(id, content string)
	CopyErrorFunc       func(id string, err error)
	ToggleFavoriteFunc  func(id string, favorited bool)
	ContextChangeFunc   func(context string)
	SuggestionClickFunc func(text string)
)

// Callbacks is the set of host collaborators the controller reports to.
type Callbacks struct {
	OnSendMessage     SendMessageFunc
	OnToggle          ToggleFunc
	OnCopyMessage     CopyMessageFunc
	OnCopyError       CopyErrorFunc
	OnToggleFavorite  ToggleFavoriteFunc
	OnContextChange   ContextChangeFunc
	OnSuggestionClick SuggestionClickFunc
}

// Clipboard is the system clipboard capability used by CopyMessage.
type Clipboard interface {
	WriteText(text string) error
}

// Options configures a Controller.
type Options struct {
	Contexts         []ContextOption
	Suggestions      []string
	MaxMessageLength int // in runes; 0 disables clipping
}

// Controller is the behavioral layer over a Store.
type Controller struct {
	store     *Store
	cb        Callbacks
	clipboard Clipboard

	contexts    []ContextOption
	suggestions []string
	maxLen      int
}

// NewController wraps store. clipboard may be nil, in which case every copy
// reports ErrNoClipboard.
func NewController(store *Store, opts Options, cb Callbacks, clipboard Clipboard) *Controller {
	return &Controller{
		store:       store,
		cb:          cb,
		clipboard:   clipboard,
		contexts:    append([]ContextOption(nil), opts.Contexts...),
		suggestions: append([]string(nil), opts.Suggestions...),
		maxLen:      opts.MaxMessageLength,
	}
}

// Store returns the session state the controller operates on.
func (c *Controller) Store() *Store { return c.store }

// Contexts returns the context catalog.
func (c *Controller) Contexts() []ContextOption {
	return append([]ContextOption(nil), c.contexts...)
}

// Suggestions returns the suggestion list.
func (c *Controller) Suggestions() []string {
	return append([]string(nil), c.suggestions...)
}

// MaxMessageLength returns the clipping limit in runes (0 means none).
func (c *Controller) MaxMessageLength() int { return c.maxLen }

// Submit sends text as a user message. Whitespace is trimmed and text longer
// than the maximum length is clipped. Empty text, or any submission while a
// reply is outstanding, is ignored and Submit returns false.
//
// The typing flag is raised before OnSendMessage runs, so a host that
// answers synchronously from inside the callback is handled correctly and a
// nested Submit is rejected.
func (c *Controller) Submit(text string) bool {
	content := strings.TrimSpace(text)
	if content == "" {
		internal.LogDebug("chat: ignoring empty submission")
		return false
	}
	if c.store.IsTyping() {
		internal.LogDebug("chat: ignoring submission while a reply is outstanding")
		return false
	}
	content = clip(content, c.maxLen)

	c.store.AppendMessage(SenderUser, content)
	c.store.SetTyping(true)

	if c.cb.OnSendMessage != nil {
		c.cb.OnSendMessage(content, c.store.ActiveContext())
	}
	return true
}

// ReceiveReply appends an assistant message and clears the typing flag.
// Replies are always accepted, even with no outstanding request or while
// the panel is closed.
func (c *Controller) ReceiveReply(content string) Message {
	m := c.store.AppendMessage(SenderAssistant, content)
	c.store.SetTyping(false)
	return m
}

// Toggle flips the panel visibility and returns the new value.
func (c *Controller) Toggle() bool {
	open := !c.store.IsOpen()
	c.store.SetOpen(open)
	if c.cb.OnToggle != nil {
		c.cb.OnToggle(open)
	}
	return open
}

// SetOpen opens or closes the panel. OnToggle fires only on an actual change.
func (c *Controller) SetOpen(open bool) {
	if c.store.IsOpen() == open {
		return
	}
	c.Toggle()
}

// SelectSuggestion sends text immediately, without staging it in the input.
// OnSuggestionClick fires even when the submission itself is ignored.
func (c *Controller) SelectSuggestion(text string) bool {
	if c.cb.OnSuggestionClick != nil {
		c.cb.OnSuggestionClick(text)
	}
	return c.Submit(text)
}

// CopyMessage copies the content of a message to the clipboard and reports
// it through OnCopyMessage. A clipboard failure is logged and reported
// through OnCopyError; OnCopyMessage still fires. Unknown IDs return false.
func (c *Controller) CopyMessage(id string) bool {
	m, ok := c.store.Message(id)
	if !ok {
		internal.LogDebug("chat: copy of unknown message %s", id)
		return false
	}

	err := ErrNoClipboard
	if c.clipboard != nil {
		err = c.clipboard.WriteText(m.Content)
	}
	if err != nil {
		internal.LogWarn("chat: copying message %s failed: %v", id, err)
		if c.cb.OnCopyError != nil {
			c.cb.OnCopyError(id, err)
		}
	}

	if c.cb.OnCopyMessage != nil {
		c.cb.OnCopyMessage(id, m.Content)
	}
	return true
}

// ToggleFavorite flips the favorite flag of a message and reports the new
// value. Unknown IDs return false.
func (c *Controller) ToggleFavorite(id string) bool {
	favorited, ok := c.store.ToggleFavorite(id)
	if !ok {
		internal.LogDebug("chat: favorite of unknown message %s", id)
		return false
	}
	if c.cb.OnToggleFavorite != nil {
		c.cb.OnToggleFavorite(id, favorited)
	}
	return true
}

// SetContext changes the active context tag. The message log and typing
// flag are untouched.
func (c *Controller) SetContext(value string) {
	c.store.SetContext(value)
	if c.cb.OnContextChange != nil {
		c.cb.OnContextChange(value)
	}
}

// CycleContext moves to the next (step > 0) or previous (step < 0) catalog
// entry and returns its value. With an empty catalog nothing changes.
func (c *Controller) CycleContext(step int) string {
	n := len(c.contexts)
	if n == 0 || step == 0 {
		return c.store.ActiveContext()
	}
	current := -1
	for i, opt := range c.contexts {
		if opt.Value == c.store.ActiveContext() {
			current = i
			break
		}
	}
	next := ((current+step)%n + n) % n
	if current == -1 && step < 0 {
		next = n - 1
	}
	c.SetContext(c.contexts[next].Value)
	return c.contexts[next].Value
}

// ContextLabel returns the catalog label of value, falling back to value itself.
func (c *Controller) ContextLabel(value string) string {
	for _, opt := range c.contexts {
		if opt.Value == value && opt.Label != "" {
			return opt.Label
		}
	}
	return value
}

func clip(text string, max int) string {
	if max <= 0 || utf8.RuneCountInString(text) <= max {
		return text
	}
	return string([]rune(text)[:max])
}
