package scenario

import (
	"errors"
	"fmt"

	"github.com/iksnae/chat-session/internal"
	"github.com/iksnae/chat-session/internal/chat"
)

// ErrClipboardDenied is what the scripted clipboard fails with when the
// scenario sets clipboard_fails.
var ErrClipboardDenied = errors.New("clipboard write denied")

// Event is one host callback observed while running a scenario
type Event struct {
	Step     int    `json:"step" yaml:"step"`
	Callback string `json:"callback" yaml:"callback"`
	Detail   string `json:"detail,omitempty" yaml:"detail,omitempty"`
}

// StepResult reports whether a step changed anything
type StepResult struct {
	Step     int    `json:"step" yaml:"step"`
	Action   string `json:"action" yaml:"action"`
	Accepted bool   `json:"accepted" yaml:"accepted"`
}

// State is the session state after the last step
type State struct {
	Open          bool   `json:"open" yaml:"open"`
	Typing        bool   `json:"typing" yaml:"typing"`
	Unread        int    `json:"unread" yaml:"unread"`
	ActiveContext string `json:"active_context" yaml:"active_context"`
	MessageCount  int    `json:"message_count" yaml:"message_count"`
}

// Result is the outcome of a scenario run
type Result struct {
	Name       string            `json:"name" yaml:"name"`
	Steps      []StepResult      `json:"steps" yaml:"steps"`
	Events     []Event           `json:"events" yaml:"events"`
	State      State             `json:"state" yaml:"state"`
	Clipboard  string            `json:"clipboard,omitempty" yaml:"clipboard,omitempty"`
	Transcript *internal.Session `json:"transcript" yaml:"transcript"`
}

// memoryClipboard stands in for the system clipboard
type memoryClipboard struct {
	text string
	fail bool
}

func (c *memoryClipboard) WriteText(text string) error {
	if c.fail {
		return ErrClipboardDenied
	}
	c.text = text
	return nil
}

// runner is the recording host of one scenario run
type runner struct {
	ctrl   *chat.Controller
	clip   *memoryClipboard
	step   int
	events []Event
}

func (r *runner) record(callback, format string, args ...interface{}) {
	r.events = append(r.events, Event{
		Step:     r.step,
		Callback: callback,
		Detail:   fmt.Sprintf(format, args...),
	})
}

func (r *runner) callbacks() chat.Callbacks {
	return chat.Callbacks{
		OnSendMessage: func(content, chatContext string) {
			r.record("send_message", "%q context=%s", content, chatContext)
		},
		OnToggle: func(open bool) {
			r.record("toggle", "open=%v", open)
		},
		OnCopyMessage: func(id, content string) {
			r.record("copy_message", "%q", content)
		},
		OnCopyError: func(id string, err error) {
			r.record("copy_error", "%v", err)
		},
		OnToggleFavorite: func(id string, favorited bool) {
			r.record("toggle_favorite", "favorited=%v", favorited)
		},
		OnContextChange: func(chatContext string) {
			r.record("context_change", "%s", chatContext)
		},
		OnSuggestionClick: func(text string) {
			r.record("suggestion_click", "%q", text)
		},
	}
}

// Run executes every step of s against a fresh session
func Run(s *Scenario) (*Result, error) {
	cfg, err := s.WidgetConfig()
	if err != nil {
		return nil, err
	}
	seed, opts := chat.FromConfig(cfg)

	r := &runner{clip: &memoryClipboard{fail: s.ClipboardFails}}
	r.ctrl = chat.NewController(chat.NewStore(seed), opts, r.callbacks(), r.clip)
	detach := chat.NewScrollCoordinator(
		func() { r.record("scroll", "") },
		func() { r.record("focus", "") },
	).Attach(r.ctrl.Store())
	defer detach()

	result := &Result{Name: s.Name}
	for i, step := range s.Steps {
		r.step = i + 1
		accepted, err := r.apply(step)
		if err != nil {
			return nil, fmt.Errorf("step %d (%s): %w", r.step, step.Action, err)
		}
		result.Steps = append(result.Steps, StepResult{Step: r.step, Action: step.Action, Accepted: accepted})
	}
	internal.LogDebug("scenario %q: %d steps, %d events", s.Name, len(s.Steps), len(r.events))

	store := r.ctrl.Store()
	result.Events = r.events
	result.State = State{
		Open:          store.IsOpen(),
		Typing:        store.IsTyping(),
		Unread:        store.UnreadCount(),
		ActiveContext: store.ActiveContext(),
		MessageCount:  store.Len(),
	}
	result.Clipboard = r.clip.text
	result.Transcript = r.ctrl.Transcript("scenario")
	return result, nil
}

func (r *runner) apply(step Step) (bool, error) {
	store := r.ctrl.Store()

	switch step.Action {
	case ActionOpen:
		changed := !store.IsOpen()
		r.ctrl.SetOpen(true)
		return changed, nil

	case ActionClose:
		changed := store.IsOpen()
		r.ctrl.SetOpen(false)
		return changed, nil

	case ActionToggle:
		r.ctrl.Toggle()
		return true, nil

	case ActionSubmit:
		return r.ctrl.Submit(step.Text), nil

	case ActionSuggest:
		text := step.Text
		if text == "" {
			suggestions := r.ctrl.Suggestions()
			if step.Index < 1 || step.Index > len(suggestions) {
				return false, fmt.Errorf("no suggestion %d", step.Index)
			}
			text = suggestions[step.Index-1]
		}
		return r.ctrl.SelectSuggestion(text), nil

	case ActionReply:
		r.ctrl.ReceiveReply(step.Text)
		return true, nil

	case ActionCopy:
		return r.ctrl.CopyMessage(r.messageID(step.Index)), nil

	case ActionFavorite:
		return r.ctrl.ToggleFavorite(r.messageID(step.Index)), nil

	case ActionContext:
		r.ctrl.SetContext(step.Text)
		return true, nil
	}
	return false, fmt.Errorf("unknown action %q", step.Action)
}

// messageID resolves a 1-based log position. Positions outside the log
// resolve to an ID no message has, which the controller ignores.
func (r *runner) messageID(index int) string {
	messages := r.ctrl.Store().Messages()
	if index < 1 || index > len(messages) {
		return fmt.Sprintf("missing-%d", index)
	}
	return messages[index-1].ID
}
