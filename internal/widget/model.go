// Package widget is the terminal host of a chat session: a bubbletea
// program that owns one session, implements every host callback and runs
// the reply pipeline off the event loop.
package widget

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/iksnae/chat-session/internal"
	"github.com/iksnae/chat-session/internal/chat"
)

const (
	headerHeight = 3
	footerHeight = 6
	defaultWidth = 80
)

const inputPlaceholder = "Ask me anything... (Enter to send, /help for commands)"

// replyMsg carries the outcome of a reply request back to the event loop.
type replyMsg struct {
	content string
	err     error
}

// Options configures a widget Model.
type Options struct {
	Config    *internal.Config
	Seed      *chat.Seed // resumed session; derived from Config when nil
	Replier   Replier
	Clipboard chat.Clipboard
}

// Model is the bubbletea model of the chat widget.
type Model struct {
	ctrl    *chat.Controller
	banner  *chat.Banner
	sched   *teaScheduler
	replier Replier
	detach  func()

	ctx    context.Context
	cancel context.CancelFunc

	title          string
	bannerDuration time.Duration

	input    textinput.Model
	viewport viewport.Model
	renderer *glamour.TermRenderer
	rendered map[string]string // assistant markdown by message ID, for the current width
	renders  int

	width      int
	height     int
	follow     bool
	copyFailed bool
	quitting   bool
	pending    []tea.Cmd
}

// New creates the widget and its session.
func New(opts Options) *Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = internal.DefaultConfig()
	}
	seed, chatOpts := chat.FromConfig(cfg)
	if opts.Seed != nil {
		seed = *opts.Seed
	}
	replier := opts.Replier
	if replier == nil {
		replier = NewSimulatedReplier(cfg.ReplyDelay, cfg.Replies)
	}
	clip := opts.Clipboard
	if clip == nil {
		clip = SystemClipboard{}
	}

	ti := textinput.New()
	ti.Placeholder = inputPlaceholder
	ti.Prompt = "│ "
	ti.Width = defaultWidth - 6
	if chatOpts.MaxMessageLength > 0 {
		ti.CharLimit = chatOpts.MaxMessageLength
	}

	ctx, cancel := context.WithCancel(context.Background())
	m := &Model{
		replier:        replier,
		ctx:            ctx,
		cancel:         cancel,
		title:          cfg.Title,
		bannerDuration: cfg.BannerDuration,
		input:          ti,
		viewport:       viewport.New(defaultWidth-2, 20),
		renderer:       newRenderer(defaultWidth - 4),
		rendered:       make(map[string]string),
		width:          defaultWidth,
	}
	if m.title == "" {
		m.title = "Assistant"
	}

	m.sched = newTeaScheduler(m.enqueue)
	m.banner = chat.NewBanner(m.sched, nil)
	m.ctrl = chat.NewController(chat.NewStore(seed), chatOpts, m.callbacks(), clip)
	m.detach = chat.NewScrollCoordinator(m.scrollToEnd, m.focusInput).Attach(m.ctrl.Store())

	if m.ctrl.Store().IsOpen() {
		m.focusInput()
	}
	m.follow = true
	m.refresh()
	return m
}

func newRenderer(width int) *glamour.TermRenderer {
	style := glamour.WithStylePath("notty")
	if internal.IsTerminal() {
		style = glamour.WithAutoStyle()
	}
	renderer, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(width))
	if err != nil {
		internal.LogWarn("markdown renderer unavailable: %v", err)
		return nil
	}
	return renderer
}

// Controller returns the session controller.
func (m *Model) Controller() *chat.Controller { return m.ctrl }

// Transcript returns the session in its persisted form.
func (m *Model) Transcript() *internal.Session { return m.ctrl.Transcript("widget") }

// Close tears the widget down: outstanding replies are cancelled and the
// banner timer is stopped.
func (m *Model) Close() {
	m.cancel()
	m.banner.Close()
	if m.detach != nil {
		m.detach()
		m.detach = nil
	}
}

func (m *Model) callbacks() chat.Callbacks {
	return chat.Callbacks{
		OnSendMessage: func(content, chatContext string) {
			internal.LogDebug("widget: sending %d chars in context %q", len(content), chatContext)
			m.enqueue(m.requestReply(content, chatContext))
		},
		OnToggle: func(open bool) {
			internal.LogDebug("widget: panel open=%v", open)
			if !open {
				m.input.Blur()
			}
		},
		OnCopyMessage: func(id, content string) {
			if m.copyFailed {
				m.copyFailed = false
				return
			}
			m.showBanner("Copied to clipboard", chat.BannerSuccess)
		},
		OnCopyError: func(id string, err error) {
			m.copyFailed = true
			m.showBanner(fmt.Sprintf("Copy failed: %v", err), chat.BannerError)
		},
		OnToggleFavorite: func(id string, favorited bool) {
			if favorited {
				m.showBanner("Added to favorites", chat.BannerSuccess)
			} else {
				m.showBanner("Removed from favorites", chat.BannerInfo)
			}
		},
		OnContextChange: func(chatContext string) {
			m.showBanner("Context: "+m.ctrl.ContextLabel(chatContext), chat.BannerInfo)
		},
		OnSuggestionClick: func(text string) {
			internal.LogDebug("widget: suggestion %q", text)
		},
	}
}

// requestReply runs the reply pipeline off the event loop; the result comes
// back as a replyMsg.
func (m *Model) requestReply(prompt, chatContext string) tea.Cmd {
	ctx := m.ctx
	replier := m.replier
	return func() tea.Msg {
		content, err := replier.Reply(ctx, prompt, chatContext)
		return replyMsg{content: content, err: err}
	}
}

func (m *Model) enqueue(cmd tea.Cmd) {
	if cmd != nil {
		m.pending = append(m.pending, cmd)
	}
}

// flush returns the commands queued while handling the current message.
func (m *Model) flush() tea.Cmd {
	if len(m.pending) == 0 {
		return nil
	}
	cmds := m.pending
	m.pending = nil
	return tea.Batch(cmds...)
}

func (m *Model) showBanner(text string, kind chat.BannerKind) {
	m.banner.Show(text, kind, m.bannerDuration)
}

func (m *Model) scrollToEnd() { m.follow = true }

func (m *Model) focusInput() { m.enqueue(m.input.Focus()) }

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	m.enqueue(textinput.Blink)
	return m.flush()
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)

	case tea.KeyMsg:
		if quit := m.handleKey(msg); quit {
			m.quitting = true
			return m, tea.Quit
		}

	case replyMsg:
		m.handleReply(msg)

	case timerFiredMsg:
		m.sched.fire(msg.id)

	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		m.enqueue(cmd)
	}

	m.refresh()
	return m, m.flush()
}

func (m *Model) handleReply(msg replyMsg) {
	if msg.err != nil {
		if errors.Is(msg.err, context.Canceled) {
			return
		}
		internal.LogWarn("widget: reply failed: %v", msg.err)
		m.ctrl.ReceiveReply(fmt.Sprintf("Sorry, I could not answer that (%v).", msg.err))
		return
	}
	m.ctrl.ReceiveReply(msg.content)
}

// handleKey dispatches one key press and reports whether the program should quit.
func (m *Model) handleKey(msg tea.KeyMsg) bool {
	store := m.ctrl.Store()

	switch msg.String() {
	case "ctrl+c":
		return true

	case "esc":
		if !store.IsOpen() {
			return true
		}
		m.ctrl.SetOpen(false)
		return false

	case "ctrl+o":
		m.ctrl.Toggle()
		return false
	}

	if !store.IsOpen() {
		if msg.String() == "enter" {
			m.ctrl.SetOpen(true)
		}
		return false
	}

	switch msg.String() {
	case "enter":
		return m.handleSubmit()

	case "tab":
		m.ctrl.CycleContext(1)

	case "shift+tab":
		m.ctrl.CycleContext(-1)

	case "pgup", "pgdown":
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		m.enqueue(cmd)
		m.follow = false

	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		m.enqueue(cmd)
	}
	return false
}

// handleSubmit sends the input, or runs it as a command when it starts with a slash.
func (m *Model) handleSubmit() bool {
	text := m.input.Value()
	if isCommand(text) {
		m.input.Reset()
		return m.runCommand(text)
	}
	if m.ctrl.Submit(text) {
		m.input.Reset()
	}
	return false
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height

	m.viewport.Width = width - 2
	m.viewport.Height = max(height-headerHeight-footerHeight, 3)
	m.input.Width = width - 6

	m.renderer = newRenderer(width - 4)
	m.rendered = make(map[string]string)
	m.follow = true
}

// refresh re-renders the message list into the viewport.
func (m *Model) refresh() {
	m.viewport.SetContent(m.renderMessages())
	if m.follow {
		m.viewport.GotoBottom()
		m.follow = false
	}
}
