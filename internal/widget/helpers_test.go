package widget

import (
	"context"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iksnae/chat-session/internal"
)

type stubReplier struct {
	reply   string
	err     error
	prompts []string
	ctxs    []string
}

func (r *stubReplier) Reply(_ context.Context, prompt, chatContext string) (string, error) {
	r.prompts = append(r.prompts, prompt)
	r.ctxs = append(r.ctxs, chatContext)
	return r.reply, r.err
}

type memClipboard struct {
	text string
	err  error
}

func (c *memClipboard) WriteText(text string) error {
	if c.err != nil {
		return c.err
	}
	c.text = text
	return nil
}

func testConfig() *internal.Config {
	cfg := internal.DefaultConfig()
	cfg.InitiallyOpen = true
	cfg.InitialMessages = nil
	cfg.BannerDuration = 5 * time.Millisecond
	return cfg
}

func newTestModel(t *testing.T, cfg *internal.Config, replier Replier, clip *memClipboard) *Model {
	t.Helper()
	m := New(Options{Config: cfg, Replier: replier, Clipboard: clip})
	// A static cursor keeps focus and key handling from queueing blink timers.
	m.input.Cursor.SetMode(cursor.CursorStatic)
	m.pending = nil
	t.Cleanup(m.Close)
	return m
}

// send delivers msg and then feeds every reply and timer message the
// resulting commands produce back into the model. It reports whether the
// model asked to quit.
func send(t *testing.T, m *Model, msg tea.Msg) (quit bool) {
	t.Helper()
	queue := []tea.Msg{msg}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		_, cmd := m.Update(next)
		for _, out := range run(cmd) {
			switch out.(type) {
			case tea.QuitMsg:
				quit = true
			case replyMsg, timerFiredMsg:
				queue = append(queue, out)
			}
		}
	}
	return quit
}

// sendOnly delivers msg without running the commands it returns.
func sendOnly(m *Model, msg tea.Msg) tea.Cmd {
	_, cmd := m.Update(msg)
	return cmd
}

func run(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, run(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

func typeText(t *testing.T, m *Model, text string) {
	t.Helper()
	m.input.SetValue(text)
}

func key(k tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: k} }
