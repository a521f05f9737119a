package widget

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/iksnae/chat-session/internal/chat"
)

// View implements tea.Model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ctrl.Store().IsOpen() {
		return m.renderLauncher()
	}

	sections := []string{
		m.renderHeader(),
		m.viewport.View(),
		m.renderStatus(),
		inputStyle.Width(max(m.width-2, 10)).Render(m.input.View()),
		m.renderFooter(),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *Model) renderLauncher() string {
	line := titleStyle.Render("💬 " + m.title)
	if unread := m.ctrl.Store().UnreadCount(); unread > 0 {
		line += " " + badgeStyle.Render(fmt.Sprintf("%d unread", unread))
	}
	if m.ctrl.Store().IsTyping() {
		line += " " + mutedStyle.Render("(awaiting reply)")
	}
	hint := mutedStyle.Render("enter/ctrl+o open · esc quit")
	return launcherStyle.Render(line) + "\n" + hint + m.renderBanner()
}

func (m *Model) renderHeader() string {
	store := m.ctrl.Store()
	title := titleStyle.Render(m.title)
	active := contextStyle.Render(m.ctrl.ContextLabel(store.ActiveContext()))
	if store.ActiveContext() == "" {
		active = ""
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, title, "  ", active)
}

// renderMessages renders the whole log. Message numbers are the 1-based
// positions used by /copy and /fav.
func (m *Model) renderMessages() string {
	var sb strings.Builder
	for i, msg := range m.ctrl.Store().Messages() {
		sb.WriteString(m.renderMessageHeader(i+1, msg))
		sb.WriteString("\n")
		if msg.Sender == chat.SenderAssistant {
			sb.WriteString(m.cachedMarkdown(msg))
		} else {
			sb.WriteString(lipgloss.NewStyle().Width(max(m.width-4, 10)).Render(msg.Content))
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func (m *Model) renderMessageHeader(n int, msg chat.Message) string {
	name := assistantHeaderStyle.Render(m.title)
	if msg.Sender == chat.SenderUser {
		name = userHeaderStyle.Render("You")
	}
	meta := mutedStyle.Render(fmt.Sprintf("[%d] %s", n, msg.Timestamp.Local().Format("15:04")))
	header := name + " " + meta
	if msg.Favorited {
		header += " " + favoriteStyle.Render("★")
	}
	return header
}

// cachedMarkdown renders an assistant message once per width. Message
// content never changes after it is appended.
func (m *Model) cachedMarkdown(msg chat.Message) string {
	if out, ok := m.rendered[msg.ID]; ok {
		return out
	}
	out := m.renderMarkdown(msg.Content)
	m.rendered[msg.ID] = out
	return out
}

// renderMarkdown renders markdown with panic recovery
func (m *Model) renderMarkdown(content string) (result string) {
	m.renders++
	defer func() {
		if r := recover(); r != nil {
			result = content + "\n"
		}
	}()

	if m.renderer == nil || content == "" {
		return content + "\n"
	}
	rendered, err := m.renderer.Render(content)
	if err != nil {
		return content + "\n"
	}
	return rendered
}

func (m *Model) renderStatus() string {
	store := m.ctrl.Store()
	if store.IsTyping() {
		return mutedStyle.Render(m.title+" is typing…") + m.renderBanner()
	}
	if suggestions := m.ctrl.Suggestions(); len(suggestions) > 0 && !m.hasUserMessage() {
		var parts []string
		for i, s := range suggestions {
			parts = append(parts, fmt.Sprintf("/s %d %s", i+1, s))
		}
		return mutedStyle.Render(strings.Join(parts, " · ")) + m.renderBanner()
	}
	return m.renderBanner()
}

func (m *Model) renderBanner() string {
	if !m.banner.Visible() {
		return ""
	}
	style, ok := bannerStyles[m.banner.Kind().String()]
	if !ok {
		style = bannerStyles["info"]
	}
	return "\n" + style.Render(m.banner.Text())
}

func (m *Model) renderFooter() string {
	return mutedStyle.Render("enter send · tab context · pgup/pgdn scroll · ctrl+o close · ctrl+c quit")
}

func (m *Model) hasUserMessage() bool {
	for _, msg := range m.ctrl.Store().Messages() {
		if msg.Sender == chat.SenderUser {
			return true
		}
	}
	return false
}
