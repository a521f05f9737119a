package widget

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/iksnae/chat-session/internal/chat"
)

const commandHelp = "/copy N · /fav N · /s N · /ctx VALUE · /close · /quit"

func isCommand(input string) bool {
	return strings.HasPrefix(strings.TrimSpace(input), "/")
}

// runCommand executes a slash command typed into the input and reports
// whether the program should quit. N is the 1-based position of a message
// in the log, or of a suggestion.
func (m *Model) runCommand(input string) bool {
	parts := strings.Fields(input)
	name := parts[0]
	args := parts[1:]

	switch name {
	case "/quit", "/exit", "/q":
		return true

	case "/close":
		m.ctrl.SetOpen(false)

	case "/help":
		m.showBanner(commandHelp, chat.BannerInfo)

	case "/copy":
		if msg, ok := m.messageArg(args); ok {
			m.ctrl.CopyMessage(msg.ID)
		}

	case "/fav":
		if msg, ok := m.messageArg(args); ok {
			m.ctrl.ToggleFavorite(msg.ID)
		}

	case "/s":
		suggestions := m.ctrl.Suggestions()
		n, ok := m.indexArg(args, len(suggestions), "suggestion")
		if ok {
			m.ctrl.SelectSuggestion(suggestions[n])
		}

	case "/ctx":
		if len(args) == 0 {
			m.showBanner(m.contextList(), chat.BannerInfo)
			return false
		}
		m.ctrl.SetContext(args[0])

	default:
		m.showBanner(fmt.Sprintf("Unknown command %s (%s)", name, commandHelp), chat.BannerError)
	}
	return false
}

func (m *Model) messageArg(args []string) (chat.Message, bool) {
	messages := m.ctrl.Store().Messages()
	n, ok := m.indexArg(args, len(messages), "message")
	if !ok {
		return chat.Message{}, false
	}
	return messages[n], true
}

// indexArg parses a 1-based position and returns it 0-based.
func (m *Model) indexArg(args []string, count int, what string) (int, bool) {
	if len(args) == 0 {
		m.showBanner(fmt.Sprintf("Missing %s number", what), chat.BannerError)
		return 0, false
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 || n > count {
		m.showBanner(fmt.Sprintf("No %s %s", what, args[0]), chat.BannerError)
		return 0, false
	}
	return n - 1, true
}

func (m *Model) contextList() string {
	var values []string
	for _, opt := range m.ctrl.Contexts() {
		values = append(values, opt.Value)
	}
	if len(values) == 0 {
		return "No contexts configured"
	}
	return "Contexts: " + strings.Join(values, ", ")
}
