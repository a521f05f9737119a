package widget

import "github.com/charmbracelet/lipgloss"

var (
	colorAccent  = lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7571F9"}
	colorUser    = lipgloss.AdaptiveColor{Light: "#1F6FEB", Dark: "#58A6FF"}
	colorMuted   = lipgloss.AdaptiveColor{Light: "#6E7781", Dark: "#8B949E"}
	colorSuccess = lipgloss.Color("42")
	colorError   = lipgloss.Color("196")
	colorWarning = lipgloss.Color("214")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccent)

	contextStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorAccent).
			Padding(0, 1)

	userHeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorUser).
			MarginTop(1)

	assistantHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorAccent).
				MarginTop(1)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	favoriteStyle = lipgloss.NewStyle().
			Foreground(colorWarning)

	badgeStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("231")).
			Background(colorError).
			Padding(0, 1)

	inputStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorAccent).
			Padding(0, 1)

	launcherStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorAccent).
			Padding(0, 2)

	bannerStyles = map[string]lipgloss.Style{
		"info":    lipgloss.NewStyle().Foreground(colorAccent),
		"success": lipgloss.NewStyle().Foreground(colorSuccess),
		"error":   lipgloss.NewStyle().Foreground(colorError).Bold(true),
	}
)
