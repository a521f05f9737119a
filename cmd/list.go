package cmd

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/iksnae/chat-session/internal"
	"github.com/spf13/cobra"
)

var (
	listContext string
)

var (
	// Styles
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62")).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	idStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Italic(true)

	countStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	dateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	contextTagStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("135")).
			Italic(true)
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved sessions",
	Long:  `List the chat sessions saved in the transcript store, most recently updated first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		store, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()

		summaries, err := store.List(context.Background())
		if err != nil {
			return fmt.Errorf("failed to list sessions: %w", err)
		}

		if listContext != "" {
			filtered := make([]internal.SessionSummary, 0, len(summaries))
			for _, s := range summaries {
				if s.Context == listContext {
					filtered = append(filtered, s)
				}
			}
			summaries = filtered
		}

		displaySummaries(cmd.OutOrStdout(), summaries, time.Now())
		return nil
	},
}

func displaySummaries(out io.Writer, summaries []internal.SessionSummary, now time.Time) {
	if len(summaries) == 0 {
		_, _ = fmt.Fprintln(out, headerStyle.Render("📋 No sessions found"))
		return
	}

	_, _ = fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf("📋 Found %d session(s)", len(summaries))))
	_, _ = fmt.Fprintln(out)

	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	_, _ = fmt.Fprintln(w, titleStyle.Render("ID")+"\t"+titleStyle.Render("Name")+"\t"+titleStyle.Render("Messages")+"\t"+titleStyle.Render("Updated")+"\t"+titleStyle.Render("Context")+"\t")
	_, _ = fmt.Fprintln(w, strings.Repeat("─", 100))

	for _, entry := range summaries {
		name := entry.Name
		if name == "" {
			name = "Untitled"
		}
		if len([]rune(name)) > 50 {
			name = string([]rune(name)[:47]) + "..."
		}

		chatContext := dateStyle.Render("—")
		if entry.Context != "" {
			chatContext = contextTagStyle.Render(entry.Context)
		}

		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t\n",
			idStyle.Render(shortID(entry.ID)),
			name,
			countStyle.Render(strconv.Itoa(entry.MessageCount)),
			dateStyle.Render(relativeDate(entry.UpdatedAt, now)),
			chatContext)
	}

	_ = w.Flush()
	_, _ = fmt.Fprintln(out)
	_, _ = fmt.Fprintln(out, idStyle.Render("💡 Tip: Use the full ID (e.g., ")+
		lipgloss.NewStyle().Foreground(lipgloss.Color("62")).Render(summaries[0].ID)+
		idStyle.Render(") with `chat-session show <id>`"))
}

// shortID shows the first 8 characters of an ID
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// relativeDate formats an RFC3339 timestamp relative to now
func relativeDate(timestamp string, now time.Time) string {
	if timestamp == "" {
		return "—"
	}
	t, err := time.Parse(time.RFC3339, timestamp)
	if err != nil {
		if len(timestamp) >= 10 {
			return timestamp[:10]
		}
		return timestamp
	}

	t = t.In(now.Location())
	diff := now.Sub(t)
	switch {
	case diff < 24*time.Hour:
		return t.Format("Today 15:04")
	case diff < 7*24*time.Hour:
		return t.Format("Mon 15:04")
	case diff < 365*24*time.Hour:
		return t.Format("Jan 02 15:04")
	default:
		return t.Format("2006-01-02")
	}
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().StringVar(&listContext, "context", "", "Only list sessions saved in this context")
}
