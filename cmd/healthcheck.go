package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/iksnae/chat-session/internal"
	"github.com/iksnae/chat-session/internal/widget"
	"github.com/spf13/cobra"
)

var (
	healthcheckVerbose bool
)

var (
	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))

	sectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("62")).
			Bold(true).
			Underline(true)
)

// checkClipboard is swapped in tests
var checkClipboard = widget.CheckClipboard

// healthcheckCmd represents the healthcheck command
var healthcheckCmd = &cobra.Command{
	Use:   "healthcheck",
	Short: "Check that chat-session can load its config and reach its stores",
	Long: `Check the health of chat-session by verifying:
  • Widget configuration
  • Transcript store accessibility
  • Saved session count
  • System clipboard availability (used by /copy)

This command is useful for debugging storage or clipboard issues.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runHealthcheck(cmd.OutOrStdout())
	},
}

func runHealthcheck(out io.Writer) error {
	_, _ = fmt.Fprintln(out, sectionStyle.Render("🔍 Chat Session Health Check"))
	_, _ = fmt.Fprintln(out)

	// Step 1: Configuration
	_, _ = fmt.Fprintln(out, infoStyle.Render("Step 1: Loading widget configuration..."))
	cfg, err := loadConfig()
	if err != nil {
		_, _ = fmt.Fprintln(out, errorStyle.Render("❌ Invalid configuration:"), err)
		return fmt.Errorf("health check failed: %w", err)
	}
	_, _ = fmt.Fprintln(out, successStyle.Render("✅ Configuration loaded"))
	if healthcheckVerbose {
		source := configPath
		if source == "" {
			source = "(defaults)"
		}
		_, _ = fmt.Fprintf(out, "   Source: %s\n", source)
		_, _ = fmt.Fprintf(out, "   Contexts: %d, suggestions: %d\n", len(cfg.Contexts), len(cfg.Suggestions))
	}
	_, _ = fmt.Fprintln(out)

	// Step 2: Transcript store
	_, _ = fmt.Fprintln(out, infoStyle.Render("Step 2: Opening transcript store..."))
	store, err := openStore(cfg)
	if err != nil {
		_, _ = fmt.Fprintln(out, errorStyle.Render("❌ Failed to open transcript store:"), err)
		return fmt.Errorf("health check failed: %w", err)
	}
	defer func() { _ = store.Close() }()
	_, _ = fmt.Fprintln(out, successStyle.Render("✅ Transcript store opened"))
	if healthcheckVerbose {
		switch s := store.(type) {
		case *internal.SQLiteStore:
			_, _ = fmt.Fprintf(out, "   Type: SQLite (%s)\n", s.Path())
		case *internal.FileStore:
			_, _ = fmt.Fprintf(out, "   Type: File archive (%s)\n", s.Dir())
		default:
			_, _ = fmt.Fprintf(out, "   Type: %T\n", store)
		}
	}
	_, _ = fmt.Fprintln(out)

	// Step 3: Saved sessions
	_, _ = fmt.Fprintln(out, infoStyle.Render("Step 3: Listing saved sessions..."))
	summaries, err := store.List(context.Background())
	if err != nil {
		_, _ = fmt.Fprintln(out, errorStyle.Render("❌ Failed to list sessions:"), err)
		return fmt.Errorf("health check failed: %w", err)
	}
	if len(summaries) > 0 {
		_, _ = fmt.Fprintln(out, successStyle.Render(fmt.Sprintf("✅ Found %d session(s)", len(summaries))))
		if healthcheckVerbose {
			for i, s := range summaries {
				if i == 5 {
					_, _ = fmt.Fprintf(out, "   ... and %d more\n", len(summaries)-5)
					break
				}
				_, _ = fmt.Fprintf(out, "   [%d] %s (ID: %s)\n", i+1, s.Name, shortID(s.ID))
			}
		}
	} else {
		_, _ = fmt.Fprintln(out, warningStyle.Render("⚠️  No sessions saved yet"))
	}
	_, _ = fmt.Fprintln(out)

	// Step 4: Clipboard
	_, _ = fmt.Fprintln(out, infoStyle.Render("Step 4: Checking system clipboard..."))
	clipboardOK := true
	if err := checkClipboard(); err != nil {
		clipboardOK = false
		_, _ = fmt.Fprintln(out, warningStyle.Render("⚠️  Clipboard unavailable:"), err)
		_, _ = fmt.Fprintln(out, "   /copy will report an error instead of copying")
	} else {
		_, _ = fmt.Fprintln(out, successStyle.Render("✅ Clipboard available"))
	}
	_, _ = fmt.Fprintln(out)

	// Summary
	_, _ = fmt.Fprintln(out, sectionStyle.Render("📊 Summary"))
	_, _ = fmt.Fprintln(out)
	if clipboardOK {
		_, _ = fmt.Fprintln(out, successStyle.Render("✅ Health check passed!"))
	} else {
		_, _ = fmt.Fprintln(out, warningStyle.Render("⚠️  Health check passed with warnings"))
	}
	_, _ = fmt.Fprintf(out, "   • Sessions: %d saved\n", len(summaries))
	return nil
}

func init() {
	rootCmd.AddCommand(healthcheckCmd)
	healthcheckCmd.Flags().BoolVarP(&healthcheckVerbose, "verbose", "v", false, "Show detailed diagnostic information")
}
