package cmd

import (
	"fmt"
	"os"

	"github.com/iksnae/chat-session/internal"
	"github.com/spf13/cobra"
)

var (
	verbose     bool
	storagePath string
	configPath  string
	version     string = "dev"
	commit      string = "unknown"
	date        string = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "chat-session",
	Short: "Terminal assistant chat widget",
	Long: `A terminal chat widget with a small, predictable session core.

The widget keeps one conversation with an assistant: messages are sent one
at a time, replies arrive asynchronously, and individual messages can be
copied or marked as favorites. Transcripts are saved when the widget exits.

Features:
  • Interactive chat panel with context switching and suggestions
  • Scripted scenarios for replaying a session without a terminal
  • Transcript storage in SQLite or a plain file archive
  • Export in multiple formats (JSONL, Markdown, YAML, JSON)

Quick Start:
  chat-session chat                      # Open the chat widget
  chat-session list                      # List saved transcripts
  chat-session show <session-id>         # View a saved transcript
  chat-session export --format md        # Export transcripts as Markdown
  chat-session run scenario.yaml         # Replay a scripted session`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		internal.SetVerbose(verbose)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads the widget config named by --config, or the defaults
func loadConfig() (*internal.Config, error) {
	return internal.LoadConfig(configPath)
}

// openStore opens the transcript store: --storage wins over the config's store path
func openStore(cfg *internal.Config) (internal.TranscriptStore, error) {
	path := storagePath
	if path == "" && cfg != nil {
		path = cfg.Store
	}
	store, err := internal.OpenStore(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open transcript store: %w", err)
	}
	return store, nil
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&storagePath, "storage", "", "Transcript store (path to a .db file or an archive directory)")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Widget config file (YAML)")

	// Set version template to ensure --version flag works
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
}
