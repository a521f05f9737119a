package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/iksnae/chat-session/internal"
	"github.com/iksnae/chat-session/internal/chat"
	"github.com/iksnae/chat-session/internal/widget"
	"github.com/spf13/cobra"
)

var (
	chatOpen    bool
	chatContext string
	chatResume  string
	chatNoSave  bool
	chatLogFile string
)

// chatCmd represents the chat command
var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Open the interactive chat widget",
	Long: `Open the chat widget in the terminal.

Keys:
  enter            send the message (or open the panel when closed)
  ctrl+o           open/close the panel
  tab, shift+tab   switch context
  pgup, pgdown     scroll the conversation
  esc              close the panel, or quit when it is closed
  ctrl+c           quit

Commands typed into the input:
  /copy N   copy message N        /fav N    toggle favorite on message N
  /s N      send suggestion N     /ctx V    switch to context V
  /close    close the panel       /quit     quit

The transcript is saved to the transcript store on exit unless --no-save is given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("open") {
			cfg.InitiallyOpen = chatOpen
		}
		if chatContext != "" {
			cfg.InitialContext = chatContext
		}

		restoreLog, err := redirectLog(chatLogFile)
		if err != nil {
			return err
		}
		defer restoreLog()

		var store internal.TranscriptStore
		if !chatNoSave || chatResume != "" {
			store, err = openStore(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()
		}

		ctx := context.Background()
		opts := widget.Options{Config: cfg}
		if chatResume != "" {
			session, err := store.Load(ctx, chatResume)
			if err != nil {
				return fmt.Errorf("failed to resume session: %w", err)
			}
			seed := chat.SeedFromTranscript(session, cfg.InitiallyOpen)
			if chatContext != "" {
				seed.Context = chatContext
			}
			opts.Seed = &seed
			internal.LogInfo("Resuming session %s with %d message(s)", session.ID, len(session.Messages))
		}

		model := widget.New(opts)
		defer model.Close()

		if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
			return fmt.Errorf("chat widget failed: %w", err)
		}

		if chatNoSave {
			return nil
		}
		return saveTranscript(ctx, store, model.Transcript())
	},
}

// saveTranscript stores a transcript unless the user never said anything
func saveTranscript(ctx context.Context, store internal.TranscriptStore, session *internal.Session) error {
	hasUser := false
	for _, msg := range session.Messages {
		if msg.Actor == "user" {
			hasUser = true
			break
		}
	}
	if !hasUser {
		internal.LogDebug("Nothing to save for session %s", session.ID)
		return nil
	}

	if err := store.Save(ctx, session); err != nil {
		return fmt.Errorf("failed to save transcript: %w", err)
	}
	internal.PrintSuccess(fmt.Sprintf("Saved session %s (%d message(s))", session.ID, len(session.Messages)))
	return nil
}

// redirectLog sends log output to a file while the alt screen is active
func redirectLog(path string) (func(), error) {
	if path == "" {
		dir, err := internal.DefaultDataDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(dir, "debug.log")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, &internal.StorageError{Path: path, Op: "open", Err: err}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, &internal.StorageError{Path: path, Op: "open", Err: err}
	}

	internal.SetLogOutput(f)
	return func() {
		internal.SetLogOutput(os.Stderr)
		_ = f.Close()
	}, nil
}

func init() {
	rootCmd.AddCommand(chatCmd)
	chatCmd.Flags().BoolVar(&chatOpen, "open", false, "Start with the panel open")
	chatCmd.Flags().StringVar(&chatContext, "context", "", "Initial context tag")
	chatCmd.Flags().StringVar(&chatResume, "resume", "", "Resume a saved session by ID")
	chatCmd.Flags().BoolVar(&chatNoSave, "no-save", false, "Do not save the transcript on exit")
	chatCmd.Flags().StringVar(&chatLogFile, "log-file", "", "Log file (default ~/.chat-session/debug.log)")
}
