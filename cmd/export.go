package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/iksnae/chat-session/internal"
	"github.com/iksnae/chat-session/internal/export"
	"github.com/spf13/cobra"
)

var (
	format          string
	outputDir       string
	exportContext   string
	sessionID       string
	exportFavorites bool
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export saved sessions to files",
	Long: `Export saved chat sessions to various formats (jsonl, md, yaml, json).

You can export all sessions, filter by context, or export a specific session by ID.
With --favorites only favorited messages are exported.
Use 'chat-session list' to see available session IDs.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Validate the format before touching the store
		exporter, err := export.NewExporter(format)
		if err != nil {
			return err
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		store, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()

		ctx := context.Background()
		var sessions []*internal.Session
		steps := []internal.ProgressStep{
			{
				Message: "Loading sessions from store",
				Fn: func() error {
					var loadErr error
					sessions, loadErr = loadSessions(ctx, store, sessionID)
					return loadErr
				},
			},
			{
				Message: "Filtering sessions",
				Fn: func() error {
					sessions = filterSessions(sessions, exportContext, exportFavorites)
					return nil
				},
			},
		}
		if err := internal.ShowProgressWithSteps(ctx, steps); err != nil {
			return err
		}

		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return &internal.ExportError{Format: format, Path: outputDir, Err: err}
		}

		exported := 0
		err = internal.ShowProgress(ctx, fmt.Sprintf("Exporting %d session(s) to %s", len(sessions), outputDir), func() error {
			for _, session := range sessions {
				if err := exportSession(exporter, session, outputDir); err != nil {
					internal.LogError("%v", err)
					continue
				}
				exported++
			}
			return nil
		})
		if err != nil {
			return err
		}

		internal.PrintSuccess(fmt.Sprintf("Export complete: %d session(s) exported to %s", exported, outputDir))
		return nil
	},
}

// loadSessions loads one session by ID, or every stored session
func loadSessions(ctx context.Context, store internal.TranscriptStore, id string) ([]*internal.Session, error) {
	if id != "" {
		session, err := store.Load(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("%w (use 'chat-session list' to see available sessions)", err)
		}
		return []*internal.Session{session}, nil
	}

	summaries, err := store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	sessions := make([]*internal.Session, 0, len(summaries))
	for _, summary := range summaries {
		session, err := store.Load(ctx, summary.ID)
		if err != nil {
			internal.LogWarn("Skipping session %s: %v", summary.ID, err)
			continue
		}
		sessions = append(sessions, session)
	}
	return internal.NewDeduplicator().Deduplicate(sessions), nil
}

// filterSessions applies the context and favorites filters. Sessions left
// without messages by the favorites filter are dropped.
func filterSessions(sessions []*internal.Session, chatContext string, favoritesOnly bool) []*internal.Session {
	filtered := make([]*internal.Session, 0, len(sessions))
	for _, session := range sessions {
		if chatContext != "" && session.Context != chatContext {
			continue
		}
		if favoritesOnly {
			session = export.FilterFavorites(session)
			if len(session.Messages) == 0 {
				continue
			}
		}
		filtered = append(filtered, session)
	}
	return filtered
}

func exportSession(exporter export.Exporter, session *internal.Session, dir string) error {
	path := filepath.Join(dir, export.Filename(session, exporter))
	file, err := os.Create(path)
	if err != nil {
		return &internal.ExportError{Format: exporter.Extension(), Path: path, Err: err}
	}

	if err := exporter.Export(session, file); err != nil {
		_ = file.Close()
		return &internal.ExportError{Format: exporter.Extension(), Path: path, Err: err}
	}
	if err := file.Close(); err != nil {
		return &internal.ExportError{Format: exporter.Extension(), Path: path, Err: err}
	}
	return nil
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&format, "format", "f", "jsonl", "Export format (jsonl, md, yaml, json)")
	exportCmd.Flags().StringVarP(&outputDir, "out", "o", "./exports", "Output directory")
	exportCmd.Flags().StringVar(&exportContext, "context", "", "Only export sessions saved in this context")
	exportCmd.Flags().StringVar(&sessionID, "session-id", "", "Export a specific session by ID")
	exportCmd.Flags().BoolVar(&exportFavorites, "favorites", false, "Export only favorited messages")
}
