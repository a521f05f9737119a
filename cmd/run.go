package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/iksnae/chat-session/internal"
	"github.com/iksnae/chat-session/internal/scenario"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	runFormat string
	runSave   bool
)

var (
	stepStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	callbackStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("135")).
			Bold(true)

	rejectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run <scenario.yaml>",
	Short: "Replay a scripted chat session",
	Long: `Run a scenario file against a fresh chat session without a terminal UI.

A scenario holds an optional widget config and a list of steps. Each step is
one of: open, close, toggle, submit, suggest, reply, copy, favorite, context.
The report lists which steps were accepted, every host callback the session
made and the final session state.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := scenario.Load(args[0])
		if err != nil {
			return err
		}

		result, err := scenario.Run(s)
		if err != nil {
			return err
		}

		if err := writeResult(cmd.OutOrStdout(), result, runFormat); err != nil {
			return err
		}

		if !runSave {
			return nil
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
		if err := store.Save(context.Background(), result.Transcript); err != nil {
			return fmt.Errorf("failed to save transcript: %w", err)
		}
		internal.LogInfo("Saved scenario transcript %s", result.Transcript.ID)
		return nil
	},
}

func writeResult(w io.Writer, result *scenario.Result, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	case "yaml":
		enc := yaml.NewEncoder(w)
		defer func() { _ = enc.Close() }()
		return enc.Encode(result)
	case "text", "":
		displayResult(w, result)
		return nil
	default:
		return fmt.Errorf("unsupported format: %s (supported: text, yaml, json)", format)
	}
}

func displayResult(w io.Writer, result *scenario.Result) {
	name := result.Name
	if name == "" {
		name = "Scenario"
	}
	_, _ = fmt.Fprintln(w, sessionHeaderStyle.Render("▶ "+name))

	events := make(map[int][]scenario.Event)
	for _, e := range result.Events {
		events[e.Step] = append(events[e.Step], e)
	}

	for _, step := range result.Steps {
		line := stepStyle.Render(fmt.Sprintf("%2d. %s", step.Step, step.Action))
		if !step.Accepted {
			line += " " + rejectedStyle.Render("(ignored)")
		}
		_, _ = fmt.Fprintln(w, line)
		for _, e := range events[step.Step] {
			_, _ = fmt.Fprintf(w, "      %s %s\n", callbackStyle.Render(e.Callback), e.Detail)
		}
	}
	_, _ = fmt.Fprintln(w)

	state := result.State
	parts := []string{
		fmt.Sprintf("open=%v", state.Open),
		fmt.Sprintf("typing=%v", state.Typing),
		fmt.Sprintf("unread=%d", state.Unread),
		fmt.Sprintf("context=%s", state.ActiveContext),
		fmt.Sprintf("messages=%d", state.MessageCount),
	}
	_, _ = fmt.Fprintln(w, sessionMetaStyle.Render("State: "+strings.Join(parts, " • ")))

	for i, msg := range result.Transcript.Messages {
		displayMessage(w, i+1, msg, len(result.Transcript.Messages))
	}
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVarP(&runFormat, "format", "f", "text", "Report format (text, yaml, json)")
	runCmd.Flags().BoolVar(&runSave, "save", false, "Save the resulting transcript to the transcript store")
}
