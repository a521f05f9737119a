package cmd

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/iksnae/chat-session/internal"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// resetFlags puts every flag of the command tree back to its default so
// package-level flag variables do not leak between executions.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	t.Cleanup(func() { resetFlags(rootCmd) })

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

// seedStore saves sessions into a fresh SQLite store and returns its path
func seedStore(t *testing.T, sessions ...*internal.Session) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "transcripts.db")
	store, err := internal.OpenStore(path)
	if err != nil {
		t.Fatalf("OpenStore() error = %v", err)
	}
	defer func() { _ = store.Close() }()

	for _, s := range sessions {
		if err := store.Save(context.Background(), s); err != nil {
			t.Fatalf("Save(%s) error = %v", s.ID, err)
		}
	}
	return path
}
