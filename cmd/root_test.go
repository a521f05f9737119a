package cmd

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/iksnae/chat-session/internal"
	"github.com/iksnae/chat-session/testutil"
)

func TestRootCommand(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr bool
		want    string
	}{
		{
			name:    "version flag",
			args:    []string{"--version"},
			wantErr: false,
			want:    "dev",
		},
		{
			name:    "help flag",
			args:    []string{"--help"},
			wantErr: false,
			want:    "chat-session run scenario.yaml",
		},
		{
			name:    "unknown command",
			args:    []string{"nonexistent-command"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := executeCommand(t, tt.args...)
			if (err != nil) != tt.wantErr {
				t.Errorf("rootCmd.Execute() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.want != "" && !strings.Contains(out, tt.want) {
				t.Errorf("output missing %q:\n%s", tt.want, out)
			}
		})
	}
}

func TestRootCommand_Subcommands(t *testing.T) {
	want := []string{"chat", "run", "list", "show", "export", "healthcheck"}
	registered := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		registered[c.Name()] = true
	}
	for _, name := range want {
		if !registered[name] {
			t.Errorf("command %q not registered", name)
		}
	}
}

func TestLoadConfig(t *testing.T) {
	t.Run("defaults without --config", func(t *testing.T) {
		configPath = ""
		cfg, err := loadConfig()
		if err != nil {
			t.Fatalf("loadConfig() error = %v", err)
		}
		if len(cfg.Contexts) == 0 {
			t.Error("default config should carry contexts")
		}
	})

	t.Run("file from --config", func(t *testing.T) {
		configPath = testutil.WriteWidgetConfig(t, t.TempDir())
		defer func() { configPath = "" }()

		cfg, err := loadConfig()
		if err != nil {
			t.Fatalf("loadConfig() error = %v", err)
		}
		if cfg.Title != "Support" {
			t.Errorf("Title = %q, want Support", cfg.Title)
		}
		if cfg.MaxMessageLength != 40 {
			t.Errorf("MaxMessageLength = %d, want 40", cfg.MaxMessageLength)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		configPath = filepath.Join(t.TempDir(), "missing.yaml")
		defer func() { configPath = "" }()

		if _, err := loadConfig(); err == nil {
			t.Error("loadConfig() should fail for a missing file")
		}
	})
}

func TestOpenStore_StorageFlagWins(t *testing.T) {
	dir := t.TempDir()
	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}
	cfg.Store = filepath.Join(dir, "from-config.db")

	storagePath = filepath.Join(dir, "archive")
	defer func() { storagePath = "" }()

	store, err := openStore(cfg)
	if err != nil {
		t.Fatalf("openStore() error = %v", err)
	}
	defer func() { _ = store.Close() }()

	if _, ok := store.(*internal.FileStore); !ok {
		t.Errorf("openStore() = %T, want *internal.FileStore", store)
	}
}
