package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iksnae/chat-session/internal"
	"github.com/iksnae/chat-session/internal/scenario"
	"github.com/iksnae/chat-session/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestRunCommand_Text(t *testing.T) {
	path := testutil.WriteScenario(t, t.TempDir())

	out, err := executeCommand(t, "run", path)
	require.NoError(t, err)

	for _, want := range []string{
		"round trip",
		"2. submit",
		"3. submit (ignored)",
		"send_message",
		"copy_message",
		"context=workflows",
		"messages=3",
	} {
		assert.Contains(t, out, want)
	}
}

func TestRunCommand_Formats(t *testing.T) {
	path := testutil.WriteScenario(t, t.TempDir())

	t.Run("json", func(t *testing.T) {
		out, err := executeCommand(t, "run", path, "--format", "json")
		require.NoError(t, err)

		var result scenario.Result
		require.NoError(t, json.Unmarshal([]byte(out), &result))
		assert.Equal(t, "round trip", result.Name)
		assert.Equal(t, "hello", result.Clipboard)
		assert.Len(t, result.Transcript.Messages, 3)
	})

	t.Run("yaml", func(t *testing.T) {
		out, err := executeCommand(t, "run", path, "-f", "yaml")
		require.NoError(t, err)

		var result scenario.Result
		require.NoError(t, yaml.Unmarshal([]byte(out), &result))
		assert.Equal(t, "workflows", result.State.ActiveContext)
		assert.Len(t, result.Steps, 10)
	})

	t.Run("unsupported", func(t *testing.T) {
		_, err := executeCommand(t, "run", path, "--format", "xml")
		assert.Error(t, err)
	})
}

func TestRunCommand_Errors(t *testing.T) {
	_, err := executeCommand(t, "run")
	assert.Error(t, err, "scenario path is required")

	_, err = executeCommand(t, "run", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	bad := testutil.WriteFile(t, t.TempDir(), "bad.yaml", []byte("steps:\n  - action: dance\n"))
	_, err = executeCommand(t, "run", bad)
	assert.Error(t, err)
}

func TestRunCommand_Save(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteScenario(t, dir)
	storePath := filepath.Join(dir, "transcripts.db")

	_, err := executeCommand(t, "run", path, "--save", "--storage", storePath)
	require.NoError(t, err)

	store, err := internal.OpenStore(storePath)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	summaries, err := store.List(context.Background())
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, "hello", summaries[0].Name)
	assert.Equal(t, "workflows", summaries[0].Context)
	assert.Equal(t, 3, summaries[0].MessageCount)
}

func TestWriteResult_TextShowsIgnoredSteps(t *testing.T) {
	s, err := scenario.Parse([]byte(testutil.ScenarioYAML))
	require.NoError(t, err)
	result, err := scenario.Run(s)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, writeResult(&buf, result, ""))

	ignored := 0
	for _, line := range strings.Split(buf.String(), "\n") {
		if strings.Contains(line, "(ignored)") {
			ignored++
		}
	}
	assert.Equal(t, 1, ignored)
}
