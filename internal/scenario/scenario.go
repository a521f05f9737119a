// Package scenario drives a chat session from a scripted list of steps and
// records every host callback the session makes. It needs no terminal and
// no reply pipeline: replies are steps of the script.
package scenario

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/iksnae/chat-session/internal"
)

// Actions understood by Run
const (
	ActionOpen     = "open"
	ActionClose    = "close"
	ActionToggle   = "toggle"
	ActionSubmit   = "submit"
	ActionSuggest  = "suggest"
	ActionReply    = "reply"
	ActionCopy     = "copy"
	ActionFavorite = "favorite"
	ActionContext  = "context"
)

// Step is one scripted user or host action. Index is the 1-based position
// of a message in the log (copy, favorite) or of a suggestion (suggest,
// when Text is empty).
type Step struct {
	Action string `yaml:"action"`
	Text   string `yaml:"text,omitempty"`
	Index  int    `yaml:"index,omitempty"`
}

// Scenario is a scripted session
type Scenario struct {
	Name           string    `yaml:"name"`
	Config         yaml.Node `yaml:"config"`
	ClipboardFails bool      `yaml:"clipboard_fails"`
	Steps          []Step    `yaml:"steps"`
}

// Load reads a scenario file
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &internal.ConfigError{Path: path, Err: err}
	}
	s, err := Parse(data)
	if err != nil {
		var ce *internal.ConfigError
		if errors.As(err, &ce) {
			ce.Path = path
			return nil, ce
		}
		return nil, &internal.ConfigError{Path: path, Err: err}
	}
	return s, nil
}

// Parse decodes and validates a scenario document
func Parse(data []byte) (*Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse scenario: %w", err)
	}
	for i, step := range s.Steps {
		if !knownAction(step.Action) {
			return nil, &internal.ConfigError{
				Field: fmt.Sprintf("steps[%d].action", i),
				Err:   fmt.Errorf("unknown action %q", step.Action),
			}
		}
	}
	return &s, nil
}

// WidgetConfig returns the scenario's widget configuration on top of the defaults
func (s *Scenario) WidgetConfig() (*internal.Config, error) {
	cfg := internal.DefaultConfig()
	if s.Config.Kind != 0 {
		if err := s.Config.Decode(cfg); err != nil {
			return nil, &internal.ConfigError{Field: "config", Err: err}
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func knownAction(action string) bool {
	switch action {
	case ActionOpen, ActionClose, ActionToggle, ActionSubmit, ActionSuggest,
		ActionReply, ActionCopy, ActionFavorite, ActionContext:
		return true
	}
	return false
}
