package internal

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultReplyDelay     = 1500 * time.Millisecond
	DefaultBannerDuration = 2 * time.Second
)

// ContextOption is one entry of the context catalog shown by the widget
type ContextOption struct {
	Value string `yaml:"value"`
	Label string `yaml:"label"`
}

// SeedMessage is a message the session starts with
type SeedMessage struct {
	Sender  string `yaml:"sender"` // "user" or "assistant"
	Content string `yaml:"content"`
}

// Config holds the widget configuration
type Config struct {
	Title            string              `yaml:"title"`
	InitialContext   string              `yaml:"initial_context"`
	Contexts         []ContextOption     `yaml:"contexts"`
	Suggestions      []string            `yaml:"suggestions"`
	MaxMessageLength int                 `yaml:"max_message_length"` // 0 disables clipping
	InitiallyOpen    bool                `yaml:"initially_open"`
	InitialMessages  []SeedMessage       `yaml:"initial_messages"`
	ReplyDelay       time.Duration       `yaml:"reply_delay"`
	BannerDuration   time.Duration       `yaml:"banner_duration"`
	Replies          map[string][]string `yaml:"replies"` // canned replies per context tag
	Store            string              `yaml:"store"`   // transcript store path
}

// DefaultConfig returns the configuration used when no config file is given
func DefaultConfig() *Config {
	return &Config{
		Title:          "Assistant",
		InitialContext: "jobs",
		Contexts: []ContextOption{
			{Value: "jobs", Label: "Jobs"},
			{Value: "workflows", Label: "Workflows"},
		},
		Suggestions: []string{
			"Why did my last job fail?",
			"Show running workflows",
			"How do I retry a job?",
		},
		MaxMessageLength: 2000,
		ReplyDelay:       DefaultReplyDelay,
		BannerDuration:   DefaultBannerDuration,
		InitialMessages: []SeedMessage{
			{Sender: "assistant", Content: "Hi! Ask me anything about your jobs and workflows."},
		},
	}
}

// DefaultDataDir returns the directory holding transcripts and logs
func DefaultDataDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".chat-session"), nil
}

// LoadConfig reads a YAML config file on top of DefaultConfig.
// An empty path returns the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ConfigError{Path: path, Err: err}
	}
	if err := ParseConfig(data, cfg); err != nil {
		return nil, &ConfigError{Path: path, Err: err}
	}
	if err := cfg.Validate(); err != nil {
		var ce *ConfigError
		if errors.As(err, &ce) {
			ce.Path = path
		}
		return nil, err
	}

	LogDebug("Loaded config from %s", path)
	return cfg, nil
}

// ParseConfig decodes YAML into cfg, keeping fields the document leaves out
func ParseConfig(data []byte, cfg *Config) error {
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	return nil
}

// Validate checks field ranges. The context catalog itself is not validated;
// an initial context missing from it only produces a warning.
func (c *Config) Validate() error {
	if c.MaxMessageLength < 0 {
		return &ConfigError{Field: "max_message_length", Err: errors.New("must not be negative")}
	}
	if c.ReplyDelay < 0 {
		return &ConfigError{Field: "reply_delay", Err: errors.New("must not be negative")}
	}
	if c.BannerDuration < 0 {
		return &ConfigError{Field: "banner_duration", Err: errors.New("must not be negative")}
	}
	for i, m := range c.InitialMessages {
		if m.Sender != "user" && m.Sender != "assistant" {
			return &ConfigError{
				Field: fmt.Sprintf("initial_messages[%d].sender", i),
				Err:   fmt.Errorf("unknown sender %q", m.Sender),
			}
		}
	}

	if c.InitialContext != "" && len(c.Contexts) > 0 && c.ContextLabel(c.InitialContext) == "" {
		LogWarn("Initial context %q is not in the context catalog", c.InitialContext)
	}
	return nil
}

// ContextLabel returns the catalog label for value, or "" when the catalog has no such entry
func (c *Config) ContextLabel(value string) string {
	for _, opt := range c.Contexts {
		if opt.Value == value {
			if opt.Label == "" {
				return opt.Value
			}
			return opt.Label
		}
	}
	return ""
}
