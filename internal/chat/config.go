package chat

import "github.com/iksnae/chat-session/internal"

// FromConfig derives the session seed and controller options from the widget
// configuration. The seed carries no ID, so a fresh one is generated.
func FromConfig(cfg *internal.Config) (Seed, Options) {
	if cfg == nil {
		cfg = internal.DefaultConfig()
	}

	seed := Seed{
		Context: cfg.InitialContext,
		Open:    cfg.InitiallyOpen,
	}
	for _, m := range cfg.InitialMessages {
		seed.Messages = append(seed.Messages, Message{
			Sender:  Sender(m.Sender),
			Content: m.Content,
		})
	}

	opts := Options{
		Suggestions:      append([]string(nil), cfg.Suggestions...),
		MaxMessageLength: cfg.MaxMessageLength,
	}
	for _, c := range cfg.Contexts {
		opts.Contexts = append(opts.Contexts, ContextOption{Value: c.Value, Label: c.Label})
	}
	return seed, opts
}
