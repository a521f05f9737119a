package widget

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Replier is the reply pipeline the widget hands submitted messages to.
// Reply runs off the event loop and must return promptly once ctx is done.
type Replier interface {
	Reply(ctx context.Context, prompt, chatContext string) (string, error)
}

// SimulatedReplier answers after a fixed delay from canned replies for the
// active context, cycling through them, or echoes the prompt when the
// context has none.
type SimulatedReplier struct {
	Delay   time.Duration
	Replies map[string][]string

	mu   sync.Mutex
	next map[string]int
}

// NewSimulatedReplier creates a SimulatedReplier
func NewSimulatedReplier(delay time.Duration, replies map[string][]string) *SimulatedReplier {
	return &SimulatedReplier{Delay: delay, Replies: replies}
}

// Reply waits for the configured delay, or until ctx is done.
func (r *SimulatedReplier) Reply(ctx context.Context, prompt, chatContext string) (string, error) {
	if r.Delay > 0 {
		timer := time.NewTimer(r.Delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-timer.C:
		}
	} else if err := ctx.Err(); err != nil {
		return "", err
	}

	return r.pick(prompt, chatContext), nil
}

func (r *SimulatedReplier) pick(prompt, chatContext string) string {
	canned := r.Replies[chatContext]
	if len(canned) == 0 {
		return fmt.Sprintf("You said: %s", prompt)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.next == nil {
		r.next = make(map[string]int)
	}
	i := r.next[chatContext] % len(canned)
	r.next[chatContext] = i + 1
	return canned[i]
}
