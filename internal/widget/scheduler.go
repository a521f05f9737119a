package widget

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// timerFiredMsg is delivered to Update when a scheduled callback is due.
type timerFiredMsg struct {
	id int
}

// teaScheduler runs timer callbacks on the bubbletea event loop: AfterFunc
// queues a tea.Tick command and the callback runs when Update receives the
// resulting message. Cancelled callbacks are forgotten, so their ticks are
// dropped on arrival.
type teaScheduler struct {
	nextID  int
	timers  map[int]func()
	enqueue func(tea.Cmd)
}

func newTeaScheduler(enqueue func(tea.Cmd)) *teaScheduler {
	return &teaScheduler{timers: make(map[int]func()), enqueue: enqueue}
}

func (s *teaScheduler) AfterFunc(d time.Duration, fn func()) func() {
	s.nextID++
	id := s.nextID
	s.timers[id] = fn
	s.enqueue(tea.Tick(d, func(time.Time) tea.Msg {
		return timerFiredMsg{id: id}
	}))
	return func() { delete(s.timers, id) }
}

func (s *teaScheduler) fire(id int) {
	fn, ok := s.timers[id]
	if !ok {
		return
	}
	delete(s.timers, id)
	fn()
}

// pending returns the number of callbacks still waiting to fire.
func (s *teaScheduler) pending() int { return len(s.timers) }
