package chat

import "time"

// Scheduler runs fn once after d on the caller's event loop. The returned
// cancel prevents fn from running if it has not run yet; calling it more
// than once is harmless.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) (cancel func())
}

// BannerKind selects the styling of a feedback banner.
type BannerKind int

const (
	BannerInfo BannerKind = iota
	BannerSuccess
	BannerError
)

func (k BannerKind) String() string {
	switch k {
	case BannerSuccess:
		return "success"
	case BannerError:
		return "error"
	default:
		return "info"
	}
}

// Banner is a transient feedback message ("Copied", "Saved") that hides
// itself after a duration.
//
// Every Show starts a new visibility cycle. At most one dismiss timer is
// pending; it is cancelled by Hide, Close or the next Show, and a timer
// belonging to an earlier cycle never hides a later banner.
type Banner struct {
	sched    Scheduler
	onChange func(visible bool)

	text    string
	kind    BannerKind
	visible bool
	closed  bool

	cycle  uint64
	cancel func()
}

// NewBanner returns a hidden banner. onChange may be nil.
func NewBanner(sched Scheduler, onChange func(visible bool)) *Banner {
	return &Banner{sched: sched, onChange: onChange}
}

// Show displays text and schedules it to hide after d. A non-positive d
// keeps the banner up until Hide.
func (b *Banner) Show(text string, kind BannerKind, d time.Duration) {
	if b.closed {
		return
	}
	b.stopTimer()
	b.cycle++
	b.text = text
	b.kind = kind
	wasVisible := b.visible
	b.visible = true

	if d > 0 && b.sched != nil {
		cycle := b.cycle
		b.cancel = b.sched.AfterFunc(d, func() { b.expire(cycle) })
	}
	if !wasVisible && b.onChange != nil {
		b.onChange(true)
	}
}

// Hide dismisses the banner now.
func (b *Banner) Hide() {
	b.stopTimer()
	b.setHidden()
}

// Close hides the banner and makes every later Show a no-op. Used on teardown.
func (b *Banner) Close() {
	b.Hide()
	b.closed = true
}

// Visible reports whether the banner is showing.
func (b *Banner) Visible() bool { return b.visible }

// Text returns the current banner text, empty when hidden.
func (b *Banner) Text() string {
	if !b.visible {
		return ""
	}
	return b.text
}

// Kind returns the kind of the current banner.
func (b *Banner) Kind() BannerKind { return b.kind }

func (b *Banner) expire(cycle uint64) {
	if cycle != b.cycle || b.cancel == nil {
		return
	}
	b.cancel = nil
	b.setHidden()
}

func (b *Banner) stopTimer() {
	if b.cancel != nil {
		b.cancel()
		b.cancel = nil
	}
}

func (b *Banner) setHidden() {
	if !b.visible {
		return
	}
	b.visible = false
	if b.onChange != nil {
		b.onChange(false)
	}
}
