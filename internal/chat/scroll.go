package chat

// ScrollCoordinator turns changes of the derived View into scroll-to-end
// and focus requests for the presentation layer. It is fed by observing the
// Store, never by the Controller.
//
// A scroll is requested when the panel is open and either the message count
// changed or the typing flag turned on. Focus is requested when the panel
// opens. Nothing is requested while the panel is closed.
type ScrollCoordinator struct {
	onScroll func()
	onFocus  func()

	last   View
	primed bool
}

// NewScrollCoordinator returns a coordinator calling onScroll and onFocus.
// Either may be nil.
func NewScrollCoordinator(onScroll, onFocus func()) *ScrollCoordinator {
	return &ScrollCoordinator{onScroll: onScroll, onFocus: onFocus}
}

// Attach primes the coordinator with the current state of store and
// subscribes it to later changes.
func (sc *ScrollCoordinator) Attach(store *Store) (detach func()) {
	sc.last = store.View()
	sc.primed = true
	return store.Subscribe(sc.Observe)
}

// Observe evaluates a new View against the previous one.
func (sc *ScrollCoordinator) Observe(v View) {
	prev := sc.last
	sc.last = v
	if !sc.primed {
		sc.primed = true
		prev = View{}
	}
	if !v.Open {
		return
	}

	if !prev.Open && sc.onFocus != nil {
		sc.onFocus()
	}
	grew := v.MessageCount != prev.MessageCount
	startedTyping := v.Typing && !prev.Typing
	if (grew || startedTyping) && sc.onScroll != nil {
		sc.onScroll()
	}
}
