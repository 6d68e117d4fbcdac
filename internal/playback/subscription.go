package playback

const eventBufferSize = 16

// Subscription provides event channels for a subscriber.
type Subscription struct {
	StateChanged <-chan StateChange
	FrameChanged <-chan FrameChange
	Done         <-chan struct{}

	// Internal write channels
	stateCh chan StateChange
	frameCh chan FrameChange
	doneCh  chan struct{}
}

// newSubscription creates a new subscription with buffered channels.
func newSubscription() *Subscription {
	s := &Subscription{
		stateCh: make(chan StateChange, eventBufferSize),
		frameCh: make(chan FrameChange, eventBufferSize),
		doneCh:  make(chan struct{}),
	}
	s.StateChanged = s.stateCh
	s.FrameChanged = s.frameCh
	s.Done = s.doneCh
	return s
}

// close signals subscribers to stop by closing doneCh.
func (s *Subscription) close() {
	close(s.doneCh)
}

// sendState sends a state change event (non-blocking).
func (s *Subscription) sendState(e StateChange) {
	select {
	case s.stateCh <- e:
	default:
		// Drop if buffer full
	}
}

// sendFrame sends a frame change event (non-blocking).
func (s *Subscription) sendFrame(e FrameChange) {
	select {
	case s.frameCh <- e:
	default:
	}
}
