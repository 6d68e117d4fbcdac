package video

import "sync"

const eventBufferSize = 16

// Subscription provides event channels for a subscriber.
type Subscription struct {
	HandlerChanged <-chan HandlerChange
	FrameLimits    <-chan FrameLimitsChange
	Done           <-chan struct{}

	// Internal write channels
	handlerCh chan HandlerChange
	limitsCh  chan FrameLimitsChange
	doneCh    chan struct{}
}

// newSubscription creates a new subscription with buffered channels.
func newSubscription() *Subscription {
	s := &Subscription{
		handlerCh: make(chan HandlerChange, eventBufferSize),
		limitsCh:  make(chan FrameLimitsChange, eventBufferSize),
		doneCh:    make(chan struct{}),
	}
	s.HandlerChanged = s.handlerCh
	s.FrameLimits = s.limitsCh
	s.Done = s.doneCh
	return s
}

// close signals subscribers to stop by closing doneCh.
func (s *Subscription) close() {
	close(s.doneCh)
}

// sendHandlerChanged sends a handler change event (non-blocking).
func (s *Subscription) sendHandlerChanged(e HandlerChange) {
	select {
	case s.handlerCh <- e:
	default:
		// Drop if buffer full
	}
}

// sendFrameLimits sends a frame limits event (non-blocking).
func (s *Subscription) sendFrameLimits() {
	select {
	case s.limitsCh <- FrameLimitsChange{}:
	default:
	}
}

// eventBus fans handler events out to subscribers. The handler does not know
// who subscribes.
type eventBus struct {
	mu   sync.Mutex
	subs []*Subscription
}

func (b *eventBus) subscribe() *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()
	s := newSubscription()
	b.subs = append(b.subs, s)
	return s
}

func (b *eventBus) unsubscribe(sub *Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, s := range b.subs {
		if s == sub {
			b.subs = append(b.subs[:i], b.subs[i+1:]...)
			s.close()
			return
		}
	}
}

func (b *eventBus) publishHandlerChanged(e HandlerChange) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, s := range b.subs {
		s.sendHandlerChanged(e)
	}
}

func (b *eventBus) publishFrameLimits() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, s := range b.subs {
		s.sendFrameLimits()
	}
}

func (b *eventBus) closeAll() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, s := range b.subs {
		s.close()
	}
	b.subs = nil
}
