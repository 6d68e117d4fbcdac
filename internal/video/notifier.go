package video

import (
	"sync"
	"time"
)

// cacheNotifyDebounce is how long cache-growth notifications are coalesced:
// caching N frames in a burst produces one event, not N.
const cacheNotifyDebounce = time.Second

// changeNotifier debounces cache-growth notifications with a single-shot
// timer. Arming while armed is a no-op; the pending timer fires once and
// disarms.
type changeNotifier struct {
	mu     sync.Mutex
	armed  bool
	timer  *time.Timer
	delay  time.Duration
	notify func()
}

func newChangeNotifier(delay time.Duration, notify func()) *changeNotifier {
	return &changeNotifier{delay: delay, notify: notify}
}

// Arm starts the single-shot timer unless one is already pending.
func (n *changeNotifier) Arm() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.armed {
		return
	}
	n.armed = true
	n.timer = time.AfterFunc(n.delay, func() {
		n.mu.Lock()
		n.armed = false
		n.mu.Unlock()
		n.notify()
	})
}

// Stop cancels any pending notification.
func (n *changeNotifier) Stop() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.timer != nil {
		n.timer.Stop()
	}
	n.armed = false
}
