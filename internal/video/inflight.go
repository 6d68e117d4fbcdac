package video

import "sync"

// latch is the one-shot primitive a caching worker holds for the duration of
// a decode. The worker closes it in End; waiters block on the channel and
// resume when it closes. A latch is created held and released exactly once.
type latch chan struct{}

// inflightRegistry tracks which frame indices are currently being decoded.
// An index is present iff a decode for it is in progress, and the worker that
// inserted the entry is the one that removes it.
//
// Lock order: the registry mutex is only ever held for map access, never
// while blocked on a latch.
type inflightRegistry struct {
	mu      sync.Mutex
	latches map[int]latch
}

func newInflightRegistry() *inflightRegistry {
	return &inflightRegistry{latches: make(map[int]latch)}
}

// TryBegin atomically registers a held latch for idx. It returns false when a
// decode for idx is already in flight.
func (r *inflightRegistry) TryBegin(idx int) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.latches[idx]; ok {
		return false
	}
	r.latches[idx] = make(latch)
	return true
}

// Latch returns the latch for idx so a waiter can block on it outside the
// registry mutex. ok is false when no decode is in flight.
func (r *inflightRegistry) Latch(idx int) (<-chan struct{}, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.latches[idx]
	return l, ok
}

// Wait blocks until the in-flight decode for idx finishes. Returns
// immediately if none is in flight.
func (r *inflightRegistry) Wait(idx int) {
	if l, ok := r.Latch(idx); ok {
		<-l
	}
}

// End releases idx's latch and removes the entry. Must be called exactly once
// by the worker whose TryBegin succeeded.
func (r *inflightRegistry) End(idx int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if l, ok := r.latches[idx]; ok {
		close(l)
		delete(r.latches, idx)
	}
}

func (r *inflightRegistry) Contains(idx int) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.latches[idx]
	return ok
}
