// Package caching schedules background decoding of frames into the video
// handler's cache. A pool of workers pulls frame indices from the current
// plan; planning again replaces the pending plan, and Stop cancels and joins
// all workers so the handler can be torn down safely afterwards.
package caching

import (
	"context"
	"fmt"
	"sync"

	"github.com/dustin/go-humanize"

	"github.com/llehouerou/reel/internal/notify"
	"github.com/llehouerou/reel/internal/video"
)

// notifyPlanThreshold is the plan size from which completion raises a
// desktop notification. Small plans complete too fast to be worth one.
const notifyPlanThreshold = 30

// Handler is the caching surface the scheduler drives.
type Handler interface {
	CacheFrame(frameIdx int)
	RemoveFromCache(frameIdx int)
	IsInCache(frameIdx int) bool
	CachedFrames() []int
	FrameCount() int
	CachingFrameSizeBytes() int64
	CacheSizeBytes() int64
}

var _ Handler = (*video.Handler)(nil)

// Scheduler fills the frame cache around the frame currently being viewed.
type Scheduler struct {
	handler     Handler
	workers     int
	budgetBytes int64
	notifier    notify.Notifier

	plans  chan []int
	jobs   chan int
	cancel context.CancelFunc
	wg     sync.WaitGroup

	started bool
}

// New creates a scheduler with the given worker count and cache byte budget.
// notifier may be nil to disable completion notifications.
func New(handler Handler, workers int, budgetBytes int64, notifier notify.Notifier) *Scheduler {
	if workers < 1 {
		workers = 1
	}
	return &Scheduler{
		handler:     handler,
		workers:     workers,
		budgetBytes: budgetBytes,
		notifier:    notifier,
		plans:       make(chan []int, 1),
		jobs:        make(chan int),
	}
}

// Start launches the dispatcher and worker goroutines.
func (s *Scheduler) Start() {
	if s.started {
		return
	}
	s.started = true

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	for i := 0; i < s.workers; i++ {
		s.wg.Add(1)
		go s.worker(ctx)
	}

	s.wg.Add(1)
	go s.dispatch(ctx)
}

// Stop cancels pending work and joins all goroutines. The handler may be
// closed once Stop returns; no worker touches it afterwards.
func (s *Scheduler) Stop() {
	if !s.started {
		return
	}
	s.cancel()
	s.wg.Wait()
	s.started = false
}

// PlanAround replaces the pending plan with a window of frames following
// current, bounded by the byte budget. Cached frames outside the window are
// evicted first, so the cache tracks the budget as the viewer moves.
// Already-cached frames are skipped at planning time; workers skip again at
// decode time, so a stale plan is harmless.
func (s *Scheduler) PlanAround(current int) {
	window := s.windowFrames(current)

	inWindow := make(map[int]bool, len(window))
	for _, idx := range window {
		inWindow[idx] = true
	}
	for _, idx := range s.handler.CachedFrames() {
		if !inWindow[idx] {
			s.handler.RemoveFromCache(idx)
		}
	}

	frames := window[:0]
	for _, idx := range window {
		if !s.handler.IsInCache(idx) {
			frames = append(frames, idx)
		}
	}
	for {
		select {
		case s.plans <- frames:
			return
		default:
		}
		// Drop the stale plan and retry.
		select {
		case <-s.plans:
		default:
		}
	}
}

// windowFrames builds the budget-bounded window of frame indices starting at
// current, walking forward and wrapping at the end of the sequence.
func (s *Scheduler) windowFrames(current int) []int {
	total := s.handler.FrameCount()
	if total == 0 {
		return nil
	}

	perFrame := s.handler.CachingFrameSizeBytes()
	if perFrame <= 0 {
		return nil
	}
	limit := int(s.budgetBytes / perFrame)
	if limit < 1 {
		limit = 1
	}
	if limit > total {
		limit = total
	}

	frames := make([]int, 0, limit)
	for i := 0; i < limit; i++ {
		idx := (current + i) % total
		if idx < 0 {
			idx += total
		}
		frames = append(frames, idx)
	}
	return frames
}

// dispatch feeds the current plan to workers, replacing it whenever a new
// plan arrives.
func (s *Scheduler) dispatch(ctx context.Context) {
	defer s.wg.Done()

	var pending []int
	var planned int

	for {
		var out chan int
		var next int
		if len(pending) > 0 {
			out = s.jobs
			next = pending[0]
		}

		select {
		case <-ctx.Done():
			return
		case p := <-s.plans:
			pending = p
			planned = len(p)
		case out <- next:
			pending = pending[1:]
			if len(pending) == 0 && planned >= notifyPlanThreshold {
				s.notifyDone(planned)
			}
		}
	}
}

func (s *Scheduler) worker(ctx context.Context) {
	defer s.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case idx := <-s.jobs:
			s.handler.CacheFrame(idx)
		}
	}
}

func (s *Scheduler) notifyDone(frames int) {
	if s.notifier == nil {
		return
	}
	_, _ = s.notifier.Notify(notify.Notification{
		Title:   "Caching complete",
		Body:    fmt.Sprintf("%d frames cached (%s)", frames, humanize.IBytes(uint64(s.handler.CacheSizeBytes()))),
		Timeout: 5000,
		Urgency: notify.UrgencyLow,
	})
}
