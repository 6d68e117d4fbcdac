// internal/playback/service_impl.go
package playback

import (
	"sync"
	"time"
)

// fallbackFrameRate drives sequences whose rate could not be determined.
const fallbackFrameRate = 25.0

// Verify serviceImpl implements Service at compile time.
var _ Service = (*serviceImpl)(nil)

type serviceImpl struct {
	mu sync.RWMutex

	frameCount int
	frameRate  float64
	frame      int
	state      State

	// ticker goroutine lifecycle; recreated on every Play.
	tickStop chan struct{}

	subs   []*Subscription
	subsMu sync.RWMutex

	closed bool
}

// New creates a playback service for a sequence of frameCount frames at
// frameRate frames per second. A non-positive rate falls back to 25 fps.
func New(frameCount int, frameRate float64) Service {
	if frameRate <= 0 {
		frameRate = fallbackFrameRate
	}
	return &serviceImpl{
		frameCount: frameCount,
		frameRate:  frameRate,
	}
}

// State returns the current playback state.
func (s *serviceImpl) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *serviceImpl) IsPlaying() bool { return s.State() == StatePlaying }
func (s *serviceImpl) IsStopped() bool { return s.State() == StateStopped }
func (s *serviceImpl) IsPaused() bool  { return s.State() == StatePaused }

// CurrentFrame returns the frame the clock points at.
func (s *serviceImpl) CurrentFrame() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.frame
}

// FrameCount returns the sequence length.
func (s *serviceImpl) FrameCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.frameCount
}

// FrameRate returns the effective frames-per-second rate.
func (s *serviceImpl) FrameRate() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.frameRate
}

// Position returns the time offset of the current frame.
func (s *serviceImpl) Position() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return time.Duration(float64(s.frame) / s.frameRate * float64(time.Second))
}

// Duration returns the length of the whole sequence.
func (s *serviceImpl) Duration() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return time.Duration(float64(s.frameCount) / s.frameRate * float64(time.Second))
}

// Play starts or resumes playback.
func (s *serviceImpl) Play() error {
	s.mu.Lock()
	if s.closed || s.frameCount == 0 || s.state == StatePlaying {
		s.mu.Unlock()
		return nil
	}
	prev := s.state
	s.state = StatePlaying

	stop := make(chan struct{})
	s.tickStop = stop
	interval := time.Duration(float64(time.Second) / s.frameRate)
	s.mu.Unlock()

	go s.run(stop, interval)

	s.publishState(StateChange{Previous: prev, Current: StatePlaying})
	return nil
}

// Pause pauses playback, keeping the current frame.
func (s *serviceImpl) Pause() error {
	s.mu.Lock()
	if s.state != StatePlaying {
		s.mu.Unlock()
		return nil
	}
	s.state = StatePaused
	s.stopTickerLocked()
	s.mu.Unlock()

	s.publishState(StateChange{Previous: StatePlaying, Current: StatePaused})
	return nil
}

// Stop halts playback and rewinds to frame 0.
func (s *serviceImpl) Stop() error {
	s.mu.Lock()
	if s.state == StateStopped {
		s.mu.Unlock()
		return nil
	}
	prev := s.state
	prevFrame := s.frame
	s.state = StateStopped
	s.frame = 0
	s.stopTickerLocked()
	s.mu.Unlock()

	s.publishState(StateChange{Previous: prev, Current: StateStopped})
	if prevFrame != 0 {
		s.publishFrame(FrameChange{Previous: prevFrame, Current: 0})
	}
	return nil
}

// Toggle cycles Playing ↔ Paused; when Stopped it starts playback.
func (s *serviceImpl) Toggle() error {
	switch s.State() {
	case StatePlaying:
		return s.Pause()
	default:
		return s.Play()
	}
}

// StepForward advances one frame, clamping at the last.
func (s *serviceImpl) StepForward() {
	s.moveTo(s.CurrentFrame() + 1)
}

// StepBackward goes back one frame, clamping at 0.
func (s *serviceImpl) StepBackward() {
	s.moveTo(s.CurrentFrame() - 1)
}

// JumpTo moves the clock to frameIdx, clamped to the sequence.
func (s *serviceImpl) JumpTo(frameIdx int) {
	s.moveTo(frameIdx)
}

func (s *serviceImpl) moveTo(frameIdx int) {
	s.mu.Lock()
	if s.frameCount == 0 {
		s.mu.Unlock()
		return
	}
	if frameIdx < 0 {
		frameIdx = 0
	}
	if frameIdx >= s.frameCount {
		frameIdx = s.frameCount - 1
	}
	prev := s.frame
	s.frame = frameIdx
	s.mu.Unlock()

	if prev != frameIdx {
		s.publishFrame(FrameChange{Previous: prev, Current: frameIdx})
	}
}

// run advances the frame at the sequence rate until stopped or the last
// frame is reached.
func (s *serviceImpl) run(stop chan struct{}, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			s.mu.Lock()
			if s.state != StatePlaying {
				s.mu.Unlock()
				return
			}
			prev := s.frame
			if prev >= s.frameCount-1 {
				// End of sequence: pause on the last frame.
				s.state = StatePaused
				s.tickStop = nil
				s.mu.Unlock()
				s.publishState(StateChange{Previous: StatePlaying, Current: StatePaused})
				return
			}
			s.frame = prev + 1
			s.mu.Unlock()
			s.publishFrame(FrameChange{Previous: prev, Current: prev + 1})
		}
	}
}

// stopTickerLocked signals the ticker goroutine to exit. Callers hold s.mu.
func (s *serviceImpl) stopTickerLocked() {
	if s.tickStop != nil {
		close(s.tickStop)
		s.tickStop = nil
	}
}

// Subscribe returns a new subscription to playback events.
func (s *serviceImpl) Subscribe() *Subscription {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	sub := newSubscription()
	s.subs = append(s.subs, sub)
	return sub
}

// Unsubscribe removes a subscription and closes its Done channel.
func (s *serviceImpl) Unsubscribe(sub *Subscription) {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	for i, existing := range s.subs {
		if existing == sub {
			s.subs = append(s.subs[:i], s.subs[i+1:]...)
			sub.close()
			return
		}
	}
}

// Close stops playback and closes all subscriptions.
func (s *serviceImpl) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.state = StateStopped
	s.stopTickerLocked()
	s.mu.Unlock()

	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	for _, sub := range s.subs {
		sub.close()
	}
	s.subs = nil
}

func (s *serviceImpl) publishState(e StateChange) {
	s.subsMu.RLock()
	defer s.subsMu.RUnlock()
	for _, sub := range s.subs {
		sub.sendState(e)
	}
}

func (s *serviceImpl) publishFrame(e FrameChange) {
	s.subsMu.RLock()
	defer s.subsMu.RUnlock()
	for _, sub := range s.subs {
		sub.sendFrame(e)
	}
}
