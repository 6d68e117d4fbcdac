package playback

import "time"

// Service defines the playback clock contract: stepping and playing through
// a fixed-length frame sequence at its frame rate.
type Service interface {
	// Playback control
	Play() error
	Pause() error
	Stop() error
	Toggle() error

	// Frame navigation
	StepForward()
	StepBackward()
	JumpTo(frameIdx int)

	// State queries
	State() State
	IsPlaying() bool
	IsStopped() bool
	IsPaused() bool
	CurrentFrame() int
	FrameCount() int
	FrameRate() float64
	Position() time.Duration
	Duration() time.Duration

	// Events
	Subscribe() *Subscription
	Unsubscribe(*Subscription)
	Close()
}
