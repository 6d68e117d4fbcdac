package ui

import "github.com/llehouerou/reel/internal/playback"

// HandlerChangedMsg is sent when the frame handler reports a change.
type HandlerChangedMsg struct {
	Redraw      bool
	InfoChanged bool
}

// FrameLimitsMsg is sent when the number of addressable frames may have
// changed.
type FrameLimitsMsg struct{}

// HandlerClosedMsg is sent when the handler subscription is closed.
type HandlerClosedMsg struct{}

// PlaybackStateMsg is sent when the playback clock changes state.
type PlaybackStateMsg struct {
	Previous playback.State
	Current  playback.State
}

// PlaybackFrameMsg is sent when the current frame moves.
type PlaybackFrameMsg struct {
	Previous int
	Current  int
}

// PlaybackClosedMsg is sent when the playback subscription is closed.
type PlaybackClosedMsg struct{}

// statusClearMsg clears a transient status message.
type statusClearMsg struct{ id int }
