package playback

// StateChange is emitted when playback state changes.
type StateChange struct {
	Previous State
	Current  State
}

// FrameChange is emitted when the current frame advances or jumps.
//
// Emitted by:
//   - the playback ticker, once per frame interval while playing
//   - StepForward/StepBackward/JumpTo
//
// NOT emitted by Play/Pause/Stop: state changes do not move the frame.
type FrameChange struct {
	Previous int
	Current  int
}
