package video

// HandlerChange is emitted when the handler's state changed in a way the
// application may want to react to.
//
// Emitted with:
//   - Redraw=true, InfoChanged=true: invalidation via OnControlChanged -
//     cached and current images were dropped, the display must redraw.
//   - Redraw=false, InfoChanged=true: debounced cache growth - only status
//     information (cached frame count) needs refreshing.
type HandlerChange struct {
	Redraw      bool
	InfoChanged bool
}

// FrameLimitsChange is emitted when a geometry or content change may have
// altered the number of addressable frames.
type FrameLimitsChange struct{}
