// Package keymap defines key bindings and action dispatch for the application.
package keymap

// Action represents a user-triggerable action.
type Action string

const (
	// Global actions
	ActionQuit Action = "quit"
	ActionHelp Action = "help"

	// Playback actions
	ActionPlayPause Action = "play_pause"
	ActionStop      Action = "stop"

	// Frame navigation
	ActionNextFrame  Action = "next_frame"
	ActionPrevFrame  Action = "prev_frame"
	ActionFirstFrame Action = "first_frame"
	ActionLastFrame  Action = "last_frame"
	ActionJumpAhead  Action = "jump_ahead"
	ActionJumpBack   Action = "jump_back"
	ActionGotoFrame  Action = "goto_frame"

	// View actions
	ActionZoomIn     Action = "zoom_in"
	ActionZoomOut    Action = "zoom_out"
	ActionZoomFit    Action = "zoom_fit"
	ActionZoomOne    Action = "zoom_one"
	ActionInspect    Action = "inspect"
	ActionDifference Action = "difference"

	// Cache actions
	ActionPurgeCache Action = "purge_cache"
)
