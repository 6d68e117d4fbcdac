// Package keymap defines key bindings for the application.
package keymap

// Binding describes a single key binding.
type Binding struct {
	Keys        []string
	Action      Action
	Description string
	Context     string // "global", "playback", "view", "cache"
}

// All contains all key bindings for resolution and help generation.
var All = []Binding{
	// Global
	{[]string{"q", "ctrl+c"}, ActionQuit, "Quit application", "global"},
	{[]string{"?"}, ActionHelp, "Show help", "global"},

	// Playback
	{[]string{" "}, ActionPlayPause, "Play/pause", "playback"},
	{[]string{"s"}, ActionStop, "Stop and rewind", "playback"},

	// Frame navigation
	{[]string{"l", "right"}, ActionNextFrame, "Next frame", "playback"},
	{[]string{"h", "left"}, ActionPrevFrame, "Previous frame", "playback"},
	{[]string{"home"}, ActionFirstFrame, "First frame", "playback"},
	{[]string{"end"}, ActionLastFrame, "Last frame", "playback"},
	{[]string{"pgdown"}, ActionJumpAhead, "Jump 10 frames ahead", "playback"},
	{[]string{"pgup"}, ActionJumpBack, "Jump 10 frames back", "playback"},
	{[]string{"g"}, ActionGotoFrame, "Go to frame...", "playback"},

	// View
	{[]string{"+", "="}, ActionZoomIn, "Zoom in", "view"},
	{[]string{"-"}, ActionZoomOut, "Zoom out", "view"},
	{[]string{"f"}, ActionZoomFit, "Fit frame to window", "view"},
	{[]string{"1"}, ActionZoomOne, "Zoom 1:1", "view"},
	{[]string{"i"}, ActionInspect, "Toggle pixel inspection", "view"},
	{[]string{"d"}, ActionDifference, "Toggle difference view", "view"},

	// Cache
	{[]string{"x"}, ActionPurgeCache, "Purge frame cache", "cache"},
}

// ByContext returns key bindings filtered by context.
func ByContext(context string) []Binding {
	var result []Binding
	for _, kb := range All {
		if kb.Context == context {
			result = append(result, kb)
		}
	}
	return result
}
