// Package ui implements the terminal frontend: the frame viewer, status bar,
// goto-frame prompt and help overlay.
package ui

// Layout constants for consistent sizing across UI components.
const (
	// StatusBarHeight is the vertical space consumed by the status bar.
	StatusBarHeight = 1

	// JumpFrames is how far page up/down moves through the sequence.
	JumpFrames = 10

	// MinViewerHeight is the smallest canvas height worth rendering.
	MinViewerHeight = 2
)

// ZoomLevels lists the zoom factors cycled by zoom in/out, in ascending
// order. Values above the pixel-value threshold show the inspection overlay.
var ZoomLevels = []float64{0.125, 0.25, 0.5, 1, 2, 4, 8, 16, 32, 64, 128}
