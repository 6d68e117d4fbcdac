// Package frame provides the geometry and pixel math shared by all frame
// handlers: placing a zoomed frame on a drawing surface, formatting pixel
// values for inspection, and computing differences between two frames.
package frame

import (
	"fmt"
	"image"
	"strconv"
	"strings"

	"github.com/llehouerou/reel/internal/raw"
)

// CenteredRect returns the destination rectangle for drawing a frame of the
// given geometry, scaled by zoom and centered in bounds.
func CenteredRect(bounds image.Rectangle, geometry raw.Geometry, zoom float64) image.Rectangle {
	w := int(float64(geometry.Width) * zoom)
	h := int(float64(geometry.Height) * zoom)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	cx := bounds.Min.X + bounds.Dx()/2
	cy := bounds.Min.Y + bounds.Dy()/2
	return image.Rect(cx-w/2, cy-h/2, cx-w/2+w, cy-h/2+h)
}

// SourcePixel maps a point on the drawing surface back to the frame pixel it
// displays, given the destination rectangle the frame was drawn into.
func SourcePixel(pt image.Point, dst image.Rectangle, geometry raw.Geometry) (image.Point, bool) {
	if !pt.In(dst) || dst.Dx() == 0 || dst.Dy() == 0 {
		return image.Point{}, false
	}
	x := (pt.X - dst.Min.X) * geometry.Width / dst.Dx()
	y := (pt.Y - dst.Min.Y) * geometry.Height / dst.Dy()
	if x >= geometry.Width {
		x = geometry.Width - 1
	}
	if y >= geometry.Height {
		y = geometry.Height - 1
	}
	return image.Point{X: x, Y: y}, true
}

// FormatPixel renders component values like "Y:120 U:64 V:200" using the
// format's component names.
func FormatPixel(format raw.PixelFormat, components []int) string {
	if len(components) == 0 {
		return ""
	}
	names := format.ComponentNames()
	parts := make([]string, 0, len(components))
	for i, v := range components {
		name := "?"
		if i < len(names) {
			name = names[i]
		}
		parts = append(parts, name+":"+strconv.Itoa(v))
	}
	return strings.Join(parts, " ")
}

// FormatPixelShort renders component values compactly ("120,64,200") for
// high-zoom overlays where cell space is tight.
func FormatPixelShort(components []int) string {
	parts := make([]string, len(components))
	for i, v := range components {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}

// ErrGeometryMismatch is returned when two frames cannot be compared.
var ErrGeometryMismatch = fmt.Errorf("frame geometries differ")
