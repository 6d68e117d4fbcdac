// Package raw decodes frames from raw planar video files (YUV and Y4M).
package raw

import (
	"fmt"
	"strings"
)

// PixelFormat identifies the layout of a raw frame's planes.
type PixelFormat int

const (
	FormatYUV420p PixelFormat = iota // 4:2:0 planar, chroma halved in both dimensions
	FormatYUV422p                    // 4:2:2 planar, chroma halved horizontally
	FormatYUV444p                    // 4:4:4 planar, full-resolution chroma
	FormatGray8                      // single luma plane
	FormatRGB24                      // packed RGB, 3 bytes per pixel
)

// String returns the conventional name of the format.
func (f PixelFormat) String() string {
	switch f {
	case FormatYUV420p:
		return "yuv420p"
	case FormatYUV422p:
		return "yuv422p"
	case FormatYUV444p:
		return "yuv444p"
	case FormatGray8:
		return "gray8"
	case FormatRGB24:
		return "rgb24"
	default:
		return "unknown"
	}
}

// ParseFormat parses a format name as written in file names or config.
func ParseFormat(s string) (PixelFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yuv420p", "420p", "420", "i420":
		return FormatYUV420p, nil
	case "yuv422p", "422p", "422", "i422":
		return FormatYUV422p, nil
	case "yuv444p", "444p", "444", "i444":
		return FormatYUV444p, nil
	case "gray8", "gray", "grey", "y8":
		return FormatGray8, nil
	case "rgb24", "rgb":
		return FormatRGB24, nil
	default:
		return 0, fmt.Errorf("unknown pixel format %q", s)
	}
}

// ComponentNames returns the per-pixel component labels for the format.
func (f PixelFormat) ComponentNames() []string {
	switch f {
	case FormatGray8:
		return []string{"Y"}
	case FormatRGB24:
		return []string{"R", "G", "B"}
	default:
		return []string{"Y", "U", "V"}
	}
}

// Geometry is the pixel dimensions of a frame.
type Geometry struct {
	Width  int
	Height int
}

// Valid reports whether both dimensions are positive.
func (g Geometry) Valid() bool {
	return g.Width > 0 && g.Height > 0
}

// Area returns the number of pixels in a frame.
func (g Geometry) Area() int {
	return g.Width * g.Height
}

func (g Geometry) String() string {
	return fmt.Sprintf("%dx%d", g.Width, g.Height)
}

// chromaSize returns the dimensions of one chroma plane for the format.
func (f PixelFormat) chromaSize(g Geometry) (w, h int) {
	switch f {
	case FormatYUV420p:
		return (g.Width + 1) / 2, (g.Height + 1) / 2
	case FormatYUV422p:
		return (g.Width + 1) / 2, g.Height
	case FormatYUV444p:
		return g.Width, g.Height
	default:
		return 0, 0
	}
}

// BytesPerFrame returns the size in bytes of one raw frame at the given
// geometry.
func (f PixelFormat) BytesPerFrame(g Geometry) int64 {
	luma := int64(g.Area())
	switch f {
	case FormatGray8:
		return luma
	case FormatRGB24:
		return luma * 3
	default:
		cw, ch := f.chromaSize(g)
		return luma + 2*int64(cw)*int64(ch)
	}
}

// PlaneCount returns the number of planes a decoded frame carries.
func (f PixelFormat) PlaneCount() int {
	switch f {
	case FormatGray8:
		return 1
	case FormatRGB24:
		return 1
	default:
		return 3
	}
}
