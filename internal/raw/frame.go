package raw

import (
	"image"
	"image/color"
)

// Frame is one decoded raw frame: the original planes plus enough metadata
// to address individual pixels. Frames are immutable once returned by a
// source.
type Frame struct {
	Geometry Geometry
	Format   PixelFormat
	Planes   [][]byte
}

// SizeBytes returns the total size of the frame's planes.
func (f *Frame) SizeBytes() int64 {
	var n int64
	for _, p := range f.Planes {
		n += int64(len(p))
	}
	return n
}

// PixelAt returns the raw component values at (x, y), in the order given by
// Format.ComponentNames. Out-of-bounds coordinates return nil.
func (f *Frame) PixelAt(x, y int) []int {
	if x < 0 || y < 0 || x >= f.Geometry.Width || y >= f.Geometry.Height {
		return nil
	}
	switch f.Format {
	case FormatGray8:
		return []int{int(f.Planes[0][y*f.Geometry.Width+x])}
	case FormatRGB24:
		off := (y*f.Geometry.Width + x) * 3
		p := f.Planes[0]
		return []int{int(p[off]), int(p[off+1]), int(p[off+2])}
	default:
		cw, _ := f.Format.chromaSize(f.Geometry)
		cx, cy := x, y
		switch f.Format {
		case FormatYUV420p:
			cx, cy = x/2, y/2
		case FormatYUV422p:
			cx = x / 2
		}
		yv := int(f.Planes[0][y*f.Geometry.Width+x])
		uv := int(f.Planes[1][cy*cw+cx])
		vv := int(f.Planes[2][cy*cw+cx])
		return []int{yv, uv, vv}
	}
}

// RGBA converts the frame to an RGBA image for display. YUV conversion uses
// full-range BT.601 coefficients.
func (f *Frame) RGBA() *image.RGBA {
	g := f.Geometry
	img := image.NewRGBA(image.Rect(0, 0, g.Width, g.Height))
	switch f.Format {
	case FormatGray8:
		for y := 0; y < g.Height; y++ {
			for x := 0; x < g.Width; x++ {
				v := f.Planes[0][y*g.Width+x]
				img.SetRGBA(x, y, color.RGBA{v, v, v, 255})
			}
		}
	case FormatRGB24:
		p := f.Planes[0]
		for y := 0; y < g.Height; y++ {
			for x := 0; x < g.Width; x++ {
				off := (y*g.Width + x) * 3
				img.SetRGBA(x, y, color.RGBA{p[off], p[off+1], p[off+2], 255})
			}
		}
	default:
		for y := 0; y < g.Height; y++ {
			for x := 0; x < g.Width; x++ {
				c := f.PixelAt(x, y)
				r, gr, b := yuvToRGB(c[0], c[1], c[2])
				img.SetRGBA(x, y, color.RGBA{r, gr, b, 255})
			}
		}
	}
	return img
}

func yuvToRGB(y, u, v int) (r, g, b uint8) {
	cb := u - 128
	cr := v - 128
	return clamp8(y + (91881*cr)>>16),
		clamp8(y - (22554*cb+46802*cr)>>16),
		clamp8(y + (116130*cb)>>16)
}

func clamp8(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
