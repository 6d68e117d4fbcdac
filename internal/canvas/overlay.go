package canvas

import (
	"image"

	"github.com/mattn/go-runewidth"

	"github.com/llehouerou/reel/internal/frame"
	"github.com/llehouerou/reel/internal/video"
)

// TextCanvas is a canvas that can draw overlay text.
type TextCanvas interface {
	video.Canvas
	DrawText(x, y int, s string)
}

// PixelOverlay writes raw component values over each visible source pixel.
// Installed on the handler as the high-zoom overlay; canvases without text
// support are skipped.
func PixelOverlay(c video.Canvas, img *video.Image, dst image.Rectangle, zoom float64) {
	tc, ok := c.(TextCanvas)
	if !ok || zoom <= 0 {
		return
	}

	visible := dst.Intersect(c.Bounds())
	if visible.Empty() {
		return
	}

	geometry := img.Geometry()
	// Range of source pixels intersecting the visible area.
	sx0, okA := frame.SourcePixel(visible.Min, dst, geometry)
	sx1, okB := frame.SourcePixel(visible.Max.Sub(image.Pt(1, 1)), dst, geometry)
	if !okA || !okB {
		return
	}

	for sy := sx0.Y; sy <= sx1.Y; sy++ {
		for sx := sx0.X; sx <= sx1.X; sx++ {
			values := img.PixelAt(sx, sy)
			if values == nil {
				continue
			}
			label := frame.FormatPixelShort(values)

			// Pixel block in canvas space.
			bx := dst.Min.X + int(float64(sx)*zoom)
			by := dst.Min.Y + int(float64(sy)*zoom)
			blockW := int(zoom)

			if w := runewidth.StringWidth(label); w > blockW {
				continue
			}
			// Centered horizontally, on the middle cell row of the block.
			tx := bx + (blockW-runewidth.StringWidth(label))/2
			ty := by + int(zoom)/2
			tc.DrawText(tx, ty, label)
		}
	}
}
