// Package canvas renders frames into terminal cells. Each cell shows two
// vertically stacked pixels using the upper-half-block glyph with separate
// foreground and background colors, so a w x h cell area is a w x 2h pixel
// surface.
package canvas

import (
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	"github.com/llehouerou/reel/internal/video"
)

const halfBlock = "▀"

// CellCanvas is a drawing surface backed by a pixel buffer sized to the
// terminal cell grid. It implements video.Canvas plus text overlay drawing.
type CellCanvas struct {
	cellsW int
	cellsH int
	pixels *image.RGBA
	scaler *Scaler

	// Overlay text per cell; empty string means no overlay.
	text []string
}

var _ video.Canvas = (*CellCanvas)(nil)

// New creates a canvas covering cellsW x cellsH terminal cells.
func New(cellsW, cellsH int, scaler *Scaler) *CellCanvas {
	if cellsW < 0 {
		cellsW = 0
	}
	if cellsH < 0 {
		cellsH = 0
	}
	return &CellCanvas{
		cellsW: cellsW,
		cellsH: cellsH,
		pixels: image.NewRGBA(image.Rect(0, 0, cellsW, cellsH*2)),
		scaler: scaler,
		text:   make([]string, cellsW*cellsH),
	}
}

// Bounds returns the canvas extent in pixel space.
func (c *CellCanvas) Bounds() image.Rectangle {
	return image.Rect(0, 0, c.cellsW, c.cellsH*2)
}

// DrawImage scales img to dst and blits the part that intersects the canvas.
func (c *CellCanvas) DrawImage(dst image.Rectangle, img *image.RGBA) {
	if dst.Dx() <= 0 || dst.Dy() <= 0 {
		return
	}
	scaled := img
	if dst.Dx() != img.Bounds().Dx() || dst.Dy() != img.Bounds().Dy() {
		scaled = c.scaler.Scale(img, dst.Dx(), dst.Dy())
	}

	visible := dst.Intersect(c.Bounds())
	for y := visible.Min.Y; y < visible.Max.Y; y++ {
		for x := visible.Min.X; x < visible.Max.X; x++ {
			c.pixels.SetRGBA(x, y, scaled.RGBAAt(
				scaled.Bounds().Min.X+x-dst.Min.X,
				scaled.Bounds().Min.Y+y-dst.Min.Y,
			))
		}
	}
}

// DrawText places s starting at pixel position (x, y); it occupies the cell
// row containing that pixel. Text outside the canvas is clipped.
func (c *CellCanvas) DrawText(x, y int, s string) {
	cy := y / 2
	if cy < 0 || cy >= c.cellsH {
		return
	}
	cx := x
	state := -1
	for len(s) > 0 {
		var cluster string
		cluster, s, _, state = uniseg.FirstGraphemeClusterInString(s, state)
		w := runewidth.StringWidth(cluster)
		if w == 0 {
			continue
		}
		if cx >= 0 && cx < c.cellsW {
			c.text[cy*c.cellsW+cx] = cluster
		}
		cx += w
	}
}

// PixelAt returns the pixel color at (x, y) for tests and overlay contrast
// decisions.
func (c *CellCanvas) PixelAt(x, y int) color.RGBA {
	return c.pixels.RGBAAt(x, y)
}

// Render produces the styled terminal string, one line per cell row.
func (c *CellCanvas) Render() string {
	var b strings.Builder
	for cy := 0; cy < c.cellsH; cy++ {
		if cy > 0 {
			b.WriteByte('\n')
		}
		for cx := 0; cx < c.cellsW; cx++ {
			top := c.pixels.RGBAAt(cx, cy*2)
			bottom := c.pixels.RGBAAt(cx, cy*2+1)

			if t := c.text[cy*c.cellsW+cx]; t != "" {
				b.WriteString(renderTextCell(t, top, bottom))
				continue
			}

			style := lipgloss.NewStyle().
				Foreground(lipgloss.Color(hexColor(top))).
				Background(lipgloss.Color(hexColor(bottom)))
			b.WriteString(style.Render(halfBlock))
		}
	}
	return b.String()
}

// renderTextCell draws an overlay character with a foreground picked for
// contrast against the cell's average color.
func renderTextCell(t string, top, bottom color.RGBA) string {
	bg := color.RGBA{
		R: uint8((int(top.R) + int(bottom.R)) / 2),
		G: uint8((int(top.G) + int(bottom.G)) / 2),
		B: uint8((int(top.B) + int(bottom.B)) / 2),
		A: 255,
	}
	fg := "#000000"
	if cf, ok := colorful.MakeColor(bg); ok {
		if _, _, l := cf.Hsl(); l < 0.5 {
			fg = "#ffffff"
		}
	}
	style := lipgloss.NewStyle().
		Foreground(lipgloss.Color(fg)).
		Background(lipgloss.Color(hexColor(bg)))
	return style.Render(t)
}

func hexColor(c color.RGBA) string {
	const hexdigits = "0123456789abcdef"
	b := []byte{'#', 0, 0, 0, 0, 0, 0}
	for i, v := range []uint8{c.R, c.G, c.B} {
		b[1+i*2] = hexdigits[v>>4]
		b[2+i*2] = hexdigits[v&0xf]
	}
	return string(b)
}
