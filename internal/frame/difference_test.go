package frame

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func uniformImage(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestDiff_MSEAndPSNR(t *testing.T) {
	// Every sample differs by 5: MSE = 25, PSNR = 10*log10(255^2/25).
	a := uniformImage(4, 4, color.RGBA{100, 100, 100, 255})
	b := uniformImage(4, 4, color.RGBA{105, 105, 105, 255})

	d, err := Diff(a, b)
	assert.NoError(t, err)
	assert.Equal(t, 16, d.DiffCount)
	assert.InDelta(t, 25.0, d.MSE, 1e-9)
	assert.InDelta(t, 10*math.Log10(255*255/25.0), d.PSNR, 1e-9)
}

func TestDiff_AmplifiedVisualization(t *testing.T) {
	a := uniformImage(2, 2, color.RGBA{10, 10, 10, 255})
	b := uniformImage(2, 2, color.RGBA{20, 10, 10, 255})

	d, err := Diff(a, b)
	assert.NoError(t, err)

	// Difference of 10 on the red channel amplified by 4.
	px := d.Image.RGBAAt(0, 0)
	assert.Equal(t, uint8(40), px.R)
	assert.Equal(t, uint8(0), px.G)
	assert.Equal(t, uint8(0), px.B)
	assert.Equal(t, uint8(255), px.A)
}

func TestDiff_AmplificationClamps(t *testing.T) {
	a := uniformImage(1, 1, color.RGBA{0, 0, 0, 255})
	b := uniformImage(1, 1, color.RGBA{200, 0, 0, 255})

	d, err := Diff(a, b)
	assert.NoError(t, err)
	assert.Equal(t, uint8(255), d.Image.RGBAAt(0, 0).R)
}
