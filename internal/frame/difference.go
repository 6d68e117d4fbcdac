package frame

import (
	"image"
	"image/color"
	"math"
)

// Difference holds the result of comparing two frames of equal geometry.
type Difference struct {
	// Image visualizes per-pixel absolute differences, amplified so small
	// deviations are visible.
	Image *image.RGBA
	// DiffCount is the number of pixels whose RGB values differ at all.
	DiffCount int
	// MSE is the mean squared error over all RGB samples.
	MSE float64
	// PSNR in dB, or +Inf for identical images.
	PSNR float64
}

// diffAmplification scales absolute differences in the visualization.
const diffAmplification = 4

// Diff compares two RGBA images pixel by pixel. Both images must have the
// same dimensions.
func Diff(a, b *image.RGBA) (*Difference, error) {
	if a.Bounds().Dx() != b.Bounds().Dx() || a.Bounds().Dy() != b.Bounds().Dy() {
		return nil, ErrGeometryMismatch
	}

	w, h := a.Bounds().Dx(), a.Bounds().Dy()
	d := &Difference{Image: image.NewRGBA(image.Rect(0, 0, w, h))}

	var sumSq float64
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			pa := a.RGBAAt(a.Bounds().Min.X+x, a.Bounds().Min.Y+y)
			pb := b.RGBAAt(b.Bounds().Min.X+x, b.Bounds().Min.Y+y)

			dr := absDiff(pa.R, pb.R)
			dg := absDiff(pa.G, pb.G)
			db := absDiff(pa.B, pb.B)

			if dr != 0 || dg != 0 || db != 0 {
				d.DiffCount++
			}
			sumSq += float64(dr)*float64(dr) + float64(dg)*float64(dg) + float64(db)*float64(db)

			d.Image.SetRGBA(x, y, color.RGBA{
				R: amplify(dr),
				G: amplify(dg),
				B: amplify(db),
				A: 255,
			})
		}
	}

	samples := float64(w * h * 3)
	d.MSE = sumSq / samples
	if d.MSE == 0 {
		d.PSNR = math.Inf(1)
	} else {
		d.PSNR = 10 * math.Log10(255*255/d.MSE)
	}
	return d, nil
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}

func amplify(v int) uint8 {
	v *= diffAmplification
	if v > 255 {
		return 255
	}
	return uint8(v)
}
