// Package video implements the frame handler for raw video items: a bounded
// in-memory cache of decoded frames populated by background caching workers,
// a current-frame slot driven by the renderer, and the load orchestration
// between the two.
package video

import (
	"image"

	"github.com/llehouerou/reel/internal/raw"
)

// Image is one decoded frame ready for display: the RGBA rendition plus the
// original raw planes for pixel inspection. Images are immutable snapshots;
// the producer allocates a fresh one per decode, so holders never observe a
// frame changing under them.
type Image struct {
	raw  *raw.Frame
	rgba *image.RGBA
}

// NewImage builds an Image from a decoded raw frame.
func NewImage(fr *raw.Frame) *Image {
	return &Image{raw: fr, rgba: fr.RGBA()}
}

// Geometry returns the frame dimensions.
func (im *Image) Geometry() raw.Geometry { return im.raw.Geometry }

// Format returns the raw pixel format.
func (im *Image) Format() raw.PixelFormat { return im.raw.Format }

// RGBA returns the displayable rendition. Callers must not modify it.
func (im *Image) RGBA() *image.RGBA { return im.rgba }

// Raw returns the underlying raw frame.
func (im *Image) Raw() *raw.Frame { return im.raw }

// PixelAt returns the raw component values at (x, y), or nil out of bounds.
func (im *Image) PixelAt(x, y int) []int { return im.raw.PixelAt(x, y) }

// SizeBytes returns the memory footprint of the image: raw planes plus the
// RGBA rendition.
func (im *Image) SizeBytes() int64 {
	return im.raw.SizeBytes() + int64(len(im.rgba.Pix))
}
