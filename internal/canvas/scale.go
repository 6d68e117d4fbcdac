package canvas

import (
	"image"

	lru "github.com/hashicorp/golang-lru"
	"github.com/nfnt/resize"
)

// defaultScaleCacheSize bounds how many scaled renditions are kept. Scaled
// frames at terminal sizes are small; the source frames they key on are the
// expensive part and live in the frame cache.
const defaultScaleCacheSize = 64

type scaleKey struct {
	src  *image.RGBA
	w, h int
}

// Scaler resizes frames for display, memoizing renditions in an LRU so
// repeated draws of the same frame at the same zoom do not rescale.
type Scaler struct {
	cache *lru.Cache
}

// NewScaler creates a scaler with the default cache size.
func NewScaler() *Scaler {
	cache, err := lru.New(defaultScaleCacheSize)
	if err != nil {
		// lru.New only fails for non-positive sizes.
		panic(err)
	}
	return &Scaler{cache: cache}
}

// Scale returns src resized to w x h. Nearest-neighbor keeps pixel edges
// sharp, which matters when inspecting frames at high zoom.
func (s *Scaler) Scale(src *image.RGBA, w, h int) *image.RGBA {
	key := scaleKey{src: src, w: w, h: h}
	if v, ok := s.cache.Get(key); ok {
		return v.(*image.RGBA)
	}

	resized := resize.Resize(uint(w), uint(h), src, resize.NearestNeighbor)
	out, ok := resized.(*image.RGBA)
	if !ok {
		out = image.NewRGBA(image.Rect(0, 0, w, h))
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				out.Set(x, y, resized.At(resized.Bounds().Min.X+x, resized.Bounds().Min.Y+y))
			}
		}
	}

	s.cache.Add(key, out)
	return out
}

// Purge drops all memoized renditions. Call when the underlying frames were
// invalidated.
func (s *Scaler) Purge() {
	s.cache.Purge()
}
