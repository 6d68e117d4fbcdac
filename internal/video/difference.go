package video

import (
	"github.com/llehouerou/reel/internal/frame"
)

// DifferencePeer is the other side of a difference computation. Video
// handlers implement it themselves; other frame-producing items implement it
// to get the generic comparison path.
type DifferencePeer interface {
	// FrameImage returns the item's image for frameIdx, loading it if
	// needed, or false when the frame cannot be provided.
	FrameImage(frameIdx int) (*Image, bool)
}

var _ DifferencePeer = (*Handler)(nil)

// FrameImage loads frameIdx into the current-frame slot and returns it.
func (h *Handler) FrameImage(frameIdx int) (*Image, bool) {
	if h.currentImageIndex != frameIdx {
		h.loadFrame(frameIdx)
	}
	if h.currentImageIndex != frameIdx || h.currentImage == nil {
		return nil, false
	}
	return h.currentImage, true
}

// CalculateDifference compares this item's frame frameIdx against peer's and
// returns the per-pixel difference. Both sides are loaded into their
// current-frame slots first; a producer deferral on either side aborts with
// ok=false, and the caller retries like any other load.
func (h *Handler) CalculateDifference(peer DifferencePeer, frameIdx int) (*frame.Difference, bool) {
	mine, ok := h.FrameImage(frameIdx)
	if !ok {
		return nil, false
	}
	theirs, ok := peer.FrameImage(frameIdx)
	if !ok {
		return nil, false
	}

	d, err := frame.Diff(mine.RGBA(), theirs.RGBA())
	if err != nil {
		return nil, false
	}
	return d, true
}
