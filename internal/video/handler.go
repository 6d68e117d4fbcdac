package video

import (
	"image"
	"sync"

	"github.com/llehouerou/reel/internal/frame"
	"github.com/llehouerou/reel/internal/raw"
)

// overlayZoomThreshold is the zoom factor from which per-pixel values are
// drawn over the frame.
const overlayZoomThreshold = 64

// Canvas is the drawing surface the handler renders to. Coordinates are in
// the surface's pixel space.
type Canvas interface {
	Bounds() image.Rectangle
	DrawImage(dst image.Rectangle, img *image.RGBA)
}

// OverlayFunc draws per-pixel values for img inside dst at high zoom.
type OverlayFunc func(c Canvas, img *Image, dst image.Rectangle, zoom float64)

// Handler mediates between the renderer asking "draw frame N at zoom Z" and
// the producer decoding raw data. Decoded frames are cached concurrently by
// background workers calling CacheFrame while the renderer pulls from the
// cache, waits on in-flight decodes, or loads synchronously.
//
// Lock order: the in-flight registry mutex is only held for map access,
// never across a latch wait. The producer gate is independent of cache and
// registry and is held only across a producer call and the copy-out. The
// cache mutex is a leaf.
type Handler struct {
	producer Producer

	// gate serializes access to the producer's shared request buffer.
	gate sync.Mutex

	cache    *frameCache
	inflight *inflightRegistry

	// Current-frame slot: written only by the renderer goroutine.
	currentImage      *Image
	currentImageIndex int

	// loadingInBackground is set by Draw when the requested frame could not
	// be shown yet. Renderer-local, like the slot.
	loadingInBackground bool

	overlay  OverlayFunc
	notifier *changeNotifier
	events   *eventBus
}

// New creates a handler for the given producer.
func New(producer Producer) *Handler {
	h := &Handler{
		producer:          producer,
		cache:             newFrameCache(),
		inflight:          newInflightRegistry(),
		currentImageIndex: NoFrame,
		events:            &eventBus{},
	}
	h.notifier = newChangeNotifier(cacheNotifyDebounce, func() {
		h.events.publishHandlerChanged(HandlerChange{Redraw: false, InfoChanged: true})
	})
	return h
}

// SetOverlay installs the pixel-value overlay drawn at high zoom.
func (h *Handler) SetOverlay(fn OverlayFunc) { h.overlay = fn }

// Subscribe returns a subscription to handler events.
func (h *Handler) Subscribe() *Subscription { return h.events.subscribe() }

// Unsubscribe removes a subscription and closes its Done channel.
func (h *Handler) Unsubscribe(sub *Subscription) { h.events.unsubscribe(sub) }

// Close quiesces the handler. The surrounding scheduler must have stopped
// issuing CacheFrame and joined its workers first.
func (h *Handler) Close() {
	h.notifier.Stop()
	h.events.closeAll()
}

// FrameCount returns the number of frames the producer can decode.
func (h *Handler) FrameCount() int { return h.producer.FrameCount() }

// FrameRate returns the sequence frame rate, or 0 when unknown.
func (h *Handler) FrameRate() float64 { return h.producer.FrameRate() }

// Geometry returns the frame dimensions.
func (h *Handler) Geometry() raw.Geometry { return h.producer.Geometry() }

// Format returns the raw pixel format.
func (h *Handler) Format() raw.PixelFormat { return h.producer.Format() }

// Draw renders frame frameIdx at the given zoom onto c. Called from the
// renderer goroutine only.
//
// Resolution order: current slot, cache, in-flight decode (wait, then
// recheck the cache), synchronous load. When the frame still is not
// available after that - the producer deferred - the previous frame stays on
// screen and LoadingInBackground reports true until a later draw succeeds.
func (h *Handler) Draw(c Canvas, frameIdx int, zoom float64) {
	if h.currentImageIndex != frameIdx {
		if img, ok := h.cache.Get(frameIdx); ok {
			h.setCurrent(img, frameIdx)
		} else if l, ok := h.inflight.Latch(frameIdx); ok {
			// A caching worker is decoding this frame. Block until it
			// finishes, then promote its result. The cache may still miss if
			// the producer failed; the next draw retries.
			<-l
			if img, ok := h.cache.Get(frameIdx); ok {
				h.setCurrent(img, frameIdx)
			}
		} else {
			h.loadFrame(frameIdx)
		}
	}

	h.loadingInBackground = h.currentImageIndex != frameIdx

	if h.currentImage == nil {
		return
	}
	dst := frame.CenteredRect(c.Bounds(), h.currentImage.Geometry(), zoom)
	c.DrawImage(dst, h.currentImage.RGBA())

	if zoom >= overlayZoomThreshold && h.overlay != nil {
		h.overlay(c, h.currentImage, dst, zoom)
	}
}

// LoadingInBackground reports whether the last Draw could not show the
// requested frame yet.
func (h *Handler) LoadingInBackground() bool { return h.loadingInBackground }

// CurrentFrameIndex returns the index in the current-frame slot, or NoFrame.
func (h *Handler) CurrentFrameIndex() int { return h.currentImageIndex }

// DrawRect returns the destination rectangle frame drawing uses for the
// given canvas bounds and zoom.
func (h *Handler) DrawRect(bounds image.Rectangle, zoom float64) image.Rectangle {
	return frame.CenteredRect(bounds, h.producer.Geometry(), zoom)
}

func (h *Handler) setCurrent(img *Image, idx int) {
	h.currentImage = img
	h.currentImageIndex = idx
}

// loadFrame loads frameIdx synchronously into the current-frame slot. When
// the producer defers, the slot is left unchanged and the next draw retries.
func (h *Handler) loadFrame(frameIdx int) {
	h.gate.Lock()
	if h.producer.RequestedFrameIndex() != frameIdx {
		h.producer.RequestFrame(frameIdx, false)
		if h.producer.RequestedFrameIndex() != frameIdx {
			h.gate.Unlock()
			return
		}
	}
	// Copy out of the shared buffer before releasing the gate. Images are
	// snapshots, so taking the handle is the copy.
	img := h.producer.RequestedFrame()
	h.gate.Unlock()

	h.setCurrent(img, frameIdx)
}

// loadFrameForCaching decodes frameIdx via the shared request buffer and
// returns the image, or nil when the producer deferred.
func (h *Handler) loadFrameForCaching(frameIdx int) *Image {
	h.gate.Lock()
	defer h.gate.Unlock()

	if h.producer.RequestedFrameIndex() != frameIdx {
		h.producer.RequestFrame(frameIdx, true)
		if h.producer.RequestedFrameIndex() != frameIdx {
			return nil
		}
	}
	return h.producer.RequestedFrame()
}

// CacheFrame decodes frameIdx on the calling (worker) goroutine and inserts
// it into the cache. Idempotent: a frame already cached or currently being
// decoded by another worker is left to that result. Safe to call from
// multiple workers concurrently.
func (h *Handler) CacheFrame(frameIdx int) {
	if h.cache.Contains(frameIdx) {
		return
	}
	if !h.inflight.TryBegin(frameIdx) {
		// Another worker is already caching this frame.
		return
	}

	img := h.loadFrameForCaching(frameIdx)
	if img != nil {
		// Insert before releasing the latch so waiters that wake find the
		// frame in the cache.
		h.cache.Insert(frameIdx, img)
	}
	h.inflight.End(frameIdx)

	h.notifier.Arm()
}

// IsInCache reports whether frameIdx is cached.
func (h *Handler) IsInCache(frameIdx int) bool { return h.cache.Contains(frameIdx) }

// CachedFrames returns the indices currently in the cache.
func (h *Handler) CachedFrames() []int { return h.cache.Keys() }

// CachedFrameCount returns the number of cached frames.
func (h *Handler) CachedFrameCount() int { return h.cache.Size() }

// CacheSizeBytes returns the memory held by the cache.
func (h *Handler) CacheSizeBytes() int64 { return h.cache.SizeBytes() }

// RemoveFromCache drops frameIdx from the cache. RemoveFromCache(NoFrame)
// empties it. Eviction policy lives with the caller; the handler only
// executes removals.
func (h *Handler) RemoveFromCache(frameIdx int) { h.cache.Remove(frameIdx) }

// CachingFrameSizeBytes returns the memory one cached frame costs, for
// sizing cache budgets before any frame is decoded.
func (h *Handler) CachingFrameSizeBytes() int64 {
	g := h.producer.Geometry()
	// Raw planes plus the RGBA rendition kept alongside.
	return h.producer.Format().BytesPerFrame(g) + int64(g.Area())*4
}

// GetPixelValue returns the raw component values of the current frame at
// frame coordinates (x, y), or nil when no frame is loaded.
func (h *Handler) GetPixelValue(x, y int) []int {
	if h.currentImage == nil {
		return nil
	}
	return h.currentImage.PixelAt(x, y)
}

// InvalidateAll drops all decoded frames: the cache, the current-frame slot
// and the producer's request buffer. Must be called whenever frame geometry
// or pixel format changes, before any new frame is decoded.
func (h *Handler) InvalidateAll() {
	h.events.publishFrameLimits()

	h.setCurrent(nil, NoFrame)

	h.gate.Lock()
	h.producer.ResetRequested()
	h.gate.Unlock()

	h.cache.Clear()
}

// OnControlChanged handles a change to a display-affecting control:
// invalidates all buffers and notifies subscribers that a redraw is needed.
func (h *Handler) OnControlChanged() {
	h.InvalidateAll()
	h.events.publishHandlerChanged(HandlerChange{Redraw: true, InfoChanged: true})
}
