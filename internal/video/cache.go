package video

import "sync"

// frameCache is the thread-safe mapping from frame index to decoded image.
// Its mutex is a leaf: no other lock is acquired while it is held.
type frameCache struct {
	mu     sync.Mutex
	frames map[int]*Image
}

func newFrameCache() *frameCache {
	return &frameCache{frames: make(map[int]*Image)}
}

func (c *frameCache) Contains(idx int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.frames[idx]
	return ok
}

// Get returns the cached image for idx. Images are immutable, so the shared
// handle is a frozen snapshot for the caller.
func (c *frameCache) Get(idx int) (*Image, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	img, ok := c.frames[idx]
	return img, ok
}

// Insert stores img under idx, overwriting any existing entry.
func (c *frameCache) Insert(idx int, img *Image) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.frames[idx] = img
}

// Remove drops the entry for idx. Remove(NoFrame) clears the whole cache.
func (c *frameCache) Remove(idx int) {
	if idx == NoFrame {
		c.Clear()
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.frames, idx)
}

func (c *frameCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.frames = make(map[int]*Image)
}

func (c *frameCache) Keys() []int {
	c.mu.Lock()
	defer c.mu.Unlock()
	keys := make([]int, 0, len(c.frames))
	for idx := range c.frames {
		keys = append(keys, idx)
	}
	return keys
}

func (c *frameCache) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.frames)
}

// SizeBytes returns the summed footprint of all cached images.
func (c *frameCache) SizeBytes() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	var n int64
	for _, img := range c.frames {
		n += img.SizeBytes()
	}
	return n
}
