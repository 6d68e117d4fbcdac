package video

import (
	"sort"
	"sync"
	"testing"
)

func TestFrameCache_Basics(t *testing.T) {
	c := newFrameCache()

	if c.Contains(1) {
		t.Error("empty cache contains 1")
	}
	if _, ok := c.Get(1); ok {
		t.Error("Get on empty cache returned ok")
	}

	img := NewImage(makeFrame(1))
	c.Insert(1, img)

	if !c.Contains(1) {
		t.Error("cache missing inserted frame")
	}
	got, ok := c.Get(1)
	if !ok || got != img {
		t.Error("Get returned wrong image")
	}
	if c.Size() != 1 {
		t.Errorf("size = %d, want 1", c.Size())
	}

	// Insert overwrites.
	img2 := NewImage(makeFrame(2))
	c.Insert(1, img2)
	if got, _ := c.Get(1); got != img2 {
		t.Error("Insert did not overwrite existing entry")
	}
	if c.Size() != 1 {
		t.Errorf("size after overwrite = %d, want 1", c.Size())
	}

	c.Remove(1)
	if c.Contains(1) {
		t.Error("frame still present after Remove")
	}
}

func TestFrameCache_RemoveNoFrameClears(t *testing.T) {
	c := newFrameCache()
	for i := 0; i < 5; i++ {
		c.Insert(i, NewImage(makeFrame(byte(i))))
	}
	c.Remove(NoFrame)
	if c.Size() != 0 {
		t.Errorf("size = %d, want 0", c.Size())
	}
}

func TestFrameCache_Keys(t *testing.T) {
	c := newFrameCache()
	for _, i := range []int{4, 1, 9} {
		c.Insert(i, NewImage(makeFrame(byte(i))))
	}
	keys := c.Keys()
	sort.Ints(keys)
	want := []int{1, 4, 9}
	if len(keys) != 3 {
		t.Fatalf("keys = %v, want %v", keys, want)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("keys = %v, want %v", keys, want)
		}
	}
}

func TestFrameCache_Concurrent(t *testing.T) {
	c := newFrameCache()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			c.Insert(i, NewImage(makeFrame(byte(i))))
			c.Contains(i)
			c.Get(i)
			c.Keys()
			c.SizeBytes()
		}(i)
	}
	wg.Wait()
	if c.Size() != 50 {
		t.Errorf("size = %d, want 50", c.Size())
	}
}
