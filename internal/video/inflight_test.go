package video

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestInflight_TryBegin(t *testing.T) {
	r := newInflightRegistry()

	if !r.TryBegin(3) {
		t.Fatal("first TryBegin failed")
	}
	if r.TryBegin(3) {
		t.Error("second TryBegin succeeded for in-flight index")
	}
	if !r.Contains(3) {
		t.Error("registry missing in-flight index")
	}

	r.End(3)
	if r.Contains(3) {
		t.Error("index still present after End")
	}
	if !r.TryBegin(3) {
		t.Error("TryBegin failed after End")
	}
	r.End(3)
}

func TestInflight_WaitUnblocksOnEnd(t *testing.T) {
	r := newInflightRegistry()
	r.TryBegin(7)

	var woke atomic.Bool
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.Wait(7)
			woke.Store(true)
		}()
	}

	time.Sleep(20 * time.Millisecond)
	if woke.Load() {
		t.Fatal("waiter woke before End")
	}

	r.End(7)
	wg.Wait()
}

func TestInflight_WaitWithoutEntry(t *testing.T) {
	r := newInflightRegistry()
	// Must return immediately.
	r.Wait(42)
}

func TestInflight_OnlyOneWinner(t *testing.T) {
	r := newInflightRegistry()

	var winners atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if r.TryBegin(5) {
				winners.Add(1)
			}
		}()
	}
	wg.Wait()

	if winners.Load() != 1 {
		t.Errorf("winners = %d, want exactly 1", winners.Load())
	}
	r.End(5)
}
