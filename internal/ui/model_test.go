package ui

import (
	"bytes"
	"image"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/reel/internal/caching"
	"github.com/llehouerou/reel/internal/notify"
	"github.com/llehouerou/reel/internal/playback"
	"github.com/llehouerou/reel/internal/raw"
	"github.com/llehouerou/reel/internal/video"
)

// newTestModel wires a model over a small real yuv file.
func newTestModel(t *testing.T) Model {
	t.Helper()

	geometry := raw.Geometry{Width: 16, Height: 8}
	path := filepath.Join(t.TempDir(), "test_16x8.yuv")
	per := raw.FormatYUV420p.BytesPerFrame(geometry)
	var buf bytes.Buffer
	for i := 0; i < 5; i++ {
		buf.Write(bytes.Repeat([]byte{byte(i * 10)}, int(per)))
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		t.Fatalf("write test file: %v", err)
	}

	src, err := raw.Open(path, raw.OpenOptions{})
	if err != nil {
		t.Fatalf("open source: %v", err)
	}
	t.Cleanup(func() { src.Close() })

	handler := video.New(video.NewFileProducer(src))
	t.Cleanup(handler.Close)

	clock := playback.New(handler.FrameCount(), handler.FrameRate())
	t.Cleanup(clock.Close)

	scheduler := caching.New(handler, 1, 1<<20, notify.NewStub())

	m := New(Options{
		Handler:   handler,
		Playback:  clock,
		Scheduler: scheduler,
		FilePath:  path,
		Zoom:      1,
	})
	m.width = 40
	m.height = 12
	return m
}

func updateModel(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	updated, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return updated
}

func keyMsg(key string) tea.KeyMsg {
	if key == " " {
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
}

func TestModel_FrameNavigation(t *testing.T) {
	m := newTestModel(t)

	m = updateModel(t, m, keyMsg("l"))
	if got := m.clock.CurrentFrame(); got != 1 {
		t.Errorf("frame after next = %d, want 1", got)
	}

	m = updateModel(t, m, keyMsg("h"))
	if got := m.clock.CurrentFrame(); got != 0 {
		t.Errorf("frame after prev = %d, want 0", got)
	}

	m = updateModel(t, m, tea.KeyMsg{Type: tea.KeyEnd})
	if got := m.clock.CurrentFrame(); got != 4 {
		t.Errorf("frame after end = %d, want 4", got)
	}
}

func TestModel_ZoomCycling(t *testing.T) {
	m := newTestModel(t)

	m = updateModel(t, m, keyMsg("+"))
	if m.zoom != 2 {
		t.Errorf("zoom after in = %v, want 2", m.zoom)
	}

	m = updateModel(t, m, keyMsg("-"))
	m = updateModel(t, m, keyMsg("-"))
	if m.zoom != 0.5 {
		t.Errorf("zoom after two out = %v, want 0.5", m.zoom)
	}

	m = updateModel(t, m, keyMsg("1"))
	if m.zoom != 1 {
		t.Errorf("zoom after 1:1 = %v, want 1", m.zoom)
	}
}

func TestModel_GotoPrompt(t *testing.T) {
	m := newTestModel(t)

	m = updateModel(t, m, keyMsg("g"))
	if !m.gotoActive {
		t.Fatal("goto prompt should be active after 'g'")
	}

	m = updateModel(t, m, keyMsg("3"))
	m = updateModel(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.gotoActive {
		t.Error("goto prompt should close on enter")
	}
	if got := m.clock.CurrentFrame(); got != 3 {
		t.Errorf("frame after goto = %d, want 3", got)
	}
}

func TestModel_GotoPromptEscape(t *testing.T) {
	m := newTestModel(t)

	m = updateModel(t, m, keyMsg("g"))
	m = updateModel(t, m, keyMsg("2"))
	m = updateModel(t, m, tea.KeyMsg{Type: tea.KeyEscape})

	if m.gotoActive {
		t.Error("goto prompt should close on escape")
	}
	if got := m.clock.CurrentFrame(); got != 0 {
		t.Errorf("frame after cancelled goto = %d, want 0", got)
	}
}

func TestModel_HelpToggle(t *testing.T) {
	m := newTestModel(t)

	m = updateModel(t, m, keyMsg("?"))
	if !m.help.visible {
		t.Fatal("help should be visible after '?'")
	}

	view := m.View()
	if !strings.Contains(view, "Help") {
		t.Error("view should contain help overlay")
	}

	m = updateModel(t, m, tea.KeyMsg{Type: tea.KeyEscape})
	if m.help.visible {
		t.Error("help should close on escape")
	}
}

func TestModel_ViewRendersStatusBar(t *testing.T) {
	m := newTestModel(t)

	view := m.View()
	if !strings.Contains(view, "1/5") {
		t.Errorf("status bar should show frame position, got:\n%s", view)
	}
	if !strings.Contains(view, "16x8") {
		t.Errorf("status bar should show geometry, got:\n%s", view)
	}
}

func TestModel_StatusBarDropsSegmentsWhenNarrow(t *testing.T) {
	m := newTestModel(t)
	m.width = 14

	view := m.View()
	if !strings.Contains(view, "1/5") {
		t.Errorf("frame position should survive a narrow bar, got:\n%s", view)
	}
	if strings.Contains(view, "cach") {
		t.Errorf("cache segment should be dropped, not clipped, got:\n%s", view)
	}
}

func TestModel_PurgeCache(t *testing.T) {
	m := newTestModel(t)

	m.handler.CacheFrame(2)
	if m.handler.CachedFrameCount() != 1 {
		t.Fatal("expected one cached frame")
	}

	m = updateModel(t, m, keyMsg("x"))
	if m.handler.CachedFrameCount() != 0 {
		t.Error("purge should empty the cache")
	}
}

func TestModel_PurgeDropsScaledRenditions(t *testing.T) {
	m := newTestModel(t)

	src := image.NewRGBA(image.Rect(0, 0, 4, 4))
	a := m.scaler.Scale(src, 8, 8)

	m = updateModel(t, m, keyMsg("x"))
	if b := m.scaler.Scale(src, 8, 8); b == a {
		t.Error("purge should drop memoized scaled renditions")
	}

	a = m.scaler.Scale(src, 8, 8)
	m = updateModel(t, m, HandlerChangedMsg{Redraw: true})
	if b := m.scaler.Scale(src, 8, 8); b == a {
		t.Error("invalidation should drop memoized scaled renditions")
	}
}

// newPeerHandler builds a second handler over a file with the same geometry
// but different pixel values.
func newPeerHandler(t *testing.T) *video.Handler {
	t.Helper()

	geometry := raw.Geometry{Width: 16, Height: 8}
	path := filepath.Join(t.TempDir(), "ref_16x8.yuv")
	per := raw.FormatYUV420p.BytesPerFrame(geometry)
	var buf bytes.Buffer
	for i := 0; i < 5; i++ {
		buf.Write(bytes.Repeat([]byte{byte(i*10 + 40)}, int(per)))
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		t.Fatalf("write reference file: %v", err)
	}

	src, err := raw.Open(path, raw.OpenOptions{})
	if err != nil {
		t.Fatalf("open reference: %v", err)
	}
	t.Cleanup(func() { src.Close() })

	peer := video.New(video.NewFileProducer(src))
	t.Cleanup(peer.Close)
	return peer
}

func TestModel_DifferenceToggle(t *testing.T) {
	m := newTestModel(t)
	m.peer = newPeerHandler(t)
	m.width = 80

	m = updateModel(t, m, keyMsg("d"))
	if !m.diffMode {
		t.Fatal("difference mode should be on after toggle")
	}

	view := m.View()
	if !strings.Contains(view, "MSE") {
		t.Errorf("status bar should show comparison stats, got:\n%s", view)
	}

	m = updateModel(t, m, keyMsg("d"))
	if m.diffMode {
		t.Error("difference mode should be off after second toggle")
	}
}

func TestModel_DifferenceWithoutReference(t *testing.T) {
	m := newTestModel(t)

	m = updateModel(t, m, keyMsg("d"))
	if m.diffMode {
		t.Error("difference mode should stay off without a reference")
	}
	if m.statusMsg != "no reference file" {
		t.Errorf("statusMsg = %q, want %q", m.statusMsg, "no reference file")
	}
}

func TestNextZoom(t *testing.T) {
	tests := []struct {
		name string
		zoom float64
		dir  int
		want float64
	}{
		{"in from 1", 1, 1, 2},
		{"out from 1", 1, -1, 0.5},
		{"in at max", 128, 1, 128},
		{"out at min", 0.125, -1, 0.125},
		{"snap free value in", 1.37, 1, 2},
		{"snap free value out", 1.37, -1, 1},
		{"below min in", 0.05, 1, 0.125},
		{"below min out stays", 0.05, -1, 0.05},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := nextZoom(tt.zoom, tt.dir); got != tt.want {
				t.Errorf("nextZoom(%v, %d) = %v, want %v", tt.zoom, tt.dir, got, tt.want)
			}
		})
	}
}

func TestFormatZoom(t *testing.T) {
	tests := []struct {
		zoom float64
		want string
	}{
		{1, "1x"},
		{4, "4x"},
		{0.5, "0.5x"},
		{0.125, "0.125x"},
	}

	for _, tt := range tests {
		if got := formatZoom(tt.zoom); got != tt.want {
			t.Errorf("formatZoom(%v) = %q, want %q", tt.zoom, got, tt.want)
		}
	}
}

func TestComposeCentered(t *testing.T) {
	base := strings.TrimSuffix(strings.Repeat("..........\n", 5), "\n")
	block := "ab\ncd"

	out := composeCentered(base, block, 10, 5)
	lines := strings.Split(out, "\n")

	if len(lines) != 5 {
		t.Fatalf("expected 5 lines, got %d", len(lines))
	}
	if !strings.Contains(lines[1], "ab") {
		t.Errorf("line 1 should contain block start, got %q", lines[1])
	}
	if !strings.Contains(lines[2], "cd") {
		t.Errorf("line 2 should contain block end, got %q", lines[2])
	}
	if strings.Contains(lines[0], "ab") || strings.Contains(lines[4], "cd") {
		t.Error("block should not leak outside the centered rows")
	}
}
